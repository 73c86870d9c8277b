// Package parsers reads acquired catalog records from JSON and CSV exports.
package parsers

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/ersonp/namesift/internal/domain/entities"
)

// Field names with a meaning to the pipeline. Every other field is carried in
// Record.Extra untouched.
const (
	FieldName  = "name"
	FieldType  = "type"
	FieldKind  = "kind"
	FieldDates = "dates"
)

// Parser defines the interface for parsing records from various formats.
type Parser interface {
	Parse(r io.Reader) ([]entities.Record, error)
}

// ForFormat returns the appropriate parser for the given format.
// Supported formats: "json", "csv".
func ForFormat(format string) Parser {
	switch strings.ToLower(format) {
	case "json":
		return &JSONParser{}
	case "csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// ForFile returns the appropriate parser based on file extension.
func ForFile(filename string) Parser {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".json":
		return &JSONParser{}
	case ".csv":
		return &CSVParser{}
	default:
		return nil
	}
}

// Resolve picks a parser by explicit format, falling back to the file extension.
func Resolve(format, filename string) Parser {
	if format != "" {
		return ForFormat(format)
	}
	return ForFile(filename)
}

// kindOf reads the kind tag; "type" wins over "kind" when both are present.
func kindOf(typeTag, kindTag string) entities.Kind {
	if strings.TrimSpace(typeTag) != "" {
		return entities.ParseKind(typeTag)
	}
	return entities.ParseKind(kindTag)
}
