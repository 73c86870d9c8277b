package handlers

import (
	"fmt"
	"os"

	"github.com/ersonp/namesift/internal/domain/entities"
	"github.com/ersonp/namesift/internal/infrastructure/parsers"
)

// readRecords parses an acquired records file. An empty or "auto" format
// selects the parser by file extension.
func readRecords(filePath, format string) ([]entities.Record, error) {
	if format == "auto" {
		format = ""
	}
	parser := parsers.Resolve(format, filePath)
	if parser == nil {
		return nil, fmt.Errorf("unsupported format for file: %s", filePath)
	}

	// Open file
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	records, err := parser.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parsing file: %w", err)
	}

	return records, nil
}
