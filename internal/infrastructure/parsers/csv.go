package parsers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/ersonp/namesift/internal/domain/entities"
)

// CSVParser parses records from CSV format.
type CSVParser struct{}

// Parse reads CSV from the reader and returns parsed records.
// Required column: name. Optional: type (or kind), dates. Other columns go to Extra.
func (p *CSVParser) Parse(r io.Reader) ([]entities.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := p.readHeader(reader)
	if err != nil {
		return nil, err
	}

	return p.readRecords(reader, header)
}

// readHeader reads and validates the CSV header row.
func (p *CSVParser) readHeader(reader *csv.Reader) ([]string, error) {
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading CSV header: %w", err)
	}

	found := false
	for i, col := range header {
		header[i] = strings.ToLower(strings.TrimSpace(col))
		if header[i] == FieldName {
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("missing required column: %s", FieldName)
	}

	return header, nil
}

// readRecords reads all data rows and converts them to records.
func (p *CSVParser) readRecords(reader *csv.Reader, header []string) ([]entities.Record, error) {
	var records []entities.Record
	lineNum := 1 // Header is line 1

	for {
		lineNum++
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNum, err)
		}

		records = append(records, p.parseRow(row, header, len(records)))
	}

	return records, nil
}

// parseRow converts a CSV row to a record. Empty cells are absent.
func (p *CSVParser) parseRow(row, header []string, position int) entities.Record {
	rec := entities.Record{Position: position}
	var typeTag, kindTag string

	for i, col := range header {
		if i >= len(row) {
			break
		}
		cell := row[i]
		if strings.TrimSpace(cell) == "" {
			continue
		}
		switch col {
		case FieldName:
			rec.Name = entities.Ptr(cell)
		case FieldDates:
			rec.Dates = entities.Ptr(cell)
		case FieldType:
			typeTag = cell
		case FieldKind:
			kindTag = cell
		default:
			if rec.Extra == nil {
				rec.Extra = make(map[string]any)
			}
			rec.Extra[col] = cell
		}
	}
	rec.Kind = kindOf(typeTag, kindTag)

	return rec
}
