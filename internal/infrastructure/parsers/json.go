package parsers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/ersonp/namesift/internal/domain/entities"
)

// JSONParser parses records from a JSON array of objects.
type JSONParser struct{}

// Parse reads JSON from the reader and returns parsed records.
// A null or missing name yields a nil Name; unknown keys land in Extra.
func (p *JSONParser) Parse(r io.Reader) ([]entities.Record, error) {
	var raw []map[string]json.RawMessage

	decoder := json.NewDecoder(r)
	if err := decoder.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	records := make([]entities.Record, 0, len(raw))
	for i, obj := range raw {
		rec, err := p.parseObject(obj, i)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func (p *JSONParser) parseObject(obj map[string]json.RawMessage, position int) (entities.Record, error) {
	rec := entities.Record{Position: position}

	name, err := optionalString(obj[FieldName])
	if err != nil {
		return rec, fmt.Errorf("field %q: %w", FieldName, err)
	}
	rec.Name = name

	dates, err := optionalString(obj[FieldDates])
	if err != nil {
		return rec, fmt.Errorf("field %q: %w", FieldDates, err)
	}
	rec.Dates = entities.NonEmpty(entities.Str(dates))

	typeTag, err := optionalString(obj[FieldType])
	if err != nil {
		return rec, fmt.Errorf("field %q: %w", FieldType, err)
	}
	kindTag, err := optionalString(obj[FieldKind])
	if err != nil {
		return rec, fmt.Errorf("field %q: %w", FieldKind, err)
	}
	rec.Kind = kindOf(entities.Str(typeTag), entities.Str(kindTag))

	for key, value := range obj {
		switch key {
		case FieldName, FieldDates, FieldType, FieldKind:
			continue
		}
		var v any
		dec := json.NewDecoder(bytes.NewReader(value))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return rec, fmt.Errorf("field %q: %w", key, err)
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]any)
		}
		rec.Extra[key] = v
	}

	return rec, nil
}

// optionalString decodes a string that may be missing or null.
func optionalString(raw json.RawMessage) (*string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return nil, nil
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("expected a string: %w", err)
	}
	return &s, nil
}
