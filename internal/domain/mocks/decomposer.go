// Package mocks provides mock implementations for testing.
package mocks

import (
	"strings"

	"github.com/ersonp/namesift/internal/domain/entities"
)

// NameDecomposer is a mock implementation of ports.NameDecomposer.
// Names listed in Results are returned verbatim; anything else is split on
// whitespace into first, middle and last.
type NameDecomposer struct {
	Results map[string]entities.NameParts
	Calls   []string
}

// Parse returns the configured parts for name.
func (m *NameDecomposer) Parse(name string) entities.NameParts {
	m.Calls = append(m.Calls, name)
	if parts, ok := m.Results[name]; ok {
		return parts
	}

	fields := strings.Fields(name)
	var parts entities.NameParts
	switch len(fields) {
	case 0:
	case 1:
		parts.First = entities.Ptr(fields[0])
	default:
		parts.First = entities.Ptr(fields[0])
		parts.Last = entities.Ptr(fields[len(fields)-1])
		parts.Middle = entities.NonEmpty(strings.Join(fields[1:len(fields)-1], " "))
	}
	return parts
}
