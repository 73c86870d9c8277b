// Package entities contains core domain data structures.
package entities

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

// Sentinel errors shared across layers.
var (
	ErrEmptyInput  = errors.New("no records in input")
	ErrRunNotFound = errors.New("run not found")
)

// Kind classifies a catalog entry.
type Kind string

const (
	KindPerson  Kind = "person"
	KindGroup   Kind = "group"
	KindUnknown Kind = "unknown"
)

// ParseKind maps a source type tag to a Kind. Missing or unrecognized tags are unknown.
func ParseKind(tag string) Kind {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "person":
		return KindPerson
	case "group":
		return KindGroup
	default:
		return KindUnknown
	}
}

// Record is one catalog entry flowing through the normalization pipeline.
// Optional string fields are nil when absent; an absent input always yields
// absent derived fields.
type Record struct {
	ID       string `json:"id,omitempty"`
	Position int    `json:"position"` // Order in the acquired input (0-indexed)

	Name  *string `json:"name"`
	Kind  Kind    `json:"type"`
	Dates *string `json:"dates"`

	ManualReview   bool     `json:"manual_review"`
	Parentheticals []string `json:"parentheticals,omitempty"`
	DatesRemoved   *string  `json:"dates_removed,omitempty"`
	CleanName      *string  `json:"clean_name,omitempty"`

	LastName   *string `json:"last_name,omitempty"`
	FirstName  *string `json:"first_name,omitempty"`
	MiddleName *string `json:"middle_name,omitempty"`
	Suffix     *string `json:"suffix,omitempty"`
	Nickname   *string `json:"nickname,omitempty"`

	// Extra carries source fields this package does not interpret (links, thumbnails, ...).
	Extra map[string]any `json:"extra,omitempty"`
}

// IsPerson reports whether the record describes a person.
func (r *Record) IsPerson() bool {
	return r.Kind == KindPerson
}

// Groupable reports whether the record may enter the hierarchy.
func (r *Record) Groupable() bool {
	return r.IsPerson() && !r.ManualReview
}

// SetNameParts copies decomposed name parts onto the record.
func (r *Record) SetNameParts(p NameParts) {
	r.LastName = p.Last
	r.FirstName = p.First
	r.MiddleName = p.Middle
	r.Suffix = p.Suffix
	r.Nickname = p.Nickname
}

// Clone returns a deep copy so pipeline stages never share mutable state.
func (r Record) Clone() Record {
	out := r
	out.Name = clonePtr(r.Name)
	out.Dates = clonePtr(r.Dates)
	out.DatesRemoved = clonePtr(r.DatesRemoved)
	out.CleanName = clonePtr(r.CleanName)
	out.LastName = clonePtr(r.LastName)
	out.FirstName = clonePtr(r.FirstName)
	out.MiddleName = clonePtr(r.MiddleName)
	out.Suffix = clonePtr(r.Suffix)
	out.Nickname = clonePtr(r.Nickname)
	out.Parentheticals = slices.Clone(r.Parentheticals)
	out.Extra = maps.Clone(r.Extra)
	return out
}

// NameParts is the structured breakdown of a human name. Undetected parts are nil.
type NameParts struct {
	First    *string `json:"first,omitempty"`
	Middle   *string `json:"middle,omitempty"`
	Last     *string `json:"last,omitempty"`
	Suffix   *string `json:"suffix,omitempty"`
	Nickname *string `json:"nickname,omitempty"`
}

// Empty reports whether no part was detected.
func (p NameParts) Empty() bool {
	return p.First == nil && p.Middle == nil && p.Last == nil && p.Suffix == nil && p.Nickname == nil
}

// Str dereferences an optional string, treating nil as "".
func Str(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// Ptr returns a pointer to s.
func Ptr(s string) *string {
	return &s
}

// NonEmpty returns a pointer to s, or nil when s is empty.
func NonEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func clonePtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
