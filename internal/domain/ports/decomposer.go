package ports

import "github.com/ersonp/namesift/internal/domain/entities"

// NameDecomposer splits a free-text human name into structured parts.
// Parts it cannot detect are left nil; it never fails.
type NameDecomposer interface {
	Parse(name string) entities.NameParts
}
