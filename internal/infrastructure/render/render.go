// Package render turns a name hierarchy and its overlap report into text.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/ersonp/namesift/internal/domain/entities"
)

// Renderer writes a tree and its overlaps in one output format.
type Renderer func(w io.Writer, tree *entities.Tree, overlaps []entities.Overlap) error

// Formats lists the supported output formats.
var Formats = []string{"outline", "pretty", "json", "markdown"}

// ForFormat returns the renderer for the named format.
func ForFormat(format string) (Renderer, error) {
	switch strings.ToLower(format) {
	case "outline":
		return func(w io.Writer, tree *entities.Tree, _ []entities.Overlap) error {
			return Outline(w, tree)
		}, nil
	case "pretty":
		return func(w io.Writer, tree *entities.Tree, _ []entities.Overlap) error {
			_, err := fmt.Fprintln(w, Pretty(tree))
			return err
		}, nil
	case "json":
		return func(w io.Writer, tree *entities.Tree, _ []entities.Overlap) error {
			return JSON(w, tree)
		}, nil
	case "markdown":
		return Markdown, nil
	default:
		return nil, fmt.Errorf("unknown format %q (valid: %s)", format, strings.Join(Formats, ", "))
	}
}
