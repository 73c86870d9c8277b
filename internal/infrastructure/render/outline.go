package render

import (
	"bufio"
	"io"
	"strings"

	"github.com/ersonp/namesift/internal/domain/entities"
)

// Connectors of the plain outline.
const (
	branchPrefix   = "├── "
	lastPrefix     = "└── "
	verticalIndent = "│   "
	blankIndent    = "    "
)

// Outline writes one node per line in pre-order, the root unprefixed and every
// other node behind box-drawing connectors.
func Outline(w io.Writer, tree *entities.Tree) error {
	bw := bufio.NewWriter(w)
	tree.Walk(func(v entities.Visit) bool {
		bw.WriteString(linePrefix(v.Last))
		bw.WriteString(tree.Label(v.ID))
		bw.WriteByte('\n')
		return true
	})
	return bw.Flush()
}

// linePrefix builds the connector run for a node whose ancestry is last.
func linePrefix(last []bool) string {
	if len(last) == 0 {
		return ""
	}
	var b strings.Builder
	for _, isLast := range last[:len(last)-1] {
		if isLast {
			b.WriteString(blankIndent)
		} else {
			b.WriteString(verticalIndent)
		}
	}
	if last[len(last)-1] {
		b.WriteString(lastPrefix)
	} else {
		b.WriteString(branchPrefix)
	}
	return b.String()
}
