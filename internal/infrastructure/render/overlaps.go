package render

import (
	"bufio"
	"io"

	"github.com/ersonp/namesift/internal/domain/entities"
)

// Overlaps writes the flat overlap report, one block per overlap separated by
// blank lines.
func Overlaps(w io.Writer, overlaps []entities.Overlap) error {
	bw := bufio.NewWriter(w)
	for i, o := range overlaps {
		if i > 0 {
			bw.WriteByte('\n')
		}
		bw.WriteString(o.String())
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
