package render

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/ersonp/namesift/internal/domain/entities"
)

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
)

// reListMarker matches a leading ordered ("1900. ", "3) ") or bullet ("- ", "+ ")
// list marker that would otherwise start a nested list.
var reListMarker = regexp.MustCompile(`^(?:(\d+)([.)])|([-+]))(\s|$)`)

// Markdown writes the hierarchy as a nested bullet list under a heading named
// after the root, followed by an Overlaps section.
func Markdown(w io.Writer, tree *entities.Tree, overlaps []entities.Overlap) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# %s\n\n", escapeMarkdown(tree.Label(tree.Root())))
	tree.Walk(func(v entities.Visit) bool {
		if v.Depth == 0 {
			return true
		}
		fmt.Fprintf(bw, "%s- %s\n", strings.Repeat("  ", v.Depth-1), escapeMarkdown(tree.Label(v.ID)))
		return true
	})

	fmt.Fprintf(bw, "\n## Overlaps\n\n")
	if len(overlaps) == 0 {
		fmt.Fprintln(bw, "No overlaps detected.")
	}
	for _, o := range overlaps {
		fmt.Fprintf(bw, "### %s\n\n", escapeMarkdown(o.Parent))
		for _, s := range o.Siblings {
			fmt.Fprintf(bw, "- %s\n", escapeMarkdown(s))
		}
		fmt.Fprintln(bw)
	}

	return bw.Flush()
}

func escapeMarkdown(s string) string {
	if s == "" {
		return "_" + EmptyLabel + "_"
	}
	s = markdownEscaper.Replace(s)
	return reListMarker.ReplaceAllString(s, `$1\$2$3$4`)
}
