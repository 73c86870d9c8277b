package render

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"

	"github.com/ersonp/namesift/internal/domain/entities"
)

// Palette
var (
	ColorAccent = lipgloss.AdaptiveColor{Light: "#5A56E0", Dark: "#7571F9"}
	ColorMuted  = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
	ColorWarn   = lipgloss.AdaptiveColor{Light: "#D7A800", Dark: "#F2C94C"}
)

// EmptyLabel stands in for nodes keyed by an absent name part. The styled
// tree would otherwise fold a label-less subtree into its previous sibling.
const EmptyLabel = "(none)"

var (
	enumeratorStyle = lipgloss.NewStyle().Foreground(ColorMuted).PaddingRight(1)
	rootStyle       = lipgloss.NewStyle().Bold(true).Foreground(ColorAccent)
)

// Pretty renders the hierarchy as a styled terminal tree.
func Pretty(t *entities.Tree) string {
	root := styledTree(displayLabel(t.Label(t.Root())))
	root.RootStyle(rootStyle)
	addPrettyChildren(root, t, t.Root())
	return root.String()
}

func addPrettyChildren(parent *tree.Tree, t *entities.Tree, id entities.NodeID) {
	for _, c := range t.Children(id) {
		label := displayLabel(t.Label(c))
		if t.IsLeaf(c) {
			parent.Child(label)
			continue
		}
		sub := styledTree(label)
		addPrettyChildren(sub, t, c)
		parent.Child(sub)
	}
}

func styledTree(label string) *tree.Tree {
	return tree.Root(label).
		Enumerator(tree.RoundedEnumerator).
		EnumeratorStyle(enumeratorStyle)
}

func displayLabel(label string) string {
	if label == "" {
		return EmptyLabel
	}
	return label
}
