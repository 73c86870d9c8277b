package render

import (
	"encoding/json"
	"io"

	"github.com/ersonp/namesift/internal/domain/entities"
)

// Node is the nested JSON form of a tree node.
type Node struct {
	Label    string `json:"label"`
	Children []Node `json:"children,omitempty"`
}

// ToNode converts the hierarchy into nested nodes.
func ToNode(tree *entities.Tree) Node {
	return toNode(tree, tree.Root())
}

func toNode(tree *entities.Tree, id entities.NodeID) Node {
	n := Node{Label: tree.Label(id)}
	for _, c := range tree.Children(id) {
		n.Children = append(n.Children, toNode(tree, c))
	}
	return n
}

// JSON writes the hierarchy as indented nested JSON.
func JSON(w io.Writer, tree *entities.Tree) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(ToNode(tree))
}
