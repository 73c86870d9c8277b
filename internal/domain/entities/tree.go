package entities

// NodeID addresses a node inside a Tree.
type NodeID int

// NoNode is the parent of the root.
const NoNode NodeID = -1

// Node is one level of the grouping hierarchy.
type Node struct {
	Label    string
	Parent   NodeID
	Children []NodeID
}

// Tree is an arena of nodes addressed by index. Node 0 is the root.
// Nodes are only ever appended; there are no back references besides the
// parent index.
type Tree struct {
	nodes []Node
}

// NewTree creates a tree holding only a root labeled rootLabel.
func NewTree(rootLabel string) *Tree {
	return &Tree{nodes: []Node{{Label: rootLabel, Parent: NoNode}}}
}

// Root returns the root node ID.
func (t *Tree) Root() NodeID {
	return 0
}

// Len returns the number of nodes, root included.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// AddChild appends a new child labeled label under parent and returns its ID.
func (t *Tree) AddChild(parent NodeID, label string) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, Node{Label: label, Parent: parent})
	t.nodes[parent].Children = append(t.nodes[parent].Children, id)
	return id
}

// Label returns the node's display label.
func (t *Tree) Label(id NodeID) string {
	return t.nodes[id].Label
}

// Children returns the node's children in insertion order.
func (t *Tree) Children(id NodeID) []NodeID {
	return t.nodes[id].Children
}

// ChildLabels returns the labels of the node's children in order.
func (t *Tree) ChildLabels(id NodeID) []string {
	children := t.nodes[id].Children
	labels := make([]string, len(children))
	for i, c := range children {
		labels[i] = t.nodes[c].Label
	}
	return labels
}

// Parent returns the node's parent, or false for the root.
func (t *Tree) Parent(id NodeID) (NodeID, bool) {
	p := t.nodes[id].Parent
	return p, p != NoNode
}

// IsLeaf reports whether the node has no children.
func (t *Tree) IsLeaf(id NodeID) bool {
	return len(t.nodes[id].Children) == 0
}

// IsLastChild reports whether the node is positionally the last child of its parent.
// The root is never a last child.
func (t *Tree) IsLastChild(id NodeID) bool {
	p, ok := t.Parent(id)
	if !ok {
		return false
	}
	siblings := t.nodes[p].Children
	return siblings[len(siblings)-1] == id
}

// Visit describes one step of a pre-order walk.
type Visit struct {
	ID    NodeID
	Depth int
	// Last[i] reports whether the ancestor at depth i+1 is its parent's last
	// child; the final element describes the visited node itself. Empty for the root.
	Last []bool
}

// Walk visits every node in pre-order (parent before children, children in
// insertion order). Returning false from fn stops the walk.
func (t *Tree) Walk(fn func(Visit) bool) {
	t.walk(t.Root(), nil, fn)
}

func (t *Tree) walk(id NodeID, last []bool, fn func(Visit) bool) bool {
	if !fn(Visit{ID: id, Depth: len(last), Last: last}) {
		return false
	}
	children := t.nodes[id].Children
	for i, c := range children {
		next := make([]bool, len(last)+1)
		copy(next, last)
		next[len(last)] = i == len(children)-1
		if !t.walk(c, next, fn) {
			return false
		}
	}
	return true
}
