package entities

import "strings"

// OverlapIndent prefixes each sibling line of an overlap block.
const OverlapIndent = "    "

// Overlap is a parent node whose children likely denote the same person.
type Overlap struct {
	Parent   string   `json:"parent"`
	Siblings []string `json:"siblings"`
}

// String renders the block: the parent label, then every sibling indented.
func (o Overlap) String() string {
	var b strings.Builder
	b.WriteString(o.Parent)
	for _, s := range o.Siblings {
		b.WriteString("\n")
		b.WriteString(OverlapIndent)
		b.WriteString(s)
	}
	return b.String()
}
