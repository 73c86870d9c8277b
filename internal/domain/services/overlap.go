package services

import "github.com/ersonp/namesift/internal/domain/entities"

// DetectOverlaps reports every parent cluster whose last child is a leaf and
// which holds at least two children. Each block lists the parent label and all
// sibling labels. Only the last child triggers a report, so a parent appears at
// most once.
func DetectOverlaps(tree *entities.Tree) []entities.Overlap {
	var overlaps []entities.Overlap
	tree.Walk(func(v entities.Visit) bool {
		if !tree.IsLeaf(v.ID) || !tree.IsLastChild(v.ID) {
			return true
		}
		parent, _ := tree.Parent(v.ID)
		if len(tree.Children(parent)) < 2 {
			return true
		}
		overlaps = append(overlaps, entities.Overlap{
			Parent:   tree.Label(parent),
			Siblings: tree.ChildLabels(parent),
		})
		return true
	})
	return overlaps
}
