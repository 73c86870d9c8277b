package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ersonp/namesift/internal/domain/entities"
)

func TestDetectOverlaps_LeafSiblings(t *testing.T) {
	tree := entities.NewTree("Names")
	doe := tree.AddChild(tree.Root(), "Doe")
	jane := tree.AddChild(doe, "Jane Doe")
	tree.AddChild(jane, "Doe, Jane")
	tree.AddChild(jane, "Doe, Jane (poet)")
	tree.AddChild(jane, "1900-1950")

	overlaps := DetectOverlaps(tree)

	require.Len(t, overlaps, 1)
	assert.Equal(t, "Jane Doe", overlaps[0].Parent)
	assert.Equal(t, []string{"Doe, Jane", "Doe, Jane (poet)", "1900-1950"}, overlaps[0].Siblings)
}

func TestDetectOverlaps_SingleChild(t *testing.T) {
	tree := entities.NewTree("Names")
	tolkien := tree.AddChild(tree.Root(), "Tolkien")
	name := tree.AddChild(tolkien, "J. R. R. Tolkien (writer)")
	tree.AddChild(name, "1892-1973")

	assert.Empty(t, DetectOverlaps(tree))
}

func TestDetectOverlaps_LastChildMustBeLeaf(t *testing.T) {
	tree := entities.NewTree("Names")
	doe := tree.AddChild(tree.Root(), "Doe")
	tree.AddChild(doe, "stray leaf")
	name := tree.AddChild(doe, "Jane Doe")
	tree.AddChild(name, "1900")

	// "stray leaf" is not the last child of Doe, and the name node has one child.
	assert.Empty(t, DetectOverlaps(tree))
}

func TestDetectOverlaps_FromBuiltTree(t *testing.T) {
	records := []entities.Record{
		normalized("Doe, Jane, 1900-1950", "Jane", "", "Doe", "1900-1950"),
		normalized("Doe, Jane", "Jane", "", "Doe", ""),
		normalized("Roe, Rick", "Rick", "", "Roe", "1800"),
	}

	overlaps := DetectOverlaps(BuildTree(records, DefaultGroupOptions()))

	require.Len(t, overlaps, 1)
	assert.Equal(t, "Jane Doe\n    Doe, Jane\n    1900-1950", overlaps[0].String())
}

func TestDetectOverlaps_EmptyTree(t *testing.T) {
	assert.Empty(t, DetectOverlaps(entities.NewTree("Names")))
}
