package services

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"

	"github.com/ersonp/namesift/internal/domain/entities"
)

// DefaultRootLabel labels the hierarchy root when none is configured.
const DefaultRootLabel = "Names"

// GroupOptions controls hierarchy construction.
type GroupOptions struct {
	ConsiderDates bool
	RootLabel     string
}

// DefaultGroupOptions returns options with dates considered.
func DefaultGroupOptions() GroupOptions {
	return GroupOptions{ConsiderDates: true, RootLabel: DefaultRootLabel}
}

// nameKey is the composite key of the name level. Absent fields are "".
type nameKey struct {
	last, first, middle, paren string
}

func nameKeyOf(r *entities.Record) nameKey {
	k := nameKey{
		last:   entities.Str(r.LastName),
		first:  entities.Str(r.FirstName),
		middle: entities.Str(r.MiddleName),
	}
	if len(r.Parentheticals) > 0 {
		k.paren = r.Parentheticals[0]
	}
	return k
}

func (k nameKey) compare(o nameKey) int {
	return cmp.Or(
		strings.Compare(k.last, o.last),
		strings.Compare(k.first, o.first),
		strings.Compare(k.middle, o.middle),
		strings.Compare(k.paren, o.paren),
	)
}

// label renders "first middle last (paren)", skipping empty parts.
func (k nameKey) label() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{k.first, k.middle, k.last} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	label := strings.Join(parts, " ")
	if k.paren != "" {
		label += " (" + k.paren + ")"
	}
	return strings.TrimSpace(label)
}

// BuildTree groups normalized records into a root → surname → name → dates
// hierarchy. Only person records not flagged for manual review participate.
func BuildTree(records []entities.Record, opts GroupOptions) *entities.Tree {
	rootLabel := opts.RootLabel
	if rootLabel == "" {
		rootLabel = DefaultRootLabel
	}
	tree := entities.NewTree(rootLabel)

	people := make([]*entities.Record, 0, len(records))
	for i := range records {
		if records[i].Groupable() {
			people = append(people, &records[i])
		}
	}

	// A full sort on the name key also orders by surname, so one sort serves
	// the first two levels.
	slices.SortStableFunc(people, func(a, b *entities.Record) int {
		return nameKeyOf(a).compare(nameKeyOf(b))
	})

	for _, surnameGroup := range groupAdjacent(people, func(r *entities.Record) string {
		return entities.Str(r.LastName)
	}) {
		surnameNode := tree.AddChild(tree.Root(), entities.Str(surnameGroup[0].LastName))

		for _, nameGroup := range groupAdjacent(surnameGroup, nameKeyOf) {
			label := nameKeyOf(nameGroup[0]).label()
			if label == "" {
				addLeaves(tree, surnameNode, nameGroup)
				continue
			}
			nameNode := tree.AddChild(surnameNode, label)

			if !opts.ConsiderDates {
				addLeaves(tree, nameNode, nameGroup)
				continue
			}
			addDateLevel(tree, nameNode, nameGroup)
		}
	}
	return tree
}

// addDateLevel adds one node per distinct non-empty date and one leaf per
// undated record, in date order.
func addDateLevel(tree *entities.Tree, parent entities.NodeID, group []*entities.Record) {
	dated := slices.Clone(group)
	slices.SortStableFunc(dated, func(a, b *entities.Record) int {
		return strings.Compare(entities.Str(a.Dates), entities.Str(b.Dates))
	})
	for _, dateGroup := range groupAdjacent(dated, func(r *entities.Record) string {
		return entities.Str(r.Dates)
	}) {
		if date := entities.Str(dateGroup[0].Dates); date != "" {
			tree.AddChild(parent, date)
			continue
		}
		addLeaves(tree, parent, dateGroup)
	}
}

func addLeaves(tree *entities.Tree, parent entities.NodeID, group []*entities.Record) {
	for _, r := range group {
		tree.AddChild(parent, entities.Str(r.Name))
	}
}

// groupAdjacent splits an already sorted slice into runs of equal keys.
func groupAdjacent[T any, K comparable](items []T, key func(T) K) [][]T {
	var groups [][]T
	start := 0
	for i := 1; i <= len(items); i++ {
		if i == len(items) || key(items[i]) != key(items[start]) {
			groups = append(groups, items[start:i])
			start = i
		}
	}
	return groups
}

// GroupingService builds hierarchies and logs what was left out.
type GroupingService struct {
	log *slog.Logger
}

// NewGroupingService creates a new grouping service.
func NewGroupingService(log *slog.Logger) *GroupingService {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &GroupingService{log: log}
}

// Group builds the hierarchy for records.
func (s *GroupingService) Group(records []entities.Record, opts GroupOptions) *entities.Tree {
	excluded := 0
	for i := range records {
		if !records[i].Groupable() {
			excluded++
		}
	}
	tree := BuildTree(records, opts)
	s.log.Info("hierarchy built",
		"nodes", tree.Len(),
		"surnames", len(tree.Children(tree.Root())),
		"excluded", excluded,
		"consider_dates", opts.ConsiderDates,
	)
	return tree
}
