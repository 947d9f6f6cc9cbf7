// Package listing implements the derived list pipeline shared by every
// listable resource: archive partition, free-text search, exact filters,
// date ranges and a stable sort.
package listing

import (
	"slices"
	"strings"
)

// Predicate reports whether an item stays in the list.
type Predicate[T any] func(T) bool

// Archive selects which side of the archive partition is shown.
type Archive int

const (
	// HideArchived keeps only live items.
	HideArchived Archive = iota
	// ShowArchived keeps live and archived items.
	ShowArchived
	// OnlyArchived keeps only archived items.
	OnlyArchived
)

// ArchiveMode maps the common filter flags to an Archive value. onlyArchived
// wins over showArchived.
func ArchiveMode(showArchived, onlyArchived bool) Archive {
	switch {
	case onlyArchived:
		return OnlyArchived
	case showArchived:
		return ShowArchived
	}
	return HideArchived
}

// Spec configures one pipeline run.
type Spec[T any] struct {
	Archive    Archive
	IsArchived func(T) bool

	// Search is matched case-insensitively as a substring of any value
	// returned by SearchFields.
	Search       string
	SearchFields func(T) []string

	// Filters are ANDed. Nil entries are ignored.
	Filters []Predicate[T]

	// Compare orders the result. It runs after every filter and is stable,
	// so equal items keep their input order. Nil keeps input order.
	Compare func(a, b T) int
}

// Apply runs the pipeline over items and returns a new slice. items is not
// modified.
func Apply[T any](items []T, s Spec[T]) []T {
	term := strings.ToLower(strings.TrimSpace(s.Search))

	out := make([]T, 0, len(items))
	for _, it := range items {
		if !s.inPartition(it) {
			continue
		}
		if term != "" && !s.matches(it, term) {
			continue
		}
		if !s.passes(it) {
			continue
		}
		out = append(out, it)
	}

	if s.Compare != nil {
		slices.SortStableFunc(out, s.Compare)
	}
	return out
}

func (s Spec[T]) inPartition(it T) bool {
	if s.IsArchived == nil {
		return true
	}
	archived := s.IsArchived(it)
	switch s.Archive {
	case ShowArchived:
		return true
	case OnlyArchived:
		return archived
	}
	return !archived
}

func (s Spec[T]) matches(it T, term string) bool {
	if s.SearchFields == nil {
		return true
	}
	for _, f := range s.SearchFields(it) {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

func (s Spec[T]) passes(it T) bool {
	for _, p := range s.Filters {
		if p != nil && !p(it) {
			return false
		}
	}
	return true
}
