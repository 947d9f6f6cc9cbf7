package listing

import "github.com/evcraddock/rentdesk/internal/resource"

// Index maps records by id.
func Index[T resource.Entity](items []T) map[int64]T {
	m := make(map[int64]T, len(items))
	for _, it := range items {
		m[it.Key()] = it
	}
	return m
}

// Labels maps record ids to a display label, e.g. property id to name.
func Labels[T resource.Entity](items []T, label func(T) string) map[int64]string {
	m := make(map[int64]string, len(items))
	for _, it := range items {
		m[it.Key()] = label(it)
	}
	return m
}

// Label returns the label for id, or fallback when id is unknown.
func Label(labels map[int64]string, id int64, fallback string) string {
	if l, ok := labels[id]; ok {
		return l
	}
	return fallback
}

// Live counts items that are not archived.
func Live[T resource.Entity](items []T) int {
	n := 0
	for _, it := range items {
		if !it.IsArchived() {
			n++
		}
	}
	return n
}

// Keys returns the ids of items in order.
func Keys[T resource.Entity](items []T) []int64 {
	ids := make([]int64, len(items))
	for i, it := range items {
		ids[i] = it.Key()
	}
	return ids
}
