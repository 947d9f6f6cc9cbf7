package listing

import (
	"time"

	"github.com/evcraddock/rentdesk/internal/resource"
)

// Equal keeps items whose key equals *want. A nil want disables the filter.
func Equal[T any, V comparable](key func(T) V, want *V) Predicate[T] {
	if want == nil {
		return nil
	}
	w := *want
	return func(it T) bool {
		return key(it) == w
	}
}

// EqualOptional is Equal for keys that may be absent on an item. Items
// without the key never match a set filter.
func EqualOptional[T any, V comparable](key func(T) *V, want *V) Predicate[T] {
	if want == nil {
		return nil
	}
	w := *want
	return func(it T) bool {
		v := key(it)
		return v != nil && *v == w
	}
}

// DateRange keeps items whose date falls within [from, to]. Either bound
// may be nil. Items with an unparseable date are dropped while a bound is
// set.
func DateRange[T any](date func(T) string, from, to *time.Time) Predicate[T] {
	if from == nil && to == nil {
		return nil
	}
	return func(it T) bool {
		d, err := resource.ParseDate(date(it))
		if err != nil {
			return false
		}
		if from != nil && d.Before(*from) {
			return false
		}
		if to != nil && d.After(*to) {
			return false
		}
		return true
	}
}

// Ptr returns a pointer to a copy of v, for building optional filters.
func Ptr[V any](v V) *V {
	return &v
}
