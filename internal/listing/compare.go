package listing

import (
	"cmp"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/evcraddock/rentdesk/internal/resource"
)

// By orders items ascending by an ordered key.
func By[T any, K cmp.Ordered](key func(T) K) func(a, b T) int {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}

// ByText orders items ascending by a string key using locale-aware
// collation, the way a user expects names to sort.
func ByText[T any](key func(T) string) func(a, b T) int {
	// A Collator keeps internal buffers, so each comparator owns one.
	c := collate.New(language.English, collate.IgnoreCase)
	return func(a, b T) int {
		return c.CompareString(key(a), key(b))
	}
}

// ByDate orders items ascending by an ISO date key. Unparseable dates sort
// as the zero time.
func ByDate[T any](key func(T) string) func(a, b T) int {
	return func(a, b T) int {
		return parseOrZero(key(a)).Compare(parseOrZero(key(b)))
	}
}

// Descending reverses a comparator.
func Descending[T any](c func(a, b T) int) func(a, b T) int {
	return func(a, b T) int {
		return c(b, a)
	}
}

func parseOrZero(s string) time.Time {
	t, err := resource.ParseDate(s)
	if err != nil {
		return time.Time{}
	}
	return t
}
