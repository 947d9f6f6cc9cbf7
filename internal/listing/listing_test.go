package listing

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcraddock/rentdesk/internal/resource"
)

type item struct {
	resource.Base
	Name   string
	Status string
	Amount float64
	Date   string
}

func items() []item {
	return []item{
		{Base: resource.Base{ID: 1}, Name: "Alpha", Status: "Paid", Amount: 500, Date: "2024-01-10"},
		{Base: resource.Base{ID: 2, Archived: true}, Name: "beta", Status: "Pending", Amount: 1000, Date: "2024-02-10"},
		{Base: resource.Base{ID: 3}, Name: "Gamma", Status: "Pending", Amount: 500, Date: "2024-03-10"},
		{Base: resource.Base{ID: 4}, Name: "delta", Status: "Paid", Amount: 750, Date: "not a date"},
	}
}

func ids(list []item) []int64 {
	out := make([]int64, len(list))
	for i, it := range list {
		out[i] = it.ID
	}
	return out
}

func baseSpec() Spec[item] {
	return Spec[item]{
		IsArchived:   func(i item) bool { return i.Archived },
		SearchFields: func(i item) []string { return []string{i.Name, i.Status} },
	}
}

func TestArchivePartition(t *testing.T) {
	s := baseSpec()
	assert.Equal(t, []int64{1, 3, 4}, ids(Apply(items(), s)))

	s.Archive = ShowArchived
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(Apply(items(), s)))

	s.Archive = OnlyArchived
	assert.Equal(t, []int64{2}, ids(Apply(items(), s)))
}

func TestArchiveMode(t *testing.T) {
	assert.Equal(t, HideArchived, ArchiveMode(false, false))
	assert.Equal(t, ShowArchived, ArchiveMode(true, false))
	assert.Equal(t, OnlyArchived, ArchiveMode(true, true))
}

func TestSearchIsCaseInsensitiveSubstring(t *testing.T) {
	s := baseSpec()
	s.Search = "  ALP "
	assert.Equal(t, []int64{1}, ids(Apply(items(), s)))

	s.Search = "pend"
	assert.Equal(t, []int64{3}, ids(Apply(items(), s)))
}

func TestFiltersAreANDed(t *testing.T) {
	s := baseSpec()
	s.Filters = []Predicate[item]{
		Equal(func(i item) string { return i.Status }, Ptr("Paid")),
		nil,
		func(i item) bool { return i.Amount > 600 },
	}
	assert.Equal(t, []int64{4}, ids(Apply(items(), s)))
}

func TestEqualNilDisables(t *testing.T) {
	assert.Nil(t, Equal(func(i item) string { return i.Status }, nil))
}

func TestDateRangeInclusive(t *testing.T) {
	from := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	s := baseSpec()
	s.Archive = ShowArchived
	s.Filters = []Predicate[item]{DateRange(func(i item) string { return i.Date }, &from, &to)}

	assert.Equal(t, []int64{1, 2, 3}, ids(Apply(items(), s)))
}

func TestDateRangeOpenEnded(t *testing.T) {
	from := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	s := baseSpec()
	s.Filters = []Predicate[item]{DateRange(func(i item) string { return i.Date }, &from, nil)}

	assert.Equal(t, []int64{3}, ids(Apply(items(), s)))
	assert.Nil(t, DateRange(func(i item) string { return i.Date }, nil, nil))
}

func TestFilterStepsCommute(t *testing.T) {
	search := func(i item) bool { return strings.Contains(strings.ToLower(i.Name), "a") }
	paid := Equal(func(i item) string { return i.Status }, Ptr("Paid"))

	a := baseSpec()
	a.Filters = []Predicate[item]{search, paid}
	b := baseSpec()
	b.Filters = []Predicate[item]{paid, search}

	assert.Equal(t, ids(Apply(items(), a)), ids(Apply(items(), b)))
}

func TestSortStableAndIdempotent(t *testing.T) {
	s := baseSpec()
	s.Archive = ShowArchived
	s.Compare = Descending(By(func(i item) float64 { return i.Amount }))

	once := Apply(items(), s)
	require.Equal(t, []int64{2, 4, 1, 3}, ids(once))

	twice := Apply(once, s)
	assert.Equal(t, ids(once), ids(twice))
}

func TestSortRunsAfterFilters(t *testing.T) {
	s := baseSpec()
	s.Filters = []Predicate[item]{Equal(func(i item) string { return i.Status }, Ptr("Pending"))}
	s.Compare = By(func(i item) float64 { return i.Amount })

	assert.Equal(t, []int64{3}, ids(Apply(items(), s)))
}

func TestByTextIgnoresCase(t *testing.T) {
	s := baseSpec()
	s.Compare = ByText(func(i item) string { return i.Name })

	assert.Equal(t, []int64{1, 4, 3}, ids(Apply(items(), s)))
}

func TestByDateUnparseableFirst(t *testing.T) {
	s := baseSpec()
	s.Compare = ByDate(func(i item) string { return i.Date })

	assert.Equal(t, []int64{4, 1, 3}, ids(Apply(items(), s)))
}

func TestApplyDoesNotModifyInput(t *testing.T) {
	in := items()
	s := baseSpec()
	s.Archive = ShowArchived
	s.Compare = Descending(By(func(i item) int64 { return i.ID }))

	_ = Apply(in, s)
	assert.Equal(t, []int64{1, 2, 3, 4}, ids(in))
}

func TestLookups(t *testing.T) {
	list := items()
	labels := Labels(list, func(i item) string { return i.Name })
	assert.Equal(t, "Gamma", Label(labels, 3, "-"))
	assert.Equal(t, "-", Label(labels, 99, "-"))
	assert.Equal(t, 3, Live(list))
	assert.Equal(t, "beta", Index(list)[2].Name)
}
