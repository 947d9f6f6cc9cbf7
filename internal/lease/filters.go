package lease

import (
	"strconv"
	"time"

	"github.com/evcraddock/rentdesk/internal/listing"
)

// SortKey selects the lease list order.
type SortKey string

const (
	SortEnd   SortKey = "end"
	SortStart SortKey = "start"
	SortRent  SortKey = "rent"
)

// Valid returns true if k is a known sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortEnd, SortStart, SortRent:
		return true
	}
	return false
}

// Filters is the lease list filter state. Status filters on the derived
// display status; DisplayArchived selects only archived leases.
type Filters struct {
	Search       string         `json:"search,omitempty"`
	Status       *DisplayStatus `json:"status,omitempty"`
	PropertyID   *int64         `json:"propertyId,omitempty"`
	TenantID     *int64         `json:"tenantId,omitempty"`
	ShowArchived bool           `json:"showArchived,omitempty"`
	OnlyArchived bool           `json:"onlyArchived,omitempty"`
	SortBy       SortKey        `json:"sortBy,omitempty"`
}

// DefaultFilters returns the initial filter state.
func DefaultFilters() Filters {
	return Filters{SortBy: SortEnd}
}

// Lookups resolves related records for search and display.
type Lookups struct {
	PropertyNames map[int64]string
	TenantNames   map[int64]string
}

// PropertyName returns the lease's property name, or its id.
func (lk Lookups) PropertyName(l Lease) string {
	return listing.Label(lk.PropertyNames, l.PropertyID, strconv.FormatInt(l.PropertyID, 10))
}

// TenantName returns the lease's tenant name, or its id.
func (lk Lookups) TenantName(l Lease) string {
	return listing.Label(lk.TenantNames, l.TenantID, strconv.FormatInt(l.TenantID, 10))
}

// Apply returns the leases matching f in display order. now is used for
// every derived status in the run.
func (f Filters) Apply(leases []Lease, lk Lookups, now time.Time) []Lease {
	archive := listing.ArchiveMode(f.ShowArchived, f.OnlyArchived)
	var status *DisplayStatus
	if f.Status != nil {
		if *f.Status == DisplayArchived {
			archive = listing.OnlyArchived
		} else {
			status = f.Status
		}
	}

	return listing.Apply(leases, listing.Spec[Lease]{
		Archive:    archive,
		IsArchived: func(l Lease) bool { return l.Archived },
		Search:     f.Search,
		SearchFields: func(l Lease) []string {
			return []string{
				listing.Label(lk.PropertyNames, l.PropertyID, ""),
				listing.Label(lk.TenantNames, l.TenantID, ""),
				l.Unit,
			}
		},
		Filters: []listing.Predicate[Lease]{
			listing.Equal(func(l Lease) int64 { return l.PropertyID }, f.PropertyID),
			listing.Equal(func(l Lease) int64 { return l.TenantID }, f.TenantID),
			listing.Equal(func(l Lease) DisplayStatus { return l.DisplayStatus(now) }, status),
		},
		Compare: f.compare(),
	})
}

func (f Filters) compare() func(a, b Lease) int {
	switch f.SortBy {
	case SortStart:
		return listing.ByDate(func(l Lease) string { return l.StartDate })
	case SortRent:
		return listing.Descending(listing.By(func(l Lease) float64 { return l.RentAmount }))
	}
	return listing.ByDate(func(l Lease) string { return l.EndDate })
}
