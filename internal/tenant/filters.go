package tenant

import (
	"strconv"

	"github.com/evcraddock/rentdesk/internal/listing"
)

// SortKey selects the tenant list order.
type SortKey string

const (
	SortName    SortKey = "name"
	SortRent    SortKey = "rent"
	SortPayment SortKey = "payment"
)

// Valid returns true if k is a known sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortName, SortRent, SortPayment:
		return true
	}
	return false
}

// Filters is the tenant list filter state.
type Filters struct {
	Search       string  `json:"search,omitempty"`
	Status       *Status `json:"status,omitempty"`
	PropertyID   *int64  `json:"propertyId,omitempty"`
	ShowArchived bool    `json:"showArchived,omitempty"`
	OnlyArchived bool    `json:"onlyArchived,omitempty"`
	SortBy       SortKey `json:"sortBy,omitempty"`
}

// DefaultFilters returns the initial filter state.
func DefaultFilters() Filters {
	return Filters{SortBy: SortName}
}

// Lookups resolves related records for search and display.
type Lookups struct {
	PropertyNames map[int64]string
}

// PropertyName returns the tenant's property name, or its id when the
// property is unknown.
func (l Lookups) PropertyName(t Tenant) string {
	return listing.Label(l.PropertyNames, t.PropertyID, strconv.FormatInt(t.PropertyID, 10))
}

// Apply returns the tenants matching f in display order.
func (f Filters) Apply(tenants []Tenant, lk Lookups) []Tenant {
	return listing.Apply(tenants, listing.Spec[Tenant]{
		Archive:    listing.ArchiveMode(f.ShowArchived, f.OnlyArchived),
		IsArchived: func(t Tenant) bool { return t.Archived },
		Search:     f.Search,
		SearchFields: func(t Tenant) []string {
			return []string{t.Name, t.Unit, t.Phone, listing.Label(lk.PropertyNames, t.PropertyID, "")}
		},
		Filters: []listing.Predicate[Tenant]{
			listing.Equal(func(t Tenant) Status { return t.Status }, f.Status),
			listing.Equal(func(t Tenant) int64 { return t.PropertyID }, f.PropertyID),
		},
		Compare: f.compare(),
	})
}

func (f Filters) compare() func(a, b Tenant) int {
	switch f.SortBy {
	case SortRent:
		return listing.Descending(listing.By(func(t Tenant) float64 { return t.RentAmount }))
	case SortPayment:
		return listing.ByText(func(t Tenant) string { return string(t.PaymentStatus) })
	}
	return listing.ByText(func(t Tenant) string { return t.Name })
}
