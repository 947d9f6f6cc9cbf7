package property

import (
	"github.com/evcraddock/rentdesk/internal/listing"
)

// SortKey selects the property list order.
type SortKey string

const (
	SortName      SortKey = "name"
	SortRevenue   SortKey = "revenue"
	SortOccupancy SortKey = "occupancy"
)

// Valid returns true if k is a known sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortName, SortRevenue, SortOccupancy:
		return true
	}
	return false
}

// Filters is the property list filter state.
type Filters struct {
	Search       string  `json:"search,omitempty"`
	Status       *Status `json:"status,omitempty"`
	ShowArchived bool    `json:"showArchived,omitempty"`
	OnlyArchived bool    `json:"onlyArchived,omitempty"`
	SortBy       SortKey `json:"sortBy,omitempty"`
}

// DefaultFilters returns the initial filter state.
func DefaultFilters() Filters {
	return Filters{SortBy: SortName}
}

// Apply returns the properties matching f in display order.
func (f Filters) Apply(props []Property) []Property {
	return listing.Apply(props, listing.Spec[Property]{
		Archive:    listing.ArchiveMode(f.ShowArchived, f.OnlyArchived),
		IsArchived: func(p Property) bool { return p.Archived },
		Search:     f.Search,
		SearchFields: func(p Property) []string {
			return []string{p.Name, p.Location}
		},
		Filters: []listing.Predicate[Property]{
			listing.Equal(func(p Property) Status { return p.Status }, f.Status),
		},
		Compare: f.compare(),
	})
}

func (f Filters) compare() func(a, b Property) int {
	switch f.SortBy {
	case SortRevenue:
		return listing.Descending(listing.By(func(p Property) float64 { return p.MonthlyRevenue }))
	case SortOccupancy:
		return listing.Descending(listing.By(Property.Occupancy))
	}
	return listing.ByText(func(p Property) string { return p.Name })
}
