package maintenance

import (
	"strconv"
	"time"

	"github.com/evcraddock/rentdesk/internal/listing"
)

// SortKey selects the request list order.
type SortKey string

const (
	SortDate     SortKey = "date"
	SortPriority SortKey = "priority"
	SortStatus   SortKey = "status"
	SortCost     SortKey = "cost"
)

// Valid returns true if k is a known sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortDate, SortPriority, SortStatus, SortCost:
		return true
	}
	return false
}

// Filters is the maintenance list filter state. From and To bound the
// submission date inclusively.
type Filters struct {
	Search       string     `json:"search,omitempty"`
	PropertyID   *int64     `json:"propertyId,omitempty"`
	TenantID     *int64     `json:"tenantId,omitempty"`
	Status       *Status    `json:"status,omitempty"`
	Priority     *Priority  `json:"priority,omitempty"`
	From         *time.Time `json:"from,omitempty"`
	To           *time.Time `json:"to,omitempty"`
	ShowArchived bool       `json:"showArchived,omitempty"`
	OnlyArchived bool       `json:"onlyArchived,omitempty"`
	SortBy       SortKey    `json:"sortBy,omitempty"`
}

// DefaultFilters returns the initial filter state.
func DefaultFilters() Filters {
	return Filters{SortBy: SortDate}
}

// Lookups resolves related records for search and display.
type Lookups struct {
	PropertyNames map[int64]string
	TenantNames   map[int64]string
}

// PropertyName returns the request's property name, or its id.
func (lk Lookups) PropertyName(r Request) string {
	return listing.Label(lk.PropertyNames, r.PropertyID, strconv.FormatInt(r.PropertyID, 10))
}

// TenantName returns the reporting tenant's name, its id when unknown, or
// "-" when no tenant is attached.
func (lk Lookups) TenantName(r Request) string {
	if r.TenantID == nil {
		return "-"
	}
	return listing.Label(lk.TenantNames, *r.TenantID, strconv.FormatInt(*r.TenantID, 10))
}

// Apply returns the requests matching f in display order.
func (f Filters) Apply(reqs []Request, lk Lookups) []Request {
	return listing.Apply(reqs, listing.Spec[Request]{
		Archive:    listing.ArchiveMode(f.ShowArchived, f.OnlyArchived),
		IsArchived: func(r Request) bool { return r.Archived },
		Search:     f.Search,
		SearchFields: func(r Request) []string {
			fields := []string{r.Title, listing.Label(lk.PropertyNames, r.PropertyID, "")}
			if r.TenantID != nil {
				fields = append(fields, listing.Label(lk.TenantNames, *r.TenantID, ""))
			}
			return fields
		},
		Filters: []listing.Predicate[Request]{
			listing.Equal(func(r Request) int64 { return r.PropertyID }, f.PropertyID),
			listing.EqualOptional(func(r Request) *int64 { return r.TenantID }, f.TenantID),
			listing.Equal(func(r Request) Status { return r.Status }, f.Status),
			listing.Equal(func(r Request) Priority { return r.Priority }, f.Priority),
			listing.DateRange(func(r Request) string { return r.DateSubmitted }, f.From, f.To),
		},
		Compare: f.compare(),
	})
}

func (f Filters) compare() func(a, b Request) int {
	switch f.SortBy {
	case SortPriority:
		return listing.By(func(r Request) int { return r.Priority.rank() })
	case SortStatus:
		return listing.ByText(func(r Request) string { return string(r.Status) })
	case SortCost:
		return listing.Descending(listing.By(Request.Cost))
	}
	return listing.Descending(listing.ByDate(func(r Request) string { return r.DateSubmitted }))
}
