package payment

import (
	"strconv"
	"time"

	"github.com/evcraddock/rentdesk/internal/lease"
	"github.com/evcraddock/rentdesk/internal/listing"
)

// SortKey selects the payment list order.
type SortKey string

const (
	SortDate   SortKey = "date"
	SortAmount SortKey = "amount"
	SortStatus SortKey = "status"
)

// Valid returns true if k is a known sort key.
func (k SortKey) Valid() bool {
	switch k {
	case SortDate, SortAmount, SortStatus:
		return true
	}
	return false
}

// Filters is the payment list filter state. From and To bound the payment
// date inclusively.
type Filters struct {
	Search       string     `json:"search,omitempty"`
	TenantID     *int64     `json:"tenantId,omitempty"`
	LeaseID      *int64     `json:"leaseId,omitempty"`
	Method       *Method    `json:"method,omitempty"`
	Status       *Status    `json:"status,omitempty"`
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
	TenantNames   map[int64]string
	Leases        map[int64]lease.Lease
	PropertyNames map[int64]string
}

// TenantName returns the payer's name, or the tenant id.
func (lk Lookups) TenantName(p Payment) string {
	return listing.Label(lk.TenantNames, p.TenantID, strconv.FormatInt(p.TenantID, 10))
}

// PropertyName returns the name of the property the payment's lease is on,
// or fallback when the lease or property is unknown.
func (lk Lookups) PropertyName(p Payment, fallback string) string {
	l, ok := lk.Leases[p.LeaseID]
	if !ok {
		return fallback
	}
	return listing.Label(lk.PropertyNames, l.PropertyID, fallback)
}

// Lease returns the payment's lease if known.
func (lk Lookups) Lease(p Payment) (lease.Lease, bool) {
	l, ok := lk.Leases[p.LeaseID]
	return l, ok
}

// Apply returns the payments matching f in display order.
func (f Filters) Apply(payments []Payment, lk Lookups) []Payment {
	return listing.Apply(payments, listing.Spec[Payment]{
		Archive:    listing.ArchiveMode(f.ShowArchived, f.OnlyArchived),
		IsArchived: func(p Payment) bool { return p.Archived },
		Search:     f.Search,
		SearchFields: func(p Payment) []string {
			return []string{
				listing.Label(lk.TenantNames, p.TenantID, ""),
				lk.PropertyName(p, ""),
				p.Reference,
			}
		},
		Filters: []listing.Predicate[Payment]{
			listing.Equal(func(p Payment) int64 { return p.TenantID }, f.TenantID),
			listing.Equal(func(p Payment) int64 { return p.LeaseID }, f.LeaseID),
			listing.Equal(func(p Payment) Method { return p.Method }, f.Method),
			listing.Equal(func(p Payment) Status { return p.Status }, f.Status),
			listing.DateRange(func(p Payment) string { return p.Date }, f.From, f.To),
		},
		Compare: f.compare(),
	})
}

func (f Filters) compare() func(a, b Payment) int {
	switch f.SortBy {
	case SortAmount:
		return listing.Descending(listing.By(func(p Payment) float64 { return p.Amount }))
	case SortStatus:
		return listing.ByText(func(p Payment) string { return string(p.Status) })
	}
	return listing.Descending(listing.ByDate(func(p Payment) string { return p.Date }))
}
