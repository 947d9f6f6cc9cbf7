package dashboard

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/evcraddock/rentdesk/internal/listing"
	"github.com/evcraddock/rentdesk/internal/payment"
	"github.com/evcraddock/rentdesk/internal/property"
	"github.com/evcraddock/rentdesk/internal/resource"
)

// Counts is the number of live (non-archived) records per section.
type Counts struct {
	Properties  int `json:"properties"`
	Tenants     int `json:"tenants"`
	Leases      int `json:"leases"`
	Payments    int `json:"payments"`
	Maintenance int `json:"maintenance"`
}

// Metrics are the headline portfolio figures.
type Metrics struct {
	TotalProperties int             `json:"totalProperties"`
	TotalUnits      int             `json:"totalUnits"`
	OccupiedUnits   int             `json:"occupiedUnits"`
	OccupancyRate   float64         `json:"occupancyRate"`
	MonthlyRevenue  decimal.Decimal `json:"monthlyRevenue"`
	OutstandingRent decimal.Decimal `json:"outstandingRent"`
	Counts          Counts          `json:"counts"`
}

// Counts returns the live record counts shown next to each section.
func (d *Dashboard) Counts(ctx context.Context) (Counts, error) {
	s, err := d.fetch(ctx, resource.Properties, resource.Tenants, resource.Leases, resource.Payments, resource.MaintenanceRequests)
	if err != nil {
		return Counts{}, err
	}
	return s.counts(), nil
}

func (s *snapshot) counts() Counts {
	return Counts{
		Properties:  listing.Live(s.properties),
		Tenants:     listing.Live(s.tenants),
		Leases:      listing.Live(s.leases),
		Payments:    listing.Live(s.payments),
		Maintenance: listing.Live(s.maintenance),
	}
}

// Metrics computes the portfolio figures over live records. Revenue counts
// active properties; outstanding rent is pending plus overdue payments.
func (d *Dashboard) Metrics(ctx context.Context) (Metrics, error) {
	s, err := d.fetch(ctx, resource.Properties, resource.Tenants, resource.Leases, resource.Payments, resource.MaintenanceRequests)
	if err != nil {
		return Metrics{}, err
	}

	m := Metrics{Counts: s.counts()}
	for _, p := range s.properties {
		if p.Archived {
			continue
		}
		m.TotalProperties++
		m.TotalUnits += p.TotalUnits
		m.OccupiedUnits += p.OccupiedUnits
		if p.Status == property.StatusActive {
			m.MonthlyRevenue = m.MonthlyRevenue.Add(decimal.NewFromFloat(p.MonthlyRevenue))
		}
	}
	if m.TotalUnits > 0 {
		m.OccupancyRate = float64(m.OccupiedUnits) / float64(m.TotalUnits)
	}

	live := payment.Filters{}.Apply(s.payments, payment.Lookups{})
	m.OutstandingRent = payment.Summarize(live).Outstanding
	return m, nil
}

// PaymentStats summarises the payments matching f.
func (d *Dashboard) PaymentStats(ctx context.Context, f payment.Filters) (payment.Stats, error) {
	list, err := d.Payments(ctx, f)
	if err != nil {
		return payment.Stats{}, err
	}
	return payment.Summarize(list.Items), nil
}
