package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/evcraddock/rentdesk/internal/lease"
	"github.com/evcraddock/rentdesk/internal/maintenance"
	"github.com/evcraddock/rentdesk/internal/payment"
	"github.com/evcraddock/rentdesk/internal/property"
	"github.com/evcraddock/rentdesk/internal/resource"
	"github.com/evcraddock/rentdesk/internal/tenant"
)

// Seed fills an empty database with a small demo portfolio. Lease dates are
// relative to now so the demo always has leases in each display status. It
// does nothing when any property already exists.
func (s *Store) Seed(ctx context.Context, now time.Time) error {
	n, err := s.Count(ctx, resource.Properties)
	if err != nil {
		return err
	}
	if n > 0 {
		slog.Info("database already has data, skipping seed", "properties", n)
		return nil
	}

	day := func(offset int) string {
		return resource.FormatDate(now.AddDate(0, 0, offset))
	}
	cost := func(v float64) *float64 { return &v }

	properties := []property.Property{
		{Name: "Sunset Apartments", Location: "Kilimani, Nairobi", TotalUnits: 24, OccupiedUnits: 22, MonthlyRevenue: 1320000, Status: property.StatusActive},
		{Name: "Riverside Towers", Location: "Westlands, Nairobi", TotalUnits: 40, OccupiedUnits: 35, MonthlyRevenue: 2450000, Status: property.StatusActive},
		{Name: "Garden Court", Location: "Nyali, Mombasa", TotalUnits: 12, OccupiedUnits: 8, MonthlyRevenue: 480000, Status: property.StatusActive},
		{Name: "Hilltop Residences", Location: "Karen, Nairobi", TotalUnits: 8, OccupiedUnits: 0, MonthlyRevenue: 0, Status: property.StatusInactive},
	}
	propIDs, err := seedAll(ctx, s, resource.Properties, properties)
	if err != nil {
		return err
	}

	tenants := []tenant.Tenant{
		{Name: "Grace Wanjiku", Unit: "A1", Phone: "+254712345678", RentAmount: 60000, Status: tenant.StatusActive, PaymentStatus: tenant.PaymentPaid, PropertyID: propIDs[0]},
		{Name: "Brian Otieno", Unit: "B4", Phone: "+254723456789", RentAmount: 70000, Status: tenant.StatusActive, PaymentStatus: tenant.PaymentPending, PropertyID: propIDs[1]},
		{Name: "Amina Hassan", Unit: "C2", Phone: "+254734567890", RentAmount: 40000, Status: tenant.StatusActive, PaymentStatus: tenant.PaymentOverdue, PropertyID: propIDs[2]},
		{Name: "Peter Kamau", Unit: "A7", Phone: "+254745678901", RentAmount: 55000, Status: tenant.StatusInactive, PaymentStatus: tenant.PaymentPaid, PropertyID: propIDs[0]},
	}
	tenantIDs, err := seedAll(ctx, s, resource.Tenants, tenants)
	if err != nil {
		return err
	}

	leases := []lease.Lease{
		{PropertyID: propIDs[0], TenantID: tenantIDs[0], Unit: "A1", StartDate: day(-180), EndDate: day(185), RentAmount: 60000, Status: lease.StatusActive},
		{PropertyID: propIDs[1], TenantID: tenantIDs[1], Unit: "B4", StartDate: day(-345), EndDate: day(20), RentAmount: 70000, Status: lease.StatusActive},
		{PropertyID: propIDs[2], TenantID: tenantIDs[2], Unit: "C2", StartDate: day(30), EndDate: day(395), RentAmount: 40000, Status: lease.StatusPending},
		{PropertyID: propIDs[0], TenantID: tenantIDs[3], Unit: "A7", StartDate: day(-400), EndDate: day(-35), RentAmount: 55000, Status: lease.StatusTerminated},
	}
	leaseIDs, err := seedAll(ctx, s, resource.Leases, leases)
	if err != nil {
		return err
	}

	payments := []payment.Payment{
		{TenantID: tenantIDs[0], LeaseID: leaseIDs[0], Amount: 60000, Method: payment.MethodMPesa, Date: day(-30), Status: payment.StatusCompleted, Reference: "QJK4H7T2LM"},
		{TenantID: tenantIDs[0], LeaseID: leaseIDs[0], Amount: 60000, Method: payment.MethodMPesa, Date: day(-1), Status: payment.StatusCompleted, Reference: "QJL9P3X8NB"},
		{TenantID: tenantIDs[1], LeaseID: leaseIDs[1], Amount: 70000, Method: payment.MethodBankTransfer, Date: day(-3), Status: payment.StatusPending, Reference: "BT-20931"},
		{TenantID: tenantIDs[2], LeaseID: leaseIDs[2], Amount: 40000, Method: payment.MethodCash, Date: day(-40), Status: payment.StatusOverdue, Reference: "CASH-0412"},
	}
	if _, err := seedAll(ctx, s, resource.Payments, payments); err != nil {
		return err
	}

	requests := []maintenance.Request{
		{PropertyID: propIDs[0], TenantID: &tenantIDs[0], Title: "Leaking kitchen tap", Priority: maintenance.PriorityMedium, Status: maintenance.StatusOpen, DateSubmitted: day(-2), EstimatedCost: cost(3500)},
		{PropertyID: propIDs[1], Title: "Lift out of service", Priority: maintenance.PriorityCritical, Status: maintenance.StatusInProgress, DateSubmitted: day(-5), EstimatedCost: cost(180000)},
		{PropertyID: propIDs[2], TenantID: &tenantIDs[2], Title: "Repaint stairwell", Priority: maintenance.PriorityLow, Status: maintenance.StatusPending, DateSubmitted: day(-14)},
	}
	if _, err := seedAll(ctx, s, resource.MaintenanceRequests, requests); err != nil {
		return err
	}

	slog.Info("seeded demo data",
		"properties", len(properties),
		"tenants", len(tenants),
		"leases", len(leases),
		"payments", len(payments),
		"maintenance", len(requests),
	)
	return nil
}

// seedAll inserts records and returns their ids in order.
func seedAll[T any](ctx context.Context, s *Store, name resource.Name, records []T) ([]int64, error) {
	ids := make([]int64, 0, len(records))
	for i, r := range records {
		body, err := json.Marshal(r)
		if err != nil {
			return nil, fmt.Errorf("encoding %s seed %d: %w", name, i, err)
		}
		saved, err := s.Insert(ctx, name, body)
		if err != nil {
			return nil, fmt.Errorf("seeding %s: %w", name, err)
		}
		var base resource.Base
		if err := json.Unmarshal(saved, &base); err != nil {
			return nil, fmt.Errorf("decoding %s seed %d: %w", name, i, err)
		}
		ids = append(ids, base.ID)
	}
	return ids, nil
}
