package dashboard

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/evcraddock/rentdesk/internal/lease"
	"github.com/evcraddock/rentdesk/internal/listing"
	"github.com/evcraddock/rentdesk/internal/maintenance"
	"github.com/evcraddock/rentdesk/internal/payment"
	"github.com/evcraddock/rentdesk/internal/property"
	"github.com/evcraddock/rentdesk/internal/resource"
	"github.com/evcraddock/rentdesk/internal/tenant"
)

// snapshot holds the raw lists a view needs.
type snapshot struct {
	properties  []property.Property
	tenants     []tenant.Tenant
	leases      []lease.Lease
	payments    []payment.Payment
	maintenance []maintenance.Request
}

// fetch loads the named raw lists concurrently.
func (d *Dashboard) fetch(ctx context.Context, names ...resource.Name) (*snapshot, error) {
	var s snapshot
	g, ctx := errgroup.WithContext(ctx)
	for _, n := range names {
		switch n {
		case resource.Properties:
			g.Go(func() (err error) { s.properties, err = load(ctx, d, property.Resource); return })
		case resource.Tenants:
			g.Go(func() (err error) { s.tenants, err = load(ctx, d, tenant.Resource); return })
		case resource.Leases:
			g.Go(func() (err error) { s.leases, err = load(ctx, d, lease.Resource); return })
		case resource.Payments:
			g.Go(func() (err error) { s.payments, err = load(ctx, d, payment.Resource); return })
		case resource.MaintenanceRequests:
			g.Go(func() (err error) { s.maintenance, err = load(ctx, d, maintenance.Resource); return })
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &s, nil
}

func (s *snapshot) propertyNames() map[int64]string {
	return property.Names(s.properties)
}

func (s *snapshot) tenantNames() map[int64]string {
	return tenant.Names(s.tenants)
}

// PropertyList is a derived property view.
type PropertyList struct {
	Items []property.Property
}

// Properties returns the properties matching f.
func (d *Dashboard) Properties(ctx context.Context, f property.Filters) (PropertyList, error) {
	s, err := d.fetch(ctx, resource.Properties)
	if err != nil {
		return PropertyList{}, err
	}
	return PropertyList{Items: f.Apply(s.properties)}, nil
}

// TenantList is a derived tenant view with its lookups.
type TenantList struct {
	Items   []tenant.Tenant
	Lookups tenant.Lookups
}

// Tenants returns the tenants matching f.
func (d *Dashboard) Tenants(ctx context.Context, f tenant.Filters) (TenantList, error) {
	s, err := d.fetch(ctx, resource.Tenants, resource.Properties)
	if err != nil {
		return TenantList{}, err
	}
	lk := tenant.Lookups{PropertyNames: s.propertyNames()}
	return TenantList{Items: f.Apply(s.tenants, lk), Lookups: lk}, nil
}

// LeaseList is a derived lease view. Now is the instant its display
// statuses were computed at.
type LeaseList struct {
	Items   []lease.Lease
	Lookups lease.Lookups
	Now     time.Time
}

// Leases returns the leases matching f.
func (d *Dashboard) Leases(ctx context.Context, f lease.Filters) (LeaseList, error) {
	s, err := d.fetch(ctx, resource.Leases, resource.Properties, resource.Tenants)
	if err != nil {
		return LeaseList{}, err
	}
	now := d.now()
	lk := lease.Lookups{PropertyNames: s.propertyNames(), TenantNames: s.tenantNames()}
	return LeaseList{Items: f.Apply(s.leases, lk, now), Lookups: lk, Now: now}, nil
}

// PaymentList is a derived payment view with its lookups.
type PaymentList struct {
	Items   []payment.Payment
	Lookups payment.Lookups
}

// Payments returns the payments matching f.
func (d *Dashboard) Payments(ctx context.Context, f payment.Filters) (PaymentList, error) {
	s, err := d.fetch(ctx, resource.Payments, resource.Tenants, resource.Leases, resource.Properties)
	if err != nil {
		return PaymentList{}, err
	}
	lk := payment.Lookups{
		TenantNames:   s.tenantNames(),
		Leases:        listing.Index(s.leases),
		PropertyNames: s.propertyNames(),
	}
	return PaymentList{Items: f.Apply(s.payments, lk), Lookups: lk}, nil
}

// MaintenanceList is a derived maintenance view with its lookups.
type MaintenanceList struct {
	Items   []maintenance.Request
	Lookups maintenance.Lookups
}

// Maintenance returns the maintenance requests matching f.
func (d *Dashboard) Maintenance(ctx context.Context, f maintenance.Filters) (MaintenanceList, error) {
	s, err := d.fetch(ctx, resource.MaintenanceRequests, resource.Properties, resource.Tenants)
	if err != nil {
		return MaintenanceList{}, err
	}
	lk := maintenance.Lookups{PropertyNames: s.propertyNames(), TenantNames: s.tenantNames()}
	return MaintenanceList{Items: f.Apply(s.maintenance, lk), Lookups: lk}, nil
}
