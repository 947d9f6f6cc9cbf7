package dashboard

import (
	"context"
	"fmt"

	"github.com/evcraddock/rentdesk/internal/client"
	"github.com/evcraddock/rentdesk/internal/document"
	"github.com/evcraddock/rentdesk/internal/export"
	"github.com/evcraddock/rentdesk/internal/lease"
	"github.com/evcraddock/rentdesk/internal/listing"
	"github.com/evcraddock/rentdesk/internal/notification"
	"github.com/evcraddock/rentdesk/internal/payment"
	"github.com/evcraddock/rentdesk/internal/resource"
	"github.com/evcraddock/rentdesk/internal/settings"
)

// Get returns one record by id.
func Get[T any](ctx context.Context, d *Dashboard, h resource.Handle[T], id int64) (T, error) {
	return client.Get(ctx, d.client, h, id)
}

// Settings returns the settings singleton, or defaults when none is stored.
func (d *Dashboard) Settings(ctx context.Context) (settings.Settings, error) {
	s, err := client.GetSingleton(ctx, d.client, settings.Resource)
	if client.IsNotFound(err) {
		return settings.Defaults(), nil
	}
	return s, err
}

// UpdateSettings patches the settings singleton after validating the
// merged result.
func (d *Dashboard) UpdateSettings(ctx context.Context, patch map[string]any) (settings.Settings, error) {
	current, err := d.Settings(ctx)
	if err != nil {
		return settings.Settings{}, err
	}
	merged, err := applyPatch(current, patch)
	if err != nil {
		return settings.Settings{}, err
	}
	if err := merged.Validate(); err != nil {
		return settings.Settings{}, err
	}
	return client.UpdateSingleton(ctx, d.client, settings.Resource, patch)
}

// Formatter returns the money and date formatter for the saved settings.
func (d *Dashboard) Formatter(ctx context.Context) export.Formatter {
	s, err := d.Settings(ctx)
	if err != nil {
		return export.NewFormatter("", "")
	}
	return s.Formatter()
}

// RenewLease creates the follow-on lease for lease id.
func (d *Dashboard) RenewLease(ctx context.Context, id int64) (lease.Lease, error) {
	base, err := client.Get(ctx, d.client, lease.Resource, id)
	if err != nil {
		return lease.Lease{}, err
	}
	next, err := base.Renewal()
	if err != nil {
		return lease.Lease{}, fmt.Errorf("renewing lease %d: %w", id, err)
	}
	return Create(ctx, d, lease.Resource, next)
}

// Receipt renders the PDF receipt for payment id.
func (d *Dashboard) Receipt(ctx context.Context, id int64) ([]byte, error) {
	p, err := client.Get(ctx, d.client, payment.Resource, id)
	if err != nil {
		return nil, err
	}
	s, err := d.fetch(ctx, resource.Tenants, resource.Leases, resource.Properties)
	if err != nil {
		return nil, err
	}
	lk := payment.Lookups{
		TenantNames:   s.tenantNames(),
		Leases:        listing.Index(s.leases),
		PropertyNames: s.propertyNames(),
	}
	return export.Document(payment.ReceiptTitle, payment.Receipt(p, lk, d.Formatter(ctx)))
}

// LeaseSheet renders a one-page PDF summary of lease id.
func (d *Dashboard) LeaseSheet(ctx context.Context, id int64) ([]byte, error) {
	l, err := client.Get(ctx, d.client, lease.Resource, id)
	if err != nil {
		return nil, err
	}
	s, err := d.fetch(ctx, resource.Tenants, resource.Properties)
	if err != nil {
		return nil, err
	}
	lk := lease.Lookups{PropertyNames: s.propertyNames(), TenantNames: s.tenantNames()}
	return export.Document("Lease Summary", lease.Summary(l, lk, d.Formatter(ctx), d.now()))
}

// Documents returns the documents attached to lease id.
func (d *Dashboard) Documents(ctx context.Context, leaseID int64) ([]document.Document, error) {
	return client.List(ctx, d.client, document.Resource, resource.Query{}.Where("leaseId", leaseID))
}

// Attach stores a document against its lease.
func (d *Dashboard) Attach(ctx context.Context, doc document.Document) (document.Document, error) {
	if _, err := client.Get(ctx, d.client, lease.Resource, doc.LeaseID); err != nil {
		return document.Document{}, err
	}
	return Create(ctx, d, document.Resource, doc)
}

// Notifications returns the notification feed, newest first.
func (d *Dashboard) Notifications(ctx context.Context, unreadOnly bool) ([]notification.Notification, error) {
	q := notification.Feed()
	if unreadOnly {
		q = q.Where("read", false)
	}
	return client.List(ctx, d.client, notification.Resource, q)
}

// MarkRead sets the read flag of notification id.
func (d *Dashboard) MarkRead(ctx context.Context, id int64, read bool) (notification.Notification, error) {
	return Update(ctx, d, notification.Resource, id, notification.ReadUpdate{Read: read})
}
