// Package dashboard is the application layer over the REST API: derived
// list views, mutations with cache invalidation, cascading deletes, bulk
// actions, metrics and lease reminders.
package dashboard

import (
	"context"
	"time"

	"github.com/evcraddock/rentdesk/internal/cache"
	"github.com/evcraddock/rentdesk/internal/client"
	"github.com/evcraddock/rentdesk/internal/resource"
)

// Mailer sends plain-text e-mail.
type Mailer interface {
	Send(to []string, subject, body string) error
}

// Dashboard binds an API client to a resource list cache.
type Dashboard struct {
	client *client.Client
	cache  *cache.Cache
	mailer Mailer
	now    func() time.Time
}

// New returns a dashboard backed by c. mailer may be nil, in which case
// reminders are only posted as notifications.
func New(c *client.Client, mailer Mailer) *Dashboard {
	return &Dashboard{
		client: c,
		cache:  cache.New(),
		mailer: mailer,
		now:    time.Now,
	}
}

// Client returns the underlying API client.
func (d *Dashboard) Client() *client.Client {
	return d.client
}

// Invalidate drops cached lists so the next read refetches them.
func (d *Dashboard) Invalidate(names ...resource.Name) {
	d.cache.Invalidate(names...)
}

// load returns the full list of a resource, from cache when possible.
func load[T any](ctx context.Context, d *Dashboard, h resource.Handle[T]) ([]T, error) {
	return cache.Load(ctx, d.cache, h.Name(), func(ctx context.Context) ([]T, error) {
		return client.List(ctx, d.client, h, resource.Query{})
	})
}
