package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/evcraddock/rentdesk/internal/client"
	"github.com/evcraddock/rentdesk/internal/payment"
	"github.com/evcraddock/rentdesk/internal/resource"
)

// bulkLimit bounds the requests in flight during a bulk action.
const bulkLimit = 8

type validator interface {
	Validate() error
}

type archiver interface {
	SetArchived(bool)
}

// raw returns an untyped handle for writes that do not need the record.
func raw(name resource.Name) resource.Handle[json.RawMessage] {
	return resource.NewHandle[json.RawMessage](name)
}

// Create validates body, stores it unarchived and invalidates the
// resource's list.
func Create[T any](ctx context.Context, d *Dashboard, h resource.Handle[T], body T) (T, error) {
	if a, ok := any(&body).(archiver); ok {
		a.SetArchived(false)
	}
	if v, ok := any(body).(validator); ok {
		if err := v.Validate(); err != nil {
			var zero T
			return zero, err
		}
	}

	created, err := client.Create(ctx, d.client, h, body)
	if err != nil {
		return created, err
	}
	d.cache.Invalidate(h.Name())
	return created, nil
}

// Update applies patch to record id and invalidates the resource's list.
// When the record type validates itself, the patch is checked against the
// current record before it is sent.
func Update[T any](ctx context.Context, d *Dashboard, h resource.Handle[T], id int64, patch any) (T, error) {
	var zero T
	if _, ok := any(zero).(validator); ok {
		if err := checkPatch(ctx, d, h, id, patch); err != nil {
			return zero, err
		}
	}

	updated, err := client.Update(ctx, d.client, h, id, patch)
	if err != nil {
		return updated, err
	}
	d.cache.Invalidate(h.Name())
	return updated, nil
}

// checkPatch merges patch into the stored record and validates the result.
func checkPatch[T any](ctx context.Context, d *Dashboard, h resource.Handle[T], id int64, patch any) error {
	current, err := client.Get(ctx, d.client, h, id)
	if err != nil {
		return err
	}
	current, err = applyPatch(current, patch)
	if err != nil {
		return fmt.Errorf("%s/%d: %w", h.Name(), id, err)
	}
	if v, ok := any(current).(validator); ok {
		return v.Validate()
	}
	return nil
}

// SetArchived archives or restores one record.
func (d *Dashboard) SetArchived(ctx context.Context, name resource.Name, id int64, archived bool) error {
	if err := d.setArchived(ctx, name, id, archived); err != nil {
		return err
	}
	d.cache.Invalidate(name)
	return nil
}

func (d *Dashboard) setArchived(ctx context.Context, name resource.Name, id int64, archived bool) error {
	if !name.Archivable() {
		return fmt.Errorf("%s cannot be archived", name)
	}
	_, err := client.Update(ctx, d.client, raw(name), id, map[string]bool{"archived": archived})
	return err
}

// Delete removes one record without touching records that reference it.
func (d *Dashboard) Delete(ctx context.Context, name resource.Name, id int64) error {
	if err := d.client.Remove(ctx, name, id); err != nil {
		return err
	}
	d.cache.Invalidate(name)
	return nil
}

// BulkArchive archives or restores every id concurrently. Updates that
// succeed stay applied when others fail; the failures are joined into the
// returned error.
func (d *Dashboard) BulkArchive(ctx context.Context, name resource.Name, ids []int64, archived bool) error {
	if !name.Archivable() {
		return fmt.Errorf("%s cannot be archived", name)
	}
	err := fanOut(ctx, ids, func(ctx context.Context, id int64) error {
		return d.setArchived(ctx, name, id, archived)
	})
	d.cache.Invalidate(name)
	return err
}

// BulkMarkPaid marks every payment id completed, concurrently and without
// rollback.
func (d *Dashboard) BulkMarkPaid(ctx context.Context, ids []int64) error {
	err := fanOut(ctx, ids, func(ctx context.Context, id int64) error {
		_, err := client.Update(ctx, d.client, payment.Resource, id, payment.Settle())
		return err
	})
	d.cache.Invalidate(resource.Payments)
	return err
}

// fanOut runs fn for every id and waits for all of them.
func fanOut(ctx context.Context, ids []int64, fn func(context.Context, int64) error) error {
	var (
		mu   sync.Mutex
		errs []error
		g    errgroup.Group
	)
	g.SetLimit(bulkLimit)
	for _, id := range ids {
		g.Go(func() error {
			if err := fn(ctx, id); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	return errors.Join(errs...)
}

// applyPatch returns v with patch merged over it, the way the API merges a
// PATCH body.
func applyPatch[T any](v T, patch any) (T, error) {
	data, err := json.Marshal(patch)
	if err != nil {
		return v, fmt.Errorf("encoding patch: %w", err)
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, fmt.Errorf("applying patch: %w", err)
	}
	return v, nil
}
