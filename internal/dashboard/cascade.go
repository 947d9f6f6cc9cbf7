package dashboard

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/evcraddock/rentdesk/internal/client"
	"github.com/evcraddock/rentdesk/internal/resource"
)

// dependent is a collection whose records reference a parent by field.
type dependent struct {
	name  resource.Name
	field string
}

// dependents is the delete dependency graph. Deleting a record deletes
// every record that references it, recursively.
var dependents = map[resource.Name][]dependent{
	resource.Tenants: {
		{name: resource.Leases, field: "tenantId"},
		{name: resource.Payments, field: "tenantId"},
	},
	resource.Leases: {
		{name: resource.LeaseDocuments, field: "leaseId"},
	},
}

// Dependents returns the collections a permanent delete of name can reach.
func Dependents(name resource.Name) []resource.Name {
	var out []resource.Name
	seen := map[resource.Name]bool{}
	var walk func(resource.Name)
	walk = func(n resource.Name) {
		for _, dep := range dependents[n] {
			if seen[dep.name] {
				continue
			}
			seen[dep.name] = true
			out = append(out, dep.name)
			walk(dep.name)
		}
	}
	walk(name)
	return out
}

// CascadeError reports a permanent delete that stopped part way. Deleted
// lists the records already removed.
type CascadeError struct {
	Target  resource.Op
	Failed  resource.Op
	Deleted []resource.Op
	Err     error
}

func (e *CascadeError) Error() string {
	done := make([]string, len(e.Deleted))
	for i, op := range e.Deleted {
		done[i] = op.String()
	}
	return fmt.Sprintf("deleting %s stopped at %s (already deleted: %s): %v",
		e.Target, e.Failed, strings.Join(done, ", "), e.Err)
}

func (e *CascadeError) Unwrap() error {
	return e.Err
}

// Plan returns the deletes a permanent delete of name/id performs, children
// before parents, each record once.
func (d *Dashboard) Plan(ctx context.Context, name resource.Name, id int64) ([]resource.Op, error) {
	type key struct {
		name resource.Name
		id   int64
	}
	seen := map[key]bool{}
	var ops []resource.Op

	var visit func(name resource.Name, id int64) error
	visit = func(name resource.Name, id int64) error {
		k := key{name, id}
		if seen[k] {
			return nil
		}
		seen[k] = true

		for _, dep := range dependents[name] {
			h := resource.NewHandle[resource.Base](dep.name)
			children, err := client.List(ctx, d.client, h, resource.Query{}.Where(dep.field, id))
			if err != nil {
				return err
			}
			for _, child := range children {
				if err := visit(dep.name, child.ID); err != nil {
					return err
				}
			}
		}
		ops = append(ops, resource.Delete(name, id))
		return nil
	}

	if err := visit(name, id); err != nil {
		return nil, fmt.Errorf("planning delete of %s/%d: %w", name, id, err)
	}
	return ops, nil
}

// DeletePermanent removes a record and everything that depends on it. The
// plan is applied as one batch so it either fully happens or not at all.
// Against a backend without batch support the deletes run one by one and
// stop at the first failure with a CascadeError.
func (d *Dashboard) DeletePermanent(ctx context.Context, name resource.Name, id int64) ([]resource.Op, error) {
	ops, err := d.Plan(ctx, name, id)
	if err != nil {
		return nil, err
	}
	affected := append([]resource.Name{name}, Dependents(name)...)

	err = d.client.Batch(ctx, ops)
	switch status := client.StatusOf(err); {
	case err == nil:
		d.cache.Invalidate(affected...)
		return ops, nil
	case status == http.StatusNotFound || status == http.StatusMethodNotAllowed:
		slog.Debug("batch endpoint unavailable, deleting sequentially", "target", resource.Delete(name, id).String())
	default:
		return nil, err
	}

	defer d.cache.Invalidate(affected...)
	for i, op := range ops {
		if err := d.client.Remove(ctx, op.Resource, op.ID); err != nil {
			return ops[:i], &CascadeError{
				Target:  resource.Delete(name, id),
				Failed:  op,
				Deleted: ops[:i],
				Err:     err,
			}
		}
	}
	return ops, nil
}
