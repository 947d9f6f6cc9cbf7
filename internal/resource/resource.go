// Package resource defines the shared vocabulary of the rentdesk REST API:
// resource names, typed handles, query parameters and batch operations.
package resource

import "slices"

// Name is the collection name of a resource as it appears in URLs.
type Name string

const (
	Properties          Name = "properties"
	Tenants             Name = "tenants"
	Leases              Name = "leases"
	Payments            Name = "payments"
	MaintenanceRequests Name = "maintenanceRequests"
	LeaseDocuments      Name = "leaseDocuments"
	Notifications       Name = "notifications"
	Settings            Name = "settings"
)

var names = []Name{
	Properties,
	Tenants,
	Leases,
	Payments,
	MaintenanceRequests,
	LeaseDocuments,
	Notifications,
	Settings,
}

// Names returns every known resource name.
func Names() []Name {
	return slices.Clone(names)
}

// Valid reports whether s names a known resource.
func Valid(s string) bool {
	return slices.Contains(names, Name(s))
}

// Archivable reports whether records of the resource carry an archived flag
// that hides them from default listings.
func (n Name) Archivable() bool {
	switch n {
	case Properties, Tenants, Leases, Payments, MaintenanceRequests:
		return true
	}
	return false
}

// Handle ties a resource name to the Go type of its records, so a call
// through a handle can only decode into the right entity.
type Handle[T any] struct {
	name Name
}

// NewHandle returns a handle for the named resource.
func NewHandle[T any](name Name) Handle[T] {
	return Handle[T]{name: name}
}

// Name returns the resource name behind the handle.
func (h Handle[T]) Name() Name {
	return h.name
}

// Base holds the fields every stored record shares.
type Base struct {
	ID       int64 `json:"id,omitempty"`
	Archived bool  `json:"archived"`
}

// Key returns the record id.
func (b Base) Key() int64 {
	return b.ID
}

// IsArchived reports whether the record is soft-deleted.
func (b Base) IsArchived() bool {
	return b.Archived
}

// SetArchived sets the archived flag.
func (b *Base) SetArchived(archived bool) {
	b.Archived = archived
}

// Entity is implemented by every record type embedding Base.
type Entity interface {
	Key() int64
	IsArchived() bool
}
