// Package tenant provides the tenant domain model, list filters and export
// layout.
package tenant

import (
	"github.com/evcraddock/rentdesk/internal/resource"
	"github.com/evcraddock/rentdesk/internal/validation"
)

// Status is whether a tenant is current.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// Valid returns true if s is a known tenant status.
func (s Status) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// PaymentStatus summarises a tenant's rent standing.
type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentPending PaymentStatus = "Pending"
	PaymentOverdue PaymentStatus = "Overdue"
)

// Valid returns true if s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPaid, PaymentPending, PaymentOverdue:
		return true
	}
	return false
}

// Tenant is a person renting a unit.
type Tenant struct {
	resource.Base
	Name          string        `json:"name" validate:"min=2"`
	Unit          string        `json:"unit" validate:"min=1"`
	Phone         string        `json:"phone" validate:"min=7"`
	RentAmount    float64       `json:"rentAmount" validate:"gte=0"`
	Status        Status        `json:"status" validate:"enum"`
	PaymentStatus PaymentStatus `json:"paymentStatus" validate:"enum"`
	PropertyID    int64         `json:"propertyId" validate:"gt=0"`
}

// Resource is the typed handle for the tenants collection.
var Resource = resource.NewHandle[Tenant](resource.Tenants)

// New returns a tenant with the form defaults applied.
func New() Tenant {
	return Tenant{Status: StatusActive, PaymentStatus: PaymentPending}
}

// Validate checks the tenant form rules.
func (t Tenant) Validate() error {
	return validation.Struct(t)
}

// Names maps tenant ids to names.
func Names(tenants []Tenant) map[int64]string {
	m := make(map[int64]string, len(tenants))
	for _, t := range tenants {
		m[t.ID] = t.Name
	}
	return m
}
