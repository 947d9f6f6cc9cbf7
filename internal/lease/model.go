// Package lease provides the lease domain model, its derived display status,
// list filters and export layouts.
package lease

import (
	"time"

	"github.com/evcraddock/rentdesk/internal/resource"
	"github.com/evcraddock/rentdesk/internal/validation"
)

// Status is the stored lease status.
type Status string

const (
	StatusActive     Status = "Active"
	StatusTerminated Status = "Terminated"
	StatusPending    Status = "Pending"
)

// Valid returns true if s is a known stored status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusTerminated, StatusPending:
		return true
	}
	return false
}

// Lease binds a tenant to a unit for a period.
type Lease struct {
	resource.Base
	PropertyID int64   `json:"propertyId" validate:"gt=0"`
	TenantID   int64   `json:"tenantId" validate:"gt=0"`
	Unit       string  `json:"unit" validate:"min=1"`
	StartDate  string  `json:"startDate" validate:"isodate"`
	EndDate    string  `json:"endDate" validate:"isodate"`
	RentAmount float64 `json:"rentAmount" validate:"gte=0"`
	Status     Status  `json:"status" validate:"enum"`
}

// Resource is the typed handle for the leases collection.
var Resource = resource.NewHandle[Lease](resource.Leases)

// Validate checks the lease form rules.
func (l Lease) Validate() error {
	return validation.Struct(l)
}

// RenewalTerm is the length of a renewed lease.
const RenewalTerm = 365 * 24 * time.Hour

// Renewal returns a new lease that starts when l ends and runs for
// RenewalTerm with the same property, tenant, unit and rent.
func (l Lease) Renewal() (Lease, error) {
	end, err := resource.ParseDate(l.EndDate)
	if err != nil {
		return Lease{}, err
	}
	return Lease{
		PropertyID: l.PropertyID,
		TenantID:   l.TenantID,
		Unit:       l.Unit,
		StartDate:  l.EndDate,
		EndDate:    resource.FormatDate(end.Add(RenewalTerm)),
		RentAmount: l.RentAmount,
		Status:     StatusActive,
	}, nil
}
