// Package maintenance provides the maintenance request model, list filters
// and export layout.
package maintenance

import (
	"github.com/evcraddock/rentdesk/internal/resource"
	"github.com/evcraddock/rentdesk/internal/validation"
)

// Priority is how urgent a request is.
type Priority string

const (
	PriorityCritical Priority = "Critical"
	PriorityHigh     Priority = "High"
	PriorityMedium   Priority = "Medium"
	PriorityLow      Priority = "Low"
)

// Valid returns true if p is a known priority.
func (p Priority) Valid() bool {
	return p.rank() > 0
}

// rank orders priorities from most to least urgent. Unknown values rank 0.
func (p Priority) rank() int {
	switch p {
	case PriorityCritical:
		return 1
	case PriorityHigh:
		return 2
	case PriorityMedium:
		return 3
	case PriorityLow:
		return 4
	}
	return 0
}

// Status is the progress of a request.
type Status string

const (
	StatusOpen       Status = "Open"
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusCompleted  Status = "Completed"
)

// Valid returns true if s is a known request status.
func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Request is a maintenance request against a property, optionally raised by
// a tenant.
type Request struct {
	resource.Base
	PropertyID    int64    `json:"propertyId" validate:"gt=0"`
	TenantID      *int64   `json:"tenantId,omitempty" validate:"omitempty,gt=0"`
	Title         string   `json:"title" validate:"min=1"`
	Priority      Priority `json:"priority" validate:"enum"`
	Status        Status   `json:"status" validate:"enum"`
	DateSubmitted string   `json:"dateSubmitted" validate:"isodate"`
	EstimatedCost *float64 `json:"estimatedCost,omitempty" validate:"omitempty,gte=0"`
}

// Resource is the typed handle for the maintenanceRequests collection.
var Resource = resource.NewHandle[Request](resource.MaintenanceRequests)

// New returns a request with the form defaults applied.
func New() Request {
	return Request{Priority: PriorityLow, Status: StatusOpen}
}

// Validate checks the request form rules.
func (r Request) Validate() error {
	return validation.Struct(r)
}

// Cost returns the estimated cost, or 0 when none is set.
func (r Request) Cost() float64 {
	if r.EstimatedCost == nil {
		return 0
	}
	return *r.EstimatedCost
}
