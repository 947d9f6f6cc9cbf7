// Package property provides the property domain model, its list filters
// and its export layout.
package property

import (
	"github.com/evcraddock/rentdesk/internal/resource"
	"github.com/evcraddock/rentdesk/internal/validation"
)

// Status is whether a property is in service.
type Status string

const (
	StatusActive   Status = "Active"
	StatusInactive Status = "Inactive"
)

// Valid returns true if s is a known property status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive:
		return true
	}
	return false
}

// Property is a managed building.
type Property struct {
	resource.Base
	Name           string  `json:"name" validate:"min=2"`
	Location       string  `json:"location" validate:"min=2"`
	TotalUnits     int     `json:"totalUnits" validate:"gte=0"`
	OccupiedUnits  int     `json:"occupiedUnits" validate:"gte=0,ltefield=TotalUnits"`
	MonthlyRevenue float64 `json:"monthlyRevenue" validate:"gte=0"`
	Status         Status  `json:"status" validate:"enum"`
}

// Resource is the typed handle for the properties collection.
var Resource = resource.NewHandle[Property](resource.Properties)

// Validate checks the property form rules.
func (p Property) Validate() error {
	return validation.Struct(p)
}

// Occupancy returns occupied units as a fraction of total units.
func (p Property) Occupancy() float64 {
	if p.TotalUnits == 0 {
		return 0
	}
	return float64(p.OccupiedUnits) / float64(p.TotalUnits)
}

// Names maps property ids to names.
func Names(props []Property) map[int64]string {
	m := make(map[int64]string, len(props))
	for _, p := range props {
		m[p.ID] = p.Name
	}
	return m
}
