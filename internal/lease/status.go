package lease

import (
	"math"
	"time"

	"github.com/evcraddock/rentdesk/internal/resource"
)

// DisplayStatus is the status shown for a lease. It is derived from the end
// date at read time and never stored.
type DisplayStatus string

const (
	DisplayActive         DisplayStatus = "Active"
	DisplayPending        DisplayStatus = "Pending"
	DisplayPendingRenewal DisplayStatus = "Pending Renewal"
	DisplayExpired        DisplayStatus = "Expired"
	// DisplayArchived is a filter value selecting archived leases only.
	DisplayArchived DisplayStatus = "Archived"
)

// Valid returns true if s is a status the lease list can filter by.
func (s DisplayStatus) Valid() bool {
	switch s {
	case DisplayActive, DisplayPending, DisplayPendingRenewal, DisplayExpired, DisplayArchived:
		return true
	}
	return false
}

// RenewalWindow is how many days before the end date a lease is flagged
// for renewal.
const RenewalWindow = 30

// DaysLeft returns the whole days until the end date, rounded up. ok is
// false when the end date does not parse.
func DaysLeft(endDate string, now time.Time) (days int, ok bool) {
	end, err := resource.ParseDate(endDate)
	if err != nil {
		return 0, false
	}
	d := end.Sub(now).Hours() / 24
	return int(math.Ceil(d)), true
}

// Derive computes the display status of a lease ending on endDate with the
// given stored status.
func Derive(endDate string, stored Status, now time.Time) DisplayStatus {
	if days, ok := DaysLeft(endDate, now); ok {
		if days < 0 {
			return DisplayExpired
		}
		if days <= RenewalWindow {
			return DisplayPendingRenewal
		}
	}
	if stored == StatusPending {
		return DisplayPending
	}
	return DisplayActive
}

// DisplayStatus returns the derived status of l at now.
func (l Lease) DisplayStatus(now time.Time) DisplayStatus {
	return Derive(l.EndDate, l.Status, now)
}
