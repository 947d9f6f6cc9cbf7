// Package notification provides in-app notifications and the lease expiry
// reminder message.
package notification

import (
	"fmt"
	"time"

	"github.com/evcraddock/rentdesk/internal/resource"
)

// Type is the visual severity of a notification.
type Type string

const (
	TypeInfo    Type = "info"
	TypeWarning Type = "warning"
	TypeSuccess Type = "success"
	TypeError   Type = "error"
)

// Valid returns true if t is a known notification type.
func (t Type) Valid() bool {
	switch t {
	case TypeInfo, TypeWarning, TypeSuccess, TypeError:
		return true
	}
	return false
}

// Notification is a message shown in the notification feed.
type Notification struct {
	resource.Base
	Title     string `json:"title"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
	Read      bool   `json:"read"`
	Type      Type   `json:"type"`
}

// Resource is the typed handle for the notifications collection.
var Resource = resource.NewHandle[Notification](resource.Notifications)

// Feed is the query for the notification feed, newest first.
func Feed() resource.Query {
	return resource.Query{}.SortBy("createdAt", resource.Desc)
}

// ReminderTitle is the title of lease expiry reminders.
const ReminderTitle = "Lease expiry reminder"

// ExpiryReminder builds the reminder for a lease ending on endDate.
func ExpiryReminder(leaseID int64, tenantName, endDate string, now time.Time) Notification {
	return Notification{
		Title:     ReminderTitle,
		Message:   fmt.Sprintf("Lease %d for %s ends on %s", leaseID, tenantName, endDate),
		CreatedAt: now.UTC().Format(time.RFC3339),
		Read:      false,
		Type:      TypeWarning,
	}
}

// SameAs reports whether n carries the same title and message as other.
func (n Notification) SameAs(other Notification) bool {
	return n.Title == other.Title && n.Message == other.Message
}

// ReadUpdate is the partial update toggling the read flag.
type ReadUpdate struct {
	Read bool `json:"read"`
}
