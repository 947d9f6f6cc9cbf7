package notification

import (
	"testing"
	"time"
)

func TestExpiryReminder(t *testing.T) {
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	n := ExpiryReminder(12, "Wanjiru Kamau", "2024-06-20", now)

	if n.Title != "Lease expiry reminder" {
		t.Errorf("title = %q", n.Title)
	}
	if n.Message != "Lease 12 for Wanjiru Kamau ends on 2024-06-20" {
		t.Errorf("message = %q", n.Message)
	}
	if n.Type != TypeWarning || n.Read {
		t.Errorf("type = %q, read = %v", n.Type, n.Read)
	}
	if n.CreatedAt != "2024-06-01T09:00:00Z" {
		t.Errorf("createdAt = %q", n.CreatedAt)
	}
	if n.ID != 0 || n.Archived {
		t.Error("new notification should have no id and not be archived")
	}
}

func TestSameAs(t *testing.T) {
	now := time.Now()
	a := ExpiryReminder(1, "A", "2024-01-01", now)
	b := ExpiryReminder(1, "A", "2024-01-01", now.Add(time.Hour))
	c := ExpiryReminder(2, "A", "2024-01-01", now)
	if !a.SameAs(b) {
		t.Error("reminders for the same lease should match")
	}
	if a.SameAs(c) {
		t.Error("reminders for different leases should not match")
	}
}

func TestFeed(t *testing.T) {
	if got := Feed().Encode(); got != "_order=desc&_sort=createdAt" {
		t.Errorf("feed query = %q", got)
	}
}
