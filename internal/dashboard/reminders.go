package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/evcraddock/rentdesk/internal/client"
	"github.com/evcraddock/rentdesk/internal/email"
	"github.com/evcraddock/rentdesk/internal/lease"
	"github.com/evcraddock/rentdesk/internal/notification"
	"github.com/evcraddock/rentdesk/internal/resource"
)

// ReminderSubject is the subject of reminder e-mails.
const ReminderSubject = "Leases due for renewal"

// reminderRun collects the reminders posted in one call. Every reminder in
// a run is dated now.
type reminderRun struct {
	d      *Dashboard
	now    time.Time
	lk     lease.Lookups
	unread []notification.Notification
	sent   []email.Reminder
}

func (d *Dashboard) newReminderRun(ctx context.Context, s *snapshot) (*reminderRun, error) {
	unread, err := d.Notifications(ctx, true)
	if err != nil {
		return nil, err
	}
	return &reminderRun{
		d:      d,
		now:    d.now(),
		lk:     lease.Lookups{PropertyNames: s.propertyNames(), TenantNames: s.tenantNames()},
		unread: unread,
	}, nil
}

// Remind posts an expiry reminder for lease id. It returns false when an
// identical unread reminder already exists.
func (d *Dashboard) Remind(ctx context.Context, id int64) (bool, error) {
	l, err := client.Get(ctx, d.client, lease.Resource, id)
	if err != nil {
		return false, err
	}
	s, err := d.fetch(ctx, resource.Tenants, resource.Properties)
	if err != nil {
		return false, err
	}
	run, err := d.newReminderRun(ctx, s)
	if err != nil {
		return false, err
	}

	ok, err := run.remind(ctx, l)
	if err != nil {
		return false, err
	}
	run.mail(ctx)
	return ok, nil
}

// RemindExpiring reminds every live lease inside the renewal window and
// returns the ids that were reminded. A failure on one lease does not stop
// the others.
func (d *Dashboard) RemindExpiring(ctx context.Context) ([]int64, error) {
	s, err := d.fetch(ctx, resource.Leases, resource.Tenants, resource.Properties)
	if err != nil {
		return nil, err
	}
	run, err := d.newReminderRun(ctx, s)
	if err != nil {
		return nil, err
	}

	var (
		ids  []int64
		errs []error
	)
	for _, l := range s.leases {
		if l.Archived || l.DisplayStatus(run.now) != lease.DisplayPendingRenewal {
			continue
		}
		ok, err := run.remind(ctx, l)
		if err != nil {
			errs = append(errs, fmt.Errorf("lease %d: %w", l.ID, err))
			continue
		}
		if ok {
			ids = append(ids, l.ID)
		}
	}

	run.mail(ctx)
	return ids, errors.Join(errs...)
}

func (r *reminderRun) remind(ctx context.Context, l lease.Lease) (bool, error) {
	n := notification.ExpiryReminder(l.ID, r.lk.TenantName(l), l.EndDate, r.now)
	if slices.ContainsFunc(r.unread, n.SameAs) {
		return false, nil
	}

	if _, err := Create(ctx, r.d, notification.Resource, n); err != nil {
		return false, fmt.Errorf("posting reminder: %w", err)
	}
	r.unread = append(r.unread, n)

	days, _ := lease.DaysLeft(l.EndDate, r.now)
	r.sent = append(r.sent, email.Reminder{
		LeaseID:  l.ID,
		Tenant:   r.lk.TenantName(l),
		Property: r.lk.PropertyName(l),
		Unit:     l.Unit,
		EndDate:  l.EndDate,
		DaysLeft: days,
	})
	return true, nil
}

// mail e-mails the posted reminders as one digest when the settings ask for
// e-mail. Failures are logged; the notifications are already stored.
func (r *reminderRun) mail(ctx context.Context) {
	if len(r.sent) == 0 || r.d.mailer == nil {
		return
	}
	cfg, err := r.d.Settings(ctx)
	if err != nil {
		slog.Warn("failed to load settings for reminder e-mail", "error", err)
		return
	}
	if !cfg.WantsEmail() {
		return
	}
	if err := r.d.mailer.Send([]string{cfg.ContactEmail}, ReminderSubject, email.FormatReminders(r.sent)); err != nil {
		slog.Warn("failed to e-mail reminders", "leases", len(r.sent), "error", err)
		return
	}
	slog.Info("e-mailed lease reminders", "leases", len(r.sent), "to", cfg.ContactEmail)
}
