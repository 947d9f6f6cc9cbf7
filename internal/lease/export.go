package lease

import (
	"fmt"
	"time"

	"github.com/evcraddock/rentdesk/internal/export"
)

// Table lays out leases for CSV and PDF export. Status is the display
// status at now.
func Table(title string, leases []Lease, lk Lookups, f export.Formatter, now time.Time) export.Table {
	rows := make([][]string, 0, len(leases))
	for _, l := range leases {
		rows = append(rows, []string{
			lk.PropertyName(l),
			lk.TenantName(l),
			l.Unit,
			f.Period(l.StartDate, l.EndDate),
			export.Raw(l.RentAmount),
			string(l.DisplayStatus(now)),
		})
	}
	return export.Table{
		Title: title,
		Columns: []export.Column{
			{Header: "Property", Width: 120},
			{Header: "Tenant", Width: 120},
			{Header: "Unit", Width: 70},
			{Header: "Period", Width: 140},
			{Header: "Rent", Width: 80, PDF: f.MoneyText},
			{Header: "Status", Width: 80},
		},
		Rows:    rows,
		MaxRows: 50,
	}
}

// Summary returns the lines of a single-lease PDF.
func Summary(l Lease, lk Lookups, f export.Formatter, now time.Time) []string {
	lines := []string{
		fmt.Sprintf("Lease: #%d", l.ID),
		fmt.Sprintf("Property: %s", lk.PropertyName(l)),
		fmt.Sprintf("Tenant: %s", lk.TenantName(l)),
		fmt.Sprintf("Unit: %s", l.Unit),
		fmt.Sprintf("Period: %s", f.Period(l.StartDate, l.EndDate)),
		fmt.Sprintf("Rent: %s", f.Money(l.RentAmount)),
		fmt.Sprintf("Status: %s", l.DisplayStatus(now)),
	}
	if days, ok := DaysLeft(l.EndDate, now); ok && days >= 0 {
		lines = append(lines, fmt.Sprintf("Days remaining: %d", days))
	}
	return lines
}
