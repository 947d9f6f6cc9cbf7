package tenant

import (
	"github.com/evcraddock/rentdesk/internal/export"
)

// Table lays out tenants for CSV and PDF export.
func Table(title string, tenants []Tenant, lk Lookups, f export.Formatter) export.Table {
	rows := make([][]string, 0, len(tenants))
	for _, t := range tenants {
		rows = append(rows, []string{
			t.Name,
			t.Unit,
			t.Phone,
			export.Raw(t.RentAmount),
			string(t.Status),
			string(t.PaymentStatus),
			lk.PropertyName(t),
		})
	}
	return export.Table{
		Title: title,
		Columns: []export.Column{
			{Header: "Name", Width: 110},
			{Header: "Unit", Width: 50},
			{Header: "Phone", Width: 90},
			{Header: "Rent", Width: 80, PDF: f.MoneyText},
			{Header: "Status", Width: 60},
			{Header: "Payment", Width: 60},
			{Header: "Property", Width: 110},
		},
		Rows:    rows,
		MaxRows: 50,
	}
}
