package maintenance

import (
	"github.com/evcraddock/rentdesk/internal/export"
)

// Table lays out maintenance requests for CSV and PDF export.
func Table(reqs []Request, lk Lookups, f export.Formatter) export.Table {
	rows := make([][]string, 0, len(reqs))
	for _, r := range reqs {
		cost := "-"
		if r.EstimatedCost != nil {
			cost = export.Raw(*r.EstimatedCost)
		}
		rows = append(rows, []string{
			r.Title,
			lk.PropertyName(r),
			lk.TenantName(r),
			string(r.Priority),
			string(r.Status),
			f.Date(r.DateSubmitted),
			cost,
		})
	}
	return export.Table{
		Title: "Maintenance Requests",
		Columns: []export.Column{
			{Header: "Title", Width: 140},
			{Header: "Property", Width: 120},
			{Header: "Tenant", Width: 120},
			{Header: "Priority", Width: 70},
			{Header: "Status", Width: 80},
			{Header: "Date", Width: 90},
			{Header: "Est. Cost", PDFHeader: "Cost", Width: 80, PDF: f.MoneyText},
		},
		Rows:    rows,
		MaxRows: 50,
	}
}
