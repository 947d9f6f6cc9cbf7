package payment

import (
	"fmt"
	"strconv"

	"github.com/evcraddock/rentdesk/internal/export"
)

// Table lays out payments for CSV and PDF export.
func Table(payments []Payment, lk Lookups, f export.Formatter) export.Table {
	rows := make([][]string, 0, len(payments))
	for _, p := range payments {
		rows = append(rows, []string{
			lk.TenantName(p),
			lk.PropertyName(p, "-"),
			strconv.FormatInt(p.LeaseID, 10),
			export.Raw(p.Amount),
			string(p.Method),
			f.DateTime(p.Date),
			string(p.Status),
			p.Reference,
		})
	}
	return export.Table{
		Title: "Payments",
		Columns: []export.Column{
			{Header: "Tenant", Width: 110},
			{Header: "Property", Width: 110},
			{Header: "Lease", Width: 50, PDF: func(raw string) string { return "#" + raw }},
			{Header: "Amount", Width: 80, PDF: f.MoneyText},
			{Header: "Method", Width: 80},
			{Header: "Date", Width: 120},
			{Header: "Status", Width: 70},
			{Header: "Reference", PDFHeader: "Ref", Width: 80},
		},
		Rows:    rows,
		MaxRows: 40,
	}
}

// Receipt returns the lines of a payment receipt.
func Receipt(p Payment, lk Lookups, f export.Formatter) []string {
	leaseLine := strconv.FormatInt(p.LeaseID, 10)
	if l, ok := lk.Lease(p); ok {
		leaseLine = fmt.Sprintf("#%d (%s)", l.ID, l.Unit)
	}
	return []string{
		"Receipt Ref: " + p.Reference,
		fmt.Sprintf("Payment ID: %d", p.ID),
		"Tenant: " + lk.TenantName(p),
		"Property: " + lk.PropertyName(p, "-"),
		"Lease: " + leaseLine,
		"Amount: " + f.Money(p.Amount),
		"Method: " + string(p.Method),
		"Date: " + f.DateTime(p.Date),
		"Status: " + string(p.Status),
	}
}

// ReceiptTitle is the heading of a payment receipt.
const ReceiptTitle = "Payment Receipt"
