package payment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcraddock/rentdesk/internal/export"
	"github.com/evcraddock/rentdesk/internal/lease"
	"github.com/evcraddock/rentdesk/internal/listing"
	"github.com/evcraddock/rentdesk/internal/resource"
)

func fixtures() ([]Payment, Lookups) {
	payments := []Payment{
		{Base: resource.Base{ID: 1}, TenantID: 100, LeaseID: 50, Amount: 500, Method: MethodCash, Date: "2024-01-05", Status: StatusCompleted, Reference: "CASH-001"},
		{Base: resource.Base{ID: 2}, TenantID: 101, LeaseID: 51, Amount: 1000, Method: MethodMPesa, Date: "2024-02-05", Status: StatusPending, Reference: "QWE123"},
		{Base: resource.Base{ID: 3, Archived: true}, TenantID: 100, LeaseID: 50, Amount: 750, Method: MethodCash, Date: "2024-03-05", Status: StatusOverdue, Reference: "CASH-002"},
		{Base: resource.Base{ID: 4}, TenantID: 100, LeaseID: 50, Amount: 250, Method: MethodBankTransfer, Date: "2024-03-05", Status: StatusOverdue, Reference: "BT-9"},
	}
	lk := Lookups{
		TenantNames: map[int64]string{100: "Wanjiru", 101: "Brian"},
		Leases: map[int64]lease.Lease{
			50: {Base: resource.Base{ID: 50}, PropertyID: 10, Unit: "A1"},
			51: {Base: resource.Base{ID: 51}, PropertyID: 11, Unit: "B2"},
		},
		PropertyNames: map[int64]string{10: "Sunset Apartments", 11: "Riverside Court"},
	}
	return payments, lk
}

func ids(list []Payment) []int64 {
	out := make([]int64, len(list))
	for i, p := range list {
		out[i] = p.ID
	}
	return out
}

func date(s string) *time.Time {
	t, err := resource.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		want    []int64
	}{
		{"default newest first", DefaultFilters(), []int64{4, 2, 1}},
		{"show archived keeps tie order", Filters{ShowArchived: true}, []int64{3, 4, 2, 1}},
		{"search property via lease", Filters{Search: "riverside"}, []int64{2}},
		{"search reference", Filters{Search: "bt-"}, []int64{4}},
		{"tenant", Filters{TenantID: listing.Ptr(int64(100))}, []int64{4, 1}},
		{"lease", Filters{LeaseID: listing.Ptr(int64(51))}, []int64{2}},
		{"method", Filters{Method: listing.Ptr(MethodCash)}, []int64{1}},
		{"status", Filters{Status: listing.Ptr(StatusOverdue), ShowArchived: true}, []int64{3, 4}},
		{"date range inclusive", Filters{From: date("2024-01-05"), To: date("2024-02-05")}, []int64{2, 1}},
		{"from only", Filters{From: date("2024-02-06")}, []int64{4}},
		{"by status", Filters{SortBy: SortStatus}, []int64{1, 4, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payments, lk := fixtures()
			assert.Equal(t, tt.want, ids(tt.filters.Apply(payments, lk)))
		})
	}
}

func TestSortByAmount(t *testing.T) {
	payments := []Payment{
		{Base: resource.Base{ID: 1}, Amount: 500, Status: StatusCompleted},
		{Base: resource.Base{ID: 2}, Amount: 1000, Status: StatusPending},
	}
	got := Filters{SortBy: SortAmount}.Apply(payments, Lookups{})
	require.Len(t, got, 2)
	assert.Equal(t, 1000.0, got[0].Amount)
	assert.Equal(t, 500.0, got[1].Amount)
}

func TestSummarize(t *testing.T) {
	payments, _ := fixtures()
	s := Summarize(payments)

	assert.Equal(t, 4, s.Total)
	assert.Equal(t, 1, s.Completed)
	assert.Equal(t, 1, s.Pending)
	assert.Equal(t, 2, s.Overdue)
	assert.Equal(t, "2500", s.TotalAmount.String())
	assert.Equal(t, "2000", s.Outstanding.String())
}

func TestValidate(t *testing.T) {
	p := New()
	p.TenantID = 1
	p.LeaseID = 2
	p.Amount = 100
	p.Date = "2024-05-01"
	p.Reference = "R1"
	require.NoError(t, p.Validate())

	p.Amount = 0
	p.Method = "Cheque"
	p.Reference = ""
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount must be greater than 0")
	assert.Contains(t, err.Error(), `method has unknown value "Cheque"`)
	assert.Contains(t, err.Error(), "reference must be at least 1 characters")
}

func TestTable(t *testing.T) {
	payments, lk := fixtures()
	lk.Leases = nil
	tbl := Table(payments[:1], lk, export.NewFormatter("", ""))

	assert.Equal(t, []string{"Tenant", "Property", "Lease", "Amount", "Method", "Date", "Status", "Reference"}, tbl.Headers())
	assert.Equal(t, "-", tbl.Rows[0][1], "unknown lease has no property")
	assert.Equal(t, "500", tbl.Rows[0][3])
	assert.Equal(t, 40, tbl.MaxRows)
	assert.Equal(t, "#50", tbl.Columns[2].PDF("50"))
}

func TestReceipt(t *testing.T) {
	payments, lk := fixtures()
	lines := Receipt(payments[1], lk, export.NewFormatter("", ""))

	assert.Equal(t, []string{
		"Receipt Ref: QWE123",
		"Payment ID: 2",
		"Tenant: Brian",
		"Property: Riverside Court",
		"Lease: #51 (B2)",
		"Amount: KES 1,000",
		"Method: M-Pesa",
		"Date: 05 Feb 2024 00:00",
		"Status: Pending",
	}, lines)
}
