package lease

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/evcraddock/rentdesk/internal/export"
	"github.com/evcraddock/rentdesk/internal/listing"
	"github.com/evcraddock/rentdesk/internal/resource"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

func day(offset int) string {
	return resource.FormatDate(now.AddDate(0, 0, offset))
}

func TestDerive(t *testing.T) {
	tests := []struct {
		name   string
		end    string
		stored Status
		want   DisplayStatus
	}{
		{"ten days out", day(10), StatusActive, DisplayPendingRenewal},
		{"yesterday", day(-1), StatusActive, DisplayExpired},
		{"far out pending", day(200), StatusPending, DisplayPending},
		{"far out active", day(200), StatusActive, DisplayActive},
		{"far out terminated", day(200), StatusTerminated, DisplayActive},
		{"renewal window edge", day(30), StatusActive, DisplayPendingRenewal},
		{"just past window", day(32), StatusActive, DisplayActive},
		{"ends today", resource.FormatDate(now), StatusActive, DisplayPendingRenewal},
		{"pending inside window", day(5), StatusPending, DisplayPendingRenewal},
		{"unparseable end", "someday", StatusPending, DisplayPending},
		{"unparseable end active", "someday", StatusActive, DisplayActive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Derive(tt.end, tt.stored, now))
		})
	}
}

func TestDaysLeftRoundsUp(t *testing.T) {
	days, ok := DaysLeft(now.Add(36*time.Hour).Format(time.RFC3339), now)
	require.True(t, ok)
	assert.Equal(t, 2, days)
}

func fixtures() ([]Lease, Lookups) {
	leases := []Lease{
		{Base: resource.Base{ID: 1}, PropertyID: 10, TenantID: 100, Unit: "A1", StartDate: day(-300), EndDate: day(65), RentAmount: 20000, Status: StatusActive},
		{Base: resource.Base{ID: 2}, PropertyID: 11, TenantID: 101, Unit: "B2", StartDate: day(-350), EndDate: day(15), RentAmount: 35000, Status: StatusActive},
		{Base: resource.Base{ID: 3, Archived: true}, PropertyID: 10, TenantID: 102, Unit: "A3", StartDate: day(-700), EndDate: day(-335), RentAmount: 18000, Status: StatusTerminated},
		{Base: resource.Base{ID: 4}, PropertyID: 10, TenantID: 103, Unit: "A4", StartDate: day(-10), EndDate: day(355), RentAmount: 35000, Status: StatusPending},
		{Base: resource.Base{ID: 5}, PropertyID: 11, TenantID: 104, Unit: "B5", StartDate: day(-400), EndDate: day(-35), RentAmount: 22000, Status: StatusActive},
	}
	lk := Lookups{
		PropertyNames: map[int64]string{10: "Sunset Apartments", 11: "Riverside Court"},
		TenantNames:   map[int64]string{100: "Wanjiru", 101: "Brian", 102: "Aisha", 103: "David", 104: "Esther"},
	}
	return leases, lk
}

func ids(list []Lease) []int64 {
	out := make([]int64, len(list))
	for i, l := range list {
		out[i] = l.ID
	}
	return out
}

func TestApply(t *testing.T) {
	tests := []struct {
		name    string
		filters Filters
		want    []int64
	}{
		{"default sorts by end ascending", DefaultFilters(), []int64{5, 2, 1, 4}},
		{"show archived", Filters{ShowArchived: true}, []int64{3, 5, 2, 1, 4}},
		{"archived status selects archived only", Filters{Status: listing.Ptr(DisplayArchived)}, []int64{3}},
		{"pending renewal", Filters{Status: listing.Ptr(DisplayPendingRenewal)}, []int64{2}},
		{"expired", Filters{Status: listing.Ptr(DisplayExpired)}, []int64{5}},
		{"pending", Filters{Status: listing.Ptr(DisplayPending)}, []int64{4}},
		{"property", Filters{PropertyID: listing.Ptr(int64(11))}, []int64{5, 2}},
		{"tenant", Filters{TenantID: listing.Ptr(int64(100))}, []int64{1}},
		{"search tenant name", Filters{Search: "brian"}, []int64{2}},
		{"search property name", Filters{Search: "SUNSET"}, []int64{1, 4}},
		{"search unit", Filters{Search: "b5"}, []int64{5}},
		{"sort by start", Filters{SortBy: SortStart}, []int64{5, 2, 1, 4}},
		{"sort by rent", Filters{SortBy: SortRent}, []int64{2, 4, 5, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			leases, lk := fixtures()
			assert.Equal(t, tt.want, ids(tt.filters.Apply(leases, lk, now)))
		})
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	leases, lk := fixtures()
	f := Filters{SortBy: SortRent, ShowArchived: true}
	once := f.Apply(leases, lk, now)
	assert.Equal(t, ids(once), ids(f.Apply(once, lk, now)))
}

func TestRenewal(t *testing.T) {
	base := Lease{Base: resource.Base{ID: 7}, PropertyID: 1, TenantID: 2, Unit: "C1", StartDate: "2023-07-01", EndDate: "2024-07-01", RentAmount: 30000, Status: StatusTerminated}

	next, err := base.Renewal()
	require.NoError(t, err)
	assert.Zero(t, next.ID)
	assert.Equal(t, "2024-07-01", next.StartDate)
	assert.Equal(t, "2025-07-01", next.EndDate)
	assert.Equal(t, StatusActive, next.Status)
	assert.Equal(t, base.RentAmount, next.RentAmount)
	require.NoError(t, next.Validate())

	_, err = Lease{EndDate: "never"}.Renewal()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	err := Lease{Unit: "", StartDate: "x", EndDate: "2024-01-01", Status: "Open"}.Validate()
	require.Error(t, err)
	for _, want := range []string{"propertyId", "tenantId", "unit", "startDate", "status"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestTable(t *testing.T) {
	leases, lk := fixtures()
	tbl := Table("Leases (Archive)", leases[2:3], lk, export.NewFormatter("", ""), now)

	assert.Equal(t, []string{"Property", "Tenant", "Unit", "Period", "Rent", "Status"}, tbl.Headers())
	require.Len(t, tbl.Rows, 1)
	assert.Equal(t, "Sunset Apartments", tbl.Rows[0][0])
	assert.Equal(t, "Aisha", tbl.Rows[0][1])
	assert.Equal(t, "18000", tbl.Rows[0][4])
	assert.Equal(t, "Expired", tbl.Rows[0][5])
	assert.Equal(t, 50, tbl.MaxRows)
}

func TestSummary(t *testing.T) {
	leases, lk := fixtures()
	lines := Summary(leases[1], lk, export.NewFormatter("", ""), now)
	assert.Contains(t, lines, "Tenant: Brian")
	assert.Contains(t, lines, "Rent: KES 35,000")
	assert.Contains(t, lines, "Status: Pending Renewal")
}
