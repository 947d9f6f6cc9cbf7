package resource

import (
	"net/url"
	"testing"
	"time"
)

func TestValid(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"tenants", true},
		{"maintenanceRequests", true},
		{"settings", true},
		{"users", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Valid(tt.name); got != tt.want {
				t.Errorf("Valid(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestQueryValues(t *testing.T) {
	q := Query{}.Where("tenantId", 7).SortBy("date", Desc)
	q.Limit = 5

	got := q.Encode()
	want := "_limit=5&_order=desc&_sort=date&tenantId=7"
	if got != want {
		t.Errorf("Encode() = %q, want %q", got, want)
	}
}

func TestQueryWhereDoesNotMutate(t *testing.T) {
	base := Query{}.Where("a", 1)
	_ = base.Where("b", 2)
	if len(base.Eq) != 1 {
		t.Errorf("base.Eq = %v, want one entry", base.Eq)
	}
}

func TestParseQuery(t *testing.T) {
	v := url.Values{}
	v.Set("_sort", "createdAt")
	v.Set("_order", "DESC")
	v.Set("_limit", "10")
	v.Set("read", "false")
	v.Set("_page", "2")

	q, err := ParseQuery(v)
	if err != nil {
		t.Fatalf("ParseQuery: %v", err)
	}
	if q.Sort != "createdAt" || q.Order != Desc || q.Limit != 10 {
		t.Errorf("q = %+v", q)
	}
	if q.Eq["read"] != "false" {
		t.Errorf("Eq[read] = %q, want false", q.Eq["read"])
	}
	if _, ok := q.Eq["_page"]; ok {
		t.Error("reserved parameter treated as filter")
	}
}

func TestParseQueryRejects(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"bad order", "_order", "sideways"},
		{"bad limit", "_limit", "-1"},
		{"injected sort", "_sort", "id; DROP TABLE"},
		{"injected field", "a.b", "1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := url.Values{}
			v.Set(tt.key, tt.val)
			if _, err := ParseQuery(v); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want time.Time
	}{
		{"2024-03-01", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)},
		{"2024-03-01T10:30:00Z", time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)},
		{"2024-03-01T10:30:00.123Z", time.Date(2024, 3, 1, 10, 30, 0, 123000000, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if err != nil {
				t.Fatalf("ParseDate: %v", err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if _, err := ParseDate("soon"); err == nil {
		t.Error("expected error for invalid date")
	}
}

func TestOpValidate(t *testing.T) {
	if err := Delete(Leases, 3).Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
	if err := Delete("nope", 3).Validate(); err == nil {
		t.Error("expected error for unknown resource")
	}
	if err := (Op{Kind: OpPatch, Resource: Leases, ID: 1}).Validate(); err == nil {
		t.Error("expected error for patch without body")
	}
}
