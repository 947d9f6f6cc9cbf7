package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/evcraddock/rentdesk/internal/export"
	"github.com/evcraddock/rentdesk/internal/property"
)

func sampleTable() export.Table {
	return export.Table{
		Title: "Sample",
		Columns: []export.Column{
			{Header: "Name"},
			{Header: "Units", PDF: func(raw string) string { return raw + " units" }},
		},
		Rows: [][]string{{"Sunrise", "12"}, {"Lakeside", "8"}},
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer
	if err := printTable(&buf, sampleTable(), []int64{3, 7}, "properties"); err != nil {
		t.Fatalf("printTable: %v", err)
	}
	out := buf.String()

	for _, want := range []string{"ID", "NAME", "UNITS", "--", "Sunrise", "12 units", "Total: 2 properties"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	lines := strings.Split(out, "\n")
	if !strings.HasPrefix(lines[2], "3 ") || !strings.HasPrefix(lines[3], "7 ") {
		t.Errorf("rows should lead with ids:\n%s", out)
	}
}

func TestPrintTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	tbl := sampleTable()
	tbl.Rows = nil
	if err := printTable(&buf, tbl, nil, "tenants"); err != nil {
		t.Fatalf("printTable: %v", err)
	}
	if buf.String() != "No tenants found.\n" {
		t.Errorf("output = %q", buf.String())
	}
}

func TestPrintRecord(t *testing.T) {
	var buf bytes.Buffer
	p := property.Property{Name: "Sunrise", Location: "Westlands", TotalUnits: 12, Status: property.StatusActive}
	p.ID = 4
	if err := printRecord(&buf, "Property #4", p); err != nil {
		t.Fatalf("printRecord: %v", err)
	}
	out := buf.String()

	if !strings.HasPrefix(out, "Property #4\n") {
		t.Errorf("missing title:\n%s", out)
	}
	for _, want := range []string{"name:", "Sunrise", "totalUnits:", "12", "archived:", "false"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "id:") {
		t.Errorf("id should only appear in the title:\n%s", out)
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short", "abc", 10, "abc"},
		{"exact", "abcdefghij", 10, "abcdefghij"},
		{"long", "abcdefghijklmnop", 10, "abcdefg..."},
		{"multibyte", "ñññññññññññ", 6, "ñññ..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := truncate(tt.input, tt.maxLen); got != tt.expected {
				t.Errorf("truncate(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
			}
		})
	}
}

func TestParseSets(t *testing.T) {
	patch, err := parseSets([]string{
		"name=Sunrise Court",
		"totalUnits=12",
		"archived=true",
		`phone="0712345678"`,
		"unit=4B",
		"tenantId=null",
	})
	if err != nil {
		t.Fatalf("parseSets: %v", err)
	}

	if patch["name"] != "Sunrise Court" {
		t.Errorf("name = %#v", patch["name"])
	}
	if patch["totalUnits"] != float64(12) {
		t.Errorf("totalUnits = %#v, want number", patch["totalUnits"])
	}
	if patch["archived"] != true {
		t.Errorf("archived = %#v, want bool", patch["archived"])
	}
	if patch["phone"] != "0712345678" {
		t.Errorf("phone = %#v, want quoted string", patch["phone"])
	}
	if patch["unit"] != "4B" {
		t.Errorf("unit = %#v", patch["unit"])
	}
	if v, ok := patch["tenantId"]; !ok || v != nil {
		t.Errorf("tenantId = %#v, want explicit null", v)
	}
}

func TestParseSetsRejects(t *testing.T) {
	for _, in := range []string{"noequals", "=value", "id=3"} {
		if _, err := parseSets([]string{in}); err == nil {
			t.Errorf("parseSets(%q) should fail", in)
		}
	}
}

func TestOverlay(t *testing.T) {
	base := property.Property{Status: property.StatusActive, TotalUnits: 1}
	got, err := overlay(base, map[string]any{"name": "Sunrise", "totalUnits": float64(5)})
	if err != nil {
		t.Fatalf("overlay: %v", err)
	}
	if got.Name != "Sunrise" || got.TotalUnits != 5 || got.Status != property.StatusActive {
		t.Errorf("overlay = %+v", got)
	}

	if _, err := overlay(base, map[string]any{"totalUnits": "many"}); err == nil {
		t.Error("expected type error for non-numeric units")
	}
}

func TestParseIDs(t *testing.T) {
	ids, err := parseIDs([]string{"1", "22"})
	if err != nil {
		t.Fatalf("parseIDs: %v", err)
	}
	if len(ids) != 2 || ids[0] != 1 || ids[1] != 22 {
		t.Errorf("ids = %v", ids)
	}
	for _, bad := range []string{"abc", "0", "-4"} {
		if _, err := parseIDs([]string{bad}); err == nil {
			t.Errorf("parseIDs(%q) should fail", bad)
		}
	}
}
