package property

import (
	"strconv"

	"github.com/evcraddock/rentdesk/internal/export"
)

// Table lays out properties for CSV and PDF export.
func Table(props []Property, f export.Formatter) export.Table {
	rows := make([][]string, 0, len(props))
	for _, p := range props {
		rows = append(rows, []string{
			p.Name,
			p.Location,
			strconv.Itoa(p.TotalUnits),
			strconv.Itoa(p.OccupiedUnits),
			export.Raw(p.MonthlyRevenue),
			string(p.Status),
		})
	}
	return export.Table{
		Title: "Properties",
		Columns: []export.Column{
			{Header: "Name", Width: 130},
			{Header: "Location", Width: 130},
			{Header: "Units", Width: 50},
			{Header: "Occupied", Width: 60},
			{Header: "Revenue", Width: 100, PDF: f.MoneyText},
			{Header: "Status", Width: 70},
		},
		Rows:    rows,
		MaxRows: 50,
	}
}
