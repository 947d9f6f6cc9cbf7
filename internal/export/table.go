// Package export renders filtered resource lists as CSV and PDF documents.
package export

import "fmt"

// Column describes one exported column.
type Column struct {
	Header string
	// PDFHeader replaces Header in PDF output when set.
	PDFHeader string
	// Width is the PDF column width in points.
	Width float64
	// PDF renders a raw cell for PDF output. Nil prints the raw value.
	PDF func(raw string) string
}

// Table is an exportable list: a title, columns and raw cell values.
type Table struct {
	Title   string
	Columns []Column
	Rows    [][]string
	// MaxRows caps the rows written to a PDF. Zero means no cap.
	MaxRows int
}

// Headers returns the CSV header row.
func (t Table) Headers() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Header
	}
	return out
}

func (t Table) pdfHeaders() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Header
		if c.PDFHeader != "" {
			out[i] = c.PDFHeader
		}
	}
	return out
}

func (t Table) pdfRow(row []string) []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		if i >= len(row) {
			break
		}
		out[i] = row[i]
		if c.PDF != nil {
			out[i] = c.PDF(row[i])
		}
	}
	return out
}

func (t Table) width() float64 {
	var w float64
	for _, c := range t.Columns {
		w += c.Width
	}
	return w
}

func (t Table) pdfRows() [][]string {
	rows := t.Rows
	if t.MaxRows > 0 && len(rows) > t.MaxRows {
		rows = rows[:t.MaxRows]
	}
	return rows
}

// Format is an export file format.
type Format string

const (
	FormatCSV Format = "csv"
	FormatPDF Format = "pdf"
)

// Render renders t in the given format.
func Render(t Table, f Format) ([]byte, error) {
	switch f {
	case FormatCSV:
		return CSV(t), nil
	case FormatPDF:
		return PDF(t)
	}
	return nil, fmt.Errorf("unknown export format %q", f)
}

// Display returns the header row and every row with the PDF cell
// formatters applied, for on-screen tables.
func (t Table) Display() (headers []string, rows [][]string) {
	rows = make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		rows[i] = t.pdfRow(r)
	}
	return t.pdfHeaders(), rows
}
