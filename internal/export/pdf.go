package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// Page layout in points.
const (
	margin      = 40.0
	titleSize   = 18.0
	bodySize    = 10.0
	docBodySize = 11.0
	rowStep     = 16.0
	fontFamily  = "Helvetica"
	a4Portrait  = 595.28
	cellPadding = 4.0
)

// PDF renders the table on A4 pages: a title, a divider, a header row and
// one line per row. Rows beyond MaxRows are dropped. Pages switch to
// landscape when the columns do not fit portrait.
func PDF(t Table) ([]byte, error) {
	orientation := "P"
	if t.width() > a4Portrait-2*margin {
		orientation = "L"
	}

	doc := fpdf.New(orientation, "pt", "A4", "")
	doc.SetAutoPageBreak(false, margin)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	pageW, pageH := doc.GetPageSize()

	startPage := func() float64 {
		doc.AddPage()
		doc.SetFont(fontFamily, "", titleSize)
		doc.Text(margin, margin, tr(t.Title))
		doc.SetDrawColor(220, 220, 220)
		doc.Line(margin, margin+8, pageW-margin, margin+8)
		doc.SetFont(fontFamily, "", bodySize)

		y := margin + 28
		writeCells(doc, tr, t.Columns, t.pdfHeaders(), y)
		return y + rowStep
	}

	y := startPage()
	for _, row := range t.pdfRows() {
		if y > pageH-margin {
			y = startPage()
		}
		writeCells(doc, tr, t.Columns, t.pdfRow(row), y)
		y += rowStep
	}

	return output(doc)
}

// Document renders a single-record PDF: a title followed by one text line
// per entry.
func Document(title string, lines []string) ([]byte, error) {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, margin)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.AddPage()

	doc.SetFont(fontFamily, "", titleSize)
	doc.Text(margin, margin, tr(title))

	doc.SetFont(fontFamily, "", docBodySize)
	for i, line := range lines {
		doc.Text(margin, margin+24+float64(i)*rowStep, tr(line))
	}

	return output(doc)
}

func writeCells(doc *fpdf.Fpdf, tr func(string) string, cols []Column, cells []string, y float64) {
	x := margin
	for i, c := range cols {
		if i < len(cells) {
			doc.Text(x, y, fit(doc, tr, cells[i], c.Width-cellPadding))
		}
		x += c.Width
	}
}

// fit trims s until its translated form fits within width points and
// returns the translated text. Trimming works on the UTF-8 source so
// multi-byte runes are never split.
func fit(doc *fpdf.Fpdf, tr func(string) string, s string, width float64) string {
	if width <= 0 || doc.GetStringWidth(tr(s)) <= width {
		return tr(s)
	}
	r := []rune(s)
	for len(r) > 0 && doc.GetStringWidth(tr(string(r)+"...")) > width {
		r = r[:len(r)-1]
	}
	return tr(string(r) + "...")
}

func output(doc *fpdf.Fpdf) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return buf.Bytes(), nil
}
