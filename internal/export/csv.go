package export

import (
	"bytes"
	"strings"
)

// CSV renders the table with every field quoted and embedded quotes
// doubled. Lines are separated by "\n" with no trailing newline.
func CSV(t Table) []byte {
	var buf bytes.Buffer
	writeCSVLine(&buf, t.Headers())
	for _, row := range t.Rows {
		buf.WriteByte('\n')
		writeCSVLine(&buf, row)
	}
	return buf.Bytes()
}

func writeCSVLine(buf *bytes.Buffer, fields []string) {
	for i, f := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(f, `"`, `""`))
		buf.WriteByte('"')
	}
}
