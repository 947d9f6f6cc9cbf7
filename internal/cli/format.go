package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/evcraddock/rentdesk/internal/export"
)

// printJSON marshals v as indented JSON and writes it to w.
func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printTable prints an export table with a leading ID column. ids must be
// in row order.
func printTable(w io.Writer, t export.Table, ids []int64, noun string) error {
	if len(t.Rows) == 0 {
		_, err := fmt.Fprintf(w, "No %s found.\n", noun)
		return err
	}

	headers, rows := t.Display()
	headers = append([]string{"ID"}, headers...)
	sep := make([]string, len(headers))
	for i, h := range headers {
		sep[i] = strings.Repeat("-", len(h))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, strings.ToUpper(strings.Join(headers, "\t"))); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, strings.Join(sep, "\t")); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for i, row := range rows {
		cells := make([]string, 0, len(row)+1)
		cells = append(cells, strconv.FormatInt(ids[i], 10))
		for _, c := range row {
			cells = append(cells, truncate(c, 40))
		}
		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	_, err := fmt.Fprintf(w, "\nTotal: %d %s\n", len(rows), noun)
	return err
}

// printRecord prints a record's JSON fields as an aligned key/value list.
func printRecord(w io.Writer, title string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding record: %w", err)
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("decoding record: %w", err)
	}

	if _, err := fmt.Fprintln(w, title); err != nil {
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, k := range slices.Sorted(maps.Keys(fields)) {
		if k == "id" || k == "dataUrl" {
			continue
		}
		if _, err := fmt.Fprintf(tw, "  %s:\t%s\n", k, fieldText(fields[k])); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func fieldText(v any) string {
	switch v := v.(type) {
	case nil:
		return "-"
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}

// printLines prints pre-formatted lines, one per row.
func printLines(w io.Writer, lines []string) error {
	for _, l := range lines {
		if _, err := fmt.Fprintln(w, l); err != nil {
			return err
		}
	}
	return nil
}

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
