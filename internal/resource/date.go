package resource

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date form used for date-only fields.
const DateLayout = "2006-01-02"

var dateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	DateLayout,
}

// ParseDate parses an ISO 8601 date or timestamp. Date-only values are
// midnight UTC.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// FormatDate formats t as a calendar date.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
