package export

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/evcraddock/rentdesk/internal/resource"
)

// Defaults used when settings leave currency or locale empty.
const (
	DefaultCurrency = "KES"
	DefaultLocale   = "en-KE"
)

// Formatter renders amounts and dates for exports and terminal output.
type Formatter struct {
	Currency string
	Locale   string
}

// NewFormatter returns a formatter, filling empty values with defaults.
func NewFormatter(currency, locale string) Formatter {
	if currency == "" {
		currency = DefaultCurrency
	}
	if locale == "" {
		locale = DefaultLocale
	}
	return Formatter{Currency: currency, Locale: locale}
}

func (f Formatter) printer() *message.Printer {
	tag, err := language.Parse(f.Locale)
	if err != nil {
		tag = language.English
	}
	return message.NewPrinter(tag)
}

// Number formats v with locale digit grouping and at most two decimals.
func (f Formatter) Number(v float64) string {
	rounded := decimal.NewFromFloat(v).Round(2).InexactFloat64()
	return f.printer().Sprint(number.Decimal(rounded, number.MaxFractionDigits(2)))
}

// Money formats v as "<currency> <number>", e.g. "KES 2,847,500".
func (f Formatter) Money(v float64) string {
	cur := f.Currency
	if cur == "" {
		cur = DefaultCurrency
	}
	return cur + " " + f.Number(v)
}

// MoneyText formats a raw numeric cell as money. Non-numeric cells are
// returned unchanged.
func (f Formatter) MoneyText(raw string) string {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return raw
	}
	return f.Money(v)
}

// Date formats an ISO date as "02 Jan 2006". Unparseable input is
// returned unchanged.
func (f Formatter) Date(s string) string {
	t, err := resource.ParseDate(s)
	if err != nil {
		return s
	}
	return t.Format("02 Jan 2006")
}

// DateTime formats an ISO timestamp as "02 Jan 2006 15:04".
func (f Formatter) DateTime(s string) string {
	t, err := resource.ParseDate(s)
	if err != nil {
		return s
	}
	return t.Format("02 Jan 2006 15:04")
}

// Period formats a date range as "start - end".
func (f Formatter) Period(start, end string) string {
	return f.Date(start) + " - " + f.Date(end)
}

// Raw formats a number the way it is stored, without grouping.
func Raw(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Stamp returns a file-name timestamp for exports.
func Stamp(now time.Time) string {
	return now.Format("20060102-150405")
}
