package payment

import "github.com/shopspring/decimal"

// Stats summarises a list of payments.
type Stats struct {
	Total       int             `json:"total"`
	Completed   int             `json:"completed"`
	Pending     int             `json:"pending"`
	Overdue     int             `json:"overdue"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	Outstanding decimal.Decimal `json:"outstanding"`
}

// Summarize counts payments by status and totals their amounts.
// Outstanding is the sum of pending and overdue amounts.
func Summarize(payments []Payment) Stats {
	s := Stats{Total: len(payments)}
	for _, p := range payments {
		amt := decimal.NewFromFloat(p.Amount)
		s.TotalAmount = s.TotalAmount.Add(amt)
		switch p.Status {
		case StatusCompleted:
			s.Completed++
		case StatusPending:
			s.Pending++
			s.Outstanding = s.Outstanding.Add(amt)
		case StatusOverdue:
			s.Overdue++
			s.Outstanding = s.Outstanding.Add(amt)
		}
	}
	return s
}
