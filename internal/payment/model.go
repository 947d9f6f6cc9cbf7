// Package payment provides the rent payment model, list filters, summary
// stats, receipts and export layout.
package payment

import (
	"github.com/evcraddock/rentdesk/internal/resource"
	"github.com/evcraddock/rentdesk/internal/validation"
)

// Method is how a payment was made.
type Method string

const (
	MethodMPesa        Method = "M-Pesa"
	MethodBankTransfer Method = "Bank Transfer"
	MethodCash         Method = "Cash"
	MethodCard         Method = "Card"
)

// Valid returns true if m is a known payment method.
func (m Method) Valid() bool {
	switch m {
	case MethodMPesa, MethodBankTransfer, MethodCash, MethodCard:
		return true
	}
	return false
}

// Status is the settlement state of a payment.
type Status string

const (
	StatusCompleted Status = "Completed"
	StatusPending   Status = "Pending"
	StatusOverdue   Status = "Overdue"
)

// Valid returns true if s is a known payment status.
func (s Status) Valid() bool {
	switch s {
	case StatusCompleted, StatusPending, StatusOverdue:
		return true
	}
	return false
}

// Payment is a rent payment against a lease.
type Payment struct {
	resource.Base
	TenantID  int64   `json:"tenantId" validate:"gt=0"`
	LeaseID   int64   `json:"leaseId" validate:"gt=0"`
	Amount    float64 `json:"amount" validate:"gt=0"`
	Method    Method  `json:"method" validate:"enum"`
	Date      string  `json:"date" validate:"isodate"`
	Status    Status  `json:"status" validate:"enum"`
	Reference string  `json:"reference" validate:"min=1"`
}

// Resource is the typed handle for the payments collection.
var Resource = resource.NewHandle[Payment](resource.Payments)

// New returns a payment with the form defaults applied.
func New() Payment {
	return Payment{Method: MethodCash, Status: StatusCompleted}
}

// Validate checks the payment form rules.
func (p Payment) Validate() error {
	return validation.Struct(p)
}

// MarkPaid is the partial update that settles a payment.
type MarkPaid struct {
	Status Status `json:"status"`
}

// Settle returns the update that marks a payment completed.
func Settle() MarkPaid {
	return MarkPaid{Status: StatusCompleted}
}
