package dto

import (
	"github.com/shopspring/decimal"

	"github.com/noah-isme/academy-backoffice-api/internal/models"
)

// RecordPaymentRequest appends a ledger row. The amount is taken as given.
type RecordPaymentRequest struct {
	CoachID     string          `json:"coachId" validate:"required"`
	PeriodStart string          `json:"periodStart" validate:"required"`
	PeriodEnd   string          `json:"periodEnd" validate:"required"`
	Amount      decimal.Decimal `json:"amount"`
	PaidOn      string          `json:"paidOn"`
	Method      string          `json:"method" validate:"required,oneof=cash bank_transfer check payroll_provider other"`
	Notes       *string         `json:"notes" validate:"omitempty,max=500"`
}

// PaymentStatusResponse answers whether a period has a matching ledger row.
type PaymentStatusResponse struct {
	Paid    bool                 `json:"paid"`
	Payment *models.CoachPayment `json:"payment,omitempty"`
}
