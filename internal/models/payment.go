package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CoachPayment is a ledger row recording that a coach was paid for a period.
type CoachPayment struct {
	ID          string          `db:"id" json:"id"`
	CoachID     string          `db:"coach_id" json:"coach_id"`
	PeriodStart time.Time       `db:"period_start" json:"period_start"`
	PeriodEnd   time.Time       `db:"period_end" json:"period_end"`
	Amount      decimal.Decimal `db:"amount" json:"amount"`
	PaidOn      time.Time       `db:"paid_on" json:"paid_on"`
	Method      string          `db:"method" json:"method"`
	Notes       *string         `db:"notes" json:"notes,omitempty"`
	RecordedBy  *string         `db:"recorded_by" json:"recorded_by,omitempty"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}
