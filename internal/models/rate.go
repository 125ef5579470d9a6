package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CoachRate holds a coach's hourly rates for regular classes.
type CoachRate struct {
	CoachID    string          `db:"coach_id" json:"coach_id"`
	HeadRate   decimal.Decimal `db:"head_rate" json:"head_rate"`
	HelperRate decimal.Decimal `db:"helper_rate" json:"helper_rate"`
	UpdatedAt  time.Time       `db:"updated_at" json:"updated_at"`
}

// PrivateRate pre-fills private class payouts for a coach at a location.
type PrivateRate struct {
	CoachID         string          `db:"coach_id" json:"coach_id"`
	LocationID      string          `db:"location_id" json:"location_id"`
	BaseRate        decimal.Decimal `db:"base_rate" json:"base_rate"`
	DiscountPercent decimal.Decimal `db:"discount_percent" json:"discount_percent"`
	UpdatedAt       time.Time       `db:"updated_at" json:"updated_at"`
}
