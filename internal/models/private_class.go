package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PrivateClassEntry is a one-off private lesson with a fixed payout.
type PrivateClassEntry struct {
	ID           string          `db:"id" json:"id"`
	CoachID      string          `db:"coach_id" json:"coach_id"`
	LocationID   string          `db:"location_id" json:"location_id"`
	StudentLabel string          `db:"student_label" json:"student_label"`
	ClassDate    time.Time       `db:"class_date" json:"class_date"`
	ClassTime    *string         `db:"class_time" json:"class_time,omitempty"`
	Payout       decimal.Decimal `db:"payout" json:"payout"`
	Notes        *string         `db:"notes" json:"notes,omitempty"`
	CreatedBy    *string         `db:"created_by" json:"created_by,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}

// PrivateClassDetail adds display names to a private class entry.
type PrivateClassDetail struct {
	PrivateClassEntry
	LocationName string `db:"location_name" json:"location_name"`
	CoachName    string `db:"coach_name" json:"coach_name"`
}

// PrivateClassFilter narrows private class listings.
type PrivateClassFilter struct {
	CoachID    string
	LocationID string
	StartDate  *time.Time
	EndDate    *time.Time
}
