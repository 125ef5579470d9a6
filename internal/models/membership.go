package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MembershipStatus mirrors the membership platform's member states.
type MembershipStatus string

const (
	MembershipActive    MembershipStatus = "active"
	MembershipFrozen    MembershipStatus = "frozen"
	MembershipCancelled MembershipStatus = "cancelled"
)

// MembershipImport records one uploaded CSV export.
type MembershipImport struct {
	ID         string    `db:"id" json:"id"`
	LocationID string    `db:"location_id" json:"location_id"`
	Filename   string    `db:"filename" json:"filename"`
	RowCount   int       `db:"row_count" json:"row_count"`
	ImportedBy *string   `db:"imported_by" json:"imported_by,omitempty"`
	ImportedAt time.Time `db:"imported_at" json:"imported_at"`
}

// MembershipRecord is one member row from an import.
type MembershipRecord struct {
	ID               string           `db:"id" json:"id"`
	ImportID         string           `db:"import_id" json:"import_id"`
	LocationID       string           `db:"location_id" json:"location_id"`
	ExternalMemberID string           `db:"external_member_id" json:"external_member_id"`
	MemberName       string           `db:"member_name" json:"member_name"`
	Plan             string           `db:"plan" json:"plan"`
	Status           MembershipStatus `db:"status" json:"status"`
	JoinedOn         time.Time        `db:"joined_on" json:"joined_on"`
	CancelledOn      *time.Time       `db:"cancelled_on" json:"cancelled_on,omitempty"`
	MonthlyFee       decimal.Decimal  `db:"monthly_fee" json:"monthly_fee"`
}
