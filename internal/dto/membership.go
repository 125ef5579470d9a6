package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MembershipImportResponse summarises a processed CSV upload.
type MembershipImportResponse struct {
	ImportID   string    `json:"importId"`
	LocationID string    `json:"locationId"`
	Filename   string    `json:"filename"`
	Rows       int       `json:"rows"`
	ImportedAt time.Time `json:"importedAt"`

	// CacheInvalidated is false when cached dashboards could not be cleared and may lag until they expire.
	CacheInvalidated bool `json:"cacheInvalidated"`
}

// MembershipDashboard is the analytics view for a location and month.
type MembershipDashboard struct {
	LocationID              string          `json:"locationId"`
	Month                   string          `json:"month"`
	ImportID                string          `json:"importId,omitempty"`
	ImportedAt              *time.Time      `json:"importedAt,omitempty"`
	ActiveMembers           int             `json:"activeMembers"`
	FrozenMembers           int             `json:"frozenMembers"`
	NewThisMonth            int             `json:"newThisMonth"`
	CancelledThisMonth      int             `json:"cancelledThisMonth"`
	MonthlyRecurringRevenue decimal.Decimal `json:"monthlyRecurringRevenue"`
	ByPlan                  []PlanBreakdown `json:"byPlan"`
}

// PlanBreakdown counts active members and revenue for one plan.
type PlanBreakdown struct {
	Plan                    string          `json:"plan"`
	ActiveMembers           int             `json:"activeMembers"`
	MonthlyRecurringRevenue decimal.Decimal `json:"monthlyRecurringRevenue"`
}

// MembershipCSVRow is one line of the membership platform's member export.
type MembershipCSVRow struct {
	MemberID    string `csv:"Member ID"`
	Name        string `csv:"Name"`
	Plan        string `csv:"Plan"`
	Status      string `csv:"Status"`
	JoinedOn    string `csv:"Join Date"`
	CancelledOn string `csv:"Cancel Date"`
	MonthlyFee  string `csv:"Monthly Fee"`
}
