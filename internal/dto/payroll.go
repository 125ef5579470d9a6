package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/noah-isme/academy-backoffice-api/internal/models"
)

// PayrollQueryParams is the query string accepted by payroll reads and exports.
type PayrollQueryParams struct {
	StartDate   string   `form:"startDate" json:"startDate" validate:"required"`
	EndDate     string   `form:"endDate" json:"endDate" validate:"required"`
	LocationID  string   `form:"locationId" json:"locationId"`
	CoachIDs    []string `form:"coachId" json:"coachIds"`
	Frequency   string   `form:"frequency" json:"frequency" validate:"omitempty,oneof=weekly biweekly monthly"`
	ExcludeRole string   `form:"excludeRole" json:"excludeRole" validate:"omitempty,oneof=coach manager front_desk"`
}

// PayrollSummaryResponse is the location-grouped payroll view.
type PayrollSummaryResponse struct {
	StartDate  string                    `json:"startDate"`
	EndDate    string                    `json:"endDate"`
	LocationID string                    `json:"locationId,omitempty"`
	CoachCount int                       `json:"coachCount"`
	Locations  []models.LocationSubtotal `json:"locations"`
	Totals     models.PayrollTotals      `json:"totals"`
	Anomalies  []models.PayrollAnomaly   `json:"anomalies"`
}

// PayrollDetailedResponse groups pay by coach and then by location.
type PayrollDetailedResponse struct {
	StartDate  string                  `json:"startDate"`
	EndDate    string                  `json:"endDate"`
	LocationID string                  `json:"locationId,omitempty"`
	Coaches    []CoachPayrollDetail    `json:"coaches"`
	Totals     models.PayrollTotals    `json:"totals"`
	Anomalies  []models.PayrollAnomaly `json:"anomalies"`
}

// CoachPayrollDetail is one coach block of the detailed view.
type CoachPayrollDetail struct {
	CoachID          string                  `json:"coachId"`
	CoachName        string                  `json:"coachName"`
	PaymentFrequency models.PaymentFrequency `json:"paymentFrequency"`
	Totals           models.PayrollTotals    `json:"totals"`
	Locations        []LocationActivities    `json:"locations"`
}

// LocationActivities lists a coach's activities at one location.
type LocationActivities struct {
	LocationID   string                   `json:"locationId"`
	LocationName string                   `json:"locationName"`
	Totals       models.PayrollTotals     `json:"totals"`
	Activities   []models.PayrollActivity `json:"activities"`
}

// CoachCalendarResponse is a month grid of a single coach's activities.
type CoachCalendarResponse struct {
	CoachID   string               `json:"coachId"`
	CoachName string               `json:"coachName"`
	Month     string               `json:"month"`
	Weeks     []CalendarWeek       `json:"weeks"`
	Totals    models.PayrollTotals `json:"totals"`
}

// CalendarWeek is one Monday-first row of the grid.
type CalendarWeek struct {
	Days []CalendarDay `json:"days"`
}

// CalendarDay is a grid cell; days outside the month carry no activities.
type CalendarDay struct {
	Date       string                   `json:"date"`
	InMonth    bool                     `json:"inMonth"`
	Activities []models.PayrollActivity `json:"activities"`
	DayTotal   decimal.Decimal          `json:"dayTotal"`
}

// PayrollExportRequest asks for a file rendering of the detailed view.
type PayrollExportRequest struct {
	PayrollQueryParams
	Format string `json:"format" validate:"required,oneof=csv pdf xlsx"`
}

// PayrollExportResponse points at the generated file.
type PayrollExportResponse struct {
	ExportID    string    `json:"exportId"`
	Format      string    `json:"format"`
	Filename    string    `json:"filename"`
	DownloadURL string    `json:"downloadUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
	Rows        int       `json:"rows"`
}

// ReconciliationStatus compares owed and paid amounts.
type ReconciliationStatus string

const (
	ReconciliationUnpaid   ReconciliationStatus = "UNPAID"
	ReconciliationPartial  ReconciliationStatus = "PARTIAL"
	ReconciliationPaid     ReconciliationStatus = "PAID"
	ReconciliationOverpaid ReconciliationStatus = "OVERPAID"
)

// ReconciliationLine is one coach's owed-versus-paid comparison.
type ReconciliationLine struct {
	CoachID    string               `json:"coachId"`
	CoachName  string               `json:"coachName"`
	Owed       decimal.Decimal      `json:"owed"`
	Paid       decimal.Decimal      `json:"paid"`
	Difference decimal.Decimal      `json:"difference"`
	Payments   int                  `json:"payments"`
	Status     ReconciliationStatus `json:"status"`

	// LocationOwed is the share of Owed earned at the requested location.
	LocationOwed *decimal.Decimal `json:"locationOwed,omitempty"`
}

// ReconciliationResponse is the ledger consistency report for a period.
type ReconciliationResponse struct {
	StartDate  string               `json:"startDate"`
	EndDate    string               `json:"endDate"`
	LocationID string               `json:"locationId,omitempty"`
	Lines      []ReconciliationLine `json:"lines"`
	Owed       decimal.Decimal      `json:"owed"`
	Paid       decimal.Decimal      `json:"paid"`
	Difference decimal.Decimal      `json:"difference"`
}
