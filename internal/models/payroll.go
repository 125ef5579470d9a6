package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ActivityKind distinguishes regular class lines from private lessons.
type ActivityKind string

const (
	ActivityClass   ActivityKind = "class"
	ActivityPrivate ActivityKind = "private"
)

// PayrollQuery selects the coaches, period and optional location of a payroll run.
type PayrollQuery struct {
	Selector   CoachSelector
	StartDate  time.Time
	EndDate    time.Time
	LocationID string
}

// PayrollTotals are the money and hour sums shared by coach, location and grand totals.
type PayrollTotals struct {
	RegularPay decimal.Decimal `json:"regular_pay"`
	PrivatePay decimal.Decimal `json:"private_pay"`
	TotalPay   decimal.Decimal `json:"total_pay"`
	TotalHours decimal.Decimal `json:"total_hours"`
}

// PayrollActivity is one priced line on a coach's payroll.
type PayrollActivity struct {
	Kind         ActivityKind    `json:"kind"`
	SourceID     string          `json:"source_id"`
	Date         string          `json:"date"`
	Time         string          `json:"time,omitempty"`
	LocationID   string          `json:"location_id"`
	LocationName string          `json:"location_name"`
	Description  string          `json:"description"`
	Role         AssignmentRole  `json:"role,omitempty"`
	Hours        decimal.Decimal `json:"hours"`
	Rate         decimal.Decimal `json:"rate"`
	Pay          decimal.Decimal `json:"pay"`
}

// LocationSubtotal sums activities recorded at one location.
type LocationSubtotal struct {
	LocationID   string `json:"location_id"`
	LocationName string `json:"location_name"`
	PayrollTotals
}

// CoachPayroll is a coach's pay for the period.
type CoachPayroll struct {
	CoachID          string           `json:"coach_id"`
	CoachName        string           `json:"coach_name"`
	PaymentFrequency PaymentFrequency `json:"payment_frequency"`
	PayrollTotals
	Locations  []LocationSubtotal `json:"locations"`
	Activities []PayrollActivity  `json:"activities"`
}

// PayrollAnomaly reports an assignment excluded from pay because its template times are unusable.
type PayrollAnomaly struct {
	AssignmentID string `json:"assignment_id"`
	TemplateID   string `json:"template_id"`
	CoachID      string `json:"coach_id"`
	Date         string `json:"date"`
	Reason       string `json:"reason"`
}

// PayrollReport is the full result of one aggregation.
type PayrollReport struct {
	StartDate  string             `json:"start_date"`
	EndDate    string             `json:"end_date"`
	LocationID string             `json:"location_id,omitempty"`
	Coaches    []CoachPayroll     `json:"coaches"`
	Locations  []LocationSubtotal `json:"locations"`
	Totals     PayrollTotals      `json:"totals"`
	Anomalies  []PayrollAnomaly   `json:"anomalies"`
}
