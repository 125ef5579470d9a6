package dto

import "github.com/shopspring/decimal"

// PrivateClassRequest creates or edits a private lesson.
type PrivateClassRequest struct {
	CoachID      string          `json:"coachId" validate:"required"`
	LocationID   string          `json:"locationId" validate:"required"`
	StudentLabel string          `json:"studentLabel" validate:"required,max=120"`
	ClassDate    string          `json:"classDate" validate:"required"`
	ClassTime    *string         `json:"classTime"`
	Payout       decimal.Decimal `json:"payout"`
	Notes        *string         `json:"notes" validate:"omitempty,max=500"`
}

// PayoutSuggestion pre-fills the payout field of a private class form.
type PayoutSuggestion struct {
	CoachID         string          `json:"coachId"`
	LocationID      string          `json:"locationId"`
	Configured      bool            `json:"configured"`
	BaseRate        decimal.Decimal `json:"baseRate"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
	Suggested       decimal.Decimal `json:"suggested"`
}

// CoachRateRequest sets a coach's hourly rates.
type CoachRateRequest struct {
	HeadRate   decimal.Decimal `json:"headRate"`
	HelperRate decimal.Decimal `json:"helperRate"`
}

// PrivateRateRequest sets a coach's private lesson rate at a location.
type PrivateRateRequest struct {
	CoachID         string          `json:"coachId" validate:"required"`
	LocationID      string          `json:"locationId" validate:"required"`
	BaseRate        decimal.Decimal `json:"baseRate"`
	DiscountPercent decimal.Decimal `json:"discountPercent"`
}

// PrivateClassQuery filters the private class listing.
type PrivateClassQuery struct {
	CoachID    string `form:"coachId"`
	LocationID string `form:"locationId"`
	StartDate  string `form:"startDate"`
	EndDate    string `form:"endDate"`
}
