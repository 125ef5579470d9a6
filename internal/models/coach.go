package models

import "time"

// PaymentFrequency is how often a coach is paid.
type PaymentFrequency string

const (
	PaymentWeekly   PaymentFrequency = "weekly"
	PaymentBiweekly PaymentFrequency = "biweekly"
	PaymentMonthly  PaymentFrequency = "monthly"
)

// CoachRoleTag classifies staff for bulk payroll selection.
type CoachRoleTag string

const (
	CoachTagCoach     CoachRoleTag = "coach"
	CoachTagManager   CoachRoleTag = "manager"
	CoachTagFrontDesk CoachRoleTag = "front_desk"
)

// Coach is a paid staff member.
type Coach struct {
	ID               string           `db:"id" json:"id"`
	FullName         string           `db:"full_name" json:"full_name"`
	Email            string           `db:"email" json:"email"`
	PaymentFrequency PaymentFrequency `db:"payment_frequency" json:"payment_frequency"`
	RoleTag          CoachRoleTag     `db:"role_tag" json:"role_tag"`
	Active           bool             `db:"active" json:"active"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updated_at"`
}

// CoachSelector picks the coach set for a payroll run: explicit ids, a payment frequency,
// or everyone except a role tag. Criteria combine with AND. Explicit ids match regardless of
// the active flag; otherwise a coach matches when active or when they worked in [WorkedFrom, WorkedTo].
type CoachSelector struct {
	CoachIDs         []string
	PaymentFrequency PaymentFrequency
	ExcludeRoleTag   CoachRoleTag
	WorkedFrom       time.Time
	WorkedTo         time.Time
}

// CoachFilter narrows coach listings.
type CoachFilter struct {
	Search          string
	IncludeInactive bool
}
