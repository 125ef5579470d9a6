package models

import "time"

// AssignmentRole is the part a coach plays in a class.
type AssignmentRole string

const (
	AssignmentHead   AssignmentRole = "head"
	AssignmentHelper AssignmentRole = "helper"
)

// Valid reports whether the role is one of the known values.
func (r AssignmentRole) Valid() bool {
	return r == AssignmentHead || r == AssignmentHelper
}

// ClassAssignment books a coach onto one dated occurrence of a template.
// Duration is never stored; it is derived from the template on every read.
type ClassAssignment struct {
	ID         string         `db:"id" json:"id"`
	CoachID    string         `db:"coach_id" json:"coach_id"`
	TemplateID string         `db:"template_id" json:"template_id"`
	ClassDate  time.Time      `db:"class_date" json:"class_date"`
	Role       AssignmentRole `db:"role" json:"role"`
	CreatedBy  *string        `db:"created_by" json:"created_by,omitempty"`
	CreatedAt  time.Time      `db:"created_at" json:"created_at"`
}

// AssignmentDetail joins an assignment with its template, location and coach.
type AssignmentDetail struct {
	ClassAssignment
	LocationID   string `db:"location_id" json:"location_id"`
	LocationName string `db:"location_name" json:"location_name"`
	CoachName    string `db:"coach_name" json:"coach_name"`
	Discipline   string `db:"discipline" json:"discipline"`
	StartTime    string `db:"start_time" json:"start_time"`
	EndTime      string `db:"end_time" json:"end_time"`
}

// ActivityRange selects assignments or private classes for payroll and schedule reads.
type ActivityRange struct {
	CoachIDs   []string
	StartDate  time.Time
	EndDate    time.Time
	LocationID string
}

// BulkAssignFilter selects the templates a bulk assignment targets.
type BulkAssignFilter struct {
	LocationID string
	Discipline string
	DayOfWeek  int
}
