package dto

// TemplateRequest creates or edits a class template.
type TemplateRequest struct {
	LocationID string `json:"locationId" validate:"required"`
	Discipline string `json:"discipline" validate:"required,max=80"`
	DayOfWeek  int    `json:"dayOfWeek" validate:"required,min=1,max=7"`
	StartTime  string `json:"startTime" validate:"required"`
	EndTime    string `json:"endTime" validate:"required"`
	Level      string `json:"level" validate:"omitempty,max=40"`
	Active     *bool  `json:"active"`
}

// BulkTemplateItem is a template row in a bulk save; an empty ID creates a new template.
type BulkTemplateItem struct {
	ID string `json:"id"`
	TemplateRequest
}

// BulkTemplateRequest saves many templates in one transaction.
type BulkTemplateRequest struct {
	Templates []BulkTemplateItem `json:"templates" validate:"required,min=1,max=200,dive"`
}

// WeekScheduleResponse is the concrete class list for one Monday-to-Sunday week.
type WeekScheduleResponse struct {
	WeekStart  string        `json:"weekStart"`
	WeekEnd    string        `json:"weekEnd"`
	LocationID string        `json:"locationId,omitempty"`
	Days       []ScheduleDay `json:"days"`
}

// ScheduleDay holds one day's classes ordered by start time.
type ScheduleDay struct {
	Date      string           `json:"date"`
	DayOfWeek int              `json:"dayOfWeek"`
	Classes   []ScheduledClass `json:"classes"`
}

// ScheduledClass is a template occurrence with its booked coaches.
type ScheduledClass struct {
	TemplateID  string           `json:"templateId"`
	LocationID  string           `json:"locationId"`
	Discipline  string           `json:"discipline"`
	Level       string           `json:"level,omitempty"`
	StartTime   string           `json:"startTime"`
	EndTime     string           `json:"endTime"`
	Assignments []ScheduledCoach `json:"assignments"`
	Unstaffed   bool             `json:"unstaffed"`
}

// ScheduledCoach is an assignment shown on the schedule.
type ScheduledCoach struct {
	AssignmentID string `json:"assignmentId"`
	CoachID      string `json:"coachId"`
	CoachName    string `json:"coachName"`
	Role         string `json:"role"`
}

// CloneWeekRequest copies one week's assignments into the following week.
type CloneWeekRequest struct {
	SourceWeekStart string `json:"sourceWeekStart" validate:"required"`
	TargetWeekStart string `json:"targetWeekStart" validate:"required"`
	LocationID      string `json:"locationId"`
}

// CloneWeekResponse reports how many assignments were copied.
type CloneWeekResponse struct {
	Copied  int `json:"copied"`
	Skipped int `json:"skipped"`
}

// AssignmentRequest books a coach onto a dated class.
type AssignmentRequest struct {
	CoachID    string `json:"coachId" validate:"required"`
	TemplateID string `json:"templateId" validate:"required"`
	ClassDate  string `json:"classDate" validate:"required"`
	Role       string `json:"role" validate:"required,oneof=head helper"`
}

// BulkAssignRequest books a coach onto every matching template occurrence in a date range.
type BulkAssignRequest struct {
	CoachID    string `json:"coachId" validate:"required"`
	Role       string `json:"role" validate:"required,oneof=head helper"`
	LocationID string `json:"locationId"`
	Discipline string `json:"discipline"`
	DayOfWeek  int    `json:"dayOfWeek" validate:"omitempty,min=1,max=7"`
	From       string `json:"from" validate:"required"`
	To         string `json:"to" validate:"required"`
}

// BulkAssignResponse reports inserted and already-present assignments.
type BulkAssignResponse struct {
	Created int `json:"created"`
	Skipped int `json:"skipped"`
}
