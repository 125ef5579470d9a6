package models

import "time"

// ClassTemplate is a recurring weekly class slot at a location.
type ClassTemplate struct {
	ID         string    `db:"id" json:"id"`
	LocationID string    `db:"location_id" json:"location_id"`
	Discipline string    `db:"discipline" json:"discipline"`
	DayOfWeek  int       `db:"day_of_week" json:"day_of_week"`
	StartTime  string    `db:"start_time" json:"start_time"`
	EndTime    string    `db:"end_time" json:"end_time"`
	Level      string    `db:"level" json:"level"`
	Active     bool      `db:"active" json:"active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// TemplateFilter narrows template listings.
type TemplateFilter struct {
	LocationID string
	Discipline string
	DayOfWeek  int
	ActiveOnly bool
}
