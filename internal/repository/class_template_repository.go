package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/academy-backoffice-api/internal/models"
	"github.com/noah-isme/academy-backoffice-api/pkg/database"
)

const templateColumns = `id, location_id, discipline, day_of_week, start_time, end_time, level, active, created_at, updated_at`

// ClassTemplateRepository persists recurring class templates.
type ClassTemplateRepository struct {
	db *sqlx.DB
}

// NewClassTemplateRepository constructs the repository.
func NewClassTemplateRepository(db *sqlx.DB) *ClassTemplateRepository {
	return &ClassTemplateRepository{db: db}
}

// List returns templates ordered by location, weekday and start time.
func (r *ClassTemplateRepository) List(ctx context.Context, filter models.TemplateFilter) ([]models.ClassTemplate, error) {
	var conditions []string
	var args []interface{}
	if filter.LocationID != "" {
		args = append(args, filter.LocationID)
		conditions = append(conditions, fmt.Sprintf("location_id = $%d", len(args)))
	}
	if filter.Discipline != "" {
		args = append(args, filter.Discipline)
		conditions = append(conditions, fmt.Sprintf("discipline = $%d", len(args)))
	}
	if filter.DayOfWeek > 0 {
		args = append(args, filter.DayOfWeek)
		conditions = append(conditions, fmt.Sprintf("day_of_week = $%d", len(args)))
	}
	if filter.ActiveOnly {
		conditions = append(conditions, "active = TRUE")
	}

	query := `SELECT ` + templateColumns + ` FROM class_templates`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY location_id ASC, day_of_week ASC, start_time ASC, id ASC`

	var templates []models.ClassTemplate
	if err := r.db.SelectContext(ctx, &templates, query, args...); err != nil {
		return nil, fmt.Errorf("list class templates: %w", err)
	}
	return templates, nil
}

// FindByID returns a template or sql.ErrNoRows.
func (r *ClassTemplateRepository) FindByID(ctx context.Context, id string) (*models.ClassTemplate, error) {
	const query = `SELECT ` + templateColumns + ` FROM class_templates WHERE id = $1`
	var tpl models.ClassTemplate
	if err := r.db.GetContext(ctx, &tpl, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find class template: %w", err)
	}
	return &tpl, nil
}

// Create inserts a template, assigning id and timestamps when missing.
func (r *ClassTemplateRepository) Create(ctx context.Context, tpl *models.ClassTemplate) error {
	return r.insert(ctx, r.db, tpl)
}

// Update overwrites a template's editable fields. Missing rows yield sql.ErrNoRows.
func (r *ClassTemplateRepository) Update(ctx context.Context, tpl *models.ClassTemplate) error {
	return r.update(ctx, r.db, tpl)
}

// Deactivate hides a template from future schedules without touching past assignments.
func (r *ClassTemplateRepository) Deactivate(ctx context.Context, id string) error {
	const query = `UPDATE class_templates SET active = FALSE, updated_at = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("deactivate class template: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// BulkSave creates templates without an id and updates the rest in one transaction.
func (r *ClassTemplateRepository) BulkSave(ctx context.Context, templates []models.ClassTemplate) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		for i := range templates {
			var err error
			if templates[i].ID == "" {
				err = r.insert(ctx, tx, &templates[i])
			} else {
				err = r.update(ctx, tx, &templates[i])
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *ClassTemplateRepository) insert(ctx context.Context, exec sqlx.ExtContext, tpl *models.ClassTemplate) error {
	if tpl.ID == "" {
		tpl.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if tpl.CreatedAt.IsZero() {
		tpl.CreatedAt = now
	}
	tpl.UpdatedAt = now

	const query = `INSERT INTO class_templates (id, location_id, discipline, day_of_week, start_time, end_time, level, active, created_at, updated_at)
VALUES (:id, :location_id, :discipline, :day_of_week, :start_time, :end_time, :level, :active, :created_at, :updated_at)`
	if _, err := sqlx.NamedExecContext(ctx, exec, query, tpl); err != nil {
		return fmt.Errorf("insert class template: %w", err)
	}
	return nil
}

func (r *ClassTemplateRepository) update(ctx context.Context, exec sqlx.ExtContext, tpl *models.ClassTemplate) error {
	tpl.UpdatedAt = time.Now().UTC()
	const query = `UPDATE class_templates SET location_id = :location_id, discipline = :discipline, day_of_week = :day_of_week,
start_time = :start_time, end_time = :end_time, level = :level, active = :active, updated_at = :updated_at WHERE id = :id`
	res, err := sqlx.NamedExecContext(ctx, exec, query, tpl)
	if err != nil {
		return fmt.Errorf("update class template: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
