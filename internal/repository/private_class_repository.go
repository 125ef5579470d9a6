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
	"github.com/lib/pq"

	"github.com/noah-isme/academy-backoffice-api/internal/models"
)

const privateClassDetailSelect = `SELECT pc.id, pc.coach_id, pc.location_id, pc.student_label, pc.class_date, pc.class_time, pc.payout, pc.notes,
pc.created_by, pc.created_at, pc.updated_at, l.name AS location_name, co.full_name AS coach_name
FROM private_classes pc
JOIN locations l ON l.id = pc.location_id
JOIN coaches co ON co.id = pc.coach_id`

// PrivateClassRepository persists private lessons.
type PrivateClassRepository struct {
	db *sqlx.DB
}

// NewPrivateClassRepository constructs the repository.
func NewPrivateClassRepository(db *sqlx.DB) *PrivateClassRepository {
	return &PrivateClassRepository{db: db}
}

// ListRange returns private classes within an inclusive date range in stable order.
func (r *PrivateClassRepository) ListRange(ctx context.Context, rng models.ActivityRange) ([]models.PrivateClassDetail, error) {
	query := privateClassDetailSelect + ` WHERE pc.class_date BETWEEN $1 AND $2`
	args := []interface{}{sqlDate(rng.StartDate), sqlDate(rng.EndDate)}
	if len(rng.CoachIDs) > 0 {
		args = append(args, pq.Array(rng.CoachIDs))
		query += fmt.Sprintf(" AND pc.coach_id = ANY($%d)", len(args))
	}
	if rng.LocationID != "" {
		args = append(args, rng.LocationID)
		query += fmt.Sprintf(" AND pc.location_id = $%d", len(args))
	}
	query += ` ORDER BY pc.class_date ASC, pc.created_at ASC, pc.id ASC`

	var rows []models.PrivateClassDetail
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list private classes: %w", err)
	}
	return rows, nil
}

// List returns private classes for the back office table, newest first.
func (r *PrivateClassRepository) List(ctx context.Context, filter models.PrivateClassFilter) ([]models.PrivateClassDetail, error) {
	var conditions []string
	var args []interface{}
	if filter.CoachID != "" {
		args = append(args, filter.CoachID)
		conditions = append(conditions, fmt.Sprintf("pc.coach_id = $%d", len(args)))
	}
	if filter.LocationID != "" {
		args = append(args, filter.LocationID)
		conditions = append(conditions, fmt.Sprintf("pc.location_id = $%d", len(args)))
	}
	if filter.StartDate != nil {
		args = append(args, sqlDate(*filter.StartDate))
		conditions = append(conditions, fmt.Sprintf("pc.class_date >= $%d", len(args)))
	}
	if filter.EndDate != nil {
		args = append(args, sqlDate(*filter.EndDate))
		conditions = append(conditions, fmt.Sprintf("pc.class_date <= $%d", len(args)))
	}

	query := privateClassDetailSelect
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY pc.class_date DESC, pc.created_at DESC, pc.id ASC`

	var rows []models.PrivateClassDetail
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list private classes: %w", err)
	}
	return rows, nil
}

// FindByID returns a private class or sql.ErrNoRows.
func (r *PrivateClassRepository) FindByID(ctx context.Context, id string) (*models.PrivateClassEntry, error) {
	const query = `SELECT id, coach_id, location_id, student_label, class_date, class_time, payout, notes, created_by, created_at, updated_at
FROM private_classes WHERE id = $1`
	var entry models.PrivateClassEntry
	if err := r.db.GetContext(ctx, &entry, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find private class: %w", err)
	}
	return &entry, nil
}

// Create inserts a private class.
func (r *PrivateClassRepository) Create(ctx context.Context, entry *models.PrivateClassEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	entry.CreatedAt = now
	entry.UpdatedAt = now

	const query = `INSERT INTO private_classes (id, coach_id, location_id, student_label, class_date, class_time, payout, notes, created_by, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	if _, err := r.db.ExecContext(ctx, query, entry.ID, entry.CoachID, entry.LocationID, entry.StudentLabel, sqlDate(entry.ClassDate),
		entry.ClassTime, entry.Payout, entry.Notes, entry.CreatedBy, entry.CreatedAt, entry.UpdatedAt); err != nil {
		return fmt.Errorf("insert private class: %w", err)
	}
	return nil
}

// Update overwrites a private class; missing rows yield sql.ErrNoRows.
func (r *PrivateClassRepository) Update(ctx context.Context, entry *models.PrivateClassEntry) error {
	entry.UpdatedAt = time.Now().UTC()
	const query = `UPDATE private_classes SET coach_id = $2, location_id = $3, student_label = $4, class_date = $5, class_time = $6,
payout = $7, notes = $8, updated_at = $9 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, query, entry.ID, entry.CoachID, entry.LocationID, entry.StudentLabel, sqlDate(entry.ClassDate),
		entry.ClassTime, entry.Payout, entry.Notes, entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update private class: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a private class; missing rows yield sql.ErrNoRows.
func (r *PrivateClassRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM private_classes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete private class: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
