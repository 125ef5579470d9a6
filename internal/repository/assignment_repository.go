package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/academy-backoffice-api/internal/models"
	"github.com/noah-isme/academy-backoffice-api/pkg/database"
)

const assignmentDetailSelect = `SELECT ca.id, ca.coach_id, ca.template_id, ca.class_date, ca.role, ca.created_by, ca.created_at,
ct.location_id, l.name AS location_name, co.full_name AS coach_name, ct.discipline, ct.start_time, ct.end_time
FROM class_assignments ca
JOIN class_templates ct ON ct.id = ca.template_id
JOIN locations l ON l.id = ct.location_id
JOIN coaches co ON co.id = ca.coach_id`

// AssignmentRepository persists coach-to-class bookings.
type AssignmentRepository struct {
	db *sqlx.DB
}

// NewAssignmentRepository constructs the repository.
func NewAssignmentRepository(db *sqlx.DB) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// ListRange returns assignments joined to their template within an inclusive date range.
// Rows are ordered by date, start time, creation time and id so repeated reads are stable.
func (r *AssignmentRepository) ListRange(ctx context.Context, rng models.ActivityRange) ([]models.AssignmentDetail, error) {
	query := assignmentDetailSelect + ` WHERE ca.class_date BETWEEN $1 AND $2`
	args := []interface{}{sqlDate(rng.StartDate), sqlDate(rng.EndDate)}
	if len(rng.CoachIDs) > 0 {
		args = append(args, pq.Array(rng.CoachIDs))
		query += fmt.Sprintf(" AND ca.coach_id = ANY($%d)", len(args))
	}
	if rng.LocationID != "" {
		args = append(args, rng.LocationID)
		query += fmt.Sprintf(" AND ct.location_id = $%d", len(args))
	}
	query += ` ORDER BY ca.class_date ASC, ct.start_time ASC, ca.created_at ASC, ca.id ASC`

	var rows []models.AssignmentDetail
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list assignments: %w", err)
	}
	return rows, nil
}

// FindByID returns an assignment or sql.ErrNoRows.
func (r *AssignmentRepository) FindByID(ctx context.Context, id string) (*models.ClassAssignment, error) {
	const query = `SELECT id, coach_id, template_id, class_date, role, created_by, created_at FROM class_assignments WHERE id = $1`
	var a models.ClassAssignment
	if err := r.db.GetContext(ctx, &a, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find assignment: %w", err)
	}
	return &a, nil
}

// Create inserts a single assignment. Duplicates surface as a unique violation.
func (r *AssignmentRepository) Create(ctx context.Context, a *models.ClassAssignment) error {
	_, err := r.insert(ctx, r.db, a, false)
	return err
}

// Delete removes an assignment; missing rows yield sql.ErrNoRows.
func (r *AssignmentRepository) Delete(ctx context.Context, id string) error {
	return r.delete(ctx, r.db, id)
}

// Move replaces an assignment with a new booking in one transaction.
func (r *AssignmentRepository) Move(ctx context.Context, id string, next *models.ClassAssignment) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := r.delete(ctx, tx, id); err != nil {
			return err
		}
		_, err := r.insert(ctx, tx, next, false)
		return err
	})
}

// BulkCreate inserts assignments in one transaction, skipping ones already booked.
// It returns the number of rows actually inserted.
func (r *AssignmentRepository) BulkCreate(ctx context.Context, assignments []models.ClassAssignment) (int, error) {
	created := 0
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		created = 0
		for i := range assignments {
			inserted, err := r.insert(ctx, tx, &assignments[i], true)
			if err != nil {
				return err
			}
			if inserted {
				created++
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return created, nil
}

// CloneWeek copies assignments dated in [sourceStart, sourceStart+6] forward by offsetDays.
// Bookings already present in the target week are skipped. It returns copied and skipped counts.
func (r *AssignmentRepository) CloneWeek(ctx context.Context, sourceStart time.Time, offsetDays int, locationID string, actor *string) (int, int, error) {
	sourceEnd := sourceStart.AddDate(0, 0, 6)
	filter := ""
	args := []interface{}{sqlDate(sourceStart), sqlDate(sourceEnd)}
	if locationID != "" {
		args = append(args, locationID)
		filter = fmt.Sprintf(" AND ct.location_id = $%d", len(args))
	}

	countQuery := `SELECT COUNT(*) FROM class_assignments ca JOIN class_templates ct ON ct.id = ca.template_id
WHERE ca.class_date BETWEEN $1 AND $2` + filter
	insertQuery := fmt.Sprintf(`INSERT INTO class_assignments (id, coach_id, template_id, class_date, role, created_by, created_at)
SELECT gen_random_uuid(), ca.coach_id, ca.template_id, ca.class_date + $%d::int, ca.role, $%d, NOW()
FROM class_assignments ca JOIN class_templates ct ON ct.id = ca.template_id
WHERE ca.class_date BETWEEN $1 AND $2%s
ON CONFLICT (coach_id, template_id, class_date) DO NOTHING`, len(args)+1, len(args)+2, filter)

	var source, copied int
	err := database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		if err := tx.GetContext(ctx, &source, countQuery, args...); err != nil {
			return fmt.Errorf("count source week: %w", err)
		}
		res, err := tx.ExecContext(ctx, insertQuery, append(args, offsetDays, actor)...)
		if err != nil {
			return fmt.Errorf("clone week assignments: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("clone week rows affected: %w", err)
		}
		copied = int(n)
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return copied, source - copied, nil
}

func (r *AssignmentRepository) insert(ctx context.Context, exec sqlx.ExtContext, a *models.ClassAssignment, skipExisting bool) (bool, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	query := `INSERT INTO class_assignments (id, coach_id, template_id, class_date, role, created_by, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	if skipExisting {
		query += ` ON CONFLICT (coach_id, template_id, class_date) DO NOTHING`
	}
	res, err := exec.ExecContext(ctx, query, a.ID, a.CoachID, a.TemplateID, sqlDate(a.ClassDate), a.Role, a.CreatedBy, a.CreatedAt)
	if err != nil {
		return false, fmt.Errorf("insert assignment: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("insert assignment rows affected: %w", err)
	}
	return n > 0, nil
}

func (r *AssignmentRepository) delete(ctx context.Context, exec sqlx.ExecerContext, id string) error {
	res, err := exec.ExecContext(ctx, `DELETE FROM class_assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete assignment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
