package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/academy-backoffice-api/internal/models"
)

const coachColumns = `id, full_name, email, payment_frequency, role_tag, active, created_at, updated_at`

// CoachRepository reads coaches.
type CoachRepository struct {
	db *sqlx.DB
}

// NewCoachRepository constructs the repository.
func NewCoachRepository(db *sqlx.DB) *CoachRepository {
	return &CoachRepository{db: db}
}

// List returns coaches matching the filter ordered by name then id.
func (r *CoachRepository) List(ctx context.Context, filter models.CoachFilter) ([]models.Coach, error) {
	var conditions []string
	var args []interface{}
	if !filter.IncludeInactive {
		conditions = append(conditions, "active = TRUE")
	}
	if filter.Search != "" {
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
		conditions = append(conditions, fmt.Sprintf("(LOWER(full_name) LIKE $%d OR LOWER(email) LIKE $%d)", len(args), len(args)))
	}

	query := `SELECT ` + coachColumns + ` FROM coaches`
	if len(conditions) > 0 {
		query += ` WHERE ` + strings.Join(conditions, " AND ")
	}
	query += ` ORDER BY full_name ASC, id ASC`

	var coaches []models.Coach
	if err := r.db.SelectContext(ctx, &coaches, query, args...); err != nil {
		return nil, fmt.Errorf("list coaches: %w", err)
	}
	return coaches, nil
}

// FindByID returns a coach or sql.ErrNoRows.
func (r *CoachRepository) FindByID(ctx context.Context, id string) (*models.Coach, error) {
	const query = `SELECT ` + coachColumns + ` FROM coaches WHERE id = $1`
	var coach models.Coach
	if err := r.db.GetContext(ctx, &coach, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find coach: %w", err)
	}
	return &coach, nil
}

// ListBySelector resolves a payroll coach set. Explicit ids are honoured even for retired coaches;
// open selections return active coaches plus anyone with classes or privates in the worked range.
func (r *CoachRepository) ListBySelector(ctx context.Context, selector models.CoachSelector) ([]models.Coach, error) {
	var conditions []string
	var args []interface{}
	switch {
	case len(selector.CoachIDs) > 0:
		args = append(args, pq.Array(selector.CoachIDs))
		conditions = append(conditions, fmt.Sprintf("id = ANY($%d)", len(args)))
	case !selector.WorkedFrom.IsZero() && !selector.WorkedTo.IsZero():
		args = append(args, sqlDate(selector.WorkedFrom), sqlDate(selector.WorkedTo))
		from, to := len(args)-1, len(args)
		conditions = append(conditions, fmt.Sprintf(`(active = TRUE`+
			` OR EXISTS (SELECT 1 FROM class_assignments ca WHERE ca.coach_id = coaches.id AND ca.class_date BETWEEN $%[1]d AND $%[2]d)`+
			` OR EXISTS (SELECT 1 FROM private_classes pc WHERE pc.coach_id = coaches.id AND pc.class_date BETWEEN $%[1]d AND $%[2]d))`, from, to))
	default:
		conditions = append(conditions, "active = TRUE")
	}
	if selector.PaymentFrequency != "" {
		args = append(args, string(selector.PaymentFrequency))
		conditions = append(conditions, fmt.Sprintf("payment_frequency = $%d", len(args)))
	}
	if selector.ExcludeRoleTag != "" {
		args = append(args, string(selector.ExcludeRoleTag))
		conditions = append(conditions, fmt.Sprintf("role_tag <> $%d", len(args)))
	}

	query := `SELECT ` + coachColumns + ` FROM coaches WHERE ` + strings.Join(conditions, " AND ") + ` ORDER BY full_name ASC, id ASC`

	var coaches []models.Coach
	if err := r.db.SelectContext(ctx, &coaches, query, args...); err != nil {
		return nil, fmt.Errorf("list coaches by selector: %w", err)
	}
	return coaches, nil
}
