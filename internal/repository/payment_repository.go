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
)

const paymentColumns = `id, coach_id, period_start, period_end, amount, paid_on, method, notes, recorded_by, created_at`

// PaymentRepository is the append-only coach payment ledger.
type PaymentRepository struct {
	db *sqlx.DB
}

// NewPaymentRepository constructs the repository.
func NewPaymentRepository(db *sqlx.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create appends a ledger row. No uniqueness is enforced.
func (r *PaymentRepository) Create(ctx context.Context, p *models.CoachPayment) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO coach_payments (` + paymentColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	if _, err := r.db.ExecContext(ctx, query, p.ID, p.CoachID, sqlDate(p.PeriodStart), sqlDate(p.PeriodEnd), p.Amount,
		sqlDate(p.PaidOn), p.Method, p.Notes, p.RecordedBy, p.CreatedAt); err != nil {
		return fmt.Errorf("insert coach payment: %w", err)
	}
	return nil
}

// Delete removes a ledger row; missing rows yield sql.ErrNoRows.
func (r *PaymentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM coach_payments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete coach payment: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// FindForPeriod returns the most recent row whose boundaries exactly match, or sql.ErrNoRows.
func (r *PaymentRepository) FindForPeriod(ctx context.Context, coachID string, start, end time.Time) (*models.CoachPayment, error) {
	const query = `SELECT ` + paymentColumns + ` FROM coach_payments
WHERE coach_id = $1 AND period_start = $2 AND period_end = $3
ORDER BY created_at DESC, id DESC LIMIT 1`
	var p models.CoachPayment
	if err := r.db.GetContext(ctx, &p, query, coachID, sqlDate(start), sqlDate(end)); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find coach payment: %w", err)
	}
	return &p, nil
}

// ListForPeriod returns every row exactly matching the period for the given coaches.
func (r *PaymentRepository) ListForPeriod(ctx context.Context, coachIDs []string, start, end time.Time) ([]models.CoachPayment, error) {
	if len(coachIDs) == 0 {
		return nil, nil
	}
	const query = `SELECT ` + paymentColumns + ` FROM coach_payments
WHERE coach_id = ANY($1) AND period_start = $2 AND period_end = $3
ORDER BY coach_id ASC, created_at ASC, id ASC`
	var payments []models.CoachPayment
	if err := r.db.SelectContext(ctx, &payments, query, pq.Array(coachIDs), sqlDate(start), sqlDate(end)); err != nil {
		return nil, fmt.Errorf("list coach payments: %w", err)
	}
	return payments, nil
}
