package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/academy-backoffice-api/internal/models"
)

// RateRepository persists coach hourly rates and private lesson rates.
type RateRepository struct {
	db *sqlx.DB
}

// NewRateRepository constructs the repository.
func NewRateRepository(db *sqlx.DB) *RateRepository {
	return &RateRepository{db: db}
}

// GetCoachRate returns a coach's rates or sql.ErrNoRows.
func (r *RateRepository) GetCoachRate(ctx context.Context, coachID string) (*models.CoachRate, error) {
	const query = `SELECT coach_id, head_rate, helper_rate, updated_at FROM coach_rates WHERE coach_id = $1`
	var rate models.CoachRate
	if err := r.db.GetContext(ctx, &rate, query, coachID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get coach rate: %w", err)
	}
	return &rate, nil
}

// ListCoachRates returns the rates configured for the given coaches. Coaches without a row are absent.
func (r *RateRepository) ListCoachRates(ctx context.Context, coachIDs []string) ([]models.CoachRate, error) {
	if len(coachIDs) == 0 {
		return nil, nil
	}
	const query = `SELECT coach_id, head_rate, helper_rate, updated_at FROM coach_rates WHERE coach_id = ANY($1) ORDER BY coach_id ASC`
	var rates []models.CoachRate
	if err := r.db.SelectContext(ctx, &rates, query, pq.Array(coachIDs)); err != nil {
		return nil, fmt.Errorf("list coach rates: %w", err)
	}
	return rates, nil
}

// UpsertCoachRate inserts or replaces a coach's rates.
func (r *RateRepository) UpsertCoachRate(ctx context.Context, rate *models.CoachRate) error {
	rate.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO coach_rates (coach_id, head_rate, helper_rate, updated_at)
VALUES (:coach_id, :head_rate, :helper_rate, :updated_at)
ON CONFLICT (coach_id) DO UPDATE SET head_rate = EXCLUDED.head_rate, helper_rate = EXCLUDED.helper_rate, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, rate); err != nil {
		return fmt.Errorf("upsert coach rate: %w", err)
	}
	return nil
}

// GetPrivateRate returns the private rate for a coach at a location or sql.ErrNoRows.
func (r *RateRepository) GetPrivateRate(ctx context.Context, coachID, locationID string) (*models.PrivateRate, error) {
	const query = `SELECT coach_id, location_id, base_rate, discount_percent, updated_at FROM private_rates WHERE coach_id = $1 AND location_id = $2`
	var rate models.PrivateRate
	if err := r.db.GetContext(ctx, &rate, query, coachID, locationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("get private rate: %w", err)
	}
	return &rate, nil
}

// ListPrivateRates returns private rates, optionally for one location.
func (r *RateRepository) ListPrivateRates(ctx context.Context, locationID string) ([]models.PrivateRate, error) {
	query := `SELECT coach_id, location_id, base_rate, discount_percent, updated_at FROM private_rates`
	var args []interface{}
	if locationID != "" {
		query += ` WHERE location_id = $1`
		args = append(args, locationID)
	}
	query += ` ORDER BY location_id ASC, coach_id ASC`

	var rates []models.PrivateRate
	if err := r.db.SelectContext(ctx, &rates, query, args...); err != nil {
		return nil, fmt.Errorf("list private rates: %w", err)
	}
	return rates, nil
}

// UpsertPrivateRate inserts or replaces a private rate.
func (r *RateRepository) UpsertPrivateRate(ctx context.Context, rate *models.PrivateRate) error {
	rate.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO private_rates (coach_id, location_id, base_rate, discount_percent, updated_at)
VALUES (:coach_id, :location_id, :base_rate, :discount_percent, :updated_at)
ON CONFLICT (coach_id, location_id) DO UPDATE SET base_rate = EXCLUDED.base_rate, discount_percent = EXCLUDED.discount_percent, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, rate); err != nil {
		return fmt.Errorf("upsert private rate: %w", err)
	}
	return nil
}
