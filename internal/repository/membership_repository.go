package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/academy-backoffice-api/internal/models"
	"github.com/noah-isme/academy-backoffice-api/pkg/database"
)

// MembershipRepository stores membership platform imports.
type MembershipRepository struct {
	db *sqlx.DB
}

// NewMembershipRepository constructs the repository.
func NewMembershipRepository(db *sqlx.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// CreateImport stores the import header and all of its rows in one transaction.
func (r *MembershipRepository) CreateImport(ctx context.Context, imp *models.MembershipImport, records []models.MembershipRecord) error {
	if imp.ID == "" {
		imp.ID = uuid.NewString()
	}
	imp.RowCount = len(records)

	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		const header = `INSERT INTO membership_imports (id, location_id, filename, row_count, imported_by, imported_at)
VALUES (:id, :location_id, :filename, :row_count, :imported_by, :imported_at)`
		if _, err := sqlx.NamedExecContext(ctx, tx, header, imp); err != nil {
			return fmt.Errorf("insert membership import: %w", err)
		}

		const row = `INSERT INTO membership_records (id, import_id, location_id, external_member_id, member_name, plan, status, joined_on, cancelled_on, monthly_fee)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
		for i := range records {
			rec := &records[i]
			if rec.ID == "" {
				rec.ID = uuid.NewString()
			}
			rec.ImportID = imp.ID
			rec.LocationID = imp.LocationID
			var cancelled interface{}
			if rec.CancelledOn != nil {
				cancelled = sqlDate(*rec.CancelledOn)
			}
			if _, err := tx.ExecContext(ctx, row, rec.ID, rec.ImportID, rec.LocationID, rec.ExternalMemberID, rec.MemberName,
				rec.Plan, rec.Status, sqlDate(rec.JoinedOn), cancelled, rec.MonthlyFee); err != nil {
				return fmt.Errorf("insert membership record %s: %w", rec.ExternalMemberID, err)
			}
		}
		return nil
	})
}

// LatestImport returns the newest import for a location or sql.ErrNoRows.
func (r *MembershipRepository) LatestImport(ctx context.Context, locationID string) (*models.MembershipImport, error) {
	const query = `SELECT id, location_id, filename, row_count, imported_by, imported_at FROM membership_imports
WHERE location_id = $1 ORDER BY imported_at DESC, id DESC LIMIT 1`
	var imp models.MembershipImport
	if err := r.db.GetContext(ctx, &imp, query, locationID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("latest membership import: %w", err)
	}
	return &imp, nil
}

// ListRecords returns the rows of an import.
func (r *MembershipRepository) ListRecords(ctx context.Context, importID string) ([]models.MembershipRecord, error) {
	const query = `SELECT id, import_id, location_id, external_member_id, member_name, plan, status, joined_on, cancelled_on, monthly_fee
FROM membership_records WHERE import_id = $1 ORDER BY external_member_id ASC`
	var records []models.MembershipRecord
	if err := r.db.SelectContext(ctx, &records, query, importID); err != nil {
		return nil, fmt.Errorf("list membership records: %w", err)
	}
	return records, nil
}
