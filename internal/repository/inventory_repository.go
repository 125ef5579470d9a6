package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/academy-backoffice-api/internal/models"
	"github.com/noah-isme/academy-backoffice-api/pkg/database"
)

const inventoryItemColumns = `id, location_id, name, sku, unit, par_level, active, created_at, updated_at`

// InventoryRepository persists stock items and counts.
type InventoryRepository struct {
	db *sqlx.DB
}

// NewInventoryRepository constructs the repository.
func NewInventoryRepository(db *sqlx.DB) *InventoryRepository {
	return &InventoryRepository{db: db}
}

// ListItems returns active items for a location ordered by name.
func (r *InventoryRepository) ListItems(ctx context.Context, locationID string) ([]models.InventoryItem, error) {
	const query = `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE location_id = $1 AND active = TRUE ORDER BY name ASC, id ASC`
	var items []models.InventoryItem
	if err := r.db.SelectContext(ctx, &items, query, locationID); err != nil {
		return nil, fmt.Errorf("list inventory items: %w", err)
	}
	return items, nil
}

// FindItem returns an item or sql.ErrNoRows.
func (r *InventoryRepository) FindItem(ctx context.Context, id string) (*models.InventoryItem, error) {
	const query = `SELECT ` + inventoryItemColumns + ` FROM inventory_items WHERE id = $1`
	var item models.InventoryItem
	if err := r.db.GetContext(ctx, &item, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("find inventory item: %w", err)
	}
	return &item, nil
}

// CreateItem inserts an item.
func (r *InventoryRepository) CreateItem(ctx context.Context, item *models.InventoryItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now
	const query = `INSERT INTO inventory_items (` + inventoryItemColumns + `)
VALUES (:id, :location_id, :name, :sku, :unit, :par_level, :active, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("insert inventory item: %w", err)
	}
	return nil
}

// UpdateItem rewrites an item's name, sku, unit and par level. Returns sql.ErrNoRows when absent.
func (r *InventoryRepository) UpdateItem(ctx context.Context, item *models.InventoryItem) error {
	item.UpdatedAt = time.Now().UTC()
	const query = `UPDATE inventory_items
SET name = :name, sku = :sku, unit = :unit, par_level = :par_level, updated_at = :updated_at
WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("update inventory item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// DeactivateItem hides an item from lists and status. Past counts are kept.
func (r *InventoryRepository) DeactivateItem(ctx context.Context, id string) error {
	const query = `UPDATE inventory_items SET active = FALSE, updated_at = $2 WHERE id = $1 AND active = TRUE`
	res, err := r.db.ExecContext(ctx, query, id, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("deactivate inventory item: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CreateCounts stores a batch of counts in one transaction.
func (r *InventoryRepository) CreateCounts(ctx context.Context, counts []models.InventoryCount) error {
	return database.WithTx(ctx, r.db, func(tx *sqlx.Tx) error {
		const query = `INSERT INTO inventory_counts (id, item_id, counted_on, quantity, counted_by, notes, created_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
		now := time.Now().UTC()
		for i := range counts {
			c := &counts[i]
			if c.ID == "" {
				c.ID = uuid.NewString()
			}
			c.CreatedAt = now
			if _, err := tx.ExecContext(ctx, query, c.ID, c.ItemID, sqlDate(c.CountedOn), c.Quantity, c.CountedBy, c.Notes, c.CreatedAt); err != nil {
				return fmt.Errorf("insert inventory count: %w", err)
			}
		}
		return nil
	})
}

// Status returns every active item of a location with its latest count, if any.
func (r *InventoryRepository) Status(ctx context.Context, locationID string) ([]models.InventoryItemStatus, error) {
	const query = `SELECT i.id, i.location_id, i.name, i.sku, i.unit, i.par_level, i.active, i.created_at, i.updated_at,
lc.quantity AS last_quantity, lc.counted_on AS last_counted_on
FROM inventory_items i
LEFT JOIN LATERAL (
	SELECT quantity, counted_on FROM inventory_counts c
	WHERE c.item_id = i.id ORDER BY c.counted_on DESC, c.created_at DESC LIMIT 1
) lc ON TRUE
WHERE i.location_id = $1 AND i.active = TRUE
ORDER BY i.name ASC, i.id ASC`
	var rows []models.InventoryItemStatus
	if err := r.db.SelectContext(ctx, &rows, query, locationID); err != nil {
		return nil, fmt.Errorf("inventory status: %w", err)
	}
	return rows, nil
}
