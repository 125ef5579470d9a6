package models

import "time"

// InventoryItem is a stock-keeping unit tracked at a location.
type InventoryItem struct {
	ID         string    `db:"id" json:"id"`
	LocationID string    `db:"location_id" json:"location_id"`
	Name       string    `db:"name" json:"name"`
	SKU        string    `db:"sku" json:"sku"`
	Unit       string    `db:"unit" json:"unit"`
	ParLevel   int       `db:"par_level" json:"par_level"`
	Active     bool      `db:"active" json:"active"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// InventoryCount is a stock count taken on a given day.
type InventoryCount struct {
	ID        string    `db:"id" json:"id"`
	ItemID    string    `db:"item_id" json:"item_id"`
	CountedOn time.Time `db:"counted_on" json:"counted_on"`
	Quantity  int       `db:"quantity" json:"quantity"`
	CountedBy *string   `db:"counted_by" json:"counted_by,omitempty"`
	Notes     *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// InventoryItemStatus pairs an item with its most recent count.
type InventoryItemStatus struct {
	InventoryItem
	LastQuantity  *int       `db:"last_quantity" json:"last_quantity"`
	LastCountedOn *time.Time `db:"last_counted_on" json:"last_counted_on"`
	BelowPar      bool       `db:"-" json:"below_par"`
}
