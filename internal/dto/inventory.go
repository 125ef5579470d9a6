package dto

// InventoryItemRequest creates an inventory item.
type InventoryItemRequest struct {
	LocationID string `json:"locationId" validate:"required"`
	Name       string `json:"name" validate:"required,max=120"`
	SKU        string `json:"sku" validate:"omitempty,max=60"`
	Unit       string `json:"unit" validate:"required,max=20"`
	ParLevel   int    `json:"parLevel" validate:"min=0"`
}

// InventoryItemUpdateRequest edits an item. An item never moves between locations.
type InventoryItemUpdateRequest struct {
	Name     string `json:"name" validate:"required,max=120"`
	SKU      string `json:"sku" validate:"omitempty,max=60"`
	Unit     string `json:"unit" validate:"required,max=20"`
	ParLevel int    `json:"parLevel" validate:"min=0"`
}

// InventoryCountRequest records counts taken on one day.
type InventoryCountRequest struct {
	CountedOn string               `json:"countedOn"`
	Counts    []InventoryCountLine `json:"counts" validate:"required,min=1,dive"`
}

// InventoryCountLine is one item's counted quantity.
type InventoryCountLine struct {
	ItemID   string  `json:"itemId" validate:"required"`
	Quantity int     `json:"quantity" validate:"min=0"`
	Notes    *string `json:"notes" validate:"omitempty,max=255"`
}
