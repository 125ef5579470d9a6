package handler

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/academy-backoffice-api/internal/dto"
	"github.com/noah-isme/academy-backoffice-api/internal/models"
	"github.com/noah-isme/academy-backoffice-api/pkg/response"
)

type inventoryService interface {
	Items(ctx context.Context, locationID string) ([]models.InventoryItem, error)
	CreateItem(ctx context.Context, req dto.InventoryItemRequest) (*models.InventoryItem, error)
	UpdateItem(ctx context.Context, id string, req dto.InventoryItemUpdateRequest) (*models.InventoryItem, error)
	DeactivateItem(ctx context.Context, id string) error
	RecordCounts(ctx context.Context, actor models.AuthContext, req dto.InventoryCountRequest) ([]models.InventoryCount, error)
	Status(ctx context.Context, locationID string) ([]models.InventoryItemStatus, error)
}

// InventoryHandler tracks stock kept at each location.
type InventoryHandler struct {
	service inventoryService
}

// NewInventoryHandler constructs the handler.
func NewInventoryHandler(svc inventoryService) *InventoryHandler {
	return &InventoryHandler{service: svc}
}

// Items godoc
// @Summary List inventory items at a location
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param locationId query string true "Location"
// @Success 200 {object} response.Envelope
// @Router /inventory/items [get]
func (h *InventoryHandler) Items(c *gin.Context) {
	items, err := h.service.Items(c.Request.Context(), strings.TrimSpace(c.Query("locationId")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, items)
}

// CreateItem godoc
// @Summary Add an inventory item
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.InventoryItemRequest true "Item"
// @Success 201 {object} response.Envelope
// @Router /inventory/items [post]
func (h *InventoryHandler) CreateItem(c *gin.Context) {
	var req dto.InventoryItemRequest
	if !bindJSON(c, &req, "invalid inventory item payload") {
		return
	}
	item, err := h.service.CreateItem(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// UpdateItem godoc
// @Summary Edit an inventory item
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Param payload body dto.InventoryItemUpdateRequest true "Item"
// @Success 200 {object} response.Envelope
// @Router /inventory/items/{id} [put]
func (h *InventoryHandler) UpdateItem(c *gin.Context) {
	var req dto.InventoryItemUpdateRequest
	if !bindJSON(c, &req, "invalid inventory item payload") {
		return
	}
	item, err := h.service.UpdateItem(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, item)
}

// DeleteItem godoc
// @Summary Retire an inventory item
// @Tags Inventory
// @Security BearerAuth
// @Param id path string true "Item ID"
// @Success 204
// @Router /inventory/items/{id} [delete]
func (h *InventoryHandler) DeleteItem(c *gin.Context) {
	if err := h.service.DeactivateItem(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// RecordCounts godoc
// @Summary Record stock counts
// @Tags Inventory
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body dto.InventoryCountRequest true "Counts"
// @Success 201 {object} response.Envelope
// @Router /inventory/counts [post]
func (h *InventoryHandler) RecordCounts(c *gin.Context) {
	actor, ok := actorFromContext(c)
	if !ok {
		return
	}
	var req dto.InventoryCountRequest
	if !bindJSON(c, &req, "invalid inventory count payload") {
		return
	}
	counts, err := h.service.RecordCounts(c.Request.Context(), actor, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, counts)
}

// Status godoc
// @Summary Latest count per item with below-par flags
// @Tags Inventory
// @Produce json
// @Security BearerAuth
// @Param locationId query string true "Location"
// @Success 200 {object} response.Envelope
// @Router /inventory/status [get]
func (h *InventoryHandler) Status(c *gin.Context) {
	status, err := h.service.Status(c.Request.Context(), strings.TrimSpace(c.Query("locationId")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, status)
}
