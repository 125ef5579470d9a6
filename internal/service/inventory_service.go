package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-backoffice-api/internal/dto"
	"github.com/noah-isme/academy-backoffice-api/internal/models"
	"github.com/noah-isme/academy-backoffice-api/internal/repository"
	appErrors "github.com/noah-isme/academy-backoffice-api/pkg/errors"
)

type inventoryRepository interface {
	ListItems(ctx context.Context, locationID string) ([]models.InventoryItem, error)
	FindItem(ctx context.Context, id string) (*models.InventoryItem, error)
	CreateItem(ctx context.Context, item *models.InventoryItem) error
	UpdateItem(ctx context.Context, item *models.InventoryItem) error
	DeactivateItem(ctx context.Context, id string) error
	CreateCounts(ctx context.Context, counts []models.InventoryCount) error
	Status(ctx context.Context, locationID string) ([]models.InventoryItemStatus, error)
}

// InventoryService tracks stock items and periodic counts per location.
type InventoryService struct {
	repo      inventoryRepository
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewInventoryService constructs the service.
func NewInventoryService(repo inventoryRepository, validate *validator.Validate, logger *zap.Logger) *InventoryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &InventoryService{repo: repo, validator: validate, logger: logger, now: time.Now}
}

// Items lists active items at a location.
func (s *InventoryService) Items(ctx context.Context, locationID string) ([]models.InventoryItem, error) {
	if locationID == "" {
		return nil, appErrors.Validation("locationId is required")
	}
	items, err := s.repo.ListItems(ctx, locationID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list inventory items")
	}
	if items == nil {
		items = []models.InventoryItem{}
	}
	return items, nil
}

// CreateItem adds an item.
func (s *InventoryService) CreateItem(ctx context.Context, req dto.InventoryItemRequest) (*models.InventoryItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Invalid(err, "invalid inventory item payload")
	}
	item := &models.InventoryItem{
		LocationID: req.LocationID,
		Name:       strings.TrimSpace(req.Name),
		SKU:        strings.TrimSpace(req.SKU),
		Unit:       strings.TrimSpace(req.Unit),
		ParLevel:   req.ParLevel,
		Active:     true,
	}
	if err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, mapInventoryWriteError(err, "failed to create inventory item")
	}
	return item, nil
}

// UpdateItem edits an active or inactive item in place.
func (s *InventoryService) UpdateItem(ctx context.Context, id string, req dto.InventoryItemUpdateRequest) (*models.InventoryItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Invalid(err, "invalid inventory item payload")
	}
	item, err := s.repo.FindItem(ctx, id)
	if err != nil {
		return nil, mapInventoryWriteError(err, "failed to load inventory item")
	}
	item.Name = strings.TrimSpace(req.Name)
	item.SKU = strings.TrimSpace(req.SKU)
	item.Unit = strings.TrimSpace(req.Unit)
	item.ParLevel = req.ParLevel
	if err := s.repo.UpdateItem(ctx, item); err != nil {
		return nil, mapInventoryWriteError(err, "failed to update inventory item")
	}
	return item, nil
}

// DeactivateItem retires an item; its count history stays.
func (s *InventoryService) DeactivateItem(ctx context.Context, id string) error {
	if err := s.repo.DeactivateItem(ctx, id); err != nil {
		return mapInventoryWriteError(err, "failed to deactivate inventory item")
	}
	s.logger.Info("inventory item deactivated", zap.String("item_id", id))
	return nil
}

func mapInventoryWriteError(err error, message string) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return appErrors.Clone(appErrors.ErrNotFound, "inventory item not found")
	case repository.IsUniqueViolation(err):
		return appErrors.Clone(appErrors.ErrConflict, "an item with this name already exists at this location")
	case repository.IsForeignKeyViolation(err):
		return appErrors.Clone(appErrors.ErrValidation, "location does not exist")
	default:
		return appErrors.Internal(err, message)
	}
}

// RecordCounts stores a day's counts. All items must exist and belong to one location.
func (s *InventoryService) RecordCounts(ctx context.Context, actor models.AuthContext, req dto.InventoryCountRequest) ([]models.InventoryCount, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Invalid(err, "invalid inventory count payload")
	}
	countedOn := s.now().UTC().Truncate(24 * time.Hour)
	if req.CountedOn != "" {
		var err error
		if countedOn, err = parseDate("countedOn", req.CountedOn); err != nil {
			return nil, err
		}
	}

	location := ""
	counts := make([]models.InventoryCount, 0, len(req.Counts))
	for i, line := range req.Counts {
		item, err := s.repo.FindItem(ctx, line.ItemID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("count %d: inventory item not found", i))
			}
			return nil, appErrors.Internal(err, "failed to load inventory item")
		}
		if location == "" {
			location = item.LocationID
		} else if item.LocationID != location {
			return nil, appErrors.Validation("all counted items must belong to the same location")
		}
		counts = append(counts, models.InventoryCount{
			ItemID:    item.ID,
			CountedOn: countedOn,
			Quantity:  line.Quantity,
			CountedBy: actorID(actor),
			Notes:     line.Notes,
		})
	}
	if err := s.repo.CreateCounts(ctx, counts); err != nil {
		return nil, appErrors.Internal(err, "failed to record inventory counts")
	}
	s.logger.Info("inventory counted", zap.String("location_id", location), zap.Int("items", len(counts)))
	return counts, nil
}

// Status returns each item's latest count. Items never counted are not flagged below par.
func (s *InventoryService) Status(ctx context.Context, locationID string) ([]models.InventoryItemStatus, error) {
	if locationID == "" {
		return nil, appErrors.Validation("locationId is required")
	}
	rows, err := s.repo.Status(ctx, locationID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load inventory status")
	}
	for i := range rows {
		rows[i].BelowPar = rows[i].LastQuantity != nil && *rows[i].LastQuantity < rows[i].ParLevel
	}
	if rows == nil {
		rows = []models.InventoryItemStatus{}
	}
	return rows, nil
}
