package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-backoffice-api/internal/dto"
	"github.com/noah-isme/academy-backoffice-api/internal/models"
	"github.com/noah-isme/academy-backoffice-api/internal/repository"
	appErrors "github.com/noah-isme/academy-backoffice-api/pkg/errors"
)

type classTemplateRepository interface {
	List(ctx context.Context, filter models.TemplateFilter) ([]models.ClassTemplate, error)
	FindByID(ctx context.Context, id string) (*models.ClassTemplate, error)
	Create(ctx context.Context, tpl *models.ClassTemplate) error
	Update(ctx context.Context, tpl *models.ClassTemplate) error
	Deactivate(ctx context.Context, id string) error
	BulkSave(ctx context.Context, templates []models.ClassTemplate) error
}

// ClassTemplateService manages recurring weekly classes.
type ClassTemplateService struct {
	repo      classTemplateRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClassTemplateService constructs the service.
func NewClassTemplateService(repo classTemplateRepository, validate *validator.Validate, logger *zap.Logger) *ClassTemplateService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassTemplateService{repo: repo, validator: validate, logger: logger}
}

// List returns templates matching the filter.
func (s *ClassTemplateService) List(ctx context.Context, filter models.TemplateFilter) ([]models.ClassTemplate, error) {
	if filter.DayOfWeek < 0 || filter.DayOfWeek > 7 {
		return nil, appErrors.Validation("dayOfWeek must be between 1 and 7")
	}
	templates, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list class templates")
	}
	return templates, nil
}

// Get returns a template by id.
func (s *ClassTemplateService) Get(ctx context.Context, id string) (*models.ClassTemplate, error) {
	tpl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class template not found")
		}
		return nil, appErrors.Internal(err, "failed to load class template")
	}
	return tpl, nil
}

// Create adds a template.
func (s *ClassTemplateService) Create(ctx context.Context, req dto.TemplateRequest) (*models.ClassTemplate, error) {
	tpl, err := s.templateFromRequest("", req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, tpl); err != nil {
		return nil, mapTemplateWriteError(err, "failed to create class template")
	}
	return tpl, nil
}

// Update replaces a template's fields. Past assignments are re-priced from the new times on the next read.
func (s *ClassTemplateService) Update(ctx context.Context, id string, req dto.TemplateRequest) (*models.ClassTemplate, error) {
	tpl, err := s.templateFromRequest(id, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, tpl); err != nil {
		return nil, mapTemplateWriteError(err, "failed to update class template")
	}
	s.logger.Info("class template updated", zap.String("template_id", id), zap.String("start", tpl.StartTime), zap.String("end", tpl.EndTime))
	return tpl, nil
}

// Deactivate hides a template from future schedules.
func (s *ClassTemplateService) Deactivate(ctx context.Context, id string) error {
	if err := s.repo.Deactivate(ctx, id); err != nil {
		return mapTemplateWriteError(err, "failed to deactivate class template")
	}
	return nil
}

// BulkSave validates every row first and then writes all of them in one transaction.
func (s *ClassTemplateService) BulkSave(ctx context.Context, req dto.BulkTemplateRequest) ([]models.ClassTemplate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Invalid(err, "invalid bulk template payload")
	}
	templates := make([]models.ClassTemplate, 0, len(req.Templates))
	for i, item := range req.Templates {
		tpl, err := s.templateFromRequest(item.ID, item.TemplateRequest)
		if err != nil {
			return nil, appErrors.Validation(fmt.Sprintf("template %d: %s", i, appErrors.FromError(err).Message))
		}
		templates = append(templates, *tpl)
	}
	if err := s.repo.BulkSave(ctx, templates); err != nil {
		return nil, mapTemplateWriteError(err, "failed to save class templates")
	}
	s.logger.Info("class templates saved", zap.Int("count", len(templates)))
	return templates, nil
}

func (s *ClassTemplateService) templateFromRequest(id string, req dto.TemplateRequest) (*models.ClassTemplate, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Invalid(err, "invalid class template payload")
	}
	if _, err := ClassHours(req.StartTime, req.EndTime); err != nil {
		return nil, appErrors.Validation("endTime must be a valid time after startTime")
	}
	active := true
	if req.Active != nil {
		active = *req.Active
	}
	return &models.ClassTemplate{
		ID:         id,
		LocationID: req.LocationID,
		Discipline: strings.TrimSpace(req.Discipline),
		DayOfWeek:  req.DayOfWeek,
		StartTime:  clockLabel(req.StartTime),
		EndTime:    clockLabel(req.EndTime),
		Level:      strings.TrimSpace(req.Level),
		Active:     active,
	}, nil
}

func mapTemplateWriteError(err error, message string) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return appErrors.Clone(appErrors.ErrNotFound, "class template not found")
	case repository.IsForeignKeyViolation(err):
		return appErrors.Clone(appErrors.ErrValidation, "location does not exist")
	default:
		return appErrors.Internal(err, message)
	}
}
