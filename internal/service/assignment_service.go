package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-backoffice-api/internal/dto"
	"github.com/noah-isme/academy-backoffice-api/internal/models"
	"github.com/noah-isme/academy-backoffice-api/internal/repository"
	appErrors "github.com/noah-isme/academy-backoffice-api/pkg/errors"
)

const maxBulkAssignDays = 366

type assignmentStore interface {
	FindByID(ctx context.Context, id string) (*models.ClassAssignment, error)
	Create(ctx context.Context, a *models.ClassAssignment) error
	Delete(ctx context.Context, id string) error
	Move(ctx context.Context, id string, next *models.ClassAssignment) error
	BulkCreate(ctx context.Context, assignments []models.ClassAssignment) (int, error)
}

type assignmentTemplateReader interface {
	List(ctx context.Context, filter models.TemplateFilter) ([]models.ClassTemplate, error)
	FindByID(ctx context.Context, id string) (*models.ClassTemplate, error)
}

// AssignmentService books coaches onto dated class occurrences.
type AssignmentService struct {
	repo      assignmentStore
	templates assignmentTemplateReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewAssignmentService constructs the service.
func NewAssignmentService(repo assignmentStore, templates assignmentTemplateReader, validate *validator.Validate, logger *zap.Logger) *AssignmentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssignmentService{repo: repo, templates: templates, validator: validate, logger: logger}
}

// Create books a coach. The date must fall on the template's weekday.
func (s *AssignmentService) Create(ctx context.Context, actor models.AuthContext, req dto.AssignmentRequest) (*models.ClassAssignment, error) {
	a, err := s.assignmentFromRequest(ctx, actor, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, mapAssignmentWriteError(err, "failed to create assignment")
	}
	return a, nil
}

// Move replaces an assignment's coach, template, date or role atomically.
func (s *AssignmentService) Move(ctx context.Context, actor models.AuthContext, id string, req dto.AssignmentRequest) (*models.ClassAssignment, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
		}
		return nil, appErrors.Internal(err, "failed to load assignment")
	}
	next, err := s.assignmentFromRequest(ctx, actor, req)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Move(ctx, id, next); err != nil {
		return nil, mapAssignmentWriteError(err, "failed to move assignment")
	}
	s.logger.Info("assignment moved", zap.String("from_id", id), zap.String("to_id", next.ID), zap.String("class_date", req.ClassDate))
	return next, nil
}

// Delete removes an assignment.
func (s *AssignmentService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapAssignmentWriteError(err, "failed to delete assignment")
	}
	return nil
}

// BulkAssign books a coach onto every active template occurrence matching the filter in [from, to].
func (s *AssignmentService) BulkAssign(ctx context.Context, actor models.AuthContext, req dto.BulkAssignRequest) (*dto.BulkAssignResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Invalid(err, "invalid bulk assignment payload")
	}
	from, err := parseDate("from", req.From)
	if err != nil {
		return nil, err
	}
	to, err := parseDate("to", req.To)
	if err != nil {
		return nil, err
	}
	if to.Before(from) {
		return nil, appErrors.Validation("to must not be before from")
	}
	if days := int(to.Sub(from).Hours()/24) + 1; days > maxBulkAssignDays {
		return nil, appErrors.Validation(fmt.Sprintf("range may span at most %d days", maxBulkAssignDays))
	}

	templates, err := s.templates.List(ctx, models.TemplateFilter{
		LocationID: req.LocationID,
		Discipline: req.Discipline,
		DayOfWeek:  req.DayOfWeek,
		ActiveOnly: true,
	})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load class templates")
	}

	byWeekday := map[int][]models.ClassTemplate{}
	for _, tpl := range templates {
		byWeekday[tpl.DayOfWeek] = append(byWeekday[tpl.DayOfWeek], tpl)
	}
	createdBy := actorID(actor)
	var batch []models.ClassAssignment
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		for _, tpl := range byWeekday[isoWeekdayOffset(d)+1] {
			batch = append(batch, models.ClassAssignment{
				CoachID:    req.CoachID,
				TemplateID: tpl.ID,
				ClassDate:  d,
				Role:       models.AssignmentRole(req.Role),
				CreatedBy:  createdBy,
			})
		}
	}
	if len(batch) == 0 {
		return &dto.BulkAssignResponse{}, nil
	}

	created, err := s.repo.BulkCreate(ctx, batch)
	if err != nil {
		return nil, mapAssignmentWriteError(err, "failed to bulk assign")
	}
	s.logger.Info("bulk assignment completed", zap.String("coach_id", req.CoachID), zap.Int("created", created), zap.Int("candidates", len(batch)))
	return &dto.BulkAssignResponse{Created: created, Skipped: len(batch) - created}, nil
}

func (s *AssignmentService) assignmentFromRequest(ctx context.Context, actor models.AuthContext, req dto.AssignmentRequest) (*models.ClassAssignment, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Invalid(err, "invalid assignment payload")
	}
	date, err := parseDate("classDate", req.ClassDate)
	if err != nil {
		return nil, err
	}
	tpl, err := s.templates.FindByID(ctx, req.TemplateID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "class template not found")
		}
		return nil, appErrors.Internal(err, "failed to load class template")
	}
	if !tpl.Active {
		return nil, appErrors.Validation("class template is inactive")
	}
	if isoWeekdayOffset(date)+1 != tpl.DayOfWeek {
		return nil, appErrors.Validation(fmt.Sprintf("classDate falls on %s but the class runs on day %d", date.Weekday(), tpl.DayOfWeek))
	}
	return &models.ClassAssignment{
		CoachID:    req.CoachID,
		TemplateID: tpl.ID,
		ClassDate:  date,
		Role:       models.AssignmentRole(req.Role),
		CreatedBy:  actorID(actor),
	}, nil
}

func actorID(actor models.AuthContext) *string {
	if actor.UserID == "" {
		return nil
	}
	id := actor.UserID
	return &id
}

func mapAssignmentWriteError(err error, message string) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return appErrors.Clone(appErrors.ErrNotFound, "assignment not found")
	case repository.IsUniqueViolation(err):
		return appErrors.Clone(appErrors.ErrConflict, "coach is already assigned to this class")
	case repository.IsForeignKeyViolation(err):
		return appErrors.Clone(appErrors.ErrValidation, "coach or class template does not exist")
	default:
		return appErrors.Internal(err, message)
	}
}
