package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-backoffice-api/internal/dto"
	"github.com/noah-isme/academy-backoffice-api/internal/models"
	"github.com/noah-isme/academy-backoffice-api/internal/repository"
	appErrors "github.com/noah-isme/academy-backoffice-api/pkg/errors"
)

var hundred = decimal.NewFromInt(100)

type privateClassRepository interface {
	List(ctx context.Context, filter models.PrivateClassFilter) ([]models.PrivateClassDetail, error)
	FindByID(ctx context.Context, id string) (*models.PrivateClassEntry, error)
	Create(ctx context.Context, entry *models.PrivateClassEntry) error
	Update(ctx context.Context, entry *models.PrivateClassEntry) error
	Delete(ctx context.Context, id string) error
}

type privateRateReader interface {
	GetPrivateRate(ctx context.Context, coachID, locationID string) (*models.PrivateRate, error)
}

// PrivateClassService records one-off private lessons. Payouts are stored as entered.
type PrivateClassService struct {
	repo      privateClassRepository
	rates     privateRateReader
	validator *validator.Validate
	logger    *zap.Logger
}

// NewPrivateClassService constructs the service.
func NewPrivateClassService(repo privateClassRepository, rates privateRateReader, validate *validator.Validate, logger *zap.Logger) *PrivateClassService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PrivateClassService{repo: repo, rates: rates, validator: validate, logger: logger}
}

// List returns private classes matching the query, newest first.
func (s *PrivateClassService) List(ctx context.Context, q dto.PrivateClassQuery) ([]models.PrivateClassDetail, error) {
	filter := models.PrivateClassFilter{CoachID: q.CoachID, LocationID: q.LocationID}
	if q.StartDate != "" {
		start, err := parseDate("startDate", q.StartDate)
		if err != nil {
			return nil, err
		}
		filter.StartDate = &start
	}
	if q.EndDate != "" {
		end, err := parseDate("endDate", q.EndDate)
		if err != nil {
			return nil, err
		}
		filter.EndDate = &end
	}
	entries, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list private classes")
	}
	if entries == nil {
		entries = []models.PrivateClassDetail{}
	}
	return entries, nil
}

// Create records a private class.
func (s *PrivateClassService) Create(ctx context.Context, actor models.AuthContext, req dto.PrivateClassRequest) (*models.PrivateClassEntry, error) {
	entry, err := s.entryFromRequest(req)
	if err != nil {
		return nil, err
	}
	entry.CreatedBy = actorID(actor)
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, mapPrivateClassWriteError(err, "failed to create private class")
	}
	s.logger.Info("private class recorded",
		zap.String("private_class_id", entry.ID),
		zap.String("coach_id", entry.CoachID),
		zap.String("payout", entry.Payout.StringFixed(2)),
	)
	return entry, nil
}

// Update replaces the editable fields of a private class.
func (s *PrivateClassService) Update(ctx context.Context, id string, req dto.PrivateClassRequest) (*models.PrivateClassEntry, error) {
	current, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "private class not found")
		}
		return nil, appErrors.Internal(err, "failed to load private class")
	}
	entry, err := s.entryFromRequest(req)
	if err != nil {
		return nil, err
	}
	entry.ID = current.ID
	entry.CreatedBy = current.CreatedBy
	entry.CreatedAt = current.CreatedAt
	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, mapPrivateClassWriteError(err, "failed to update private class")
	}
	return entry, nil
}

// Delete removes a private class.
func (s *PrivateClassService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapPrivateClassWriteError(err, "failed to delete private class")
	}
	return nil
}

// SuggestPayout derives a payout from the coach's private rate at the location.
// Missing configuration is not an error; the suggestion is simply unconfigured.
func (s *PrivateClassService) SuggestPayout(ctx context.Context, coachID, locationID string) (*dto.PayoutSuggestion, error) {
	if coachID == "" || locationID == "" {
		return nil, appErrors.Validation("coachId and locationId are required")
	}
	suggestion := &dto.PayoutSuggestion{
		CoachID:         coachID,
		LocationID:      locationID,
		BaseRate:        decimal.Zero,
		DiscountPercent: decimal.Zero,
		Suggested:       decimal.Zero,
	}
	rate, err := s.rates.GetPrivateRate(ctx, coachID, locationID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return suggestion, nil
		}
		return nil, appErrors.Internal(err, "failed to load private rate")
	}
	suggestion.Configured = true
	suggestion.BaseRate = rate.BaseRate
	suggestion.DiscountPercent = rate.DiscountPercent
	suggestion.Suggested = SuggestedPayout(rate.BaseRate, rate.DiscountPercent)
	return suggestion, nil
}

// SuggestedPayout is base * (1 - discount/100) rounded to cents.
func SuggestedPayout(base, discountPercent decimal.Decimal) decimal.Decimal {
	factor := decimal.NewFromInt(1).Sub(discountPercent.Div(hundred))
	return base.Mul(factor).Round(2)
}

func (s *PrivateClassService) entryFromRequest(req dto.PrivateClassRequest) (*models.PrivateClassEntry, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Invalid(err, "invalid private class payload")
	}
	date, err := parseDate("classDate", req.ClassDate)
	if err != nil {
		return nil, err
	}
	if req.Payout.IsNegative() {
		return nil, appErrors.Validation("payout must not be negative")
	}
	var classTime *string
	if req.ClassTime != nil && *req.ClassTime != "" {
		label := clockLabel(*req.ClassTime)
		if label == "" {
			return nil, appErrors.Validation("classTime must be HH:MM")
		}
		classTime = &label
	}
	return &models.PrivateClassEntry{
		CoachID:      req.CoachID,
		LocationID:   req.LocationID,
		StudentLabel: req.StudentLabel,
		ClassDate:    date,
		ClassTime:    classTime,
		Payout:       req.Payout,
		Notes:        req.Notes,
	}, nil
}

func mapPrivateClassWriteError(err error, message string) error {
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return appErrors.Clone(appErrors.ErrNotFound, "private class not found")
	case repository.IsForeignKeyViolation(err):
		return appErrors.Clone(appErrors.ErrValidation, "coach or location does not exist")
	default:
		return appErrors.Internal(err, message)
	}
}
