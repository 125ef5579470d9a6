package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-backoffice-api/internal/dto"
	"github.com/noah-isme/academy-backoffice-api/internal/models"
	"github.com/noah-isme/academy-backoffice-api/internal/repository"
	appErrors "github.com/noah-isme/academy-backoffice-api/pkg/errors"
)

type rateRepository interface {
	GetCoachRate(ctx context.Context, coachID string) (*models.CoachRate, error)
	UpsertCoachRate(ctx context.Context, rate *models.CoachRate) error
	ListPrivateRates(ctx context.Context, locationID string) ([]models.PrivateRate, error)
	UpsertPrivateRate(ctx context.Context, rate *models.PrivateRate) error
}

// RateService maintains hourly and private lesson rates.
type RateService struct {
	repo   rateRepository
	logger *zap.Logger
}

// NewRateService constructs the service.
func NewRateService(repo rateRepository, logger *zap.Logger) *RateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RateService{repo: repo, logger: logger}
}

// CoachRate returns a coach's rates. An unconfigured coach yields zero rates rather than 404,
// matching how payroll prices them.
func (s *RateService) CoachRate(ctx context.Context, coachID string) (*models.CoachRate, error) {
	rate, err := s.repo.GetCoachRate(ctx, coachID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.CoachRate{CoachID: coachID, HeadRate: decimal.Zero, HelperRate: decimal.Zero}, nil
		}
		return nil, appErrors.Internal(err, "failed to load coach rate")
	}
	return rate, nil
}

// SetCoachRate upserts a coach's hourly rates.
func (s *RateService) SetCoachRate(ctx context.Context, coachID string, req dto.CoachRateRequest) (*models.CoachRate, error) {
	if coachID == "" {
		return nil, appErrors.Validation("coach id is required")
	}
	if req.HeadRate.IsNegative() || req.HelperRate.IsNegative() {
		return nil, appErrors.Validation("rates must not be negative")
	}
	rate := &models.CoachRate{CoachID: coachID, HeadRate: req.HeadRate, HelperRate: req.HelperRate}
	if err := s.repo.UpsertCoachRate(ctx, rate); err != nil {
		return nil, mapRateWriteError(err, "failed to save coach rate")
	}
	s.logger.Info("coach rate updated",
		zap.String("coach_id", coachID),
		zap.String("head_rate", rate.HeadRate.StringFixed(2)),
		zap.String("helper_rate", rate.HelperRate.StringFixed(2)),
	)
	return rate, nil
}

// PrivateRates lists private lesson rates, optionally for one location.
func (s *RateService) PrivateRates(ctx context.Context, locationID string) ([]models.PrivateRate, error) {
	rates, err := s.repo.ListPrivateRates(ctx, locationID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list private rates")
	}
	if rates == nil {
		rates = []models.PrivateRate{}
	}
	return rates, nil
}

// SetPrivateRate upserts the private lesson rate of a coach at a location.
func (s *RateService) SetPrivateRate(ctx context.Context, req dto.PrivateRateRequest) (*models.PrivateRate, error) {
	if req.CoachID == "" || req.LocationID == "" {
		return nil, appErrors.Validation("coachId and locationId are required")
	}
	if req.BaseRate.IsNegative() {
		return nil, appErrors.Validation("baseRate must not be negative")
	}
	if req.DiscountPercent.IsNegative() || req.DiscountPercent.GreaterThan(hundred) {
		return nil, appErrors.Validation("discountPercent must be between 0 and 100")
	}
	rate := &models.PrivateRate{
		CoachID:         req.CoachID,
		LocationID:      req.LocationID,
		BaseRate:        req.BaseRate,
		DiscountPercent: req.DiscountPercent,
	}
	if err := s.repo.UpsertPrivateRate(ctx, rate); err != nil {
		return nil, mapRateWriteError(err, "failed to save private rate")
	}
	return rate, nil
}

func mapRateWriteError(err error, message string) error {
	if repository.IsForeignKeyViolation(err) {
		return appErrors.Clone(appErrors.ErrValidation, "coach or location does not exist")
	}
	return appErrors.Internal(err, message)
}
