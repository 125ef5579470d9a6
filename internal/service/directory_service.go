package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/academy-backoffice-api/internal/models"
	appErrors "github.com/noah-isme/academy-backoffice-api/pkg/errors"
)

type locationReader interface {
	List(ctx context.Context, activeOnly bool) ([]models.Location, error)
}

type coachDirectoryReader interface {
	List(ctx context.Context, filter models.CoachFilter) ([]models.Coach, error)
	FindByID(ctx context.Context, id string) (*models.Coach, error)
}

// DirectoryService serves the location and coach lookups used by every screen.
type DirectoryService struct {
	locations locationReader
	coaches   coachDirectoryReader
	logger    *zap.Logger
}

// NewDirectoryService constructs the service.
func NewDirectoryService(locations locationReader, coaches coachDirectoryReader, logger *zap.Logger) *DirectoryService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DirectoryService{locations: locations, coaches: coaches, logger: logger}
}

// Locations lists gym branches.
func (s *DirectoryService) Locations(ctx context.Context, includeInactive bool) ([]models.Location, error) {
	locations, err := s.locations.List(ctx, !includeInactive)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list locations")
	}
	if locations == nil {
		locations = []models.Location{}
	}
	return locations, nil
}

// Coaches lists coaches. Coach accounts only ever see themselves.
func (s *DirectoryService) Coaches(ctx context.Context, actor models.AuthContext, filter models.CoachFilter) ([]models.Coach, error) {
	if !actor.IsStaff() {
		if actor.CoachID == "" {
			return []models.Coach{}, nil
		}
		coach, err := s.coaches.FindByID(ctx, actor.CoachID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return []models.Coach{}, nil
			}
			return nil, appErrors.Internal(err, "failed to load coach")
		}
		return []models.Coach{*coach}, nil
	}

	filter.Search = strings.TrimSpace(filter.Search)
	coaches, err := s.coaches.List(ctx, filter)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to list coaches")
	}
	if coaches == nil {
		coaches = []models.Coach{}
	}
	return coaches, nil
}
