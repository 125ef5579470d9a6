package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-backoffice-api/internal/dto"
	"github.com/noah-isme/academy-backoffice-api/internal/models"
	"github.com/noah-isme/academy-backoffice-api/internal/repository"
	appErrors "github.com/noah-isme/academy-backoffice-api/pkg/errors"
)

const monthLayout = "2006-01"

var memberDateLayouts = []string{dateLayout, "01/02/2006", "1/2/2006"}

type membershipRepository interface {
	CreateImport(ctx context.Context, imp *models.MembershipImport, records []models.MembershipRecord) error
	LatestImport(ctx context.Context, locationID string) (*models.MembershipImport, error)
	ListRecords(ctx context.Context, importID string) ([]models.MembershipRecord, error)
}

// MembershipServiceConfig tunes uploads and dashboard caching.
type MembershipServiceConfig struct {
	CacheTTL       time.Duration
	MaxUploadBytes int64
}

// MembershipService imports membership platform exports and summarises them per location.
type MembershipService struct {
	repo   membershipRepository
	cache  *CacheService
	cfg    MembershipServiceConfig
	logger *zap.Logger
	now    func() time.Time
}

// NewMembershipService constructs the service.
func NewMembershipService(repo membershipRepository, cache *CacheService, cfg MembershipServiceConfig, logger *zap.Logger) *MembershipService {
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 5 << 20
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MembershipService{repo: repo, cache: cache, cfg: cfg, logger: logger, now: time.Now}
}

// Import parses a CSV upload and stores it as the location's newest snapshot.
// Every row is validated before anything is written.
func (s *MembershipService) Import(ctx context.Context, actor models.AuthContext, locationID, filename string, body io.Reader) (*dto.MembershipImportResponse, error) {
	locationID = strings.TrimSpace(locationID)
	if locationID == "" {
		return nil, appErrors.Validation("locationId is required")
	}
	data, err := io.ReadAll(io.LimitReader(body, s.cfg.MaxUploadBytes+1))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to read upload")
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		return nil, appErrors.Clone(appErrors.ErrPayloadTooLarge, fmt.Sprintf("upload exceeds %d bytes", s.cfg.MaxUploadBytes))
	}

	var rows []dto.MembershipCSVRow
	if err := gocsv.UnmarshalBytes(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), &rows); err != nil {
		return nil, appErrors.Invalid(err, "upload is not a valid membership CSV")
	}
	if len(rows) == 0 {
		return nil, appErrors.Validation("upload contains no members")
	}
	records, err := membershipRecords(rows)
	if err != nil {
		return nil, err
	}

	imp := &models.MembershipImport{
		LocationID: locationID,
		Filename:   filename,
		ImportedBy: actorID(actor),
		ImportedAt: s.now().UTC(),
	}
	if err := s.repo.CreateImport(ctx, imp, records); err != nil {
		if repository.IsForeignKeyViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "location does not exist")
		}
		return nil, appErrors.Internal(err, "failed to store membership import")
	}
	invalidated := true
	if err := s.cache.Invalidate(ctx, dashboardCachePattern(locationID)); err != nil {
		invalidated = false
		s.logger.Warn("membership dashboards may be stale until cache expiry",
			zap.String("import_id", imp.ID),
			zap.String("location_id", locationID),
			zap.Duration("ttl", s.cfg.CacheTTL),
			zap.Error(err),
		)
	}

	s.logger.Info("membership import stored",
		zap.String("import_id", imp.ID),
		zap.String("location_id", locationID),
		zap.Int("rows", len(records)),
	)
	return &dto.MembershipImportResponse{
		ImportID:   imp.ID,
		LocationID: locationID,
		Filename:   filename,
		Rows:       len(records),
		ImportedAt: imp.ImportedAt,

		CacheInvalidated: invalidated,
	}, nil
}

// Dashboard summarises the latest import for a month (YYYY-MM, default current). The bool reports a cache hit.
func (s *MembershipService) Dashboard(ctx context.Context, locationID, month string) (*dto.MembershipDashboard, bool, error) {
	if locationID == "" {
		return nil, false, appErrors.Validation("locationId is required")
	}
	if month == "" {
		month = s.now().UTC().Format(monthLayout)
	}
	monthStart, err := time.Parse(monthLayout, month)
	if err != nil {
		return nil, false, appErrors.Validation("month must be YYYY-MM")
	}

	key := CacheKey("memberships", "dashboard", locationID, month)
	return readThrough(ctx, s.cache, key, s.cfg.CacheTTL, func(ctx context.Context) (*dto.MembershipDashboard, error) {
		return s.buildDashboard(ctx, locationID, month, monthStart)
	})
}

func (s *MembershipService) buildDashboard(ctx context.Context, locationID, month string, monthStart time.Time) (*dto.MembershipDashboard, error) {
	dash := &dto.MembershipDashboard{
		LocationID:              locationID,
		Month:                   month,
		MonthlyRecurringRevenue: decimal.Zero,
		ByPlan:                  []dto.PlanBreakdown{},
	}
	imp, err := s.repo.LatestImport(ctx, locationID)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return dash, nil
	case err != nil:
		return nil, appErrors.Internal(err, "failed to load membership import")
	}
	records, err := s.repo.ListRecords(ctx, imp.ID)
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load membership records")
	}
	dash.ImportID = imp.ID
	importedAt := imp.ImportedAt
	dash.ImportedAt = &importedAt
	summariseMembers(dash, records, monthStart)
	return dash, nil
}

func dashboardCachePattern(locationID string) string {
	return CacheKey("memberships", "dashboard", locationID, "*")
}

func summariseMembers(dash *dto.MembershipDashboard, records []models.MembershipRecord, monthStart time.Time) {
	monthEnd := monthStart.AddDate(0, 1, 0)
	inMonth := func(t time.Time) bool { return !t.Before(monthStart) && t.Before(monthEnd) }

	plans := map[string]*dto.PlanBreakdown{}
	for _, rec := range records {
		if inMonth(rec.JoinedOn) {
			dash.NewThisMonth++
		}
		if rec.CancelledOn != nil && inMonth(*rec.CancelledOn) {
			dash.CancelledThisMonth++
		}
		switch rec.Status {
		case models.MembershipFrozen:
			dash.FrozenMembers++
		case models.MembershipActive:
			dash.ActiveMembers++
			dash.MonthlyRecurringRevenue = dash.MonthlyRecurringRevenue.Add(rec.MonthlyFee)
			p, ok := plans[rec.Plan]
			if !ok {
				p = &dto.PlanBreakdown{Plan: rec.Plan, MonthlyRecurringRevenue: decimal.Zero}
				plans[rec.Plan] = p
			}
			p.ActiveMembers++
			p.MonthlyRecurringRevenue = p.MonthlyRecurringRevenue.Add(rec.MonthlyFee)
		}
	}
	for _, p := range plans {
		dash.ByPlan = append(dash.ByPlan, *p)
	}
	sort.Slice(dash.ByPlan, func(i, j int) bool { return dash.ByPlan[i].Plan < dash.ByPlan[j].Plan })
}

// membershipRecords validates CSV rows. Line numbers count the header as line 1.
func membershipRecords(rows []dto.MembershipCSVRow) ([]models.MembershipRecord, error) {
	records := make([]models.MembershipRecord, 0, len(rows))
	seen := make(map[string]int, len(rows))
	for i, row := range rows {
		line := i + 2
		rec, err := membershipRecord(row)
		if err != nil {
			return nil, appErrors.Validation(fmt.Sprintf("line %d: %s", line, err.Error()))
		}
		if first, dup := seen[rec.ExternalMemberID]; dup {
			return nil, appErrors.Validation(fmt.Sprintf("line %d: member %s already listed on line %d", line, rec.ExternalMemberID, first))
		}
		seen[rec.ExternalMemberID] = line
		records = append(records, rec)
	}
	return records, nil
}

func membershipRecord(row dto.MembershipCSVRow) (models.MembershipRecord, error) {
	rec := models.MembershipRecord{
		ExternalMemberID: strings.TrimSpace(row.MemberID),
		MemberName:       strings.TrimSpace(row.Name),
		Plan:             strings.TrimSpace(row.Plan),
	}
	if rec.ExternalMemberID == "" {
		return rec, errors.New("member id is required")
	}
	if rec.Plan == "" {
		rec.Plan = "Unspecified"
	}

	switch strings.ToLower(strings.TrimSpace(row.Status)) {
	case "active":
		rec.Status = models.MembershipActive
	case "frozen", "paused", "on hold":
		rec.Status = models.MembershipFrozen
	case "cancelled", "canceled", "terminated":
		rec.Status = models.MembershipCancelled
	default:
		return rec, fmt.Errorf("unknown status %q", row.Status)
	}

	joined, err := parseMemberDate(row.JoinedOn)
	if err != nil {
		return rec, fmt.Errorf("invalid join date %q", row.JoinedOn)
	}
	rec.JoinedOn = joined
	if strings.TrimSpace(row.CancelledOn) != "" {
		cancelled, err := parseMemberDate(row.CancelledOn)
		if err != nil {
			return rec, fmt.Errorf("invalid cancel date %q", row.CancelledOn)
		}
		rec.CancelledOn = &cancelled
	}

	fee := strings.TrimPrefix(strings.ReplaceAll(strings.TrimSpace(row.MonthlyFee), ",", ""), "$")
	if fee == "" {
		rec.MonthlyFee = decimal.Zero
		return rec, nil
	}
	rec.MonthlyFee, err = decimal.NewFromString(fee)
	if err != nil || rec.MonthlyFee.IsNegative() {
		return rec, fmt.Errorf("invalid monthly fee %q", row.MonthlyFee)
	}
	return rec, nil
}

func parseMemberDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range memberDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", value)
}
