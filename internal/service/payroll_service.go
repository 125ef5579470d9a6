package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-backoffice-api/internal/dto"
	"github.com/noah-isme/academy-backoffice-api/internal/models"
	appErrors "github.com/noah-isme/academy-backoffice-api/pkg/errors"
)

type payrollCoachReader interface {
	ListBySelector(ctx context.Context, selector models.CoachSelector) ([]models.Coach, error)
	FindByID(ctx context.Context, id string) (*models.Coach, error)
}

type payrollAssignmentReader interface {
	ListRange(ctx context.Context, rng models.ActivityRange) ([]models.AssignmentDetail, error)
}

type payrollPrivateReader interface {
	ListRange(ctx context.Context, rng models.ActivityRange) ([]models.PrivateClassDetail, error)
}

type payrollRateReader interface {
	ListCoachRates(ctx context.Context, coachIDs []string) ([]models.CoachRate, error)
}

// PayrollService aggregates class assignments and private classes into pay. It only reads.
type PayrollService struct {
	coaches     payrollCoachReader
	assignments payrollAssignmentReader
	privates    payrollPrivateReader
	rates       payrollRateReader
	validator   *validator.Validate
	metrics     *MetricsService
	logger      *zap.Logger
}

// NewPayrollService constructs a PayrollService.
func NewPayrollService(coaches payrollCoachReader, assignments payrollAssignmentReader, privates payrollPrivateReader, rates payrollRateReader, validate *validator.Validate, metrics *MetricsService, logger *zap.Logger) *PayrollService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &PayrollService{
		coaches:     coaches,
		assignments: assignments,
		privates:    privates,
		rates:       rates,
		validator:   validate,
		metrics:     metrics,
		logger:      logger,
	}
}

// ParseQuery validates query parameters and resolves them into a payroll query.
func (s *PayrollService) ParseQuery(params dto.PayrollQueryParams) (models.PayrollQuery, error) {
	if err := s.validator.Struct(params); err != nil {
		return models.PayrollQuery{}, appErrors.Invalid(err, "invalid payroll query")
	}
	start, err := parseDate("startDate", params.StartDate)
	if err != nil {
		return models.PayrollQuery{}, err
	}
	end, err := parseDate("endDate", params.EndDate)
	if err != nil {
		return models.PayrollQuery{}, err
	}
	var ids []string
	for _, id := range params.CoachIDs {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}
	return models.PayrollQuery{
		Selector: models.CoachSelector{
			CoachIDs:         ids,
			PaymentFrequency: models.PaymentFrequency(params.Frequency),
			ExcludeRoleTag:   models.CoachRoleTag(params.ExcludeRole),
		},
		StartDate:  start,
		EndDate:    end,
		LocationID: strings.TrimSpace(params.LocationID),
	}, nil
}

// Aggregate computes pay for every selected coach over the inclusive period.
// Identical inputs always produce identical reports.
func (s *PayrollService) Aggregate(ctx context.Context, q models.PayrollQuery) (*models.PayrollReport, error) {
	selector := q.Selector
	selector.WorkedFrom, selector.WorkedTo = q.StartDate, q.EndDate
	started := time.Now()
	coaches, err := s.coaches.ListBySelector(ctx, selector)
	s.metrics.ObserveDBQuery("payroll_coaches", time.Since(started))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load coaches")
	}

	in := payrollInput{Query: q, Coaches: coaches, Rates: map[string]models.CoachRate{}}
	if len(coaches) == 0 {
		return buildPayrollReport(in), nil
	}

	ids := make([]string, len(coaches))
	for i, c := range coaches {
		ids[i] = c.ID
	}
	rng := models.ActivityRange{CoachIDs: ids, StartDate: q.StartDate, EndDate: q.EndDate, LocationID: q.LocationID}

	started = time.Now()
	in.Assignments, err = s.assignments.ListRange(ctx, rng)
	s.metrics.ObserveDBQuery("payroll_assignments", time.Since(started))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load class assignments")
	}

	started = time.Now()
	in.Privates, err = s.privates.ListRange(ctx, rng)
	s.metrics.ObserveDBQuery("payroll_private_classes", time.Since(started))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load private classes")
	}

	started = time.Now()
	rates, err := s.rates.ListCoachRates(ctx, ids)
	s.metrics.ObserveDBQuery("payroll_rates", time.Since(started))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load coach rates")
	}
	for _, r := range rates {
		in.Rates[r.CoachID] = r
	}

	report := buildPayrollReport(in)
	for _, a := range report.Anomalies {
		s.logger.Warn("assignment excluded from payroll",
			zap.String("assignment_id", a.AssignmentID),
			zap.String("template_id", a.TemplateID),
			zap.String("coach_id", a.CoachID),
			zap.String("date", a.Date),
			zap.String("reason", a.Reason),
		)
	}
	return report, nil
}

// Summary returns location subtotals and the grand total for a period.
func (s *PayrollService) Summary(ctx context.Context, params dto.PayrollQueryParams) (*dto.PayrollSummaryResponse, error) {
	q, err := s.ParseQuery(params)
	if err != nil {
		return nil, err
	}
	report, err := s.Aggregate(ctx, q)
	if err != nil {
		return nil, err
	}
	return &dto.PayrollSummaryResponse{
		StartDate:  report.StartDate,
		EndDate:    report.EndDate,
		LocationID: report.LocationID,
		CoachCount: len(report.Coaches),
		Locations:  report.Locations,
		Totals:     report.Totals,
		Anomalies:  report.Anomalies,
	}, nil
}

// Detailed returns activities grouped by coach and then by location.
func (s *PayrollService) Detailed(ctx context.Context, params dto.PayrollQueryParams) (*dto.PayrollDetailedResponse, error) {
	q, err := s.ParseQuery(params)
	if err != nil {
		return nil, err
	}
	report, err := s.Aggregate(ctx, q)
	if err != nil {
		return nil, err
	}
	return detailedView(report), nil
}

func detailedView(report *models.PayrollReport) *dto.PayrollDetailedResponse {
	resp := &dto.PayrollDetailedResponse{
		StartDate:  report.StartDate,
		EndDate:    report.EndDate,
		LocationID: report.LocationID,
		Coaches:    make([]dto.CoachPayrollDetail, 0, len(report.Coaches)),
		Totals:     report.Totals,
		Anomalies:  report.Anomalies,
	}
	for _, cp := range report.Coaches {
		detail := dto.CoachPayrollDetail{
			CoachID:          cp.CoachID,
			CoachName:        cp.CoachName,
			PaymentFrequency: cp.PaymentFrequency,
			Totals:           cp.PayrollTotals,
			Locations:        make([]dto.LocationActivities, 0, len(cp.Locations)),
		}
		for _, loc := range cp.Locations {
			group := dto.LocationActivities{
				LocationID:   loc.LocationID,
				LocationName: loc.LocationName,
				Totals:       loc.PayrollTotals,
				Activities:   []models.PayrollActivity{},
			}
			for _, act := range cp.Activities {
				if act.LocationID == loc.LocationID {
					group.Activities = append(group.Activities, act)
				}
			}
			detail.Locations = append(detail.Locations, group)
		}
		resp.Coaches = append(resp.Coaches, detail)
	}
	return resp
}

// CoachCalendar lays one coach's month out as a Monday-first grid. Coaches may only read their own calendar.
func (s *PayrollService) CoachCalendar(ctx context.Context, actor models.AuthContext, coachID, month string) (*dto.CoachCalendarResponse, error) {
	if !actor.CanViewCoach(coachID) {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "cannot view another coach's calendar")
	}
	first, err := time.Parse("2006-01", strings.TrimSpace(month))
	if err != nil {
		return nil, appErrors.Validation("month must be formatted as YYYY-MM")
	}
	last := first.AddDate(0, 1, -1)

	coach, err := s.coaches.FindByID(ctx, coachID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "coach not found")
		}
		return nil, appErrors.Internal(err, "failed to load coach")
	}

	report, err := s.Aggregate(ctx, models.PayrollQuery{
		Selector:  models.CoachSelector{CoachIDs: []string{coach.ID}},
		StartDate: first,
		EndDate:   last,
	})
	if err != nil {
		return nil, err
	}

	resp := &dto.CoachCalendarResponse{
		CoachID:   coach.ID,
		CoachName: coach.FullName,
		Month:     first.Format("2006-01"),
		Weeks:     []dto.CalendarWeek{},
		Totals:    zeroTotals(),
	}
	byDate := map[string][]models.PayrollActivity{}
	for _, cp := range report.Coaches {
		if cp.CoachID != coach.ID {
			continue
		}
		resp.Totals = cp.PayrollTotals
		for _, act := range cp.Activities {
			byDate[act.Date] = append(byDate[act.Date], act)
		}
	}

	gridStart := first.AddDate(0, 0, -isoWeekdayOffset(first))
	gridEnd := last.AddDate(0, 0, 6-isoWeekdayOffset(last))
	for day := gridStart; !day.After(gridEnd); day = day.AddDate(0, 0, 7) {
		week := dto.CalendarWeek{Days: make([]dto.CalendarDay, 0, 7)}
		for i := 0; i < 7; i++ {
			d := day.AddDate(0, 0, i)
			key := d.Format(dateLayout)
			cell := dto.CalendarDay{Date: key, InMonth: d.Month() == first.Month(), Activities: []models.PayrollActivity{}, DayTotal: decimal.Zero}
			if cell.InMonth {
				for _, act := range byDate[key] {
					cell.Activities = append(cell.Activities, act)
					cell.DayTotal = cell.DayTotal.Add(act.Pay)
				}
			}
			week.Days = append(week.Days, cell)
		}
		resp.Weeks = append(resp.Weeks, week)
	}
	return resp, nil
}

// isoWeekdayOffset returns days since Monday.
func isoWeekdayOffset(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, appErrors.Validation(fmt.Sprintf("%s must be formatted as YYYY-MM-DD", field))
	}
	return t, nil
}
