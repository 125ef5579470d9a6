package service

import (
	"context"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/academy-backoffice-api/internal/dto"
	"github.com/noah-isme/academy-backoffice-api/internal/models"
	appErrors "github.com/noah-isme/academy-backoffice-api/pkg/errors"
)

// cloneOffsetDays is the only accepted distance between a source and target week.
const cloneOffsetDays = 7

type scheduleTemplateReader interface {
	List(ctx context.Context, filter models.TemplateFilter) ([]models.ClassTemplate, error)
}

type scheduleAssignmentStore interface {
	ListRange(ctx context.Context, rng models.ActivityRange) ([]models.AssignmentDetail, error)
	CloneWeek(ctx context.Context, sourceStart time.Time, offsetDays int, locationID string, actor *string) (int, int, error)
}

// ScheduleService builds concrete weekly schedules from templates and copies weeks forward.
type ScheduleService struct {
	templates   scheduleTemplateReader
	assignments scheduleAssignmentStore
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewScheduleService constructs the service.
func NewScheduleService(templates scheduleTemplateReader, assignments scheduleAssignmentStore, validate *validator.Validate, logger *zap.Logger) *ScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScheduleService{templates: templates, assignments: assignments, validator: validate, logger: logger}
}

type occurrenceKey struct {
	templateID string
	date       string
}

// Week returns every class occurrence from weekStart (a Monday) to the following Sunday.
// Inactive templates only appear when the week still holds assignments for them.
func (s *ScheduleService) Week(ctx context.Context, locationID, weekStart string) (*dto.WeekScheduleResponse, error) {
	start, err := parseWeekStart("weekStart", weekStart)
	if err != nil {
		return nil, err
	}
	end := start.AddDate(0, 0, 6)

	templates, err := s.templates.List(ctx, models.TemplateFilter{LocationID: locationID, ActiveOnly: true})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load class templates")
	}
	assignments, err := s.assignments.ListRange(ctx, models.ActivityRange{StartDate: start, EndDate: end, LocationID: locationID})
	if err != nil {
		return nil, appErrors.Internal(err, "failed to load assignments")
	}

	classes := map[occurrenceKey]*dto.ScheduledClass{}
	order := make([][]occurrenceKey, 7)
	add := func(key occurrenceKey, dow int, class dto.ScheduledClass) *dto.ScheduledClass {
		if existing, ok := classes[key]; ok {
			return existing
		}
		class.Assignments = []dto.ScheduledCoach{}
		classes[key] = &class
		order[dow-1] = append(order[dow-1], key)
		return &class
	}

	for _, tpl := range templates {
		if tpl.DayOfWeek < 1 || tpl.DayOfWeek > 7 {
			continue
		}
		date := start.AddDate(0, 0, tpl.DayOfWeek-1).Format(dateLayout)
		add(occurrenceKey{tpl.ID, date}, tpl.DayOfWeek, dto.ScheduledClass{
			TemplateID: tpl.ID,
			LocationID: tpl.LocationID,
			Discipline: tpl.Discipline,
			Level:      tpl.Level,
			StartTime:  clockLabel(tpl.StartTime),
			EndTime:    clockLabel(tpl.EndTime),
		})
	}
	for _, a := range assignments {
		date := a.ClassDate.Format(dateLayout)
		class := add(occurrenceKey{a.TemplateID, date}, isoWeekdayOffset(a.ClassDate)+1, dto.ScheduledClass{
			TemplateID: a.TemplateID,
			LocationID: a.LocationID,
			Discipline: a.Discipline,
			StartTime:  clockLabel(a.StartTime),
			EndTime:    clockLabel(a.EndTime),
		})
		class.Assignments = append(class.Assignments, dto.ScheduledCoach{
			AssignmentID: a.ID,
			CoachID:      a.CoachID,
			CoachName:    a.CoachName,
			Role:         string(a.Role),
		})
	}

	resp := &dto.WeekScheduleResponse{
		WeekStart:  start.Format(dateLayout),
		WeekEnd:    end.Format(dateLayout),
		LocationID: locationID,
		Days:       make([]dto.ScheduleDay, 0, 7),
	}
	for i := 0; i < 7; i++ {
		day := dto.ScheduleDay{Date: start.AddDate(0, 0, i).Format(dateLayout), DayOfWeek: i + 1, Classes: []dto.ScheduledClass{}}
		for _, key := range order[i] {
			class := *classes[key]
			class.Unstaffed = len(class.Assignments) == 0
			day.Classes = append(day.Classes, class)
		}
		sort.SliceStable(day.Classes, func(a, b int) bool {
			ca, cb := day.Classes[a], day.Classes[b]
			if ca.StartTime != cb.StartTime {
				return ca.StartTime < cb.StartTime
			}
			if ca.Discipline != cb.Discipline {
				return ca.Discipline < cb.Discipline
			}
			return ca.TemplateID < cb.TemplateID
		})
		resp.Days = append(resp.Days, day)
	}
	return resp, nil
}

// CloneWeek copies a week's assignments into the next week. Any other offset is rejected before writing.
func (s *ScheduleService) CloneWeek(ctx context.Context, actor models.AuthContext, req dto.CloneWeekRequest) (*dto.CloneWeekResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Invalid(err, "invalid clone payload")
	}
	source, err := parseWeekStart("sourceWeekStart", req.SourceWeekStart)
	if err != nil {
		return nil, err
	}
	target, err := parseDate("targetWeekStart", req.TargetWeekStart)
	if err != nil {
		return nil, err
	}
	if !target.Equal(source.AddDate(0, 0, cloneOffsetDays)) {
		return nil, appErrors.Validation("targetWeekStart must be exactly 7 days after sourceWeekStart")
	}

	copied, skipped, err := s.assignments.CloneWeek(ctx, source, cloneOffsetDays, req.LocationID, actorID(actor))
	if err != nil {
		return nil, appErrors.Internal(err, "failed to clone week")
	}
	s.logger.Info("week cloned",
		zap.String("source", req.SourceWeekStart),
		zap.String("target", req.TargetWeekStart),
		zap.String("location_id", req.LocationID),
		zap.Int("copied", copied),
		zap.Int("skipped", skipped),
	)
	return &dto.CloneWeekResponse{Copied: copied, Skipped: skipped}, nil
}

func parseWeekStart(field, value string) (time.Time, error) {
	t, err := parseDate(field, value)
	if err != nil {
		return time.Time{}, err
	}
	if t.Weekday() != time.Monday {
		return time.Time{}, appErrors.Validation(field + " must be a Monday")
	}
	return t, nil
}
