package service

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-backoffice-api/internal/dto"
	"github.com/noah-isme/academy-backoffice-api/internal/models"
	appErrors "github.com/noah-isme/academy-backoffice-api/pkg/errors"
)

type stubTemplateStore struct {
	templates  []models.ClassTemplate
	lastFilter models.TemplateFilter
	saved      []models.ClassTemplate
	created    *models.ClassTemplate
	writeErr   error
}

func (s *stubTemplateStore) List(ctx context.Context, filter models.TemplateFilter) ([]models.ClassTemplate, error) {
	s.lastFilter = filter
	var out []models.ClassTemplate
	for _, tpl := range s.templates {
		if filter.ActiveOnly && !tpl.Active {
			continue
		}
		out = append(out, tpl)
	}
	return out, nil
}

func (s *stubTemplateStore) FindByID(ctx context.Context, id string) (*models.ClassTemplate, error) {
	for i := range s.templates {
		if s.templates[i].ID == id {
			return &s.templates[i], nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *stubTemplateStore) Create(ctx context.Context, tpl *models.ClassTemplate) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	tpl.ID = "tpl-new"
	s.created = tpl
	return nil
}

func (s *stubTemplateStore) Update(ctx context.Context, tpl *models.ClassTemplate) error {
	return s.writeErr
}

func (s *stubTemplateStore) Deactivate(ctx context.Context, id string) error {
	return s.writeErr
}

func (s *stubTemplateStore) BulkSave(ctx context.Context, templates []models.ClassTemplate) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.saved = templates
	return nil
}

type cloneCall struct {
	source time.Time
	offset int
	loc    string
	actor  *string
}

type stubScheduleAssignments struct {
	rows   []models.AssignmentDetail
	clones []cloneCall
	err    error
}

func (s *stubScheduleAssignments) ListRange(ctx context.Context, rng models.ActivityRange) ([]models.AssignmentDetail, error) {
	return s.rows, nil
}

func (s *stubScheduleAssignments) CloneWeek(ctx context.Context, sourceStart time.Time, offsetDays int, locationID string, actor *string) (int, int, error) {
	s.clones = append(s.clones, cloneCall{sourceStart, offsetDays, locationID, actor})
	if s.err != nil {
		return 0, 0, s.err
	}
	return 3, 1, nil
}

func TestWeekSchedule(t *testing.T) {
	templates := &stubTemplateStore{templates: []models.ClassTemplate{
		{ID: "tpl-mon-evening", LocationID: "loc-1", Discipline: "BJJ", DayOfWeek: 1, StartTime: "18:00:00", EndTime: "19:00:00", Active: true},
		{ID: "tpl-mon-morning", LocationID: "loc-1", Discipline: "Muay Thai", DayOfWeek: 1, StartTime: "07:00:00", EndTime: "08:00:00", Active: true},
		{ID: "tpl-sun", LocationID: "loc-1", Discipline: "Open Mat", DayOfWeek: 7, StartTime: "10:00:00", EndTime: "12:00:00", Active: true},
	}}
	head := assignment("a1", "coach-1", day(2025, 3, 3), models.AssignmentHead, "18:00:00", "19:00:00")
	head.TemplateID = "tpl-mon-evening"
	head.CoachName = "Ana Silva"
	retired := assignment("a2", "coach-2", day(2025, 3, 5), models.AssignmentHelper, "12:00:00", "13:00:00")
	retired.TemplateID = "tpl-retired"
	assignments := &stubScheduleAssignments{rows: []models.AssignmentDetail{head, retired}}

	svc := NewScheduleService(templates, assignments, nil, nil)
	week, err := svc.Week(context.Background(), "loc-1", "2025-03-03")
	require.NoError(t, err)

	assert.Equal(t, "2025-03-09", week.WeekEnd)
	assert.True(t, templates.lastFilter.ActiveOnly)
	require.Len(t, week.Days, 7)

	monday := week.Days[0]
	require.Len(t, monday.Classes, 2)
	assert.Equal(t, "tpl-mon-morning", monday.Classes[0].TemplateID)
	assert.True(t, monday.Classes[0].Unstaffed)
	assert.Equal(t, "18:00", monday.Classes[1].StartTime)
	require.Len(t, monday.Classes[1].Assignments, 1)
	assert.Equal(t, "Ana Silva", monday.Classes[1].Assignments[0].CoachName)

	wednesday := week.Days[2]
	require.Len(t, wednesday.Classes, 1)
	assert.Equal(t, "tpl-retired", wednesday.Classes[0].TemplateID)
	assert.False(t, wednesday.Classes[0].Unstaffed)

	assert.Equal(t, "2025-03-09", week.Days[6].Date)
	assert.Len(t, week.Days[6].Classes, 1)
}

func TestWeekScheduleRequiresMonday(t *testing.T) {
	svc := NewScheduleService(&stubTemplateStore{}, &stubScheduleAssignments{}, nil, nil)
	_, err := svc.Week(context.Background(), "", "2025-03-04")
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
}

func TestCloneWeek(t *testing.T) {
	assignments := &stubScheduleAssignments{}
	svc := NewScheduleService(&stubTemplateStore{}, assignments, nil, nil)

	resp, err := svc.CloneWeek(context.Background(), models.AuthContext{UserID: "user-1"}, dto.CloneWeekRequest{
		SourceWeekStart: "2025-03-03", TargetWeekStart: "2025-03-10", LocationID: "loc-1",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Copied)
	assert.Equal(t, 1, resp.Skipped)
	require.Len(t, assignments.clones, 1)
	assert.Equal(t, 7, assignments.clones[0].offset)
	assert.Equal(t, "loc-1", assignments.clones[0].loc)
	assert.Equal(t, "user-1", *assignments.clones[0].actor)
}

func TestCloneWeekRejectsOtherOffsetsBeforeWriting(t *testing.T) {
	assignments := &stubScheduleAssignments{}
	svc := NewScheduleService(&stubTemplateStore{}, assignments, nil, nil)

	for _, target := range []string{"2025-03-13", "2025-03-17", "2025-03-03"} {
		_, err := svc.CloneWeek(context.Background(), models.AuthContext{}, dto.CloneWeekRequest{SourceWeekStart: "2025-03-03", TargetWeekStart: target})
		require.Error(t, err, target)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
	assert.Empty(t, assignments.clones)
}

func TestCloneWeekStoreFailure(t *testing.T) {
	assignments := &stubScheduleAssignments{err: errors.New("deadlock detected")}
	svc := NewScheduleService(&stubTemplateStore{}, assignments, nil, nil)

	_, err := svc.CloneWeek(context.Background(), models.AuthContext{}, dto.CloneWeekRequest{SourceWeekStart: "2025-03-03", TargetWeekStart: "2025-03-10"})
	require.Error(t, err)
	assert.Equal(t, http.StatusInternalServerError, appErrors.FromError(err).Status)
	assert.Equal(t, "failed to clone week", appErrors.FromError(err).Message)
}
