package service

import (
	"context"
	"database/sql"
	"net/http"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-backoffice-api/internal/dto"
	"github.com/noah-isme/academy-backoffice-api/internal/models"
	appErrors "github.com/noah-isme/academy-backoffice-api/pkg/errors"
)

type stubAssignmentStore struct {
	existing  map[string]models.ClassAssignment
	created   []models.ClassAssignment
	moved     string
	bulk      []models.ClassAssignment
	bulkNew   int
	createErr error
}

func (s *stubAssignmentStore) FindByID(ctx context.Context, id string) (*models.ClassAssignment, error) {
	if a, ok := s.existing[id]; ok {
		return &a, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubAssignmentStore) Create(ctx context.Context, a *models.ClassAssignment) error {
	if s.createErr != nil {
		return s.createErr
	}
	a.ID = "as-new"
	s.created = append(s.created, *a)
	return nil
}

func (s *stubAssignmentStore) Delete(ctx context.Context, id string) error {
	if _, ok := s.existing[id]; !ok {
		return sql.ErrNoRows
	}
	delete(s.existing, id)
	return nil
}

func (s *stubAssignmentStore) Move(ctx context.Context, id string, next *models.ClassAssignment) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.moved = id
	next.ID = "as-moved"
	return nil
}

func (s *stubAssignmentStore) BulkCreate(ctx context.Context, assignments []models.ClassAssignment) (int, error) {
	s.bulk = assignments
	return s.bulkNew, nil
}

func newAssignmentFixture() (*AssignmentService, *stubAssignmentStore, *stubTemplateStore) {
	store := &stubAssignmentStore{existing: map[string]models.ClassAssignment{"as-1": {ID: "as-1"}}}
	templates := &stubTemplateStore{templates: []models.ClassTemplate{
		{ID: "tpl-tue", LocationID: "loc-1", Discipline: "BJJ", DayOfWeek: 2, StartTime: "18:00", EndTime: "19:00", Active: true},
		{ID: "tpl-thu", LocationID: "loc-1", Discipline: "BJJ", DayOfWeek: 4, StartTime: "18:00", EndTime: "19:00", Active: true},
		{ID: "tpl-old", LocationID: "loc-1", Discipline: "Judo", DayOfWeek: 2, StartTime: "07:00", EndTime: "08:00", Active: false},
	}}
	return NewAssignmentService(store, templates, nil, nil), store, templates
}

func TestAssignmentCreate(t *testing.T) {
	svc, store, _ := newAssignmentFixture()
	a, err := svc.Create(context.Background(), models.AuthContext{UserID: "user-1"}, dto.AssignmentRequest{
		CoachID: "coach-1", TemplateID: "tpl-tue", ClassDate: "2025-03-04", Role: "head",
	})
	require.NoError(t, err)
	assert.Equal(t, "as-new", a.ID)
	assert.Equal(t, models.AssignmentHead, a.Role)
	require.Len(t, store.created, 1)
	assert.Equal(t, "user-1", *store.created[0].CreatedBy)
}

func TestAssignmentCreateRejectsWrongWeekday(t *testing.T) {
	svc, store, _ := newAssignmentFixture()
	_, err := svc.Create(context.Background(), models.AuthContext{}, dto.AssignmentRequest{
		CoachID: "coach-1", TemplateID: "tpl-tue", ClassDate: "2025-03-05", Role: "head",
	})
	require.Error(t, err)
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
	assert.Empty(t, store.created)
}

func TestAssignmentCreateRejectsInactiveTemplateAndBadRole(t *testing.T) {
	svc, _, _ := newAssignmentFixture()
	_, err := svc.Create(context.Background(), models.AuthContext{}, dto.AssignmentRequest{CoachID: "coach-1", TemplateID: "tpl-old", ClassDate: "2025-03-04", Role: "head"})
	assert.Equal(t, "class template is inactive", appErrors.FromError(err).Message)

	_, err = svc.Create(context.Background(), models.AuthContext{}, dto.AssignmentRequest{CoachID: "coach-1", TemplateID: "tpl-tue", ClassDate: "2025-03-04", Role: "assistant"})
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)

	_, err = svc.Create(context.Background(), models.AuthContext{}, dto.AssignmentRequest{CoachID: "coach-1", TemplateID: "tpl-404", ClassDate: "2025-03-04", Role: "head"})
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestAssignmentCreateDuplicateIsConflict(t *testing.T) {
	svc, store, _ := newAssignmentFixture()
	store.createErr = &pq.Error{Code: "23505"}
	_, err := svc.Create(context.Background(), models.AuthContext{}, dto.AssignmentRequest{CoachID: "coach-1", TemplateID: "tpl-tue", ClassDate: "2025-03-04", Role: "helper"})
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, appErrors.FromError(err).Status)
}

func TestAssignmentMove(t *testing.T) {
	svc, store, _ := newAssignmentFixture()
	next, err := svc.Move(context.Background(), models.AuthContext{}, "as-1", dto.AssignmentRequest{CoachID: "coach-2", TemplateID: "tpl-thu", ClassDate: "2025-03-06", Role: "helper"})
	require.NoError(t, err)
	assert.Equal(t, "as-1", store.moved)
	assert.Equal(t, "as-moved", next.ID)

	_, err = svc.Move(context.Background(), models.AuthContext{}, "as-404", dto.AssignmentRequest{CoachID: "coach-2", TemplateID: "tpl-thu", ClassDate: "2025-03-06", Role: "helper"})
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestAssignmentDelete(t *testing.T) {
	svc, _, _ := newAssignmentFixture()
	require.NoError(t, svc.Delete(context.Background(), "as-1"))
	err := svc.Delete(context.Background(), "as-1")
	assert.Equal(t, http.StatusNotFound, appErrors.FromError(err).Status)
}

func TestBulkAssign(t *testing.T) {
	svc, store, templates := newAssignmentFixture()
	store.bulkNew = 3

	resp, err := svc.BulkAssign(context.Background(), models.AuthContext{UserID: "user-1"}, dto.BulkAssignRequest{
		CoachID: "coach-1", Role: "head", LocationID: "loc-1", From: "2025-03-03", To: "2025-03-16",
	})
	require.NoError(t, err)
	assert.True(t, templates.lastFilter.ActiveOnly)

	require.Len(t, store.bulk, 4)
	assert.Equal(t, "2025-03-04", store.bulk[0].ClassDate.Format(dateLayout))
	assert.Equal(t, "tpl-thu", store.bulk[1].TemplateID)
	assert.Equal(t, 3, resp.Created)
	assert.Equal(t, 1, resp.Skipped)
}

func TestBulkAssignRangeValidation(t *testing.T) {
	svc, store, _ := newAssignmentFixture()
	_, err := svc.BulkAssign(context.Background(), models.AuthContext{}, dto.BulkAssignRequest{CoachID: "coach-1", Role: "head", From: "2025-03-16", To: "2025-03-03"})
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)

	_, err = svc.BulkAssign(context.Background(), models.AuthContext{}, dto.BulkAssignRequest{CoachID: "coach-1", Role: "head", From: "2025-01-01", To: "2026-06-01"})
	assert.Equal(t, http.StatusBadRequest, appErrors.FromError(err).Status)
	assert.Nil(t, store.bulk)
}
