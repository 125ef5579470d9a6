package repository

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-backoffice-api/internal/models"
)

var assignmentDetailCols = []string{"id", "coach_id", "template_id", "class_date", "role", "created_by", "created_at",
	"location_id", "location_name", "coach_name", "discipline", "start_time", "end_time"}

func TestAssignmentListRangeFilters(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(assignmentDetailCols).
		AddRow("a-1", "coach-1", "tpl-1", date(2025, 3, 3), "head", nil, now, "loc-1", "Downtown", "Ana Silva", "BJJ", "18:00:00", "18:30:00")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE ca.class_date BETWEEN $1 AND $2 AND ca.coach_id = ANY($3) AND ct.location_id = $4 ORDER BY ca.class_date ASC")).
		WithArgs("2025-03-01", "2025-03-31", pq.Array([]string{"coach-1"}), "loc-1").
		WillReturnRows(rows)

	got, err := repo.ListRange(context.Background(), models.ActivityRange{
		CoachIDs:   []string{"coach-1"},
		StartDate:  date(2025, 3, 1),
		EndDate:    date(2025, 3, 31),
		LocationID: "loc-1",
	})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Downtown", got[0].LocationName)
	assert.Equal(t, models.AssignmentHead, got[0].Role)
	assert.Equal(t, "18:30:00", got[0].EndTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentMoveRunsInTransaction(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM class_assignments WHERE id = $1")).WithArgs("a-1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO class_assignments").
		WithArgs(sqlmock.AnyArg(), "coach-2", "tpl-1", "2025-03-10", models.AssignmentHelper, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Move(context.Background(), "a-1", &models.ClassAssignment{CoachID: "coach-2", TemplateID: "tpl-1", ClassDate: date(2025, 3, 10), Role: models.AssignmentHelper})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentMoveRollsBackWhenInsertFails(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM class_assignments").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO class_assignments").WillReturnError(&pq.Error{Code: "23505"})
	mock.ExpectRollback()

	err := repo.Move(context.Background(), "a-1", &models.ClassAssignment{CoachID: "coach-2", TemplateID: "tpl-1", ClassDate: date(2025, 3, 10), Role: models.AssignmentHead})
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentDeleteMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectExec("DELETE FROM class_assignments").WithArgs("nope").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "nope"), sql.ErrNoRows)
}

func TestAssignmentBulkCreateSkipsExisting(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (coach_id, template_id, class_date) DO NOTHING")).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta("ON CONFLICT (coach_id, template_id, class_date) DO NOTHING")).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	created, err := repo.BulkCreate(context.Background(), []models.ClassAssignment{
		{CoachID: "coach-1", TemplateID: "tpl-1", ClassDate: date(2025, 3, 3), Role: models.AssignmentHead},
		{CoachID: "coach-1", TemplateID: "tpl-1", ClassDate: date(2025, 3, 10), Role: models.AssignmentHead},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, created)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentCloneWeek(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)
	actor := "user-1"

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM class_assignments")).
		WithArgs("2025-03-03", "2025-03-09", "loc-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectExec(regexp.QuoteMeta("ca.class_date + $4::int")).
		WithArgs("2025-03-03", "2025-03-09", "loc-1", 7, actor).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	copied, skipped, err := repo.CloneWeek(context.Background(), date(2025, 3, 3), 7, "loc-1", &actor)
	require.NoError(t, err)
	assert.Equal(t, 2, copied)
	assert.Equal(t, 1, skipped)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAssignmentCloneWeekRollsBack(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewAssignmentRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT COUNT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectExec("INSERT INTO class_assignments").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, _, err := repo.CloneWeek(context.Background(), date(2025, 3, 3), 7, "", nil)
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
