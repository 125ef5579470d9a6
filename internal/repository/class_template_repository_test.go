package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-backoffice-api/internal/models"
)

func TestTemplateListActiveAtLocation(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClassTemplateRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "location_id", "discipline", "day_of_week", "start_time", "end_time", "level", "active", "created_at", "updated_at"}).
		AddRow("tpl-1", "loc-1", "BJJ", 1, "18:00:00", "19:00:00", "all", true, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM class_templates WHERE location_id = $1 AND active = TRUE ORDER BY")).
		WithArgs("loc-1").
		WillReturnRows(rows)

	got, err := repo.List(context.Background(), models.TemplateFilter{LocationID: "loc-1", ActiveOnly: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].DayOfWeek)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTemplateBulkSaveRollsBackOnMissingRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClassTemplateRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO class_templates").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE class_templates SET").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.BulkSave(context.Background(), []models.ClassTemplate{
		{LocationID: "loc-1", Discipline: "Muay Thai", DayOfWeek: 2, StartTime: "07:00", EndTime: "08:00", Active: true},
		{ID: "tpl-missing", LocationID: "loc-1", Discipline: "BJJ", DayOfWeek: 3, StartTime: "18:00", EndTime: "19:00", Active: true},
	})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTemplateDeactivate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClassTemplateRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE class_templates SET active = FALSE")).
		WithArgs("tpl-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Deactivate(context.Background(), "tpl-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
