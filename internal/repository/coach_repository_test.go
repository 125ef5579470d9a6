package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-backoffice-api/internal/models"
)

var coachCols = []string{"id", "full_name", "email", "payment_frequency", "role_tag", "active", "created_at", "updated_at"}

func TestCoachListBySelector(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCoachRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(coachCols).
		AddRow("coach-1", "Ana Silva", "ana@academy.test", "weekly", "coach", true, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM coaches WHERE active = TRUE AND payment_frequency = $1 AND role_tag <> $2 ORDER BY full_name ASC, id ASC")).
		WithArgs("weekly", "front_desk").
		WillReturnRows(rows)

	coaches, err := repo.ListBySelector(context.Background(), models.CoachSelector{
		PaymentFrequency: models.PaymentWeekly,
		ExcludeRoleTag:   models.CoachTagFrontDesk,
	})
	require.NoError(t, err)
	require.Len(t, coaches, 1)
	assert.Equal(t, models.PaymentWeekly, coaches[0].PaymentFrequency)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoachListBySelectorExplicitIDsIgnoreActiveFlag(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCoachRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(coachCols).
		AddRow("coach-9", "Retired Coach", "retired@academy.test", "monthly", "coach", false, now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM coaches WHERE id = ANY($1) ORDER BY full_name ASC, id ASC")).
		WithArgs(pq.Array([]string{"coach-9"})).
		WillReturnRows(rows)

	coaches, err := repo.ListBySelector(context.Background(), models.CoachSelector{
		CoachIDs:   []string{"coach-9"},
		WorkedFrom: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		WorkedTo:   time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.Len(t, coaches, 1)
	assert.False(t, coaches[0].Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoachListBySelectorIncludesCoachesWhoWorkedInRange(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCoachRepository(db)

	mock.ExpectQuery(`FROM coaches WHERE \(active = TRUE OR EXISTS \(SELECT 1 FROM class_assignments .+ BETWEEN \$1 AND \$2\) OR EXISTS \(SELECT 1 FROM private_classes .+ BETWEEN \$1 AND \$2\)\) AND payment_frequency = \$3`).
		WithArgs("2025-03-03", "2025-03-09", "weekly").
		WillReturnRows(sqlmock.NewRows(coachCols))

	_, err := repo.ListBySelector(context.Background(), models.CoachSelector{
		PaymentFrequency: models.PaymentWeekly,
		WorkedFrom:       time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		WorkedTo:         time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCoachListSearch(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewCoachRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM coaches WHERE active = TRUE AND (LOWER(full_name) LIKE $1 OR LOWER(email) LIKE $1)")).
		WithArgs("%ana%").
		WillReturnRows(sqlmock.NewRows(coachCols))

	coaches, err := repo.List(context.Background(), models.CoachFilter{Search: "Ana"})
	require.NoError(t, err)
	assert.Empty(t, coaches)
	assert.NoError(t, mock.ExpectationsWereMet())
}
