package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-backoffice-api/internal/models"
)

var paymentCols = []string{"id", "coach_id", "period_start", "period_end", "amount", "paid_on", "method", "notes", "recorded_by", "created_at"}

func TestPaymentCreate(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	mock.ExpectExec("INSERT INTO coach_payments").
		WithArgs(sqlmock.AnyArg(), "coach-1", "2025-03-01", "2025-03-15", "412.5", "2025-03-16", "bank_transfer", nil, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	p := &models.CoachPayment{
		CoachID:     "coach-1",
		PeriodStart: date(2025, 3, 1),
		PeriodEnd:   date(2025, 3, 15),
		Amount:      decimal.RequireFromString("412.50"),
		PaidOn:      date(2025, 3, 16),
		Method:      "bank_transfer",
	}
	require.NoError(t, repo.Create(context.Background(), p))
	assert.NotEmpty(t, p.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentFindForPeriodExactBoundaries(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(paymentCols).
		AddRow("pay-2", "coach-1", date(2025, 3, 1), date(2025, 3, 15), "412.50", date(2025, 3, 16), "cash", nil, "user-1", now)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE coach_id = $1 AND period_start = $2 AND period_end = $3\nORDER BY created_at DESC, id DESC LIMIT 1")).
		WithArgs("coach-1", "2025-03-01", "2025-03-15").
		WillReturnRows(rows)

	p, err := repo.FindForPeriod(context.Background(), "coach-1", date(2025, 3, 1), date(2025, 3, 15))
	require.NoError(t, err)
	assert.Equal(t, "pay-2", p.ID)
	assert.True(t, p.Amount.Equal(decimal.RequireFromString("412.5")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPaymentDeleteMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM coach_payments WHERE id = $1")).WithArgs("nope").WillReturnResult(sqlmock.NewResult(0, 0))
	assert.ErrorIs(t, repo.Delete(context.Background(), "nope"), sql.ErrNoRows)
}

func TestPaymentListForPeriod(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewPaymentRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows(paymentCols).
		AddRow("pay-1", "coach-1", date(2025, 3, 1), date(2025, 3, 15), "200", date(2025, 3, 16), "cash", nil, nil, now).
		AddRow("pay-2", "coach-1", date(2025, 3, 1), date(2025, 3, 15), "200", date(2025, 3, 16), "cash", nil, nil, now)
	mock.ExpectQuery("coach_id = ANY").
		WithArgs(pq.Array([]string{"coach-1", "coach-2"}), "2025-03-01", "2025-03-15").
		WillReturnRows(rows)

	got, err := repo.ListForPeriod(context.Background(), []string{"coach-1", "coach-2"}, date(2025, 3, 1), date(2025, 3, 15))
	require.NoError(t, err)
	assert.Len(t, got, 2)

	empty, err := repo.ListForPeriod(context.Background(), nil, date(2025, 3, 1), date(2025, 3, 15))
	require.NoError(t, err)
	assert.Empty(t, empty)
	assert.NoError(t, mock.ExpectationsWereMet())
}
