package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-backoffice-api/internal/models"
)

func TestMembershipCreateImport(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMembershipRepository(db)

	cancelled := date(2025, 3, 20)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO membership_imports").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO membership_records").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "loc-1", "M-1", "Jo", "Unlimited", models.MembershipActive, "2025-01-05", nil, "120").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO membership_records").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "loc-1", "M-2", "Sam", "Kids", models.MembershipCancelled, "2024-11-01", "2025-03-20", "80").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	imp := &models.MembershipImport{LocationID: "loc-1", Filename: "members.csv", ImportedAt: time.Now()}
	records := []models.MembershipRecord{
		{ExternalMemberID: "M-1", MemberName: "Jo", Plan: "Unlimited", Status: models.MembershipActive, JoinedOn: date(2025, 1, 5), MonthlyFee: decimal.NewFromInt(120)},
		{ExternalMemberID: "M-2", MemberName: "Sam", Plan: "Kids", Status: models.MembershipCancelled, JoinedOn: date(2024, 11, 1), CancelledOn: &cancelled, MonthlyFee: decimal.NewFromInt(80)},
	}
	require.NoError(t, repo.CreateImport(context.Background(), imp, records))
	assert.Equal(t, 2, imp.RowCount)
	assert.Equal(t, imp.ID, records[1].ImportID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMembershipCreateImportRollsBack(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewMembershipRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO membership_imports").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO membership_records").WillReturnError(errors.New("constraint"))
	mock.ExpectRollback()

	err := repo.CreateImport(context.Background(), &models.MembershipImport{LocationID: "loc-1"}, []models.MembershipRecord{{ExternalMemberID: "M-1", JoinedOn: date(2025, 1, 1)}})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
