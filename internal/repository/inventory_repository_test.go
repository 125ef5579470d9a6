package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-backoffice-api/internal/models"
)

func TestInventoryStatus(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewInventoryRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "location_id", "name", "sku", "unit", "par_level", "active", "created_at", "updated_at", "last_quantity", "last_counted_on"}).
		AddRow("item-1", "loc-1", "Gloves 12oz", "GL-12", "pair", 10, true, now, now, 4, date(2025, 3, 1)).
		AddRow("item-2", "loc-1", "Towels", "", "unit", 20, true, now, now, nil, nil)
	mock.ExpectQuery("LEFT JOIN LATERAL").WithArgs("loc-1").WillReturnRows(rows)

	got, err := repo.Status(context.Background(), "loc-1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.NotNil(t, got[0].LastQuantity)
	assert.Equal(t, 4, *got[0].LastQuantity)
	assert.Nil(t, got[1].LastQuantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryCreateCounts(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewInventoryRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO inventory_counts").
		WithArgs(sqlmock.AnyArg(), "item-1", "2025-03-01", 4, nil, nil, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CreateCounts(context.Background(), []models.InventoryCount{{ItemID: "item-1", CountedOn: date(2025, 3, 1), Quantity: 4}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryUpdateItemNotFound(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewInventoryRepository(db)

	mock.ExpectExec("UPDATE inventory_items").
		WithArgs("Tape", "", "roll", 6, sqlmock.AnyArg(), "item-9").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.UpdateItem(context.Background(), &models.InventoryItem{ID: "item-9", Name: "Tape", Unit: "roll", ParLevel: 6})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInventoryDeactivateItem(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewInventoryRepository(db)

	mock.ExpectExec("UPDATE inventory_items SET active = FALSE").
		WithArgs("item-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.DeactivateItem(context.Background(), "item-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
