package database

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/academy-backoffice-api/pkg/config"
)

func TestWithTxCommits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM class_assignments").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err = WithTx(context.Background(), sqlx.NewDb(db, "sqlmock"), func(tx *sqlx.Tx) error {
		_, execErr := tx.Exec("DELETE FROM class_assignments")
		return execErr
	})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectRollback()

	boom := errors.New("insert failed")
	err = WithTx(context.Background(), sqlx.NewDb(db, "sqlmock"), func(tx *sqlx.Tx) error {
		return boom
	})
	require.ErrorIs(t, err, boom)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDSNQuotesSpecialValues(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{
		Host:           "db.internal",
		Port:           5432,
		User:           "backoffice",
		Password:       `p@ss word's`,
		Name:           "academy",
		SSLMode:        "require",
		ConnectTimeout: 3 * time.Second,
	})
	require.Equal(t, `host=db.internal port=5432 user=backoffice password='p@ss word\'s' dbname=academy sslmode=require connect_timeout=3`, dsn)
}

func TestDSNQuotesEmptyPassword(t *testing.T) {
	dsn := DSN(config.DatabaseConfig{Host: "localhost", Port: 5432, User: "postgres", Name: "academy", SSLMode: "disable"})
	require.Equal(t, `host=localhost port=5432 user=postgres password='' dbname=academy sslmode=disable`, dsn)
}
