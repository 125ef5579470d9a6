package repository

import (
	"errors"
	"time"

	"github.com/lib/pq"
)

const dateLayout = "2006-01-02"

// sqlDate renders a calendar date for DATE columns so the session time zone cannot shift it.
func sqlDate(t time.Time) string {
	return t.Format(dateLayout)
}

// IsUniqueViolation reports whether err is a Postgres unique constraint failure.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}

// IsForeignKeyViolation reports whether err is a Postgres foreign key failure.
func IsForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23503"
}
