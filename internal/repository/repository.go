package repository

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrNoDatabase is returned when the service runs without a Postgres pool.
	ErrNoDatabase = errors.New("database not configured")
	// ErrDuplicateEmail is returned when an email is already taken, compared case-insensitively.
	ErrDuplicateEmail = errors.New("duplicate email")
)

const uniqueViolation = "23505"

// sameEmail is the single email comparison rule; the migrations index lower(email) to match.
func sameEmail(a, b string) bool {
	return strings.EqualFold(a, b)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
