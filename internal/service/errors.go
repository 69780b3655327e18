package service

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const msgValueTooLong = "Field value is too long"

// isDuplicateKey reports a unique-index violation. TranslateError covers the
// drivers that implement it; the message checks catch the rest.
func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "duplicate key value")
}

// isValueTooLong reports a postgres string_data_right_truncation (22001).
// SQLite does not enforce column sizes, so it never produces one.
func isValueTooLong(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22001"
}
