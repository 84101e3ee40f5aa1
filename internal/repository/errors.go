package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"tracker/internal/apperr"
)

// https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	PgErrUniqueViolation      = "23505"
	PgErrForeignKeyViolation  = "23503"
	PgErrCheckViolation       = "23514"
	PgErrSerializationFailure = "40001"
	PgErrDeadlockDetected     = "40P01"
)

func IsPgErrorWithCode(err error, code string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == code
	}
	return false
}

// IsSerializationFailure сообщает о конфликте serializable транзакций, такую транзакцию можно повторить.
func IsSerializationFailure(err error) bool {
	return IsPgErrorWithCode(err, PgErrSerializationFailure) ||
		IsPgErrorWithCode(err, PgErrDeadlockDetected)
}

// Translate переводит ошибки драйвера в ошибки домена, op попадает в текст ошибки.
func Translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, pgx.ErrNoRows):
		return apperr.ErrNotFound
	case IsPgErrorWithCode(err, PgErrUniqueViolation):
		return fmt.Errorf("%s: %w", op, apperr.ErrConflict)
	case IsPgErrorWithCode(err, PgErrForeignKeyViolation):
		return fmt.Errorf("%s: %w", op, apperr.ErrNotFound)
	case IsSerializationFailure(err):
		return fmt.Errorf("%s: %w", op, apperr.ErrConcurrentModification)
	default:
		return fmt.Errorf("unexpected %s error: %w", op, err)
	}
}

// TranslateTx используется менеджером транзакций для ошибок коммита.
func TranslateTx(err error) error {
	if IsSerializationFailure(err) {
		return fmt.Errorf("commit: %w: %w", apperr.ErrConcurrentModification, err)
	}
	return err
}
