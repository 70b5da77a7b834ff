// Package stores persists FreshCheck entities through GORM. Every store is an
// interface with a GORM implementation so handlers can be tested against mocks.
package stores

import (
	"errors"

	"github.com/freshcheck/api-go/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL error codes the stores classify.
const (
	PgErrForeignKeyViolation = "23503"
	PgErrUniqueViolation     = "23505"
)

// classify converts driver and ORM errors into application errors.
func classify(err error, entity string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(entity)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case PgErrUniqueViolation:
			return apperrors.Wrap(apperrors.KindConflict, entity+" already exists", err)
		case PgErrForeignKeyViolation:
			return apperrors.Wrap(apperrors.KindConflict, entity+" is linked to other records", err)
		}
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.Wrap(apperrors.KindConflict, entity+" already exists", err)
	}
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return apperrors.Wrap(apperrors.KindConflict, entity+" is linked to other records", err)
	}
	return apperrors.Internal(err)
}
