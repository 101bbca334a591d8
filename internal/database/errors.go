package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/Pasinduhansana/Natural-Disaster-Management-System/backend/internal/apperrors"
)

// Postgres error codes the stores translate.
const (
	pgInvalidTextRepresentation = "22P02"
	pgForeignKeyViolation       = "23503"
	pgUniqueViolation           = "23505"
)

// translate converts driver errors into application errors. notFound is used
// when the error means the addressed row does not exist.
func translate(err error, op, notFound string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.NotFound(notFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgInvalidTextRepresentation, pgForeignKeyViolation:
			return apperrors.NotFound(notFound)
		case pgUniqueViolation:
			return apperrors.Wrap(apperrors.ErrConflict, "Resource already exists", err)
		}
	}

	return apperrors.Store(op, err)
}
