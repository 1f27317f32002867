package postgres

import (
	"context"
	"errors"

	"github.com/Aleph-Alpha/roovector-go/v1/bridge"
	"github.com/Aleph-Alpha/roovector-go/v1/vector"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Common database errors. TranslateError maps gorm, pgx and registration
// errors onto them.
var (
	// ErrRecordNotFound is returned when a query doesn't find any matching records.
	ErrRecordNotFound = errors.New("record not found")

	// ErrDuplicateKey is returned when an insert or update violates a unique constraint.
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrForeignKey is returned when an operation violates a foreign key constraint.
	ErrForeignKey = errors.New("foreign key violation")

	// ErrInvalidData is returned when a value is rejected by gorm or the database.
	ErrInvalidData = errors.New("invalid data")

	// ErrDimensionMismatch is returned when a vector does not fit its column.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrVectorTypeMissing is returned when the database has no roovector type.
	ErrVectorTypeMissing = errors.New("roovector type is not installed")

	// ErrConnection is returned for connection failures.
	ErrConnection = errors.New("database connection error")

	// ErrTimeout is returned when the context deadline passed.
	ErrTimeout = errors.New("database operation timed out")

	// ErrShutdownInTransaction is returned by GracefulShutdown on a client
	// scoped to a transaction.
	ErrShutdownInTransaction = errors.New("cannot shut down from inside a transaction")
)

// ErrorCategory groups errors by how callers should react to them.
type ErrorCategory int

const (
	CategoryUnknown ErrorCategory = iota
	CategoryNotFound
	CategoryConstraint
	CategoryData
	CategorySchema
	CategoryConnection
	CategoryTimeout
)

func (c ErrorCategory) String() string {
	switch c {
	case CategoryNotFound:
		return "not_found"
	case CategoryConstraint:
		return "constraint"
	case CategoryData:
		return "data"
	case CategorySchema:
		return "schema"
	case CategoryConnection:
		return "connection"
	case CategoryTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// SQLSTATE codes used by TranslateError.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeDataException       = "22000"
	codeInvalidText         = "22P02"
	codeUndefinedObject     = bridge.UndefinedObjectCode
	codeUndefinedTable      = "42P01"
	classConnection         = "08"
	classDataException      = "22"
)

// TranslateError converts gorm, pgx and registration errors into the
// sentinels above. Errors it does not recognize are returned unchanged.
func TranslateError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrRecordNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKey
	case errors.Is(err, gorm.ErrInvalidData):
		return ErrInvalidData
	case errors.Is(err, bridge.ErrTypeNotFound):
		return ErrVectorTypeMissing
	case errors.Is(err, vector.ErrInvalidText), errors.Is(err, vector.ErrInvalidBinary), errors.Is(err, vector.ErrTooManyDimensions):
		return ErrInvalidData
	case errors.Is(err, context.DeadlineExceeded):
		return ErrTimeout
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == codeUniqueViolation:
			return ErrDuplicateKey
		case pgErr.Code == codeForeignKeyViolation:
			return ErrForeignKey
		case pgErr.Code == codeDataException:
			// Dimension checks raise data_exception.
			return ErrDimensionMismatch
		case pgErr.Code == codeInvalidText, len(pgErr.Code) == 5 && pgErr.Code[:2] == classDataException:
			return ErrInvalidData
		case len(pgErr.Code) == 5 && pgErr.Code[:2] == classConnection:
			return ErrConnection
		}
	}

	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return ErrConnection
	}
	return err
}

// GetErrorCategory classifies err after translation.
func GetErrorCategory(err error) ErrorCategory {
	if err == nil {
		return CategoryUnknown
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && (pgErr.Code == codeUndefinedObject || pgErr.Code == codeUndefinedTable) {
		return CategorySchema
	}

	switch TranslateError(err) {
	case ErrRecordNotFound:
		return CategoryNotFound
	case ErrDuplicateKey, ErrForeignKey:
		return CategoryConstraint
	case ErrInvalidData, ErrDimensionMismatch:
		return CategoryData
	case ErrVectorTypeMissing:
		return CategorySchema
	case ErrConnection:
		return CategoryConnection
	case ErrTimeout:
		return CategoryTimeout
	default:
		return CategoryUnknown
	}
}

// IsRetryable reports whether repeating the operation may succeed.
func IsRetryable(err error) bool {
	switch GetErrorCategory(err) {
	case CategoryConnection, CategoryTimeout:
		return true
	default:
		return false
	}
}

// TranslateError is a convenience wrapper for the package-level function.
func (p *Postgres) TranslateError(err error) error {
	return TranslateError(err)
}
