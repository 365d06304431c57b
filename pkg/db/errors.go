package db

import (
	"errors"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"

	pkgerrors "github.com/MichIoan/DP-API-2024-sub000/pkg/errors"
)

// Violation classifies a backend failure independent of the driver.
type Violation int

const (
	ViolationNone Violation = iota
	ViolationNotFound
	ViolationUnique
	ViolationForeignKey
	ViolationInvalidData
)

const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
	sqlStateNotNullViolation    = "23502"
	sqlStateCheckViolation      = "23514"
	sqlStateInvalidText         = "22P02"
	sqlStateInvalidParameter    = "22023"
	sqlStateNoDataFound         = "P0002"
)

// SQLState extracts the SQLSTATE from pgx or lib/pq errors.
func SQLState(err error) string {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func constraintName(err error) string {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.ConstraintName
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Constraint
	}
	return ""
}

// Classify maps err onto a Violation. Postgres errors are classified by
// SQLSTATE; sqlite errors by their constraint message.
func Classify(err error) Violation {
	if err == nil {
		return ViolationNone
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ViolationNotFound
	}

	switch SQLState(err) {
	case sqlStateUniqueViolation:
		return ViolationUnique
	case sqlStateForeignKeyViolation:
		return ViolationForeignKey
	case sqlStateNotNullViolation, sqlStateCheckViolation, sqlStateInvalidText, sqlStateInvalidParameter:
		return ViolationInvalidData
	case sqlStateNoDataFound:
		return ViolationNotFound
	case "":
	default:
		return ViolationNone
	}

	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ViolationUnique
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ViolationForeignKey
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return ViolationInvalidData
	}

	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return ViolationUnique
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ViolationForeignKey
	case strings.Contains(msg, "CHECK constraint failed"), strings.Contains(msg, "NOT NULL constraint failed"):
		return ViolationInvalidData
	}
	return ViolationNone
}

// IsUniqueViolation reports whether err is a unique violation. When
// constraint is set, the violated constraint must match it.
func IsUniqueViolation(err error, constraint string) bool {
	if Classify(err) != ViolationUnique {
		return false
	}
	if constraint == "" {
		return true
	}
	if name := constraintName(err); name != "" {
		return name == constraint
	}
	return true
}

// IsNotFound reports whether err is gorm's record-not-found sentinel.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// ErrorMessages carries the client-facing text used by MapError per violation.
type ErrorMessages struct {
	NotFound    string
	Conflict    string
	ForeignKey  string
	InvalidData string
	// ForeignKeyCode overrides the code used for FK violations. Inserts that
	// reference a missing parent usually want CodeNotFound.
	ForeignKeyCode pkgerrors.Code
	Fallback       string
}

// MapError converts a backend error into a typed error. Errors that are
// already typed pass through untouched.
func MapError(err error, msgs ErrorMessages) error {
	if err == nil {
		return nil
	}
	if pkgerrors.As(err) != nil {
		return err
	}

	switch Classify(err) {
	case ViolationNotFound:
		return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, orDefault(msgs.NotFound, "resource not found"))
	case ViolationUnique:
		return pkgerrors.Wrap(pkgerrors.CodeConflict, err, orDefault(msgs.Conflict, "resource already exists"))
	case ViolationForeignKey:
		code := msgs.ForeignKeyCode
		if code == "" {
			code = pkgerrors.CodeConflict
		}
		return pkgerrors.Wrap(code, err, orDefault(msgs.ForeignKey, "resource is referenced by other records"))
	case ViolationInvalidData:
		return pkgerrors.Wrap(pkgerrors.CodeUnprocessable, err, orDefault(msgs.InvalidData, "data rejected by the database"))
	default:
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, orDefault(msgs.Fallback, "database operation failed"))
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
