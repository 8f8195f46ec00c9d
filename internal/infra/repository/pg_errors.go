package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgUniqueViolation      = "23505"
	pgExclusionViolation   = "23P01"
	pgSerializationFailure = "40001"
	pgDeadlockDetected     = "40P01"
	overlapConstraintName  = "appointments_no_overlap"
)

// isExclusionConflict reports whether postgres rejected a write because it
// would overlap another live appointment of the same dentist.
func isExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}

	switch pgErr.Code {
	case pgExclusionViolation:
		return true
	case pgUniqueViolation:
		return pgErr.ConstraintName == overlapConstraintName
	}
	return false
}

// isRetryable reports transaction aborts caused by concurrent writers.
func isRetryable(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == pgSerializationFailure || pgErr.Code == pgDeadlockDetected
}
