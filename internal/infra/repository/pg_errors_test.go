package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestPostgresClassifiers(t *testing.T) {
	assert.True(t, isExclusionConflict(&pgconn.PgError{Code: "23P01"}))
	assert.True(t, isExclusionConflict(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "appointments_no_overlap"})))
	assert.False(t, isExclusionConflict(&pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}))
	assert.False(t, isExclusionConflict(errors.New("23P01")))

	assert.True(t, isRetryable(&pgconn.PgError{Code: "40001"}))
	assert.True(t, isRetryable(fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40P01"})))
	assert.False(t, isRetryable(&pgconn.PgError{Code: "23P01"}))
	assert.False(t, isRetryable(nil))
}
