package db

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func statement() (string, int64) {
	return "SELECT * FROM appointments", 2
}

func TestGormLogger_FailedQuery(t *testing.T) {
	var buf bytes.Buffer
	l := NewGormLogger(zerolog.New(&buf), logger.Warn)

	l.Trace(context.Background(), time.Now(), statement, errors.New("connection reset"))

	out := buf.String()
	assert.Contains(t, out, `"level":"error"`)
	assert.Contains(t, out, `"component":"gorm"`)
	assert.Contains(t, out, "SELECT * FROM appointments")
	assert.Contains(t, out, "connection reset")
}

func TestGormLogger_SkipsNotFoundAndFastQueries(t *testing.T) {
	var buf bytes.Buffer
	l := NewGormLogger(zerolog.New(&buf), logger.Warn)

	l.Trace(context.Background(), time.Now(), statement, gorm.ErrRecordNotFound)
	l.Trace(context.Background(), time.Now(), statement, nil)

	assert.Empty(t, buf.String())
}

func TestGormLogger_SlowQuery(t *testing.T) {
	var buf bytes.Buffer
	l := NewGormLogger(zerolog.New(&buf), logger.Warn)

	l.Trace(context.Background(), time.Now().Add(-time.Second), statement, nil)

	assert.Contains(t, buf.String(), "slow query")
}

func TestGormLogger_SilentMode(t *testing.T) {
	var buf bytes.Buffer
	l := NewGormLogger(zerolog.New(&buf), logger.Info).LogMode(logger.Silent)

	l.Trace(context.Background(), time.Now(), statement, errors.New("boom"))
	l.Warn(context.Background(), "pool %s", "exhausted")

	assert.Empty(t, buf.String())
}
