package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocation_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, DefaultTimezone, Location("Not/AZone").String())
	assert.Equal(t, "UTC", Location("UTC").String())
}

func TestClock_NowInLocation(t *testing.T) {
	c := NewClock("UTC")
	assert.Equal(t, time.UTC, c.Now().Location())
}

func TestFixedClock(t *testing.T) {
	at := time.Date(2030, 1, 7, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, at, FixedClock{At: at}.Now())
}
