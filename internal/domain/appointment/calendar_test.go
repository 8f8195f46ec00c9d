package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBusinessHours(t *testing.T) {
	h, ok := BusinessHours(time.Wednesday)
	assert.True(t, ok)
	assert.Equal(t, Hours{OpenHour: 8, CloseHour: 18}, h)

	h, ok = BusinessHours(time.Saturday)
	assert.True(t, ok)
	assert.Equal(t, 13, h.CloseHour)

	_, ok = BusinessHours(time.Sunday)
	assert.False(t, ok)
}

func TestWithinBusinessHours(t *testing.T) {
	loc := time.UTC
	// 2030-01-07 is a Monday.
	monday := func(h, m int) time.Time { return time.Date(2030, 1, 7, h, m, 0, 0, loc) }
	saturday := func(h, m int) time.Time { return time.Date(2030, 1, 12, h, m, 0, 0, loc) }
	sunday := time.Date(2030, 1, 13, 10, 0, 0, 0, loc)

	cases := []struct {
		name string
		w    Window
		want bool
	}{
		{"opening", NewWindow(monday(8, 0), 30), true},
		{"ends at close", NewWindow(monday(17, 30), 30), true},
		{"runs past close", NewWindow(monday(17, 45), 30), false},
		{"before open", NewWindow(monday(7, 30), 60), false},
		{"saturday morning", NewWindow(saturday(12, 0), 60), true},
		{"saturday afternoon", NewWindow(saturday(13, 0), 30), false},
		{"sunday", NewWindow(sunday, 30), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, WithinBusinessHours(tc.w, loc))
		})
	}
}

func TestWithinBusinessHours_ReadsClinicWallClock(t *testing.T) {
	clinic := time.FixedZone("clinic", -5*3600)

	// 08:00Z is 03:00 at the clinic, 21:00Z is 16:00.
	early := NewWindow(time.Date(2030, 1, 10, 8, 0, 0, 0, time.UTC), 30)
	afternoon := NewWindow(time.Date(2030, 1, 10, 21, 0, 0, 0, time.UTC), 30)

	assert.False(t, WithinBusinessHours(early, clinic))
	assert.True(t, WithinBusinessHours(afternoon, clinic))
	assert.True(t, WithinBusinessHours(early, time.UTC))
	assert.False(t, WithinBusinessHours(afternoon, time.UTC))
}

func TestWithinBusinessHours_DayFollowsClinicZone(t *testing.T) {
	clinic := time.FixedZone("clinic", -5*3600)

	// Sunday 02:00Z is still Saturday 21:00 at the clinic, which is closed.
	w := NewWindow(time.Date(2030, 1, 13, 2, 0, 0, 0, time.UTC), 30)
	assert.False(t, WithinBusinessHours(w, clinic))

	// Saturday 14:00Z is 09:00 at the clinic.
	w = NewWindow(time.Date(2030, 1, 12, 14, 0, 0, 0, time.UTC), 60)
	assert.True(t, WithinBusinessHours(w, clinic))
}
