package appointment

import "time"

// Hours is an opening interval expressed as clock times on a given day.
type Hours struct {
	OpenHour    int
	OpenMinute  int
	CloseHour   int
	CloseMinute int
}

var weeklyHours = map[time.Weekday]Hours{
	time.Monday:    {OpenHour: 8, CloseHour: 18},
	time.Tuesday:   {OpenHour: 8, CloseHour: 18},
	time.Wednesday: {OpenHour: 8, CloseHour: 18},
	time.Thursday:  {OpenHour: 8, CloseHour: 18},
	time.Friday:    {OpenHour: 8, CloseHour: 18},
	time.Saturday:  {OpenHour: 8, CloseHour: 13},
}

// BusinessHours returns the clinic hours for a weekday. A closed day is
// reported through ok=false, never as an error.
func BusinessHours(day time.Weekday) (h Hours, ok bool) {
	h, ok = weeklyHours[day]
	return h, ok
}

// HoursOn anchors the weekday policy to a concrete date in the date's own
// location.
func HoursOn(date time.Time) (open, close time.Time, ok bool) {
	h, ok := BusinessHours(date.Weekday())
	if !ok {
		return time.Time{}, time.Time{}, false
	}

	y, m, d := date.Date()
	loc := date.Location()

	open = time.Date(y, m, d, h.OpenHour, h.OpenMinute, 0, 0, loc)
	close = time.Date(y, m, d, h.CloseHour, h.CloseMinute, 0, 0, loc)
	return open, close, true
}

// WithinBusinessHours requires the whole window to fit inside one opening
// interval of the clinic calendar in loc.
func WithinBusinessHours(w Window, loc *time.Location) bool {
	start, end := w.Start.In(loc), w.End.In(loc)

	open, close, ok := HoursOn(start)
	if !ok {
		return false
	}
	return !start.Before(open) && !end.After(close)
}
