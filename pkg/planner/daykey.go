package planner

import (
	"fmt"
	"time"
)

// DayKey identifies a calendar day in local time. Two timestamps map to the
// same key iff they fall on the same local calendar day.
type DayKey struct {
	Year  int
	Month time.Month
	Day   int
}

// KeyOf derives the DayKey for a point in time using its own location.
func KeyOf(t time.Time) DayKey {
	y, m, d := t.Date()
	return DayKey{Year: y, Month: m, Day: d}
}

// String renders the key in the fixed-width YYYY-MM-DD form used as a map
// and cache key.
func (k DayKey) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", k.Year, int(k.Month), k.Day)
}

// Date returns midnight of the key's day in the given location.
func (k DayKey) Date(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(k.Year, k.Month, k.Day, 0, 0, 0, 0, loc)
}

// ParseDayKey parses the YYYY-MM-DD form.
func ParseDayKey(s string) (DayKey, error) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return DayKey{}, fmt.Errorf("parse day key %q: %w", s, err)
	}
	return KeyOf(t), nil
}
