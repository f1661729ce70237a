package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyOfSameDay(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	morning := time.Date(2024, 3, 10, 0, 30, 0, 0, loc)
	evening := time.Date(2024, 3, 10, 23, 15, 0, 0, loc)

	// 2024-03-10 is a DST transition day in this zone.
	assert.Equal(t, KeyOf(morning), KeyOf(evening))
	assert.Equal(t, "2024-03-10", KeyOf(morning).String())
}

func TestKeyOfDifferentDays(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	beforeMidnight := time.Date(2024, 3, 10, 23, 59, 0, 0, loc)
	afterMidnight := time.Date(2024, 3, 11, 0, 1, 0, 0, loc)

	assert.NotEqual(t, KeyOf(beforeMidnight), KeyOf(afterMidnight))
}

func TestParseDayKey(t *testing.T) {
	key, err := ParseDayKey("2024-01-15")
	require.NoError(t, err)
	assert.Equal(t, DayKey{Year: 2024, Month: time.January, Day: 15}, key)

	_, err = ParseDayKey("15/01/2024")
	require.Error(t, err)
}

func TestDayKeyDate(t *testing.T) {
	key := DayKey{Year: 2024, Month: time.June, Day: 3}
	date := key.Date(time.UTC)
	assert.Equal(t, time.Date(2024, 6, 3, 0, 0, 0, 0, time.UTC), date)
	assert.Equal(t, key, KeyOf(date))
}
