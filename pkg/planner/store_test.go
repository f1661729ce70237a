package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sessionOn(id string, day time.Time, hour int) Session {
	start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
	return Session{
		ID:          id,
		StudentID:   "st-" + id,
		StudentName: "Student " + id,
		Subject:     "Math",
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
	}
}

func TestGroupByDayPartitions(t *testing.T) {
	day1 := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)
	sessions := []Session{
		sessionOn("a", day1, 9),
		sessionOn("b", day2, 10),
		sessionOn("c", day1, 11),
	}

	grouping := GroupByDay(sessions)
	require.Len(t, grouping, 2)

	// Union of all groups reconstructs the input, nothing lost or doubled.
	total := 0
	seen := map[string]bool{}
	for _, group := range grouping {
		for _, s := range group {
			total++
			assert.False(t, seen[s.ID])
			seen[s.ID] = true
		}
	}
	assert.Equal(t, len(sessions), total)

	// Within-day order follows input order.
	day1Sessions := grouping[KeyOf(day1)]
	require.Len(t, day1Sessions, 2)
	assert.Equal(t, "a", day1Sessions[0].ID)
	assert.Equal(t, "c", day1Sessions[1].ID)
}

func TestStoreSessionsForDay(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	store := NewStore()
	store.Load([]Session{sessionOn("a", day, 9)})

	assert.Len(t, store.SessionsForDay(KeyOf(day)), 1)
	assert.True(t, store.HasSessionsOnDay(KeyOf(day)))

	other := DayKey{Year: 2024, Month: time.February, Day: 1}
	assert.Empty(t, store.SessionsForDay(other))
	assert.False(t, store.HasSessionsOnDay(other))
}

func TestStoreLoadReplacesSnapshot(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	store := NewStore()
	store.Load([]Session{sessionOn("a", day, 9), sessionOn("b", day, 10)})
	require.Equal(t, 2, store.Len())

	store.Load([]Session{sessionOn("c", day, 11)})
	assert.Equal(t, 1, store.Len())

	sessions := store.SessionsForDay(KeyOf(day))
	require.Len(t, sessions, 1)
	assert.Equal(t, "c", sessions[0].ID)
}

func TestStoreSnapshotIsACopy(t *testing.T) {
	day := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	store := NewStore()
	store.Load([]Session{sessionOn("a", day, 9)})

	snap := store.Snapshot()
	snap[0].Subject = "changed"

	assert.Equal(t, "Math", store.Snapshot()[0].Subject)
}
