package planner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "github.com/justute/tutorboard-api/pkg/errors"
)

func TestDraftWithFieldUnknownName(t *testing.T) {
	draft := NewDraft(DayKey{Year: 2024, Month: time.January, Day: 15})

	_, err := draft.WithField("color", "blue")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrInvalidField))
}

func TestDraftClockEditPreservesDate(t *testing.T) {
	session := sessionOn("a", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), 9)
	draft := DraftOf(session)

	updated, err := draft.WithField(FieldStartTime, "14:30")
	require.NoError(t, err)

	// Only hour and minute change; the session keeps its own day.
	assert.Equal(t, time.Date(2024, 1, 15, 14, 30, 0, 0, time.UTC), updated.StartTime)
	assert.Equal(t, KeyOf(session.StartTime), KeyOf(updated.StartTime))

	// The original draft value is untouched.
	assert.Equal(t, session.StartTime, draft.StartTime)
}

func TestDraftWithFieldBadClock(t *testing.T) {
	draft := NewDraft(DayKey{Year: 2024, Month: time.January, Day: 15})

	_, err := draft.WithField(FieldEndTime, "25:99")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestDraftStringFields(t *testing.T) {
	draft := NewDraft(DayKey{Year: 2024, Month: time.January, Day: 15})

	draft, err := draft.WithField(FieldStudentID, "st-1")
	require.NoError(t, err)
	draft, err = draft.WithField(FieldSubject, "Biology")
	require.NoError(t, err)
	draft, err = draft.WithField(FieldTopic, "Cells, Mitosis")
	require.NoError(t, err)

	assert.Equal(t, "st-1", draft.StudentID)
	assert.Equal(t, "Biology", draft.Subject)
	assert.Equal(t, "Cells, Mitosis", draft.Topic)
	assert.True(t, draft.IsNew())
}

func TestDraftValidate(t *testing.T) {
	draft := NewDraft(DayKey{Year: 2024, Month: time.January, Day: 15})

	err := draft.Validate()
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	assert.Contains(t, err.Error(), FieldStudentID)
	assert.Contains(t, err.Error(), FieldSubject)

	draft.StudentID = "st-1"
	draft.Subject = "Biology"
	assert.NoError(t, draft.Validate())

	// Topic stays optional.
	assert.Empty(t, draft.Topic)
}

func TestNewDraftDefaults(t *testing.T) {
	day := DayKey{Year: 2024, Month: time.January, Day: 15}
	draft := NewDraft(day)

	assert.Equal(t, "09:00", draft.StartClock())
	assert.Equal(t, "10:00", draft.EndClock())
	assert.Equal(t, day, KeyOf(draft.StartTime))
}
