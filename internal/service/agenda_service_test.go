package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/justute/tutorboard-api/internal/models"
	appErrors "github.com/justute/tutorboard-api/pkg/errors"
	"github.com/justute/tutorboard-api/pkg/planner"
)

func agendaRepoWith(sessions ...models.Session) *mockSessionRepo {
	repo := newMockSessionRepo()
	for i := range sessions {
		copied := sessions[i]
		repo.sessions[copied.ID] = &copied
	}
	return repo
}

func agendaSession(id string, day time.Time, hour int) models.Session {
	start := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
	return models.Session{
		ID:          id,
		TeacherID:   "t1",
		StudentID:   "st1",
		StudentName: "Student One",
		Subject:     "Math",
		Topic:       "Algebra",
		StartTime:   start,
		EndTime:     start.Add(time.Hour),
	}
}

func TestAgendaServiceDay(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	repo := agendaRepoWith(
		agendaSession("s1", day, 9),
		agendaSession("s2", day, 14),
		agendaSession("s3", day.AddDate(0, 0, 1), 9),
	)
	svc := NewAgendaService(repo, nil, zap.NewNop())

	agenda, err := svc.Day(context.Background(), "t1", planner.KeyOf(day))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", agenda.Date)
	assert.Len(t, agenda.Sessions, 2)
}

func TestAgendaServiceMonthGrid(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	repo := agendaRepoWith(
		agendaSession("s1", day, 9),
		agendaSession("s2", day, 14),
	)
	svc := NewAgendaService(repo, nil, zap.NewNop())

	month, err := svc.Month(context.Background(), "t1", day)
	require.NoError(t, err)
	assert.Equal(t, "2024-03", month.Month)
	require.Len(t, month.Cells, planner.GridCells)

	var marked *models.AgendaCell
	inMonth := 0
	for i := range month.Cells {
		if month.Cells[i].InMonth {
			inMonth++
		}
		if month.Cells[i].Date == "2024-03-15" {
			marked = &month.Cells[i]
		}
	}
	assert.Equal(t, 31, inMonth)
	require.NotNil(t, marked)
	assert.True(t, marked.HasEvents)
	assert.Equal(t, 2, marked.EventCount)
}

func TestAgendaServiceExportCSV(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	repo := agendaRepoWith(agendaSession("s1", day, 9))
	svc := NewAgendaService(repo, nil, zap.NewNop())

	payload, contentType, err := svc.Export(context.Background(), "t1", day, day.AddDate(0, 0, 7), "csv")
	require.NoError(t, err)
	assert.Equal(t, "text/csv", contentType)

	body := string(payload)
	assert.True(t, strings.HasPrefix(body, "Date,Start,End,Student,Subject,Topics"))
	assert.Contains(t, body, "2024-03-15,09:00,10:00,Student One,Math,Algebra")
}

func TestAgendaServiceExportRejectsBadInput(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	svc := NewAgendaService(newMockSessionRepo(), nil, zap.NewNop())

	_, _, err := svc.Export(context.Background(), "t1", day, day, "csv")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, _, err = svc.Export(context.Background(), "t1", day, day.AddDate(0, 0, 1), "xml")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}
