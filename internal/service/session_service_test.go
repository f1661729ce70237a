package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/justute/tutorboard-api/internal/models"
	appErrors "github.com/justute/tutorboard-api/pkg/errors"
)

type mockSessionRepo struct {
	sessions  map[string]*models.Session
	listErr   error
	createErr error
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[string]*models.Session)}
}

func (m *mockSessionRepo) List(ctx context.Context, filter models.SessionFilter) ([]models.Session, int, error) {
	if m.listErr != nil {
		return nil, 0, m.listErr
	}
	out := make([]models.Session, 0, len(m.sessions))
	for _, session := range m.sessions {
		if filter.TeacherID != "" && session.TeacherID != filter.TeacherID {
			continue
		}
		if filter.From != nil && session.StartTime.Before(*filter.From) {
			continue
		}
		if filter.To != nil && !session.StartTime.Before(*filter.To) {
			continue
		}
		out = append(out, *session)
	}
	return out, len(out), nil
}

func (m *mockSessionRepo) GetByID(ctx context.Context, id string) (*models.Session, error) {
	session, ok := m.sessions[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	copied := *session
	return &copied, nil
}

func (m *mockSessionRepo) Create(ctx context.Context, session *models.Session) error {
	if m.createErr != nil {
		return m.createErr
	}
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	copied := *session
	m.sessions[session.ID] = &copied
	return nil
}

func (m *mockSessionRepo) Update(ctx context.Context, session *models.Session) error {
	copied := *session
	m.sessions[session.ID] = &copied
	return nil
}

func (m *mockSessionRepo) Delete(ctx context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

type mockStudentFinder struct {
	students map[string]*models.Student
}

func (m *mockStudentFinder) FindByID(ctx context.Context, id string) (*models.Student, error) {
	student, ok := m.students[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return student, nil
}

func newSessionTestService(repo *mockSessionRepo) *SessionService {
	students := &mockStudentFinder{students: map[string]*models.Student{
		"st1": {ID: "st1", TeacherID: "t1", FullName: "Student One"},
		"st2": {ID: "st2", TeacherID: "t1", FullName: "Student Two"},
		"other": {ID: "other", TeacherID: "t9", FullName: "Not Mine"},
	}}
	return NewSessionService(repo, students, validator.New(), zap.NewNop())
}

func TestSessionServiceCreateCombinesDateAndClocks(t *testing.T) {
	repo := newMockSessionRepo()
	svc := newSessionTestService(repo)

	session, err := svc.Create(context.Background(), "t1", models.CreateSessionRequest{
		StudentID:  "st1",
		Subject:    "Math",
		Topic:      "Algebra, Fractions",
		Date:       "2024-03-15",
		StartClock: "14:00",
		EndClock:   "15:30",
	})
	require.NoError(t, err)
	assert.Equal(t, "Student One", session.StudentName)
	assert.Equal(t, time.Date(2024, 3, 15, 14, 0, 0, 0, time.UTC), session.StartTime)
	assert.Equal(t, time.Date(2024, 3, 15, 15, 30, 0, 0, time.UTC), session.EndTime)
	assert.NotEmpty(t, session.ID)
}

func TestSessionServiceCreateRejectsInvertedClocks(t *testing.T) {
	svc := newSessionTestService(newMockSessionRepo())

	_, err := svc.Create(context.Background(), "t1", models.CreateSessionRequest{
		StudentID:  "st1",
		Subject:    "Math",
		Date:       "2024-03-15",
		StartClock: "15:00",
		EndClock:   "14:00",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestSessionServiceCreateRejectsForeignStudent(t *testing.T) {
	svc := newSessionTestService(newMockSessionRepo())

	_, err := svc.Create(context.Background(), "t1", models.CreateSessionRequest{
		StudentID:  "other",
		Subject:    "Math",
		Date:       "2024-03-15",
		StartClock: "14:00",
		EndClock:   "15:00",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestSessionServiceUpdateClockKeepsDay(t *testing.T) {
	repo := newMockSessionRepo()
	svc := newSessionTestService(repo)

	created, err := svc.Create(context.Background(), "t1", models.CreateSessionRequest{
		StudentID:  "st1",
		Subject:    "Math",
		Date:       "2024-03-15",
		StartClock: "14:00",
		EndClock:   "15:00",
	})
	require.NoError(t, err)

	start := "09:30"
	updated, err := svc.Update(context.Background(), "t1", created.ID, models.UpdateSessionRequest{
		StartClock: &start,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC), updated.StartTime)
	assert.Equal(t, time.Date(2024, 3, 15, 15, 0, 0, 0, time.UTC), updated.EndTime)
}

func TestSessionServiceUpdateTopicOnly(t *testing.T) {
	repo := newMockSessionRepo()
	svc := newSessionTestService(repo)

	created, err := svc.Create(context.Background(), "t1", models.CreateSessionRequest{
		StudentID:  "st1",
		Subject:    "Math",
		Topic:      "Algebra",
		Date:       "2024-03-15",
		StartClock: "14:00",
		EndClock:   "15:00",
	})
	require.NoError(t, err)

	topic := "Algebra, Fractions, Decimals"
	updated, err := svc.Update(context.Background(), "t1", created.ID, models.UpdateSessionRequest{
		Topic: &topic,
	})
	require.NoError(t, err)
	assert.Equal(t, topic, updated.Topic)
	assert.Equal(t, created.StartTime, updated.StartTime)
	assert.Equal(t, created.Subject, updated.Subject)
}

func TestSessionServiceUpdateMovesDay(t *testing.T) {
	repo := newMockSessionRepo()
	svc := newSessionTestService(repo)

	created, err := svc.Create(context.Background(), "t1", models.CreateSessionRequest{
		StudentID:  "st1",
		Subject:    "Math",
		Date:       "2024-03-15",
		StartClock: "14:00",
		EndClock:   "15:00",
	})
	require.NoError(t, err)

	date := "2024-03-22"
	updated, err := svc.Update(context.Background(), "t1", created.ID, models.UpdateSessionRequest{
		Date: &date,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 22, 14, 0, 0, 0, time.UTC), updated.StartTime)
	assert.Equal(t, time.Date(2024, 3, 22, 15, 0, 0, 0, time.UTC), updated.EndTime)
}

func TestSessionServiceGetHidesForeignSessions(t *testing.T) {
	repo := newMockSessionRepo()
	repo.sessions["s1"] = &models.Session{ID: "s1", TeacherID: "t9"}
	svc := newSessionTestService(repo)

	_, err := svc.Get(context.Background(), "t1", "s1")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestSessionServiceDelete(t *testing.T) {
	repo := newMockSessionRepo()
	svc := newSessionTestService(repo)

	created, err := svc.Create(context.Background(), "t1", models.CreateSessionRequest{
		StudentID:  "st1",
		Subject:    "Math",
		Date:       "2024-03-15",
		StartClock: "14:00",
		EndClock:   "15:00",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "t1", created.ID))

	_, err = svc.Get(context.Background(), "t1", created.ID)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}
