package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justute/tutorboard-api/internal/models"
)

func newSessionRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func sessionRows() *sqlmock.Rows {
	now := time.Now()
	return sqlmock.NewRows([]string{"id", "teacher_id", "student_id", "student_name", "subject", "topic", "start_time", "end_time", "created_at", "updated_at"}).
		AddRow("s1", "t1", "st1", "Student One", "Math", "Algebra, Geometry", now, now.Add(time.Hour), now, now)
}

func TestSessionRepositoryList(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectQuery("SELECT s.id, s.teacher_id, .+ FROM sessions s JOIN students st ON st.id = s.student_id").
		WithArgs("t1").
		WillReturnRows(sessionRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM sessions s")).
		WithArgs("t1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	sessions, total, err := repo.List(context.Background(), models.SessionFilter{TeacherID: "t1"})
	require.NoError(t, err)
	assert.Len(t, sessions, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Student One", sessions[0].StudentName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryListDateRange(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	from := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	mock.ExpectQuery("SELECT s.id, .+ AND s.start_time >= \\$2 AND s.start_time < \\$3").
		WithArgs("t1", from, to).
		WillReturnRows(sessionRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM sessions s")).
		WithArgs("t1", from, to).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, _, err := repo.List(context.Background(), models.SessionFilter{TeacherID: "t1", From: &from, To: &to})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryCreateAndDelete(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectExec("INSERT INTO sessions").
		WithArgs(sqlmock.AnyArg(), "t1", "st1", "Math", "", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	session := &models.Session{TeacherID: "t1", StudentID: "st1", Subject: "Math"}
	require.NoError(t, repo.Create(context.Background(), session))
	assert.NotEmpty(t, session.ID)

	mock.ExpectExec("DELETE FROM sessions WHERE id").
		WithArgs("s1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Delete(context.Background(), "s1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryUpdate(t *testing.T) {
	db, mock, cleanup := newSessionRepoMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectExec("UPDATE sessions SET student_id").
		WithArgs("st2", "Physics", "Waves", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "s1").
		WillReturnResult(sqlmock.NewResult(1, 1))

	session := &models.Session{ID: "s1", StudentID: "st2", Subject: "Physics", Topic: "Waves"}
	require.NoError(t, repo.Update(context.Background(), session))
	assert.NoError(t, mock.ExpectationsWereMet())
}
