package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/justute/tutorboard-api/internal/models"
)

const sessionColumns = `s.id, s.teacher_id, s.student_id, st.full_name AS student_name, s.subject, s.topic, s.start_time, s.end_time, s.created_at, s.updated_at`

// SessionRepository persists tutoring sessions.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository constructs a session repository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// List returns sessions matching the filter ordered by start time.
func (r *SessionRepository) List(ctx context.Context, filter models.SessionFilter) ([]models.Session, int, error) {
	where := "WHERE 1=1"
	args := []interface{}{}
	if filter.TeacherID != "" {
		where += fmt.Sprintf(" AND s.teacher_id = $%d", len(args)+1)
		args = append(args, filter.TeacherID)
	}
	if filter.StudentID != "" {
		where += fmt.Sprintf(" AND s.student_id = $%d", len(args)+1)
		args = append(args, filter.StudentID)
	}
	if filter.From != nil {
		where += fmt.Sprintf(" AND s.start_time >= $%d", len(args)+1)
		args = append(args, *filter.From)
	}
	if filter.To != nil {
		where += fmt.Sprintf(" AND s.start_time < $%d", len(args)+1)
		args = append(args, *filter.To)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 500 {
		size = 200
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s FROM sessions s JOIN students st ON st.id = s.student_id
%s ORDER BY s.start_time ASC LIMIT %d OFFSET %d`, sessionColumns, where, size, offset)
	var sessions []models.Session
	if err := r.db.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list sessions: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM sessions s %s", where)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count sessions: %w", err)
	}
	return sessions, total, nil
}

// GetByID fetches one session with its student name.
func (r *SessionRepository) GetByID(ctx context.Context, id string) (*models.Session, error) {
	query := fmt.Sprintf(`SELECT %s FROM sessions s JOIN students st ON st.id = s.student_id WHERE s.id = $1`, sessionColumns)
	var session models.Session
	if err := r.db.GetContext(ctx, &session, query, id); err != nil {
		return nil, err
	}
	return &session, nil
}

// Create inserts a session.
func (r *SessionRepository) Create(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if session.CreatedAt.IsZero() {
		session.CreatedAt = now
	}
	session.UpdatedAt = now
	query := `INSERT INTO sessions (id, teacher_id, student_id, subject, topic, start_time, end_time, created_at, updated_at)
VALUES (:id, :teacher_id, :student_id, :subject, :topic, :start_time, :end_time, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// Update modifies a session.
func (r *SessionRepository) Update(ctx context.Context, session *models.Session) error {
	session.UpdatedAt = time.Now().UTC()
	query := `UPDATE sessions SET student_id = :student_id, subject = :subject, topic = :topic,
start_time = :start_time, end_time = :end_time, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("update session: %w", err)
	}
	return nil
}

// Delete removes a session.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = $1", id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
