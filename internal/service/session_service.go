package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/justute/tutorboard-api/internal/models"
	appErrors "github.com/justute/tutorboard-api/pkg/errors"
	"github.com/justute/tutorboard-api/pkg/planner"
)

const clockLayout = "15:04"

type sessionRepository interface {
	List(ctx context.Context, filter models.SessionFilter) ([]models.Session, int, error)
	GetByID(ctx context.Context, id string) (*models.Session, error)
	Create(ctx context.Context, session *models.Session) error
	Update(ctx context.Context, session *models.Session) error
	Delete(ctx context.Context, id string) error
}

type sessionStudentRepository interface {
	FindByID(ctx context.Context, id string) (*models.Student, error)
}

// SessionService implements session CRUD for the teacher's schedule.
type SessionService struct {
	repo      sessionRepository
	students  sessionStudentRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewSessionService constructs a SessionService.
func NewSessionService(repo sessionRepository, students sessionStudentRepository, validate *validator.Validate, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SessionService{repo: repo, students: students, validator: validate, logger: logger}
}

// List returns the teacher's sessions matching the filter.
func (s *SessionService) List(ctx context.Context, filter models.SessionFilter) ([]models.Session, *models.Pagination, error) {
	sessions, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sessions")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 500 {
		size = 200
	}

	return sessions, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// Get fetches one session owned by the teacher.
func (s *SessionService) Get(ctx context.Context, teacherID, id string) (*models.Session, error) {
	session, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session")
	}
	if session.TeacherID != teacherID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "session not found")
	}
	return session, nil
}

// Create validates and stores a new session. Start and end clocks are
// combined with the request date into concrete timestamps.
func (s *SessionService) Create(ctx context.Context, teacherID string, req models.CreateSessionRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}

	day, err := planner.ParseDayKey(req.Date)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session date")
	}

	start, err := combineClock(day, req.StartClock)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid start time")
	}
	end, err := combineClock(day, req.EndClock)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid end time")
	}
	if !end.After(start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end time must be after start time")
	}

	student, err := s.students.FindByID(ctx, req.StudentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown student")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}
	if student.TeacherID != teacherID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "unknown student")
	}

	session := &models.Session{
		TeacherID:   teacherID,
		StudentID:   student.ID,
		StudentName: student.FullName,
		Subject:     req.Subject,
		Topic:       req.Topic,
		StartTime:   start,
		EndTime:     end,
	}

	if err := s.repo.Create(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create session")
	}

	s.logger.Info("session created",
		zap.String("session_id", session.ID),
		zap.String("student_id", session.StudentID),
		zap.String("day", day.String()))

	return session, nil
}

// Update applies a partial update to an existing session. Clock-only updates
// replace the hour and minute while keeping the session on its original day.
func (s *SessionService) Update(ctx context.Context, teacherID, id string, req models.UpdateSessionRequest) (*models.Session, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session payload")
	}

	session, err := s.Get(ctx, teacherID, id)
	if err != nil {
		return nil, err
	}

	if req.StudentID != nil && *req.StudentID != session.StudentID {
		student, err := s.students.FindByID(ctx, *req.StudentID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, appErrors.Clone(appErrors.ErrValidation, "unknown student")
			}
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
		}
		if student.TeacherID != teacherID {
			return nil, appErrors.Clone(appErrors.ErrValidation, "unknown student")
		}
		session.StudentID = student.ID
		session.StudentName = student.FullName
	}
	if req.Subject != nil {
		session.Subject = *req.Subject
	}
	if req.Topic != nil {
		session.Topic = *req.Topic
	}

	day := planner.KeyOf(session.StartTime)
	if req.Date != nil {
		day, err = planner.ParseDayKey(*req.Date)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid session date")
		}
	}

	startClock := session.StartTime.Format(clockLayout)
	if req.StartClock != nil {
		startClock = *req.StartClock
	}
	endClock := session.EndTime.Format(clockLayout)
	if req.EndClock != nil {
		endClock = *req.EndClock
	}

	start, err := combineClock(day, startClock)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid start time")
	}
	end, err := combineClock(day, endClock)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid end time")
	}
	if !end.After(start) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "end time must be after start time")
	}
	session.StartTime = start
	session.EndTime = end

	if err := s.repo.Update(ctx, session); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update session")
	}

	return session, nil
}

// Delete removes a session owned by the teacher.
func (s *SessionService) Delete(ctx context.Context, teacherID, id string) error {
	if _, err := s.Get(ctx, teacherID, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete session")
	}
	s.logger.Info("session deleted", zap.String("session_id", id))
	return nil
}

func combineClock(day planner.DayKey, clock string) (time.Time, error) {
	parsed, err := time.Parse(clockLayout, clock)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(day.Year, day.Month, day.Day, parsed.Hour(), parsed.Minute(), 0, 0, time.UTC), nil
}
