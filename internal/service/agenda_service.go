package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/justute/tutorboard-api/internal/models"
	appErrors "github.com/justute/tutorboard-api/pkg/errors"
	"github.com/justute/tutorboard-api/pkg/export"
	"github.com/justute/tutorboard-api/pkg/planner"
)

const monthLayout = "2006-01"

type agendaSessionRepository interface {
	List(ctx context.Context, filter models.SessionFilter) ([]models.Session, int, error)
}

// AgendaService derives the day and month views of a teacher's schedule and
// renders schedule exports.
type AgendaService struct {
	repo   agendaSessionRepository
	cache  *CacheService
	csv    *export.CSVExporter
	pdf    *export.PDFExporter
	logger *zap.Logger
}

// NewAgendaService constructs an AgendaService.
func NewAgendaService(repo agendaSessionRepository, cache *CacheService, logger *zap.Logger) *AgendaService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AgendaService{
		repo:   repo,
		cache:  cache,
		csv:    export.NewCSVExporter(),
		pdf:    export.NewPDFExporter(),
		logger: logger,
	}
}

// Day returns the teacher's sessions on one calendar day, ordered by start
// time.
func (s *AgendaService) Day(ctx context.Context, teacherID string, day planner.DayKey) (*models.AgendaDay, error) {
	from := day.Date(time.UTC)
	to := from.AddDate(0, 0, 1)

	sessions, _, err := s.repo.List(ctx, models.SessionFilter{TeacherID: teacherID, From: &from, To: &to})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load day agenda")
	}

	return &models.AgendaDay{Date: day.String(), Sessions: sessions}, nil
}

// Month returns the 42-cell grid for the month containing ref. The grid is
// cached per teacher and month when caching is enabled.
func (s *AgendaService) Month(ctx context.Context, teacherID string, ref time.Time) (*models.AgendaMonth, error) {
	key := s.monthCacheKey(teacherID, ref)

	var cached models.AgendaMonth
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	days := planner.MonthDays(ref)
	from := days[0]
	to := days[len(days)-1].AddDate(0, 0, 1)

	sessions, _, err := s.repo.List(ctx, models.SessionFilter{TeacherID: teacherID, From: &from, To: &to})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load month agenda")
	}

	store := planner.NewStore()
	store.Load(toPlannerSessions(sessions))

	cells := planner.AnnotateGrid(days, store, time.Now().UTC())
	month := &models.AgendaMonth{
		Month: ref.Format(monthLayout),
		Cells: make([]models.AgendaCell, len(cells)),
	}
	for i, cell := range cells {
		month.Cells[i] = models.AgendaCell{
			Date:       cell.Key.String(),
			InMonth:    cell.InMonth,
			Today:      cell.Today,
			HasEvents:  cell.HasEvents,
			EventCount: cell.EventCount,
		}
	}

	if err := s.cache.Set(ctx, key, month, 0); err != nil {
		s.logger.Warn("failed to cache month agenda", zap.Error(err))
	}

	return month, nil
}

// Export renders the teacher's schedule between from and to as CSV or PDF.
func (s *AgendaService) Export(ctx context.Context, teacherID string, from, to time.Time, format string) ([]byte, string, error) {
	if !to.After(from) {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "export range must not be empty")
	}

	sessions, _, err := s.repo.List(ctx, models.SessionFilter{TeacherID: teacherID, From: &from, To: &to, PageSize: 500})
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load sessions for export")
	}

	data := scheduleDataset(sessions)

	switch format {
	case "csv":
		payload, err := s.csv.Render(data)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv export")
		}
		return payload, "text/csv", nil
	case "pdf":
		subtitle := fmt.Sprintf("%s to %s", planner.KeyOf(from).String(), planner.KeyOf(to.AddDate(0, 0, -1)).String())
		payload, err := s.pdf.Render(data, "Schedule", subtitle)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf export")
		}
		return payload, "application/pdf", nil
	default:
		return nil, "", appErrors.Clone(appErrors.ErrValidation, "unsupported export format")
	}
}

// InvalidateTeacher drops every cached agenda view of the teacher. Called
// after session mutations.
func (s *AgendaService) InvalidateTeacher(ctx context.Context, teacherID string) {
	if err := s.cache.Invalidate(ctx, fmt.Sprintf("agenda:%s:*", teacherID)); err != nil {
		s.logger.Warn("failed to invalidate agenda cache", zap.String("teacher_id", teacherID), zap.Error(err))
	}
}

func (s *AgendaService) monthCacheKey(teacherID string, ref time.Time) string {
	return fmt.Sprintf("agenda:%s:month:%s", teacherID, ref.Format(monthLayout))
}

func scheduleDataset(sessions []models.Session) export.Dataset {
	data := export.Dataset{
		Headers: []string{"Date", "Start", "End", "Student", "Subject", "Topics"},
		Rows:    make([]map[string]string, 0, len(sessions)),
	}
	for _, session := range sessions {
		data.Rows = append(data.Rows, map[string]string{
			"Date":    planner.KeyOf(session.StartTime).String(),
			"Start":   session.StartTime.Format(clockLayout),
			"End":     session.EndTime.Format(clockLayout),
			"Student": session.StudentName,
			"Subject": session.Subject,
			"Topics":  session.Topic,
		})
	}
	return data
}

func toPlannerSessions(sessions []models.Session) []planner.Session {
	out := make([]planner.Session, len(sessions))
	for i, session := range sessions {
		out[i] = planner.Session{
			ID:          session.ID,
			StudentID:   session.StudentID,
			StudentName: session.StudentName,
			Subject:     session.Subject,
			Topic:       session.Topic,
			StartTime:   session.StartTime,
			EndTime:     session.EndTime,
		}
	}
	return out
}
