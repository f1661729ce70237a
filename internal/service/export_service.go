package service

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/justute/tutorboard-api/internal/models"
	appErrors "github.com/justute/tutorboard-api/pkg/errors"
	"github.com/justute/tutorboard-api/pkg/export"
	"github.com/justute/tutorboard-api/pkg/jobs"
	"github.com/justute/tutorboard-api/pkg/storage"
)

type fileStorage interface {
	Save(filename string, data []byte) (string, error)
	Open(filename string) (*os.File, error)
	Delete(filename string) error
	CleanupOlderThan(ttl time.Duration) ([]string, error)
}

// ExportServiceConfig tunes export behaviour.
type ExportServiceConfig struct {
	APIPrefix string
	ResultTTL time.Duration
	Workers   int
}

// ExportService renders schedule exports in the background. Jobs are held in
// memory; a restart drops pending jobs but finished files stay on disk until
// cleanup.
type ExportService struct {
	sessions  agendaSessionRepository
	storage   fileStorage
	signer    *storage.SignedURLSigner
	csv       *export.CSVExporter
	pdf       *export.PDFExporter
	queue     *jobs.Queue
	validator *validator.Validate
	logger    *zap.Logger
	cfg       ExportServiceConfig

	mu   sync.Mutex
	jobs map[string]*models.ExportJob
}

// NewExportService constructs an ExportService and its worker queue.
func NewExportService(sessions agendaSessionRepository, store fileStorage, signer *storage.SignedURLSigner, cfg ExportServiceConfig, validate *validator.Validate, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if cfg.ResultTTL <= 0 {
		cfg.ResultTTL = 24 * time.Hour
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}

	s := &ExportService{
		sessions:  sessions,
		storage:   store,
		signer:    signer,
		csv:       export.NewCSVExporter(),
		pdf:       export.NewPDFExporter(),
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		jobs:      make(map[string]*models.ExportJob),
	}
	s.queue = jobs.NewQueue("schedule-exports", s.handle, jobs.QueueConfig{
		Workers: cfg.Workers,
		Logger:  logger,
	})
	return s
}

// Start launches the worker queue.
func (s *ExportService) Start(ctx context.Context) {
	s.queue.Start(ctx)
}

// Stop drains the worker queue.
func (s *ExportService) Stop() {
	s.queue.Stop()
}

// Enqueue validates the request and queues a schedule export for the
// teacher. The returned job is pending; poll Job for completion.
func (s *ExportService) Enqueue(ctx context.Context, teacherID string, req models.CreateExportRequest) (*models.ExportJob, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export payload")
	}

	from, err := time.Parse("2006-01-02", req.From)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid from date")
	}
	to, err := time.Parse("2006-01-02", req.To)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid to date")
	}
	to = to.AddDate(0, 0, 1)
	if !to.After(from) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "export range must not be empty")
	}

	job := &models.ExportJob{
		ID:        uuid.NewString(),
		TeacherID: teacherID,
		Status:    models.ExportStatusPending,
		Format:    req.Format,
		From:      from,
		To:        to,
		CreatedAt: time.Now().UTC(),
	}

	s.mu.Lock()
	s.jobs[job.ID] = job
	s.mu.Unlock()

	if err := s.queue.Enqueue(jobs.Job{ID: job.ID, Type: "schedule_export"}); err != nil {
		s.fail(job.ID, err)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to queue export")
	}

	copied := *job
	return &copied, nil
}

// Job returns the current state of a job owned by the teacher.
func (s *ExportService) Job(teacherID, id string) (*models.ExportJob, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok || job.TeacherID != teacherID {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "export job not found")
	}
	copied := *job
	return &copied, nil
}

// OpenByToken validates a signed download token and opens the underlying
// file.
func (s *ExportService) OpenByToken(token string) (*os.File, string, error) {
	jobID, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, "invalid download token")
	}

	s.mu.Lock()
	job, ok := s.jobs[jobID]
	s.mu.Unlock()
	if !ok || job.Status != models.ExportStatusDone {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "export not available")
	}

	file, err := s.storage.Open(relPath)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "export file missing")
	}
	return file, contentTypeFor(job.Format), nil
}

// Cleanup removes export files older than the configured TTL.
func (s *ExportService) Cleanup() ([]string, error) {
	return s.storage.CleanupOlderThan(s.cfg.ResultTTL)
}

func (s *ExportService) handle(ctx context.Context, queued jobs.Job) error {
	s.mu.Lock()
	job, ok := s.jobs[queued.ID]
	if !ok {
		s.mu.Unlock()
		return nil
	}
	job.Status = models.ExportStatusRunning
	teacherID, from, to, format := job.TeacherID, job.From, job.To, job.Format
	s.mu.Unlock()

	sessions, _, err := s.sessions.List(ctx, models.SessionFilter{TeacherID: teacherID, From: &from, To: &to, PageSize: 500})
	if err != nil {
		s.fail(queued.ID, err)
		return err
	}

	data := scheduleDataset(sessions)

	var payload []byte
	switch format {
	case "csv":
		payload, err = s.csv.Render(data)
	case "pdf":
		subtitle := fmt.Sprintf("%s to %s", from.Format("2006-01-02"), to.AddDate(0, 0, -1).Format("2006-01-02"))
		payload, err = s.pdf.Render(data, "Schedule", subtitle)
	default:
		err = fmt.Errorf("unsupported format %s", format)
	}
	if err != nil {
		s.fail(queued.ID, err)
		return err
	}

	filename := fmt.Sprintf("schedule_%s_%s.%s", teacherID, time.Now().UTC().Format("20060102_150405"), format)
	relPath, err := s.storage.Save(filename, payload)
	if err != nil {
		s.fail(queued.ID, err)
		return err
	}

	token, expiresAt, err := s.signer.Generate(queued.ID, relPath)
	if err != nil {
		s.fail(queued.ID, err)
		return err
	}

	downloadURL := fmt.Sprintf("%s/export/%s", strings.TrimRight(s.cfg.APIPrefix, "/"), token)
	now := time.Now().UTC()

	s.mu.Lock()
	if job, ok := s.jobs[queued.ID]; ok {
		job.Status = models.ExportStatusDone
		job.FilePath = relPath
		job.DownloadURL = downloadURL
		job.ExpiresAt = &expiresAt
		job.CompletedAt = &now
	}
	s.mu.Unlock()

	s.logger.Info("export completed", zap.String("job_id", queued.ID), zap.String("file", relPath))
	return nil
}

func (s *ExportService) fail(id string, err error) {
	now := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	if job, ok := s.jobs[id]; ok {
		job.Status = models.ExportStatusFailed
		job.Error = err.Error()
		job.CompletedAt = &now
	}
}

func contentTypeFor(format string) string {
	if format == "pdf" {
		return "application/pdf"
	}
	return "text/csv"
}
