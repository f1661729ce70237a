package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/justute/tutorboard-api/internal/models"
	appErrors "github.com/justute/tutorboard-api/pkg/errors"
	"github.com/justute/tutorboard-api/pkg/storage"
)

func newExportTestService(t *testing.T, repo *mockSessionRepo) *ExportService {
	t.Helper()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	signer := storage.NewSignedURLSigner("test-secret", time.Hour)
	svc := NewExportService(repo, store, signer, ExportServiceConfig{
		APIPrefix: "/api",
		Workers:   1,
	}, validator.New(), zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	svc.Start(ctx)
	t.Cleanup(func() {
		cancel()
		svc.Stop()
	})
	return svc
}

func waitForJob(t *testing.T, svc *ExportService, teacherID, id string) *models.ExportJob {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		job, err := svc.Job(teacherID, id)
		require.NoError(t, err)
		if job.Status == models.ExportStatusDone || job.Status == models.ExportStatusFailed {
			return job
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("export job did not finish")
	return nil
}

func TestExportServiceLifecycle(t *testing.T) {
	day := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	repo := agendaRepoWith(agendaSession("s1", day, 9))
	svc := newExportTestService(t, repo)

	job, err := svc.Enqueue(context.Background(), "t1", models.CreateExportRequest{
		From:   "2024-03-01",
		To:     "2024-03-31",
		Format: "csv",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ExportStatusPending, job.Status)

	finished := waitForJob(t, svc, "t1", job.ID)
	require.Equal(t, models.ExportStatusDone, finished.Status)
	assert.NotEmpty(t, finished.DownloadURL)
	require.NotNil(t, finished.ExpiresAt)

	token := finished.DownloadURL[len("/api/export/"):]
	file, contentType, err := svc.OpenByToken(token)
	require.NoError(t, err)
	defer file.Close()

	assert.Equal(t, "text/csv", contentType)
	payload, err := io.ReadAll(file)
	require.NoError(t, err)
	assert.Contains(t, string(payload), "2024-03-15,09:00,10:00,Student One,Math,Algebra")
}

func TestExportServiceRejectsInvalidRequest(t *testing.T) {
	svc := newExportTestService(t, newMockSessionRepo())

	_, err := svc.Enqueue(context.Background(), "t1", models.CreateExportRequest{
		From:   "2024-03-31",
		To:     "2024-03-31",
		Format: "xml",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestExportServiceHidesForeignJobs(t *testing.T) {
	svc := newExportTestService(t, newMockSessionRepo())

	job, err := svc.Enqueue(context.Background(), "t1", models.CreateExportRequest{
		From:   "2024-03-01",
		To:     "2024-03-31",
		Format: "csv",
	})
	require.NoError(t, err)

	_, err = svc.Job("t2", job.ID)
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestExportServiceRejectsBadToken(t *testing.T) {
	svc := newExportTestService(t, newMockSessionRepo())

	_, _, err := svc.OpenByToken("not-a-token")
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrForbidden))
}
