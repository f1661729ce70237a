package models

import "time"

// ExportStatus tracks a background export job through its lifecycle.
type ExportStatus string

const (
	ExportStatusPending ExportStatus = "pending"
	ExportStatusRunning ExportStatus = "running"
	ExportStatusDone    ExportStatus = "done"
	ExportStatusFailed  ExportStatus = "failed"
)

// ExportJob is one queued schedule export.
type ExportJob struct {
	ID          string       `json:"id"`
	TeacherID   string       `json:"-"`
	Status      ExportStatus `json:"status"`
	Format      string       `json:"format"`
	From        time.Time    `json:"from"`
	To          time.Time    `json:"to"`
	FilePath    string       `json:"-"`
	DownloadURL string       `json:"download_url,omitempty"`
	ExpiresAt   *time.Time   `json:"expires_at,omitempty"`
	Error       string       `json:"error,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	CompletedAt *time.Time   `json:"completed_at,omitempty"`
}

// CreateExportRequest queues a schedule export.
type CreateExportRequest struct {
	From   string `json:"from" validate:"required,datetime=2006-01-02"`
	To     string `json:"to" validate:"required,datetime=2006-01-02"`
	Format string `json:"format" validate:"required,oneof=csv pdf"`
}
