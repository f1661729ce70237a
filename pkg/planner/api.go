// Package planner holds the client-side scheduling model of the tutor
// dashboard: the session snapshot store, day grouping, the calendar month
// grid, the per-day session cursor, draft editing and topic list handling.
// It performs no I/O of its own; the remote session API is consumed through
// the API interface.
package planner

import (
	"context"
	"time"
)

// Session is a scheduled tutoring session as seen by the dashboard. ID is
// assigned remotely and empty for unsaved drafts. Topic holds a
// delimiter-joined list of topic strings (see ParseTopics).
type Session struct {
	ID          string    `json:"id"`
	StudentID   string    `json:"student_id"`
	StudentName string    `json:"student_name"`
	Subject     string    `json:"subject"`
	Topic       string    `json:"topic"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

// CreateSessionInput carries the fields for a session create call. Date is
// the calendar day (YYYY-MM-DD); StartClock and EndClock are wall-clock
// HH:MM values on that day.
type CreateSessionInput struct {
	StudentID  string `json:"student_id"`
	Subject    string `json:"subject"`
	Topic      string `json:"topic,omitempty"`
	Date       string `json:"date"`
	StartClock string `json:"start_time"`
	EndClock   string `json:"end_time"`
}

// UpdateSessionInput is a partial update; nil fields are left unchanged.
// A topic-only save sets Topic and nothing else.
type UpdateSessionInput struct {
	StudentID *string    `json:"student_id,omitempty"`
	Subject   *string    `json:"subject,omitempty"`
	Topic     *string    `json:"topic,omitempty"`
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`
}

// API is the remote session store the planner drives. Implementations must
// treat every call as all-or-nothing: on error the server state is assumed
// unchanged and the caller retries.
type API interface {
	ListSessions(ctx context.Context) ([]Session, error)
	CreateSession(ctx context.Context, in CreateSessionInput) (*Session, error)
	UpdateSession(ctx context.Context, id string, in UpdateSessionInput) (*Session, error)
	DeleteSession(ctx context.Context, id string) error
}
