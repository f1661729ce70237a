package models

// CreateSessionRequest creates a session from a calendar day plus wall-clock
// start and end times.
type CreateSessionRequest struct {
	StudentID  string `json:"student_id" validate:"required"`
	Subject    string `json:"subject" validate:"required"`
	Topic      string `json:"topic"`
	Date       string `json:"date" validate:"required,datetime=2006-01-02"`
	StartClock string `json:"start_clock" validate:"required,datetime=15:04"`
	EndClock   string `json:"end_clock" validate:"required,datetime=15:04"`
}

// UpdateSessionRequest carries a partial update. Nil fields are left
// untouched; clock fields keep the session on its original day.
type UpdateSessionRequest struct {
	StudentID  *string `json:"student_id,omitempty"`
	Subject    *string `json:"subject,omitempty"`
	Topic      *string `json:"topic,omitempty"`
	Date       *string `json:"date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	StartClock *string `json:"start_clock,omitempty" validate:"omitempty,datetime=15:04"`
	EndClock   *string `json:"end_clock,omitempty" validate:"omitempty,datetime=15:04"`
}
