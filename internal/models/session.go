package models

import "time"

// Session represents one tutoring session on the teacher's schedule.
// StudentName is denormalized from the students table for display.
type Session struct {
	ID          string    `db:"id" json:"id"`
	TeacherID   string    `db:"teacher_id" json:"teacher_id"`
	StudentID   string    `db:"student_id" json:"student_id"`
	StudentName string    `db:"student_name" json:"student_name"`
	Subject     string    `db:"subject" json:"subject"`
	Topic       string    `db:"topic" json:"topic"`
	StartTime   time.Time `db:"start_time" json:"start_time"`
	EndTime     time.Time `db:"end_time" json:"end_time"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// SessionFilter describes query params for listing sessions.
type SessionFilter struct {
	TeacherID string
	StudentID string
	From      *time.Time
	To        *time.Time
	Page      int
	PageSize  int
}
