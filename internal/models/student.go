package models

import "time"

// Student represents a learner the teacher holds sessions with.
type Student struct {
	ID        string    `db:"id" json:"id"`
	TeacherID string    `db:"teacher_id" json:"teacher_id"`
	FullName  string    `db:"full_name" json:"full_name"`
	Email     string    `db:"email" json:"email"`
	Phone     string    `db:"phone" json:"phone"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// StudentFilter encapsulates search parameters for listing students.
type StudentFilter struct {
	TeacherID string
	Search    string
	Active    *bool
	Page      int
	PageSize  int
}
