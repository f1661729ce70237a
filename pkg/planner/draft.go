package planner

import (
	"strings"
	"time"

	appErrors "github.com/justute/tutorboard-api/pkg/errors"
)

// Editable field names accepted by Draft.WithField.
const (
	FieldStudentID = "studentId"
	FieldSubject   = "subject"
	FieldTopic     = "topic"
	FieldStartTime = "startTime"
	FieldEndTime   = "endTime"
)

// Draft is a working copy of a session's editable fields. It lives outside
// the Store and has no effect on it until committed through the Planner;
// discarding a draft is simply dropping the value.
type Draft struct {
	ID          string
	StudentID   string
	StudentName string
	Subject     string
	Topic       string
	StartTime   time.Time
	EndTime     time.Time
}

// NewDraft returns a create draft for the given day with the dashboard's
// default 09:00-10:00 slot.
func NewDraft(day DayKey) Draft {
	base := day.Date(time.Local)
	return Draft{
		StartTime: base.Add(9 * time.Hour),
		EndTime:   base.Add(10 * time.Hour),
	}
}

// DraftOf copies a session's editable fields into an edit draft.
func DraftOf(s Session) Draft {
	return Draft{
		ID:          s.ID,
		StudentID:   s.StudentID,
		StudentName: s.StudentName,
		Subject:     s.Subject,
		Topic:       s.Topic,
		StartTime:   s.StartTime,
		EndTime:     s.EndTime,
	}
}

// IsNew reports whether committing the draft creates a session.
func (d Draft) IsNew() bool {
	return d.ID == ""
}

// WithField returns a copy with one editable field replaced. Time fields
// take a wall-clock HH:MM value and keep the draft's own date: only the
// hour and minute components change, never the day. An unknown name fails
// with INVALID_FIELD.
func (d Draft) WithField(name, value string) (Draft, error) {
	switch name {
	case FieldStudentID:
		d.StudentID = value
	case FieldSubject:
		d.Subject = value
	case FieldTopic:
		d.Topic = value
	case FieldStartTime:
		t, err := withClock(d.StartTime, value)
		if err != nil {
			return d, err
		}
		d.StartTime = t
	case FieldEndTime:
		t, err := withClock(d.EndTime, value)
		if err != nil {
			return d, err
		}
		d.EndTime = t
	default:
		return d, appErrors.Clone(appErrors.ErrInvalidField, "unknown editable field "+name)
	}
	return d, nil
}

// Validate checks the required fields before any network call: studentId,
// subject and both times must be set; topic is optional.
func (d Draft) Validate() error {
	var missing []string
	if strings.TrimSpace(d.StudentID) == "" {
		missing = append(missing, FieldStudentID)
	}
	if strings.TrimSpace(d.Subject) == "" {
		missing = append(missing, FieldSubject)
	}
	if d.StartTime.IsZero() {
		missing = append(missing, FieldStartTime)
	}
	if d.EndTime.IsZero() {
		missing = append(missing, FieldEndTime)
	}
	if len(missing) > 0 {
		return appErrors.Clone(appErrors.ErrValidation, "missing required fields: "+strings.Join(missing, ", "))
	}
	return nil
}

// StartClock and EndClock render the times as HH:MM for form display.
func (d Draft) StartClock() string { return d.StartTime.Format("15:04") }
func (d Draft) EndClock() string   { return d.EndTime.Format("15:04") }

// withClock replaces the hour and minute of base with the HH:MM value.
// The date always comes from base, never from the current day.
func withClock(base time.Time, clock string) (time.Time, error) {
	parsed, err := time.Parse("15:04", clock)
	if err != nil {
		return base, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid time of day "+clock)
	}
	y, m, d := base.Date()
	return time.Date(y, m, d, parsed.Hour(), parsed.Minute(), 0, 0, base.Location()), nil
}
