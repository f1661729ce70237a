package planner

import (
	"context"
	"time"

	"go.uber.org/zap"

	appErrors "github.com/justute/tutorboard-api/pkg/errors"
)

// Planner coordinates the store, the day cursor and the remote API: it is
// the single mutation path of the dashboard model. All mutating calls are
// serialized; a second one while the first is in flight fails fast with
// MUTATION_IN_FLIGHT and touches nothing. Every remote failure surfaces as
// REMOTE_ERROR with the snapshot, cursor and caller-held drafts exactly as
// they were, so retrying is always safe.
type Planner struct {
	api      API
	store    *Store
	cursor   *Cursor
	logger   *zap.Logger
	mutating bool
}

// New builds a planner over the remote API with today selected.
func New(api API, logger *zap.Logger) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	store := NewStore()
	return &Planner{
		api:    api,
		store:  store,
		cursor: NewCursor(store, KeyOf(time.Now())),
		logger: logger,
	}
}

// Store exposes the session snapshot for read-only derivations.
func (p *Planner) Store() *Store {
	return p.store
}

// Cursor exposes the day-session cursor.
func (p *Planner) Cursor() *Cursor {
	return p.cursor
}

// Refresh fetches the full session list and replaces the snapshot. On
// failure the previous snapshot stays in place, never partially
// overwritten. The cursor is re-clamped after every successful load so a
// late response cannot leave a dangling index.
func (p *Planner) Refresh(ctx context.Context) error {
	sessions, err := p.api.ListSessions(ctx)
	if err != nil {
		p.logger.Warn("session list fetch failed", zap.Error(err))
		return remoteErr(err, "failed to fetch sessions")
	}
	p.store.Load(sessions)
	p.cursor.Reclamp()
	return nil
}

// SelectDate moves the cursor to the calendar day of t.
func (p *Planner) SelectDate(t time.Time) {
	p.cursor.SelectDay(KeyOf(t))
}

// EditCurrent opens an edit form and returns a draft of the session under
// the cursor.
func (p *Planner) EditCurrent() (Draft, error) {
	current, ok := p.cursor.Current()
	if !ok {
		return Draft{}, appErrors.Clone(appErrors.ErrNotFound, "no session selected")
	}
	p.cursor.StartEdit()
	return DraftOf(current), nil
}

// CreateDraft opens a create form with defaults on the selected day.
func (p *Planner) CreateDraft() Draft {
	p.cursor.StartCreate()
	return NewDraft(p.cursor.Day())
}

// CancelEdit discards any open form without touching the draft's fields or
// the snapshot.
func (p *Planner) CancelEdit() {
	p.cursor.CancelEdit()
}

// CommitDraft validates and submits the draft: a create when it has no
// identifier, an update otherwise. On success the snapshot is refetched and
// the cursor moves to the created session or re-clamps at the same index.
// Validation failures are reported before any network call.
func (p *Planner) CommitDraft(ctx context.Context, d Draft) (*Session, error) {
	if err := p.beginMutation(); err != nil {
		return nil, err
	}
	defer p.endMutation()

	if err := d.Validate(); err != nil {
		return nil, err
	}

	var (
		session *Session
		err     error
	)
	if d.IsNew() {
		session, err = p.api.CreateSession(ctx, CreateSessionInput{
			StudentID:  d.StudentID,
			Subject:    d.Subject,
			Topic:      d.Topic,
			Date:       KeyOf(d.StartTime).String(),
			StartClock: d.StartClock(),
			EndClock:   d.EndClock(),
		})
		if err != nil {
			p.logger.Warn("session create failed", zap.Error(err))
			return nil, remoteErr(err, "failed to create session")
		}
	} else {
		start, end := d.StartTime, d.EndTime
		session, err = p.api.UpdateSession(ctx, d.ID, UpdateSessionInput{
			StudentID: &d.StudentID,
			Subject:   &d.Subject,
			Topic:     &d.Topic,
			StartTime: &start,
			EndTime:   &end,
		})
		if err != nil {
			p.logger.Warn("session update failed", zap.Error(err), zap.String("session_id", d.ID))
			return nil, remoteErr(err, "failed to update session")
		}
	}

	if err := p.reload(ctx); err != nil {
		return session, err
	}
	if d.IsNew() {
		p.cursor.AfterCreate()
	} else {
		p.cursor.CancelEdit()
	}
	return session, nil
}

// DeleteCurrent removes the session under the cursor and clamps the index
// down onto the shrunken list.
func (p *Planner) DeleteCurrent(ctx context.Context) error {
	current, ok := p.cursor.Current()
	if !ok {
		return appErrors.Clone(appErrors.ErrNotFound, "no session selected")
	}
	if err := p.beginMutation(); err != nil {
		return err
	}
	defer p.endMutation()

	if err := p.api.DeleteSession(ctx, current.ID); err != nil {
		p.logger.Warn("session delete failed", zap.Error(err), zap.String("session_id", current.ID))
		return remoteErr(err, "failed to delete session")
	}
	if err := p.reload(ctx); err != nil {
		return err
	}
	p.cursor.AfterDelete()
	return nil
}

// SaveTopics serializes the topic list and submits a topic-only update for
// the given session. Unsaved sessions have no identifier to address, which
// is a remote-call error by contract.
func (p *Planner) SaveTopics(ctx context.Context, sessionID string, topics []string) error {
	if sessionID == "" {
		return appErrors.Clone(appErrors.ErrRemote, "session has no identifier yet")
	}
	if err := p.beginMutation(); err != nil {
		return err
	}
	defer p.endMutation()

	joined := JoinTopics(topics)
	if _, err := p.api.UpdateSession(ctx, sessionID, UpdateSessionInput{Topic: &joined}); err != nil {
		p.logger.Warn("topic save failed", zap.Error(err), zap.String("session_id", sessionID))
		return remoteErr(err, "failed to save topics")
	}
	if err := p.reload(ctx); err != nil {
		return err
	}
	p.cursor.Reclamp()
	return nil
}

func (p *Planner) reload(ctx context.Context) error {
	sessions, err := p.api.ListSessions(ctx)
	if err != nil {
		p.logger.Warn("snapshot refetch after mutation failed", zap.Error(err))
		return remoteErr(err, "mutation applied but refetch failed")
	}
	p.store.Load(sessions)
	p.cursor.Reclamp()
	return nil
}

func (p *Planner) beginMutation() error {
	if p.mutating {
		return appErrors.Clone(appErrors.ErrMutationInFlight, "")
	}
	p.mutating = true
	return nil
}

func (p *Planner) endMutation() {
	p.mutating = false
}

func remoteErr(err error, message string) error {
	if appErrors.Is(err, appErrors.ErrRemote) {
		return err
	}
	return appErrors.Wrap(err, appErrors.ErrRemote.Code, appErrors.ErrRemote.Status, message)
}
