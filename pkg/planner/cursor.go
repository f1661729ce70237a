package planner

// CursorState enumerates the day-session cursor's modes.
type CursorState int

const (
	// CursorEmpty means the selected day has no sessions.
	CursorEmpty CursorState = iota
	// CursorViewing points at one session of the selected day.
	CursorViewing
	// CursorEditing is viewing with an open edit or create form.
	CursorEditing
)

// Cursor tracks which session within the selected day is current, keeping
// the index valid as the day's list changes through creates, deletes and
// date edits. The invariant after every transition: in Viewing/Editing the
// index satisfies 0 <= index < len(day sessions); Empty iff the day has no
// sessions (except while a create form is open on an empty day).
type Cursor struct {
	store    *Store
	day      DayKey
	state    CursorState
	index    int
	creating bool
}

// NewCursor builds a cursor over the store, selecting the given day.
func NewCursor(store *Store, day DayKey) *Cursor {
	c := &Cursor{store: store}
	c.selectDay(day)
	return c
}

// Day returns the selected day.
func (c *Cursor) Day() DayKey {
	return c.day
}

// State returns the cursor mode.
func (c *Cursor) State() CursorState {
	return c.state
}

// Index returns the 0-based position within the day's session list. Its
// value is meaningless in the Empty state.
func (c *Cursor) Index() int {
	return c.index
}

// Creating reports whether an open edit form is for a new session.
func (c *Cursor) Creating() bool {
	return c.state == CursorEditing && c.creating
}

// Current returns the session under the cursor, if any.
func (c *Cursor) Current() (Session, bool) {
	sessions := c.sessions()
	if c.state == CursorEmpty || c.index >= len(sessions) {
		return Session{}, false
	}
	return sessions[c.index], true
}

// SelectDay moves to another day. The index never survives a day change:
// the cursor resets to the first session, or Empty.
func (c *Cursor) SelectDay(day DayKey) {
	if day == c.day {
		return
	}
	c.selectDay(day)
}

// Next advances to the following session of the day, saturating at the
// last index.
func (c *Cursor) Next() {
	if c.state != CursorViewing {
		return
	}
	if c.index+1 < len(c.sessions()) {
		c.index++
	}
}

// Prev steps back to the previous session, saturating at the first.
func (c *Cursor) Prev() {
	if c.state != CursorViewing {
		return
	}
	if c.index > 0 {
		c.index--
	}
}

// StartEdit opens an edit form on the current session.
func (c *Cursor) StartEdit() bool {
	if c.state != CursorViewing {
		return false
	}
	c.state = CursorEditing
	c.creating = false
	return true
}

// StartCreate opens a create form. Allowed in any state, including Empty.
func (c *Cursor) StartCreate() {
	c.state = CursorEditing
	c.creating = true
}

// CancelEdit discards the open form and returns to viewing, or Empty when
// the day has no sessions.
func (c *Cursor) CancelEdit() {
	if c.state != CursorEditing {
		return
	}
	c.creating = false
	c.state = CursorViewing
	c.reclamp()
}

// AfterDelete re-reads the day's list after the current session was
// deleted, clamping the index down so it never dangles.
func (c *Cursor) AfterDelete() {
	c.creating = false
	c.state = CursorViewing
	c.reclamp()
}

// AfterCreate selects the day's last session, which holds the newly created
// one after a refetch in server order.
func (c *Cursor) AfterCreate() {
	c.creating = false
	n := len(c.sessions())
	if n == 0 {
		c.state = CursorEmpty
		c.index = 0
		return
	}
	c.state = CursorViewing
	c.index = n - 1
}

// Reclamp restores the invariant after any snapshot reload: same index when
// still valid, clamped to the new last index when the list shrank, Empty
// when the day lost all sessions. An open edit form survives the reclamp so
// a background refresh cannot close it.
func (c *Cursor) Reclamp() {
	c.reclamp()
}

func (c *Cursor) selectDay(day DayKey) {
	c.day = day
	c.index = 0
	c.creating = false
	if len(c.sessions()) == 0 {
		c.state = CursorEmpty
	} else {
		c.state = CursorViewing
	}
}

func (c *Cursor) reclamp() {
	n := len(c.sessions())
	if n == 0 {
		if c.state == CursorEditing && c.creating {
			c.index = 0
			return
		}
		c.state = CursorEmpty
		c.index = 0
		return
	}
	if c.state != CursorEditing {
		c.state = CursorViewing
	}
	if c.index > n-1 {
		c.index = n - 1
	}
	if c.index < 0 {
		c.index = 0
	}
}

func (c *Cursor) sessions() []Session {
	return c.store.SessionsForDay(c.day)
}
