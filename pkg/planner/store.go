package planner

// Store holds the authoritative session snapshot as last fetched from the
// remote API. Mutation is only ever a full Load of a new snapshot; the day
// grouping is derived from it on demand and memoized until the next Load.
// Store is meant for single-threaded, event-driven use and does no locking.
type Store struct {
	snapshot []Session
	grouping map[DayKey][]Session
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{}
}

// Load atomically replaces the snapshot. Callers that refused to call Load
// after a failed fetch keep reading the previous snapshot; there is no
// partial-update path.
func (s *Store) Load(sessions []Session) {
	snapshot := make([]Session, len(sessions))
	copy(snapshot, sessions)
	s.snapshot = snapshot
	s.grouping = nil
}

// Len reports the number of sessions in the snapshot.
func (s *Store) Len() int {
	return len(s.snapshot)
}

// Snapshot returns a copy of the full session list in load order.
func (s *Store) Snapshot() []Session {
	out := make([]Session, len(s.snapshot))
	copy(out, s.snapshot)
	return out
}

// SessionsForDay returns the sessions whose start time falls on the given
// day, in snapshot order. Empty days yield an empty slice, never nil panics.
func (s *Store) SessionsForDay(key DayKey) []Session {
	return s.groups()[key]
}

// HasSessionsOnDay reports whether at least one session starts on the day.
func (s *Store) HasSessionsOnDay(key DayKey) bool {
	return len(s.groups()[key]) > 0
}

func (s *Store) groups() map[DayKey][]Session {
	if s.grouping == nil {
		s.grouping = GroupByDay(s.snapshot)
	}
	return s.grouping
}

// GroupByDay partitions sessions by the local calendar day of their start
// time. Order within a day follows the input order. The union of all groups
// is exactly the input: nothing is lost or duplicated.
func GroupByDay(sessions []Session) map[DayKey][]Session {
	grouping := make(map[DayKey][]Session)
	for _, session := range sessions {
		key := KeyOf(session.StartTime)
		grouping[key] = append(grouping[key], session)
	}
	return grouping
}
