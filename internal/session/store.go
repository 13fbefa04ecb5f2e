package session

import (
	"sync"
	"time"

	"httpchain/internal/logging"
)

// Store is the registry of sessions. It is owned by the application and
// passed to every operation that reads or mutates session state; sessions
// accumulate for the life of the Store with no eviction.
//
// All methods are safe for concurrent use. Appends within one session are
// serialized by the store mutex, so log order always reflects append order.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
	now      func() time.Time
}

// NewStore creates an empty session store.
func NewStore() *Store {
	return NewStoreWithClock(time.Now)
}

// NewStoreWithClock creates a store using the given clock. Tests inject a
// deterministic clock here.
func NewStoreWithClock(now func() time.Time) *Store {
	return &Store{
		sessions: make(map[string]*Session),
		now:      now,
	}
}

// GetOrCreate returns the session for id, lazily creating it with status
// running and an empty log on first use.
func (s *Store) GetOrCreate(id string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getOrCreateLocked(id)
}

func (s *Store) getOrCreateLocked(id string) *Session {
	if sess, ok := s.sessions[id]; ok {
		return sess
	}
	sess := &Session{
		ID:        id,
		StartTime: s.now(),
		Status:    StatusRunning,
	}
	s.sessions[id] = sess
	logging.Logf(logging.Debug, "Created session '%s'", id)
	return sess
}

// Get returns a snapshot of the session for id, or false when no session
// exists. The snapshot's log slice is a copy; callers may iterate it
// without holding up concurrent appends.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, false
	}
	snapshot := *sess
	snapshot.Logs = make([]LogEntry, len(sess.Logs))
	copy(snapshot.Logs, sess.Logs)
	return &snapshot, true
}

// Append adds one log entry to the session for id, creating the session
// if needed. Entries are stamped with the store clock when the caller
// left Timestamp unset.
func (s *Store) Append(id string, entry LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.getOrCreateLocked(id)
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now()
	}
	sess.Logs = append(sess.Logs, entry)
}

// SetStatus transitions the session for id. Completed and failed both
// stamp the end time and execution duration.
func (s *Store) SetStatus(id string, status Status) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess := s.getOrCreateLocked(id)
	sess.Status = status
	if status == StatusCompleted || status == StatusFailed {
		end := s.now()
		sess.EndTime = &end
		sess.ExecutionTimeMs = end.Sub(sess.StartTime).Milliseconds()
	}
}

// Now returns the store's current clock reading. The chain runner uses it
// so step timestamps and log timestamps share one clock.
func (s *Store) Now() time.Time {
	return s.now()
}
