package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock returns timestamps advancing by step per call.
func fakeClock(start time.Time, step time.Duration) func() time.Time {
	current := start
	return func() time.Time {
		t := current
		current = current.Add(step)
		return t
	}
}

func TestGetOrCreateIsLazy(t *testing.T) {
	store := NewStore()

	sess := store.GetOrCreate("s1")
	require.NotNil(t, sess)
	assert.Equal(t, "s1", sess.ID)
	assert.Equal(t, StatusRunning, sess.Status)
	assert.Empty(t, sess.Logs)
	assert.False(t, sess.StartTime.IsZero())

	again := store.GetOrCreate("s1")
	assert.Same(t, sess, again, "same id must resolve to the same record")
}

func TestGetUnknownSession(t *testing.T) {
	store := NewStore()
	_, ok := store.Get("nope")
	assert.False(t, ok)
}

func TestAppendPreservesOrder(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewStoreWithClock(fakeClock(start, time.Second))

	store.Append("s1", LogEntry{Type: EntryRequest, Origin: OriginSingle})
	store.Append("s1", LogEntry{Type: EntryRequest, Origin: OriginChain})
	store.Append("s1", LogEntry{Type: EntryChain})

	sess, ok := store.Get("s1")
	require.True(t, ok)
	require.Len(t, sess.Logs, 3)
	assert.Equal(t, EntryRequest, sess.Logs[0].Type)
	assert.Equal(t, EntryChain, sess.Logs[2].Type)

	// Entries carry non-decreasing timestamps in append order.
	for i := 1; i < len(sess.Logs); i++ {
		assert.False(t, sess.Logs[i].Timestamp.Before(sess.Logs[i-1].Timestamp))
	}
}

func TestAppendKeepsCallerTimestamp(t *testing.T) {
	store := NewStore()
	stamp := time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	store.Append("s1", LogEntry{Type: EntryRequest, Timestamp: stamp})

	sess, _ := store.Get("s1")
	require.Len(t, sess.Logs, 1)
	assert.Equal(t, stamp, sess.Logs[0].Timestamp)
}

func TestSetStatusStampsCompletion(t *testing.T) {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	store := NewStoreWithClock(fakeClock(start, 500*time.Millisecond))

	store.GetOrCreate("s1")
	store.SetStatus("s1", StatusCompleted)

	sess, ok := store.Get("s1")
	require.True(t, ok)
	assert.Equal(t, StatusCompleted, sess.Status)
	require.NotNil(t, sess.EndTime)
	assert.Equal(t, int64(500), sess.ExecutionTimeMs)
}

func TestGetReturnsSnapshot(t *testing.T) {
	store := NewStore()
	store.Append("s1", LogEntry{Type: EntryRequest})

	snapshot, ok := store.Get("s1")
	require.True(t, ok)
	require.Len(t, snapshot.Logs, 1)

	store.Append("s1", LogEntry{Type: EntryChain})
	assert.Len(t, snapshot.Logs, 1, "snapshot must not observe later appends")

	fresh, _ := store.Get("s1")
	assert.Len(t, fresh.Logs, 2)
}

func TestSessionsAreIndependent(t *testing.T) {
	store := NewStore()
	store.Append("a", LogEntry{Type: EntryRequest})
	store.Append("b", LogEntry{Type: EntryRequest})
	store.Append("a", LogEntry{Type: EntryRequest})

	a, _ := store.Get("a")
	b, _ := store.Get("b")
	assert.Len(t, a.Logs, 2)
	assert.Len(t, b.Logs, 1)
}
