package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore records Remember calls for async delivery tests.
type fakeStore struct {
	mu    sync.Mutex
	calls [][]Event
	done  chan struct{}
}

func (f *fakeStore) Remember(_ context.Context, _ string, events []Event) error {
	f.mu.Lock()
	f.calls = append(f.calls, events)
	f.mu.Unlock()
	f.done <- struct{}{}
	return nil
}

func (f *fakeStore) Retrieve(context.Context, string, string, int) ([]string, error) {
	return nil, nil
}

// TestRankEntries exercises the keyword scoring used by Retrieve.
func TestRankEntries(t *testing.T) {
	entries := []string{
		`{"event_type":"challenge","details":{"challenged":"gpt"}}`,
		`{"event_type":"bluff","details":{"claim":"K","was_bluff":true}}`,
		`{"event_type":"elimination","details":{"eliminated_by":"claude"}}`,
	}

	got := rankEntries(entries, "bluff challenge", 5)
	require.Len(t, got, 2)
	// Both score two hits; the newer entry keeps its place.
	assert.Equal(t, entries[0], got[0])
	assert.Equal(t, entries[1], got[1])

	got = rankEntries(entries, "gpt", 5)
	require.Len(t, got, 1)
	assert.Equal(t, entries[0], got[0])

	assert.Empty(t, rankEntries(entries, "roulette", 5))
	assert.Empty(t, rankEntries(entries, "", 5))
}

// TestRankEntriesTopK verifies frequency ordering and the cap.
func TestRankEntriesTopK(t *testing.T) {
	got := rankEntries([]string{"a bid", "bid", "bid bid bid"}, "bid", 2)
	require.Len(t, got, 2)
	assert.Equal(t, "bid bid bid", got[0])
	assert.Equal(t, "a bid", got[1])
}

// TestRecallStoreNilReceiver verifies a nil store quietly no-ops.
func TestRecallStoreNilReceiver(t *testing.T) {
	var s *RecallStore

	err := s.Remember(context.Background(), "gpt", []Event{NewEliminationEvent("a", "b", 1)})
	require.NoError(t, err)

	got, err := s.Retrieve(context.Background(), "gpt", "anything", 3)
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, s.Close())
}

// TestRememberAsyncDelivers verifies the fire-and-forget path reaches
// the store.
func TestRememberAsyncDelivers(t *testing.T) {
	fs := &fakeStore{done: make(chan struct{}, 1)}
	events := []Event{NewChallengeEvent("a", "b", true, "b", false, 1)}

	RememberAsync(fs, "gpt", events, nil)

	select {
	case <-fs.done:
	case <-time.After(2 * time.Second):
		t.Fatal("async remember never ran")
	}

	fs.mu.Lock()
	defer fs.mu.Unlock()
	require.Len(t, fs.calls, 1)
	assert.Equal(t, "challenge", fs.calls[0][0].Type)
}

// TestRememberAsyncNilStore must not panic or spawn anything.
func TestRememberAsyncNilStore(t *testing.T) {
	RememberAsync(nil, "gpt", []Event{NewEliminationEvent("a", "b", 1)}, nil)
}
