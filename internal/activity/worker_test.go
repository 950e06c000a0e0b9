package activity

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "listly/pkg/domain"
)

// recordingSink captures published payloads for assertions.
type recordingSink struct {
	mu       sync.Mutex
	payloads [][]byte
	keys     []string
}

func (s *recordingSink) Publish(_ context.Context, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keys = append(s.keys, key)
	s.payloads = append(s.payloads, payload)
	return nil
}

func (s *recordingSink) snapshot() ([]string, [][]byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.keys...), append([][]byte(nil), s.payloads...)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPublisher_StampsTimestamp(t *testing.T) {
	inbox := make(chan Event, 1)
	p := NewPublisher(inbox)

	require.NoError(t, p.Emit(context.Background(), Event{
		UserID: id.NewUserID(),
		Action: ActionListCreated,
	}))

	event := <-inbox
	assert.False(t, event.Timestamp.IsZero())
}

func TestPublisher_FullInbox(t *testing.T) {
	inbox := make(chan Event, 1)
	p := NewPublisher(inbox)
	ctx := context.Background()

	require.NoError(t, p.Emit(ctx, Event{Action: ActionListCreated}))
	err := p.Emit(ctx, Event{Action: ActionListCreated})
	assert.ErrorIs(t, err, ErrInboxFull, "a full inbox drops rather than blocks")
}

func TestWorker_PersistsAndPublishes(t *testing.T) {
	inbox := make(chan Event, 8)
	store := NewInMemoryStore()
	sink := &recordingSink{}
	worker := NewWorker(store, sink, inbox, discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = worker.Run(ctx)
		close(done)
	}()

	userID := id.NewUserID()
	publisher := NewPublisher(inbox)
	require.NoError(t, publisher.Emit(ctx, Event{UserID: userID, Action: ActionListCreated, Subject: "groceries"}))
	require.NoError(t, publisher.Emit(ctx, Event{UserID: userID, Action: ActionItemAdded, Subject: "groceries"}))

	require.Eventually(t, func() bool {
		events, err := store.ListByUser(context.Background(), userID)
		return err == nil && len(events) == 2
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done

	keys, payloads := sink.snapshot()
	require.Len(t, payloads, 2)
	assert.Equal(t, userID.String(), keys[0], "records are keyed by user id")

	var decoded Event
	require.NoError(t, json.Unmarshal(payloads[0], &decoded))
	assert.Equal(t, ActionListCreated, decoded.Action)
	assert.Equal(t, "groceries", decoded.Subject)
}

func TestWorker_DrainsOnShutdown(t *testing.T) {
	inbox := make(chan Event, 8)
	store := NewInMemoryStore()
	worker := NewWorker(store, nil, inbox, discardLogger())

	userID := id.NewUserID()
	// Queue events before the worker ever runs, then cancel immediately:
	// Run must drain the backlog before returning.
	for i := 0; i < 3; i++ {
		inbox <- Event{UserID: userID, Action: ActionItemAdded, Timestamp: time.Now()}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = worker.Run(ctx)

	events, err := store.ListByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Len(t, events, 3)
}

func TestWorker_StoreFailureDoesNotStop(t *testing.T) {
	inbox := make(chan Event, 8)
	sink := &recordingSink{}
	worker := NewWorker(failingStore{}, sink, inbox, discardLogger())

	inbox <- Event{UserID: id.NewUserID(), Action: ActionItemAdded}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = worker.Run(ctx)

	_, payloads := sink.snapshot()
	assert.Empty(t, payloads, "events that fail to persist are not published")
}

type failingStore struct{}

func (failingStore) Append(context.Context, Event) error { return assert.AnError }
func (failingStore) ListByUser(context.Context, id.UserID) ([]Event, error) {
	return nil, assert.AnError
}
