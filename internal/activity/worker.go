package activity

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
)

// ErrInboxFull is returned by Emit when the worker cannot keep up.
var ErrInboxFull = errors.New("activity inbox full")

// Sink receives serialized events after they are persisted. The Kafka
// producer satisfies this; tests use a recording sink.
type Sink interface {
	Publish(ctx context.Context, key string, payload []byte) error
}

// Worker consumes events from a channel, persists them, and fans out to the
// sink. One worker goroutine keeps ordering per process.
type Worker struct {
	store  Store
	sink   Sink
	inbox  <-chan Event
	logger *slog.Logger
}

func NewWorker(store Store, sink Sink, inbox <-chan Event, logger *slog.Logger) *Worker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Worker{store: store, sink: sink, inbox: inbox, logger: logger}
}

// Run processes events until ctx is cancelled, then drains whatever is
// already queued. Store or sink failures are logged, never fatal; losing an
// activity record must not take the service down.
func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			w.drain()
			return ctx.Err()
		case event := <-w.inbox:
			w.handle(ctx, event)
		}
	}
}

func (w *Worker) drain() {
	for {
		select {
		case event := <-w.inbox:
			w.handle(context.Background(), event)
		default:
			return
		}
	}
}

func (w *Worker) handle(ctx context.Context, event Event) {
	if err := w.store.Append(ctx, event); err != nil {
		w.logger.ErrorContext(ctx, "failed to append activity event",
			"action", string(event.Action),
			"error", err,
		)
		return
	}
	if w.sink == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		w.logger.ErrorContext(ctx, "failed to marshal activity event", "error", err)
		return
	}
	if err := w.sink.Publish(ctx, event.UserID.String(), payload); err != nil {
		w.logger.ErrorContext(ctx, "failed to publish activity event",
			"action", string(event.Action),
			"error", err,
		)
	}
}
