package activity

import (
	"context"
	"time"

	id "listly/pkg/domain"
)

// Store persists activity events. Implementations are append-only.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByUser(ctx context.Context, userID id.UserID) ([]Event, error)
}

// Publisher hands events to the worker's inbox. Emitting never blocks the
// request path: when the inbox is full the event is dropped rather than
// stalling a mutation.
type Publisher struct {
	inbox chan<- Event
}

func NewPublisher(inbox chan<- Event) *Publisher {
	return &Publisher{inbox: inbox}
}

// Emit queues an event, stamping the time if the caller did not.
func (p *Publisher) Emit(ctx context.Context, event Event) error {
	if p == nil {
		return nil
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case p.inbox <- event:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	default:
		return ErrInboxFull
	}
}
