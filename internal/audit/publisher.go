package audit

import (
	"context"
	"time"
)

// Publisher hands events to a background worker over a buffered inbox.
// Emission is best-effort: a full inbox drops the event rather than blocking
// the request path.
type Publisher struct {
	inbox chan Event
}

func NewPublisher(buffer int) *Publisher {
	return &Publisher{inbox: make(chan Event, buffer)}
}

// Emit stamps and enqueues an event. Returns false when the inbox is full.
func (p *Publisher) Emit(event Event) bool {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	select {
	case p.inbox <- event:
		return true
	default:
		return false
	}
}

// Worker consumes audit events from the publisher's inbox and persists them.
type Worker struct {
	store Store
	inbox <-chan Event
}

func NewWorker(store Store, pub *Publisher) *Worker {
	return &Worker{store: store, inbox: pub.inbox}
}

func (w *Worker) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event := <-w.inbox:
			if err := w.store.Append(ctx, event); err != nil {
				return err
			}
		}
	}
}
