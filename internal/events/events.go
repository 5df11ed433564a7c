// Package events publishes ledger change notifications.
package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Event types double as AMQP routing keys.
const (
	FriendAdded        = "friend.added"
	FriendDeleted      = "friend.deleted"
	ExpenseAdded       = "expense.added"
	ExpenseDeleted     = "expense.deleted"
	SettlementRecorded = "settlement.recorded"
	SettlementDeleted  = "settlement.deleted"
)

// Event is the envelope published for every ledger mutation.
type Event struct {
	ID         string          `json:"id"`
	Type       string          `json:"type"`
	OccurredAt time.Time       `json:"occurred_at"`
	RequestID  string          `json:"request_id,omitempty"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// New builds an event with a fresh id. payload is marshalled to JSON.
func New(eventType string, payload any) (Event, error) {
	ev := Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
	}
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return Event{}, err
		}
		ev.Payload = body
	}
	return ev, nil
}

// Publisher delivers ledger events.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *Recorder) Publish(_ context.Context, ev Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
	return nil
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}

func (r *Recorder) Close() error { return nil }

// Types lists the recorded event types in publish order.
func (r *Recorder) Types() []string {
	events := r.Events()
	types := make([]string, len(events))
	for i, ev := range events {
		types[i] = ev.Type
	}
	return types
}
