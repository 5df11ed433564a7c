package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"
)

type fakeChannel struct {
	exchange string
	key      string
	msg      amqp091.Publishing
	err      error
	closed   bool
}

func (c *fakeChannel) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	c.exchange, c.key, c.msg = exchange, key, msg
	return c.err
}

func (c *fakeChannel) Close() error {
	c.closed = true
	return nil
}

func TestNew(t *testing.T) {
	ev, err := New(ExpenseAdded, map[string]any{"expense_id": 4})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if _, err := uuid.Parse(ev.ID); err != nil {
		t.Errorf("id %q is not a uuid", ev.ID)
	}
	if ev.Type != ExpenseAdded {
		t.Errorf("type = %q", ev.Type)
	}
	if string(ev.Payload) != `{"expense_id":4}` {
		t.Errorf("payload = %s", ev.Payload)
	}
	if ev.OccurredAt.IsZero() {
		t.Error("occurred_at not set")
	}
}

func TestNewRejectsUnmarshalablePayload(t *testing.T) {
	if _, err := New(FriendAdded, func() {}); err == nil {
		t.Error("expected marshal error")
	}
}

func TestAMQPPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &AMQPPublisher{channel: ch, exchange: "splitmate.events"}

	ev, _ := New(SettlementRecorded, map[string]int{"settlement_id": 9})
	ev.RequestID = "req-1"
	if err := p.Publish(context.Background(), ev); err != nil {
		t.Fatalf("Publish failed: %v", err)
	}

	if ch.exchange != "splitmate.events" || ch.key != SettlementRecorded {
		t.Errorf("routed to %s/%s", ch.exchange, ch.key)
	}
	if ch.msg.MessageId != ev.ID || ch.msg.CorrelationId != "req-1" {
		t.Errorf("ids = %q/%q", ch.msg.MessageId, ch.msg.CorrelationId)
	}
	if ch.msg.DeliveryMode != amqp091.Persistent {
		t.Error("message should be persistent")
	}

	var decoded Event
	if err := json.Unmarshal(ch.msg.Body, &decoded); err != nil {
		t.Fatalf("body is not an event: %v", err)
	}
	if decoded.ID != ev.ID || decoded.Type != ev.Type {
		t.Errorf("decoded = %+v", decoded)
	}
}

func TestAMQPPublisher_PublishError(t *testing.T) {
	boom := errors.New("channel closed")
	p := &AMQPPublisher{channel: &fakeChannel{err: boom}, exchange: "x"}

	ev, _ := New(FriendDeleted, nil)
	if err := p.Publish(context.Background(), ev); !errors.Is(err, boom) {
		t.Errorf("err = %v, want wrapped %v", err, boom)
	}
}

func TestAMQPPublisher_Close(t *testing.T) {
	ch := &fakeChannel{}
	p := &AMQPPublisher{channel: ch}
	if err := p.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if !ch.closed {
		t.Error("channel not closed")
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	var pub Publisher = &r
	for _, typ := range []string{FriendAdded, ExpenseAdded} {
		ev, _ := New(typ, nil)
		_ = pub.Publish(context.Background(), ev)
	}
	got := r.Types()
	if len(got) != 2 || got[0] != FriendAdded || got[1] != ExpenseAdded {
		t.Errorf("types = %v", got)
	}
}
