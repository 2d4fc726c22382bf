package feed

import (
	"context"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	sdk "github.com/segmentio/kafka-go"
)

type recordingWriter struct {
	msgs   []sdk.Message
	closed bool
}

func (w *recordingWriter) WriteMessages(_ context.Context, msgs ...sdk.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func TestKafkaPublisherWritesOneMessagePerID(t *testing.T) {
	w := &recordingWriter{}
	p := &KafkaPublisher{writer: w}
	a, b := uuid.New(), uuid.New()
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	if err := p.Publish(context.Background(), Change{Entity: "event", Action: ActionDeleted, IDs: []uuid.UUID{a, b}, OccurredAt: at}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(w.msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(w.msgs))
	}
	if string(w.msgs[1].Key) != b.String() {
		t.Fatalf("unexpected key %q", w.msgs[1].Key)
	}

	var decoded Change
	if err := json.Unmarshal(w.msgs[0].Value, &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Action != ActionDeleted || len(decoded.IDs) != 1 || decoded.IDs[0] != a || !decoded.OccurredAt.Equal(at) {
		t.Fatalf("unexpected payload %+v", decoded)
	}

	if err := p.Close(); err != nil || !w.closed {
		t.Fatalf("close: %v", err)
	}
}

func TestKafkaPublisherSkipsEmptyChange(t *testing.T) {
	w := &recordingWriter{}
	p := &KafkaPublisher{writer: w}
	if err := p.Publish(context.Background(), Change{Entity: "event", Action: ActionUpdated}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if len(w.msgs) != 0 {
		t.Fatalf("expected no messages, got %d", len(w.msgs))
	}
}

func TestNewWithoutBrokersIsNop(t *testing.T) {
	if _, ok := New(nil, "").(Nop); !ok {
		t.Fatalf("expected Nop publisher without brokers")
	}
}
