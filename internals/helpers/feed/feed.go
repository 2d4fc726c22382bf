// Package feed publishes change records for events so other services can follow
// the activity calendar without polling the database.
package feed

import (
	"context"
	"log"
	"time"

	json "github.com/goccy/go-json"
	"github.com/google/uuid"
	sdk "github.com/segmentio/kafka-go"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

type Change struct {
	Entity     string      `json:"entity"`
	Action     string      `json:"action"`
	IDs        []uuid.UUID `json:"ids"`
	OccurredAt time.Time   `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, change Change) error
	Close() error
}

// Nop drops every change.
type Nop struct{}

func (Nop) Publish(context.Context, Change) error { return nil }
func (Nop) Close() error                          { return nil }

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...sdk.Message) error
	Close() error
}

type KafkaPublisher struct {
	writer messageWriter
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	writer := &sdk.Writer{
		Addr:         sdk.TCP(brokers...),
		Topic:        topic,
		RequiredAcks: sdk.RequireAll,
		Balancer:     &sdk.LeastBytes{},
		BatchTimeout: 50 * time.Millisecond,
	}
	return &KafkaPublisher{writer: writer}
}

// Publish writes one message per changed id, keyed by id so that changes of
// the same event land in the same partition.
func (p *KafkaPublisher) Publish(ctx context.Context, change Change) error {
	if change.OccurredAt.IsZero() {
		change.OccurredAt = time.Now()
	}
	msgs := make([]sdk.Message, 0, len(change.IDs))
	for _, id := range change.IDs {
		single := change
		single.IDs = []uuid.UUID{id}
		serialized, err := json.Marshal(single)
		if err != nil {
			return err
		}
		msgs = append(msgs, sdk.Message{
			Key:   []byte(id.String()),
			Value: serialized,
		})
	}
	if len(msgs) == 0 {
		return nil
	}
	return p.writer.WriteMessages(ctx, msgs...)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// New returns a Kafka publisher, or Nop when no brokers are configured.
func New(brokers []string, topic string) Publisher {
	if len(brokers) == 0 {
		log.Println("[INFO] KAFKA_BROKERS not set, event change feed disabled")
		return Nop{}
	}
	log.Printf("[INFO] event change feed -> kafka topic=%q brokers=%v", topic, brokers)
	return NewKafkaPublisher(brokers, topic)
}
