package events

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	kgo "github.com/segmentio/kafka-go"
)

// Producer publishes domain events. Services depend on this interface so
// tests can swap in a recorder.
type Producer interface {
	Publish(ctx context.Context, topic string, v any) error
	Close() error
}

type producer struct {
	w *kgo.Writer
}

// NewProducer creates a Kafka producer with configurable durability.
// Env overrides (optional):
//   - KAFKA_BOOTSTRAP_SERVERS: "host1:9092,host2:9092" (fallback to arg)
//   - KAFKA_REQUIRED_ACKS: "none" | "one" | "all" (default: "one")
//   - KAFKA_ASYNC: "true" | "false" (default: "false")
func NewProducer(bootstrapServers string) (Producer, error) {
	addr := strings.TrimSpace(bootstrapServers)
	if addr == "" {
		addr = strings.TrimSpace(os.Getenv("KAFKA_BOOTSTRAP_SERVERS"))
	}
	if addr == "" {
		addr = "kafka:9092"
	}

	acksStr := strings.ToLower(strings.TrimSpace(os.Getenv("KAFKA_REQUIRED_ACKS")))
	var requiredAcks kgo.RequiredAcks
	switch acksStr {
	case "none":
		requiredAcks = kgo.RequireNone
	case "all":
		requiredAcks = kgo.RequireAll
	default:
		requiredAcks = kgo.RequireOne
	}

	w := &kgo.Writer{
		Addr:                   kgo.TCP(strings.Split(addr, ",")...),
		Balancer:               &kgo.LeastBytes{},
		RequiredAcks:           requiredAcks,
		Async:                  strings.EqualFold(os.Getenv("KAFKA_ASYNC"), "true"),
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return &producer{w: w}, nil
}

func (p *producer) Publish(ctx context.Context, topic string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.w.WriteMessages(ctx, kgo.Message{Topic: topic, Value: b, Time: time.Now()})
}

func (p *producer) Close() error { return p.w.Close() }

// Nop discards events; used when the broker is disabled (tests, local runs).
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }
func (Nop) Close() error                               { return nil }
