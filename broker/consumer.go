package broker

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
)

// ReloadEvent asks the service to reload its catalog. Publishers usually
// send it after the upstream catalog has been edited.
type ReloadEvent struct {
	Topic     string
	Reason    string
	RequestID string
	Timestamp time.Time
}

type KafkaConsumer struct {
	reader *kafka.Reader
}

func NewKafkaConsumer(brokers []string, groupID string, topic string) *KafkaConsumer {
	return &KafkaConsumer{
		reader: kafka.NewReader(kafka.ReaderConfig{
			Brokers: brokers,
			GroupID: groupID,
			Topic:   topic,
		}),
	}
}

// Consume reads messages until ctx is cancelled, passing each decoded event
// to handler. Handler errors are logged and do not stop the loop.
func (c *KafkaConsumer) Consume(ctx context.Context, handler func(context.Context, ReloadEvent) error) error {
	defer c.reader.Close()
	for {
		m, err := c.reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			slog.Warn("kafka read error", slog.Any("error", err))
			continue
		}
		event := decodeEvent(m)
		slog.Info("kafka message consumed",
			slog.String("topic", m.Topic),
			slog.Int("partition", m.Partition),
			slog.Int64("offset", m.Offset),
			slog.String("reason", event.Reason),
			slog.String("requestId", event.RequestID),
		)
		if err := handler(ctx, event); err != nil {
			slog.Warn("kafka handler error", slog.Any("error", err))
		}
	}
}

type rawEvent struct {
	Reason    string `json:"reason"`
	RequestID string `json:"requestId"`
}

func decodeEvent(m kafka.Message) ReloadEvent {
	event := ReloadEvent{Topic: m.Topic, Timestamp: m.Time.UTC()}
	if m.Time.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	var raw rawEvent
	if err := json.Unmarshal(m.Value, &raw); err != nil {
		event.Reason = strings.TrimSpace(string(m.Value))
		return event
	}
	event.Reason = strings.TrimSpace(raw.Reason)
	event.RequestID = strings.TrimSpace(raw.RequestID)
	return event
}
