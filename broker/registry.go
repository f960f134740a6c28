package broker

import (
	"context"
	"log/slog"
)

// Reloader swaps in a freshly loaded catalog.
type Reloader interface {
	Reload(ctx context.Context) error
}

// StartReloadConsumer listens on topic and reloads the catalog for every
// message. It does nothing when no brokers are configured.
func StartReloadConsumer(ctx context.Context, reloader Reloader, brokers []string, groupID, topic string) {
	if len(brokers) == 0 {
		return
	}
	slog.Info("starting catalog reload consumer", slog.Any("brokers", brokers), slog.String("topic", topic), slog.String("group", groupID))
	go func() {
		consumer := NewKafkaConsumer(brokers, groupID, topic)
		err := consumer.Consume(ctx, ReloadHandler(reloader))
		slog.Info("catalog reload consumer stopped", slog.Any("reason", err))
	}()
}

// ReloadHandler turns reload events into catalog reloads.
func ReloadHandler(reloader Reloader) func(context.Context, ReloadEvent) error {
	return func(ctx context.Context, event ReloadEvent) error {
		return reloader.Reload(ctx)
	}
}
