package service

import (
	"context"
	"log/slog"

	"github.com/iyhunko/catalog-service/internal/sqs"
)

// Notifier publishes catalog lifecycle messages. *sqs.Publisher implements it.
type Notifier interface {
	Publish(ctx context.Context, msg sqs.CatalogMessage) error
}

// notify is best effort: the change is already committed, so a publish failure is only logged.
func notify(ctx context.Context, n Notifier, msg sqs.CatalogMessage) {
	if n == nil {
		return
	}
	if err := n.Publish(ctx, msg); err != nil {
		slog.Error("Failed to send SQS message", slog.Any("err", err), slog.String("action", msg.Action))
	}
}
