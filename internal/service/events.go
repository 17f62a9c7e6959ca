package service

import (
	"context"
	"time"

	"github.com/Skotchmaster/storefront/pkg/logging"
)

// Publisher ships domain events. *mykafka.Producer satisfies it.
type Publisher interface {
	PublishEvent(ctx context.Context, topic, key string, event any) error
}

type NopPublisher struct{}

func (NopPublisher) PublishEvent(context.Context, string, string, any) error { return nil }

// publish never fails the caller: a broken broker only costs a log line.
func publish(ctx context.Context, p Publisher, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := p.PublishEvent(pubCtx, topic, key, event); err != nil {
		logging.FromContext(ctx).Warn("publish_event_failed",
			"topic", topic,
			"type", event["type"],
			"error", err,
		)
	}
}
