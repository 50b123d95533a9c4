package events

import (
	"context"
	"log/slog"
)

const (
	TopicCourses       = "course_events"
	TopicCart          = "cart_events"
	TopicOrders        = "order_events"
	TopicVerifications = "payment_verifications"
)

type Publisher interface {
	Publish(ctx context.Context, topic, key string, event map[string]any) error
	Close() error
}

// LogPublisher writes events to the logger when no broker is configured.
type LogPublisher struct {
	Logger *slog.Logger
}

func (p *LogPublisher) Publish(ctx context.Context, topic, key string, event map[string]any) error {
	l := p.Logger
	if l == nil {
		l = slog.Default()
	}
	l.DebugContext(ctx, "event", "topic", topic, "key", key, "payload", event)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
