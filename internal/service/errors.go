package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Skotchmaster/cyberacademy/internal/events"
	"github.com/Skotchmaster/cyberacademy/internal/logging"
)

var (
	ErrValidation   = errors.New("validation")    // 400
	ErrNotFound     = errors.New("not found")     // 404
	ErrUnauthorized = errors.New("unauthorized")  // 401
	ErrConflict     = errors.New("conflict")      // 409
	ErrInvalidState = errors.New("invalid state") // 400

	ErrEmptyCart          = fmt.Errorf("%w: cart is empty", ErrInvalidState)
	ErrPaymentIncomplete  = fmt.Errorf("%w: payment has not succeeded", ErrInvalidState)
	ErrOrderNotAwaiting   = fmt.Errorf("%w: order is not awaiting payment", ErrInvalidState)
	ErrPaymentAlreadyUsed = fmt.Errorf("%w: payment already recorded", ErrConflict)
)

func publish(ctx context.Context, p events.Publisher, topic, key string, event map[string]any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, topic, key, event); err != nil {
		logging.FromContext(ctx).Warn("event_publish_failed", "topic", topic, "type", event["type"], "error", err)
	}
}
