package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/rentcar-service/internal/events"
)

// Clock returns the current time. Services take one so tests can pin it.
type Clock func() time.Time

// UTCNow is the production clock.
func UTCNow() time.Time {
	return time.Now().UTC()
}

func clockOrDefault(c Clock) Clock {
	if c == nil {
		return UTCNow
	}
	return c
}

// publish delivers event and logs handler failures. Notification problems
// never fail the request that produced the event.
func publish(ctx context.Context, dispatcher events.Dispatcher, logger *zap.Logger, event events.Event) {
	if dispatcher == nil {
		return
	}
	if err := dispatcher.Publish(ctx, event); err != nil {
		logger.Warn("event handlers failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}
