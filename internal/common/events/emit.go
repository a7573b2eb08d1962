// internal/common/events/emit.go
package events

import (
	"context"

	"loan-marketplace-workers/internal/common/logger"
	"loan-marketplace-workers/internal/common/metrics"
)

// Emit publishes event and records the outcome. A failed publish is logged
// and otherwise ignored; the job that produced the event still succeeds.
func Emit(ctx context.Context, pub Publisher, log logger.Logger, event Event) {
	if pub == nil {
		return
	}
	if err := pub.Publish(ctx, event); err != nil {
		metrics.EventsPublished.WithLabelValues(event.Type, "failed").Inc()
		log.Warn("failed to publish event", map[string]interface{}{
			"eventType": event.Type,
			"profileId": event.ProfileID,
			"error":     err,
		})
		return
	}
	metrics.EventsPublished.WithLabelValues(event.Type, "published").Inc()
}
