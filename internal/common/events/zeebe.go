// internal/common/events/zeebe.go
package events

import (
	"context"
	"fmt"
	"time"
)

// MessageSender publishes a Zeebe message. *camunda.Client implements it.
type MessageSender interface {
	PublishMessage(ctx context.Context, name, correlationKey string, ttl time.Duration, variables interface{}) error
}

// ZeebePublisher turns events into Zeebe messages named after the event
// type and correlated on the profile id, so waiting process instances resume.
type ZeebePublisher struct {
	sender MessageSender
	ttl    time.Duration
}

func NewZeebePublisher(sender MessageSender, ttl time.Duration) *ZeebePublisher {
	return &ZeebePublisher{sender: sender, ttl: ttl}
}

func (p *ZeebePublisher) Publish(ctx context.Context, event Event) error {
	vars := map[string]interface{}{
		"eventType":  event.Type,
		"profileId":  event.ProfileID,
		"occurredAt": event.OccurredAt.Format(time.RFC3339),
	}
	if event.LoanID != "" {
		vars["loanId"] = event.LoanID
	}
	for k, v := range event.Payload {
		vars[k] = v
	}

	if err := p.sender.PublishMessage(ctx, event.Type, event.ProfileID, p.ttl, vars); err != nil {
		return fmt.Errorf("publish message %s: %w", event.Type, err)
	}
	return nil
}
