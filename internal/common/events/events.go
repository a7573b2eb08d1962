// internal/common/events/events.go

// Package events notifies interested parties when a profile's
// recommendations, applications or profile data change.
package events

import (
	"context"
	"errors"
	"time"
)

// Event types.
const (
	RecommendationsUpdated   = "recommendations.updated"
	RecommendationsCleared   = "recommendations.cleared"
	AppliedLoansUpdated      = "applied_loans.updated"
	AIRecommendationReceived = "ai_recommendation.received"
	ProfileUpdated           = "profile.updated"
)

// Event is one change notification. Payload is event specific.
type Event struct {
	Type       string                 `json:"type"`
	ProfileID  string                 `json:"profileId"`
	LoanID     string                 `json:"loanId,omitempty"`
	OccurredAt time.Time              `json:"occurredAt"`
	Payload    map[string]interface{} `json:"payload,omitempty"`
}

// New stamps an event with the current time.
func New(eventType, profileID string, payload map[string]interface{}) Event {
	return Event{
		Type:       eventType,
		ProfileID:  profileID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Publisher delivers events. Workers treat publish failures as non-fatal.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Multi publishes to every publisher and joins their errors.
type Multi []Publisher

func (m Multi) Publish(ctx context.Context, event Event) error {
	var errs []error
	for _, p := range m {
		if err := p.Publish(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Nop discards events.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
