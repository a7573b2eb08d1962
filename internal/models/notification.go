// internal/models/notification.go
package models

// Notification types understood by the send-notification worker.
const (
	NotificationLoanApplied            = "loan_applied"
	NotificationRecommendationsUpdated = "recommendations_updated"
	NotificationProfileUpdated         = "profile_updated"
)

// Notification delivery statuses.
const (
	NotificationStatusSent     = "sent"
	NotificationStatusFailed   = "failed"
	NotificationStatusDisabled = "disabled"
)

// Contact is where a notification for a profile is delivered.
type Contact struct {
	ProfileID string `json:"profileId"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}
