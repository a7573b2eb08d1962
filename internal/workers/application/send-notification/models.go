// internal/workers/application/send-notification/models.go
package sendnotification

type Input struct {
	ProfileID        string                 `json:"profileId"`
	NotificationType string                 `json:"notificationType"`
	ApplicationID    string                 `json:"applicationId,omitempty"`
	LoanID           string                 `json:"loanId,omitempty"`
	Priority         string                 `json:"priority,omitempty"`
	Metadata         map[string]interface{} `json:"metadata,omitempty"`
}

type Output struct {
	NotificationID string   `json:"notificationId"`
	Status         string   `json:"status"` // "sent", "failed", "disabled"
	Channels       []string `json:"channels,omitempty"`
	SentAt         string   `json:"sentAt"` // ISO 8601
}

// Priorities, lowest first.
const (
	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)
