// internal/workers/application/send-notification/config.go
package sendnotification

import (
	"time"

	"loan-marketplace-workers/internal/common/config"
)

type Config struct {
	EmailEnabled bool
	SMSEnabled   bool
	// SMSThreshold is the lowest priority that also goes out by SMS.
	SMSThreshold string
	Templates    map[string]config.NotificationTemplate
	ProfileTTL   time.Duration
	Timeout      time.Duration
}

func LoadConfig() *Config {
	return &Config{
		SMSThreshold: PriorityHigh,
		ProfileTTL:   5 * time.Minute,
		Timeout:      30 * time.Second,
	}
}

// ConfigFrom copies the notification section of the service config.
func ConfigFrom(n config.NotificationConfig, timeout, profileTTL time.Duration) *Config {
	cfg := LoadConfig()
	cfg.EmailEnabled = n.Email.Enabled
	cfg.SMSEnabled = n.SMS.Enabled
	if n.SMS.PriorityThreshold != "" {
		cfg.SMSThreshold = n.SMS.PriorityThreshold
	}
	cfg.Templates = n.Templates
	if timeout > 0 {
		cfg.Timeout = timeout
	}
	if profileTTL > 0 {
		cfg.ProfileTTL = profileTTL
	}
	return cfg
}
