// internal/workers/ai-conversation/chat-assistant/config.go
package chatassistant

import "time"

type Config struct {
	GenAIBaseURL string
	APIKey       string
	MaxRetries   int
	MaxTokens    int
	Temperature  float64
	HistoryLimit int
	ProfileTTL   time.Duration
	CatalogTTL   time.Duration
	Timeout      time.Duration
}

func LoadConfig() *Config {
	return &Config{
		MaxRetries:   3,
		MaxTokens:    512,
		Temperature:  0.3,
		HistoryLimit: 10,
		ProfileTTL:   5 * time.Minute,
		CatalogTTL:   10 * time.Minute,
		Timeout:      30 * time.Second,
	}
}
