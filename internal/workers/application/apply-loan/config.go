// internal/workers/application/apply-loan/config.go
package applyloan

import "time"

type Config struct {
	Timeout    time.Duration
	ProfileTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    10 * time.Second,
		ProfileTTL: 5 * time.Minute,
	}
}
