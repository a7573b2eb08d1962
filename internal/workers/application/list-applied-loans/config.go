// internal/workers/application/list-applied-loans/config.go
package listappliedloans

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{Timeout: 5 * time.Second}
}
