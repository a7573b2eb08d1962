// internal/workers/profile/create-profile/config.go
package createprofile

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{Timeout: 10 * time.Second}
}
