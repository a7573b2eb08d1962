// internal/workers/profile/get-profile/config.go
package getprofile

import "time"

type Config struct {
	Timeout    time.Duration
	ProfileTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    5 * time.Second,
		ProfileTTL: 5 * time.Minute,
	}
}
