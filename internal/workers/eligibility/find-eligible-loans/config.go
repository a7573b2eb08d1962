// internal/workers/eligibility/find-eligible-loans/config.go
package findeligibleloans

import "time"

type Config struct {
	Timeout    time.Duration
	ProfileTTL time.Duration
	CatalogTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    10 * time.Second,
		ProfileTTL: 5 * time.Minute,
		CatalogTTL: 10 * time.Minute,
	}
}
