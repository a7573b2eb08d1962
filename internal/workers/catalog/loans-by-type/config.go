// internal/workers/catalog/loans-by-type/config.go
package loansbytype

import "time"

type Config struct {
	Timeout    time.Duration
	CatalogTTL time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout:    5 * time.Second,
		CatalogTTL: 10 * time.Minute,
	}
}
