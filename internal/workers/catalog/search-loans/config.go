// internal/workers/catalog/search-loans/config.go
package searchloans

import "time"

type Config struct {
	Index       string
	DefaultSize int
	MaxSize     int
	Timeout     time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Index:       "loans",
		DefaultSize: 10,
		MaxSize:     100,
		Timeout:     10 * time.Second,
	}
}
