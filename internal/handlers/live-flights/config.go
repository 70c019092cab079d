// internal/handlers/live-flights/config.go
package liveflights

import (
	"time"

	appconfig "airline-bot/internal/common/config"
)

type Config struct {
	BaseURL     string
	Timeout     time.Duration
	MaxRetries  int
	DegPad      float64
	MaxExamples int
	CacheTTL    time.Duration
}

func LoadConfig() *Config {
	return &Config{
		BaseURL:     "https://opensky-network.org/api",
		Timeout:     4 * time.Second,
		MaxRetries:  2,
		DegPad:      1.5,
		MaxExamples: 5,
		CacheTTL:    2 * time.Minute,
	}
}

// FromAppConfig maps the application-level OpenSky section onto the
// handler config.
func FromAppConfig(cfg appconfig.OpenSkyConfig) *Config {
	return &Config{
		BaseURL:     cfg.BaseURL,
		Timeout:     time.Duration(cfg.Timeout) * time.Millisecond,
		MaxRetries:  cfg.MaxRetries,
		DegPad:      cfg.DegPad,
		MaxExamples: cfg.MaxExamples,
		CacheTTL:    time.Duration(cfg.CacheTTL) * time.Second,
	}
}
