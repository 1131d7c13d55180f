package server

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config controls the HTTP service.
type Config struct {
	Addr         string `envconfig:"ADDR"`
	MaxHorizon   int    `envconfig:"MAX_HORIZON"`
	RateLimit    int    `envconfig:"RATE_LIMIT"` // requests per minute per client IP
	EventsBuffer int    `envconfig:"EVENTS_BUFFER"`
}

const (
	defaultAddr         = "127.0.0.1:8787"
	defaultMaxHorizon   = 100
	defaultRateLimit    = 120
	defaultEventsBuffer = 50
)

// LoadConfig overlays ENDOW_* environment variables on base, which usually
// comes from the config file and command flags. Zero fields fall back to
// defaults in New.
func LoadConfig(base Config) (Config, error) {
	cfg := base
	if err := envconfig.Process("endow", &cfg); err != nil {
		return base, fmt.Errorf("reading ENDOW_* environment: %w", err)
	}
	return cfg, nil
}

func (c Config) withDefaults() Config {
	if c.Addr == "" {
		c.Addr = defaultAddr
	}
	if c.MaxHorizon < 1 {
		c.MaxHorizon = defaultMaxHorizon
	}
	if c.RateLimit < 1 {
		c.RateLimit = defaultRateLimit
	}
	if c.EventsBuffer < 1 {
		c.EventsBuffer = defaultEventsBuffer
	}
	return c
}
