package server

import (
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/simonhull/firebird-suite/plume/internal/config"
)

// DefaultConfig returns sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Address:         "",
		Port:            8080,
		RateLimit:       10, // 10 req/s
		RateLimitBurst:  20,
		MaxBodyBytes:    8 << 20, // 8 MiB, room for a résumé upload
		ReadTimeout:     10 * time.Second,
		WriteTimeout:    30 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 15 * time.Second,
	}
}

// ConfigFrom builds a server config from loaded settings
func ConfigFrom(s config.ServerConfig) *Config {
	cfg := DefaultConfig()
	cfg.Address = s.Address
	cfg.Port = s.Port
	cfg.RateLimit = rate.Limit(s.RateLimit)
	cfg.RateLimitBurst = s.RateBurst
	cfg.MaxBodyBytes = s.MaxBodyBytes
	cfg.ReadTimeout = s.ReadTimeout
	cfg.WriteTimeout = s.WriteTimeout
	cfg.ShutdownTimeout = s.ShutdownTimeout
	return cfg
}

// Addr returns the listen address
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Address, c.Port)
}
