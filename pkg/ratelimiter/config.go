package ratelimiter

import (
	"fmt"
	"time"
)

// Config describes a token bucket. Capacity is the burst size, and
// RefillRate tokens are added every RefillInterval up to Capacity.
type Config struct {
	Enabled        bool          `env:"RATE_LIMIT_ENABLED" envDefault:"true" yaml:"enabled"`
	Capacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"30" yaml:"capacity"`
	RefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"1" yaml:"refill_rate"`
	RefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"2s" yaml:"refill_interval"`
	// Buckets idle longer than this are dropped by the cleanup loop.
	IdleTTL time.Duration `env:"RATE_LIMIT_IDLE_TTL" envDefault:"10m" yaml:"idle_ttl"`
}

// DefaultConfig returns the settings used for session creation.
func DefaultConfig() Config {
	return Config{
		Enabled:        true,
		Capacity:       30,
		RefillRate:     1,
		RefillInterval: 2 * time.Second,
		IdleTTL:        10 * time.Minute,
	}
}

// Validate reports the first invalid field wrapped with ErrInvalidConfig.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return fmt.Errorf("%w: capacity must be positive, got %d", ErrInvalidConfig, c.Capacity)
	}
	if c.RefillRate <= 0 {
		return fmt.Errorf("%w: refill rate must be positive, got %d", ErrInvalidConfig, c.RefillRate)
	}
	if c.RefillInterval <= 0 {
		return fmt.Errorf("%w: refill interval must be positive, got %v", ErrInvalidConfig, c.RefillInterval)
	}
	if c.IdleTTL <= 0 {
		return fmt.Errorf("%w: idle ttl must be positive, got %v", ErrInvalidConfig, c.IdleTTL)
	}
	return nil
}
