package incognito

import (
	"errors"
	"fmt"
	"time"
)

// Config holds the retention and capacity constants applied to every session.
type Config struct {
	// CookieLifetime is how long a cookie stays visible after SetCookie.
	CookieLifetime time.Duration `env:"INCOGNITO_COOKIE_LIFETIME" envDefault:"1h" yaml:"cookie_lifetime"`

	// HistoryRetention is the visibility window of history entries.
	HistoryRetention time.Duration `env:"INCOGNITO_HISTORY_RETENTION" envDefault:"30m" yaml:"history_retention"`

	// CacheCapacity is the per-session response cache size in bytes.
	CacheCapacity int64 `env:"INCOGNITO_CACHE_CAPACITY" envDefault:"104857600" yaml:"cache_capacity"`

	// ReaperInterval is the delay between background sweeps.
	ReaperInterval time.Duration `env:"INCOGNITO_REAPER_INTERVAL" envDefault:"60s" yaml:"reaper_interval"`
}

// DefaultConfig returns the default incognito configuration.
func DefaultConfig() Config {
	return Config{
		CookieLifetime:   time.Hour,
		HistoryRetention: 30 * time.Minute,
		CacheCapacity:    100 << 20,
		ReaperInterval:   time.Minute,
	}
}

// Validate reports every non-positive setting.
func (c Config) Validate() error {
	var errs []error
	if c.CookieLifetime <= 0 {
		errs = append(errs, fmt.Errorf("cookie lifetime must be positive, got %s", c.CookieLifetime))
	}
	if c.HistoryRetention <= 0 {
		errs = append(errs, fmt.Errorf("history retention must be positive, got %s", c.HistoryRetention))
	}
	if c.CacheCapacity <= 0 {
		errs = append(errs, fmt.Errorf("cache capacity must be positive, got %d", c.CacheCapacity))
	}
	if c.ReaperInterval <= 0 {
		errs = append(errs, fmt.Errorf("reaper interval must be positive, got %s", c.ReaperInterval))
	}
	if len(errs) > 0 {
		return errors.Join(append([]error{ErrInvalidConfig}, errs...)...)
	}
	return nil
}
