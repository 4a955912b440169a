package fetcher

import (
	"fmt"
	"time"

	"lexfeed/pkg/config"
)

// Config controls security and resource limits for source page fetching.
//
// Security settings:
//   - DenyPrivateIPs: blocks URLs resolving to private addresses (SSRF)
//   - MaxBodySize: caps response size to prevent memory exhaustion
//   - MaxRedirects: caps redirect chains
//   - Timeout: bounds a single HTTP request
type Config struct {
	// Timeout is the maximum duration for a single HTTP request.
	// Default: 10s
	Timeout time.Duration

	// MaxBodySize is the maximum HTTP response body size in bytes.
	// Enforced while reading, not from the Content-Length header.
	// Default: 10485760 (10MB)
	MaxBodySize int64

	// MaxRedirects is the maximum number of redirects to follow.
	// Each redirect target is re-validated against the SSRF rules.
	// Default: 5
	MaxRedirects int

	// DenyPrivateIPs rejects URLs whose hostname resolves to a
	// loopback, private, or link-local address. Should always be
	// true in production.
	// Default: true
	DenyPrivateIPs bool
}

// DefaultConfig returns production-ready defaults for source page fetching.
func DefaultConfig() Config {
	return Config{
		Timeout:        10 * time.Second,
		MaxBodySize:    10 * 1024 * 1024,
		MaxRedirects:   5,
		DenyPrivateIPs: true,
	}
}

// Validate checks that the configuration values are within safe bounds.
func (c *Config) Validate() error {
	if err := config.ValidatePositiveDuration(c.Timeout); err != nil {
		return fmt.Errorf("timeout: %w", err)
	}

	minBodySize := int64(1024)
	maxBodySize := int64(100 * 1024 * 1024)
	if c.MaxBodySize < minBodySize || c.MaxBodySize > maxBodySize {
		return fmt.Errorf("max body size must be between %d and %d bytes, got %d",
			minBodySize, maxBodySize, c.MaxBodySize)
	}

	if c.MaxRedirects < 0 || c.MaxRedirects > 10 {
		return fmt.Errorf("max redirects must be between 0 and 10, got %d", c.MaxRedirects)
	}

	return nil
}

// LoadConfigFromEnv loads the fetch configuration from environment variables,
// falling back to defaults for unset values.
//
// Environment variables:
//   - SOURCE_FETCH_TIMEOUT: duration string, e.g. "10s" (default: 10s)
//   - SOURCE_FETCH_MAX_BODY_SIZE: integer in bytes (default: 10485760)
//   - SOURCE_FETCH_MAX_REDIRECTS: integer (default: 5)
//   - SOURCE_FETCH_DENY_PRIVATE_IPS: "true" or "false" (default: true)
func LoadConfigFromEnv() (Config, error) {
	defaults := DefaultConfig()

	cfg := Config{
		Timeout:        config.GetEnvDuration("SOURCE_FETCH_TIMEOUT", defaults.Timeout),
		MaxBodySize:    int64(config.GetEnvInt("SOURCE_FETCH_MAX_BODY_SIZE", int(defaults.MaxBodySize))),
		MaxRedirects:   config.GetEnvInt("SOURCE_FETCH_MAX_REDIRECTS", defaults.MaxRedirects),
		DenyPrivateIPs: config.GetEnvBool("SOURCE_FETCH_DENY_PRIVATE_IPS", defaults.DenyPrivateIPs),
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("source fetch configuration: %w", err)
	}
	return cfg, nil
}
