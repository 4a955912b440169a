// Package generator provides adapters for the generative content backend.
// It includes Claude (Anthropic) and OpenAI implementations with retry,
// circuit breaking, client-side rate limiting, and observability, plus a NoOp
// implementation for development and tests.
//
// A generator call is an instruction text plus a strict JSON output schema;
// the adapter returns the raw JSON payload for the caller to parse.
package generator

import (
	"fmt"
	"time"

	"lexfeed/pkg/config"
)

// Config holds configuration shared by the generator adapters.
// Values are loaded from environment variables with fallback to defaults.
type Config struct {
	// Model is the backend model identifier.
	Model string

	// MaxTokens is the maximum number of tokens for the response payload.
	MaxTokens int

	// Timeout is the maximum duration for a single backend call.
	Timeout time.Duration

	// RequestsPerMinute caps the client-side call rate to the backend.
	RequestsPerMinute int
}

// Validate checks the configuration for usable values.
func (c Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("model cannot be empty")
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("max tokens must be positive, got %d", c.MaxTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %v", c.Timeout)
	}
	if c.RequestsPerMinute <= 0 {
		return fmt.Errorf("requests per minute must be positive, got %d", c.RequestsPerMinute)
	}
	return nil
}

// LoadConfig loads generator configuration from environment variables.
//
// Environment variables:
//   - GENERATOR_MODEL: backend model identifier (default: provider-specific)
//   - GENERATOR_MAX_TOKENS: response token budget (default: 4096)
//   - GENERATOR_TIMEOUT: per-call timeout (default: 60s)
//   - GENERATOR_RPM: client-side requests per minute (default: 30)
func LoadConfig(defaultModel string) (Config, error) {
	cfg := Config{
		Model:             config.GetEnvString("GENERATOR_MODEL", defaultModel),
		MaxTokens:         config.GetEnvInt("GENERATOR_MAX_TOKENS", 4096),
		Timeout:           config.GetEnvDuration("GENERATOR_TIMEOUT", 60*time.Second),
		RequestsPerMinute: config.GetEnvInt("GENERATOR_RPM", 30),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid generator configuration: %w", err)
	}
	return cfg, nil
}
