// Package retry provides bounded retry logic with exponential backoff.
// It wraps calls to the generative backend and other flaky collaborators,
// retrying transient failures (rate limits, server faults) and failing fast
// on everything else.
package retry

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"strings"
	"syscall"
	"time"
)

// Config holds the configuration for retry logic.
type Config struct {
	// MaxAttempts is the maximum number of invocations of the operation,
	// including the first one.
	MaxAttempts int

	// InitialDelay is the delay before the first retry.
	InitialDelay time.Duration

	// MaxDelay is the maximum delay between retries.
	MaxDelay time.Duration

	// Multiplier is the multiplier for exponential backoff.
	Multiplier float64

	// JitterFraction is the fraction of delay to add as random jitter (0.0 to 1.0).
	// Zero keeps the backoff schedule deterministic.
	JitterFraction float64
}

// DefaultConfig returns a default retry configuration.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   1 * time.Second,
		MaxDelay:       30 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// GeneratorConfig returns the configuration used for generative backend calls.
// Three attempts with a deterministic 1s/2s schedule: the added wall clock is
// bounded by InitialDelay * (2^MaxAttempts - 1).
func GeneratorConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   1 * time.Second,
		MaxDelay:       30 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0,
	}
}

// ContentFetchConfig returns configuration for fetching source pages for the
// study lab. Jitter is enabled here; no caller depends on the exact schedule.
func ContentFetchConfig() Config {
	return Config{
		MaxAttempts:    3,
		InitialDelay:   1 * time.Second,
		MaxDelay:       10 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// WithBackoff executes the given function with retry logic and exponential backoff.
// It returns nil if the function succeeds. Transient errors are retried up to
// cfg.MaxAttempts total invocations; terminal errors are returned after a single
// attempt without waiting. On exhaustion, the error of the last attempt is
// returned wrapped, so errors.Is/As against the last failure still hold.
func WithBackoff(ctx context.Context, cfg Config, fn func() error) error {
	var lastErr error
	delay := cfg.InitialDelay

	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		lastErr = fn()

		if lastErr == nil {
			if attempt > 1 {
				slog.Info("operation succeeded after retry",
					slog.Int("attempt", attempt))
			}
			return nil
		}

		if !IsTransient(lastErr) {
			slog.Warn("terminal error, aborting",
				slog.Int("attempt", attempt),
				slog.Any("error", lastErr))
			return lastErr
		}

		// Don't wait after last attempt
		if attempt == cfg.MaxAttempts {
			break
		}

		slog.Warn("transient failure, retrying",
			slog.Int("attempt", attempt),
			slog.Int("max_attempts", cfg.MaxAttempts),
			slog.Duration("delay", delay),
			slog.Any("error", lastErr))

		select {
		case <-time.After(addJitter(delay, cfg.JitterFraction)):
		case <-ctx.Done():
			return fmt.Errorf("retry aborted: %w", ctx.Err())
		}

		delay = time.Duration(float64(delay) * cfg.Multiplier)
		if delay > cfg.MaxDelay {
			delay = cfg.MaxDelay
		}
	}

	return fmt.Errorf("max retry attempts (%d) exceeded: %w", cfg.MaxAttempts, lastErr)
}

// quotaMarkers are substrings that identify rate-limit or quota-exceeded
// failures in backend error messages that carry no usable status code.
var quotaMarkers = []string{
	"quota",
	"rate limit",
	"resource has been exhausted",
	"resource_exhausted",
	"overloaded",
}

// IsTransient determines whether a failure is worth retrying.
// Transient: rate limiting (429 or a quota-exceeded indication), server faults
// (5xx, 408), network timeouts, and connection-level syscall errors.
// Everything else — including context cancellation — is terminal.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	// A canceled caller never wants another attempt.
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	if errors.Is(err, syscall.ECONNREFUSED) ||
		errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ETIMEDOUT) ||
		errors.Is(err, syscall.ENETUNREACH) {
		return true
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		if statusErr.StatusCode >= 500 && statusErr.StatusCode < 600 {
			return true
		}
		if statusErr.StatusCode == http.StatusTooManyRequests {
			return true
		}
		if statusErr.StatusCode == http.StatusRequestTimeout {
			return true
		}
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, marker := range quotaMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}

// StatusError represents a backend failure carrying an HTTP-equivalent status.
// Generator adapters map vendor SDK errors into this type so classification
// stays vendor-neutral.
type StatusError struct {
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("status %d: %s", e.StatusCode, e.Message)
}

// Unwrap returns the underlying SDK error, if any.
func (e *StatusError) Unwrap() error {
	return e.Err
}

// addJitter adds random jitter to a duration to prevent thundering herd.
// A zero fraction returns the duration unchanged.
func addJitter(duration time.Duration, jitterFraction float64) time.Duration {
	if jitterFraction <= 0 {
		return duration
	}
	if jitterFraction > 1.0 {
		jitterFraction = 1.0
	}
	// #nosec G404 -- math/rand is fine for backoff jitter; no security use.
	jitter := time.Duration(rand.Float64() * float64(duration) * jitterFraction)
	return duration + jitter
}
