// Package notifier delivers operational alerts to a webhook channel.
// It defines the Notifier interface so different channels (Slack, Discord)
// can be swapped through dependency injection, plus a no-op implementation
// for when alerting is disabled.
package notifier

import "context"

// Alert describes an operational event worth telling a human about.
type Alert struct {
	// Component names the part of the system raising the alert,
	// e.g. "warmer".
	Component string

	// Message is a short human-readable description of what went wrong.
	Message string
}

// Notifier sends operational alerts. Implementations handle rate limiting
// and retries internally; a returned error means delivery failed after all
// attempts.
type Notifier interface {
	Notify(ctx context.Context, alert Alert) error
}
