package notifier

import "context"

// NoOpNotifier discards alerts. Used when no webhook is configured.
type NoOpNotifier struct{}

// NewNoOpNotifier creates a notifier that silently drops every alert.
func NewNoOpNotifier() *NoOpNotifier {
	return &NoOpNotifier{}
}

// Notify does nothing and always succeeds.
func (n *NoOpNotifier) Notify(context.Context, Alert) error {
	return nil
}
