package generator

import "context"

// NoOp is a generator that returns an empty JSON object without calling any
// backend. Useful for development and for running the API without credentials.
type NoOp struct{}

// NewNoOp creates a new NoOp generator.
func NewNoOp() *NoOp {
	return &NoOp{}
}

// Generate returns an empty JSON object.
func (n *NoOp) Generate(_ context.Context, _ string, _ map[string]any) ([]byte, error) {
	return []byte(`{}`), nil
}
