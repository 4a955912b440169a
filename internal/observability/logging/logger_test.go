package logging

import (
	"context"
	"log/slog"
	"testing"

	"lexfeed/internal/handler/http/requestid"

	"github.com/stretchr/testify/assert"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name     string
		logLevel string
	}{
		{"default log level (info)", ""},
		{"debug log level", "debug"},
		{"invalid log level defaults to info", "invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.logLevel != "" {
				t.Setenv("LOG_LEVEL", tt.logLevel)
			}
			assert.NotNil(t, NewLogger())
		})
	}
}

func TestWithRequestID(t *testing.T) {
	base := slog.Default()

	// No request ID in context: logger is returned unchanged.
	got := WithRequestID(context.Background(), base)
	assert.Same(t, base, got)

	// Request ID present: a derived logger is returned.
	ctx := requestid.WithRequestID(context.Background(), "req-123")
	got = WithRequestID(ctx, base)
	assert.NotSame(t, base, got)
}

func TestLoggerContextRoundTrip(t *testing.T) {
	logger := NewTextLogger()
	ctx := WithLogger(context.Background(), logger)

	assert.Same(t, logger, FromContext(ctx))
	// Missing logger falls back to the default.
	assert.Same(t, slog.Default(), FromContext(context.Background()))
}
