package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"lexfeed/internal/observability/metrics"
	"lexfeed/internal/resilience/circuitbreaker"
	"lexfeed/internal/resilience/retry"
)

// Claude generates content batches using Anthropic's Claude API.
// Calls run through a client-side rate limiter, a circuit breaker, and the
// bounded-backoff retry wrapper.
type Claude struct {
	client         anthropic.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	limiter        *rate.Limiter
	config         Config
}

// NewClaude creates a new Claude generator with the given API key.
func NewClaude(apiKey string) (*Claude, error) {
	cfg, err := LoadConfig(string(anthropic.ModelClaudeSonnet4_5_20250929))
	if err != nil {
		return nil, err
	}

	slog.Info("initialized claude generator",
		slog.String("model", cfg.Model),
		slog.Int("max_tokens", cfg.MaxTokens),
		slog.Int("requests_per_minute", cfg.RequestsPerMinute))

	return &Claude{
		client:         anthropic.NewClient(option.WithAPIKey(apiKey)),
		circuitBreaker: circuitbreaker.New(circuitbreaker.GeneratorAPIConfig("claude")),
		retryConfig:    retry.GeneratorConfig(),
		limiter:        rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1),
		config:         cfg,
	}, nil
}

// Generate sends the instructions and output schema to Claude and returns the
// raw JSON payload. Transient backend failures are retried; a tripped circuit
// breaker or terminal failure surfaces as an error for the caller's boundary
// to handle.
func (c *Claude) Generate(ctx context.Context, instructions string, schema map[string]any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	prompt, err := buildPrompt(instructions, schema)
	if err != nil {
		return nil, err
	}

	var payload []byte
	retryErr := retry.WithBackoff(ctx, c.retryConfig, func() error {
		metrics.RecordRetryAttempt("claude_generate")

		cbResult, err := c.circuitBreaker.Execute(func() (interface{}, error) {
			return c.doGenerate(ctx, prompt)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("claude circuit breaker open, request rejected",
					slog.String("state", c.circuitBreaker.State().String()))
				return fmt.Errorf("claude backend unavailable: circuit breaker open")
			}
			return err
		}

		payload = cbResult.([]byte)
		return nil
	})
	if retryErr != nil {
		return nil, fmt.Errorf("claude generate failed: %w", retryErr)
	}
	return payload, nil
}

// doGenerate performs one API call without retry or circuit breaking.
func (c *Claude) doGenerate(ctx context.Context, prompt string) ([]byte, error) {
	requestID := uuid.New().String()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	slog.InfoContext(ctx, "starting generation",
		slog.String("request_id", requestID),
		slog.String("provider", "claude"),
		slog.Int("prompt_length", len(prompt)))

	start := time.Now()
	message, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.config.Model),
		MaxTokens: int64(c.config.MaxTokens),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(
				anthropic.NewTextBlock(prompt),
			),
		},
	})
	duration := time.Since(start)

	if err != nil {
		metrics.RecordGeneratorCall("claude", false, duration)
		slog.ErrorContext(ctx, "generation failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, classifyError("claude", err)
	}

	if len(message.Content) == 0 {
		metrics.RecordGeneratorCall("claude", false, duration)
		return nil, fmt.Errorf("claude api returned empty response")
	}
	textBlock, ok := message.Content[0].AsAny().(anthropic.TextBlock)
	if !ok {
		metrics.RecordGeneratorCall("claude", false, duration)
		return nil, fmt.Errorf("claude api returned unexpected response type")
	}

	payload, err := ExtractJSON(textBlock.Text)
	if err != nil {
		metrics.RecordGeneratorCall("claude", false, duration)
		slog.ErrorContext(ctx, "generation returned unparseable payload",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, fmt.Errorf("claude payload: %w", err)
	}

	metrics.RecordGeneratorCall("claude", true, duration)
	slog.InfoContext(ctx, "generation completed",
		slog.String("request_id", requestID),
		slog.Int("payload_bytes", len(payload)),
		slog.Duration("duration", duration))

	return payload, nil
}
