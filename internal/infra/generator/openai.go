package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"lexfeed/internal/observability/metrics"
	"lexfeed/internal/resilience/circuitbreaker"
	"lexfeed/internal/resilience/retry"
)

// systemInstruction anchors the model to the application's content domain.
const systemInstruction = "You are a legal content backend. You produce factual, " +
	"well-sourced legal content and respond only with JSON conforming to the provided schema."

// OpenAI generates content batches using OpenAI's chat completion API with
// JSON response format. Reliability wrapping matches the Claude adapter.
type OpenAI struct {
	client         *openai.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	limiter        *rate.Limiter
	config         Config
}

// NewOpenAI creates a new OpenAI generator with the given API key.
func NewOpenAI(apiKey string) (*OpenAI, error) {
	cfg, err := LoadConfig(openai.GPT4oMini)
	if err != nil {
		return nil, err
	}

	slog.Info("initialized openai generator",
		slog.String("model", cfg.Model),
		slog.Int("max_tokens", cfg.MaxTokens),
		slog.Int("requests_per_minute", cfg.RequestsPerMinute))

	return &OpenAI{
		client:         openai.NewClient(apiKey),
		circuitBreaker: circuitbreaker.New(circuitbreaker.GeneratorAPIConfig("openai")),
		retryConfig:    retry.GeneratorConfig(),
		limiter:        rate.NewLimiter(rate.Limit(float64(cfg.RequestsPerMinute)/60.0), 1),
		config:         cfg,
	}, nil
}

// Generate sends the instructions and output schema to OpenAI and returns the
// raw JSON payload.
func (o *OpenAI) Generate(ctx context.Context, instructions string, schema map[string]any) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, o.config.Timeout)
	defer cancel()

	prompt, err := buildPrompt(instructions, schema)
	if err != nil {
		return nil, err
	}

	var payload []byte
	retryErr := retry.WithBackoff(ctx, o.retryConfig, func() error {
		metrics.RecordRetryAttempt("openai_generate")

		cbResult, err := o.circuitBreaker.Execute(func() (interface{}, error) {
			return o.doGenerate(ctx, prompt)
		})
		if err != nil {
			if errors.Is(err, gobreaker.ErrOpenState) {
				slog.Warn("openai circuit breaker open, request rejected",
					slog.String("state", o.circuitBreaker.State().String()))
				return fmt.Errorf("openai backend unavailable: circuit breaker open")
			}
			return err
		}

		payload = cbResult.([]byte)
		return nil
	})
	if retryErr != nil {
		return nil, fmt.Errorf("openai generate failed: %w", retryErr)
	}
	return payload, nil
}

// doGenerate performs one API call without retry or circuit breaking.
func (o *OpenAI) doGenerate(ctx context.Context, prompt string) ([]byte, error) {
	requestID := uuid.New().String()

	if err := o.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	slog.InfoContext(ctx, "starting generation",
		slog.String("request_id", requestID),
		slog.String("provider", "openai"),
		slog.Int("prompt_length", len(prompt)))

	start := time.Now()
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.config.Model,
		MaxTokens: o.config.MaxTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	duration := time.Since(start)

	if err != nil {
		metrics.RecordGeneratorCall("openai", false, duration)
		slog.ErrorContext(ctx, "generation failed",
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.String("error", err.Error()))
		return nil, classifyError("openai", err)
	}

	if len(resp.Choices) == 0 {
		metrics.RecordGeneratorCall("openai", false, duration)
		return nil, fmt.Errorf("openai api returned no choices")
	}

	payload, err := ExtractJSON(resp.Choices[0].Message.Content)
	if err != nil {
		metrics.RecordGeneratorCall("openai", false, duration)
		return nil, fmt.Errorf("openai payload: %w", err)
	}

	metrics.RecordGeneratorCall("openai", true, duration)
	slog.InfoContext(ctx, "generation completed",
		slog.String("request_id", requestID),
		slog.Int("payload_bytes", len(payload)),
		slog.Duration("duration", duration))

	return payload, nil
}
