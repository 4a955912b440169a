package notifier

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"lexfeed/internal/resilience/retry"
)

// defaultWebhookTimeout bounds a single webhook HTTP request.
const defaultWebhookTimeout = 10 * time.Second

// webhookRetryConfig keeps alert delivery short-lived. An alert that cannot
// be delivered within a few seconds is logged and dropped.
func webhookRetryConfig() retry.Config {
	return retry.Config{
		MaxAttempts:    3,
		InitialDelay:   500 * time.Millisecond,
		MaxDelay:       5 * time.Second,
		Multiplier:     2.0,
		JitterFraction: 0.1,
	}
}

// webhookClient posts JSON payloads to a webhook URL with rate limiting
// and retries. Slack and Discord both limit incoming webhooks to roughly
// one message per second.
type webhookClient struct {
	url     string
	client  *http.Client
	limiter *rate.Limiter
}

func newWebhookClient(url string, timeout time.Duration) *webhookClient {
	if timeout <= 0 {
		timeout = defaultWebhookTimeout
	}
	return &webhookClient{
		url:     url,
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(rate.Limit(1), 3),
	}
}

// post delivers the payload, retrying transient failures. Non-2xx responses
// are classified through the shared retry rules, so 429 and 5xx are retried
// while other 4xx responses fail immediately.
func (w *webhookClient) post(ctx context.Context, channel string, payload []byte) error {
	requestID := uuid.New().String()

	err := retry.WithBackoff(ctx, webhookRetryConfig(), func() error {
		if err := w.limiter.Wait(ctx); err != nil {
			return err
		}
		return w.doPost(ctx, payload)
	})
	if err != nil {
		slog.WarnContext(ctx, "alert delivery failed",
			slog.String("channel", channel),
			slog.String("request_id", requestID),
			slog.Any("error", err))
		return fmt.Errorf("deliver %s alert: %w", channel, err)
	}

	slog.DebugContext(ctx, "alert delivered",
		slog.String("channel", channel),
		slog.String("request_id", requestID))
	return nil
}

func (w *webhookClient) doPost(ctx context.Context, payload []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build webhook request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("post webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return &retry.StatusError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("webhook rejected: %s", string(body)),
		}
	}
	return nil
}
