package fetcher

import (
	"bytes"
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-shiori/go-readability"

	"lexfeed/internal/observability/metrics"
	"lexfeed/internal/resilience/circuitbreaker"
	"lexfeed/internal/resilience/retry"
)

const userAgent = "LexFeedBot/1.0"

// SourceFetcher retrieves a web page and extracts its readable article text.
// It is used to turn a user-supplied source URL into study material input.
//
// Reliability and security:
//   - URL and redirect validation (SSRF prevention)
//   - Retries with bounded backoff on transient failures
//   - Circuit breaker shared across all fetches
//   - Body size limiting and per-request timeout
//
// SourceFetcher is safe for concurrent use.
type SourceFetcher struct {
	client         *http.Client
	circuitBreaker *circuitbreaker.CircuitBreaker
	retryConfig    retry.Config
	config         Config
}

// NewSourceFetcher creates a SourceFetcher with the given configuration.
func NewSourceFetcher(config Config) *SourceFetcher {
	f := &SourceFetcher{
		circuitBreaker: circuitbreaker.New(circuitbreaker.ContentFetchConfig()),
		retryConfig:    retry.ContentFetchConfig(),
		config:         config,
	}

	f.client = &http.Client{
		Timeout: config.Timeout,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSClientConfig: &tls.Config{
				MinVersion: tls.VersionTLS12,
			},
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= f.config.MaxRedirects {
				return fmt.Errorf("%w: %d redirects", ErrTooManyRedirects, len(via))
			}
			// Each hop gets the same SSRF treatment as the original URL.
			if err := validateURL(req.URL.String(), f.config.DenyPrivateIPs); err != nil {
				return fmt.Errorf("redirect target rejected: %w", err)
			}
			return nil
		},
	}

	return f
}

// FetchText fetches the page at urlStr and returns its extracted plain text.
//
// Validation failures return immediately. Transient HTTP failures (5xx,
// timeouts, connection errors) are retried with backoff; 4xx responses and
// extraction failures are terminal.
func (f *SourceFetcher) FetchText(ctx context.Context, urlStr string) (string, error) {
	if err := validateURL(urlStr, f.config.DenyPrivateIPs); err != nil {
		return "", err
	}

	var text string
	retryErr := retry.WithBackoff(ctx, f.retryConfig, func() error {
		metrics.RecordRetryAttempt("source_fetch")

		result, err := f.circuitBreaker.Execute(func() (interface{}, error) {
			return f.doFetch(ctx, urlStr)
		})
		if err != nil {
			return err
		}
		text = result.(string)
		return nil
	})
	if retryErr != nil {
		return "", retryErr
	}
	return text, nil
}

// doFetch performs one HTTP request and extracts the article text.
func (f *SourceFetcher) doFetch(ctx context.Context, urlStr string) (interface{}, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, urlStr, nil)
	if err != nil {
		return "", fmt.Errorf("%w: failed to create request: %v", ErrInvalidURL, err)
	}
	req.Header.Set("User-Agent", userAgent)

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		metrics.RecordContentFetchFailed(time.Since(start))
		// Surface redirect validation errors without the url.Error wrapper.
		if urlErr, ok := err.(*url.Error); ok && urlErr.Err != nil {
			return "", urlErr.Err
		}
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusOK {
		metrics.RecordContentFetchFailed(time.Since(start))
		return "", &retry.StatusError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("fetch %s", urlStr),
		}
	}

	limitedReader := io.LimitReader(resp.Body, f.config.MaxBodySize+1)
	htmlBytes, err := io.ReadAll(limitedReader)
	if err != nil {
		metrics.RecordContentFetchFailed(time.Since(start))
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if int64(len(htmlBytes)) > f.config.MaxBodySize {
		metrics.RecordContentFetchFailed(time.Since(start))
		return "", fmt.Errorf("%w: response exceeds %d bytes", ErrBodyTooLarge, f.config.MaxBodySize)
	}

	// Redirects may have moved us; readability resolves relative links
	// against the final URL.
	finalURL, err := url.Parse(urlStr)
	if err != nil {
		finalURL = nil
	}
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL
	}

	text, err := extractText(htmlBytes, finalURL)
	if err != nil {
		metrics.RecordContentFetchFailed(time.Since(start))
		slog.DebugContext(ctx, "text extraction failed",
			slog.String("url", urlStr),
			slog.String("error", err.Error()))
		return "", err
	}

	metrics.RecordContentFetchSuccess(time.Since(start))
	return text, nil
}

// extractText runs the Readability algorithm over the page and falls back to
// plain paragraph scraping when Readability finds no article body. Court and
// gazette sites often serve table-heavy layouts Readability gives up on.
func extractText(htmlBytes []byte, pageURL *url.URL) (string, error) {
	article, err := readability.FromReader(bytes.NewReader(htmlBytes), pageURL)
	if err == nil && strings.TrimSpace(article.TextContent) != "" {
		return article.TextContent, nil
	}

	doc, qerr := goquery.NewDocumentFromReader(bytes.NewReader(htmlBytes))
	if qerr != nil {
		return "", fmt.Errorf("%w: %v", ErrExtractFailed, qerr)
	}

	doc.Find("script, style, nav, header, footer").Remove()

	var parts []string
	doc.Find("p, li, td, h1, h2, h3").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	if len(parts) == 0 {
		return "", fmt.Errorf("%w: no readable content found", ErrExtractFailed)
	}

	return strings.Join(parts, "\n"), nil
}
