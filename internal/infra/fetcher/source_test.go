package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lexfeed/internal/resilience/retry"
)

const articleHTML = `<!DOCTYPE html>
<html>
<head><title>Landmark Ruling on Bail Conditions</title></head>
<body>
<article>
<h1>Landmark Ruling on Bail Conditions</h1>
<p>The court held that bail conditions must be proportionate to the offence charged
and may not amount to a punitive measure before conviction. The bench reviewed the
statutory framework in detail and set out guidance for trial courts.</p>
<p>Counsel for the appellant argued that the conditions imposed were impossible to
satisfy and therefore amounted to a denial of bail altogether. The court agreed,
noting that conditions must be capable of performance by the accused.</p>
<p>The appeal was allowed and the matter remitted for fresh consideration of the
bail application under the principles set out in this judgment.</p>
</article>
</body>
</html>`

// newTestFetcher returns a fetcher that accepts the httptest server's
// loopback address and retries quickly.
func newTestFetcher(t *testing.T) *SourceFetcher {
	t.Helper()

	cfg := DefaultConfig()
	cfg.DenyPrivateIPs = false
	cfg.Timeout = 5 * time.Second

	f := NewSourceFetcher(cfg)
	f.retryConfig = retry.Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   2.0,
	}
	return f
}

func TestFetchText_ExtractsArticle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	text, err := newTestFetcher(t).FetchText(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Contains(t, text, "proportionate to the offence")
	assert.NotContains(t, text, "<p>")
}

func TestFetchText_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(articleHTML))
	}))
	defer srv.Close()

	text, err := newTestFetcher(t).FetchText(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, int32(3), calls.Load())
	assert.Contains(t, text, "bail")
}

func TestFetchText_NotFoundIsTerminal(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestFetcher(t).FetchText(context.Background(), srv.URL)
	require.Error(t, err)

	var statusErr *retry.StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	assert.Equal(t, int32(1), calls.Load(), "4xx must not be retried")
}

func TestFetchText_BodySizeLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body><p>" + strings.Repeat("x", 4096) + "</p></body></html>"))
	}))
	defer srv.Close()

	f := newTestFetcher(t)
	f.config.MaxBodySize = 1024

	_, err := f.FetchText(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrBodyTooLarge)
}

func TestFetchText_RejectsBadScheme(t *testing.T) {
	_, err := newTestFetcher(t).FetchText(context.Background(), "ftp://example.org/file")
	assert.ErrorIs(t, err, ErrInvalidURL)
}

func TestExtractText_FallsBackToParagraphs(t *testing.T) {
	// Table-heavy page with no article element that Readability can anchor on.
	html := []byte(`<html><head><script>var x=1;</script></head><body>
<nav>Home | Judgments</nav>
<table><tr><td>Criminal Appeal No. 482 of 2025</td></tr>
<tr><td>Decided on 12 August 2025</td></tr></table>
</body></html>`)

	text, err := extractText(html, nil)
	require.NoError(t, err)
	assert.Contains(t, text, "Criminal Appeal No. 482 of 2025")
	assert.NotContains(t, text, "var x=1")
}

func TestExtractText_EmptyPage(t *testing.T) {
	_, err := extractText([]byte("<html><body></body></html>"), nil)
	assert.ErrorIs(t, err, ErrExtractFailed)
}
