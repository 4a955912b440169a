package fetcher

import "errors"

// Sentinel errors for source page fetching. Callers use these to distinguish
// failure modes; all of them are terminal from the caller's point of view
// except where the retry layer classifies them otherwise.
var (
	// ErrInvalidURL indicates the URL is malformed or uses a scheme other
	// than http/https.
	ErrInvalidURL = errors.New("invalid URL or unsupported scheme")

	// ErrPrivateIP indicates the URL resolves to a loopback, private, or
	// link-local address and was rejected to prevent SSRF.
	ErrPrivateIP = errors.New("private IP access denied")

	// ErrTooManyRedirects indicates the redirect chain exceeded the
	// configured maximum.
	ErrTooManyRedirects = errors.New("too many redirects")

	// ErrBodyTooLarge indicates the response body exceeded the size limit.
	ErrBodyTooLarge = errors.New("response body too large")

	// ErrExtractFailed indicates no readable text could be extracted from
	// the fetched page.
	ErrExtractFailed = errors.New("content extraction failed")
)
