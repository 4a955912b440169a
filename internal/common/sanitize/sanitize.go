package sanitize

import (
	"net/url"
	"strings"
)

// Record is the capability interface a content record must expose to be
// filterable. It is deliberately narrow: the filter never sees concrete record
// types, only their text and URL fields.
type Record interface {
	TextParts() []string
	URLs() []string
}

// Reason classifies why a record was rejected. Used for drop metrics.
type Reason string

// Rejection reasons.
const (
	ReasonErrorPage   Reason = "error_page"
	ReasonBlockedHost Reason = "blocked_host"
	ReasonInvalidURL  Reason = "invalid_url"
	ReasonNoURL       Reason = "no_url"
)

// misencodedEllipsis is the UTF-8 ellipsis read back through a Latin-1 decode,
// a common artifact of model output that signals a truncated URL.
const misencodedEllipsis = "â€¦" // "…" bytes re-decoded as Latin-1

// Filter applies a Policy to content records. It is immutable after New and
// safe for concurrent use.
type Filter struct {
	policy   Policy
	patterns []string
}

// New creates a Filter for the given policy. Error patterns are lowercased
// once here so Clean stays allocation-light per record.
func New(policy Policy) *Filter {
	patterns := make([]string, len(policy.ErrorPatterns))
	for i, p := range policy.ErrorPatterns {
		patterns[i] = strings.ToLower(p)
	}
	return &Filter{policy: policy, patterns: patterns}
}

// Clean returns the records that pass every rejection rule, in their original
// order. The input slice is never mutated and rejected records are dropped
// whole; Clean is idempotent.
func (f *Filter) Clean(records []Record) []Record {
	out := make([]Record, 0, len(records))
	for _, r := range records {
		if _, rejected := f.Reject(r); rejected {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Reject reports whether a single record should be dropped and why.
// A record is rejected if its combined text looks like an error page, if any
// URL is hosted on a blocked domain or fails validity checks, or if it carries
// no URLs at all.
func (f *Filter) Reject(r Record) (Reason, bool) {
	if r == nil {
		return ReasonNoURL, true
	}

	text := strings.ToLower(strings.Join(r.TextParts(), " "))
	for _, pattern := range f.patterns {
		if strings.Contains(text, pattern) {
			return ReasonErrorPage, true
		}
	}

	urls := r.URLs()
	if len(urls) == 0 {
		return ReasonNoURL, true
	}

	for _, raw := range urls {
		if !f.validURL(raw) {
			return ReasonInvalidURL, true
		}
		if f.blockedHost(raw) {
			return ReasonBlockedHost, true
		}
	}

	return "", false
}

// validURL applies the structural checks that separate a plausible source link
// from truncated or templated model output.
func (f *Filter) validURL(raw string) bool {
	if !strings.HasPrefix(raw, "http://") && !strings.HasPrefix(raw, "https://") {
		return false
	}
	if len(raw) < f.policy.MinURLLength {
		return false
	}
	if strings.Contains(raw, "...") || strings.Contains(raw, misencodedEllipsis) {
		return false
	}
	lower := strings.ToLower(raw)
	if strings.Contains(lower, "example.com") || strings.Contains(lower, "placeholder") {
		return false
	}
	return true
}

// blockedHost reports whether the URL's host is on the blocklist.
// Unparseable URLs are treated as blocked; malformed records are dropped, not
// surfaced as errors.
func (f *Filter) blockedHost(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return true
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return true
	}
	for _, blocked := range f.policy.BlockedHosts {
		blocked = strings.ToLower(blocked)
		if host == blocked || strings.HasSuffix(host, "."+blocked) {
			return true
		}
	}
	return false
}
