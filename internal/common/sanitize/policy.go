// Package sanitize filters low-quality records out of generated content batches.
// Generative backends hallucinate dead links, error-page text, and paywalled
// sources; this package rejects whole records that show any of those signals.
// It never repairs or fabricates a record, and it performs no I/O.
package sanitize

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Policy holds the rejection rules applied to each record.
// The zero value is not usable; start from DefaultPolicy.
type Policy struct {
	// ErrorPatterns are case-insensitive substrings that mark a record's text
	// as an error page rather than real content.
	ErrorPatterns []string `yaml:"error_patterns"`

	// BlockedHosts are domains whose records are always rejected (paywalled or
	// unreliable sources). Matching is by host suffix, so "livelaw.in" also
	// blocks "www.livelaw.in".
	BlockedHosts []string `yaml:"blocked_hosts"`

	// MinURLLength is the minimum length of a plausible source URL.
	// Anything shorter is treated as truncated output.
	MinURLLength int `yaml:"min_url_length"`
}

// DefaultPolicy returns the built-in rejection rules.
func DefaultPolicy() Policy {
	return Policy{
		ErrorPatterns: []string{
			"404",
			"page not found",
			"oops",
			"error 404",
			"not found",
			"access denied",
			"maintenance",
			"forbidden",
		},
		BlockedHosts: []string{
			"livelaw.in",
			"barandbench.com",
			"scconline.com",
			"manupatra.com",
			"legitquest.com",
			"casemine.com",
			"lawfinderlive.com",
		},
		MinURLLength: 15,
	}
}

// policyFile is the YAML document shape for policy overrides.
type policyFile struct {
	Sanitize Policy `yaml:"sanitize"`
}

// LoadPolicyFile loads a policy override from a YAML file.
// Fields left empty in the file keep their DefaultPolicy values, so a file may
// override just the blocklist. The path is expected to come from a trusted
// source (environment variable or CLI flag), not user input.
func LoadPolicyFile(path string) (Policy, error) {
	// #nosec G304 -- path is provided by trusted source (env var or CLI arg)
	data, err := os.ReadFile(path)
	if err != nil {
		return Policy{}, fmt.Errorf("read policy file: %w", err)
	}

	var doc policyFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Policy{}, fmt.Errorf("parse policy file: %w", err)
	}

	policy := DefaultPolicy()
	if len(doc.Sanitize.ErrorPatterns) > 0 {
		policy.ErrorPatterns = doc.Sanitize.ErrorPatterns
	}
	if len(doc.Sanitize.BlockedHosts) > 0 {
		policy.BlockedHosts = doc.Sanitize.BlockedHosts
	}
	if doc.Sanitize.MinURLLength > 0 {
		policy.MinURLLength = doc.Sanitize.MinURLLength
	}

	if err := policy.Validate(); err != nil {
		return Policy{}, fmt.Errorf("policy validation failed: %w", err)
	}
	return policy, nil
}

// Validate checks the policy for usable values.
func (p Policy) Validate() error {
	if len(p.ErrorPatterns) == 0 {
		return fmt.Errorf("error_patterns must not be empty")
	}
	if p.MinURLLength <= 0 {
		return fmt.Errorf("min_url_length must be positive, got %d", p.MinURLLength)
	}
	return nil
}
