// Package entity defines the core domain entities and validation logic for the application.
// It contains the content record variants served to the reading UI (news items, legal
// articles, judgments, statutes) along with their validation rules and domain errors.
package entity

import "fmt"

// Kind identifies a content batch family served by the application.
type Kind string

// Content kinds. Each kind maps to one record variant and one generator schema.
const (
	KindNews         Kind = "news"
	KindArticles     Kind = "articles"
	KindJudgments    Kind = "judgments"
	KindStatutes     Kind = "statutes"
	KindJurisdiction Kind = "jurisdiction"
)

// ParseKind converts a string into a Kind.
// Returns ErrInvalidInput wrapped with the offending value for unknown kinds.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindNews, KindArticles, KindJudgments, KindStatutes, KindJurisdiction:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: unknown content kind %q", ErrInvalidInput, s)
}

// Record is the narrow capability interface shared by all content record variants.
// TextParts returns the title-like and narrative fields; URLs returns the populated
// URL-bearing fields. The sanitizer and the handlers operate on this interface only,
// so adding a record variant never touches the filtering logic.
type Record interface {
	// TextParts returns the human-readable text fields of the record.
	TextParts() []string

	// URLs returns the populated URL fields of the record. Empty fields are omitted.
	URLs() []string
}

// Batch is an ordered sequence of content records returned by one fetch invocation.
// Records are immutable once parsed; a batch carries no identity beyond its contents.
type Batch []Record

// nonEmpty filters blank strings out of a field list, preserving order.
func nonEmpty(fields ...string) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}
