// Package csp builds Content-Security-Policy header values.
package csp

import (
	"sort"
	"strings"
)

// Builder constructs a Content-Security-Policy header value. Not safe for
// concurrent use.
type Builder struct {
	directives map[string][]string
}

// NewBuilder creates an empty policy builder.
func NewBuilder() *Builder {
	return &Builder{directives: make(map[string][]string)}
}

// DefaultSrc sets the default-src directive, the fallback for all fetch
// directives that are not set explicitly.
func (b *Builder) DefaultSrc(sources ...string) *Builder {
	b.directives["default-src"] = sources
	return b
}

// FrameAncestors sets the frame-ancestors directive, which controls where
// the response may be embedded.
func (b *Builder) FrameAncestors(sources ...string) *Builder {
	b.directives["frame-ancestors"] = sources
	return b
}

// Directive sets an arbitrary directive.
func (b *Builder) Directive(name string, sources ...string) *Builder {
	b.directives[name] = sources
	return b
}

// Build renders the policy as a header value with directives in a stable
// order.
func (b *Builder) Build() string {
	names := make([]string, 0, len(b.directives))
	for name := range b.directives {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		sources := b.directives[name]
		if len(sources) == 0 {
			parts = append(parts, name)
			continue
		}
		parts = append(parts, name+" "+strings.Join(sources, " "))
	}
	return strings.Join(parts, "; ")
}

// APIPolicy returns the restrictive policy for a JSON-only API: nothing may
// be loaded and responses may not be framed.
func APIPolicy() string {
	return NewBuilder().
		DefaultSrc("'none'").
		FrameAncestors("'none'").
		Build()
}
