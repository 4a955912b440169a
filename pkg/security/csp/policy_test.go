package csp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuilder_StableOrder(t *testing.T) {
	policy := NewBuilder().
		FrameAncestors("'none'").
		DefaultSrc("'self'", "https://cdn.example.com").
		Build()

	assert.Equal(t, "default-src 'self' https://cdn.example.com; frame-ancestors 'none'", policy)
}

func TestBuilder_BareDirective(t *testing.T) {
	policy := NewBuilder().Directive("upgrade-insecure-requests").Build()
	assert.Equal(t, "upgrade-insecure-requests", policy)
}

func TestAPIPolicy(t *testing.T) {
	assert.Equal(t, "default-src 'none'; frame-ancestors 'none'", APIPolicy())
}
