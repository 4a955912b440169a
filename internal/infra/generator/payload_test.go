package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name     string
		response string
		want     string
	}{
		{
			name:     "bare object",
			response: `{"records":[]}`,
			want:     `{"records":[]}`,
		},
		{
			name:     "fenced json",
			response: "```json\n{\"records\":[{\"headline\":\"x\"}]}\n```",
			want:     `{"records":[{"headline":"x"}]}`,
		},
		{
			name:     "fenced without language tag",
			response: "```\n{\"a\":1}\n```",
			want:     `{"a":1}`,
		},
		{
			name:     "leading prose",
			response: "Here is the requested batch:\n{\"records\":[]}",
			want:     `{"records":[]}`,
		},
		{
			name:     "array payload",
			response: `[{"front":"q","back":"a"}]`,
			want:     `[{"front":"q","back":"a"}]`,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ExtractJSON(tc.response)
			require.NoError(t, err)
			assert.JSONEq(t, tc.want, string(got))
		})
	}
}

func TestExtractJSON_Failures(t *testing.T) {
	cases := []struct {
		name     string
		response string
	}{
		{"plain prose", "I could not generate the requested content."},
		{"truncated object", `{"records":[{"headline":"x"`},
		{"empty response", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ExtractJSON(tc.response)
			assert.Error(t, err)
		})
	}
}

func TestBuildPrompt_EmbedsSchemaAndInstructions(t *testing.T) {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"records": map[string]any{"type": "array"},
		},
	}

	prompt, err := buildPrompt("List five recent supreme court judgments.", schema)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(prompt, "List five recent supreme court judgments."))
	assert.Contains(t, prompt, `"records"`)
	assert.Contains(t, prompt, "JSON schema")
}
