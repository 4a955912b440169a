package generator

import (
	"encoding/json"
	"fmt"
	"strings"
)

// buildPrompt assembles the backend prompt from the caller's instructions and
// the strict output schema. The backend is told to emit JSON only; fenced
// output is still tolerated by ExtractJSON below.
func buildPrompt(instructions string, schema map[string]any) (string, error) {
	schemaJSON, err := json.Marshal(schema)
	if err != nil {
		return "", fmt.Errorf("marshal output schema: %w", err)
	}

	var b strings.Builder
	b.WriteString(instructions)
	b.WriteString("\n\nRespond with a single JSON object that conforms exactly to this JSON schema. ")
	b.WriteString("Do not include any prose, explanation, or markdown fences.\n\nSchema:\n")
	b.Write(schemaJSON)
	return b.String(), nil
}

// ExtractJSON returns the JSON document embedded in a model response.
// Models occasionally wrap payloads in ```json fences or lead with prose;
// this strips fences and trims to the outermost object or array. The result
// is validated as JSON; anything else is a parse failure (terminal).
func ExtractJSON(response string) ([]byte, error) {
	s := strings.TrimSpace(response)

	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if idx := strings.LastIndex(s, "```"); idx >= 0 {
			s = s[:idx]
		}
		s = strings.TrimSpace(s)
	}

	// Trim leading prose before the first brace or bracket.
	objStart := strings.IndexByte(s, '{')
	arrStart := strings.IndexByte(s, '[')
	start := objStart
	if start < 0 || (arrStart >= 0 && arrStart < start) {
		start = arrStart
	}
	if start < 0 {
		return nil, fmt.Errorf("no JSON document in response")
	}
	end := strings.LastIndexAny(s, "}]")
	if end < start {
		return nil, fmt.Errorf("unterminated JSON document in response")
	}
	s = s[start : end+1]

	if !json.Valid([]byte(s)) {
		return nil, fmt.Errorf("response is not valid JSON")
	}
	return []byte(s), nil
}
