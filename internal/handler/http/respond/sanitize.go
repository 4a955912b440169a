package respond

import "regexp"

var (
	// The anthropic pattern must run before the generic one: sk-ant- keys
	// would otherwise be half-masked by the sk- rule.
	anthropicKeyPattern = regexp.MustCompile(`sk-ant-[a-zA-Z0-9-_]+`)
	openaiKeyPattern    = regexp.MustCompile(`sk-[a-zA-Z0-9]{10,}`)

	// Signed JWTs occasionally end up inside wrapped auth errors.
	jwtPattern = regexp.MustCompile(`eyJ[a-zA-Z0-9-_]+\.[a-zA-Z0-9-_]+\.[a-zA-Z0-9-_]+`)
)

// SanitizeError returns the error message with API keys and tokens masked.
// Used before logging any error that may wrap a backend SDK failure.
func SanitizeError(err error) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	msg = anthropicKeyPattern.ReplaceAllString(msg, "sk-ant-****")
	msg = openaiKeyPattern.ReplaceAllString(msg, "sk-****")
	msg = jwtPattern.ReplaceAllString(msg, "****.****.****")

	return msg
}
