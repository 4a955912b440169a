package generator

import (
	"errors"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	openai "github.com/sashabaranov/go-openai"

	"lexfeed/internal/resilience/retry"
)

// classifyError maps vendor SDK errors onto retry.StatusError so the retry
// layer can classify transient versus terminal failures without knowing any
// SDK type. Errors with no usable status pass through unchanged; the retry
// layer still recognizes quota markers and network timeouts in them.
func classifyError(provider string, err error) error {
	if err == nil {
		return nil
	}

	var anthropicErr *anthropic.Error
	if errors.As(err, &anthropicErr) {
		return &retry.StatusError{
			StatusCode: anthropicErr.StatusCode,
			Message:    fmt.Sprintf("%s api error", provider),
			Err:        err,
		}
	}

	var openaiErr *openai.APIError
	if errors.As(err, &openaiErr) {
		return &retry.StatusError{
			StatusCode: openaiErr.HTTPStatusCode,
			Message:    fmt.Sprintf("%s api error", provider),
			Err:        err,
		}
	}

	return err
}
