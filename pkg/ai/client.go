// pkg/ai/client.go

package ai

import "errors"

// Error classes the gateway logs distinctly. Wrapped by the concrete client,
// checked with errors.Is.
var (
	ErrAuth        = errors.New("ai: authentication or configuration error")
	ErrRateLimited = errors.New("ai: rate limited")
)

type Options struct {
	JSONMode  bool
	MaxTokens int
}

// Client is a single synchronous completion call against an
// OpenAI-compatible chat endpoint.
type Client interface {
	Complete(prompt string, opts Options) (string, error)
}
