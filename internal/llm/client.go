package llm

import (
	"context"
)

// Client generates a completion for a single prompt.
// Implementations must be safe for concurrent use and must not retry.
type Client interface {
	// Complete sends prompt to the provider and returns the trimmed reply text.
	// Failures are *types.ProviderError.
	Complete(ctx context.Context, prompt string) (string, error)
	// Name identifies the backend and model for logs.
	Name() string
}
