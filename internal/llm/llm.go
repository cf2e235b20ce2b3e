// Package llm wraps the language model collaborator behind a single
// completion call so extraction logic can be tested without network access.
package llm

import "context"

// Client is the language model collaborator. Complete sends one
// system+user prompt pair and returns the raw response text. Callers apply
// their own timeout via ctx and treat any error, including a timeout, as an
// extraction failure.
type Client interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string, temperature float32, maxTokens int32) (string, error)
}
