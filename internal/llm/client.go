// Package llm provides the completion capability the pipeline delegates
// to. Client is an interface so backends (Anthropic, Ollama) can be
// swapped by configuration without touching the pipeline.
package llm

import "context"

// Client sends one prompt and returns the model's text reply.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)

	// Name returns the provider name for logs.
	Name() string
}
