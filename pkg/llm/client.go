// Package llm wraps the language-model provider behind a small
// interface so analysis nodes stay provider-agnostic.
package llm

import (
	"context"
	"fmt"
)

// Client is the completion collaborator the analysis pipeline uses.
// Implementations are safe for concurrent use.
type Client interface {
	// CompleteStructured sends a prompt that demands a JSON answer and
	// unmarshals the response into out.
	CompleteStructured(ctx context.Context, systemPrompt, userPrompt string, out any) error
	// CompleteVision sends a prompt alongside an image and returns the
	// plain-text answer.
	CompleteVision(ctx context.Context, prompt string, image []byte, mimeType string) (string, error)
	// ModelName identifies the configured model for logs and reports.
	ModelName() string
}

// ProviderError names the provider and model so a failure in one
// analysis aspect is attributable.
type ProviderError struct {
	Provider string
	Model    string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s (%s): %v", e.Provider, e.Model, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
