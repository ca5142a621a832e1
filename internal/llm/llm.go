// Package llm wraps the Gemini API behind small interfaces so pipeline
// stages can be tested with fakes.
package llm

import "context"

// Options controls a single text generation call.
type Options struct {
	// SystemPrompt sets the system instruction for the call.
	SystemPrompt string
	// Temperature controls sampling randomness.
	Temperature float32
	// MaxTokens caps the response length. Zero means the model default.
	MaxTokens int32
}

// TextGenerator produces text from a prompt.
type TextGenerator interface {
	GenerateText(ctx context.Context, prompt string, opts Options) (string, error)
}
