// Package llm wraps text generation behind a small interface so answer
// synthesis can be tested without a model server.
package llm

import (
	"context"
	"errors"
)

// ErrUnavailable indicates the generation backend could not be reached or
// answered with a failure. Answer synthesis surfaces it as a distinct
// failure mode; it is never papered over with a fabricated answer.
var ErrUnavailable = errors.New("generation backend unavailable")

// Generator produces a completion for a prompt.
type Generator interface {
	// Generate returns the completion text for the given system and user
	// prompts.
	Generate(ctx context.Context, system, prompt string) (string, error)

	// ModelName returns the name of the generation model.
	ModelName() string
}
