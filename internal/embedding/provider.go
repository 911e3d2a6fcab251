package embedding

import "context"

// Provider generates embeddings for text. Implementations must return
// ErrUnavailable when the backend cannot be reached and ErrShape when the
// backend answers with a vector of the wrong dimensionality.
type Provider interface {
	// Embed generates an embedding for the given text.
	Embed(ctx context.Context, text string) (Embedding, error)

	// ModelName returns the name of the embedding model.
	ModelName() string

	// Dimensions returns the expected vector dimensions.
	Dimensions() int
}
