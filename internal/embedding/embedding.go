// Package embedding provides vector embedding generation for text.
package embedding

import "errors"

// Embedding represents a vector embedding of text.
type Embedding struct {
	Vector []float32 // The embedding vector (e.g., 384 dimensions for all-minilm)
	Model  string    // Model that produced the vector
}

// Dimensions returns the dimensionality of the embedding.
func (e Embedding) Dimensions() int {
	return len(e.Vector)
}

// ErrUnavailable indicates the embedding provider could not be reached or
// answered with a failure. Transient; callers retry a bounded number of
// times at this boundary and then surface it. It is never substituted with
// a zero vector, which would silently corrupt similarity rankings.
var ErrUnavailable = errors.New("embedding provider unavailable")

// ErrShape indicates the provider returned a vector of unexpected
// dimensionality.
var ErrShape = errors.New("unexpected embedding shape")

// MaxEmbedChars caps the text sent to the provider. Letters front-load their
// salient content, so truncation drops the tail. ~30000 chars stays inside
// typical 8k-token embedding context windows.
const MaxEmbedChars = 30000

// TruncateForEmbedding trims text to MaxEmbedChars, keeping the head and
// respecting UTF-8 boundaries.
func TruncateForEmbedding(text string) string {
	if len(text) <= MaxEmbedChars {
		return text
	}

	cut := MaxEmbedChars
	for cut > 0 && text[cut]&0xC0 == 0x80 {
		cut--
	}
	return text[:cut]
}
