package embedding

import (
	"context"
	"errors"
	"time"
)

const (
	// DefaultRetryAttempts is the total number of embedding attempts.
	DefaultRetryAttempts = 3

	// DefaultRetryBackoff is the initial delay between attempts; it doubles
	// after each failure.
	DefaultRetryBackoff = 200 * time.Millisecond
)

// RetryProvider wraps a Provider with bounded retries for transient failures.
// ErrShape is not retried: a wrong-dimension response is a configuration
// error, not a transient one.
type RetryProvider struct {
	inner    Provider
	attempts int
	backoff  time.Duration
}

// NewRetryProvider wraps inner with the default retry policy.
func NewRetryProvider(inner Provider) *RetryProvider {
	return &RetryProvider{
		inner:    inner,
		attempts: DefaultRetryAttempts,
		backoff:  DefaultRetryBackoff,
	}
}

// Embed calls the inner provider, retrying transient failures with
// exponential backoff. The last error is returned after the final attempt.
func (r *RetryProvider) Embed(ctx context.Context, text string) (Embedding, error) {
	var lastErr error
	delay := r.backoff

	for attempt := 0; attempt < r.attempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return Embedding{}, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		emb, err := r.inner.Embed(ctx, text)
		if err == nil {
			return emb, nil
		}
		if errors.Is(err, ErrShape) {
			return Embedding{}, err
		}
		lastErr = err
	}

	return Embedding{}, lastErr
}

// ModelName returns the inner provider's model name.
func (r *RetryProvider) ModelName() string {
	return r.inner.ModelName()
}

// Dimensions returns the inner provider's expected dimensions.
func (r *RetryProvider) Dimensions() int {
	return r.inner.Dimensions()
}
