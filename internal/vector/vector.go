// Package vector provides the pure numeric kernel for similarity search:
// metrics over embedding vectors and exact top-k selection. It performs no
// I/O; callers supply vectors loaded elsewhere.
package vector

import (
	"errors"
	"fmt"
	"math"
)

// ErrDimensionMismatch indicates two vectors of different lengths were
// compared. This is a programming or data-integrity bug, never retried.
var ErrDimensionMismatch = errors.New("vector dimension mismatch")

// ErrZeroVector indicates an operation that is undefined for a vector of
// zero magnitude, such as normalization.
var ErrZeroVector = errors.New("cannot normalize zero vector")

// Metric computes a similarity score for two equal-length vectors.
// Higher scores rank earlier in TopK, so distance-like metrics must be
// negated (see NegEuclidean).
type Metric func(a, b []float32) (float32, error)

func checkDims(a, b []float32) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: got %d and %d", ErrDimensionMismatch, len(a), len(b))
	}
	return nil
}

// Cosine computes the cosine similarity between two vectors, in [-1, 1].
// If either vector has zero magnitude the similarity is defined as 0 rather
// than dividing by zero.
func Cosine(a, b []float32) (float32, error) {
	if err := checkDims(a, b); err != nil {
		return 0, err
	}

	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}

	denom := math.Sqrt(normA) * math.Sqrt(normB)
	if denom == 0 {
		return 0, nil
	}

	return float32(dot / denom), nil
}

// Dot computes the dot product of two vectors. Equivalent to Cosine for
// unit-length vectors.
func Dot(a, b []float32) (float32, error) {
	if err := checkDims(a, b); err != nil {
		return 0, err
	}

	var dot float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
	}
	return float32(dot), nil
}

// EuclideanDistance computes the straight-line distance between two vectors.
// Lower values mean more similar vectors.
func EuclideanDistance(a, b []float32) (float32, error) {
	if err := checkDims(a, b); err != nil {
		return 0, err
	}

	var sum float64
	for i := range a {
		d := float64(a[i]) - float64(b[i])
		sum += d * d
	}
	return float32(math.Sqrt(sum)), nil
}

// NegEuclidean is EuclideanDistance negated so that it orders correctly
// under TopK's higher-is-better ranking.
func NegEuclidean(a, b []float32) (float32, error) {
	d, err := EuclideanDistance(a, b)
	return -d, err
}

// Magnitude returns the L2 norm of a vector.
func Magnitude(v []float32) float32 {
	var sum float64
	for _, x := range v {
		sum += float64(x) * float64(x)
	}
	return float32(math.Sqrt(sum))
}

// Normalize scales a vector to unit length. Returns ErrZeroVector for a
// vector of zero magnitude.
func Normalize(v []float32) ([]float32, error) {
	mag := Magnitude(v)
	if mag == 0 {
		return nil, ErrZeroVector
	}

	out := make([]float32, len(v))
	for i, x := range v {
		out[i] = x / mag
	}
	return out, nil
}

// Mean computes the element-wise mean of the given vectors. All vectors
// must share the same dimension.
func Mean(vectors [][]float32) ([]float32, error) {
	if len(vectors) == 0 {
		return nil, errors.New("no vectors to average")
	}

	dim := len(vectors[0])
	sums := make([]float64, dim)
	for _, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("%w: got %d and %d", ErrDimensionMismatch, dim, len(v))
		}
		for i, x := range v {
			sums[i] += float64(x)
		}
	}

	out := make([]float32, dim)
	n := float64(len(vectors))
	for i, s := range sums {
		out[i] = float32(s / n)
	}
	return out, nil
}
