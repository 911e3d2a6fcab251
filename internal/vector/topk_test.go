package vector

import (
	"errors"
	"testing"
)

func topkCandidates() []Candidate {
	return []Candidate{
		{ID: "a", Vector: []float32{1, 0}},
		{ID: "b", Vector: []float32{0.9, 0.1}},
		{ID: "c", Vector: []float32{0, 1}},
		{ID: "d", Vector: []float32{-1, 0}},
	}
}

func TestTopK_RanksDescending(t *testing.T) {
	scores, err := TopK([]float32{1, 0}, topkCandidates(), 4, Cosine)
	if err != nil {
		t.Fatalf("TopK() error: %v", err)
	}

	wantOrder := []string{"a", "b", "c", "d"}
	if len(scores) != len(wantOrder) {
		t.Fatalf("len = %d, want %d", len(scores), len(wantOrder))
	}
	for i, want := range wantOrder {
		if scores[i].ID != want {
			t.Errorf("scores[%d].ID = %s, want %s", i, scores[i].ID, want)
		}
	}
	for i := 1; i < len(scores); i++ {
		if scores[i].Score > scores[i-1].Score {
			t.Errorf("scores not descending at %d: %v > %v", i, scores[i].Score, scores[i-1].Score)
		}
	}
}

func TestTopK_TruncatesToK(t *testing.T) {
	scores, err := TopK([]float32{1, 0}, topkCandidates(), 2, Cosine)
	if err != nil {
		t.Fatalf("TopK() error: %v", err)
	}
	if len(scores) != 2 {
		t.Errorf("len = %d, want 2", len(scores))
	}
}

func TestTopK_KLargerThanCandidates(t *testing.T) {
	scores, err := TopK([]float32{1, 0}, topkCandidates(), 100, Cosine)
	if err != nil {
		t.Fatalf("TopK() error: %v", err)
	}
	if len(scores) != 4 {
		t.Errorf("len = %d, want 4", len(scores))
	}
}

func TestTopK_EmptyCases(t *testing.T) {
	tests := []struct {
		name       string
		candidates []Candidate
		k          int
	}{
		{"zero k", topkCandidates(), 0},
		{"negative k", topkCandidates(), -1},
		{"no candidates", nil, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scores, err := TopK([]float32{1, 0}, tt.candidates, tt.k, Cosine)
			if err != nil {
				t.Fatalf("TopK() error: %v", err)
			}
			if len(scores) != 0 {
				t.Errorf("len = %d, want 0", len(scores))
			}
		})
	}
}

func TestTopK_TiesKeepInputOrder(t *testing.T) {
	candidates := []Candidate{
		{ID: "first", Vector: []float32{1, 0}},
		{ID: "second", Vector: []float32{2, 0}}, // same cosine as first
		{ID: "third", Vector: []float32{0, 1}},
	}

	scores, err := TopK([]float32{1, 0}, candidates, 3, Cosine)
	if err != nil {
		t.Fatalf("TopK() error: %v", err)
	}
	if scores[0].ID != "first" || scores[1].ID != "second" {
		t.Errorf("tie order = [%s %s], want [first second]", scores[0].ID, scores[1].ID)
	}
}

func TestTopK_IsPrefixOfLargerK(t *testing.T) {
	// Ties force the stable sort to matter: a prefix that held only for
	// distinct scores would not pin the ordering contract.
	candidates := []Candidate{
		{ID: "a", Vector: []float32{1, 0}},
		{ID: "tie1", Vector: []float32{1, 1}},
		{ID: "tie2", Vector: []float32{2, 2}},
		{ID: "tie3", Vector: []float32{3, 3}},
		{ID: "d", Vector: []float32{0, 1}},
	}
	query := []float32{1, 0}

	for k := 1; k < len(candidates); k++ {
		smaller, err := TopK(query, candidates, k, Cosine)
		if err != nil {
			t.Fatalf("TopK(k=%d) error: %v", k, err)
		}
		larger, err := TopK(query, candidates, k+1, Cosine)
		if err != nil {
			t.Fatalf("TopK(k=%d) error: %v", k+1, err)
		}
		for i := range smaller {
			if smaller[i].ID != larger[i].ID {
				t.Errorf("k=%d: result[%d] = %s, but k=%d has %s (not a stable prefix)",
					k, i, smaller[i].ID, k+1, larger[i].ID)
			}
		}
	}
}

func TestTopK_DimensionMismatchAborts(t *testing.T) {
	candidates := []Candidate{
		{ID: "good", Vector: []float32{1, 0}},
		{ID: "bad", Vector: []float32{1, 0, 0}},
	}

	_, err := TopK([]float32{1, 0}, candidates, 2, Cosine)
	if !errors.Is(err, ErrDimensionMismatch) {
		t.Errorf("TopK() error = %v, want ErrDimensionMismatch", err)
	}
}

func TestTopK_WithNegEuclidean(t *testing.T) {
	candidates := []Candidate{
		{ID: "far", Vector: []float32{10, 0}},
		{ID: "near", Vector: []float32{1, 0}},
	}

	scores, err := TopK([]float32{0, 0}, candidates, 2, NegEuclidean)
	if err != nil {
		t.Fatalf("TopK() error: %v", err)
	}
	if scores[0].ID != "near" {
		t.Errorf("scores[0].ID = %s, want near", scores[0].ID)
	}
}
