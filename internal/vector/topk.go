package vector

import "sort"

// Candidate pairs a stored vector with the document it belongs to.
type Candidate struct {
	ID     string
	Vector []float32
}

// Score is one ranked result from TopK.
type Score struct {
	ID    string
	Score float32
}

// TopK ranks candidates against the query vector with the given metric and
// returns the k highest-scoring ids, descending. Ties keep the candidates'
// input order, so a fixed store yields a fixed ranking. A k larger than the
// candidate set returns all candidates sorted; k <= 0 or an empty candidate
// set returns an empty slice. Any dimension mismatch aborts the ranking.
func TopK(query []float32, candidates []Candidate, k int, metric Metric) ([]Score, error) {
	if k <= 0 || len(candidates) == 0 {
		return []Score{}, nil
	}

	scores := make([]Score, 0, len(candidates))
	for _, c := range candidates {
		s, err := metric(query, c.Vector)
		if err != nil {
			return nil, err
		}
		scores = append(scores, Score{ID: c.ID, Score: s})
	}

	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Score > scores[j].Score
	})

	if k < len(scores) {
		scores = scores[:k]
	}
	return scores, nil
}
