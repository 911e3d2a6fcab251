package rag

// confidence scores an answer from the similarity scores of its cited
// letters, ordered by retrieval rank. Cosine similarity in [-1, 1] maps to
// [0, 1]. The top citation dominates; with three or more citations the score
// is averaged with the normalized mean of the top three, so a strong top hit
// backed by weak support scores lower than one backed by strong support.
func confidence(scores []float32) float64 {
	if len(scores) == 0 {
		return 0
	}

	top := (float64(scores[0]) + 1) / 2
	if len(scores) < 3 {
		return clamp01(top)
	}

	var sum float64
	for _, s := range scores[:3] {
		sum += float64(s)
	}
	mean := (sum/3 + 1) / 2

	return clamp01((top + mean) / 2)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
