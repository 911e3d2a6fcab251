package rag

import (
	"fmt"
	"strings"

	"github.com/opencrl/crlsearch/internal/retrieval"
)

// Citation links an answer back to a retrieved letter.
type Citation struct {
	ID          string  `json:"id"`
	Rank        int     `json:"rank"` // 1-based retrieval rank
	Score       float32 `json:"similarity"`
	CompanyName string  `json:"company_name"`
	ProductName string  `json:"product_name,omitempty"`
}

// extractCitations finds which retrieved letters the answer actually cites.
// A letter counts as cited if the answer contains its rank tag ("[CRL-3]")
// or its verbatim id. Citations keep retrieval-rank order regardless of the
// order they appear in the answer, and each letter is cited at most once.
func extractCitations(answer string, matches []retrieval.Match) []Citation {
	citations := make([]Citation, 0)
	for i, m := range matches {
		tag := fmt.Sprintf("[CRL-%d]", i+1)
		if !strings.Contains(answer, tag) && !strings.Contains(answer, m.Letter.ID) {
			continue
		}
		citations = append(citations, Citation{
			ID:          m.Letter.ID,
			Rank:        i + 1,
			Score:       m.Score,
			CompanyName: m.Letter.CompanyName,
			ProductName: m.Letter.ProductName,
		})
	}
	return citations
}
