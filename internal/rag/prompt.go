package rag

import (
	"fmt"
	"strings"

	"github.com/opencrl/crlsearch/internal/retrieval"
)

const (
	// systemPrompt constrains answers to the grounding context.
	systemPrompt = `You are an analyst answering questions about FDA complete response letters (CRLs).
Answer using ONLY the letters provided in the context. When a statement draws on
a letter, cite it inline with its tag, e.g. [CRL-3]. If the context does not
contain the answer, say so plainly instead of speculating.`

	// maxContextTextChars bounds the full-text fallback per letter when no
	// summary exists. Letters front-load findings, so the head is kept.
	maxContextTextChars = 3000
)

// buildContext renders retrieved letters as tagged grounding blocks. The tag
// index is 1-based retrieval rank; the citation parser maps tags back to ids.
func buildContext(matches []retrieval.Match) string {
	var b strings.Builder
	for i, m := range matches {
		l := m.Letter

		fmt.Fprintf(&b, "[CRL-%d] id=%s\n", i+1, l.ID)
		fmt.Fprintf(&b, "Company: %s\n", l.CompanyName)
		if l.ProductName != "" {
			fmt.Fprintf(&b, "Product: %s\n", l.ProductName)
		}
		if l.TherapeuticCategory != "" {
			fmt.Fprintf(&b, "Category: %s\n", l.TherapeuticCategory)
		}
		if l.DeficiencyReason != "" {
			fmt.Fprintf(&b, "Deficiency: %s\n", l.DeficiencyReason)
		}
		if l.LetterDate != "" {
			fmt.Fprintf(&b, "Date: %s\n", l.LetterDate)
		}

		body := l.Summary
		if body == "" {
			body = truncate(l.Text, maxContextTextChars)
		}
		fmt.Fprintf(&b, "%s\n\n", body)
	}
	return b.String()
}

// buildPrompt assembles the user prompt from grounding context and question.
func buildPrompt(contextBlock, question string) string {
	return fmt.Sprintf("Context letters:\n\n%s\nQuestion: %s", contextBlock, question)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && s[cut]&0xC0 == 0x80 {
		cut--
	}
	return s[:cut]
}
