package search

import (
	"strings"
	"testing"
	"unicode/utf8"
)

func TestExtractSnippet_PreservesOriginalCasing(t *testing.T) {
	text := "The review identified Cellular therapy concerns. Further data needed."

	snip, ok := ExtractSnippet(text, "cellular", 1, DefaultContextChars)
	if !ok {
		t.Fatal("ExtractSnippet() found no match")
	}
	if snip.Match != "Cellular" {
		t.Errorf("Match = %q, want %q (original casing)", snip.Match, "Cellular")
	}
}

func TestExtractSnippet_SentenceBoundaries(t *testing.T) {
	text := "First sentence here. The match word appears. Third sentence follows."

	snip, ok := ExtractSnippet(text, "match", 1, DefaultContextChars)
	if !ok {
		t.Fatal("ExtractSnippet() found no match")
	}
	if snip.Before != "The " {
		t.Errorf("Before = %q, want %q", snip.Before, "The ")
	}
	if snip.After != " word appears." {
		t.Errorf("After = %q, want %q", snip.After, " word appears.")
	}
}

func TestExtractSnippet_EllipsisOnBudgetCut(t *testing.T) {
	// No sentence boundary anywhere; both sides must be cut with ellipses.
	text := strings.Repeat("x", 300) + "NEEDLE" + strings.Repeat("y", 300)

	snip, ok := ExtractSnippet(text, "needle", 1, 50)
	if !ok {
		t.Fatal("ExtractSnippet() found no match")
	}
	if !strings.HasPrefix(snip.Before, Ellipsis) {
		t.Errorf("Before = %q, want ellipsis prefix", snip.Before)
	}
	if !strings.HasSuffix(snip.After, Ellipsis) {
		t.Errorf("After = %q, want ellipsis suffix", snip.After)
	}
	if snip.Match != "NEEDLE" {
		t.Errorf("Match = %q, want NEEDLE", snip.Match)
	}
}

func TestExtractSnippet_BudgetCutKeepsValidUTF8(t *testing.T) {
	// Multi-byte runes on both sides of the match, no sentence boundaries,
	// with a budget guaranteed to land mid-rune somewhere.
	text := strings.Repeat("é", 100) + "NEEDLE" + strings.Repeat("ü", 100)

	for budget := 20; budget <= 23; budget++ {
		snip, ok := ExtractSnippet(text, "needle", 1, budget)
		if !ok {
			t.Fatalf("budget %d: no match", budget)
		}
		if !utf8.ValidString(snip.Before) {
			t.Errorf("budget %d: Before = %q is not valid UTF-8", budget, snip.Before)
		}
		if !utf8.ValidString(snip.After) {
			t.Errorf("budget %d: After = %q is not valid UTF-8", budget, snip.After)
		}
		if snip.Match != "NEEDLE" {
			t.Errorf("budget %d: Match = %q, want NEEDLE", budget, snip.Match)
		}
	}
}

func TestExtractSnippet_TextEdgesWithoutEllipsis(t *testing.T) {
	text := "match at the very start of text"

	snip, ok := ExtractSnippet(text, "match", 1, DefaultContextChars)
	if !ok {
		t.Fatal("ExtractSnippet() found no match")
	}
	if snip.Before != "" {
		t.Errorf("Before = %q, want empty (text start is not a cut)", snip.Before)
	}
	if strings.HasSuffix(snip.After, Ellipsis) {
		t.Errorf("After = %q, text end should not get an ellipsis", snip.After)
	}
}

func TestExtractSnippet_NthOccurrence(t *testing.T) {
	text := "alpha target one. beta target two. gamma target three."

	snip, ok := ExtractSnippet(text, "target", 2, DefaultContextChars)
	if !ok {
		t.Fatal("ExtractSnippet() found no second occurrence")
	}
	if !strings.Contains(snip.After, "two") {
		t.Errorf("After = %q, want the second occurrence context", snip.After)
	}
}

func TestExtractSnippet_NoMatch(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		query      string
		occurrence int
	}{
		{"absent query", "some text here", "missing", 1},
		{"occurrence past count", "one match only", "match", 2},
		{"empty text", "", "q", 1},
		{"empty query", "text", "", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := ExtractSnippet(tt.text, tt.query, tt.occurrence, DefaultContextChars)
			if ok {
				t.Error("ExtractSnippet() ok = true, want false")
			}
		})
	}
}

func TestExtractSnippet_CaseInsensitiveSearch(t *testing.T) {
	snip, ok := ExtractSnippet("The ACME Corporation replied.", "acme", 1, DefaultContextChars)
	if !ok {
		t.Fatal("ExtractSnippet() found no match")
	}
	if snip.Match != "ACME" {
		t.Errorf("Match = %q, want ACME", snip.Match)
	}
}

func TestIsSentenceEnd(t *testing.T) {
	tests := []struct {
		name string
		text string
		i    int
		want bool
	}{
		{"period before space", "end. next", 3, true},
		{"period at text end", "the end.", 7, true},
		{"decimal point", "pH 6.5 buffer", 4, false},
		{"question mark", "why? because", 3, true},
		{"exclamation", "stop! now", 4, true},
		{"ordinary letter", "abc", 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isSentenceEnd(tt.text, tt.i); got != tt.want {
				t.Errorf("isSentenceEnd(%q, %d) = %v, want %v", tt.text, tt.i, got, tt.want)
			}
		})
	}
}
