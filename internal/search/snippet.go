package search

import (
	"strings"
	"unicode"
)

// Snippet is the context window around one keyword match, split into the
// text before the match, the matched substring with its original casing,
// and the text after.
type Snippet struct {
	Before string `json:"before"`
	Match  string `json:"match"`
	After  string `json:"after"`
}

// Ellipsis marks a snippet edge that was cut mid-sentence by the character
// budget.
const Ellipsis = "..."

// DefaultContextChars is the maximum number of characters kept on each side
// of a match.
const DefaultContextChars = 100

// ExtractSnippet locates the nth (1-based) case-insensitive occurrence of
// query in text and returns its context window. The window extends from the
// match outward to the nearest sentence boundary on each side, up to
// contextChars characters; an edge cut before reaching a boundary is marked
// with an ellipsis. Returns a zero Snippet and false if the query does not
// occur n times.
func ExtractSnippet(text, query string, occurrence, contextChars int) (Snippet, bool) {
	if text == "" || query == "" {
		return Snippet{}, false
	}
	if occurrence < 1 {
		occurrence = 1
	}
	if contextChars <= 0 {
		contextChars = DefaultContextChars
	}

	lowerText := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)

	pos := 0
	for i := 0; i < occurrence; i++ {
		idx := strings.Index(lowerText[pos:], lowerQuery)
		if idx < 0 {
			return Snippet{}, false
		}
		pos += idx
		if i < occurrence-1 {
			pos += len(lowerQuery)
		}
	}

	matchEnd := pos + len(lowerQuery)

	before, beforeCut := contextBefore(text, pos, contextChars)
	after, afterCut := contextAfter(text, matchEnd, contextChars)

	if beforeCut {
		before = Ellipsis + strings.TrimLeft(before, " \t\n")
	}
	if afterCut {
		after = strings.TrimRight(after, " \t\n") + Ellipsis
	}

	return Snippet{
		Before: before,
		Match:  text[pos:matchEnd],
		After:  after,
	}, true
}

// isSentenceEnd reports whether text[i] ends a sentence: a terminator
// followed by whitespace (or the end of the text).
func isSentenceEnd(text string, i int) bool {
	switch text[i] {
	case '.', '!', '?':
	default:
		return false
	}
	if i+1 >= len(text) {
		return true
	}
	return unicode.IsSpace(rune(text[i+1]))
}

// contextBefore walks backward from the match start to the nearest sentence
// boundary within the budget. The second return value reports whether the
// walk was cut by the budget before reaching a boundary or the text start.
func contextBefore(text string, matchStart, budget int) (string, bool) {
	limit := matchStart - budget
	if limit < 0 {
		limit = 0
	}

	for i := matchStart - 1; i >= limit; i-- {
		if isSentenceEnd(text, i) {
			// Start the snippet after the terminator and its whitespace.
			return strings.TrimLeft(text[i+1:matchStart], " \t\n"), false
		}
	}

	if limit == 0 {
		return text[:matchStart], false
	}
	// The budget cut must not split a multi-byte rune.
	for limit < matchStart && text[limit]&0xC0 == 0x80 {
		limit++
	}
	return text[limit:matchStart], true
}

// contextAfter walks forward from the match end to the nearest sentence
// boundary within the budget, keeping the terminator itself.
func contextAfter(text string, matchEnd, budget int) (string, bool) {
	limit := matchEnd + budget
	if limit > len(text) {
		limit = len(text)
	}

	for i := matchEnd; i < limit; i++ {
		if isSentenceEnd(text, i) {
			return text[matchEnd : i+1], false
		}
	}

	if limit == len(text) {
		return text[matchEnd:], false
	}
	// The budget cut must not split a multi-byte rune.
	for limit > matchEnd && text[limit]&0xC0 == 0x80 {
		limit--
	}
	return text[matchEnd:limit], true
}
