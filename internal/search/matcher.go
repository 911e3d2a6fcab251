// Package search implements keyword (lexical) search over CRL records:
// case-insensitive substring matching across a fixed field list, with a
// sentence-aware context snippet for each matched field.
//
// Matching is substring containment, not word-boundary matching: a query of
// "cell" matches "cellular". This is a known limitation accepted for a
// corpus of ~1k letters.
package search

import (
	"strings"

	"github.com/opencrl/crlsearch/internal/crl"
)

// MaxSnippetFields caps how many per-field snippets a single result carries.
// matched_fields still lists every field that matched.
const MaxSnippetFields = 3

// Match is one document in a keyword search result.
type Match struct {
	Letter        crl.Letter         `json:"-"`
	MatchedFields []string           `json:"matched_fields"`
	Snippets      map[string]Snippet `json:"match_snippets"`
}

// Matcher scans letters for keyword matches. The zero value is not usable;
// call NewMatcher.
type Matcher struct {
	fields       []string
	contextChars int
	maxSnippets  int
}

// Option configures a Matcher.
type Option func(*Matcher)

// WithFields overrides the searchable field list.
func WithFields(fields []string) Option {
	return func(m *Matcher) { m.fields = fields }
}

// WithContextChars sets the per-side snippet character budget.
func WithContextChars(n int) Option {
	return func(m *Matcher) { m.contextChars = n }
}

// WithMaxSnippetFields sets the cap on snippets per result.
func WithMaxSnippetFields(n int) Option {
	return func(m *Matcher) { m.maxSnippets = n }
}

// NewMatcher creates a Matcher over the standard CRL field list.
func NewMatcher(opts ...Option) *Matcher {
	m := &Matcher{
		fields:       crl.SearchFields,
		contextChars: DefaultContextChars,
		maxSnippets:  MaxSnippetFields,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Scan returns every letter containing a case-insensitive substring match in
// at least one searchable field, in input order. Each match lists all
// matched fields and carries snippets for the first maxSnippets of them. An
// empty or whitespace-only query matches nothing.
func (m *Matcher) Scan(letters []crl.Letter, query string) []Match {
	query = strings.TrimSpace(query)
	if query == "" {
		return []Match{}
	}
	lowerQuery := strings.ToLower(query)

	matches := make([]Match, 0)
	for _, letter := range letters {
		var matched []string
		snippets := make(map[string]Snippet)

		for _, field := range m.fields {
			value := letter.FieldValue(field)
			if value == "" {
				continue
			}
			if !strings.Contains(strings.ToLower(value), lowerQuery) {
				continue
			}

			matched = append(matched, field)
			if len(snippets) < m.maxSnippets {
				if snip, ok := ExtractSnippet(value, query, 1, m.contextChars); ok {
					snippets[field] = snip
				}
			}
		}

		if len(matched) > 0 {
			matches = append(matches, Match{
				Letter:        letter,
				MatchedFields: matched,
				Snippets:      snippets,
			})
		}
	}

	return matches
}

// ScanPage runs Scan and applies limit/offset pagination. The returned total
// is the full match count, independent of the page window.
func (m *Matcher) ScanPage(letters []crl.Letter, query string, limit, offset int) ([]Match, int) {
	matches := m.Scan(letters, query)
	total := len(matches)

	if offset < 0 {
		offset = 0
	}
	if offset >= total {
		return []Match{}, total
	}
	matches = matches[offset:]

	if limit > 0 && limit < len(matches) {
		matches = matches[:limit]
	}
	return matches, total
}

// EscapeLike neutralizes LIKE metacharacters in user query text before it is
// embedded in a SQL pattern. Queries must never reach the storage layer
// unescaped. The escape character is backslash; pair with ESCAPE '\'.
func EscapeLike(query string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(query)
}
