// Package retrieval orchestrates document retrieval over the CRL corpus.
// Two modes exist: lexical keyword search with snippets, and semantic
// search over stored summary embeddings. The mode is an explicit caller
// choice; a semantic request never silently degrades to keyword matching.
package retrieval

import (
	"context"
	"errors"
	"fmt"

	"github.com/opencrl/crlsearch/internal/crl"
	"github.com/opencrl/crlsearch/internal/embedding"
	"github.com/opencrl/crlsearch/internal/search"
	"github.com/opencrl/crlsearch/internal/storage"
	"github.com/opencrl/crlsearch/internal/vector"
)

// Mode selects the retrieval strategy.
type Mode string

const (
	// ModeLexical is case-insensitive keyword matching with snippets.
	ModeLexical Mode = "lexical"

	// ModeSemantic is cosine ranking over stored summary embeddings.
	ModeSemantic Mode = "semantic"
)

// ParseMode validates a mode string.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeLexical, ModeSemantic:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("unknown retrieval mode %q (want lexical or semantic)", s)
	}
}

// ErrUnavailable indicates semantic retrieval cannot run: the embedding
// store is empty or the embedding provider failed. It is surfaced rather
// than falling back to keyword search, so callers always know which
// strategy produced their results.
var ErrUnavailable = errors.New("semantic retrieval unavailable")

// DefaultTopK is the default number of semantic results.
const DefaultTopK = 5

// Match is one retrieved document. Score is set in semantic mode;
// MatchedFields and Snippets are set in lexical mode.
type Match struct {
	Letter        crl.Letter                `json:"crl"`
	Score         float32                   `json:"similarity,omitempty"`
	MatchedFields []string                  `json:"matched_fields,omitempty"`
	Snippets      map[string]search.Snippet `json:"match_snippets,omitempty"`
}

// Result is a page of retrieved documents.
type Result struct {
	Mode    Mode    `json:"mode"`
	Query   string  `json:"query"`
	Matches []Match `json:"matches"`
	Total   int     `json:"total"`
}

// Store is the storage surface retrieval depends on.
type Store interface {
	KeywordCandidates(query string) ([]crl.Letter, error)
	ListVectors(kind string) ([]storage.StoredVector, error)
	GetByID(id string) (*crl.Letter, error)
}

// Retriever runs retrieval in either mode against a store.
type Retriever struct {
	store    Store
	matcher  *search.Matcher
	provider embedding.Provider
}

// NewRetriever creates a Retriever. provider may be nil, in which case
// semantic retrieval reports ErrUnavailable.
func NewRetriever(store Store, provider embedding.Provider) *Retriever {
	return &Retriever{
		store:    store,
		matcher:  search.NewMatcher(),
		provider: provider,
	}
}

// Retrieve runs a query in the given mode. k bounds the result count;
// k <= 0 uses DefaultTopK in semantic mode and no bound in lexical mode.
func (r *Retriever) Retrieve(ctx context.Context, mode Mode, query string, k, offset int) (Result, error) {
	switch mode {
	case ModeLexical:
		return r.lexical(query, k, offset)
	case ModeSemantic:
		return r.semantic(ctx, query, k)
	default:
		return Result{}, fmt.Errorf("unknown retrieval mode %q", mode)
	}
}

// lexical prefilters candidates in SQL, then verifies matches and extracts
// snippets in memory. Results keep the store's newest-first order.
func (r *Retriever) lexical(query string, limit, offset int) (Result, error) {
	candidates, err := r.store.KeywordCandidates(query)
	if err != nil {
		return Result{}, fmt.Errorf("loading candidates: %w", err)
	}

	page, total := r.matcher.ScanPage(candidates, query, limit, offset)

	matches := make([]Match, 0, len(page))
	for _, m := range page {
		matches = append(matches, Match{
			Letter:        m.Letter,
			MatchedFields: m.MatchedFields,
			Snippets:      m.Snippets,
		})
	}

	return Result{Mode: ModeLexical, Query: query, Matches: matches, Total: total}, nil
}

// semantic embeds the query and ranks stored summary embeddings by cosine
// similarity. An empty embedding store or a failed embedding is
// ErrUnavailable, never an empty success.
func (r *Retriever) semantic(ctx context.Context, query string, k int) (Result, error) {
	if k <= 0 {
		k = DefaultTopK
	}
	if r.provider == nil {
		return Result{}, fmt.Errorf("%w: no embedding provider configured", ErrUnavailable)
	}

	stored, err := r.store.ListVectors(storage.KindSummary)
	if err != nil {
		return Result{}, fmt.Errorf("loading embeddings: %w", err)
	}
	if len(stored) == 0 {
		return Result{}, fmt.Errorf("%w: embedding store is empty", ErrUnavailable)
	}

	emb, err := r.provider.Embed(ctx, query)
	if err != nil {
		return Result{}, fmt.Errorf("%w: embedding query: %v", ErrUnavailable, err)
	}

	candidates := make([]vector.Candidate, 0, len(stored))
	for _, v := range stored {
		candidates = append(candidates, vector.Candidate{ID: v.CRLID, Vector: v.Vector})
	}

	scores, err := vector.TopK(emb.Vector, candidates, k, vector.Cosine)
	if err != nil {
		return Result{}, fmt.Errorf("ranking candidates: %w", err)
	}

	matches := make([]Match, 0, len(scores))
	for _, s := range scores {
		letter, err := r.store.GetByID(s.ID)
		if err != nil {
			return Result{}, fmt.Errorf("resolving %s: %w", s.ID, err)
		}
		if letter == nil {
			// Embedding row with no letter; skip rather than fail the query.
			continue
		}
		matches = append(matches, Match{Letter: *letter, Score: s.Score})
	}

	return Result{Mode: ModeSemantic, Query: query, Matches: matches, Total: len(matches)}, nil
}
