package retrieval

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opencrl/crlsearch/internal/crl"
	"github.com/opencrl/crlsearch/internal/embedding"
	"github.com/opencrl/crlsearch/internal/storage"
)

// fakeStore serves fixed letters and vectors.
type fakeStore struct {
	letters []crl.Letter
	vectors []storage.StoredVector
	listErr error
}

func (f *fakeStore) KeywordCandidates(query string) ([]crl.Letter, error) {
	return f.letters, nil
}

func (f *fakeStore) ListVectors(kind string) ([]storage.StoredVector, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.vectors, nil
}

func (f *fakeStore) GetByID(id string) (*crl.Letter, error) {
	for _, l := range f.letters {
		if l.ID == id {
			l := l
			return &l, nil
		}
	}
	return nil, nil
}

// fakeProvider returns a fixed query vector.
type fakeProvider struct {
	vector []float32
	err    error
}

func (f *fakeProvider) Embed(ctx context.Context, text string) (embedding.Embedding, error) {
	if f.err != nil {
		return embedding.Embedding{}, f.err
	}
	return embedding.Embedding{Vector: f.vector, Model: "fake"}, nil
}

func (f *fakeProvider) ModelName() string { return "fake" }
func (f *fakeProvider) Dimensions() int   { return len(f.vector) }

func testLetters() []crl.Letter {
	return []crl.Letter{
		{ID: "CRL-1", CompanyName: "Acme Pharma", ProductName: "acmezol",
			Summary: "Manufacturing deficiencies at the acme facility."},
		{ID: "CRL-2", CompanyName: "Beta Bio", ProductName: "betacillin",
			Summary: "Clinical data insufficient for approval."},
		{ID: "CRL-3", CompanyName: "Gamma Therapeutics", ProductName: "gammavir",
			Summary: "Labeling revisions required."},
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{"lexical", ModeLexical, false},
		{"semantic", ModeSemantic, false},
		{"hybrid", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRetrieve_Lexical(t *testing.T) {
	store := &fakeStore{letters: testLetters()}
	r := NewRetriever(store, nil)

	result, err := r.Retrieve(context.Background(), ModeLexical, "acme", 10, 0)
	require.NoError(t, err)

	assert.Equal(t, ModeLexical, result.Mode)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "CRL-1", result.Matches[0].Letter.ID)
	assert.Equal(t, []string{"company_name", "product_name", "summary"},
		result.Matches[0].MatchedFields)
	assert.NotEmpty(t, result.Matches[0].Snippets)
	assert.Zero(t, result.Matches[0].Score)
	assert.Equal(t, 1, result.Total)
}

func TestRetrieve_Lexical_Pagination(t *testing.T) {
	store := &fakeStore{letters: testLetters()}
	r := NewRetriever(store, nil)

	// "a" appears in every company name, so all three letters match.
	result, err := r.Retrieve(context.Background(), ModeLexical, "a", 2, 1)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Total)
	assert.Len(t, result.Matches, 2)
	assert.Equal(t, "CRL-2", result.Matches[0].Letter.ID)
}

func TestRetrieve_Semantic_RanksByCosine(t *testing.T) {
	store := &fakeStore{
		letters: testLetters(),
		vectors: []storage.StoredVector{
			{CRLID: "CRL-1", Kind: storage.KindSummary, Vector: []float32{1, 0, 0}},
			{CRLID: "CRL-2", Kind: storage.KindSummary, Vector: []float32{0.9, 0.1, 0}},
			{CRLID: "CRL-3", Kind: storage.KindSummary, Vector: []float32{0, 1, 0}},
		},
	}
	provider := &fakeProvider{vector: []float32{1, 0, 0}}
	r := NewRetriever(store, provider)

	result, err := r.Retrieve(context.Background(), ModeSemantic, "manufacturing", 2, 0)
	require.NoError(t, err)

	assert.Equal(t, ModeSemantic, result.Mode)
	require.Len(t, result.Matches, 2)
	assert.Equal(t, "CRL-1", result.Matches[0].Letter.ID)
	assert.Equal(t, "CRL-2", result.Matches[1].Letter.ID)
	assert.InDelta(t, 1.0, float64(result.Matches[0].Score), 1e-6)
	assert.Greater(t, result.Matches[0].Score, result.Matches[1].Score)
}

func TestRetrieve_Semantic_EmptyStoreUnavailable(t *testing.T) {
	store := &fakeStore{letters: testLetters()}
	r := NewRetriever(store, &fakeProvider{vector: []float32{1, 0, 0}})

	_, err := r.Retrieve(context.Background(), ModeSemantic, "anything", 5, 0)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRetrieve_Semantic_ProviderFailureUnavailable(t *testing.T) {
	store := &fakeStore{
		letters: testLetters(),
		vectors: []storage.StoredVector{
			{CRLID: "CRL-1", Kind: storage.KindSummary, Vector: []float32{1, 0, 0}},
		},
	}
	provider := &fakeProvider{err: fmt.Errorf("%w: refused", embedding.ErrUnavailable)}
	r := NewRetriever(store, provider)

	_, err := r.Retrieve(context.Background(), ModeSemantic, "anything", 5, 0)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRetrieve_Semantic_NoProviderUnavailable(t *testing.T) {
	store := &fakeStore{
		vectors: []storage.StoredVector{
			{CRLID: "CRL-1", Kind: storage.KindSummary, Vector: []float32{1, 0, 0}},
		},
	}
	r := NewRetriever(store, nil)

	_, err := r.Retrieve(context.Background(), ModeSemantic, "anything", 5, 0)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestRetrieve_Semantic_SkipsOrphanEmbedding(t *testing.T) {
	store := &fakeStore{
		letters: testLetters(),
		vectors: []storage.StoredVector{
			{CRLID: "CRL-1", Kind: storage.KindSummary, Vector: []float32{1, 0, 0}},
			{CRLID: "CRL-99", Kind: storage.KindSummary, Vector: []float32{1, 0, 0}},
		},
	}
	r := NewRetriever(store, &fakeProvider{vector: []float32{1, 0, 0}})

	result, err := r.Retrieve(context.Background(), ModeSemantic, "anything", 5, 0)
	require.NoError(t, err)
	require.Len(t, result.Matches, 1)
	assert.Equal(t, "CRL-1", result.Matches[0].Letter.ID)
}

func TestRetrieve_UnknownMode(t *testing.T) {
	r := NewRetriever(&fakeStore{}, nil)
	_, err := r.Retrieve(context.Background(), Mode("hybrid"), "q", 5, 0)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestRetrieve_Semantic_Deterministic(t *testing.T) {
	// Equal scores must keep crl_id order across runs.
	store := &fakeStore{
		letters: testLetters(),
		vectors: []storage.StoredVector{
			{CRLID: "CRL-2", Kind: storage.KindSummary, Vector: []float32{1, 0, 0}},
			{CRLID: "CRL-1", Kind: storage.KindSummary, Vector: []float32{1, 0, 0}},
		},
	}
	r := NewRetriever(store, &fakeProvider{vector: []float32{1, 0, 0}})

	first, err := r.Retrieve(context.Background(), ModeSemantic, "q", 2, 0)
	require.NoError(t, err)
	second, err := r.Retrieve(context.Background(), ModeSemantic, "q", 2, 0)
	require.NoError(t, err)

	var firstIDs, secondIDs []string
	for _, m := range first.Matches {
		firstIDs = append(firstIDs, m.Letter.ID)
	}
	for _, m := range second.Matches {
		secondIDs = append(secondIDs, m.Letter.ID)
	}
	assert.Equal(t, firstIDs, secondIDs)
}
