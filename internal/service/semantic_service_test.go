package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/recollecthq/recollect/internal/ai"
	"github.com/recollecthq/recollect/internal/model"
	appErr "github.com/recollecthq/recollect/internal/pkg/errors"
)

type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	if vec, ok := f.vectors[text]; ok {
		return vec, nil
	}
	return []float32{0, 0, 1}, nil
}

func (f *fakeEmbedder) ModelName() string {
	return "fake-embed"
}

type fakeStore struct {
	records   []model.PageEmbedding
	insertErr error
	listErr   error
}

func (f *fakeStore) Insert(ctx context.Context, rec *model.PageEmbedding) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.records = append(f.records, *rec)
	return nil
}

func (f *fakeStore) ListByUser(ctx context.Context, userID string) ([]model.PageEmbedding, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []model.PageEmbedding
	for _, rec := range f.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

func newTestService(embedder ai.IEmbedder, store PageVectorStore) *SemanticService {
	return NewSemanticService(embedder, store, 3, SemanticLimits{Search: 50, History: 30, Related: 100})
}

func TestIndexThenSearchEndToEnd(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"Cats\na.com\nabout cats": {1, 0, 0},
		"Dogs\nb.com":             {0, 1, 0},
		"feline pets":             {0.9, 0.1, 0},
	}}
	store := &fakeStore{}
	svc := newTestService(embedder, store)

	_, err := svc.IndexPage(context.Background(), "u1", PageIndexInput{URL: "a.com", Title: "Cats", Summary: "about cats"})
	require.NoError(t, err)
	_, err = svc.IndexPage(context.Background(), "u1", PageIndexInput{URL: "b.com", Title: "Dogs"})
	require.NoError(t, err)

	results, err := svc.Search(context.Background(), "u1", "feline pets", 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "a.com", results[0].URL)
	require.Greater(t, results[0].Score, 0.9)

	// Same query for a user with no records returns an empty list, not an error.
	empty, err := svc.Search(context.Background(), "u2", "feline pets", 1)
	require.NoError(t, err)
	require.Empty(t, empty)
}

func TestSearchNeverLeaksAcrossUsers(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{}}
	store := &fakeStore{}
	svc := newTestService(embedder, store)

	_, err := svc.IndexPage(context.Background(), "alice", PageIndexInput{URL: "a.com", Title: "Alice page"})
	require.NoError(t, err)
	_, err = svc.IndexPage(context.Background(), "bob", PageIndexInput{URL: "b.com", Title: "Bob page"})
	require.NoError(t, err)

	results, err := svc.Search(context.Background(), "alice", "anything", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "a.com", results[0].URL)
}

func TestIndexValidation(t *testing.T) {
	embedder := &fakeEmbedder{}
	store := &fakeStore{}
	svc := newTestService(embedder, store)

	longTitle := make([]rune, maxTitleLen+1)
	for i := range longTitle {
		longTitle[i] = 'x'
	}

	cases := []PageIndexInput{
		{URL: "", Title: "t"},
		{URL: "a.com", Title: ""},
		{URL: "a.com", Title: string(longTitle)},
	}
	for _, input := range cases {
		_, err := svc.IndexPage(context.Background(), "u1", input)
		require.ErrorIs(t, err, appErr.ErrInvalid)
	}
	// Validation failures never reach the provider.
	require.Zero(t, embedder.calls)
	require.Empty(t, store.records)
}

func TestIndexRequiresIdentity(t *testing.T) {
	svc := newTestService(&fakeEmbedder{}, &fakeStore{})
	_, err := svc.IndexPage(context.Background(), "", PageIndexInput{URL: "a.com", Title: "t"})
	require.ErrorIs(t, err, appErr.ErrUnauthorized)
	_, err = svc.Search(context.Background(), "", "q", 1)
	require.ErrorIs(t, err, appErr.ErrUnauthorized)
}

func TestProviderFailuresPropagate(t *testing.T) {
	store := &fakeStore{}

	unavailable := newTestService(&fakeEmbedder{err: ai.ErrUnavailable}, store)
	_, err := unavailable.IndexPage(context.Background(), "u1", PageIndexInput{URL: "a.com", Title: "t"})
	require.ErrorIs(t, err, ai.ErrUnavailable)
	_, err = unavailable.Search(context.Background(), "u1", "q", 1)
	require.ErrorIs(t, err, ai.ErrUnavailable)

	broken := newTestService(&fakeEmbedder{err: errors.New("rate limited")}, store)
	_, err = broken.IndexPage(context.Background(), "u1", PageIndexInput{URL: "a.com", Title: "t"})
	require.ErrorIs(t, err, appErr.ErrEmbedProvider)

	// No partial record persisted on any failure path.
	require.Empty(t, store.records)
}

func TestBadEmbeddingDimensionRejected(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"t\na.com": {1, 0}, // dim 2, service expects 3
	}}
	store := &fakeStore{}
	svc := newTestService(embedder, store)

	_, err := svc.IndexPage(context.Background(), "u1", PageIndexInput{URL: "a.com", Title: "t"})
	require.ErrorIs(t, err, appErr.ErrEmbedProvider)
	require.Empty(t, store.records)
}

func TestStorageFailureAfterEmbedSurfacesAsStorage(t *testing.T) {
	store := &fakeStore{insertErr: errors.New("connection reset")}
	svc := newTestService(&fakeEmbedder{}, store)
	_, err := svc.IndexPage(context.Background(), "u1", PageIndexInput{URL: "a.com", Title: "t"})
	require.ErrorIs(t, err, appErr.ErrStorage)
}

func TestSearchClampsK(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{}}
	store := &fakeStore{}
	svc := NewSemanticService(embedder, store, 3, SemanticLimits{Search: 2, History: 30, Related: 100})

	for i := 0; i < 5; i++ {
		_, err := svc.IndexPage(context.Background(), "u1", PageIndexInput{URL: "a.com", Title: "page"})
		require.NoError(t, err)
	}
	results, err := svc.Search(context.Background(), "u1", "anything", 1000)
	require.NoError(t, err)
	require.Len(t, results, 2)
}

func TestHistorySearchUsesInvertedScore(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"Exact\na.com": {0, 0, 1},
		"match":        {0, 0, 1},
	}}
	store := &fakeStore{}
	svc := newTestService(embedder, store)

	_, err := svc.IndexPage(context.Background(), "u1", PageIndexInput{URL: "a.com", Title: "Exact"})
	require.NoError(t, err)

	plain, err := svc.Search(context.Background(), "u1", "match", 1)
	require.NoError(t, err)
	require.InDelta(t, 1.0, plain[0].Score, 1e-9)

	history, err := svc.HistorySearch(context.Background(), "u1", "match", 1)
	require.NoError(t, err)
	require.Equal(t, 0.0, history[0].Score)
	require.NotZero(t, history[0].LastSeen)
}

func TestRelatedPagesExcludesAnchorURL(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float32{
		"Cats\na.com":  {1, 0, 0},
		"Lions\nb.com": {0.9, 0.1, 0},
		"Dogs\nc.com":  {0, 1, 0},
	}}
	store := &fakeStore{}
	svc := newTestService(embedder, store)

	for _, page := range []PageIndexInput{
		{URL: "a.com", Title: "Cats"},
		{URL: "b.com", Title: "Lions"},
		{URL: "c.com", Title: "Dogs"},
	} {
		_, err := svc.IndexPage(context.Background(), "u1", page)
		require.NoError(t, err)
	}

	results, err := svc.RelatedPages(context.Background(), "u1", "a.com", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "b.com", results[0].URL)
	for _, r := range results {
		require.NotEqual(t, "a.com", r.URL)
	}

	// No embedding provider round trip for related lookups.
	calls := embedder.calls
	_, err = svc.RelatedPages(context.Background(), "u1", "a.com", 10)
	require.NoError(t, err)
	require.Equal(t, calls, embedder.calls)

	_, err = svc.RelatedPages(context.Background(), "u1", "unknown.com", 10)
	require.ErrorIs(t, err, appErr.ErrNotFound)
}
