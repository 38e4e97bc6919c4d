package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/recollecthq/recollect/internal/ai"
	"github.com/recollecthq/recollect/internal/model"
	appErr "github.com/recollecthq/recollect/internal/pkg/errors"
	"github.com/recollecthq/recollect/internal/rank"
)

const (
	maxURLLen     = 2048
	maxTitleLen   = 512
	maxSummaryLen = 5000
	maxQueryLen   = 1000

	taskTypeDocument = "RETRIEVAL_DOCUMENT"
	taskTypeQuery    = "RETRIEVAL_QUERY"
)

// PageVectorStore is the persistence surface the semantic service needs:
// append one record, scan one user's records.
type PageVectorStore interface {
	Insert(ctx context.Context, rec *model.PageEmbedding) error
	ListByUser(ctx context.Context, userID string) ([]model.PageEmbedding, error)
}

// SemanticLimits are the per-endpoint top-k ceilings.
type SemanticLimits struct {
	Search  int
	History int
	Related int
}

// SemanticService turns page text into vectors on index and ranks a user's
// stored vectors against an embedded query on search. All work is scoped by
// the caller-resolved userID; nothing in a request body can widen it.
type SemanticService struct {
	embedder ai.IEmbedder
	store    PageVectorStore
	dim      int
	limits   SemanticLimits
}

func NewSemanticService(embedder ai.IEmbedder, store PageVectorStore, dim int, limits SemanticLimits) *SemanticService {
	if limits.Search <= 0 {
		limits.Search = 50
	}
	if limits.History <= 0 {
		limits.History = 30
	}
	if limits.Related <= 0 {
		limits.Related = 100
	}
	return &SemanticService{embedder: embedder, store: store, dim: dim, limits: limits}
}

type PageIndexInput struct {
	URL     string
	Title   string
	Summary string
}

type PageIndexResult struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

type SearchResult struct {
	URL     string  `json:"url"`
	Title   string  `json:"title"`
	Summary string  `json:"summary,omitempty"`
	Score   float64 `json:"score"`
}

type HistorySearchResult struct {
	URL      string  `json:"url"`
	Title    string  `json:"title"`
	LastSeen int64   `json:"last_seen"`
	Score    float64 `json:"score"`
}

// IndexPage validates, embeds and persists one page. The embedding is lost if
// the write fails; re-indexing is idempotent-by-duplication so there is no
// compensation step.
func (s *SemanticService) IndexPage(ctx context.Context, userID string, input PageIndexInput) (*PageIndexResult, error) {
	if userID == "" {
		return nil, appErr.ErrUnauthorized
	}
	url := strings.TrimSpace(input.URL)
	title := strings.TrimSpace(input.Title)
	summary := strings.TrimSpace(input.Summary)
	if url == "" || len(url) > maxURLLen {
		return nil, appErr.ErrInvalid
	}
	if title == "" || len([]rune(title)) > maxTitleLen {
		return nil, appErr.ErrInvalid
	}
	if len([]rune(summary)) > maxSummaryLen {
		return nil, appErr.ErrInvalid
	}
	embedding, err := s.embed(ctx, embedText(title, url, summary), taskTypeDocument)
	if err != nil {
		return nil, err
	}
	now := time.Now().UnixMilli()
	rec := &model.PageEmbedding{
		ID:        newID(),
		UserID:    userID,
		URL:       url,
		Title:     title,
		Summary:   summary,
		Embedding: embedding,
		Ctime:     now,
		Mtime:     now,
	}
	if err := s.store.Insert(ctx, rec); err != nil {
		logutil.GetLogger(ctx).Error("failed to persist page embedding", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", appErr.ErrStorage, err)
	}
	logutil.GetLogger(ctx).Info("page indexed", zap.String("user_id", userID), zap.String("page_id", rec.ID))
	return &PageIndexResult{ID: rec.ID, URL: rec.URL}, nil
}

// Search ranks the user's stored pages against the embedded query and returns
// up to k results with raw cosine similarity as the score.
func (s *SemanticService) Search(ctx context.Context, userID, query string, k int) ([]SearchResult, error) {
	matches, byID, err := s.query(ctx, userID, query, rank.Clamp(k, s.limits.Search))
	if err != nil {
		return nil, err
	}
	results := make([]SearchResult, 0, len(matches))
	for _, m := range matches {
		rec := byID[m.ID]
		results = append(results, SearchResult{
			URL:     rec.URL,
			Title:   rec.Title,
			Summary: rec.Summary,
			Score:   m.Score,
		})
	}
	return results, nil
}

// HistorySearch is the history-specific variant: a tighter ceiling, a
// last-seen timestamp per result, and the inverted distance-like score the
// endpoint has always exposed (lower is closer). See rank.InvertedScore.
func (s *SemanticService) HistorySearch(ctx context.Context, userID, query string, k int) ([]HistorySearchResult, error) {
	matches, byID, err := s.query(ctx, userID, query, rank.Clamp(k, s.limits.History))
	if err != nil {
		return nil, err
	}
	results := make([]HistorySearchResult, 0, len(matches))
	for _, m := range matches {
		rec := byID[m.ID]
		results = append(results, HistorySearchResult{
			URL:      rec.URL,
			Title:    rec.Title,
			LastSeen: rec.Mtime,
			Score:    rank.InvertedScore(m.Score),
		})
	}
	return results, nil
}

// RelatedPages ranks the user's pages against the newest stored vector for
// url, with no provider round trip. Rows for the url itself are excluded.
func (s *SemanticService) RelatedPages(ctx context.Context, userID, url string, k int) ([]SearchResult, error) {
	if userID == "" {
		return nil, appErr.ErrUnauthorized
	}
	url = strings.TrimSpace(url)
	if url == "" || len(url) > maxURLLen {
		return nil, appErr.ErrInvalid
	}
	records, err := s.listByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	var anchor *model.PageEmbedding
	for i := range records {
		if records[i].URL != url {
			continue
		}
		if anchor == nil || records[i].Mtime > anchor.Mtime {
			anchor = &records[i]
		}
	}
	if anchor == nil {
		return nil, appErr.ErrNotFound
	}
	byID := make(map[string]*model.PageEmbedding, len(records))
	candidates := make([]rank.Candidate, 0, len(records))
	for i := range records {
		rec := &records[i]
		if rec.URL == url {
			continue
		}
		if len(rec.Embedding) != s.dim {
			logutil.GetLogger(ctx).Warn("skipping record with bad embedding dimension",
				zap.String("page_id", rec.ID), zap.Int("got", len(rec.Embedding)), zap.Int("want", s.dim))
			continue
		}
		byID[rec.ID] = rec
		candidates = append(candidates, rank.Candidate{ID: rec.ID, Vector: rec.Embedding, Mtime: rec.Mtime})
	}
	matches := rank.TopK(anchor.Embedding, candidates, rank.Clamp(k, s.limits.Related))
	results := make([]SearchResult, 0, len(matches))
	for _, m := range matches {
		rec := byID[m.ID]
		results = append(results, SearchResult{
			URL:     rec.URL,
			Title:   rec.Title,
			Summary: rec.Summary,
			Score:   m.Score,
		})
	}
	return results, nil
}

func (s *SemanticService) query(ctx context.Context, userID, query string, k int) ([]rank.Match, map[string]*model.PageEmbedding, error) {
	if userID == "" {
		return nil, nil, appErr.ErrUnauthorized
	}
	query = strings.TrimSpace(query)
	if query == "" || len([]rune(query)) > maxQueryLen {
		return nil, nil, appErr.ErrInvalid
	}
	queryEmbedding, err := s.embed(ctx, query, taskTypeQuery)
	if err != nil {
		return nil, nil, err
	}
	records, err := s.listByUser(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[string]*model.PageEmbedding, len(records))
	candidates := make([]rank.Candidate, 0, len(records))
	for i := range records {
		rec := &records[i]
		if len(rec.Embedding) != s.dim {
			logutil.GetLogger(ctx).Warn("skipping record with bad embedding dimension",
				zap.String("page_id", rec.ID), zap.Int("got", len(rec.Embedding)), zap.Int("want", s.dim))
			continue
		}
		byID[rec.ID] = rec
		candidates = append(candidates, rank.Candidate{ID: rec.ID, Vector: rec.Embedding, Mtime: rec.Mtime})
	}
	return rank.TopK(queryEmbedding, candidates, k), byID, nil
}

func (s *SemanticService) embed(ctx context.Context, text, taskType string) ([]float32, error) {
	if s.embedder == nil {
		return nil, ai.ErrUnavailable
	}
	embedding, err := s.embedder.Embed(ctx, text, taskType)
	if err != nil {
		if errors.Is(err, ai.ErrUnavailable) {
			return nil, err
		}
		logutil.GetLogger(ctx).Error("embedding call failed", zap.String("task_type", taskType), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", appErr.ErrEmbedProvider, err)
	}
	if len(embedding) == 0 {
		return nil, fmt.Errorf("%w: empty embedding returned", appErr.ErrEmbedProvider)
	}
	if len(embedding) != s.dim {
		return nil, fmt.Errorf("%w: embedding dimension %d, want %d", appErr.ErrEmbedProvider, len(embedding), s.dim)
	}
	return embedding, nil
}

func (s *SemanticService) listByUser(ctx context.Context, userID string) ([]model.PageEmbedding, error) {
	records, err := s.store.ListByUser(ctx, userID)
	if err != nil {
		logutil.GetLogger(ctx).Error("failed to list page embeddings", zap.String("user_id", userID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", appErr.ErrStorage, err)
	}
	return records, nil
}

// embedText joins whatever signals the page carries with a fixed separator.
// Inputs are already length-bounded, which caps provider cost per call.
func embedText(title, url, summary string) string {
	parts := make([]string, 0, 3)
	for _, part := range []string{title, url, summary} {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "\n")
}
