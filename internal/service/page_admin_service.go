package service

import (
	"context"
	"fmt"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	appErr "github.com/recollecthq/recollect/internal/pkg/errors"
	"github.com/recollecthq/recollect/internal/repo"
)

// PageAdminService is the maintenance surface over the vector index: how many
// rows a user has, and wiping them all (the only supported deletion; single
// rows are never removed).
type PageAdminService struct {
	pages *repo.PageEmbeddingRepo
}

func NewPageAdminService(pages *repo.PageEmbeddingRepo) *PageAdminService {
	return &PageAdminService{pages: pages}
}

type PageIndexStats struct {
	Count int64 `json:"count"`
}

func (s *PageAdminService) Stats(ctx context.Context, userID string) (*PageIndexStats, error) {
	if userID == "" {
		return nil, appErr.ErrUnauthorized
	}
	count, err := s.pages.CountByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", appErr.ErrStorage, err)
	}
	return &PageIndexStats{Count: count}, nil
}

func (s *PageAdminService) ClearIndex(ctx context.Context, userID string) (int64, error) {
	if userID == "" {
		return 0, appErr.ErrUnauthorized
	}
	deleted, err := s.pages.DeleteByUser(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", appErr.ErrStorage, err)
	}
	logutil.GetLogger(ctx).Info("page index cleared", zap.String("user_id", userID), zap.Int64("deleted", deleted))
	return deleted, nil
}
