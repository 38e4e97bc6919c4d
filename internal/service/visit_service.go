package service

import (
	"context"
	"strings"
	"time"

	"github.com/recollecthq/recollect/internal/model"
	appErr "github.com/recollecthq/recollect/internal/pkg/errors"
	"github.com/recollecthq/recollect/internal/repo"
)

const maxTopVisits = 100

type VisitService struct {
	visits *repo.VisitRepo
}

func NewVisitService(visits *repo.VisitRepo) *VisitService {
	return &VisitService{visits: visits}
}

func (s *VisitService) Record(ctx context.Context, userID, url, title string) error {
	url = strings.TrimSpace(url)
	if url == "" || len(url) > maxURLLen {
		return appErr.ErrInvalid
	}
	title = strings.TrimSpace(title)
	if len([]rune(title)) > maxTitleLen {
		title = string([]rune(title)[:maxTitleLen])
	}
	return s.visits.Record(ctx, userID, url, title, time.Now().UnixMilli())
}

func (s *VisitService) Top(ctx context.Context, userID string, limit int) ([]model.Visit, error) {
	if limit <= 0 || limit > maxTopVisits {
		limit = maxTopVisits
	}
	return s.visits.TopByUser(ctx, userID, limit)
}
