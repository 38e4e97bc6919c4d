package job

import (
	"context"
	"time"

	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/recollecthq/recollect/internal/repo"
)

// VisitPruneJob trims old visit rows so the frequency table stays bounded.
type VisitPruneJob struct {
	visits   *repo.VisitRepo
	keepDays int
}

func NewVisitPruneJob(visits *repo.VisitRepo, keepDays int) *VisitPruneJob {
	return &VisitPruneJob{visits: visits, keepDays: keepDays}
}

func (j *VisitPruneJob) Name() string {
	return "visit_prune"
}

func (j *VisitPruneJob) Run(ctx context.Context) error {
	cutoff := time.Now().AddDate(0, 0, -j.keepDays).UnixMilli()
	deleted, err := j.visits.DeleteBefore(ctx, cutoff)
	if err != nil {
		return err
	}
	logutil.GetLogger(ctx).Info("visits pruned", zap.Int64("deleted", deleted), zap.Int64("cutoff", cutoff))
	return nil
}
