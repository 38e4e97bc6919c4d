package repo

import (
	"context"
	"database/sql"

	"github.com/recollecthq/recollect/internal/model"
)

type VisitRepo struct {
	db *sql.DB
}

func NewVisitRepo(db *sql.DB) *VisitRepo {
	return &VisitRepo{db: db}
}

// Record bumps the per-URL counter, creating the row on first visit.
func (r *VisitRepo) Record(ctx context.Context, userID, url, title string, visitedAt int64) error {
	const query = `
		INSERT INTO visits (user_id, url, title, visit_count, last_visited)
		VALUES ($1, $2, $3, 1, $4)
		ON CONFLICT (user_id, url) DO UPDATE SET
			visit_count = visits.visit_count + 1,
			title = EXCLUDED.title,
			last_visited = EXCLUDED.last_visited
	`
	_, err := r.db.ExecContext(ctx, query, userID, url, title, visitedAt)
	return err
}

func (r *VisitRepo) TopByUser(ctx context.Context, userID string, limit int) ([]model.Visit, error) {
	const query = `
		SELECT user_id, url, title, visit_count, last_visited
		FROM visits
		WHERE user_id = $1
		ORDER BY visit_count DESC, last_visited DESC
		LIMIT $2
	`
	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var results []model.Visit
	for rows.Next() {
		var item model.Visit
		if err := rows.Scan(&item.UserID, &item.URL, &item.Title, &item.VisitCount, &item.LastVisited); err != nil {
			return nil, err
		}
		results = append(results, item)
	}
	return results, rows.Err()
}

func (r *VisitRepo) DeleteBefore(ctx context.Context, cutoff int64) (int64, error) {
	const query = `DELETE FROM visits WHERE last_visited < $1`
	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
