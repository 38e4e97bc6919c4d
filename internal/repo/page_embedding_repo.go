package repo

import (
	"context"
	"database/sql"

	"github.com/pgvector/pgvector-go"

	"github.com/recollecthq/recollect/internal/model"
)

// PageEmbeddingRepo persists indexed page vectors. Writes are append-only:
// there is no uniqueness constraint on (user_id, url), re-indexing a URL adds
// a row. Reads are always scoped to one user.
type PageEmbeddingRepo struct {
	db *sql.DB
}

func NewPageEmbeddingRepo(db *sql.DB) *PageEmbeddingRepo {
	return &PageEmbeddingRepo{db: db}
}

func (r *PageEmbeddingRepo) Insert(ctx context.Context, rec *model.PageEmbedding) error {
	const query = `
		INSERT INTO page_embeddings (id, user_id, url, title, summary, embedding, ctime, mtime)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.UserID,
		rec.URL,
		rec.Title,
		rec.Summary,
		pgvector.NewVector(rec.Embedding),
		rec.Ctime,
		rec.Mtime,
	)
	return err
}

// ListByUser returns every record owned by userID. Order is unspecified;
// ranking decides presentation order.
func (r *PageEmbeddingRepo) ListByUser(ctx context.Context, userID string) ([]model.PageEmbedding, error) {
	const query = `
		SELECT id, user_id, url, title, summary, embedding, ctime, mtime
		FROM page_embeddings
		WHERE user_id = $1
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	var results []model.PageEmbedding
	for rows.Next() {
		var item model.PageEmbedding
		var embedding pgvector.Vector
		if err := rows.Scan(&item.ID, &item.UserID, &item.URL, &item.Title, &item.Summary, &embedding, &item.Ctime, &item.Mtime); err != nil {
			return nil, err
		}
		item.Embedding = embedding.Slice()
		results = append(results, item)
	}
	return results, rows.Err()
}

func (r *PageEmbeddingRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	const query = `SELECT COUNT(*) FROM page_embeddings WHERE user_id = $1`
	var count int64
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PageEmbeddingRepo) DeleteByUser(ctx context.Context, userID string) (int64, error) {
	const query = `DELETE FROM page_embeddings WHERE user_id = $1`
	res, err := r.db.ExecContext(ctx, query, userID)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
