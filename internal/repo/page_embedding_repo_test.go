package repo

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/recollecthq/recollect/internal/model"
)

func testDB(t *testing.T) *sql.DB {
	host := os.Getenv("TEST_DB_HOST")
	if host == "" {
		t.Skip("TEST_DB_HOST not set")
	}
	dsn := fmt.Sprintf("host=%s port=5432 user=postgres password=postgres dbname=recollect_test sslmode=disable", host)
	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	require.NoError(t, db.Ping())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestPageEmbeddingRepoInsertAndList(t *testing.T) {
	db := testDB(t)
	repo := NewPageEmbeddingRepo(db)
	ctx := context.Background()

	userID := fmt.Sprintf("test-user-%d", time.Now().UnixNano())
	t.Cleanup(func() { _, _ = repo.DeleteByUser(ctx, userID) })

	embedding := make([]float32, 768)
	embedding[0] = 0.25
	embedding[767] = -0.5
	now := time.Now().UnixMilli()
	rec := &model.PageEmbedding{
		ID:        fmt.Sprintf("pe-%d", now),
		UserID:    userID,
		URL:       "https://example.com/article",
		Title:     "example article",
		Summary:   "an article about examples",
		Embedding: embedding,
		Ctime:     now,
		Mtime:     now,
	}
	require.NoError(t, repo.Insert(ctx, rec))

	// Append-only: a second insert for the same url adds a row.
	rec2 := *rec
	rec2.ID = rec.ID + "-2"
	rec2.Mtime = now + 1
	require.NoError(t, repo.Insert(ctx, &rec2))

	records, err := repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Len(t, records, 2)
	for _, got := range records {
		require.Equal(t, userID, got.UserID)
		require.Len(t, got.Embedding, 768)
		require.InDelta(t, 0.25, got.Embedding[0], 1e-6)
	}

	count, err := repo.CountByUser(ctx, userID)
	require.NoError(t, err)
	require.EqualValues(t, 2, count)

	deleted, err := repo.DeleteByUser(ctx, userID)
	require.NoError(t, err)
	require.EqualValues(t, 2, deleted)

	records, err = repo.ListByUser(ctx, userID)
	require.NoError(t, err)
	require.Empty(t, records)
}
