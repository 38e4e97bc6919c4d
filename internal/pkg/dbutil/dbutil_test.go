package dbutil

import (
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

func TestFinalizeRebindsPlaceholders(t *testing.T) {
	query, args := Finalize("SELECT * FROM notes WHERE user_id = ? AND id = ?", []interface{}{"u1", "n1"})
	require.Equal(t, "SELECT * FROM notes WHERE user_id = $1 AND id = $2", query)
	require.Equal(t, []interface{}{"u1", "n1"}, args)
}

func TestFinalizeRewritesLimitOffset(t *testing.T) {
	// gendry emits "LIMIT offset,count"; Postgres wants "LIMIT count OFFSET offset".
	query, args := Finalize("SELECT * FROM notes WHERE user_id = ? LIMIT ?,?", []interface{}{"u1", 10, 5})
	require.Equal(t, "SELECT * FROM notes WHERE user_id = $1 LIMIT $2 OFFSET $3", query)
	require.Equal(t, []interface{}{"u1", 5, 10}, args)
}

func TestIsConflict(t *testing.T) {
	require.True(t, IsConflict(&pq.Error{Code: "23505"}))
	require.False(t, IsConflict(&pq.Error{Code: "23503"}))
	require.False(t, IsConflict(nil))
}
