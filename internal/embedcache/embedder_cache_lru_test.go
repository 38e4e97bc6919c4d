package embedcache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type countingEmbedder struct {
	calls  int
	result []float32
}

func (e *countingEmbedder) Embed(ctx context.Context, text string, taskType string) ([]float32, error) {
	e.calls++
	return e.result, nil
}

func (e *countingEmbedder) ModelName() string {
	return "test-model"
}

func TestLruEmbedderCachesRepeatedText(t *testing.T) {
	inner := &countingEmbedder{result: []float32{0.1, 0.2, 0.3}}
	cached := WrapLruCacheToEmbedder(inner, 16, time.Minute)

	ctx := context.Background()
	first, err := cached.Embed(ctx, "hello", "RETRIEVAL_QUERY")
	require.NoError(t, err)
	second, err := cached.Embed(ctx, "hello", "RETRIEVAL_QUERY")
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, inner.calls)
}

func TestLruEmbedderKeyIncludesTaskType(t *testing.T) {
	inner := &countingEmbedder{result: []float32{0.5}}
	cached := WrapLruCacheToEmbedder(inner, 16, time.Minute)

	ctx := context.Background()
	_, err := cached.Embed(ctx, "hello", "RETRIEVAL_QUERY")
	require.NoError(t, err)
	_, err = cached.Embed(ctx, "hello", "RETRIEVAL_DOCUMENT")
	require.NoError(t, err)
	require.Equal(t, 2, inner.calls)
}

func TestLruEmbedderReturnsCopy(t *testing.T) {
	inner := &countingEmbedder{result: []float32{1, 2}}
	cached := WrapLruCacheToEmbedder(inner, 16, time.Minute)

	ctx := context.Background()
	first, err := cached.Embed(ctx, "hello", "RETRIEVAL_QUERY")
	require.NoError(t, err)
	first[0] = 99

	second, err := cached.Embed(ctx, "hello", "RETRIEVAL_QUERY")
	require.NoError(t, err)
	require.Equal(t, float32(1), second[0])
}

func TestWrapLruCacheToEmbedderDisabled(t *testing.T) {
	inner := &countingEmbedder{result: []float32{1}}
	require.Equal(t, inner, WrapLruCacheToEmbedder(inner, 0, time.Minute))
	require.Equal(t, inner, WrapLruCacheToEmbedder(inner, 16, 0))
}
