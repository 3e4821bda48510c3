package themegraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeduplicate(t *testing.T) {
	ctx := context.Background()

	// Threshold 0.85 corresponds to roughly 31.8 degrees.
	mock := newMockEmbeddingService(map[string][]float32{
		"battery life":  unitVector(0),
		"battery":       unitVector(20),
		"screen":        unitVector(90),
		"display":       unitVector(100),
		"shipping time": unitVector(200),
	})
	deduper := NewDeduplicator(mock, 0.85)

	result, err := deduper.Deduplicate(ctx, []string{
		"battery life", "battery", "screen", "display", "shipping time",
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"battery life", "screen", "shipping time"}, result)
}

func TestDeduplicateNotTransitive(t *testing.T) {
	ctx := context.Background()

	// B is within the threshold of A, and C is within the threshold of B,
	// but C is not within the threshold of A. C must survive: membership is
	// decided against the representative only.
	mock := newMockEmbeddingService(map[string][]float32{
		"a": unitVector(0),
		"b": unitVector(25),
		"c": unitVector(50),
	})
	deduper := NewDeduplicator(mock, 0.85)

	result, err := deduper.Deduplicate(ctx, []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "c"}, result)
}

func TestDeduplicatePreservesOrder(t *testing.T) {
	ctx := context.Background()

	mock := newMockEmbeddingService(map[string][]float32{
		"zebra": unitVector(0),
		"apple": unitVector(90),
		"mango": unitVector(180),
	})
	deduper := NewDeduplicator(mock, 0.85)

	result, err := deduper.Deduplicate(ctx, []string{"zebra", "apple", "mango"})
	require.NoError(t, err)
	assert.Equal(t, []string{"zebra", "apple", "mango"}, result)
}

func TestDeduplicateEmptyInput(t *testing.T) {
	mock := newMockEmbeddingService(nil)
	deduper := NewDeduplicator(mock, 0.85)

	result, err := deduper.Deduplicate(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{}, result)
}

func TestDeduplicateEmbeddingFailure(t *testing.T) {
	mock := newMockEmbeddingService(nil)
	mock.shouldFail = true
	deduper := NewDeduplicator(mock, 0.85)

	_, err := deduper.Deduplicate(context.Background(), []string{"a", "b"})
	assert.Error(t, err)
}

func TestDeduplicateIdempotent(t *testing.T) {
	ctx := context.Background()

	mock := newMockEmbeddingService(map[string][]float32{
		"battery life": unitVector(0),
		"battery":      unitVector(20),
		"screen":       unitVector(90),
	})
	deduper := NewDeduplicator(mock, 0.85)

	first, err := deduper.Deduplicate(ctx, []string{"battery life", "battery", "screen"})
	require.NoError(t, err)

	second, err := deduper.Deduplicate(ctx, first)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
