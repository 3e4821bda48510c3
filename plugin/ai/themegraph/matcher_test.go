package themegraph

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	ctx := context.Background()

	// Threshold 0.5 corresponds to 60 degrees. The mock is keyed on
	// normalized text because the matcher normalizes before embedding.
	mock := newMockEmbeddingService(map[string][]float32{
		"the battery dies fast": unitVector(10),
		"love the screen":       unitVector(90),
		"battery":               unitVector(0),
		"screen":                unitVector(100),
		"shipping":              unitVector(200),
	})
	matcher := NewMatcher(mock, 0.5)

	matches, err := matcher.Match(ctx,
		[]string{"The battery dies FAST!", "Love the screen."},
		[]string{"battery", "screen", "shipping"},
	)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, []string{"battery"}, matches[0])
	assert.Equal(t, []string{"screen"}, matches[1])
}

func TestMatchSortsKeywords(t *testing.T) {
	ctx := context.Background()

	// Both keywords clear the threshold; output must be sorted
	// lexicographically regardless of input order.
	mock := newMockEmbeddingService(map[string][]float32{
		"great value overall": unitVector(0),
		"value":               unitVector(10),
		"affordable":          unitVector(20),
	})
	matcher := NewMatcher(mock, 0.5)

	matches, err := matcher.Match(ctx,
		[]string{"Great value overall"},
		[]string{"value", "affordable"},
	)
	require.NoError(t, err)
	assert.Equal(t, []string{"affordable", "value"}, matches[0])
}

func TestMatchNoKeywords(t *testing.T) {
	mock := newMockEmbeddingService(nil)
	matcher := NewMatcher(mock, 0.5)

	matches, err := matcher.Match(context.Background(), []string{"a comment"}, nil)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, []string{}, matches[0])
}

func TestMatchNoComments(t *testing.T) {
	mock := newMockEmbeddingService(nil)
	matcher := NewMatcher(mock, 0.5)

	matches, err := matcher.Match(context.Background(), nil, []string{"battery"})
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestMatchEmbeddingFailure(t *testing.T) {
	mock := newMockEmbeddingService(nil)
	mock.shouldFail = true
	matcher := NewMatcher(mock, 0.5)

	_, err := matcher.Match(context.Background(), []string{"a"}, []string{"b"})
	assert.Error(t, err)
}
