package themegraph

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func augmentFixture(n int) (*ThemeGraph, *mockEmbeddingService) {
	graph := &ThemeGraph{Nodes: []ThemeNode{}, Links: []ThemeLink{}}
	vectors := map[string][]float32{}
	for i := 0; i < n; i++ {
		kw := fmt.Sprintf("kw%02d", i)
		graph.Nodes = append(graph.Nodes, ThemeNode{Keyword: kw, Weight: 1, Sentiment: SentimentNeutral})
		vectors[kw] = unitVector(float64(i * 7))
	}
	return graph, newMockEmbeddingService(vectors)
}

func neighborSets(graph *ThemeGraph) map[string]map[string]bool {
	neighbors := map[string]map[string]bool{}
	for _, node := range graph.Nodes {
		neighbors[node.Keyword] = map[string]bool{}
	}
	for _, link := range graph.Links {
		neighbors[link.Source][link.Target] = true
		neighbors[link.Target][link.Source] = true
	}
	return neighbors
}

func TestAugmentMeetsMinimumConnectivity(t *testing.T) {
	graph, mock := augmentFixture(8)
	graph.Links = append(graph.Links, ThemeLink{Source: "kw00", Target: "kw01", Value: 3})

	augmenter := NewAugmenter(mock, 4, 0.5)
	require.NoError(t, augmenter.Augment(context.Background(), graph))

	for kw, set := range neighborSets(graph) {
		assert.GreaterOrEqual(t, len(set), 4, "node %s is under-connected", kw)
	}
}

func TestAugmentNoSelfLoopsOrDuplicates(t *testing.T) {
	graph, mock := augmentFixture(6)

	augmenter := NewAugmenter(mock, 4, 0.5)
	require.NoError(t, augmenter.Augment(context.Background(), graph))

	seen := map[Pair]bool{}
	for _, link := range graph.Links {
		assert.NotEqual(t, link.Source, link.Target, "self loop on %s", link.Source)
		pair := NewPair(link.Source, link.Target)
		assert.False(t, seen[pair], "duplicate link %v", pair)
		seen[pair] = true
	}
}

func TestAugmentPreservesRealLinks(t *testing.T) {
	graph, mock := augmentFixture(6)
	real := ThemeLink{Source: "kw00", Target: "kw05", Value: 7}
	graph.Links = append(graph.Links, real)

	augmenter := NewAugmenter(mock, 4, 0.5)
	require.NoError(t, augmenter.Augment(context.Background(), graph))

	assert.Equal(t, real, graph.Links[0])
	for _, link := range graph.Links[1:] {
		assert.Equal(t, 0.5, link.Value, "synthetic links carry the sentinel value")
	}
}

func TestAugmentSyntheticLinksCountForBothEndpoints(t *testing.T) {
	// Two nodes, minimum one link. The first node links to the second; when
	// the second node is scanned that link already satisfies it, so exactly
	// one link is added in total.
	graph, mock := augmentFixture(2)

	augmenter := NewAugmenter(mock, 1, 0.5)
	require.NoError(t, augmenter.Augment(context.Background(), graph))

	assert.Len(t, graph.Links, 1)
}

func TestAugmentSmallGraphConnectsFully(t *testing.T) {
	// Fewer nodes than minLinks+1: every node ends up connected to every
	// other node and the loop terminates.
	graph, mock := augmentFixture(3)

	augmenter := NewAugmenter(mock, 4, 0.5)
	require.NoError(t, augmenter.Augment(context.Background(), graph))

	for kw, set := range neighborSets(graph) {
		assert.Len(t, set, 2, "node %s should connect to all others", kw)
	}
}

func TestAugmentPicksMostSimilarFirst(t *testing.T) {
	graph := &ThemeGraph{
		Nodes: []ThemeNode{
			{Keyword: "anchor", Weight: 1, Sentiment: SentimentNeutral},
			{Keyword: "near", Weight: 1, Sentiment: SentimentNeutral},
			{Keyword: "far", Weight: 1, Sentiment: SentimentNeutral},
		},
		Links: []ThemeLink{},
	}
	mock := newMockEmbeddingService(map[string][]float32{
		"anchor": unitVector(0),
		"near":   unitVector(10),
		"far":    unitVector(120),
	})

	augmenter := NewAugmenter(mock, 1, 0.5)
	require.NoError(t, augmenter.Augment(context.Background(), graph))

	require.NotEmpty(t, graph.Links)
	assert.Equal(t, ThemeLink{Source: "anchor", Target: "near", Value: 0.5}, graph.Links[0])
}

func TestAugmentEmptyGraph(t *testing.T) {
	mock := newMockEmbeddingService(nil)
	augmenter := NewAugmenter(mock, 4, 0.5)

	assert.NoError(t, augmenter.Augment(context.Background(), nil))
	assert.NoError(t, augmenter.Augment(context.Background(), &ThemeGraph{}))
}

func TestAugmentEmbeddingFailure(t *testing.T) {
	graph, mock := augmentFixture(3)
	mock.shouldFail = true

	augmenter := NewAugmenter(mock, 4, 0.5)
	assert.Error(t, augmenter.Augment(context.Background(), graph))
}
