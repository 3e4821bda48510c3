package themegraph

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/brandlens/brandlens/plugin/ai"
)

// Augmenter guarantees minimum graph connectivity by appending synthetic
// similarity links for under-connected nodes.
type Augmenter struct {
	embedding ai.EmbeddingService
	minLinks  int
	linkValue float64
}

// NewAugmenter creates an Augmenter. linkValue is the sentinel value that
// marks synthetic links in the output.
func NewAugmenter(embedding ai.EmbeddingService, minLinks int, linkValue float64) *Augmenter {
	return &Augmenter{
		embedding: embedding,
		minLinks:  minLinks,
		linkValue: linkValue,
	}
}

// Augment appends synthetic links until every node has at least minLinks
// distinct neighbors or is connected to every other node. Node keyword
// embeddings are computed once and reused across all decisions in the run.
// Candidates are ranked by descending similarity, with node order breaking
// ties. Adjacency bookkeeping is updated on both endpoints, so a synthetic
// link also counts toward the target node's minimum when it is scanned
// later. Real links are never removed or modified.
func (a *Augmenter) Augment(ctx context.Context, graph *ThemeGraph) error {
	if graph == nil || len(graph.Nodes) == 0 {
		return nil
	}

	keywords := make([]string, len(graph.Nodes))
	for i, node := range graph.Nodes {
		keywords[i] = node.Keyword
	}

	embeddings, err := a.embedding.EmbedBatch(ctx, keywords)
	if err != nil {
		return fmt.Errorf("embed node keywords: %w", err)
	}
	if len(embeddings) != len(keywords) {
		return fmt.Errorf("embedding count mismatch: got %d vectors for %d nodes", len(embeddings), len(keywords))
	}

	connected := make(map[string]map[string]bool, len(graph.Nodes))
	for _, kw := range keywords {
		connected[kw] = make(map[string]bool)
	}
	for _, link := range graph.Links {
		connected[link.Source][link.Target] = true
		connected[link.Target][link.Source] = true
	}

	added := 0
	for i, node := range graph.Nodes {
		neighbors := connected[node.Keyword]
		if len(neighbors) >= a.minLinks {
			continue
		}

		type candidate struct {
			index int
			sim   float64
		}
		candidates := make([]candidate, 0, len(graph.Nodes)-1)
		for j := range graph.Nodes {
			if j == i {
				continue
			}
			candidates = append(candidates, candidate{
				index: j,
				sim:   CosineSimilarity(embeddings[i], embeddings[j]),
			})
		}
		sort.SliceStable(candidates, func(x, y int) bool {
			return candidates[x].sim > candidates[y].sim
		})

		for _, c := range candidates {
			if len(neighbors) >= a.minLinks {
				break
			}
			target := graph.Nodes[c.index].Keyword
			if neighbors[target] {
				continue
			}
			graph.Links = append(graph.Links, ThemeLink{
				Source: node.Keyword,
				Target: target,
				Value:  a.linkValue,
			})
			neighbors[target] = true
			connected[target][node.Keyword] = true
			added++
		}
	}

	if added > 0 {
		slog.Debug("added synthetic similarity links", "count", added, "min_links", a.minLinks)
	}
	return nil
}
