package themegraph

import (
	"context"
	"fmt"

	"github.com/brandlens/brandlens/plugin/ai"
)

// Deduplicator collapses near-duplicate candidate phrases into one
// representative per similarity cluster.
type Deduplicator struct {
	embedding ai.EmbeddingService
	threshold float64
}

// NewDeduplicator creates a Deduplicator with the given similarity threshold.
func NewDeduplicator(embedding ai.EmbeddingService, threshold float64) *Deduplicator {
	return &Deduplicator{
		embedding: embedding,
		threshold: threshold,
	}
}

// Deduplicate returns the input phrases reduced to cluster representatives,
// preserving first-occurrence order. Each representative is the first-seen
// member of its cluster; every later phrase within the threshold of the
// representative is claimed by it. Clustering is single-link relative to the
// representative, not transitive closure, so a phrase similar to a cluster
// member but not to the representative survives on its own.
//
// An embedding failure fails the whole call; no partial result is returned.
func (d *Deduplicator) Deduplicate(ctx context.Context, phrases []string) ([]string, error) {
	if len(phrases) == 0 {
		return []string{}, nil
	}

	embeddings, err := d.embedding.EmbedBatch(ctx, phrases)
	if err != nil {
		return nil, fmt.Errorf("embed candidate phrases: %w", err)
	}
	if len(embeddings) != len(phrases) {
		return nil, fmt.Errorf("embedding count mismatch: got %d vectors for %d phrases", len(embeddings), len(phrases))
	}

	claimed := make([]bool, len(phrases))
	keep := make([]string, 0, len(phrases))
	for i := range phrases {
		if claimed[i] {
			continue
		}
		for j := i; j < len(phrases); j++ {
			if claimed[j] {
				continue
			}
			if CosineSimilarity(embeddings[i], embeddings[j]) >= d.threshold {
				claimed[j] = true
			}
		}
		keep = append(keep, phrases[i])
	}

	return keep, nil
}
