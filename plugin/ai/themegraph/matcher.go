package themegraph

import (
	"context"
	"fmt"
	"sort"

	"github.com/brandlens/brandlens/plugin/ai"
)

// Matcher assigns keywords to comments by embedding similarity.
type Matcher struct {
	embedding ai.EmbeddingService
	threshold float64
}

// NewMatcher creates a Matcher with the given similarity threshold.
func NewMatcher(embedding ai.EmbeddingService, threshold float64) *Matcher {
	return &Matcher{
		embedding: embedding,
		threshold: threshold,
	}
}

// Match returns, for each comment, the lexicographically sorted list of
// keywords whose embedding similarity to the comment meets or exceeds the
// threshold. Both sides are normalized before embedding. The comparison is
// a deliberate dense all-pairs scan: per-brand comment volumes are small,
// and approximate shortcuts would change which pairs clear the threshold.
//
// An empty keyword list yields an empty match list for every comment.
func (m *Matcher) Match(ctx context.Context, comments, keywords []string) ([][]string, error) {
	matches := make([][]string, len(comments))
	for i := range matches {
		matches[i] = []string{}
	}
	if len(comments) == 0 || len(keywords) == 0 {
		return matches, nil
	}

	normComments := make([]string, len(comments))
	for i, c := range comments {
		normComments[i] = Normalize(c)
	}
	normKeywords := make([]string, len(keywords))
	for i, k := range keywords {
		normKeywords[i] = Normalize(k)
	}

	commentEmbeddings, err := m.embedding.EmbedBatch(ctx, normComments)
	if err != nil {
		return nil, fmt.Errorf("embed comments: %w", err)
	}
	keywordEmbeddings, err := m.embedding.EmbedBatch(ctx, normKeywords)
	if err != nil {
		return nil, fmt.Errorf("embed keywords: %w", err)
	}

	for i := range comments {
		matched := []string{}
		for j := range keywords {
			if CosineSimilarity(commentEmbeddings[i], keywordEmbeddings[j]) >= m.threshold {
				matched = append(matched, keywords[j])
			}
		}
		sort.Strings(matched)
		matches[i] = matched
	}

	return matches, nil
}
