package themegraph

import "sort"

// BuildGraph turns aggregates into a theme graph. One node is created per
// keyword with a nonzero comment count, one link per co-occurring keyword
// pair. Output order is deterministic: nodes sorted by keyword, links by
// canonical pair.
func BuildGraph(agg *Aggregates) *ThemeGraph {
	graph := &ThemeGraph{
		Nodes: []ThemeNode{},
		Links: []ThemeLink{},
	}
	if agg == nil {
		return graph
	}

	keywords := make([]string, 0, len(agg.CommentCounts))
	for kw, count := range agg.CommentCounts {
		if count > 0 {
			keywords = append(keywords, kw)
		}
	}
	sort.Strings(keywords)

	for _, kw := range keywords {
		graph.Nodes = append(graph.Nodes, ThemeNode{
			Keyword:   kw,
			Weight:    agg.CommentCounts[kw],
			Sentiment: dominantSentiment(agg.SentimentCounts[kw]),
		})
	}

	pairs := make([]Pair, 0, len(agg.PairCounts))
	for pair, count := range agg.PairCounts {
		if count > 0 {
			pairs = append(pairs, pair)
		}
	}
	sort.Slice(pairs, func(i, j int) bool {
		if pairs[i].Source != pairs[j].Source {
			return pairs[i].Source < pairs[j].Source
		}
		return pairs[i].Target < pairs[j].Target
	})

	for _, pair := range pairs {
		graph.Links = append(graph.Links, ThemeLink{
			Source: pair.Source,
			Target: pair.Target,
			Value:  float64(agg.PairCounts[pair]),
		})
	}

	return graph
}

// dominantSentiment returns the label with the highest count. Ties are
// broken by the fixed priority order positive > neutral > negative, never
// by map iteration.
func dominantSentiment(counts map[string]int) string {
	best := sentimentPriority[0]
	bestCount := counts[best]
	for _, label := range sentimentPriority[1:] {
		if counts[label] > bestCount {
			best = label
			bestCount = counts[label]
		}
	}
	return best
}
