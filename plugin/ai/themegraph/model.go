// Package themegraph builds weighted keyword graphs from brand comments.
package themegraph

// Sentiment labels.
const (
	SentimentPositive = "positive"
	SentimentNeutral  = "neutral"
	SentimentNegative = "negative"
)

// sentimentPriority is the fixed tie-break order for dominant sentiment.
// When two categories have equal counts, the earlier one wins.
var sentimentPriority = []string{SentimentPositive, SentimentNeutral, SentimentNegative}

// IsKnownSentiment reports whether label is one of the three sentiment categories.
func IsKnownSentiment(label string) bool {
	return label == SentimentPositive || label == SentimentNeutral || label == SentimentNegative
}

// ThemeNode represents a keyword node in the theme graph.
type ThemeNode struct {
	Keyword   string `json:"keyword"`
	Weight    int    `json:"weight"`    // distinct comments containing the keyword
	Sentiment string `json:"sentiment"` // dominant sentiment
}

// ThemeLink represents an undirected edge between two keywords.
// Value is the co-occurrence count for real links, or the configured
// sentinel value for synthetic similarity links.
type ThemeLink struct {
	Source string  `json:"source"`
	Target string  `json:"target"`
	Value  float64 `json:"value"`
}

// ThemeGraph is the externally persisted artifact.
type ThemeGraph struct {
	Nodes []ThemeNode `json:"nodes"`
	Links []ThemeLink `json:"links"`
}

// Config contains all pipeline thresholds and limits. It is the single
// source of truth; components receive values from here instead of
// re-declaring them per call site.
type Config struct {
	// DedupeThreshold is the minimum cosine similarity for two candidate
	// phrases to be considered duplicates.
	DedupeThreshold float64
	// MatchThreshold is the minimum cosine similarity for a comment to
	// match a keyword.
	MatchThreshold float64
	// MinLinks is the minimum number of distinct neighbors every node
	// must have after augmentation.
	MinLinks int
	// SyntheticLinkValue marks similarity-inferred links.
	SyntheticLinkValue float64
	// MinKeywords is the minimum number of candidate keywords required
	// before deduplication.
	MinKeywords int
	// MaxKeywordAttempts bounds candidate-keyword generation retries.
	MaxKeywordAttempts int
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		DedupeThreshold:    0.85,
		MatchThreshold:     0.5,
		MinLinks:           4,
		SyntheticLinkValue: 0.5,
		MinKeywords:        15,
		MaxKeywordAttempts: 5,
	}
}
