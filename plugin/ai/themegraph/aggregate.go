package themegraph

import (
	"sort"
	"strings"
)

// Record is one classified comment with its matched keywords.
type Record struct {
	Sentiment string
	Keywords  []string
}

// Pair is an unordered keyword pair stored in canonical order (Source < Target),
// so (A,B) and (B,A) always land in the same counter slot.
type Pair struct {
	Source, Target string
}

// NewPair returns the canonical pair for two keywords.
func NewPair(a, b string) Pair {
	if a > b {
		a, b = b, a
	}
	return Pair{Source: a, Target: b}
}

// Aggregates holds per-keyword and per-pair counts over a set of records.
type Aggregates struct {
	// CommentCounts is the number of records containing each keyword at
	// least once.
	CommentCounts map[string]int
	// SentimentCounts is the sentiment histogram per keyword. Records with
	// a missing or unknown sentiment do not increment any histogram bucket
	// but still count toward CommentCounts.
	SentimentCounts map[string]map[string]int
	// PairCounts is the co-occurrence count per unordered keyword pair.
	PairCounts map[Pair]int
}

// Aggregate consumes records and produces the three aggregates the graph is
// built from. Keywords within a record are trimmed, lowercased, deduplicated
// and sorted before counting, so duplicates within one record count once and
// pair generation is deterministic. Records with fewer than two keywords
// contribute no pairs.
func Aggregate(records []Record) *Aggregates {
	agg := &Aggregates{
		CommentCounts:   make(map[string]int),
		SentimentCounts: make(map[string]map[string]int),
		PairCounts:      make(map[Pair]int),
	}

	for _, record := range records {
		unique := uniqueSortedKeywords(record.Keywords)

		for _, kw := range unique {
			agg.CommentCounts[kw]++
			if IsKnownSentiment(record.Sentiment) {
				counts := agg.SentimentCounts[kw]
				if counts == nil {
					counts = make(map[string]int, len(sentimentPriority))
					agg.SentimentCounts[kw] = counts
				}
				counts[record.Sentiment]++
			}
		}

		for i := 0; i < len(unique); i++ {
			for j := i + 1; j < len(unique); j++ {
				agg.PairCounts[Pair{Source: unique[i], Target: unique[j]}]++
			}
		}
	}

	return agg
}

// uniqueSortedKeywords normalizes casing/whitespace, drops empties and
// duplicates, and sorts the remainder.
func uniqueSortedKeywords(keywords []string) []string {
	seen := make(map[string]bool, len(keywords))
	unique := make([]string, 0, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		unique = append(unique, kw)
	}
	sort.Strings(unique)
	return unique
}
