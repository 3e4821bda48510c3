package themegraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregate(t *testing.T) {
	records := []Record{
		{Sentiment: SentimentPositive, Keywords: []string{"battery", "screen"}},
		{Sentiment: SentimentNegative, Keywords: []string{"battery"}},
		{Sentiment: SentimentPositive, Keywords: []string{"screen", "battery", "price"}},
	}

	agg := Aggregate(records)

	assert.Equal(t, 3, agg.CommentCounts["battery"])
	assert.Equal(t, 2, agg.CommentCounts["screen"])
	assert.Equal(t, 1, agg.CommentCounts["price"])

	assert.Equal(t, 2, agg.SentimentCounts["battery"][SentimentPositive])
	assert.Equal(t, 1, agg.SentimentCounts["battery"][SentimentNegative])

	assert.Equal(t, 2, agg.PairCounts[NewPair("battery", "screen")])
	assert.Equal(t, 1, agg.PairCounts[NewPair("battery", "price")])
	assert.Equal(t, 1, agg.PairCounts[NewPair("price", "screen")])
}

func TestAggregateDuplicateKeywordsCountOnce(t *testing.T) {
	records := []Record{
		{Sentiment: SentimentPositive, Keywords: []string{"battery", "Battery", " battery "}},
	}

	agg := Aggregate(records)

	assert.Equal(t, 1, agg.CommentCounts["battery"])
	assert.Empty(t, agg.PairCounts)
}

func TestAggregateUnknownSentiment(t *testing.T) {
	records := []Record{
		{Sentiment: "", Keywords: []string{"battery"}},
		{Sentiment: "mixed", Keywords: []string{"battery"}},
	}

	agg := Aggregate(records)

	// Unknown sentiments still count toward comment totals but never
	// appear in the histogram.
	assert.Equal(t, 2, agg.CommentCounts["battery"])
	assert.Empty(t, agg.SentimentCounts["battery"])
}

func TestAggregatePairOrderInsensitive(t *testing.T) {
	records := []Record{
		{Sentiment: SentimentPositive, Keywords: []string{"screen", "battery"}},
		{Sentiment: SentimentPositive, Keywords: []string{"battery", "screen"}},
	}

	agg := Aggregate(records)

	assert.Len(t, agg.PairCounts, 1)
	assert.Equal(t, 2, agg.PairCounts[NewPair("screen", "battery")])
}

func TestAggregateSingleKeywordNoPairs(t *testing.T) {
	agg := Aggregate([]Record{
		{Sentiment: SentimentNeutral, Keywords: []string{"battery"}},
		{Sentiment: SentimentNeutral, Keywords: nil},
	})

	assert.Empty(t, agg.PairCounts)
	assert.Equal(t, 1, agg.CommentCounts["battery"])
}

func TestNewPairCanonicalOrder(t *testing.T) {
	assert.Equal(t, Pair{Source: "a", Target: "b"}, NewPair("b", "a"))
	assert.Equal(t, Pair{Source: "a", Target: "b"}, NewPair("a", "b"))
}
