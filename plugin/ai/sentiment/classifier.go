// Package sentiment classifies comment text into sentiment categories.
package sentiment

import (
	"context"
	"log/slog"
	"strings"

	"github.com/brandlens/brandlens/plugin/ai"
	"github.com/brandlens/brandlens/plugin/ai/themegraph"
)

const systemPrompt = `Classify the sentiment of the following social media comment ` +
	`about a brand or product. Reply with exactly one word: positive, neutral or negative.`

// Classifier is an LLM-backed three-way sentiment classifier.
type Classifier struct {
	llm ai.LLMService
}

// NewClassifier creates a Classifier.
func NewClassifier(llm ai.LLMService) *Classifier {
	return &Classifier{llm: llm}
}

// Classify returns the sentiment label for text. It never fails: any model
// error or unparseable reply yields the neutral label.
func (c *Classifier) Classify(ctx context.Context, text string) string {
	reply, err := c.llm.Chat(ctx, []ai.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: text},
	})
	if err != nil {
		slog.Warn("sentiment classification failed, falling back to neutral", "error", err)
		return themegraph.SentimentNeutral
	}

	return ParseLabel(reply)
}

// ParseLabel maps a model reply to a sentiment label, defaulting to neutral.
// The first recognized label in the reply wins, so verbose replies like
// "Sentiment: negative" still parse.
func ParseLabel(reply string) string {
	reply = strings.ToLower(reply)
	best := -1
	label := themegraph.SentimentNeutral
	for _, candidate := range []string{
		themegraph.SentimentPositive,
		themegraph.SentimentNeutral,
		themegraph.SentimentNegative,
	} {
		if idx := strings.Index(reply, candidate); idx >= 0 && (best == -1 || idx < best) {
			best = idx
			label = candidate
		}
	}
	return label
}
