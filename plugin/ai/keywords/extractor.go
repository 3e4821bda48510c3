// Package keywords generates candidate theme keywords from comment batches.
package keywords

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/brandlens/brandlens/plugin/ai"
	"github.com/brandlens/brandlens/plugin/ai/themegraph"
)

// ErrInsufficientKeywords is returned when the model repeatedly fails to
// produce the minimum number of candidate phrases.
var ErrInsufficientKeywords = errors.New("insufficient candidate keywords")

// maxPromptComments caps how many comments are included in one prompt.
const maxPromptComments = 200

var quotedPhrase = regexp.MustCompile(`"([^"]+)"`)

const systemPrompt = `You analyze social media comments about a brand or product. ` +
	`Extract the recurring themes customers talk about as short keyword phrases ` +
	`(one to three words each). Reply with each phrase in double quotes, nothing else.`

// Extractor prompts the chat model for candidate keyword phrases.
type Extractor struct {
	llm         ai.LLMService
	minKeywords int
	maxAttempts int
	target      int
}

// NewExtractor creates an Extractor. minKeywords is the minimum acceptable
// candidate count; maxAttempts bounds how many times the model is re-asked
// before the extraction fails.
func NewExtractor(llm ai.LLMService, minKeywords, maxAttempts int) *Extractor {
	return &Extractor{
		llm:         llm,
		minKeywords: minKeywords,
		maxAttempts: maxAttempts,
		target:      20,
	}
}

// Extract returns at least minKeywords normalized candidate phrases parsed
// from the model reply. Each attempt replaces the previous result; attempts
// are spaced with exponential backoff. After maxAttempts the call fails with
// ErrInsufficientKeywords wrapping the last shortfall.
func (e *Extractor) Extract(ctx context.Context, comments []string) ([]string, error) {
	if len(comments) == 0 {
		return nil, errors.New("no comments to extract keywords from")
	}

	prompt := e.buildPrompt(comments)

	var candidates []string
	for attempt := 1; attempt <= e.maxAttempts; attempt++ {
		reply, err := e.llm.Chat(ctx, []ai.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: prompt},
		})
		if err != nil {
			return nil, fmt.Errorf("keyword generation: %w", err)
		}

		candidates = parseCandidates(reply)
		if len(candidates) >= e.minKeywords {
			slog.Debug("candidate keywords generated",
				"count", len(candidates),
				"attempts", attempt)
			return candidates, nil
		}

		slog.Warn("candidate keyword count below minimum, retrying",
			"got", len(candidates),
			"min", e.minKeywords,
			"attempt", attempt)

		if attempt < e.maxAttempts {
			waitTime := time.Duration(math.Pow(2, float64(attempt-1))) * time.Second
			select {
			case <-time.After(waitTime):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}

	return nil, fmt.Errorf("%w: got %d, want at least %d after %d attempts",
		ErrInsufficientKeywords, len(candidates), e.minKeywords, e.maxAttempts)
}

func (e *Extractor) buildPrompt(comments []string) string {
	if len(comments) > maxPromptComments {
		comments = comments[:maxPromptComments]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Extract %d keyword phrases from these comments:\n\n", e.target)
	for _, comment := range comments {
		b.WriteString("- ")
		b.WriteString(comment)
		b.WriteString("\n")
	}
	return b.String()
}

// parseCandidates pulls double-quoted phrases out of the model reply,
// normalizes them and drops exact duplicates, preserving reply order.
func parseCandidates(reply string) []string {
	matches := quotedPhrase.FindAllStringSubmatch(reply, -1)
	seen := make(map[string]bool, len(matches))
	candidates := make([]string, 0, len(matches))
	for _, match := range matches {
		phrase := themegraph.Normalize(match[1])
		if phrase == "" || seen[phrase] {
			continue
		}
		seen[phrase] = true
		candidates = append(candidates, phrase)
	}
	return candidates
}
