package keywords

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandlens/brandlens/plugin/ai"
)

type mockLLMService struct {
	replies   []string
	err       error
	callCount int
}

func (m *mockLLMService) Chat(_ context.Context, _ []ai.Message) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	reply := m.replies[m.callCount%len(m.replies)]
	m.callCount++
	return reply, nil
}

func quotedReply(n int) string {
	reply := ""
	for i := 0; i < n; i++ {
		reply += fmt.Sprintf("%d. \"keyword %d\"\n", i+1, i)
	}
	return reply
}

func TestExtract(t *testing.T) {
	llm := &mockLLMService{replies: []string{quotedReply(16)}}
	extractor := NewExtractor(llm, 15, 5)

	candidates, err := extractor.Extract(context.Background(), []string{"great product"})
	require.NoError(t, err)
	assert.Len(t, candidates, 16)
	assert.Equal(t, 1, llm.callCount)
}

func TestExtractInsufficientKeywords(t *testing.T) {
	llm := &mockLLMService{replies: []string{quotedReply(3)}}
	extractor := NewExtractor(llm, 15, 1)

	_, err := extractor.Extract(context.Background(), []string{"great product"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientKeywords)
	assert.Equal(t, 1, llm.callCount)
}

func TestExtractChatFailure(t *testing.T) {
	llm := &mockLLMService{err: errors.New("model unavailable")}
	extractor := NewExtractor(llm, 15, 5)

	_, err := extractor.Extract(context.Background(), []string{"great product"})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInsufficientKeywords)
}

func TestExtractNoComments(t *testing.T) {
	extractor := NewExtractor(&mockLLMService{}, 15, 5)

	_, err := extractor.Extract(context.Background(), nil)
	assert.Error(t, err)
}

func TestParseCandidates(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		expected []string
	}{
		{
			name:     "quoted phrases",
			reply:    `Here you go: "Battery Life", "Screen Quality", "price"`,
			expected: []string{"battery life", "screen quality", "price"},
		},
		{
			name:     "duplicates after normalization collapse",
			reply:    `"battery life" "Battery Life!" "BATTERY LIFE"`,
			expected: []string{"battery life"},
		},
		{
			name:     "no quotes",
			reply:    "battery life, screen quality",
			expected: []string{},
		},
		{
			name:     "punctuation-only phrase dropped",
			reply:    `"!!!" "price"`,
			expected: []string{"price"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseCandidates(tt.reply))
		})
	}
}
