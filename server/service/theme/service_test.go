package theme

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandlens/brandlens/plugin/ai"
	"github.com/brandlens/brandlens/plugin/ai/themegraph"
	"github.com/brandlens/brandlens/store"
)

// fakeDriver is an in-memory store.Driver.
type fakeDriver struct {
	mu         sync.Mutex
	comments   []*store.Comment
	keywords   map[int32][]string
	nodes      map[int32][]*store.ThemeNode
	links      map[int32][]*store.ThemeLink
	embeddings map[string]*store.KeywordEmbedding
}

func newFakeDriver() *fakeDriver {
	return &fakeDriver{
		keywords:   map[int32][]string{},
		nodes:      map[int32][]*store.ThemeNode{},
		links:      map[int32][]*store.ThemeLink{},
		embeddings: map[string]*store.KeywordEmbedding{},
	}
}

func (f *fakeDriver) GetDB() *sql.DB                  { return nil }
func (f *fakeDriver) Close() error                    { return nil }
func (f *fakeDriver) Migrate(_ context.Context) error { return nil }

func (f *fakeDriver) CreateComment(_ context.Context, create *store.Comment) (*store.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	create.ID = int32(len(f.comments) + 1)
	f.comments = append(f.comments, create)
	return create, nil
}

func (f *fakeDriver) ListComments(_ context.Context, find *store.FindComment) ([]*store.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []*store.Comment{}
	for _, c := range f.comments {
		if find.BrandID != nil && c.BrandID != *find.BrandID {
			continue
		}
		list = append(list, c)
	}
	return list, nil
}

func (f *fakeDriver) UpdateCommentSentiment(_ context.Context, update *store.UpdateCommentSentiment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.comments {
		if c.ID == update.ID {
			c.Sentiment = update.Sentiment
			return nil
		}
	}
	return fmt.Errorf("comment %d not found", update.ID)
}

func (f *fakeDriver) DeleteComment(_ context.Context, _ *store.DeleteComment) error { return nil }

func (f *fakeDriver) ReplaceKeywords(_ context.Context, brandID int32, phrases []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.keywords[brandID] = phrases
	return nil
}

func (f *fakeDriver) ListKeywords(_ context.Context, find *store.FindKeyword) ([]*store.Keyword, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []*store.Keyword{}
	if find.BrandID == nil {
		return list, nil
	}
	for i, phrase := range f.keywords[*find.BrandID] {
		list = append(list, &store.Keyword{ID: int32(i + 1), BrandID: *find.BrandID, Phrase: phrase})
	}
	return list, nil
}

func (f *fakeDriver) ReplaceThemeGraph(_ context.Context, replace *store.ReplaceThemeGraph) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nodes[replace.BrandID] = replace.Nodes
	f.links[replace.BrandID] = replace.Links
	return nil
}

func (f *fakeDriver) ListThemeNodes(_ context.Context, find *store.FindThemeGraph) ([]*store.ThemeNode, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.nodes[find.BrandID], nil
}

func (f *fakeDriver) ListThemeLinks(_ context.Context, find *store.FindThemeGraph) ([]*store.ThemeLink, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.links[find.BrandID], nil
}

func (f *fakeDriver) UpsertKeywordEmbedding(_ context.Context, upsert *store.KeywordEmbedding) (*store.KeywordEmbedding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embeddings[upsert.TextHash+"/"+upsert.Model] = upsert
	return upsert, nil
}

func (f *fakeDriver) ListKeywordEmbeddings(_ context.Context, find *store.FindKeywordEmbedding) ([]*store.KeywordEmbedding, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []*store.KeywordEmbedding{}
	for _, hash := range find.TextHashes {
		if e, ok := f.embeddings[hash+"/"+find.Model]; ok {
			list = append(list, e)
		}
	}
	return list, nil
}

// fakeEmbedding serves fixed vectors keyed on exact text.
type fakeEmbedding struct {
	vectors map[string][]float32
	mu      sync.Mutex
	calls   int
}

func (f *fakeEmbedding) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := f.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (f *fakeEmbedding) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	f.mu.Lock()
	f.calls += len(texts)
	f.mu.Unlock()
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector, ok := f.vectors[text]
		if !ok {
			return nil, fmt.Errorf("no fixture vector for %q", text)
		}
		vectors[i] = vector
	}
	return vectors, nil
}

func (f *fakeEmbedding) Dimensions() int { return 2 }

// fakeLLM answers keyword extraction and sentiment classification prompts.
type fakeLLM struct {
	keywordReply   string
	sentimentReply string
}

func (f *fakeLLM) Chat(_ context.Context, messages []ai.Message) (string, error) {
	if strings.Contains(messages[0].Content, "Classify") {
		return f.sentimentReply, nil
	}
	return f.keywordReply, nil
}

func vec(x, y float32) []float32 { return []float32{x, y} }

func newTestService(driver *fakeDriver) *Service {
	s := store.New(driver, nil)
	embedding := &fakeEmbedding{vectors: map[string][]float32{
		// Keyword phrases (also serve as normalized matcher input and
		// node keywords).
		"battery life": vec(1, 0),
		"battery":      vec(0.94, 0.342), // ~20 degrees from battery life
		"screen":       vec(0, 1),
		// Normalized comment texts.
		"the battery dies fast": vec(0.985, 0.174), // ~10 degrees
		"love the screen":       vec(0, 1),
		"battery and screen":    vec(0.707, 0.707), // ~45 degrees, matches both
	}}
	llm := &fakeLLM{
		keywordReply:   `"battery life" "battery" "screen"`,
		sentimentReply: "negative",
	}
	config := themegraph.Config{
		DedupeThreshold:    0.85,
		MatchThreshold:     0.5,
		MinLinks:           1,
		SyntheticLinkValue: 0.5,
		MinKeywords:        2,
		MaxKeywordAttempts: 1,
	}
	return NewService(s, embedding, llm, "test-model", config)
}

func TestRegenerate(t *testing.T) {
	ctx := context.Background()
	driver := newFakeDriver()
	driver.comments = []*store.Comment{
		{ID: 1, UID: "c1", BrandID: 1, Text: "The battery dies FAST!"},
		{ID: 2, UID: "c2", BrandID: 1, Text: "Love the screen.", Sentiment: themegraph.SentimentPositive},
		{ID: 3, UID: "c3", BrandID: 1, Text: "Battery and screen"},
		{ID: 4, UID: "c4", BrandID: 1, Text: ""},
	}

	service := newTestService(driver)
	graph, err := service.Regenerate(ctx, 1)
	require.NoError(t, err)

	// "battery" collapses into "battery life" during deduplication.
	assert.Equal(t, []string{"battery life", "screen"}, driver.keywords[1])

	require.Len(t, graph.Nodes, 2)
	assert.Equal(t, themegraph.ThemeNode{
		Keyword:   "battery life",
		Weight:    2,
		Sentiment: themegraph.SentimentNegative,
	}, graph.Nodes[0])
	// screen: one positive, one classified negative; tie goes to positive.
	assert.Equal(t, themegraph.ThemeNode{
		Keyword:   "screen",
		Weight:    2,
		Sentiment: themegraph.SentimentPositive,
	}, graph.Nodes[1])

	require.Len(t, graph.Links, 1)
	assert.Equal(t, themegraph.ThemeLink{
		Source: "battery life",
		Target: "screen",
		Value:  1,
	}, graph.Links[0])

	// Unclassified comments got persisted labels; the empty one was skipped.
	assert.Equal(t, themegraph.SentimentNegative, driver.comments[0].Sentiment)
	assert.Equal(t, themegraph.SentimentPositive, driver.comments[1].Sentiment)
	assert.Equal(t, themegraph.SentimentNegative, driver.comments[2].Sentiment)
	assert.Equal(t, "", driver.comments[3].Sentiment)

	// Graph was persisted and reads back identically.
	stored, err := service.Graph(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, graph, stored)
}

func TestRegenerateNoComments(t *testing.T) {
	service := newTestService(newFakeDriver())
	_, err := service.Regenerate(context.Background(), 1)
	assert.Error(t, err)
}

func TestRegenerateRunInProgress(t *testing.T) {
	service := newTestService(newFakeDriver())
	require.True(t, service.tryLock(1))

	_, err := service.Regenerate(context.Background(), 1)
	assert.ErrorIs(t, err, ErrRunInProgress)

	// Another brand is not blocked by brand 1's run, it fails later on
	// having no comments instead.
	_, err = service.Regenerate(context.Background(), 2)
	assert.NotErrorIs(t, err, ErrRunInProgress)

	service.unlock(1)
	require.True(t, service.tryLock(1))
}

func TestGraphEmptyBrand(t *testing.T) {
	service := newTestService(newFakeDriver())
	graph, err := service.Graph(context.Background(), 42)
	require.NoError(t, err)
	assert.NotNil(t, graph.Nodes)
	assert.NotNil(t, graph.Links)
	assert.Empty(t, graph.Nodes)
	assert.Empty(t, graph.Links)
}

func TestEmbeddingCacheAvoidsRecompute(t *testing.T) {
	ctx := context.Background()
	driver := newFakeDriver()
	inner := &fakeEmbedding{vectors: map[string][]float32{
		"battery life": vec(1, 0),
	}}
	cached := newCachedEmbeddingService(inner, store.New(driver, nil), "test-model")

	first, err := cached.Embed(ctx, "battery life")
	require.NoError(t, err)
	callsAfterFirst := inner.calls

	second, err := cached.Embed(ctx, "battery life")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, callsAfterFirst, inner.calls, "second lookup must hit the cache")
}
