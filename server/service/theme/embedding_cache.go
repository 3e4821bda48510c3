package theme

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"

	"github.com/pkg/errors"

	"github.com/brandlens/brandlens/plugin/ai"
	"github.com/brandlens/brandlens/store"
)

// cachedEmbeddingService fronts an EmbeddingService with the keyword
// embedding table. Vectors are deterministic per model, so a cache hit is
// always safe to reuse. Cache failures degrade to the inner service; they
// never fail a pipeline run.
type cachedEmbeddingService struct {
	inner ai.EmbeddingService
	store *store.Store
	model string
}

func newCachedEmbeddingService(inner ai.EmbeddingService, s *store.Store, model string) ai.EmbeddingService {
	return &cachedEmbeddingService{
		inner: inner,
		store: s,
		model: model,
	}
}

func textHash(model, text string) string {
	sum := sha256.Sum256([]byte(model + "\x00" + text))
	return hex.EncodeToString(sum[:])
}

func (c *cachedEmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := c.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		return nil, errors.New("empty embedding result")
	}
	return vectors[0], nil
}

func (c *cachedEmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, errors.New("no texts provided for embedding")
	}

	hashes := make([]string, len(texts))
	for i, text := range texts {
		hashes[i] = textHash(c.model, text)
	}

	cached := map[string][]float32{}
	stored, err := c.store.ListKeywordEmbeddings(ctx, &store.FindKeywordEmbedding{
		TextHashes: hashes,
		Model:      c.model,
	})
	if err != nil {
		slog.Warn("embedding cache lookup failed", "error", err)
	} else {
		for _, e := range stored {
			cached[e.TextHash] = e.Embedding
		}
	}

	missing := []string{}
	missingIdx := []int{}
	vectors := make([][]float32, len(texts))
	for i := range texts {
		if vec, ok := cached[hashes[i]]; ok {
			vectors[i] = vec
			continue
		}
		missing = append(missing, texts[i])
		missingIdx = append(missingIdx, i)
	}

	if len(missing) > 0 {
		fresh, err := c.inner.EmbedBatch(ctx, missing)
		if err != nil {
			return nil, err
		}
		if len(fresh) != len(missing) {
			return nil, errors.Errorf("embedding count mismatch: got %d, want %d", len(fresh), len(missing))
		}
		for k, vec := range fresh {
			i := missingIdx[k]
			vectors[i] = vec
			if _, err := c.store.UpsertKeywordEmbedding(ctx, &store.KeywordEmbedding{
				TextHash:  hashes[i],
				Model:     c.model,
				Embedding: vec,
			}); err != nil {
				slog.Warn("embedding cache write failed", "error", err)
			}
		}
	}

	return vectors, nil
}

func (c *cachedEmbeddingService) Dimensions() int {
	return c.inner.Dimensions()
}
