package themegraph

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// mockEmbeddingService maps exact input text to a fixed vector. Unknown
// texts fail the batch, so tests notice missing fixtures immediately.
type mockEmbeddingService struct {
	vectors    map[string][]float32
	dimensions int
	shouldFail bool
}

func newMockEmbeddingService(vectors map[string][]float32) *mockEmbeddingService {
	dims := 0
	for _, v := range vectors {
		dims = len(v)
		break
	}
	return &mockEmbeddingService{
		vectors:    vectors,
		dimensions: dims,
	}
}

func (m *mockEmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	vectors, err := m.EmbedBatch(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (m *mockEmbeddingService) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.shouldFail {
		return nil, errors.New("embedding service error")
	}
	vectors := make([][]float32, len(texts))
	for i, text := range texts {
		vector, ok := m.vectors[text]
		if !ok {
			return nil, fmt.Errorf("no fixture vector for %q", text)
		}
		vectors[i] = vector
	}
	return vectors, nil
}

func (m *mockEmbeddingService) Dimensions() int {
	return m.dimensions
}

// unitVector returns a 2D unit vector at the given angle in degrees.
// Cosine similarity between two of these equals the cosine of the angle
// between them, which makes threshold scenarios easy to stage.
func unitVector(degrees float64) []float32 {
	rad := degrees * math.Pi / 180
	return []float32{float32(math.Cos(rad)), float32(math.Sin(rad))}
}
