package store

// KeywordEmbedding caches one embedding vector keyed by text hash and model.
// Embeddings are deterministic per model version, so a cached vector is
// always valid for the same (hash, model) pair.
type KeywordEmbedding struct {
	ID        int32
	TextHash  string
	Model     string
	Embedding []float32
	CreatedTs int64
}

// FindKeywordEmbedding filters embedding cache lookups.
type FindKeywordEmbedding struct {
	TextHashes []string
	Model      string
}
