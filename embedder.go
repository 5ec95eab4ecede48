package docsearch

import "context"

// Embedding is the result of embedding one piece of text.
type Embedding struct {
	// Vector has EmbeddingDim elements.
	Vector []float32 `json:"vector"`

	// TokenCount is the number of tokens the provider consumed.
	TokenCount int `json:"tokenCount"`
}

// Embedder maps text to a fixed-length embedding vector plus a token count.
// Implementations normalize input by collapsing newlines to spaces before
// submission. Returns EUNAVAILABLE on quota, auth, or network failure.
type Embedder interface {
	Embed(ctx context.Context, text string) (*Embedding, error)
}
