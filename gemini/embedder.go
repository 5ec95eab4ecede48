// Package gemini implements embedding generation using the Google Gemini API.
package gemini

import (
	"context"
	"strings"

	"github.com/fwojciec/docsearch"
	"google.golang.org/genai"
	"google.golang.org/genai/tokenizer"
)

const embeddingModel = "gemini-embedding-001"

// tokenizerModel is used for local token counting. The embedding API does
// not report token statistics on the Gemini API backend, so counts come
// from the local tokenizer instead.
const tokenizerModel = "gemini-2.5-flash"

// Ensure Embedder implements docsearch.Embedder at compile time.
var _ docsearch.Embedder = (*Embedder)(nil)

// Embedder implements docsearch.Embedder using Google Gemini.
type Embedder struct {
	client *genai.Client
	tok    *tokenizer.LocalTokenizer
	model  string
}

// NewEmbedder creates a new Embedder.
func NewEmbedder(client *genai.Client) (*Embedder, error) {
	tok, err := tokenizer.NewLocalTokenizer(tokenizerModel)
	if err != nil {
		return nil, err
	}
	return &Embedder{client: client, tok: tok, model: embeddingModel}, nil
}

// Embed maps text to a fixed-length embedding vector plus a token count.
func (e *Embedder) Embed(ctx context.Context, text string) (*docsearch.Embedding, error) {
	if text == "" {
		return nil, docsearch.Errorf(docsearch.EINVALID, "text required")
	}

	input := NormalizeInput(text)
	contents := []*genai.Content{
		genai.NewContentFromText(input, "user"),
	}

	count, err := e.tok.CountTokens(contents, nil)
	if err != nil {
		return nil, err
	}

	dim := int32(docsearch.EmbeddingDim)
	result, err := e.client.Models.EmbedContent(ctx, e.model, contents, &genai.EmbedContentConfig{
		OutputDimensionality: &dim,
	})
	if err != nil {
		return nil, docsearch.Errorf(docsearch.EUNAVAILABLE, "embedding request failed: %v", err)
	}
	if result == nil || len(result.Embeddings) == 0 {
		return nil, docsearch.Errorf(docsearch.EINTERNAL, "gemini returned no embedding")
	}

	vector := result.Embeddings[0].Values
	if len(vector) != docsearch.EmbeddingDim {
		return nil, docsearch.Errorf(docsearch.EINTERNAL, "gemini returned %d dimensions, want %d",
			len(vector), docsearch.EmbeddingDim)
	}

	return &docsearch.Embedding{
		Vector:     vector,
		TokenCount: int(count.TotalTokens),
	}, nil
}

// NormalizeInput collapses newlines to spaces, which embedding models
// handle better than raw markdown line breaks.
func NormalizeInput(text string) string {
	return strings.Join(strings.Fields(strings.ReplaceAll(text, "\n", " ")), " ")
}
