package domain

import "context"

// EmbeddingResult holds a vector and the token usage that produced it.
type EmbeddingResult struct {
	Embedding    []float32
	PromptTokens int
	TotalTokens  int
}

// Embedder vectorizes text. Implementations must reject empty input:
// the pipeline cannot search without a query vector.
type Embedder interface {
	Embed(ctx context.Context, text string) (EmbeddingResult, error)
}
