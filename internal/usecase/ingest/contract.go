package ingest

import (
	"context"

	"github.com/fincommerce/finsearch/internal/domain"
	catalogrepo "github.com/fincommerce/finsearch/internal/repository/catalog"
)

// Repository persists embedded products and manages the FT index.
type Repository interface {
	EnsureIndex(ctx context.Context, params catalogrepo.IndexParams) error
	SaveBatch(ctx context.Context, items []catalogrepo.IndexedItem) error
}

// Embedder vectorizes text into embeddings.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}
