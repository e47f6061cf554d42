package retrieval

import (
	"context"

	"github.com/fincommerce/finsearch/internal/domain/catalog"
	"github.com/fincommerce/finsearch/internal/domain/search/candidate"
	"github.com/fincommerce/finsearch/internal/domain/search/constraint"
)

// Repository defines the storage contract for retrieval.
type Repository interface {
	// SearchSimilar runs constrained vector search. The int return is the
	// number of malformed payloads skipped.
	SearchSimilar(
		ctx context.Context, vector []float32, cons constraint.Constraint, topK int, minScore float64,
	) ([]candidate.Candidate, int, error)

	// ScanAll reads up to limit items matching the constraint.
	ScanAll(
		ctx context.Context, cons constraint.Constraint, limit int,
	) ([]catalog.Item, int, error)
}
