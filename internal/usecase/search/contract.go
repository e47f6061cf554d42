package search

import (
	"context"

	"github.com/fincommerce/finsearch/internal/domain"
	"github.com/fincommerce/finsearch/internal/domain/search/candidate"
	"github.com/fincommerce/finsearch/internal/domain/search/constraint"
	"github.com/fincommerce/finsearch/internal/domain/search/ranked"
	"github.com/fincommerce/finsearch/internal/usecase/retrieval"
)

// Embedder vectorizes query text.
type Embedder interface {
	Embed(ctx context.Context, text string) (domain.EmbeddingResult, error)
}

// Retriever produces the candidate set for a query.
type Retriever interface {
	Retrieve(
		ctx context.Context, queryText string, vector []float32,
		cons constraint.Constraint, topK int, minScore float64,
	) ([]candidate.Candidate, retrieval.Stats, error)
}

// Ranker orders candidates by composite score.
type Ranker interface {
	Rank(cands []candidate.Candidate, budget, minScore float64, topK int) []ranked.Result
}

// Explainer renders justification text.
type Explainer interface {
	Result(res *ranked.Result, budget float64) string
	NoResults(query string, budget float64) string
}
