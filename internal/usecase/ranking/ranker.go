// Package ranking turns retrieval candidates into the final composite order:
// semantic relevance weighted against budget fit and price advantage.
package ranking

import (
	"sort"

	"go.uber.org/zap"

	"github.com/fincommerce/finsearch/internal/domain/search/candidate"
	"github.com/fincommerce/finsearch/internal/domain/search/ranked"
)

// Budget fit levels. Within budget scores full, over budget scores half:
// an over-budget exact match stays visible but ranks below in-budget peers.
const (
	budgetFitWithin = 1.0
	budgetFitOver   = 0.5
)

// Ranker computes composite scores and orders candidates.
type Ranker struct {
	weights Weights
	logger  *zap.Logger
}

// NewRanker creates a ranker. Non-normalized weights are accepted with a
// logged warning; ranking still works, only the score scale shifts.
func NewRanker(weights Weights, logger *zap.Logger) *Ranker {
	if !weights.IsNormalized() {
		logger.Warn("Ranking weights do not sum to 1.0, proceeding anyway",
			zap.Float64("semantic", weights.Semantic),
			zap.Float64("budget_fit", weights.BudgetFit),
			zap.Float64("price_advantage", weights.PriceAdvantage),
			zap.Float64("sum", weights.Sum()),
		)
	}
	return &Ranker{weights: weights, logger: logger}
}

// Weights returns the active coefficients.
func (r *Ranker) Weights() Weights { return r.weights }

// Rank scores every candidate against the budget, drops composites below
// minScore, sorts by composite score descending and truncates to topK. The
// sort is stable: candidates with equal composite scores keep their
// retrieval order.
func (r *Ranker) Rank(cands []candidate.Candidate, budget, minScore float64, topK int) []ranked.Result {
	results := make([]ranked.Result, 0, len(cands))
	for i := range cands {
		res := r.score(cands[i], budget)
		if res.Composite() < minScore {
			continue
		}
		results = append(results, res)
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Composite() > results[j].Composite()
	})

	if topK > 0 && len(results) > topK {
		results = results[:topK]
	}
	return results
}

// score computes the breakdown for one candidate.
//
// budget_fit is binary: an item either fits or it does not, and "how much
// over" is already captured by price_advantage being floored at zero.
// price_advantage rewards savings proportionally to the budget.
func (r *Ranker) score(cand candidate.Candidate, budget float64) ranked.Result {
	price := cand.Item().Price()

	budgetFit := budgetFitWithin
	if price > budget {
		budgetFit = budgetFitOver
	}

	priceAdvantage := (budget - price) / budget
	if priceAdvantage < 0 {
		priceAdvantage = 0
	}

	composite := r.weights.Semantic*cand.Score() +
		r.weights.BudgetFit*budgetFit +
		r.weights.PriceAdvantage*priceAdvantage

	return ranked.New(cand, budgetFit, priceAdvantage, composite)
}
