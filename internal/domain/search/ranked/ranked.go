package ranked

import "github.com/fincommerce/finsearch/internal/domain/search/candidate"

// Result is a candidate enriched with the scoring breakdown and an
// explanation. Sorted by composite score descending; ties preserve the
// order the retrieval stage produced.
type Result struct {
	cand           candidate.Candidate
	budgetFit      float64
	priceAdvantage float64
	composite      float64
	explanation    string
}

// New creates a ranked result without an explanation.
func New(cand candidate.Candidate, budgetFit, priceAdvantage, composite float64) Result {
	return Result{
		cand:           cand,
		budgetFit:      budgetFit,
		priceAdvantage: priceAdvantage,
		composite:      composite,
	}
}

// Candidate returns the underlying candidate.
func (r *Result) Candidate() *candidate.Candidate { return &r.cand }

// SemanticScore returns the retrieval-stage similarity score.
func (r *Result) SemanticScore() float64 { return r.cand.Score() }

// BudgetFit returns 1.0 within budget, 0.5 over.
func (r *Result) BudgetFit() float64 { return r.budgetFit }

// PriceAdvantage returns the normalized savings ratio in [0,1).
func (r *Result) PriceAdvantage() float64 { return r.priceAdvantage }

// Composite returns the weighted ranking score.
func (r *Result) Composite() float64 { return r.composite }

// Explanation returns the human-readable justification.
func (r *Result) Explanation() string { return r.explanation }

// WithExplanation returns a copy carrying the explanation text.
func (r Result) WithExplanation(text string) Result {
	r.explanation = text
	return r
}
