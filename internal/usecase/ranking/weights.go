package ranking

import "math"

// Default composite weights. Semantic relevance dominates; budget fit and
// price advantage refine the order within relevance bands.
const (
	DefaultSemanticWeight       = 0.6
	DefaultBudgetFitWeight      = 0.3
	DefaultPriceAdvantageWeight = 0.1
)

// normalizationTolerance is the allowed drift of the weight sum from 1.0.
const normalizationTolerance = 0.01

// Weights holds the composite score coefficients.
type Weights struct {
	Semantic       float64
	BudgetFit      float64
	PriceAdvantage float64
}

// DefaultWeights returns the 0.6/0.3/0.1 split.
func DefaultWeights() Weights {
	return Weights{
		Semantic:       DefaultSemanticWeight,
		BudgetFit:      DefaultBudgetFitWeight,
		PriceAdvantage: DefaultPriceAdvantageWeight,
	}
}

// Sum returns the total of the three coefficients.
func (w Weights) Sum() float64 {
	return w.Semantic + w.BudgetFit + w.PriceAdvantage
}

// IsNormalized reports whether the weights sum to 1.0 within tolerance.
// Non-normalized weights are legal; ranking proceeds with them as-is and the
// caller is expected to log a warning.
func (w Weights) IsNormalized() bool {
	return math.Abs(w.Sum()-1.0) < normalizationTolerance
}
