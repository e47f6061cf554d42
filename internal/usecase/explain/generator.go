// Package explain renders human-readable justifications for ranked results
// and for empty result sets.
package explain

import (
	"fmt"
	"strings"

	"github.com/fincommerce/finsearch/internal/domain/search/ranked"
)

// Generator produces explanation strings. Stateless.
type Generator struct{}

// NewGenerator creates a Generator.
func NewGenerator() *Generator {
	return &Generator{}
}

// Result explains one ranked result against the budget. The lead sentence
// covers relevance and budget position; commerce attributes append short
// clauses when present.
func (g *Generator) Result(res *ranked.Result, budget float64) string {
	item := res.Candidate().Item()
	matchPct := res.SemanticScore() * 100

	var b strings.Builder

	price := item.Price()
	switch {
	case price <= budget && budget-price > 0:
		fmt.Fprintf(&b, "Matches your intent (%.1f%%) and is €%.2f under budget.", matchPct, budget-price)
	case price <= budget:
		fmt.Fprintf(&b, "Perfect match (%.1f%%) and fits exactly in your budget.", matchPct)
	default:
		fmt.Fprintf(&b, "Strong match (%.1f%%) but €%.2f over budget. Consider increasing budget or check alternatives.", matchPct, price-budget)
	}

	if item.InstallmentAvailable() && item.MaxInstallments() > 0 {
		fmt.Fprintf(&b, " Installments available (up to %d months).", item.MaxInstallments())
	}
	if item.DiscountPct() > 0 && item.MSRP() > 0 {
		fmt.Fprintf(&b, " %.1f%% off (MSRP: €%.2f).", item.DiscountPct(), item.MSRP())
	}
	if item.Rating() > 0 {
		fmt.Fprintf(&b, " Rated %.1f/5.0 stars.", item.Rating())
	}

	return b.String()
}

// NoResults explains an empty result set and suggests next actions.
func (g *Generator) NoResults(query string, budget float64) string {
	lines := []string{
		fmt.Sprintf("No products found for '%s' within €%.2f budget.", query, budget),
		"Suggestions:",
		"1. Try increasing your budget",
		"2. Use different search terms (e.g., more general keywords)",
		"3. Remove category filters if applied",
		"4. Check if similar products exist in different categories",
	}
	return strings.Join(lines, "\n")
}
