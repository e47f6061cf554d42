package explain

import (
	"strings"
	"testing"

	"github.com/fincommerce/finsearch/internal/domain/catalog"
	"github.com/fincommerce/finsearch/internal/domain/search/candidate"
	"github.com/fincommerce/finsearch/internal/domain/search/ranked"
)

func rankedItem(t *testing.T, price, score float64, attrs catalog.Attrs) ranked.Result {
	t.Helper()
	item, err := catalog.New("p1", "Wireless Headphones", "", "Electronics", "Acme", price, 4.6, attrs)
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}
	cand := candidate.New(item, score, candidate.SourceVector)
	return ranked.New(cand, 1.0, 0, 0.8)
}

func TestResult_UnderBudget(t *testing.T) {
	g := NewGenerator()
	res := rankedItem(t, 129.99, 0.82, catalog.Attrs{})

	text := g.Result(&res, 500)
	if !strings.Contains(text, "Matches your intent (82.0%)") {
		t.Errorf("missing relevance clause: %q", text)
	}
	if !strings.Contains(text, "€370.01 under budget") {
		t.Errorf("missing savings clause: %q", text)
	}
}

func TestResult_ExactBudget(t *testing.T) {
	g := NewGenerator()
	res := rankedItem(t, 500, 1.0, catalog.Attrs{})

	text := g.Result(&res, 500)
	if !strings.Contains(text, "Perfect match (100.0%)") {
		t.Errorf("missing perfect-match clause: %q", text)
	}
	if !strings.Contains(text, "fits exactly in your budget") {
		t.Errorf("missing exact-fit clause: %q", text)
	}
}

func TestResult_OverBudget(t *testing.T) {
	g := NewGenerator()
	res := rankedItem(t, 1299.99, 1.0, catalog.Attrs{})

	text := g.Result(&res, 500)
	if !strings.Contains(text, "Strong match (100.0%)") {
		t.Errorf("missing strong-match clause: %q", text)
	}
	if !strings.Contains(text, "€799.99 over budget") {
		t.Errorf("missing overage clause: %q", text)
	}
	if !strings.Contains(text, "Consider increasing budget") {
		t.Errorf("missing suggestion clause: %q", text)
	}
}

func TestResult_CommerceClauses(t *testing.T) {
	g := NewGenerator()
	res := rankedItem(t, 449, 0.9, catalog.Attrs{
		MSRP:                 599,
		DiscountPct:          25,
		InstallmentAvailable: true,
		MaxInstallments:      12,
	})

	text := g.Result(&res, 500)
	if !strings.Contains(text, "Installments available (up to 12 months)") {
		t.Errorf("missing installments clause: %q", text)
	}
	if !strings.Contains(text, "25.0% off (MSRP: €599.00)") {
		t.Errorf("missing discount clause: %q", text)
	}
	if !strings.Contains(text, "Rated 4.6/5.0 stars") {
		t.Errorf("missing rating clause: %q", text)
	}
}

func TestNoResults(t *testing.T) {
	g := NewGenerator()

	text := g.NoResults("gaming laptop", 500)
	if !strings.Contains(text, "No products found for 'gaming laptop' within €500.00 budget.") {
		t.Errorf("missing lead sentence: %q", text)
	}
	if !strings.Contains(text, "1. Try increasing your budget") {
		t.Errorf("missing suggestions: %q", text)
	}
}
