// Package constraint builds the conjunctive business-constraint predicate
// (price ceiling, category) applied uniformly across every retrieval stage.
package constraint

import (
	"strings"

	"github.com/fincommerce/finsearch/internal/domain/catalog"
)

// noCategory lists values that mean "no category filter", compared
// case-insensitively after trimming.
var noCategory = map[string]struct{}{
	"":               {},
	"all categories": {},
	"none":           {},
	"null":           {},
}

// Constraint is a conjunction of the present conditions. Absent inputs
// degrade to "unfiltered"; there are no error conditions.
type Constraint struct {
	maxPrice *float64
	category string // canonical-cased, empty = unfiltered
}

// New builds a Constraint from an optional price ceiling and a raw category
// string. Category is trimmed and matched case-insensitively; the sentinel
// values "", "all categories", "none" and "null" disable the category filter.
func New(maxPrice *float64, category string) Constraint {
	c := Constraint{maxPrice: maxPrice}

	trimmed := strings.TrimSpace(category)
	if _, skip := noCategory[strings.ToLower(trimmed)]; !skip {
		c.category = catalog.CanonicalCategory(trimmed)
	}
	return c
}

// MaxPrice returns the price ceiling, nil when unfiltered.
func (c Constraint) MaxPrice() *float64 { return c.maxPrice }

// HasMaxPrice reports whether a price ceiling is set.
func (c Constraint) HasMaxPrice() bool { return c.maxPrice != nil }

// Category returns the canonical-cased category, empty when unfiltered.
func (c Constraint) Category() string { return c.category }

// HasCategory reports whether a category filter is set.
func (c Constraint) HasCategory() bool { return c.category != "" }

// IsEmpty reports whether the constraint filters nothing.
func (c Constraint) IsEmpty() bool { return c.maxPrice == nil && c.category == "" }

// CategoryOnly strips the price ceiling. The exact-match fallback pools are
// restricted by category alone: over-budget items may still surface there and
// be penalized by the scorer instead of excluded.
func (c Constraint) CategoryOnly() Constraint {
	return Constraint{category: c.category}
}

// MatchesCategory reports whether the given category satisfies the filter.
func (c Constraint) MatchesCategory(category string) bool {
	if c.category == "" {
		return true
	}
	return strings.EqualFold(c.category, strings.TrimSpace(category))
}

// Matches reports whether the item satisfies every present condition.
func (c Constraint) Matches(item *catalog.Item) bool {
	if c.maxPrice != nil && item.Price() > *c.maxPrice {
		return false
	}
	return c.MatchesCategory(item.Category())
}
