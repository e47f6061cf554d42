package catalog

import (
	"fmt"
	"strings"
)

// Band buckets an item into a coarse price tier.
type Band string

// Known budget bands. The empty band means "not tagged".
const (
	BandBudget   Band = "budget"
	BandMidrange Band = "midrange"
	BandPremium  Band = "premium"
)

// IsValid reports whether b is a known band or empty.
func (b Band) IsValid() bool {
	switch b {
	case "", BandBudget, BandMidrange, BandPremium:
		return true
	}
	return false
}

// Attrs holds the optional commerce fields of an Item.
// Zero values mean "not present".
type Attrs struct {
	MSRP                 float64
	DiscountPct          float64
	Tags                 []string
	InstallmentAvailable bool
	MaxInstallments      int
	ShippingDays         int
	BudgetBand           Band
}

// Item is a read-only catalog product. The catalog store owns the data;
// this type only enforces the invariants the search core relies on.
type Item struct {
	id          string
	title       string
	description string
	category    string
	brand       string
	price       float64
	rating      float64
	attrs       Attrs
}

// New validates and creates an Item.
// Invariants: price > 0, rating in [0,5], discount_pct in [0,100].
func New(
	id, title, description, category, brand string,
	price, rating float64,
	attrs Attrs,
) (Item, error) {
	if id == "" {
		return Item{}, fmt.Errorf("item id is required")
	}
	if strings.TrimSpace(title) == "" {
		return Item{}, fmt.Errorf("item %s: title is required", id)
	}
	if price <= 0 {
		return Item{}, fmt.Errorf("item %s: price must be positive, got %g", id, price)
	}
	if rating < 0 || rating > 5 {
		return Item{}, fmt.Errorf("item %s: rating must be within [0,5], got %g", id, rating)
	}
	if attrs.DiscountPct < 0 || attrs.DiscountPct > 100 {
		return Item{}, fmt.Errorf("item %s: discount_pct must be within [0,100], got %g", id, attrs.DiscountPct)
	}
	if !attrs.BudgetBand.IsValid() {
		return Item{}, fmt.Errorf("item %s: unknown budget band %q", id, attrs.BudgetBand)
	}

	tags := make([]string, 0, len(attrs.Tags))
	for _, t := range attrs.Tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			tags = append(tags, t)
		}
	}
	attrs.Tags = tags

	return Item{
		id:          id,
		title:       strings.TrimSpace(title),
		description: strings.TrimSpace(description),
		category:    strings.TrimSpace(category),
		brand:       strings.TrimSpace(brand),
		price:       price,
		rating:      rating,
		attrs:       attrs,
	}, nil
}

// ID returns the stable item identifier.
func (i *Item) ID() string { return i.id }

// Title returns the item title.
func (i *Item) Title() string { return i.title }

// Description returns the item description.
func (i *Item) Description() string { return i.description }

// Category returns the canonical-cased category.
func (i *Item) Category() string { return i.category }

// Brand returns the brand name.
func (i *Item) Brand() string { return i.brand }

// Price returns the price. Always positive.
func (i *Item) Price() float64 { return i.price }

// Rating returns the rating in [0,5].
func (i *Item) Rating() float64 { return i.rating }

// MSRP returns the list price, 0 when unknown.
func (i *Item) MSRP() float64 { return i.attrs.MSRP }

// DiscountPct returns the discount percentage, 0 when none.
func (i *Item) DiscountPct() float64 { return i.attrs.DiscountPct }

// Tags returns the lowercased tag set.
func (i *Item) Tags() []string { return i.attrs.Tags }

// InstallmentAvailable reports whether installment payment is offered.
func (i *Item) InstallmentAvailable() bool { return i.attrs.InstallmentAvailable }

// MaxInstallments returns the installment cap in months, 0 when unknown.
func (i *Item) MaxInstallments() int { return i.attrs.MaxInstallments }

// ShippingDays returns the shipping estimate, 0 when unknown.
func (i *Item) ShippingDays() int { return i.attrs.ShippingDays }

// BudgetBand returns the price tier tag, empty when untagged.
func (i *Item) BudgetBand() Band { return i.attrs.BudgetBand }

// CanonicalCategory title-cases each space-separated word. Both the
// ingestion pipeline and the query-side category filter normalize through
// this, so stored and queried categories always compare equal.
func CanonicalCategory(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// MatchesSubstring reports whether the lowercased needle appears in the
// item's title, tag set, or category. Needle must already be lowercased.
func (i *Item) MatchesSubstring(needle string) bool {
	if needle == "" {
		return false
	}
	if strings.Contains(strings.ToLower(i.title), needle) {
		return true
	}
	if strings.Contains(strings.Join(i.attrs.Tags, " "), needle) {
		return true
	}
	return strings.Contains(strings.ToLower(i.category), needle)
}
