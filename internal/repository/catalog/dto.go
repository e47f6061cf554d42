package catalog

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fincommerce/finsearch/internal/db"
	"github.com/fincommerce/finsearch/internal/domain"
	"github.com/fincommerce/finsearch/internal/domain/catalog"
)

// Hash field names of an indexed catalog item. The price, category, tags and
// budget_band fields are covered by the FT index; vector carries the
// embedding blob.
const (
	fieldProductID            = "product_id"
	fieldTitle                = "title"
	fieldDescription          = "description"
	fieldPrice                = "price"
	fieldCategory             = "category"
	fieldBrand                = "brand"
	fieldRating               = "rating"
	fieldMSRP                 = "msrp"
	fieldDiscountPct          = "discount_pct"
	fieldTags                 = "tags"
	fieldInstallmentAvailable = "installment_available"
	fieldMaxInstallments      = "max_installments"
	fieldShippingDays         = "shipping_days"
	fieldBudgetBand           = "budget_band"
	fieldVector               = "vector"
)

// tagSeparator joins and splits the tags field. Matches the TAG SEPARATOR of
// the index schema.
const tagSeparator = ";"

// payloadFields are the fields fetched on reads. The vector blob is excluded.
var payloadFields = []string{
	fieldProductID, fieldTitle, fieldDescription, fieldPrice, fieldCategory,
	fieldBrand, fieldRating, fieldMSRP, fieldDiscountPct, fieldTags,
	fieldInstallmentAvailable, fieldMaxInstallments, fieldShippingDays,
	fieldBudgetBand,
}

// itemToFields flattens an item and its embedding into hash fields.
func itemToFields(item *catalog.Item, vector []float32) map[string]string {
	fields := map[string]string{
		fieldProductID:   item.ID(),
		fieldTitle:       item.Title(),
		fieldDescription: item.Description(),
		fieldPrice:       strconv.FormatFloat(item.Price(), 'f', -1, 64),
		fieldCategory:    item.Category(),
		fieldBrand:       item.Brand(),
		fieldRating:      strconv.FormatFloat(item.Rating(), 'f', -1, 64),
		fieldVector:      string(db.VectorBytes(vector)),
	}

	if item.MSRP() > 0 {
		fields[fieldMSRP] = strconv.FormatFloat(item.MSRP(), 'f', -1, 64)
	}
	if item.DiscountPct() > 0 {
		fields[fieldDiscountPct] = strconv.FormatFloat(item.DiscountPct(), 'f', -1, 64)
	}
	if tags := item.Tags(); len(tags) > 0 {
		fields[fieldTags] = strings.Join(tags, tagSeparator)
	}
	if item.InstallmentAvailable() {
		fields[fieldInstallmentAvailable] = "true"
		fields[fieldMaxInstallments] = strconv.Itoa(item.MaxInstallments())
	}
	if item.ShippingDays() > 0 {
		fields[fieldShippingDays] = strconv.Itoa(item.ShippingDays())
	}
	if band := item.BudgetBand(); band != "" {
		fields[fieldBudgetBand] = string(band)
	}

	return fields
}

// itemFromFields reconstructs an item from hash fields. Any violation maps
// to domain.ErrMalformedCandidate so callers can skip the single item.
func itemFromFields(key string, fields map[string]string) (catalog.Item, error) {
	id := fields[fieldProductID]
	if id == "" {
		id = strings.TrimPrefix(key, domain.CatalogPrefix)
	}

	price, err := parseFloatField(fields, fieldPrice)
	if err != nil {
		return catalog.Item{}, malformed(key, err)
	}
	rating, err := parseFloatField(fields, fieldRating)
	if err != nil {
		return catalog.Item{}, malformed(key, err)
	}
	msrp, err := parseFloatField(fields, fieldMSRP)
	if err != nil {
		return catalog.Item{}, malformed(key, err)
	}
	discount, err := parseFloatField(fields, fieldDiscountPct)
	if err != nil {
		return catalog.Item{}, malformed(key, err)
	}
	maxInstallments, err := parseIntField(fields, fieldMaxInstallments)
	if err != nil {
		return catalog.Item{}, malformed(key, err)
	}
	shippingDays, err := parseIntField(fields, fieldShippingDays)
	if err != nil {
		return catalog.Item{}, malformed(key, err)
	}

	attrs := catalog.Attrs{
		MSRP:                 msrp,
		DiscountPct:          discount,
		InstallmentAvailable: fields[fieldInstallmentAvailable] == "true",
		MaxInstallments:      maxInstallments,
		ShippingDays:         shippingDays,
		BudgetBand:           catalog.Band(fields[fieldBudgetBand]),
	}
	if raw := fields[fieldTags]; raw != "" {
		attrs.Tags = strings.Split(raw, tagSeparator)
	}

	item, err := catalog.New(
		id,
		fields[fieldTitle],
		fields[fieldDescription],
		fields[fieldCategory],
		fields[fieldBrand],
		price, rating, attrs,
	)
	if err != nil {
		return catalog.Item{}, malformed(key, err)
	}
	return item, nil
}

func parseFloatField(fields map[string]string, name string) (float64, error) {
	raw, ok := fields[name]
	if !ok || raw == "" {
		return 0, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", name, err)
	}
	return f, nil
}

func parseIntField(fields map[string]string, name string) (int, error) {
	raw, ok := fields[name]
	if !ok || raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", name, err)
	}
	return n, nil
}

func malformed(key string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrMalformedCandidate, key, err)
}
