package client

// SearchRequest describes a product search query.
type SearchRequest struct {
	Query    string  `json:"query"`
	Budget   float64 `json:"budget"`
	TopK     int     `json:"top_k,omitempty"`
	Category string  `json:"category,omitempty"`
	MinScore float64 `json:"min_score,omitempty"`
}

// FiltersApplied echoes the constraints the server applied.
type FiltersApplied struct {
	Budget   float64 `json:"budget"`
	Category string  `json:"category,omitempty"`
	MinScore float64 `json:"min_score"`
}

// SearchResult is one ranked product.
type SearchResult struct {
	ProductID   string  `json:"product_id"`
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	Category    string  `json:"category,omitempty"`
	Brand       string  `json:"brand,omitempty"`
	Rating      float64 `json:"rating"`

	SemanticScore       float64 `json:"semantic_score"`
	BudgetFitScore      float64 `json:"budget_fit_score"`
	PriceAdvantageScore float64 `json:"price_advantage_score"`
	CompositeScore      float64 `json:"composite_score"`
	Explanation         string  `json:"explanation"`
	Source              string  `json:"source"`

	MSRP                 float64  `json:"msrp,omitempty"`
	DiscountPct          float64  `json:"discount_pct,omitempty"`
	Tags                 []string `json:"tags,omitempty"`
	InstallmentAvailable bool     `json:"installment_available,omitempty"`
	MaxInstallments      int      `json:"max_installments,omitempty"`
	ShippingDays         int      `json:"shipping_days,omitempty"`
	BudgetBand           string   `json:"budget_band,omitempty"`
}

// SearchResponse is the full answer to a search.
type SearchResponse struct {
	Query           string         `json:"query"`
	Budget          float64        `json:"budget"`
	TotalResults    int            `json:"total_results"`
	Results         []SearchResult `json:"results"`
	ExecutionTimeMs float64        `json:"execution_time_ms"`
	FiltersApplied  FiltersApplied `json:"filters_applied"`
	Stage           string         `json:"stage,omitempty"`
	Degraded        bool           `json:"degraded,omitempty"`
	Explanation     string         `json:"explanation,omitempty"`
}

// HealthReport is the component health summary.
type HealthReport struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// Stats describes the running catalog index.
type Stats struct {
	TotalProducts int    `json:"total_products"`
	Model         string `json:"embedding_model"`
	Dimensions    int    `json:"vector_dimensions"`
}
