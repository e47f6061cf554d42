package chi

import (
	"github.com/fincommerce/finsearch/internal/domain/search/ranked"
	healthuc "github.com/fincommerce/finsearch/internal/usecase/health"
	searchuc "github.com/fincommerce/finsearch/internal/usecase/search"
	statsuc "github.com/fincommerce/finsearch/internal/usecase/stats"
)

// errorCode identifies an error class to API clients.
type errorCode string

const (
	codeBadRequest           errorCode = "bad_request"
	codeValidationFailed     errorCode = "validation_failed"
	codeNotFound             errorCode = "not_found"
	codeEmbeddingProviderErr errorCode = "embedding_provider_error"
	codeRetrievalUnavailable errorCode = "retrieval_unavailable"
	codeInternalError        errorCode = "internal_error"
)

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

type searchRequest struct {
	Query    string  `json:"query"`
	Budget   float64 `json:"budget"`
	TopK     int     `json:"top_k"`
	Category string  `json:"category"`
	MinScore float64 `json:"min_score"`
}

type filtersApplied struct {
	Budget   float64 `json:"budget"`
	Category string  `json:"category,omitempty"`
	MinScore float64 `json:"min_score"`
}

type searchResultItem struct {
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

type searchResponse struct {
	Query           string             `json:"query"`
	Budget          float64            `json:"budget"`
	TotalResults    int                `json:"total_results"`
	Results         []searchResultItem `json:"results"`
	ExecutionTimeMs float64            `json:"execution_time_ms"`
	FiltersApplied  filtersApplied     `json:"filters_applied"`
	Stage           string             `json:"stage,omitempty"`
	Degraded        bool               `json:"degraded,omitempty"`
	Explanation     string             `json:"explanation,omitempty"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type statsResponse struct {
	TotalProducts int    `json:"total_products"`
	Model         string `json:"embedding_model"`
	Dimensions    int    `json:"vector_dimensions"`
}

func resultToDTO(res *ranked.Result) searchResultItem {
	item := res.Candidate().Item()
	return searchResultItem{
		ProductID:   item.ID(),
		Title:       item.Title(),
		Description: item.Description(),
		Price:       item.Price(),
		Category:    item.Category(),
		Brand:       item.Brand(),
		Rating:      item.Rating(),

		SemanticScore:       res.SemanticScore(),
		BudgetFitScore:      res.BudgetFit(),
		PriceAdvantageScore: res.PriceAdvantage(),
		CompositeScore:      res.Composite(),
		Explanation:         res.Explanation(),
		Source:              string(res.Candidate().Source()),

		MSRP:                 item.MSRP(),
		DiscountPct:          item.DiscountPct(),
		Tags:                 item.Tags(),
		InstallmentAvailable: item.InstallmentAvailable(),
		MaxInstallments:      item.MaxInstallments(),
		ShippingDays:         item.ShippingDays(),
		BudgetBand:           string(item.BudgetBand()),
	}
}

func searchResponseToDTO(req *searchRequest, resp *searchuc.Response) searchResponse {
	results := make([]searchResultItem, len(resp.Results))
	for i := range resp.Results {
		results[i] = resultToDTO(&resp.Results[i])
	}

	return searchResponse{
		Query:           req.Query,
		Budget:          req.Budget,
		TotalResults:    len(results),
		Results:         results,
		ExecutionTimeMs: float64(resp.Took.Microseconds()) / 1000.0,
		FiltersApplied: filtersApplied{
			Budget:   req.Budget,
			Category: req.Category,
			MinScore: req.MinScore,
		},
		Stage:       resp.Stage,
		Degraded:    resp.Degraded,
		Explanation: resp.Explanation,
	}
}

func healthToDTO(report healthuc.Report) healthResponse {
	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}
	return healthResponse{
		Status: string(report.Status),
		Checks: checks,
	}
}

func statsToDTO(report statsuc.Report) statsResponse {
	return statsResponse{
		TotalProducts: report.TotalProducts,
		Model:         report.Model,
		Dimensions:    report.Dimensions,
	}
}
