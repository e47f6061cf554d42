package request

import (
	"fmt"
	"strings"
)

// Search parameter limits.
const (
	MaxQueryLength = 500
	DefaultTopK    = 5
	MaxTopK        = 50
)

// Request is a validated search query.
type Request struct {
	query    string
	budget   float64
	topK     int
	category string
	minScore float64
}

// New validates and normalizes search parameters.
// Defaults: topK=5.
func New(query string, budget float64, topK int, category string, minScore float64) (Request, error) {
	if strings.TrimSpace(query) == "" {
		return Request{}, fmt.Errorf("query is required")
	}
	if len(query) > MaxQueryLength {
		return Request{}, fmt.Errorf("query too long (max %d chars)", MaxQueryLength)
	}
	if budget <= 0 {
		return Request{}, fmt.Errorf("budget must be positive")
	}
	if topK <= 0 {
		topK = DefaultTopK
	}
	if topK > MaxTopK {
		return Request{}, fmt.Errorf("top_k must be at most %d", MaxTopK)
	}
	if minScore < 0 || minScore > 1 {
		return Request{}, fmt.Errorf("min_score must be between 0 and 1")
	}

	return Request{
		query:    query,
		budget:   budget,
		topK:     topK,
		category: category,
		minScore: minScore,
	}, nil
}

// Query returns the raw query text.
func (r *Request) Query() string { return r.query }

// NormalizedQuery returns the query lowercased and trimmed, the form every
// retrieval stage matches against.
func (r *Request) NormalizedQuery() string {
	return strings.ToLower(strings.TrimSpace(r.query))
}

// Budget returns the user's budget ceiling. Always positive.
func (r *Request) Budget() float64 { return r.budget }

// TopK returns the number of results to return.
func (r *Request) TopK() int { return r.topK }

// Category returns the raw category filter, empty when absent.
func (r *Request) Category() string { return r.category }

// MinScore returns the minimum composite score threshold.
func (r *Request) MinScore() float64 { return r.minScore }
