// Package candidate defines the transient per-query value that carries an
// item through retrieval, scoring and explanation.
package candidate

import "github.com/fincommerce/finsearch/internal/domain/catalog"

// Source tags the retrieval stage that produced a candidate.
type Source string

const (
	// SourceVector marks candidates produced by vector similarity search.
	SourceVector Source = "vector"
	// SourceExactMatch marks candidates surfaced by the substring fallback.
	SourceExactMatch Source = "exact-match"
)

// ExactMatchScore is the fixed similarity assigned to substring matches.
const ExactMatchScore = 1.0

// Candidate wraps a catalog item with the similarity score and provenance of
// the stage that produced it. Candidates are created fresh per query and
// never alias values owned by the retrieval backend.
type Candidate struct {
	item   catalog.Item
	score  float64
	source Source
}

// New creates a candidate.
func New(item catalog.Item, score float64, source Source) Candidate {
	return Candidate{item: item, score: score, source: source}
}

// Item returns the wrapped catalog item.
func (c *Candidate) Item() *catalog.Item { return &c.item }

// Score returns the semantic similarity score, nominally in [0,1].
func (c *Candidate) Score() float64 { return c.score }

// Source returns the producing stage.
func (c *Candidate) Source() Source { return c.source }

// AsExactMatch returns a new candidate for the same item with the forced
// top score and exact-match provenance. The receiver is left untouched.
func (c *Candidate) AsExactMatch() Candidate {
	return Candidate{item: c.item, score: ExactMatchScore, source: SourceExactMatch}
}
