// Package retrieval orchestrates the staged candidate retrieval: vector
// search first, then exact-substring fallbacks over a narrow and a wide pool.
package retrieval

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/fincommerce/finsearch/internal/domain"
	"github.com/fincommerce/finsearch/internal/domain/search/candidate"
	"github.com/fincommerce/finsearch/internal/domain/search/constraint"
	"github.com/fincommerce/finsearch/internal/metrics"
)

// Retrieval stage names, reported per response and on metrics.
const (
	StageVector         = "vector"
	StageNarrowFallback = "narrow-fallback"
	StageWideFallback   = "wide-fallback"
)

// DefaultWideScanLimit bounds the wide fallback pool.
const DefaultWideScanLimit = 10000

// Stats describes how a retrieval run was produced.
type Stats struct {
	// Stage is the stage whose output was returned.
	Stage string
	// Skipped counts malformed payloads dropped across all stages.
	Skipped int
	// Degraded is set when a backend failure forced a stage to yield nothing.
	Degraded bool
}

// Service implements the staged retrieval flow.
type Service struct {
	repo          Repository
	wideScanLimit int
	logger        *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithWideScanLimit overrides the wide fallback pool bound.
func WithWideScanLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.wideScanLimit = limit
		}
	}
}

// New creates a retrieval service.
func New(repo Repository, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		repo:          repo,
		wideScanLimit: DefaultWideScanLimit,
		logger:        logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Retrieve produces the candidate set for a query. queryText must be the
// normalized (lowercased, trimmed) query; when it is empty the substring
// fallbacks are skipped and the vector stage output is final.
//
// With a non-empty queryText the result is always an exact-substring set or
// empty: vector candidates only survive when the query text literally
// appears in their title, tags or category. Each fallback pool is cut to
// topK in pool order before ranking sees it. Over-budget items may enter
// through the wide fallback, which applies the category condition alone and
// leaves the price penalty to the scorer.
func (s *Service) Retrieve(
	ctx context.Context,
	queryText string,
	vector []float32,
	cons constraint.Constraint,
	topK int,
	minScore float64,
) ([]candidate.Candidate, Stats, error) {
	var stats Stats

	vectorCands, err := s.vectorStage(ctx, vector, cons, topK, minScore, &stats)
	if err != nil {
		return nil, stats, err
	}

	if queryText == "" {
		stats.Stage = StageVector
		return vectorCands, stats, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	if exact := narrowFallback(vectorCands, queryText); len(exact) > 0 {
		stats.Stage = StageNarrowFallback
		return capTopK(exact, topK), stats, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	exact, err := s.wideFallback(ctx, queryText, cons, &stats)
	if err != nil {
		return nil, stats, err
	}
	stats.Stage = StageWideFallback
	return capTopK(exact, topK), stats, nil
}

// capTopK truncates a fallback pool to at most topK matches, in pool order.
func capTopK(cands []candidate.Candidate, topK int) []candidate.Candidate {
	if topK > 0 && len(cands) > topK {
		return cands[:topK]
	}
	return cands
}

// vectorStage runs constrained KNN retrieval. Backend unavailability is not
// fatal: the stage degrades to zero candidates and the fallbacks still run.
func (s *Service) vectorStage(
	ctx context.Context,
	vector []float32,
	cons constraint.Constraint,
	topK int,
	minScore float64,
	stats *Stats,
) ([]candidate.Candidate, error) {
	cands, skipped, err := s.repo.SearchSimilar(ctx, vector, cons, topK, minScore)
	if err != nil {
		if errors.Is(err, domain.ErrRetrievalUnavailable) {
			s.logger.Warn("Vector stage degraded", zap.Error(err))
			metrics.SearchStageDegradedTotal.WithLabelValues(StageVector).Inc()
			stats.Degraded = true
			return nil, nil
		}
		return nil, err
	}
	s.countSkipped(skipped, stats)
	return cands, nil
}

// narrowFallback promotes vector candidates whose payload contains the query
// text literally. Promotion forces the top score.
func narrowFallback(cands []candidate.Candidate, queryText string) []candidate.Candidate {
	var exact []candidate.Candidate
	for i := range cands {
		if cands[i].Item().MatchesSubstring(queryText) {
			exact = append(exact, cands[i].AsExactMatch())
		}
	}
	return exact
}

// wideFallback scans the catalog under the category condition only and
// substring-matches the full pool.
func (s *Service) wideFallback(
	ctx context.Context,
	queryText string,
	cons constraint.Constraint,
	stats *Stats,
) ([]candidate.Candidate, error) {
	items, skipped, err := s.repo.ScanAll(ctx, cons.CategoryOnly(), s.wideScanLimit)
	if err != nil {
		if errors.Is(err, domain.ErrRetrievalUnavailable) {
			s.logger.Warn("Wide fallback degraded", zap.Error(err))
			metrics.SearchStageDegradedTotal.WithLabelValues(StageWideFallback).Inc()
			stats.Degraded = true
			return nil, nil
		}
		return nil, err
	}
	s.countSkipped(skipped, stats)

	var exact []candidate.Candidate
	for i := range items {
		if items[i].MatchesSubstring(queryText) {
			exact = append(exact, candidate.New(items[i], candidate.ExactMatchScore, candidate.SourceExactMatch))
		}
	}
	return exact, nil
}

func (s *Service) countSkipped(skipped int, stats *Stats) {
	if skipped == 0 {
		return
	}
	stats.Skipped += skipped
	metrics.SearchCandidatesSkippedTotal.Add(float64(skipped))
	s.logger.Warn("Skipped malformed candidates", zap.Int("count", skipped))
}
