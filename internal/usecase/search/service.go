// Package search runs the full query pipeline: embed, retrieve, rank,
// explain.
package search

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fincommerce/finsearch/internal/domain/search/constraint"
	"github.com/fincommerce/finsearch/internal/domain/search/ranked"
	"github.com/fincommerce/finsearch/internal/domain/search/request"
	"github.com/fincommerce/finsearch/internal/metrics"
)

// Response is the pipeline output for one query.
type Response struct {
	// Results carry explanations, ordered by composite score descending.
	Results []ranked.Result
	// Stage names the retrieval stage that produced the result set.
	Stage string
	// Degraded is set when a retrieval stage failed over to empty output.
	Degraded bool
	// Skipped counts malformed catalog payloads dropped during retrieval.
	Skipped int
	// Explanation is the no-results guidance, empty when Results is non-empty.
	Explanation string
	// Took is the end-to-end pipeline duration.
	Took time.Duration
}

// Service wires the pipeline stages together.
type Service struct {
	embed    Embedder
	retrieve Retriever
	rank     Ranker
	explain  Explainer
	logger   *zap.Logger
}

// New creates a search service.
func New(embed Embedder, retrieve Retriever, rank Ranker, explain Explainer, logger *zap.Logger) *Service {
	return &Service{
		embed:    embed,
		retrieve: retrieve,
		rank:     rank,
		explain:  explain,
		logger:   logger,
	}
}

// Search executes the pipeline for a validated request. An embedding failure
// is fatal: no stage downstream can run without a query vector.
func (s *Service) Search(ctx context.Context, req *request.Request) (*Response, error) {
	start := time.Now()

	queryText := req.NormalizedQuery()

	embResult, err := s.embed.Embed(ctx, queryText)
	if err != nil {
		return nil, fmt.Errorf("vectorize query: %w", err)
	}

	budget := req.Budget()
	cons := constraint.New(&budget, req.Category())

	cands, stats, err := s.retrieve.Retrieve(
		ctx, queryText, embResult.Embedding, cons, req.TopK(), req.MinScore(),
	)
	if err != nil {
		return nil, fmt.Errorf("retrieve candidates: %w", err)
	}

	results := s.rank.Rank(cands, budget, req.MinScore(), req.TopK())
	for i := range results {
		results[i] = results[i].WithExplanation(s.explain.Result(&results[i], budget))
	}

	resp := &Response{
		Results:  results,
		Stage:    stats.Stage,
		Degraded: stats.Degraded,
		Skipped:  stats.Skipped,
		Took:     time.Since(start),
	}

	outcome := "results"
	if len(results) == 0 {
		outcome = "empty"
		resp.Explanation = s.explain.NoResults(req.Query(), budget)
	}
	metrics.SearchRequestsTotal.WithLabelValues(stats.Stage, outcome).Inc()
	metrics.SearchDuration.Observe(resp.Took.Seconds())

	s.logger.Info("Search completed",
		zap.String("stage", stats.Stage),
		zap.Int("results", len(results)),
		zap.Int("skipped", stats.Skipped),
		zap.Bool("degraded", stats.Degraded),
		zap.Duration("took", resp.Took),
		zap.Int("tokens", embResult.TotalTokens),
	)

	return resp, nil
}
