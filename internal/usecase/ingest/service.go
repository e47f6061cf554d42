// Package ingest builds the searchable catalog: it ensures the vector index
// exists and embeds and upserts products concurrently.
package ingest

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/fincommerce/finsearch/internal/domain/catalog"
	"github.com/fincommerce/finsearch/internal/metrics"
	catalogrepo "github.com/fincommerce/finsearch/internal/repository/catalog"
)

// DefaultBatchSize is the number of embedded products persisted per round-trip.
const DefaultBatchSize = 100

// Report summarizes an IndexProducts run.
type Report struct {
	// Indexed counts products embedded and persisted.
	Indexed int
	// Failed counts products that could not be embedded.
	Failed int
	// Took is the wall-clock duration of the run.
	Took time.Duration
}

// Service implements catalog ingestion.
type Service struct {
	repo      Repository
	embedder  Embedder
	params    catalogrepo.IndexParams
	poolSize  int
	batchSize int
	logger    *zap.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithPoolSize sets the embedding worker pool size. Default is half the CPUs,
// minimum 1.
func WithPoolSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.poolSize = size
		}
	}
}

// WithBatchSize sets how many embedded products are persisted per round-trip.
func WithBatchSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.batchSize = size
		}
	}
}

// New creates an ingest service.
func New(repo Repository, embedder Embedder, params catalogrepo.IndexParams, logger *zap.Logger, opts ...Option) *Service {
	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	s := &Service{
		repo:      repo,
		embedder:  embedder,
		params:    params,
		poolSize:  poolSize,
		batchSize: DefaultBatchSize,
		logger:    logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// EnsureIndex creates the catalog vector index when missing.
func (s *Service) EnsureIndex(ctx context.Context) error {
	if err := s.repo.EnsureIndex(ctx, s.params); err != nil {
		return fmt.Errorf("ensure catalog index: %w", err)
	}
	return nil
}

// IndexProducts embeds and upserts items. Embedding runs on a worker pool;
// items whose embedding fails are counted and skipped, a persistence failure
// aborts the run. The returned Report is valid even when err is non-nil.
func (s *Service) IndexProducts(ctx context.Context, items []catalog.Item) (Report, error) {
	start := time.Now()
	report := Report{}
	if len(items) == 0 {
		return report, nil
	}

	embedded, failed, err := s.embedAll(ctx, items)
	report.Failed = failed
	if err != nil {
		report.Took = time.Since(start)
		return report, err
	}

	for from := 0; from < len(embedded); from += s.batchSize {
		to := from + s.batchSize
		if to > len(embedded) {
			to = len(embedded)
		}
		if err := ctx.Err(); err != nil {
			report.Took = time.Since(start)
			return report, err
		}
		if err := s.repo.SaveBatch(ctx, embedded[from:to]); err != nil {
			report.Took = time.Since(start)
			return report, fmt.Errorf("persist batch [%d:%d]: %w", from, to, err)
		}
		report.Indexed += to - from
	}

	report.Took = time.Since(start)
	metrics.IngestProductsTotal.WithLabelValues("indexed").Add(float64(report.Indexed))
	metrics.IngestProductsTotal.WithLabelValues("failed").Add(float64(report.Failed))
	metrics.IngestBatchDuration.Observe(report.Took.Seconds())
	s.logger.Info("Catalog ingestion finished",
		zap.Int("indexed", report.Indexed),
		zap.Int("failed", report.Failed),
		zap.Duration("took", report.Took),
	)
	return report, nil
}

// embedAll vectorizes items on the worker pool. Individual embedding failures
// are logged and counted, context cancellation stops the run.
func (s *Service) embedAll(ctx context.Context, items []catalog.Item) ([]catalogrepo.IndexedItem, int, error) {
	pool, err := ants.NewPool(s.poolSize)
	if err != nil {
		return nil, 0, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		mu       sync.Mutex
		wg       sync.WaitGroup
		embedded = make([]catalogrepo.IndexedItem, 0, len(items))
		failed   int
	)

	for i := range items {
		item := items[i]
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			if ctx.Err() != nil {
				return
			}

			res, err := s.embedder.Embed(ctx, EmbeddingText(&item))
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				failed++
				s.logger.Warn("Embedding failed, skipping product",
					zap.String("product_id", item.ID()), zap.Error(err))
				return
			}
			embedded = append(embedded, catalogrepo.IndexedItem{Item: item, Vector: res.Embedding})
		})
		if submitErr != nil {
			wg.Done()
			wg.Wait()
			return nil, failed, fmt.Errorf("submit embedding task: %w", submitErr)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, failed, err
	}
	return embedded, failed, nil
}

// EmbeddingText builds the text an item is vectorized from: lowercased title,
// description, tags, category and brand joined by spaces.
func EmbeddingText(item *catalog.Item) string {
	parts := []string{
		strings.ToLower(item.Title()),
		strings.ToLower(item.Description()),
		strings.Join(item.Tags(), " "),
		strings.ToLower(item.Category()),
		strings.ToLower(item.Brand()),
	}
	fields := parts[:0]
	for _, p := range parts {
		if p != "" {
			fields = append(fields, p)
		}
	}
	return strings.Join(fields, " ")
}
