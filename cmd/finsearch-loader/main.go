// Catalog loader for finsearch. Reads a products JSON file, embeds every
// product and indexes the catalog through the ingest pipeline.
//
// Usage:
//
//	finsearch-loader -file products.json -workers 8 -batch-size 100
//
// Connection and embedding settings come from the same config files the API
// server uses (ENV selects the file).
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/fincommerce/finsearch/internal/config"
	dbRedis "github.com/fincommerce/finsearch/internal/db/redis"
	"github.com/fincommerce/finsearch/internal/domain/catalog"
	logpkg "github.com/fincommerce/finsearch/internal/logger"
	"github.com/fincommerce/finsearch/internal/metrics"
	catalogrepo "github.com/fincommerce/finsearch/internal/repository/catalog"
	"github.com/fincommerce/finsearch/internal/repository/embcache"
	openaiEmb "github.com/fincommerce/finsearch/internal/transport/openai"
	ingestuc "github.com/fincommerce/finsearch/internal/usecase/ingest"
)

type flags struct {
	file      string
	workers   int
	batchSize int
	reset     bool
}

func parseFlags() flags {
	f := flags{}
	flag.StringVar(&f.file, "file", "products.json", "products JSON file to load")
	flag.IntVar(&f.workers, "workers", 8, "number of parallel embedding workers")
	flag.IntVar(&f.batchSize, "batch-size", 100, "products per batch upsert")
	flag.BoolVar(&f.reset, "reset", false, "drop and recreate the catalog index first")
	flag.Parse()
	return f
}

// productRecord is the JSON shape of one catalog entry in the input file.
type productRecord struct {
	ID                   string   `json:"id"`
	Title                string   `json:"title"`
	Description          string   `json:"description"`
	Price                float64  `json:"price"`
	Category             string   `json:"category"`
	Brand                string   `json:"brand"`
	Rating               float64  `json:"rating"`
	MSRP                 float64  `json:"msrp"`
	DiscountPct          float64  `json:"discount_pct"`
	Tags                 []string `json:"tags"`
	InstallmentAvailable bool     `json:"installment_available"`
	MaxInstallments      int      `json:"max_installments"`
	ShippingDays         int      `json:"shipping_days"`
	BudgetBand           string   `json:"budget_band"`
}

func main() {
	f := parseFlags()

	ctx, cancel := signal.NotifyContext(
		context.Background(), syscall.SIGTERM, syscall.SIGINT,
	)
	defer cancel()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	if err := run(ctx, f, cfg, logger); err != nil {
		logger.Fatal("Loader failed", zap.Error(err))
	}
}

func run(ctx context.Context, f flags, cfg config.Config, logger *zap.Logger) error {
	items, skipped, err := readProducts(f.file, logger)
	if err != nil {
		return err
	}
	logger.Info("Products file read",
		zap.String("file", f.file),
		zap.Int("valid", len(items)),
		zap.Int("skipped", skipped),
	)

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:    cfg.Database.Addrs,
		Password: cfg.Database.Password,
	})
	if err != nil {
		return fmt.Errorf("create store: %w", err)
	}
	defer store.Close()

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		return fmt.Errorf("database not ready: %w", err)
	}

	metrics.RegisterIngestMetrics()
	metrics.RegisterEmbeddingMetrics()

	baseEmbedder := openaiEmb.NewEmbedder(&openaiEmb.Config{
		APIKey:     cfg.Embedding.APIKey,
		BaseURL:    cfg.Embedding.BaseURL,
		Model:      cfg.Embedding.Model,
		Dimensions: cfg.Embedding.Dimensions,
		Provider:   cfg.Embedding.Provider,
		Logger:     logger,
	})
	embedder := embcache.New(
		baseEmbedder, store,
		time.Duration(cfg.Embedding.CacheTTLHours)*time.Hour,
		nil, logger,
	)

	repo := catalogrepo.New(store, cfg.Embedding.Dimensions)
	svc := ingestuc.New(repo, embedder,
		catalogrepo.IndexParams{
			Dimensions:  cfg.Embedding.Dimensions,
			M:           cfg.Search.HNSWM,
			EFConstruct: cfg.Search.HNSWEFConstruct,
		},
		logger,
		ingestuc.WithPoolSize(f.workers),
		ingestuc.WithBatchSize(f.batchSize),
	)

	if f.reset {
		if err := repo.DropIndex(ctx); err != nil {
			logger.Warn("Drop index failed, continuing", zap.Error(err))
		} else {
			logger.Info("Catalog index dropped")
		}
	}
	if err := svc.EnsureIndex(ctx); err != nil {
		return err
	}

	start := time.Now()
	report, err := svc.IndexProducts(ctx, items)
	if err != nil {
		return fmt.Errorf("index products: %w", err)
	}

	elapsed := time.Since(start)
	rate := float64(report.Indexed) / elapsed.Seconds()
	logger.Info("Catalog loaded",
		zap.Int("indexed", report.Indexed),
		zap.Int("embed_failed", report.Failed),
		zap.Int("invalid_records", skipped),
		zap.Duration("elapsed", elapsed.Round(time.Second)),
		zap.Float64("rate_per_sec", rate),
	)
	return nil
}

// readProducts parses the input file. Records that fail domain validation
// are logged and skipped; one bad record never aborts the load.
func readProducts(path string, logger *zap.Logger) ([]catalog.Item, int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("read products file: %w", err)
	}

	var records []productRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, 0, fmt.Errorf("parse products file: %w", err)
	}

	items := make([]catalog.Item, 0, len(records))
	skipped := 0
	for i, rec := range records {
		item, err := catalog.New(
			rec.ID, rec.Title, rec.Description,
			catalog.CanonicalCategory(rec.Category), rec.Brand,
			rec.Price, rec.Rating,
			catalog.Attrs{
				MSRP:                 rec.MSRP,
				DiscountPct:          rec.DiscountPct,
				Tags:                 rec.Tags,
				InstallmentAvailable: rec.InstallmentAvailable,
				MaxInstallments:      rec.MaxInstallments,
				ShippingDays:         rec.ShippingDays,
				BudgetBand:           catalog.Band(rec.BudgetBand),
			},
		)
		if err != nil {
			skipped++
			logger.Warn("Skipping invalid product record",
				zap.Int("record", i), zap.Error(err))
			continue
		}
		items = append(items, item)
	}
	return items, skipped, nil
}
