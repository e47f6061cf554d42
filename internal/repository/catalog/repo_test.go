package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/fincommerce/finsearch/internal/db"
	"github.com/fincommerce/finsearch/internal/domain"
	"github.com/fincommerce/finsearch/internal/domain/catalog"
	"github.com/fincommerce/finsearch/internal/domain/search/candidate"
	"github.com/fincommerce/finsearch/internal/domain/search/constraint"
)

// --- SearchSimilar ---

func TestSearchSimilar_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.searchKNNFn = func(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
		if q.IndexName != domain.CatalogIndexName {
			t.Errorf("unexpected index: %s", q.IndexName)
		}
		if q.K != 5 {
			t.Errorf("unexpected K: %d", q.K)
		}
		return &db.SearchResult{
			Total: 2,
			Entries: []db.SearchEntry{
				{Key: domain.CatalogPrefix + "p1", Score: 0.91, Fields: productFields("p1", "Wireless Headphones", "129.99")},
				{Key: domain.CatalogPrefix + "p2", Score: 0.72, Fields: productFields("p2", "Bluetooth Speaker", "59.99")},
			},
		}, nil
	}

	cands, skipped, err := repo.SearchSimilar(ctx, testVector(), constraint.Constraint{}, 5, 0.3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipped != 0 {
		t.Errorf("expected 0 skipped, got %d", skipped)
	}
	if len(cands) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(cands))
	}
	if cands[0].Item().ID() != "p1" {
		t.Errorf("expected p1, got %s", cands[0].Item().ID())
	}
	if cands[0].Score() != 0.91 {
		t.Errorf("expected score 0.91, got %f", cands[0].Score())
	}
	if cands[0].Source() != candidate.SourceVector {
		t.Errorf("expected vector source, got %s", cands[0].Source())
	}
}

func TestSearchSimilar_PushesConstraintDown(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	budget := 500.0
	called := false
	ms.searchKNNFn = func(_ context.Context, q *db.KNNQuery) (*db.SearchResult, error) {
		called = true
		if q.Filter.MaxPrice == nil || *q.Filter.MaxPrice != 500.0 {
			t.Errorf("expected max price 500, got %v", q.Filter.MaxPrice)
		}
		if q.Filter.Category != "Electronics" {
			t.Errorf("expected category Electronics, got %q", q.Filter.Category)
		}
		return &db.SearchResult{}, nil
	}

	cons := constraint.New(&budget, "electronics")
	if _, _, err := repo.SearchSimilar(ctx, testVector(), cons, 5, 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !called {
		t.Fatal("store not called")
	}
}

func TestSearchSimilar_DropsBelowMinScore(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.searchKNNFn = func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
		return &db.SearchResult{
			Total: 2,
			Entries: []db.SearchEntry{
				{Key: domain.CatalogPrefix + "p1", Score: 0.85, Fields: productFields("p1", "Laptop Pro", "999")},
				{Key: domain.CatalogPrefix + "p2", Score: 0.12, Fields: productFields("p2", "Laptop Sleeve", "19.99")},
			},
		}, nil
	}

	cands, skipped, err := repo.SearchSimilar(ctx, testVector(), constraint.Constraint{}, 5, 0.3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipped != 0 {
		t.Errorf("below-threshold entries are not malformed, got %d skipped", skipped)
	}
	if len(cands) != 1 || cands[0].Item().ID() != "p1" {
		t.Fatalf("expected only p1, got %d candidates", len(cands))
	}
}

func TestSearchSimilar_SkipsMalformed(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	bad := productFields("p2", "Broken", "not-a-number")

	ms.searchKNNFn = func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
		return &db.SearchResult{
			Total: 2,
			Entries: []db.SearchEntry{
				{Key: domain.CatalogPrefix + "p1", Score: 0.9, Fields: productFields("p1", "Laptop Pro", "999")},
				{Key: domain.CatalogPrefix + "p2", Score: 0.8, Fields: bad},
			},
		}, nil
	}

	cands, skipped, err := repo.SearchSimilar(ctx, testVector(), constraint.Constraint{}, 5, 0)
	if err != nil {
		t.Fatalf("malformed payloads must not fail the batch: %v", err)
	}
	if skipped != 1 {
		t.Errorf("expected 1 skipped, got %d", skipped)
	}
	if len(cands) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(cands))
	}
}

func TestSearchSimilar_DimensionMismatch(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.searchKNNFn = func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
		t.Fatal("backend must not be contacted on invalid input")
		return nil, nil
	}

	_, _, err := repo.SearchSimilar(ctx, []float32{0.1, 0.2}, constraint.Constraint{}, 5, 0)
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestSearchSimilar_BackendError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.searchKNNFn = func(_ context.Context, _ *db.KNNQuery) (*db.SearchResult, error) {
		return nil, errors.New("connection refused")
	}

	_, _, err := repo.SearchSimilar(ctx, testVector(), constraint.Constraint{}, 5, 0)
	if !errors.Is(err, domain.ErrRetrievalUnavailable) {
		t.Fatalf("expected ErrRetrievalUnavailable, got %v", err)
	}
}

// --- ScanAll ---

func TestScanAll_HappyPath(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.scanFn = func(_ context.Context, q *db.ScanQuery) (*db.SearchResult, error) {
		if q.Limit != 10000 {
			t.Errorf("unexpected limit: %d", q.Limit)
		}
		if q.Filter.MaxPrice != nil {
			t.Error("scan constraint should carry no price ceiling here")
		}
		return &db.SearchResult{
			Total: 1,
			Entries: []db.SearchEntry{
				{Key: domain.CatalogPrefix + "p9", Fields: productFields("p9", "Espresso Machine", "449")},
			},
		}, nil
	}

	items, skipped, err := repo.ScanAll(ctx, constraint.New(nil, "electronics").CategoryOnly(), 10000)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if skipped != 0 || len(items) != 1 {
		t.Fatalf("expected 1 item, got %d (skipped %d)", len(items), skipped)
	}
	if items[0].ID() != "p9" {
		t.Errorf("expected p9, got %s", items[0].ID())
	}
}

func TestScanAll_BackendError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.scanFn = func(_ context.Context, _ *db.ScanQuery) (*db.SearchResult, error) {
		return nil, errors.New("timeout")
	}

	_, _, err := repo.ScanAll(ctx, constraint.Constraint{}, 100)
	if !errors.Is(err, domain.ErrRetrievalUnavailable) {
		t.Fatalf("expected ErrRetrievalUnavailable, got %v", err)
	}
}

// --- Count ---

func TestCount(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.searchCountFn = func(_ context.Context, index, query string) (int, error) {
		if index != domain.CatalogIndexName || query != "*" {
			t.Errorf("unexpected count query: %s %s", index, query)
		}
		return 120, nil
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 120 {
		t.Errorf("expected 120, got %d", count)
	}
}

// --- SaveBatch / EnsureIndex ---

func TestSaveBatch_WritesHashes(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	var got []db.HashSetItem
	ms.hSetMultiFn = func(_ context.Context, items []db.HashSetItem) error {
		got = items
		return nil
	}

	item := mustItem(t, "p1", "Wireless Headphones", 129.99)
	err := repo.SaveBatch(ctx, []IndexedItem{{Item: item, Vector: testVector()}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 hash, got %d", len(got))
	}
	if got[0].Key != domain.CatalogPrefix+"p1" {
		t.Errorf("unexpected key: %s", got[0].Key)
	}
	if got[0].Fields[fieldTitle] != "Wireless Headphones" {
		t.Errorf("unexpected title field: %q", got[0].Fields[fieldTitle])
	}
	if got[0].Fields[fieldVector] == "" {
		t.Error("vector blob missing")
	}
}

func TestSaveBatch_RejectsDimensionMismatch(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	item := mustItem(t, "p1", "Wireless Headphones", 129.99)
	err := repo.SaveBatch(ctx, []IndexedItem{{Item: item, Vector: []float32{0.1}}})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestEnsureIndex_CreatesWhenMissing(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	var created *db.IndexDefinition
	ms.createIndexFn = func(_ context.Context, def *db.IndexDefinition) error {
		created = def
		return nil
	}

	err := repo.EnsureIndex(ctx, IndexParams{Dimensions: 4, M: 16, EFConstruct: 200})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("index not created")
	}
	if created.Name != domain.CatalogIndexName {
		t.Errorf("unexpected index name: %s", created.Name)
	}
	var hasVector bool
	for _, f := range created.Fields {
		if f.Type == db.IndexFieldVector {
			hasVector = true
			if f.VectorDim != 4 {
				t.Errorf("unexpected dims: %d", f.VectorDim)
			}
		}
	}
	if !hasVector {
		t.Error("vector field missing from schema")
	}
}

func TestEnsureIndex_SkipsWhenPresent(t *testing.T) {
	repo, ms := newTestRepo(t)
	ctx := context.Background()

	ms.indexExistsFn = func(_ context.Context, _ string) (bool, error) { return true, nil }
	ms.createIndexFn = func(_ context.Context, _ *db.IndexDefinition) error {
		t.Fatal("create must not run when index exists")
		return nil
	}

	if err := repo.EnsureIndex(ctx, IndexParams{Dimensions: 4}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// --- DTO round trip ---

func TestItemFieldsRoundTrip(t *testing.T) {
	item, err := catalog.New("p42", "Espresso Machine", "15-bar pump", "Kitchen", "Brewista",
		449.00, 4.7, catalog.Attrs{
			MSRP:                 599.00,
			DiscountPct:          25,
			Tags:                 []string{"Coffee", "espresso"},
			InstallmentAvailable: true,
			MaxInstallments:      12,
			ShippingDays:         3,
			BudgetBand:           catalog.BandMidrange,
		})
	if err != nil {
		t.Fatalf("catalog.New: %v", err)
	}

	fields := itemToFields(&item, testVector())
	got, err := itemFromFields(domain.CatalogPrefix+"p42", fields)
	if err != nil {
		t.Fatalf("itemFromFields: %v", err)
	}

	if got.ID() != "p42" || got.Title() != "Espresso Machine" || got.Price() != 449.00 {
		t.Errorf("core fields lost: %s %s %f", got.ID(), got.Title(), got.Price())
	}
	if got.MSRP() != 599.00 || got.DiscountPct() != 25 {
		t.Errorf("pricing attrs lost: %f %f", got.MSRP(), got.DiscountPct())
	}
	if len(got.Tags()) != 2 || got.Tags()[0] != "coffee" {
		t.Errorf("tags lost or not lowercased: %v", got.Tags())
	}
	if !got.InstallmentAvailable() || got.MaxInstallments() != 12 {
		t.Errorf("installment attrs lost")
	}
	if got.BudgetBand() != catalog.BandMidrange {
		t.Errorf("band lost: %s", got.BudgetBand())
	}
}

func TestItemFromFields_MissingKeyFallsBackToHashKey(t *testing.T) {
	fields := productFields("", "Laptop Pro", "999")
	delete(fields, fieldProductID)

	item, err := itemFromFields(domain.CatalogPrefix+"p7", fields)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if item.ID() != "p7" {
		t.Errorf("expected id from key, got %s", item.ID())
	}
}
