// Package catalog adapts the db facade into the catalog persistence port
// consumed by the retrieval, ingest and stats use cases.
package catalog

import (
	"context"
	"fmt"

	"github.com/fincommerce/finsearch/internal/db"
	"github.com/fincommerce/finsearch/internal/domain"
	"github.com/fincommerce/finsearch/internal/domain/catalog"
	"github.com/fincommerce/finsearch/internal/domain/search/candidate"
	"github.com/fincommerce/finsearch/internal/domain/search/constraint"
)

// store is the consumer interface for catalog persistence (ISP).
type store interface {
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	Scan(ctx context.Context, q *db.ScanQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	DropIndex(ctx context.Context, name string) error
}

// IndexParams configures the HNSW vector index over the catalog.
type IndexParams struct {
	Dimensions  int
	M           int
	EFConstruct int
}

// IndexedItem pairs an item with its embedding for persistence.
type IndexedItem struct {
	Item   catalog.Item
	Vector []float32
}

// Repo implements catalog persistence over the db facade.
type Repo struct {
	store store
	dims  int
}

// New creates a catalog repository. dims is the embedding dimensionality the
// index was created with; query vectors of any other length are rejected.
func New(s store, dims int) *Repo {
	return &Repo{store: s, dims: dims}
}

// SearchSimilar runs vector retrieval with the constraint pushed down to the
// backend. Results below minScore are dropped. The second return is the
// number of malformed payloads skipped.
func (r *Repo) SearchSimilar(
	ctx context.Context, vector []float32, cons constraint.Constraint, topK int, minScore float64,
) ([]candidate.Candidate, int, error) {
	if len(vector) != r.dims {
		return nil, 0, fmt.Errorf(
			"%w: query vector has %d dimensions, index expects %d",
			domain.ErrInvalidInput, len(vector), r.dims,
		)
	}

	returnFields := make([]string, 0, len(payloadFields)+1)
	returnFields = append(returnFields, payloadFields...)
	returnFields = append(returnFields, "__vector_score")

	sr, err := r.store.SearchKNN(ctx, &db.KNNQuery{
		IndexName:    domain.CatalogIndexName,
		Filter:       constraintToFilter(cons),
		Vector:       vector,
		K:            topK,
		ReturnFields: returnFields,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: knn search: %v", domain.ErrRetrievalUnavailable, err)
	}

	candidates := make([]candidate.Candidate, 0, len(sr.Entries))
	skipped := 0
	for _, entry := range sr.Entries {
		if entry.Score < minScore {
			continue
		}
		item, err := itemFromFields(entry.Key, entry.Fields)
		if err != nil {
			skipped++
			continue
		}
		candidates = append(candidates, candidate.New(item, entry.Score, candidate.SourceVector))
	}
	return candidates, skipped, nil
}

// ScanAll reads up to limit items matching the constraint, without vector
// scoring. The second return is the number of malformed payloads skipped.
func (r *Repo) ScanAll(
	ctx context.Context, cons constraint.Constraint, limit int,
) ([]catalog.Item, int, error) {
	sr, err := r.store.Scan(ctx, &db.ScanQuery{
		IndexName:    domain.CatalogIndexName,
		Filter:       constraintToFilter(cons),
		Limit:        limit,
		ReturnFields: payloadFields,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("%w: catalog scan: %v", domain.ErrRetrievalUnavailable, err)
	}

	items := make([]catalog.Item, 0, len(sr.Entries))
	skipped := 0
	for _, entry := range sr.Entries {
		item, err := itemFromFields(entry.Key, entry.Fields)
		if err != nil {
			skipped++
			continue
		}
		items = append(items, item)
	}
	return items, skipped, nil
}

// Count returns the number of indexed items.
func (r *Repo) Count(ctx context.Context) (int, error) {
	count, err := r.store.SearchCount(ctx, domain.CatalogIndexName, "*")
	if err != nil {
		return 0, fmt.Errorf("%w: catalog count: %v", domain.ErrRetrievalUnavailable, err)
	}
	return count, nil
}

// SaveBatch persists items with their embeddings in one round-trip.
func (r *Repo) SaveBatch(ctx context.Context, items []IndexedItem) error {
	if len(items) == 0 {
		return nil
	}

	batch := make([]db.HashSetItem, 0, len(items))
	for i := range items {
		it := &items[i]
		if len(it.Vector) != r.dims {
			return fmt.Errorf(
				"%w: item %s: vector has %d dimensions, index expects %d",
				domain.ErrInvalidInput, it.Item.ID(), len(it.Vector), r.dims,
			)
		}
		batch = append(batch, db.HashSetItem{
			Key:    domain.CatalogPrefix + it.Item.ID(),
			Fields: itemToFields(&it.Item, it.Vector),
		})
	}
	if err := r.store.HSetMulti(ctx, batch); err != nil {
		return fmt.Errorf("save batch: %w", err)
	}
	return nil
}

// EnsureIndex creates the catalog FT index when missing.
func (r *Repo) EnsureIndex(ctx context.Context, params IndexParams) error {
	exists, err := r.store.IndexExists(ctx, domain.CatalogIndexName)
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if exists {
		return nil
	}

	def := &db.IndexDefinition{
		Name:     domain.CatalogIndexName,
		Prefixes: []string{domain.CatalogPrefix},
		Fields: []db.IndexField{
			{Name: fieldPrice, Type: db.IndexFieldNumeric},
			{Name: fieldCategory, Type: db.IndexFieldTag},
			{Name: fieldTags, Type: db.IndexFieldTag, TagSeparator: tagSeparator},
			{Name: fieldBudgetBand, Type: db.IndexFieldTag},
			{
				Name:              fieldVector,
				Type:              db.IndexFieldVector,
				VectorDim:         params.Dimensions,
				VectorDistance:    db.DistanceCosine,
				VectorM:           params.M,
				VectorEFConstruct: params.EFConstruct,
			},
		},
	}
	if err := r.store.CreateIndex(ctx, def); err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// DropIndex removes the catalog FT index, keeping the hashes.
func (r *Repo) DropIndex(ctx context.Context) error {
	if err := r.store.DropIndex(ctx, domain.CatalogIndexName); err != nil {
		return fmt.Errorf("drop index: %w", err)
	}
	return nil
}

func constraintToFilter(cons constraint.Constraint) db.Filter {
	return db.Filter{MaxPrice: cons.MaxPrice(), Category: cons.Category()}
}
