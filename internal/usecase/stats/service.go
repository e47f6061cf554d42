// Package stats reports catalog size and embedding configuration for the
// /stats endpoint.
package stats

import (
	"context"
	"fmt"
)

// CatalogCounter reads the indexed item count.
type CatalogCounter interface {
	Count(ctx context.Context) (int, error)
}

// Report describes the running index.
type Report struct {
	TotalProducts int
	Model         string
	Dimensions    int
}

// Service aggregates index statistics.
type Service struct {
	catalog    CatalogCounter
	model      string
	dimensions int
}

// New creates a stats service.
func New(catalog CatalogCounter, model string, dimensions int) *Service {
	return &Service{catalog: catalog, model: model, dimensions: dimensions}
}

// Stats returns the current catalog report.
func (s *Service) Stats(ctx context.Context) (Report, error) {
	count, err := s.catalog.Count(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("count catalog: %w", err)
	}
	return Report{
		TotalProducts: count,
		Model:         s.model,
		Dimensions:    s.dimensions,
	}, nil
}
