package app

import (
	"github.com/okian/meld/internal/adapters/repository"
	"github.com/okian/meld/internal/domain/similarity"
	"github.com/okian/meld/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCatalogPath sets the catalog document the service loads on start.
func WithCatalogPath(path string) Option {
	return func(s *Service) {
		if path != "" {
			s.catalogPath = path
		}
	}
}

// WithCatalog injects a prebuilt catalog, bypassing the file load.
func WithCatalog(catalog repository.Catalog) Option {
	return func(s *Service) {
		if catalog != nil {
			s.catalog = catalog
		}
	}
}

// WithSimilarityWeights sets the engine's sub-score weights.
func WithSimilarityWeights(w similarity.Weights) Option {
	return func(s *Service) {
		if w.Total() > 0 {
			s.weights = w
		}
	}
}

// WithSimilarityFloor sets the minimum similarity for a graph edge.
func WithSimilarityFloor(floor float64) Option {
	return func(s *Service) {
		if floor >= 0 {
			s.similarityFloor = floor
		}
	}
}

// WithWorkerCount sets the number of graph build workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithTopK sets the default neighbor row depth.
func WithTopK(k int) Option {
	return func(s *Service) {
		if k > 0 {
			s.topK = k
		}
	}
}
