// Package app provides the core service that implements the dependencies
// required by the HTTP API: catalog loading, graph precompute, and the
// interactive blend operations.
package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/okian/meld/internal/adapters/repository"
	"github.com/okian/meld/internal/domain/blend"
	"github.com/okian/meld/internal/domain/graph"
	"github.com/okian/meld/internal/domain/model"
	"github.com/okian/meld/internal/domain/recommend"
	"github.com/okian/meld/internal/domain/similarity"
	"github.com/okian/meld/pkg/logger"
	"github.com/okian/meld/pkg/metrics"
)

// Service implements the API dependencies for the blend engine.
type Service struct {
	mu sync.RWMutex

	// Core components
	catalog  repository.Catalog
	engine   *similarity.Engine
	graph    *graph.Graph
	resolver *blend.Resolver

	// Configuration
	catalogPath     string
	weights         similarity.Weights
	similarityFloor float64
	workerCount     int
	topK            int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		catalogPath:     "catalog.json",
		weights:         similarity.DefaultWeights(),
		similarityFloor: graph.DefaultFloor,
		topK:            10,
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start loads the catalog, builds the similarity engine, and precomputes
// the compatibility graph. It is safe to call once.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}

	s.logger.Info(ctx, "starting blend engine...")

	if s.catalog == nil {
		metas, err := repository.LoadFile(s.catalogPath)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		s.catalog = repository.NewMemoryCatalog(metas)
	}

	s.engine = similarity.New(similarity.WithWeights(s.weights))

	buildOpts := []graph.Option{graph.WithFloor(s.similarityFloor)}
	if s.workerCount > 0 {
		buildOpts = append(buildOpts, graph.WithWorkerCount(s.workerCount))
	}
	start := time.Now()
	g, err := graph.Build(ctx, s.catalog.All(), s.engine, buildOpts...)
	if err != nil {
		return fmt.Errorf("build graph: %w", err)
	}
	s.graph = g

	s.resolver = blend.New(s.catalog, s.engine, blend.WithGraph(s.graph))

	s.started = true
	s.logger.Info(ctx, "blend engine started",
		logger.Int("games", s.catalog.Count()),
		logger.Int("edges", s.graph.EdgeCount()),
		logger.Float64("floor", s.similarityFloor),
		logger.Any("buildTime", time.Since(start)),
	)

	return nil
}

// Stop releases service state. The engine holds no external resources, so
// this only marks the service stopped.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "blend engine stopped")
}

// Similarity returns the compatibility score for a specific pair.
func (s *Service) Similarity(ctx context.Context, idA, idB string) (float64, error) {
	a, ok := s.catalog.Get(idA)
	if !ok {
		return 0, blend.UnknownGameError{ID: idA}
	}
	b, ok := s.catalog.Get(idB)
	if !ok {
		return 0, blend.UnknownGameError{ID: idB}
	}
	metrics.RecordSimilarityQuery()
	return s.engine.Score(a.Features, b.Features), nil
}

// Edge returns the full compatibility edge, annotations included, for a
// specific pair.
func (s *Service) Edge(ctx context.Context, idA, idB string) (model.CompatibilityEdge, error) {
	edge, err := s.resolver.Edge(ctx, idA, idB)
	if err != nil {
		return model.CompatibilityEdge{}, err
	}
	metrics.RecordSimilarityQuery()
	return edge, nil
}

// Neighbors returns up to k precomputed neighbors of id, ordered by
// descending weight and never including id itself.
func (s *Service) Neighbors(ctx context.Context, id string, k int) ([]graph.Neighbor, error) {
	neighbors, ok := s.graph.Neighbors(id, k)
	if !ok {
		return nil, blend.UnknownGameError{ID: id}
	}
	metrics.RecordNeighborQuery()
	return neighbors, nil
}

// ResolveBlend connects the selection by maximum compatibility.
func (s *Service) ResolveBlend(ctx context.Context, ids []string) (model.BlendPath, error) {
	start := time.Now()
	path, err := s.resolver.Resolve(ctx, ids)
	if err != nil {
		metrics.RecordBlendError()
		return model.BlendPath{}, err
	}
	metrics.RecordBlendRequest(len(path.Games))
	metrics.RecordBlendLatency(float64(time.Since(start).Milliseconds()))
	return path, nil
}

// Blend resolves the selection and wraps the path in a full design summary:
// aggregate profile, generated name and description, and recommended
// features.
func (s *Service) Blend(ctx context.Context, ids []string) (model.BlendSummary, error) {
	path, err := s.ResolveBlend(ctx, ids)
	if err != nil {
		return model.BlendSummary{}, err
	}

	profile := s.aggregateProfile(path.Games)
	return model.BlendSummary{
		Name:                blendName(profile.names),
		Description:         blendDescription(profile),
		Path:                path,
		GenreWeights:        profile.genreWeights,
		Mechanics:           profile.mechanics,
		AverageComplexity:   profile.avgComplexity,
		AverageBalance:      profile.avgBalance,
		RecommendedFeatures: recommend.Features(profile.genreWeights, profile.mechanics, profile.avgComplexity),
	}, nil
}

// RecommendFeatures returns the derived feature suggestions for a selection
// without resolving the full blend.
func (s *Service) RecommendFeatures(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) < 2 {
		return nil, blend.ErrInsufficientSelection
	}
	for _, id := range ids {
		if _, ok := s.catalog.Get(id); !ok {
			return nil, blend.UnknownGameError{ID: id}
		}
	}
	profile := s.aggregateProfile(ids)
	return recommend.Features(profile.genreWeights, profile.mechanics, profile.avgComplexity), nil
}

// GetStats returns service statistics for the /stats endpoint.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":          s.started,
		"similarity_floor": s.similarityFloor,
		"top_k":            s.topK,
	}
	if s.catalog != nil {
		stats["catalog_size"] = s.catalog.Count()
	}
	if s.graph != nil {
		stats["graph_edges"] = s.graph.EdgeCount()
	}
	return stats
}
