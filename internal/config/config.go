// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load() layers file/env.
// - External errors must be wrapped via this package's error helpers.
package config

import (
	"runtime"

	"github.com/okian/meld/internal/domain/similarity"
)

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// CatalogPath points at the catalog JSON document produced by the
	// offline builder.
	CatalogPath string `koanf:"catalog_path"`

	// SimilarityFloor is the minimum similarity for a catalog pair to
	// become a graph edge.
	SimilarityFloor float64 `koanf:"similarity_floor"`

	// TopK bounds the precomputed neighbor rows written back into each
	// game's common pairings.
	TopK int `koanf:"top_k"`

	// PairingFloor is the minimum similarity for a neighbor to be kept
	// as a common pairing.
	PairingFloor float64 `koanf:"pairing_floor"`

	// WorkerCount sets the number of graph build workers.
	WorkerCount int `koanf:"worker_count"`

	// MaxNeighborsLimit caps GET /neighbors?limit.
	MaxNeighborsLimit int `koanf:"max_neighbors_limit"`

	// Similarity sub-score weights. They should sum to 1; the engine
	// renormalizes when the semantic sub-score is unavailable.
	GenreWeight      float64 `koanf:"genre_weight"`
	MechanicsWeight  float64 `koanf:"mechanics_weight"`
	EraWeight        float64 `koanf:"era_weight"`
	ComplexityWeight float64 `koanf:"complexity_weight"`
	StyleWeight      float64 `koanf:"style_weight"`
	SemanticWeight   float64 `koanf:"semantic_weight"`
}

// New creates a Config populated with defaults.
func New() *Config {
	w := similarity.DefaultWeights()
	return &Config{
		LogLevel:          "info",
		Addr:              ":9090",
		CatalogPath:       "catalog.json",
		SimilarityFloor:   0.1,
		TopK:              10,
		PairingFloor:      0.7,
		WorkerCount:       runtime.NumCPU(),
		MaxNeighborsLimit: 100,
		GenreWeight:       w.Genre,
		MechanicsWeight:   w.Mechanics,
		EraWeight:         w.Era,
		ComplexityWeight:  w.Complexity,
		StyleWeight:       w.Style,
		SemanticWeight:    w.Semantic,
	}
}

// SimilarityWeights assembles the engine weight set from the flat fields.
func (c *Config) SimilarityWeights() similarity.Weights {
	return similarity.Weights{
		Genre:      c.GenreWeight,
		Mechanics:  c.MechanicsWeight,
		Era:        c.EraWeight,
		Complexity: c.ComplexityWeight,
		Style:      c.StyleWeight,
		Semantic:   c.SemanticWeight,
	}
}
