package graph

import "runtime"

// Default build configuration constants.
const (
	// DefaultFloor is the minimum similarity for a pair to become an edge.
	DefaultFloor = 0.1
)

type buildConfig struct {
	floor   float64
	workers int
}

// Option applies a configuration option to the graph build.
type Option func(*buildConfig)

// WithFloor sets the minimum similarity for a pair to be kept as an edge.
func WithFloor(floor float64) Option {
	return func(c *buildConfig) {
		if floor >= 0 {
			c.floor = floor
		}
	}
}

// WithWorkerCount sets the number of build workers.
func WithWorkerCount(count int) Option {
	return func(c *buildConfig) {
		if count > 0 {
			c.workers = count
		}
	}
}

func newBuildConfig(opts ...Option) buildConfig {
	c := buildConfig{
		floor:   DefaultFloor,
		workers: runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
