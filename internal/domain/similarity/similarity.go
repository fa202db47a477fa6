// Package similarity computes pairwise compatibility between feature vectors.
//
// Score is a pure function: symmetric, bounded to [0,1], and maximal for a
// vector compared with itself. It performs no I/O and runs in O(taxonomy
// size) per call.
package similarity

import (
	"math"

	"github.com/okian/meld/internal/domain/model"
	"github.com/okian/meld/internal/domain/taxonomy"
)

// Weights holds the relative weight of each sub-score. They are expected to
// sum to 1; the engine renormalizes by the total weight actually used so a
// missing semantic embedding never penalizes a pair.
type Weights struct {
	Genre      float64 `koanf:"genre"`
	Mechanics  float64 `koanf:"mechanics"`
	Era        float64 `koanf:"era"`
	Complexity float64 `koanf:"complexity"`
	Style      float64 `koanf:"style"`
	Semantic   float64 `koanf:"semantic"`
}

// DefaultWeights returns the standard sub-score split. The exact split is a
// tunable reconstruction, not a fixed law; tests assert properties rather
// than byte-exact scores.
func DefaultWeights() Weights {
	return Weights{
		Genre:      0.35,
		Mechanics:  0.25,
		Era:        0.10,
		Complexity: 0.10,
		Style:      0.10,
		Semantic:   0.10,
	}
}

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithWeights sets the sub-score weights. Non-positive weight sets are
// ignored in favor of the defaults.
func WithWeights(w Weights) Option {
	return func(e *Engine) {
		if w.Total() > 0 {
			e.weights = w
		}
	}
}

// Engine computes compatibility scores between feature vectors.
type Engine struct {
	weights Weights
}

// New creates an Engine with configuration options.
func New(opts ...Option) *Engine {
	e := &Engine{weights: DefaultWeights()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Weights returns the engine's configured sub-score weights.
func (e *Engine) Weights() Weights {
	return e.weights
}

// Score computes the compatibility of two feature vectors as a weighted sum
// of independently normalized sub-scores. The semantic sub-score contributes
// only when both vectors carry an embedding; otherwise the remaining weights
// are renormalized so they still sum to 1.
func (e *Engine) Score(a, b model.FeatureVector) float64 {
	w := e.weights

	sum := w.Genre*genreSimilarity(a.GenreWeights, b.GenreWeights) +
		w.Mechanics*mechanicSimilarity(a.MechanicFlags, b.MechanicFlags) +
		w.Era*eraCloseness(a.PlatformGeneration, b.PlatformGeneration) +
		w.Complexity*(1-math.Abs(a.Complexity-b.Complexity)) +
		w.Style*styleCloseness(a, b)

	total := w.Genre + w.Mechanics + w.Era + w.Complexity + w.Style

	if a.HasEmbedding() && b.HasEmbedding() {
		sum += w.Semantic * cosine(a.SemanticEmbedding, b.SemanticEmbedding)
		total += w.Semantic
	}

	if total <= 0 {
		return 0
	}
	return clamp01(sum / total)
}

// genreSimilarity is the cosine similarity of the genre weight vectors. A
// zero-magnitude vector scores 0 rather than dividing by zero.
func genreSimilarity(a, b []float64) float64 {
	return cosine(a, b)
}

// mechanicSimilarity is the fraction of taxonomy positions on which both
// flag vectors agree. Agreement on absence counts: two games that both lack
// a mechanic are alike in that respect.
func mechanicSimilarity(a, b []bool) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}
	matches := 0
	for i := 0; i < n; i++ {
		if a[i] == b[i] {
			matches++
		}
	}
	return float64(matches) / float64(n)
}

// eraCloseness maps the hardware generation gap onto [0,1].
func eraCloseness(a, b int) float64 {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return 1 - float64(diff)/float64(taxonomy.MaxPlatformGeneration-1)
}

// styleCloseness averages the closeness of the two balance scalars, each of
// which spans [-1,1].
func styleCloseness(a, b model.FeatureVector) float64 {
	action := 1 - math.Abs(a.ActionStrategy-b.ActionStrategy)/2
	multi := 1 - math.Abs(a.SingleMulti-b.SingleMulti)/2
	return (action + multi) / 2
}

// cosine computes cosine similarity; mismatched lengths compare the common
// prefix and zero-magnitude vectors score 0.
func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	if n == 0 {
		return 0
	}

	var dot, magA, magB float64
	for i := 0; i < n; i++ {
		dot += a[i] * b[i]
		magA += a[i] * a[i]
		magB += b[i] * b[i]
	}
	if magA == 0 || magB == 0 {
		return 0
	}
	return dot / (math.Sqrt(magA) * math.Sqrt(magB))
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}

// Total sums every sub-score weight, semantic included.
func (w Weights) Total() float64 {
	return w.Genre + w.Mechanics + w.Era + w.Complexity + w.Style + w.Semantic
}
