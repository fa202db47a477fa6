// Package builder derives full catalog metadata from raw game records.
//
// This is the offline step that runs once at catalog-generation time: it
// seeds genre weights, infers mechanics, buckets hardware eras, and assigns
// the balance scalars the similarity engine compares. The engine itself
// never re-derives features from raw genre strings.
package builder

import (
	"strings"

	"github.com/google/uuid"

	"github.com/okian/meld/internal/domain/graph"
	"github.com/okian/meld/internal/domain/model"
	"github.com/okian/meld/internal/domain/taxonomy"
)

// Feature derivation constants.
const (
	primaryGenreWeight = 1.0

	// Complexity grows slightly over the catalog's era but the era term
	// never exceeds this cap.
	eraComplexityCap  = 0.2
	eraComplexitySpan = 15.0
	eraBaseYear       = 1980
)

// Builder derives GameMetadata from raw game records.
type Builder struct{}

// New creates a metadata Builder.
func New() *Builder {
	return &Builder{}
}

// Build derives the full metadata for one raw record. Records without a
// stable id are assigned a generated UUID.
func (b *Builder) Build(game model.Game) model.GameMetadata {
	if strings.TrimSpace(game.ID) == "" {
		game.ID = uuid.NewString()
	}

	return model.GameMetadata{
		Game:          game,
		Features:      b.buildFeatures(game),
		MechanicTags:  b.mechanicTags(game.Genre),
		GenreAffinity: b.genreAffinities(game.Genre),
		EraCategory:   model.EraCategory(game.Year),
	}
}

// BuildAll derives metadata for a whole record set, keyed by game id.
func (b *Builder) BuildAll(games []model.Game) map[string]model.GameMetadata {
	out := make(map[string]model.GameMetadata, len(games))
	for _, game := range games {
		meta := b.Build(game)
		out[meta.Game.ID] = meta
	}
	return out
}

// UpdateCommonPairings writes each item's strongest precomputed pairings
// back into the metadata set. Only pairs at or above floor are kept, at most
// k per item. The pairings are a cache: the similarity engine can always
// recompute any pair from the feature vectors alone.
func UpdateCommonPairings(metas map[string]model.GameMetadata, g *graph.Graph, k int, floor float64) {
	for id, meta := range metas {
		neighbors, ok := g.Neighbors(id, k)
		if !ok {
			continue
		}
		pairings := make(map[string]float64, len(neighbors))
		for _, n := range neighbors {
			if n.Weight >= floor {
				pairings[n.ID] = n.Weight
			}
		}
		meta.CommonPairings = pairings
		metas[id] = meta
	}
}

func (b *Builder) buildFeatures(game model.Game) model.FeatureVector {
	genre := strings.ToLower(strings.TrimSpace(game.Genre))

	weights := make([]float64, taxonomy.GenreCount())
	if i, ok := taxonomy.GenreIndex(genre); ok {
		weights[i] = primaryGenreWeight
	}
	// Related-genre spillover mirrors how players actually group these.
	for related, w := range relatedGenreWeights(genre) {
		if i, ok := taxonomy.GenreIndex(related); ok {
			weights[i] = w
		}
	}

	flags := make([]bool, taxonomy.MechanicCount())
	for _, mechanic := range genreMechanics(genre) {
		if i, ok := taxonomy.MechanicIndex(mechanic); ok {
			flags[i] = true
		}
	}

	return model.FeatureVector{
		GenreWeights:       weights,
		MechanicFlags:      flags,
		PlatformGeneration: platformGeneration(game),
		Complexity:         complexity(genre, game.Year),
		ActionStrategy:     actionStrategyBalance(genre),
		SingleMulti:        singleMultiBalance(genre),
	}
}

// mechanicTags lists the labels of the inferred mechanics for human-facing
// annotation.
func (b *Builder) mechanicTags(genreLabel string) []string {
	return genreMechanics(strings.ToLower(strings.TrimSpace(genreLabel)))
}

func (b *Builder) genreAffinities(genreLabel string) map[string]float64 {
	genre := strings.ToLower(strings.TrimSpace(genreLabel))
	affinities := make(map[string]float64)
	if genre == "" {
		return affinities
	}

	if i, ok := taxonomy.GenreIndex(genre); ok {
		affinities[taxonomy.Genres[i]] = primaryGenreWeight
	} else {
		affinities[strings.TrimSpace(genreLabel)] = primaryGenreWeight
	}

	switch genre {
	case "action":
		affinities["Platform"] = 0.5
		affinities["Shooter"] = 0.6
	case "role-playing":
		affinities["Adventure"] = 0.7
		affinities["Strategy"] = 0.4
	case "platform":
		affinities["Action"] = 0.6
		affinities["Puzzle"] = 0.3
	}

	return affinities
}

func relatedGenreWeights(genre string) map[string]float64 {
	switch genre {
	case "action":
		return map[string]float64{"platform": 0.3}
	case "role-playing":
		return map[string]float64{"adventure": 0.5}
	default:
		return nil
	}
}

func genreMechanics(genre string) []string {
	switch genre {
	case "action":
		return []string{"Combat", "Real-Time"}
	case "role-playing":
		return []string{"Character Progression", "Exploration", "Story Choices"}
	case "strategy":
		return []string{"Resource Management", "Turn-Based"}
	case "platform":
		return []string{"Platform Jumping", "Collection"}
	case "puzzle":
		return []string{"Puzzle Solving"}
	case "shooter":
		return []string{"Combat", "Real-Time"}
	default:
		return nil
	}
}

// platformGeneration buckets the hardware era from the platform labels,
// falling back to year buckets for unrecognized hardware.
func platformGeneration(game model.Game) int {
	for _, platform := range game.Platforms {
		switch {
		case strings.Contains(platform, "Arcade"):
			return 1
		case strings.Contains(platform, "NES") && !strings.Contains(platform, "SNES"),
			strings.Contains(platform, "Master System"):
			return 2
		case strings.Contains(platform, "SNES"), strings.Contains(platform, "Genesis"):
			return 3
		case strings.Contains(platform, "PlayStation"), strings.Contains(platform, "Saturn"):
			return 4
		}
	}

	switch {
	case game.Year >= 1980 && game.Year <= 1983:
		return 1
	case game.Year >= 1984 && game.Year <= 1987:
		return 2
	case game.Year >= 1988 && game.Year <= 1991:
		return 3
	case game.Year >= 1992 && game.Year <= 1995:
		return 4
	default:
		return 3
	}
}

func complexity(genre string, year int) float64 {
	var base float64
	switch genre {
	case "strategy", "role-playing", "simulation":
		base = 0.8
	case "adventure", "fighting":
		base = 0.6
	case "action", "platform", "shooter":
		base = 0.4
	case "puzzle", "sports":
		base = 0.3
	default:
		base = 0.5
	}

	eraTerm := (float64(year) - eraBaseYear) / eraComplexitySpan
	if eraTerm < 0 {
		eraTerm = 0
	}
	if eraTerm > eraComplexityCap {
		eraTerm = eraComplexityCap
	}

	if base+eraTerm > 1 {
		return 1
	}
	return base + eraTerm
}

// actionStrategyBalance places each genre on the strategic/slow (negative)
// to action/fast (positive) axis.
func actionStrategyBalance(genre string) float64 {
	switch genre {
	case "action", "shooter", "platform":
		return 0.8
	case "fighting", "racing":
		return 0.6
	case "sports":
		return 0.4
	case "adventure":
		return 0.0
	case "role-playing":
		return -0.2
	case "puzzle":
		return -0.4
	case "simulation":
		return -0.6
	case "strategy":
		return -0.8
	default:
		return 0.0
	}
}

// singleMultiBalance places each genre on the single-player (negative) to
// multiplayer (positive) axis. Most games of the era were single-player.
func singleMultiBalance(genre string) float64 {
	switch genre {
	case "fighting", "sports":
		return 0.8
	case "racing":
		return 0.4
	case "action", "platform":
		return -0.4
	case "role-playing", "adventure", "strategy":
		return -0.8
	default:
		return -0.5
	}
}
