// Package model contains domain models passed between layers.
package model

// Game represents the externally supplied, read-only attributes of a catalog
// entry. Fields mirror the catalog document schema.
type Game struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Year        int      `json:"year"`
	Genre       string   `json:"genre"`
	Platforms   []string `json:"platforms"`
	Description string   `json:"description,omitempty"`
	Developer   string   `json:"developer,omitempty"`
}

// FeatureVector is the machine-comparable description of a game.
//
// genre weights and mechanic flags are always sized to the shared taxonomy.
// Vectors are immutable once constructed; enrichment produces a new vector
// via WithEmbedding rather than mutating in place.
type FeatureVector struct {
	GenreWeights       []float64 `json:"genre_weights"`
	MechanicFlags      []bool    `json:"mechanic_flags"`
	PlatformGeneration int       `json:"platform_generation"`
	Complexity         float64   `json:"complexity"`
	ActionStrategy     float64   `json:"action_strategy_balance"`
	SingleMulti        float64   `json:"single_multi_balance"`
	SemanticEmbedding  []float64 `json:"semantic_embedding,omitempty"`
}

// WithEmbedding returns a copy of the vector carrying the given semantic
// embedding. The receiver is left untouched so in-flight computations never
// observe a partially enriched vector.
func (v FeatureVector) WithEmbedding(embedding []float64) FeatureVector {
	out := v
	out.GenreWeights = append([]float64(nil), v.GenreWeights...)
	out.MechanicFlags = append([]bool(nil), v.MechanicFlags...)
	out.SemanticEmbedding = append([]float64(nil), embedding...)
	return out
}

// HasEmbedding reports whether an enrichment step supplied a semantic
// embedding for this vector.
func (v FeatureVector) HasEmbedding() bool {
	return len(v.SemanticEmbedding) > 0
}

// GameMetadata is a full catalog entry: raw game attributes plus the derived
// feature vector and human-facing annotation data.
type GameMetadata struct {
	Game           Game               `json:"game"`
	Features       FeatureVector      `json:"features"`
	MechanicTags   []string           `json:"mechanic_tags"`
	MoodTags       []string           `json:"mood_tags,omitempty"`
	GenreAffinity  map[string]float64 `json:"genre_affinities"`
	EraCategory    string             `json:"era_category"`
	CommonPairings map[string]float64 `json:"common_pairings,omitempty"`
}

// Synergy is a qualitative finding describing why two games reinforce each
// other.
type Synergy struct {
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Strength    float64 `json:"strength"`
}

// Conflict is a qualitative finding describing why two games clash, with a
// hint for resolving the clash in a blended design.
type Conflict struct {
	Type           string  `json:"type"`
	Description    string  `json:"description"`
	Severity       float64 `json:"severity"`
	ResolutionHint string  `json:"resolution_hint"`
}

// CompatibilityEdge is the scored relationship between two games, computed
// on demand and never persisted as graph state.
type CompatibilityEdge struct {
	GameA     string     `json:"game_a"`
	GameB     string     `json:"game_b"`
	Weight    float64    `json:"weight"`
	Synergies []Synergy  `json:"synergies"`
	Conflicts []Conflict `json:"conflicts"`
}

// BlendPath is the resolved structure connecting a selected subset of games
// with maximum aggregate compatibility.
type BlendPath struct {
	Games              []string   `json:"games"`
	TotalCompatibility float64    `json:"total_compatibility"`
	Synergies          []Synergy  `json:"synergies"`
	Conflicts          []Conflict `json:"conflicts"`
}

// BlendSummary aggregates the selected games' design profile alongside the
// resolved path and derived feature recommendations.
type BlendSummary struct {
	Name                string             `json:"name"`
	Description         string             `json:"description"`
	Path                BlendPath          `json:"path"`
	GenreWeights        map[string]float64 `json:"genre_weights"`
	Mechanics           []string           `json:"mechanics"`
	AverageComplexity   float64            `json:"average_complexity"`
	AverageBalance      float64            `json:"average_balance"`
	RecommendedFeatures []string           `json:"recommended_features"`
}
