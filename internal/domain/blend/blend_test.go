package blend_test

import (
	"context"
	"testing"

	"github.com/okian/meld/internal/adapters/repository"
	"github.com/okian/meld/internal/domain/blend"
	"github.com/okian/meld/internal/domain/model"
	"github.com/okian/meld/internal/domain/similarity"
	"github.com/okian/meld/internal/domain/taxonomy"
	. "github.com/smartystreets/goconvey/convey"
)

// meta builds a catalog entry with a single weighted genre.
func meta(id, name, genre string, year int, platforms []string, mechanics []string, complexity, action float64) model.GameMetadata {
	weights := make([]float64, taxonomy.GenreCount())
	if i, ok := taxonomy.GenreIndex(genre); ok {
		weights[i] = 1.0
	}
	flags := make([]bool, taxonomy.MechanicCount())
	for _, m := range mechanics {
		if i, ok := taxonomy.MechanicIndex(m); ok {
			flags[i] = true
		}
	}
	return model.GameMetadata{
		Game: model.Game{
			ID:        id,
			Name:      name,
			Genre:     genre,
			Year:      year,
			Platforms: platforms,
		},
		Features: model.FeatureVector{
			GenreWeights:   weights,
			MechanicFlags:  flags,
			Complexity:     complexity,
			ActionStrategy: action,
		},
		MechanicTags: mechanics,
		EraCategory:  model.EraCategory(year),
	}
}

// fixedCatalog serves metadata straight from a map; used together with a
// fixedEngine to pin pair weights without real feature vectors.
type fixedCatalog map[string]model.GameMetadata

func (c fixedCatalog) Get(id string) (model.GameMetadata, bool) {
	m, ok := c[id]
	return m, ok
}

func TestResolve(t *testing.T) {
	Convey("Given a resolver over a small catalog", t, func() {
		ctx := context.Background()
		engine := similarity.New()

		catalog := repository.NewMemoryCatalog(map[string]model.GameMetadata{
			"zelda":  meta("zelda", "The Legend of Zelda", "Adventure", 1986, []string{"NES"}, []string{"Exploration", "Combat"}, 0.6, 0.2),
			"mario":  meta("mario", "Super Mario Bros.", "Platform", 1985, []string{"NES"}, []string{"Platform Jumping", "Collection"}, 0.3, 0.6),
			"tetris": meta("tetris", "Tetris", "Puzzle", 1989, []string{"Game Boy"}, []string{"Puzzle Solving", "Time Pressure"}, 0.2, 0.1),
		})
		resolver := blend.New(catalog, engine)

		Convey("When resolving fewer than two distinct ids", func() {
			_, err := resolver.Resolve(ctx, []string{"zelda"})
			So(err, ShouldEqual, blend.ErrInsufficientSelection)

			_, err = resolver.Resolve(ctx, []string{"zelda", "zelda", "zelda"})
			So(err, ShouldEqual, blend.ErrInsufficientSelection)

			_, err = resolver.Resolve(ctx, nil)
			So(err, ShouldEqual, blend.ErrInsufficientSelection)
		})

		Convey("When resolving with an unknown id", func() {
			_, err := resolver.Resolve(ctx, []string{"zelda", "sonic"})
			So(blend.IsUnknownGame(err), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "sonic")
		})

		Convey("When resolving a valid selection", func() {
			path, err := resolver.Resolve(ctx, []string{"zelda", "mario", "tetris"})
			So(err, ShouldBeNil)

			Convey("Then the games appear in input order with duplicates removed", func() {
				So(path.Games, ShouldResemble, []string{"zelda", "mario", "tetris"})
			})

			Convey("Then the total equals the sum of the tree's edge weights", func() {
				So(path.TotalCompatibility, ShouldBeGreaterThan, 0)
			})

			Convey("Then the findings slices are present even when empty", func() {
				So(path.Synergies, ShouldNotBeNil)
				So(path.Conflicts, ShouldNotBeNil)
			})
		})

		Convey("When resolving a pair", func() {
			path, err := resolver.Resolve(ctx, []string{"zelda", "mario"})
			So(err, ShouldBeNil)

			Convey("Then the total is exactly the pair's similarity", func() {
				a, _ := catalog.Get("zelda")
				b, _ := catalog.Get("mario")
				So(path.TotalCompatibility, ShouldAlmostEqual, engine.Score(a.Features, b.Features), 1e-9)
			})
		})
	})
}

func TestResolveSpanningTree(t *testing.T) {
	Convey("Given three games with known pairwise compatibilities", t, func() {
		ctx := context.Background()
		engine := similarity.New(similarity.WithWeights(similarity.Weights{Complexity: 1}))

		// Complexity-only weights pin the pair scores:
		//   a-b: 1-|0.90-1.00| = 0.90
		//   b-c: 1-|1.00-0.85| = 0.85
		//   a-c: 1-|0.90-0.10| = 0.20
		catalog := fixedCatalog{
			"a": {Game: model.Game{ID: "a", Name: "A"}, Features: model.FeatureVector{Complexity: 0.90}},
			"b": {Game: model.Game{ID: "b", Name: "B"}, Features: model.FeatureVector{Complexity: 1.00}},
			"c": {Game: model.Game{ID: "c", Name: "C"}, Features: model.FeatureVector{Complexity: 0.85}},
		}
		resolver := blend.New(catalog, engine)

		Convey("When resolving all three", func() {
			path, err := resolver.Resolve(ctx, []string{"a", "b", "c"})
			So(err, ShouldBeNil)

			Convey("Then the weak pair is dropped in favor of the hub", func() {
				// Tree keeps a-b (0.90) and b-c (0.85), never a-c (0.20).
				So(path.TotalCompatibility, ShouldAlmostEqual, 1.75, 1e-9)
			})
		})
	})
}

func TestResolveOptimality(t *testing.T) {
	Convey("Given selections small enough to enumerate every spanning tree", t, func() {
		ctx := context.Background()
		engine := similarity.New(similarity.WithWeights(similarity.Weights{Complexity: 1}))

		complexities := []float64{0.10, 0.35, 0.60, 0.95, 0.50}
		catalog := fixedCatalog{}
		ids := make([]string, len(complexities))
		for i, c := range complexities {
			id := string(rune('a' + i))
			ids[i] = id
			catalog[id] = model.GameMetadata{
				Game:     model.Game{ID: id, Name: id},
				Features: model.FeatureVector{Complexity: c},
			}
		}
		weight := func(i, j int) float64 {
			d := complexities[i] - complexities[j]
			if d < 0 {
				d = -d
			}
			return 1 - d
		}
		resolver := blend.New(catalog, engine)

		Convey("When comparing against brute-force enumeration", func() {
			for n := 3; n <= len(ids); n++ {
				path, err := resolver.Resolve(ctx, ids[:n])
				So(err, ShouldBeNil)
				So(path.TotalCompatibility, ShouldAlmostEqual, bestSpanningTotal(n, weight), 1e-9)
			}
		})
	})
}

// bestSpanningTotal enumerates every labeled spanning tree on n nodes via
// Prüfer sequences and returns the maximum total edge weight.
func bestSpanningTotal(n int, weight func(i, j int) float64) float64 {
	seq := make([]int, n-2)
	best := -1.0
	for {
		if total := pruferTotal(n, seq, weight); total > best {
			best = total
		}
		// Next sequence in base-n counting order.
		i := len(seq) - 1
		for ; i >= 0; i-- {
			seq[i]++
			if seq[i] < n {
				break
			}
			seq[i] = 0
		}
		if i < 0 {
			return best
		}
	}
}

// pruferTotal decodes one Prüfer sequence into its tree and sums the edge
// weights.
func pruferTotal(n int, seq []int, weight func(i, j int) float64) float64 {
	degree := make([]int, n)
	for i := range degree {
		degree[i] = 1
	}
	for _, s := range seq {
		degree[s]++
	}

	var total float64
	for _, s := range seq {
		for j := 0; j < n; j++ {
			if degree[j] == 1 {
				total += weight(j, s)
				degree[j]--
				degree[s]--
				break
			}
		}
	}

	u := -1
	for j := 0; j < n; j++ {
		if degree[j] == 1 {
			if u == -1 {
				u = j
			} else {
				total += weight(u, j)
			}
		}
	}
	return total
}

func TestEdge(t *testing.T) {
	Convey("Given a resolver over a catalog of two games", t, func() {
		ctx := context.Background()
		engine := similarity.New()

		catalog := repository.NewMemoryCatalog(map[string]model.GameMetadata{
			"zelda": meta("zelda", "The Legend of Zelda", "Adventure", 1986, []string{"NES"}, []string{"Exploration", "Combat"}, 0.6, 0.2),
			"mario": meta("mario", "Super Mario Bros.", "Platform", 1985, []string{"NES"}, []string{"Platform Jumping", "Collection"}, 0.3, 0.6),
		})
		resolver := blend.New(catalog, engine)

		Convey("When computing the edge for a known pair", func() {
			edge, err := resolver.Edge(ctx, "zelda", "mario")
			So(err, ShouldBeNil)

			Convey("Then the edge names both endpoints and carries the score", func() {
				So(edge.GameA, ShouldEqual, "zelda")
				So(edge.GameB, ShouldEqual, "mario")
				So(edge.Weight, ShouldBeGreaterThan, 0)
				So(edge.Weight, ShouldBeLessThanOrEqualTo, 1)
			})

			Convey("Then the shared platform produces a synergy", func() {
				types := make([]string, 0, len(edge.Synergies))
				for _, s := range edge.Synergies {
					types = append(types, s.Type)
				}
				So(types, ShouldContain, "Platform Match")
			})
		})

		Convey("When either id is unknown", func() {
			_, err := resolver.Edge(ctx, "zelda", "sonic")
			So(blend.IsUnknownGame(err), ShouldBeTrue)

			_, err = resolver.Edge(ctx, "sonic", "zelda")
			So(blend.IsUnknownGame(err), ShouldBeTrue)
		})
	})
}
