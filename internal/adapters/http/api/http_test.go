package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/okian/meld/internal/adapters/http/api"
	"github.com/okian/meld/internal/domain/blend"
	"github.com/okian/meld/internal/domain/graph"
	"github.com/okian/meld/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

// Mock implementations for testing
type mockDependencies struct {
	similarity    float64
	similarityErr error
	edge          model.CompatibilityEdge
	edgeErr       error
	neighbors     []graph.Neighbor
	neighborsErr  error
	neighborsK    int
	summary       model.BlendSummary
	blendErr      error
	features      []string
	featuresErr   error
}

func (m *mockDependencies) Similarity(ctx context.Context, idA, idB string) (float64, error) {
	return m.similarity, m.similarityErr
}

func (m *mockDependencies) Edge(ctx context.Context, idA, idB string) (model.CompatibilityEdge, error) {
	if m.edgeErr != nil {
		return model.CompatibilityEdge{}, m.edgeErr
	}
	return m.edge, nil
}

func (m *mockDependencies) Neighbors(ctx context.Context, id string, k int) ([]graph.Neighbor, error) {
	m.neighborsK = k
	if m.neighborsErr != nil {
		return nil, m.neighborsErr
	}
	return m.neighbors, nil
}

func (m *mockDependencies) Blend(ctx context.Context, ids []string) (model.BlendSummary, error) {
	if m.blendErr != nil {
		return model.BlendSummary{}, m.blendErr
	}
	return m.summary, nil
}

func (m *mockDependencies) RecommendFeatures(ctx context.Context, ids []string) ([]string, error) {
	if m.featuresErr != nil {
		return nil, m.featuresErr
	}
	return m.features, nil
}

type mockStatsProvider struct {
	stats map[string]interface{}
}

func (m *mockStatsProvider) GetStats() map[string]interface{} {
	return m.stats
}

func newTestMux(deps *mockDependencies, stats map[string]interface{}) *http.ServeMux {
	server := api.NewServer(deps, &mockStatsProvider{stats: stats}, 100)
	mux := http.NewServeMux()
	server.Register(context.Background(), mux)
	return mux
}

func TestStatsEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux(&mockDependencies{}, map[string]interface{}{"catalog_size": 42})

		Convey("When requesting the stats", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/stats", nil))

			Convey("Then the provider's stats are returned as JSON", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body map[string]interface{}
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["catalog_size"], ShouldEqual, 42.0)
			})
		})
	})
}

func TestSimilarityEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDependencies{similarity: 0.42}
		mux := newTestMux(deps, nil)

		Convey("When requesting the score for a known pair", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/similarity?a=zelda&b=mario", nil))

			Convey("Then the bare score is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body map[string]interface{}
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["game_a"], ShouldEqual, "zelda")
				So(body["weight"], ShouldEqual, 0.42)
			})
		})

		Convey("When a query parameter is missing", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/similarity?b=mario", nil))

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the pair references an unknown game", func() {
			deps.similarityErr = blend.UnknownGameError{ID: "sonic"}

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/similarity?a=zelda&b=sonic", nil))

			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestCompatibilityEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDependencies{
			edge: model.CompatibilityEdge{
				GameA:  "zelda",
				GameB:  "mario",
				Weight: 0.42,
				Synergies: []model.Synergy{
					{Type: "Platform Match", Description: "Both released on: NES", Strength: 0.5},
				},
				Conflicts: []model.Conflict{},
			},
		}
		mux := newTestMux(deps, nil)

		Convey("When requesting a known pair", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/compatibility?a=zelda&b=mario", nil))

			Convey("Then the annotated edge is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var edge model.CompatibilityEdge
				So(json.Unmarshal(rec.Body.Bytes(), &edge), ShouldBeNil)
				So(edge.GameA, ShouldEqual, "zelda")
				So(edge.Weight, ShouldEqual, 0.42)
				So(edge.Synergies, ShouldHaveLength, 1)
			})
		})

		Convey("When a query parameter is missing", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/compatibility?a=zelda", nil))

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the pair references an unknown game", func() {
			deps.edgeErr = blend.UnknownGameError{ID: "sonic"}

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/compatibility?a=zelda&b=sonic", nil))

			Convey("Then the error maps to 404", func() {
				So(rec.Code, ShouldEqual, http.StatusNotFound)
				var body map[string]string
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["code"], ShouldEqual, "not_found")
			})
		})

		Convey("When using the wrong method", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/compatibility?a=zelda&b=mario", nil))

			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestNeighborsEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDependencies{
			neighbors: []graph.Neighbor{
				{ID: "mario", Weight: 0.9},
				{ID: "tetris", Weight: 0.4},
			},
		}
		mux := newTestMux(deps, nil)

		Convey("When requesting neighbors of a known id", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/neighbors/zelda", nil))

			Convey("Then the ranked neighbors are returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var neighbors []graph.Neighbor
				So(json.Unmarshal(rec.Body.Bytes(), &neighbors), ShouldBeNil)
				So(neighbors, ShouldHaveLength, 2)
				So(neighbors[0].ID, ShouldEqual, "mario")
			})

			Convey("And the default limit is applied", func() {
				So(deps.neighborsK, ShouldEqual, 10)
			})
		})

		Convey("When passing an explicit limit", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/neighbors/zelda?limit=3", nil))

			So(rec.Code, ShouldEqual, http.StatusOK)
			So(deps.neighborsK, ShouldEqual, 3)
		})

		Convey("When the limit exceeds the configured cap", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/neighbors/zelda?limit=5000", nil))

			Convey("Then the cap wins", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(deps.neighborsK, ShouldEqual, 100)
			})
		})

		Convey("When the limit is not a positive integer", func() {
			for _, raw := range []string{"abc", "0", "-5"} {
				rec := httptest.NewRecorder()
				mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/neighbors/zelda?limit="+raw, nil))
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
			}
		})

		Convey("When the path carries no id", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/neighbors/", nil))

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the id is unknown", func() {
			deps.neighborsErr = blend.UnknownGameError{ID: "sonic"}

			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/neighbors/sonic", nil))

			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestBlendEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDependencies{
			summary: model.BlendSummary{
				Name: "The Legend of Zelda × Super Mario Bros.",
				Path: model.BlendPath{
					Games:              []string{"zelda", "mario"},
					TotalCompatibility: 0.42,
					Synergies:          []model.Synergy{},
					Conflicts:          []model.Conflict{},
				},
			},
		}
		mux := newTestMux(deps, nil)

		Convey("When posting a valid selection", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/blend", strings.NewReader(`{"ids":["zelda","mario"]}`))
			mux.ServeHTTP(rec, req)

			Convey("Then the blend summary is returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var summary model.BlendSummary
				So(json.Unmarshal(rec.Body.Bytes(), &summary), ShouldBeNil)
				So(summary.Name, ShouldEqual, "The Legend of Zelda × Super Mario Bros.")
				So(summary.Path.Games, ShouldResemble, []string{"zelda", "mario"})
			})
		})

		Convey("When the body is not valid JSON", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/blend", strings.NewReader(`{ids:`))
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})

		Convey("When the selection is too small", func() {
			deps.blendErr = blend.ErrInsufficientSelection

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/blend", strings.NewReader(`{"ids":["zelda"]}`))
			mux.ServeHTTP(rec, req)

			Convey("Then the error maps to 400", func() {
				So(rec.Code, ShouldEqual, http.StatusBadRequest)
				var body map[string]string
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["code"], ShouldEqual, "insufficient_selection")
			})
		})

		Convey("When the selection names an unknown game", func() {
			deps.blendErr = blend.UnknownGameError{ID: "sonic"}

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/blend", strings.NewReader(`{"ids":["zelda","sonic"]}`))
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("When using the wrong method", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/blend", nil))

			So(rec.Code, ShouldEqual, http.StatusNotFound)
		})
	})
}

func TestRecommendationsEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		deps := &mockDependencies{
			features: []string{"Skill trees or ability unlocks"},
		}
		mux := newTestMux(deps, nil)

		Convey("When posting a valid selection", func() {
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(`{"ids":["zelda","contra"]}`))
			mux.ServeHTTP(rec, req)

			Convey("Then the recommended features are returned", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				var body map[string][]string
				So(json.Unmarshal(rec.Body.Bytes(), &body), ShouldBeNil)
				So(body["recommended_features"], ShouldResemble, []string{"Skill trees or ability unlocks"})
			})
		})

		Convey("When the selection is too small", func() {
			deps.featuresErr = blend.ErrInsufficientSelection

			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/recommendations", strings.NewReader(`{"ids":["zelda"]}`))
			mux.ServeHTTP(rec, req)

			So(rec.Code, ShouldEqual, http.StatusBadRequest)
		})
	})
}

func TestHealthEndpoint(t *testing.T) {
	Convey("Given a registered API server", t, func() {
		mux := newTestMux(&mockDependencies{}, nil)

		Convey("When requesting the health endpoint", func() {
			rec := httptest.NewRecorder()
			mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

			Convey("Then a scrapeable metrics payload is served", func() {
				So(rec.Code, ShouldEqual, http.StatusOK)
				So(rec.Body.String(), ShouldContainSubstring, "meld_blend")
			})
		})
	})
}
