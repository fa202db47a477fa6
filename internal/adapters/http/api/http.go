// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/okian/meld/internal/domain/graph"
	"github.com/okian/meld/internal/domain/model"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	// Similarity returns the compatibility score for a pair of ids.
	Similarity(ctx context.Context, idA, idB string) (float64, error)

	// Edge returns the annotated compatibility edge for a pair of ids.
	Edge(ctx context.Context, idA, idB string) (model.CompatibilityEdge, error)

	// Neighbors returns up to k ranked neighbors of id.
	Neighbors(ctx context.Context, id string, k int) ([]graph.Neighbor, error)

	// Blend resolves a selection into a full blend summary.
	Blend(ctx context.Context, ids []string) (model.BlendSummary, error)

	// RecommendFeatures derives feature suggestions for a selection.
	RecommendFeatures(ctx context.Context, ids []string) ([]string, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler    *HealthHandler
	statsHandler     *StatsHandler
	edgeHandler      *EdgeHandler
	neighborsHandler *NeighborsHandler
	blendHandler     *BlendHandler
	recommendHandler *RecommendHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxNeighborsLimit int) *Server {
	return &Server{
		healthHandler:    NewHealthHandler(),
		statsHandler:     NewStatsHandler(statsProvider),
		edgeHandler:      NewEdgeHandler(deps),
		neighborsHandler: NewNeighborsHandler(deps, maxNeighborsLimit),
		blendHandler:     NewBlendHandler(deps),
		recommendHandler: NewRecommendHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/similarity", MetricsMiddleware(s.edgeHandler.HandleGetSimilarity, "similarity"))
	mux.HandleFunc("/compatibility", MetricsMiddleware(s.edgeHandler.HandleGetEdge, "compatibility"))
	mux.HandleFunc("/neighbors/", MetricsMiddleware(s.neighborsHandler.HandleGetNeighbors, "neighbors"))
	mux.HandleFunc("/blend", MetricsMiddleware(s.blendHandler.HandlePostBlend, "blend"))
	mux.HandleFunc("/recommendations", MetricsMiddleware(s.recommendHandler.HandlePostRecommendations, "recommendations"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}
