package api

import (
	"net/http"
)

// EdgeHandler handles pairwise compatibility requests.
type EdgeHandler struct {
	deps Dependencies
}

// NewEdgeHandler creates a new edge handler.
func NewEdgeHandler(deps Dependencies) *EdgeHandler {
	return &EdgeHandler{deps: deps}
}

// HandleGetEdge handles GET /compatibility?a=<id>&b=<id> requests and
// returns the annotated edge for the pair.
func (h *EdgeHandler) HandleGetEdge(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	idA := r.URL.Query().Get("a")
	idB := r.URL.Query().Get("b")
	if idA == "" || idB == "" {
		writeError(w, http.StatusBadRequest, "missing_parameter", ErrBadRequest)
		return
	}

	edge, err := h.deps.Edge(r.Context(), idA, idB)
	if err != nil {
		status, code := translateStatus(err)
		writeError(w, status, code, err)
		return
	}

	writeJSON(w, http.StatusOK, edge)
}

// similarityResponse carries the bare score for a pair.
type similarityResponse struct {
	GameA  string  `json:"game_a"`
	GameB  string  `json:"game_b"`
	Weight float64 `json:"weight"`
}

// HandleGetSimilarity handles GET /similarity?a=<id>&b=<id> requests and
// returns the bare score without annotations.
func (h *EdgeHandler) HandleGetSimilarity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	idA := r.URL.Query().Get("a")
	idB := r.URL.Query().Get("b")
	if idA == "" || idB == "" {
		writeError(w, http.StatusBadRequest, "missing_parameter", ErrBadRequest)
		return
	}

	weight, err := h.deps.Similarity(r.Context(), idA, idB)
	if err != nil {
		status, code := translateStatus(err)
		writeError(w, status, code, err)
		return
	}

	writeJSON(w, http.StatusOK, similarityResponse{GameA: idA, GameB: idB, Weight: weight})
}
