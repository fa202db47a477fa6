package api

import (
	"net/http"
	"strconv"
	"strings"
)

const defaultNeighborLimit = 10

// NeighborsHandler handles ranked neighbor lookups.
type NeighborsHandler struct {
	deps     Dependencies
	maxLimit int
}

// NewNeighborsHandler creates a new neighbors handler. maxLimit caps the
// limit query parameter so a single request cannot ask for the whole graph.
func NewNeighborsHandler(deps Dependencies, maxLimit int) *NeighborsHandler {
	return &NeighborsHandler{deps: deps, maxLimit: maxLimit}
}

// HandleGetNeighbors handles GET /neighbors/{id}?limit=<n> requests.
func (h *NeighborsHandler) HandleGetNeighbors(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/neighbors/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusBadRequest, "missing_parameter", ErrBadRequest)
		return
	}

	limit := defaultNeighborLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			writeError(w, http.StatusBadRequest, "invalid_limit", ErrBadRequest)
			return
		}
		limit = parsed
	}
	if limit > h.maxLimit {
		limit = h.maxLimit
	}

	neighbors, err := h.deps.Neighbors(r.Context(), id, limit)
	if err != nil {
		status, code := translateStatus(err)
		writeError(w, status, code, err)
		return
	}

	writeJSON(w, http.StatusOK, neighbors)
}
