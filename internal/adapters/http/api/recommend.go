package api

import (
	"net/http"

	"github.com/goccy/go-json"
)

// RecommendHandler handles feature recommendation requests.
type RecommendHandler struct {
	deps Dependencies
}

// NewRecommendHandler creates a new recommendation handler.
func NewRecommendHandler(deps Dependencies) *RecommendHandler {
	return &RecommendHandler{deps: deps}
}

// HandlePostRecommendations handles POST /recommendations requests.
func (h *RecommendHandler) HandlePostRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", ErrBadRequest)
		return
	}

	features, err := h.deps.RecommendFeatures(r.Context(), req.IDs)
	if err != nil {
		status, code := translateStatus(err)
		writeError(w, status, code, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string][]string{"recommended_features": features})
}
