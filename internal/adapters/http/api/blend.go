package api

import (
	"net/http"

	"github.com/goccy/go-json"
)

// selectionRequest is the body shared by blend and recommendation calls.
type selectionRequest struct {
	IDs []string `json:"ids"`
}

// BlendHandler handles blend resolution requests.
type BlendHandler struct {
	deps Dependencies
}

// NewBlendHandler creates a new blend handler.
func NewBlendHandler(deps Dependencies) *BlendHandler {
	return &BlendHandler{deps: deps}
}

// HandlePostBlend handles POST /blend requests. The body carries the
// selected game ids; the response is the full blend summary.
func (h *BlendHandler) HandlePostBlend(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}

	var req selectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", ErrBadRequest)
		return
	}

	summary, err := h.deps.Blend(r.Context(), req.IDs)
	if err != nil {
		status, code := translateStatus(err)
		writeError(w, status, code, err)
		return
	}

	writeJSON(w, http.StatusOK, summary)
}
