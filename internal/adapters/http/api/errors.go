package api

import (
	"errors"

	"github.com/okian/meld/internal/domain/blend"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
)

// translateStatus maps engine errors onto HTTP status codes: unknown ids
// become 404, validation failures 400, anything else 500.
func translateStatus(err error) (int, string) {
	switch {
	case blend.IsUnknownGame(err):
		return 404, "not_found"
	case errors.Is(err, blend.ErrInsufficientSelection):
		return 400, "insufficient_selection"
	default:
		return 500, "internal_error"
	}
}
