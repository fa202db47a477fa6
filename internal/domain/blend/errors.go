package blend

import (
	"errors"
	"fmt"
)

// ErrInsufficientSelection reports a blend request with fewer than two games.
var ErrInsufficientSelection = errors.New("at least two games are required to blend")

// UnknownGameError reports a selected id that is absent from the catalog.
type UnknownGameError struct {
	ID string
}

func (e UnknownGameError) Error() string {
	return fmt.Sprintf("game %q not found in catalog", e.ID)
}

// IsUnknownGame reports whether err wraps an UnknownGameError.
func IsUnknownGame(err error) bool {
	var unknown UnknownGameError
	return errors.As(err, &unknown)
}
