package repository

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"

	"github.com/okian/meld/internal/domain/model"
)

// catalogFileMode keeps catalog documents world-readable but not writable.
const catalogFileMode = 0o644

// LoadFile reads a catalog document (map of game id to metadata) from a
// JSON file produced by the offline builder.
func LoadFile(path string) (map[string]model.GameMetadata, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpenCatalog, path, err)
	}

	var metas map[string]model.GameMetadata
	if err := json.Unmarshal(data, &metas); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrDecodeCatalog, path, err)
	}
	return metas, nil
}

// SaveFile writes a catalog document to path as indented JSON.
func SaveFile(path string, metas map[string]model.GameMetadata) error {
	data, err := json.MarshalIndent(metas, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrEncodeCatalog, err)
	}
	if err := os.WriteFile(path, data, catalogFileMode); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrOpenCatalog, path, err)
	}
	return nil
}
