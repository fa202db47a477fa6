// Package repository provides the read-only catalog store the engine
// queries. The catalog is produced offline by the metadata builder; at
// serving time it is an opaque, immutable data source.
package repository

import (
	"sort"

	"github.com/okian/meld/internal/domain/model"
	"github.com/okian/meld/pkg/metrics"
)

// Catalog provides read access to game metadata.
type Catalog interface {
	// Get returns the metadata for a game id.
	Get(id string) (model.GameMetadata, bool)

	// IDs returns all catalog ids in ascending order.
	IDs() []string

	// Count returns the number of games in the catalog.
	Count() int

	// All returns the full metadata set keyed by id. Callers must treat
	// the result as read-only.
	All() map[string]model.GameMetadata
}

// MemoryCatalog implements Catalog over an in-memory map. It is immutable
// after construction, so concurrent readers need no locking.
type MemoryCatalog struct {
	metas map[string]model.GameMetadata
	ids   []string
}

// NewMemoryCatalog builds a catalog from a metadata set. The input map is
// copied so later caller mutations cannot leak into the store.
func NewMemoryCatalog(metas map[string]model.GameMetadata) *MemoryCatalog {
	copied := make(map[string]model.GameMetadata, len(metas))
	ids := make([]string, 0, len(metas))
	for id, meta := range metas {
		copied[id] = meta
		ids = append(ids, id)
	}
	sort.Strings(ids)

	metrics.UpdateCatalogSize(len(ids))

	return &MemoryCatalog{metas: copied, ids: ids}
}

// Get returns the metadata for a game id.
func (c *MemoryCatalog) Get(id string) (model.GameMetadata, bool) {
	meta, ok := c.metas[id]
	return meta, ok
}

// IDs returns all catalog ids in ascending order.
func (c *MemoryCatalog) IDs() []string {
	out := make([]string, len(c.ids))
	copy(out, c.ids)
	return out
}

// Count returns the number of games in the catalog.
func (c *MemoryCatalog) Count() int {
	return len(c.ids)
}

// All returns the full metadata set keyed by id.
func (c *MemoryCatalog) All() map[string]model.GameMetadata {
	return c.metas
}
