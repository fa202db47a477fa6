// Package blend resolves the highest-value way to connect a user-selected
// subset of the catalog and annotates the result with structured synergy and
// conflict findings.
//
// The resolver computes a maximum-weight spanning tree over the selection:
// every selected game is represented in at least one annotated pair while
// redundant low-value pairings are never surfaced. The tree is found by
// running Prim's algorithm over negated weights on an integer-indexed
// adjacency matrix sized to the selection; no general graph library is
// involved.
package blend

import (
	"context"

	"github.com/okian/meld/internal/domain/graph"
	"github.com/okian/meld/internal/domain/model"
	"github.com/okian/meld/internal/domain/similarity"
)

// Catalog is the read-only metadata source the resolver draws from.
type Catalog interface {
	Get(id string) (model.GameMetadata, bool)
}

// Option applies a configuration option to the Resolver.
type Option func(*Resolver)

// WithGraph supplies a prebuilt compatibility graph. Pair weights found in
// the graph are reused; pairs below the graph's floor fall back to a direct
// similarity computation so the subgraph stays complete.
func WithGraph(g *graph.Graph) Option {
	return func(r *Resolver) {
		r.graph = g
	}
}

// Resolver connects selections of catalog games by maximum compatibility.
type Resolver struct {
	catalog Catalog
	engine  *similarity.Engine
	graph   *graph.Graph
}

// New creates a Resolver with configuration options.
func New(catalog Catalog, engine *similarity.Engine, opts ...Option) *Resolver {
	r := &Resolver{
		catalog: catalog,
		engine:  engine,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// TreeEdge is one resolved edge of the spanning tree, in the order the
// algorithm selected it.
type TreeEdge struct {
	A, B   string
	Weight float64
}

// Resolve computes the maximum-compatibility spanning tree connecting the
// selected games and aggregates per-edge annotations in tree order.
//
// Fewer than two distinct ids fail with ErrInsufficientSelection; an id
// absent from the catalog fails with UnknownGameError.
func (r *Resolver) Resolve(ctx context.Context, ids []string) (model.BlendPath, error) {
	selected, metas, err := r.lookup(ids)
	if err != nil {
		return model.BlendPath{}, err
	}

	edges := r.spanningTree(selected, metas)

	path := model.BlendPath{
		Games:     selected,
		Synergies: []model.Synergy{},
		Conflicts: []model.Conflict{},
	}
	for _, e := range edges {
		path.TotalCompatibility += e.Weight
		a, _ := r.catalog.Get(e.A)
		b, _ := r.catalog.Get(e.B)
		synergies, conflicts := Annotate(a, b)
		path.Synergies = append(path.Synergies, synergies...)
		path.Conflicts = append(path.Conflicts, conflicts...)
	}

	return path, nil
}

// Edge computes the full compatibility edge for one specific pair.
func (r *Resolver) Edge(ctx context.Context, idA, idB string) (model.CompatibilityEdge, error) {
	a, ok := r.catalog.Get(idA)
	if !ok {
		return model.CompatibilityEdge{}, UnknownGameError{ID: idA}
	}
	b, ok := r.catalog.Get(idB)
	if !ok {
		return model.CompatibilityEdge{}, UnknownGameError{ID: idB}
	}

	synergies, conflicts := Annotate(a, b)
	return model.CompatibilityEdge{
		GameA:     idA,
		GameB:     idB,
		Weight:    r.engine.Score(a.Features, b.Features),
		Synergies: synergies,
		Conflicts: conflicts,
	}, nil
}

// lookup validates the selection: distinct ids in input order, all present
// in the catalog, at least two of them.
func (r *Resolver) lookup(ids []string) ([]string, []model.GameMetadata, error) {
	seen := make(map[string]struct{}, len(ids))
	selected := make([]string, 0, len(ids))
	metas := make([]model.GameMetadata, 0, len(ids))

	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		meta, ok := r.catalog.Get(id)
		if !ok {
			return nil, nil, UnknownGameError{ID: id}
		}
		selected = append(selected, id)
		metas = append(metas, meta)
	}

	if len(selected) < 2 {
		return nil, nil, ErrInsufficientSelection
	}
	return selected, metas, nil
}

// pairWeight prefers the prebuilt graph; pairs it dropped below the floor
// are recomputed so the induced subgraph stays complete.
func (r *Resolver) pairWeight(idA, idB string, a, b model.GameMetadata) float64 {
	if r.graph != nil {
		if w, ok := r.graph.Weight(idA, idB); ok {
			return w
		}
	}
	return r.engine.Score(a.Features, b.Features)
}

// spanningTree runs Prim's algorithm over the negated weight matrix: the
// minimum spanning tree of the negated complete subgraph is the maximum
// compatibility tree of the original. Ties are broken by the lower node
// index so identical inputs always produce identical trees.
func (r *Resolver) spanningTree(selected []string, metas []model.GameMetadata) []TreeEdge {
	n := len(selected)

	// Dense negated weight matrix over the selection; selections are small,
	// so n² floats are cheap.
	negated := make([][]float64, n)
	for i := range negated {
		negated[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			w := -r.pairWeight(selected[i], selected[j], metas[i], metas[j])
			negated[i][j] = w
			negated[j][i] = w
		}
	}

	const unreached = 1e18

	inTree := make([]bool, n)
	key := make([]float64, n)
	parent := make([]int, n)
	for i := range key {
		key[i] = unreached
		parent[i] = -1
	}
	key[0] = 0

	edges := make([]TreeEdge, 0, n-1)
	for range selected {
		// Next vertex: smallest negated key, lowest index on ties.
		next := -1
		for v := 0; v < n; v++ {
			if !inTree[v] && (next == -1 || key[v] < key[next]) {
				next = v
			}
		}
		inTree[next] = true

		if parent[next] >= 0 {
			edges = append(edges, TreeEdge{
				A:      selected[parent[next]],
				B:      selected[next],
				Weight: -negated[parent[next]][next],
			})
		}

		for v := 0; v < n; v++ {
			if !inTree[v] && negated[next][v] < key[v] {
				key[v] = negated[next][v]
				parent[v] = next
			}
		}
	}

	return edges
}
