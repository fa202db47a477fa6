// Package graph builds the weighted compatibility graph over a full catalog
// and serves top-K neighbor queries from the precomputed adjacency rows.
//
// The build is the only expensive step in the engine: O(N²) pairwise
// similarity evaluations over immutable inputs. The pair index space is
// partitioned across workers; a single merger drains worker outputs into the
// adjacency structure, so no locks are needed on the hot path.
package graph

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/okian/meld/internal/domain/model"
	"github.com/okian/meld/internal/domain/similarity"
	"github.com/okian/meld/pkg/metrics"
)

// Neighbor is one entry in an item's ranked adjacency row.
type Neighbor struct {
	ID     string  `json:"id"`
	Weight float64 `json:"weight"`
}

// Graph is a sparse weighted undirected graph over a catalog. It is built
// once and read-only afterwards.
type Graph struct {
	ids       []string
	index     map[string]int
	adjacency [][]Neighbor
	edgeCount int
	floor     float64
}

// pairBatch is one worker's output: all kept pairs for a single row i,
// against every j > i.
type pairBatch struct {
	row   int
	pairs []rowPair
}

type rowPair struct {
	col    int
	weight float64
}

// Build computes the full compatibility graph for the given catalog. An
// empty or single-item catalog yields a graph with no edges, not an error.
func Build(ctx context.Context, items map[string]model.GameMetadata, engine *similarity.Engine, opts ...Option) (*Graph, error) {
	cfg := newBuildConfig(opts...)

	// Sorted id order keeps the build and every query deterministic.
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	g := &Graph{
		ids:       ids,
		index:     make(map[string]int, len(ids)),
		adjacency: make([][]Neighbor, len(ids)),
		floor:     cfg.floor,
	}
	for i, id := range ids {
		g.index[id] = i
	}
	if len(ids) < 2 {
		return g, nil
	}

	features := make([]model.FeatureVector, len(ids))
	for i, id := range ids {
		features[i] = items[id].Features
	}

	workers := cfg.workers
	if workers > len(ids) {
		workers = len(ids)
	}
	metrics.UpdateBuildWorkers(workers)
	start := time.Now()

	rows := make(chan int)
	batches := make(chan pairBatch, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range rows {
				batch := pairBatch{row: i}
				for j := i + 1; j < len(ids); j++ {
					weight := engine.Score(features[i], features[j])
					if weight > cfg.floor {
						batch.pairs = append(batch.pairs, rowPair{col: j, weight: weight})
					}
				}
				batches <- batch
			}
		}()
	}

	// Feed rows, honoring cancellation between units of work.
	feedErr := make(chan error, 1)
	go func() {
		defer close(rows)
		for i := 0; i < len(ids); i++ {
			select {
			case <-ctx.Done():
				feedErr <- fmt.Errorf("graph build canceled: %w", ctx.Err())
				return
			case rows <- i:
			}
		}
		feedErr <- nil
	}()

	go func() {
		wg.Wait()
		close(batches)
	}()

	// Single merger: disjoint rows arrive from many workers but only this
	// loop writes the adjacency structure.
	pairs := 0
	for batch := range batches {
		for _, p := range batch.pairs {
			g.adjacency[batch.row] = append(g.adjacency[batch.row], Neighbor{ID: ids[p.col], Weight: p.weight})
			g.adjacency[p.col] = append(g.adjacency[p.col], Neighbor{ID: ids[batch.row], Weight: p.weight})
			g.edgeCount++
		}
		pairs += len(ids) - batch.row - 1
	}
	if err := <-feedErr; err != nil {
		return nil, err
	}

	for i := range g.adjacency {
		sortNeighbors(g.adjacency[i])
	}

	metrics.AddPairsEvaluated(pairs)
	metrics.UpdateEdgesKept(g.edgeCount)
	metrics.RecordGraphBuild(float64(time.Since(start).Milliseconds()))

	return g, nil
}

// sortNeighbors orders a row by descending weight, ties broken by ascending
// id for determinism.
func sortNeighbors(row []Neighbor) {
	sort.Slice(row, func(a, b int) bool {
		if row[a].Weight != row[b].Weight {
			return row[a].Weight > row[b].Weight
		}
		return row[a].ID < row[b].ID
	})
}

// Len returns the number of nodes in the graph.
func (g *Graph) Len() int { return len(g.ids) }

// EdgeCount returns the number of edges above the similarity floor.
func (g *Graph) EdgeCount() int { return g.edgeCount }

// Floor returns the similarity floor the graph was built with.
func (g *Graph) Floor() float64 { return g.floor }

// Contains reports whether the graph has a node for the given id.
func (g *Graph) Contains(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Neighbors returns up to k neighbors of id ordered by descending weight,
// never including id itself. The second return is false for unknown ids.
func (g *Graph) Neighbors(id string, k int) ([]Neighbor, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	row := g.adjacency[i]
	if k < 0 || k > len(row) {
		k = len(row)
	}
	out := make([]Neighbor, k)
	copy(out, row[:k])
	return out, true
}

// Weight returns the edge weight between two ids. The second return is
// false when either id is unknown or the pair fell below the floor.
func (g *Graph) Weight(idA, idB string) (float64, bool) {
	i, ok := g.index[idA]
	if !ok {
		return 0, false
	}
	if _, ok := g.index[idB]; !ok {
		return 0, false
	}
	for _, n := range g.adjacency[i] {
		if n.ID == idB {
			return n.Weight, true
		}
	}
	return 0, false
}
