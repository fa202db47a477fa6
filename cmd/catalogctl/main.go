// Command catalogctl builds a catalog document from a raw game list. It
// derives feature vectors and metadata for every game, builds the
// compatibility graph, and writes the games back with their top pairings
// precomputed.
package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/goccy/go-json"

	"github.com/okian/meld/internal/adapters/repository"
	"github.com/okian/meld/internal/builder"
	"github.com/okian/meld/internal/domain/graph"
	"github.com/okian/meld/internal/domain/model"
	"github.com/okian/meld/internal/domain/similarity"
)

// Default configuration constants.
const (
	defaultTopK         = 10
	defaultPairingFloor = 0.7
	defaultEdgeFloor    = 0.1
	defaultBuildTimeout = 5 * time.Minute
)

func main() {
	var (
		inputFile    = flag.String("input", "games.json", "Raw game list to read")
		outputFile   = flag.String("output", "catalog.json", "Catalog document to write")
		topK         = flag.Int("top", defaultTopK, "Number of pairings to precompute per game")
		pairingFloor = flag.Float64("pairing-floor", defaultPairingFloor, "Minimum similarity for a precomputed pairing")
		edgeFloor    = flag.Float64("edge-floor", defaultEdgeFloor, "Minimum similarity for a graph edge")
		workers      = flag.Int("workers", runtime.NumCPU(), "Number of graph build workers")
	)
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), defaultBuildTimeout)
	defer cancel()

	games, err := readGames(*inputFile)
	if err != nil {
		os.Stderr.WriteString("failed to read games: " + err.Error() + "\n")
		os.Exit(1)
	}

	metas := builder.New().BuildAll(games)

	engine := similarity.New()
	g, err := graph.Build(ctx, metas, engine,
		graph.WithFloor(*edgeFloor),
		graph.WithWorkerCount(*workers),
	)
	if err != nil {
		os.Stderr.WriteString("failed to build graph: " + err.Error() + "\n")
		os.Exit(1)
	}

	builder.UpdateCommonPairings(metas, g, *topK, *pairingFloor)

	if err := repository.SaveFile(*outputFile, metas); err != nil {
		os.Stderr.WriteString("failed to write catalog: " + err.Error() + "\n")
		os.Exit(1)
	}

	os.Stdout.WriteString("wrote " + *outputFile + ": " +
		strconv.Itoa(len(metas)) + " games, " +
		strconv.Itoa(g.EdgeCount()) + " edges\n")
}

// readGames decodes a raw game list from path.
func readGames(path string) ([]model.Game, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var games []model.Game
	if err := json.NewDecoder(f).Decode(&games); err != nil {
		return nil, err
	}
	return games, nil
}
