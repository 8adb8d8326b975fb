package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"time"

	"github.com/pdrpinto/gridastar"
	"github.com/pdrpinto/gridastar/gridgen"
	"github.com/pdrpinto/gridastar/internal/config"
	"github.com/pdrpinto/gridastar/internal/logging"
	"github.com/pdrpinto/gridastar/render"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("loading config: %v", err)
	}
	log, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		logrus.Fatalf("configuring logger: %v", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if _, err := run(context.Background(), cfg, os.Stdout, log); err != nil {
		log.Fatal(err)
	}
}

// run builds one grid, searches cfg.SearchQueries random start/goal pairs on it and
// renders the first. It returns the batch results for inspection.
func run(ctx context.Context, cfg config.Config, out io.Writer, log logrus.FieldLogger) ([]gridastar.BatchResult, error) {
	rng := rand.New(rand.NewSource(cfg.Seed))
	grid, err := gridgen.Build(cfg.Rows, cfg.Columns, cfg.WallProbability, rand.NewSource(rng.Int63()))
	if err != nil {
		return nil, fmt.Errorf("building grid: %w", err)
	}

	queries := make([]gridastar.Query, 0, cfg.SearchQueries)
	for i := 0; i < cfg.SearchQueries; i++ {
		start, goal, err := gridgen.RandomEndpoints(grid, rng)
		if err != nil {
			return nil, fmt.Errorf("picking endpoints: %w", err)
		}
		queries = append(queries, gridastar.Query{Start: start, Goal: goal})
	}

	finder := gridastar.New(gridastar.WithLogger(log), gridastar.WithWorkers(cfg.SearchWorkers))
	results, err := finder.SearchBatch(ctx, grid, queries)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	first := results[0]
	fmt.Fprint(out, render.Renderer{Color: cfg.RenderColor}.Render(grid, first.Start, first.Goal, first.Path))
	for i, result := range results {
		entry := log.WithFields(logrus.Fields{"seed": cfg.Seed, "query": i, "start": result.Start, "goal": result.Goal})
		switch {
		case result.Err != nil:
			entry.WithError(result.Err).Error("search rejected")
		case !result.Found:
			entry.Warn("no path found")
		default:
			entry.WithFields(logrus.Fields{"steps": result.Cost, "expanded": result.Expanded}).Infof("path %v", []gridastar.Coordinate(result.Path))
		}
	}
	return results, nil
}
