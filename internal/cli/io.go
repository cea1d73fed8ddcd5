package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/methylsight/bicover/pkg/biclique"
	"github.com/methylsight/bicover/pkg/bigraph"
	"github.com/methylsight/bicover/pkg/cache"
	"github.com/methylsight/bicover/pkg/config"
	"github.com/methylsight/bicover/pkg/store"
)

// Cover token formats accepted by --format.
const (
	formatNumber   = "number"
	formatGeneName = "gene-name"
)

// loadGraph reads a graph JSON file and applies an optional timepoint
// override.
func loadGraph(path, timepoint string) (*bigraph.Graph, error) {
	g, err := store.ImportGraph(path)
	if err != nil {
		return nil, err
	}
	if timepoint != "" {
		g.SetTimepoint(timepoint)
	}
	return g, nil
}

// loadCover reads a biclique cover file using the resolver implied by
// format: "number" treats every token as a node ID, "gene-name" resolves
// non-numeric tokens against the graph's gene labels.
func loadCover(path, format string, g *bigraph.Graph, cfg config.Config) ([]biclique.Biclique, error) {
	var res biclique.Resolver
	switch format {
	case formatNumber, "":
		res = biclique.NumberResolver{IDs: cfg.IDs}
	case formatGeneName:
		res = biclique.NameResolver{Labels: biclique.GeneLabels(g)}
	default:
		return nil, fmt.Errorf("invalid format: %q (must be one of: number, gene-name)", format)
	}
	return biclique.ImportCover(path, res)
}

// openCache builds the configured cache backend.
func openCache(ctx context.Context, cfg config.Config) (cache.Cache, error) {
	switch cfg.Cache.Backend {
	case config.CacheBackendRedis:
		return cache.NewRedisCache(ctx, cfg.Cache.Redis)
	case config.CacheBackendNone:
		return cache.NewNullCache(), nil
	default:
		return cache.NewFileCache(cfg.Cache.Dir)
	}
}

// writeJSON marshals v to path, or to stdout when path is empty.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	data = append(data, '\n')
	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
