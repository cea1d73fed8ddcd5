package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/methylsight/bicover/pkg/biclique"
	"github.com/methylsight/bicover/pkg/bigraph"
	"github.com/methylsight/bicover/pkg/cache"
	"github.com/methylsight/bicover/pkg/components"
	"github.com/methylsight/bicover/pkg/dominate"
	"github.com/methylsight/bicover/pkg/observability"
	"github.com/methylsight/bicover/pkg/reconcile"
	"github.com/methylsight/bicover/pkg/stats"
)

// Runner executes the analysis pipeline with dominating-set caching.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store run results. Multiple goroutines can safely use the same Runner
// with different options.
type Runner struct {
	Cache  cache.Cache
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching; a nil
// logger falls back to log.Default.
func NewRunner(c cache.Cache, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Logger: logger}
}

// Execute runs the complete validate → build → reconcile → dominate →
// components → aggregate pipeline. The input graph is mutated by
// validation (isolated genes are removed).
func (r *Runner) Execute(ctx context.Context, g *bigraph.Graph, cover []biclique.Biclique, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	hooks := observability.Analysis()

	result := &Result{}

	// Stage 1: Validate
	start := time.Now()
	hooks.OnStageStart(ctx, "validate", g.NodeCount())
	vr, err := g.Validate()
	hooks.OnStageComplete(ctx, "validate", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	result.Validation = vr
	result.Stats.ValidateTime = time.Since(start)
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.EdgeCount()
	result.GraphHash = cache.GraphKey(g)

	opts.Logger.Info("validated graph",
		"dmrs", vr.DMRCount,
		"genes", vr.GeneCount,
		"edges", vr.EdgeCount,
		"isolated_genes_removed", vr.RemovedIsolatedGenes)

	// Stage 2: Build biclique graph
	start = time.Now()
	hooks.OnStageStart(ctx, "build", g.NodeCount())
	bg := biclique.BuildGraph(g, cover)
	hooks.OnStageComplete(ctx, "build", time.Since(start), nil)
	result.BicliqueGraph = bg
	result.Stats.BuildTime = time.Since(start)

	opts.Logger.Info("built biclique graph",
		"bicliques", len(cover),
		"edges", bg.EdgeCount(),
		"duration", result.Stats.BuildTime)

	// Stage 3: Reconcile edges
	start = time.Now()
	hooks.OnStageStart(ctx, "reconcile", g.NodeCount())
	rec, err := reconcile.Classify(g, bg, cover, reconcile.Options{PerBiclique: opts.PerBiclique})
	if err == nil {
		err = rec.Validate(g, bg)
	}
	hooks.OnStageComplete(ctx, "reconcile", time.Since(start), err)
	if err != nil {
		return nil, fmt.Errorf("reconcile: %w", err)
	}
	result.Reconciliation = rec
	result.Stats.ReconcileTime = time.Since(start)

	opts.Logger.Info("reconciled edges",
		"permanent", len(rec.PermanentEdges),
		"false_positives", len(rec.FalsePositiveEdges),
		"false_negatives", len(rec.FalseNegativeEdges),
		"duration", result.Stats.ReconcileTime)

	// Stage 4: Dominating set (cached; optional)
	var ds *dominate.Set
	if !opts.SkipDominate {
		start = time.Now()
		hooks.OnStageStart(ctx, "dominate", g.NodeCount())
		var hit bool
		ds, hit, err = r.DominateWithCacheInfo(ctx, g, opts)
		hooks.OnStageComplete(ctx, "dominate", time.Since(start), err)
		if err != nil {
			return nil, fmt.Errorf("dominate: %w", err)
		}
		result.Stats.DominateTime = time.Since(start)
		result.CacheInfo.DominateHit = hit

		if opts.Optimize {
			ds, result.DroppedMembers = components.Optimize(g, cover, ds)
		}
		result.DominatingSet = ds

		opts.Logger.Info("computed dominating set",
			"size", ds.Size(),
			"dominated_genes", len(ds.DominatedGenes),
			"cache_hit", hit,
			"duration", result.Stats.DominateTime)
	}

	// Stage 5: Component analysis
	start = time.Now()
	hooks.OnStageStart(ctx, "components", g.NodeCount())
	comp := components.Analyze(opts.Thresholds, g, bg, cover, ds)
	hooks.OnStageComplete(ctx, "components", time.Since(start), nil)
	result.Components = comp
	result.Stats.ComponentTime = time.Since(start)

	opts.Logger.Info("analyzed components",
		"connected", len(comp.Original.Connected.Components),
		"biconnected", len(comp.Original.Biconnected.Components),
		"triconnected", len(comp.Original.Triconnected.Components),
		"duration", result.Stats.ComponentTime)

	// Stage 6: Aggregate
	start = time.Now()
	hooks.OnStageStart(ctx, "aggregate", g.NodeCount())
	result.Report = stats.Aggregate(opts.Thresholds, g, cover, comp, rec, ds)
	hooks.OnStageComplete(ctx, "aggregate", time.Since(start), nil)
	result.Stats.AggregateTime = time.Since(start)

	return result, nil
}

// DominateWithCacheInfo computes the dominating set, consulting the
// cache first unless opts.Refresh is set, and reports whether the
// result came from cache.
//
// The cache key is a content hash over the graph's nodes and edges
// combined with the weighting scheme, so graphs differing in any edge,
// or runs under a different scheme, never share an entry.
func (r *Runner) DominateWithCacheInfo(ctx context.Context, g *bigraph.Graph, opts Options) (*dominate.Set, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, false, err
	}
	hooks := observability.Cache()

	key := cache.GraphKey(g) + ":" + opts.Weights

	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached dominate.Set
			if err := json.Unmarshal(data, &cached); err == nil {
				cached.Restore()
				hooks.OnCacheHit(ctx, "domset")
				return &cached, true, nil
			}
			// Corrupt entry: fall through and recompute.
		}
		hooks.OnCacheMiss(ctx, "domset")
	}

	ds := dominate.Compute(g, opts.weightsFor(g))

	if data, err := json.Marshal(ds); err == nil {
		if err := r.Cache.Set(ctx, key, data, cache.DefaultTTL); err == nil {
			hooks.OnCacheSet(ctx, "domset", len(data))
		}
	}

	return ds, false, nil
}

// Dominate is a convenience wrapper that discards the cache hit info.
func (r *Runner) Dominate(ctx context.Context, g *bigraph.Graph, opts Options) (*dominate.Set, error) {
	ds, _, err := r.DominateWithCacheInfo(ctx, g, opts)
	return ds, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
