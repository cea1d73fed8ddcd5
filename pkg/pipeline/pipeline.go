// Package pipeline runs the complete bicover analysis over a bipartite
// graph and its biclique cover.
//
// The pipeline consists of six stages:
//
//  1. Validate: check bipartite structure, drop isolated genes
//  2. Build: reconstruct the biclique edge set as a graph
//  3. Reconcile: label edges permanent / false positive / false negative
//  4. Dominate: compute a weighted red-blue dominating set (cached)
//  5. Components: connectivity partitions and per-component classification
//  6. Aggregate: merge everything into a single report
//
// Each stage can be run independently or as part of the complete
// pipeline. Create a Runner and execute:
//
//	runner := pipeline.NewRunner(cache, logger)
//	opts := pipeline.Options{Thresholds: biclique.DefaultThresholds()}
//	result, err := runner.Execute(ctx, g, cover, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report := result.Report
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/methylsight/bicover/pkg/biclique"
	"github.com/methylsight/bicover/pkg/bigraph"
	"github.com/methylsight/bicover/pkg/components"
	"github.com/methylsight/bicover/pkg/dominate"
	"github.com/methylsight/bicover/pkg/reconcile"
	"github.com/methylsight/bicover/pkg/stats"
)

// Weighting schemes for the dominating-set stage.
const (
	WeightUniform = "uniform"
	WeightArea    = "area"
)

// ValidWeights is the set of supported weighting schemes.
var ValidWeights = map[string]bool{
	WeightUniform: true,
	WeightArea:    true,
}

// Options configures a pipeline run. The zero value plus
// ValidateAndSetDefaults gives the reference behavior: default
// thresholds, uniform weights, all stages enabled.
type Options struct {
	// Thresholds control the biclique and component classification.
	Thresholds biclique.Thresholds `json:"thresholds,omitempty"`

	// Weights selects the DMR weighting scheme: "uniform" or "area".
	Weights string `json:"weights,omitempty"`

	// PerBiclique enables per-biclique reconciliation statistics.
	PerBiclique bool `json:"per_biclique,omitempty"`

	// SkipDominate disables the dominating-set stage; the report then
	// omits domination statistics.
	SkipDominate bool `json:"skip_dominate,omitempty"`

	// Optimize drops dominating-set members made redundant by biclique
	// co-membership after the greedy construction.
	Optimize bool `json:"optimize,omitempty"`

	// Refresh bypasses the cache and recomputes the dominating set.
	Refresh bool `json:"refresh,omitempty"`

	// Logger receives stage progress. The Runner fills an unset Logger
	// from its own; outside a Runner it defaults to discard.
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks option fields and applies defaults.
// Idempotent; every Runner entry point calls it.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Thresholds == (biclique.Thresholds{}) {
		o.Thresholds = biclique.DefaultThresholds()
	}
	if o.Thresholds.MinInterestingDMRs < 1 || o.Thresholds.MinInterestingGenes < 1 {
		return fmt.Errorf("thresholds must be at least 1")
	}
	if o.Weights == "" {
		o.Weights = WeightUniform
	}
	if !ValidWeights[o.Weights] {
		return fmt.Errorf("invalid weights: %q (must be one of: uniform, area)", o.Weights)
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

func (o *Options) weightsFor(g *bigraph.Graph) dominate.Weights {
	if o.Weights == WeightArea {
		return dominate.AreaWeights(g)
	}
	return dominate.UniformWeights
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Report is the aggregated statistics report.
	Report *stats.Report

	// Validation describes what graph validation changed.
	Validation bigraph.ValidationReport

	// BicliqueGraph is the graph rebuilt from the cover's edges.
	BicliqueGraph *bigraph.Graph

	// Reconciliation is the full edge classification.
	Reconciliation *reconcile.Result

	// Components is the connectivity analysis.
	Components *components.Analysis

	// DominatingSet is nil when the stage was skipped.
	DominatingSet *dominate.Set

	// DroppedMembers lists members removed by the redundancy optimizer.
	DroppedMembers []bigraph.NodeID

	// GraphHash is the content hash of the validated graph.
	GraphHash string

	// Stats contains timing information.
	Stats Stats

	// CacheInfo tracks whether the dominating set came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount     int
	EdgeCount     int
	ValidateTime  time.Duration
	BuildTime     time.Duration
	ReconcileTime time.Duration
	DominateTime  time.Duration
	ComponentTime time.Duration
	AggregateTime time.Duration
}

// CacheInfo tracks cache hits for cached pipeline stages.
type CacheInfo struct {
	DominateHit bool
}
