package reconcile

import (
	"errors"
	"fmt"
	"slices"

	"github.com/methylsight/bicover/pkg/biclique"
	"github.com/methylsight/bicover/pkg/bigraph"
)

var (
	// ErrNodeMismatch is returned by [Classify] when the original and
	// biclique graphs disagree on their node sets. Reconciliation is only
	// meaningful over identical node sets; the caller must abort this unit
	// of work and supply valid inputs.
	ErrNodeMismatch = errors.New("original and biclique graphs have different node sets")

	// ErrReconcile is returned by [Result.Validate] when a classification
	// invariant is violated. It always signals a reconciliation bug, never
	// bad input, and is never silently corrected.
	ErrReconcile = errors.New("edge classification invariant violated")
)

// Label classifies an edge of the union of both graphs. Labels are
// mutually exclusive and exhaustive over original ∪ biclique edges.
type Label int

const (
	// Permanent edges exist in both graphs, or belong to a single-DMR
	// biclique (trusted ground truth regardless of the original graph).
	Permanent Label = iota
	// FalsePositive edges exist only in the original graph: interactions
	// the cover failed to explain.
	FalsePositive
	// FalseNegative edges exist only in the biclique graph: interactions
	// the cover implies but the data never showed.
	FalseNegative
)

// String returns the snake_case label used at serialization boundaries.
func (l Label) String() string {
	switch l {
	case Permanent:
		return "permanent"
	case FalsePositive:
		return "false_positive"
	case FalseNegative:
		return "false_negative"
	default:
		return "unknown"
	}
}

// Stats carries the reliability ratios for an edge set. Every ratio guards
// its denominator and reports 0.0 for degenerate inputs.
type Stats struct {
	OriginalEdges  int     `json:"original_edges" bson:"original_edges"`
	Permanent      int     `json:"permanent" bson:"permanent"`
	FalsePositives int     `json:"false_positives" bson:"false_positives"`
	FalseNegatives int     `json:"false_negatives" bson:"false_negatives"`
	Accuracy       float64 `json:"accuracy" bson:"accuracy"`
	NoisePercent   float64 `json:"noise_percentage" bson:"noise_percentage"`
	FPRate         float64 `json:"false_positive_rate" bson:"false_positive_rate"`
	FNRate         float64 `json:"false_negative_rate" bson:"false_negative_rate"`
}

// computeStats derives the reliability ratios from raw counts:
//
//	accuracy = permanent / (original + FN)
//	noise%   = 100·(FP+FN) / (original + FN)
//	FP rate  = FP / original
//	FN rate  = FN / (original + FN)
func computeStats(original, permanent, fp, fn int) Stats {
	s := Stats{
		OriginalEdges:  original,
		Permanent:      permanent,
		FalsePositives: fp,
		FalseNegatives: fn,
	}
	s.Accuracy = ratio(float64(permanent), float64(original+fn))
	s.NoisePercent = 100 * ratio(float64(fp+fn), float64(original+fn))
	s.FPRate = ratio(float64(fp), float64(original))
	s.FNRate = ratio(float64(fn), float64(original+fn))
	return s
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0.0
	}
	return num / den
}

// Result is the full edge reconciliation of an original graph against the
// graph rebuilt from its biclique cover.
type Result struct {
	// PermanentEdges, FalsePositiveEdges and FalseNegativeEdges are the
	// classification buckets, each sorted by (DMR, gene).
	PermanentEdges     []bigraph.Edge `json:"permanent_edges" bson:"permanent_edges"`
	FalsePositiveEdges []bigraph.Edge `json:"false_positive_edges" bson:"false_positive_edges"`
	FalseNegativeEdges []bigraph.Edge `json:"false_negative_edges" bson:"false_negative_edges"`

	// Labels maps every edge of the union to its single label.
	Labels map[bigraph.Edge]Label `json:"-" bson:"-"`

	// Stats aggregates the reliability ratios over the whole graph.
	Stats Stats `json:"stats" bson:"stats"`

	// ByBiclique holds the optional per-biclique breakdown, indexed like
	// the input cover. Nil unless requested.
	ByBiclique []Stats `json:"by_biclique,omitempty" bson:"by_biclique,omitempty"`
}

// Options controls optional classifier outputs.
type Options struct {
	// PerBiclique requests the per-biclique stats breakdown.
	PerBiclique bool
}

// Classify reconciles the original graph's edges against the biclique
// graph rebuilt from cover. Both graphs must share an identical node set;
// a mismatch is a fatal input error returning ErrNodeMismatch.
//
// Edges belonging to any single-DMR biclique are tagged permanent up
// front, regardless of original-graph membership: a single-DMR biclique
// cannot over-merge distinct DMR neighborhoods, so its edges are trusted
// ground truth. Every remaining original edge is permanent when the
// biclique graph also has it and false positive otherwise; every
// remaining biclique-graph edge missing from the original is false
// negative. The buckets are disjoint and cover the union exactly.
func Classify(original, bicliqueGraph *bigraph.Graph, cover []biclique.Biclique, opts Options) (*Result, error) {
	if !bigraph.SameNodeSet(original, bicliqueGraph) {
		return nil, fmt.Errorf("%d vs %d nodes: %w",
			original.NodeCount(), bicliqueGraph.NodeCount(), ErrNodeMismatch)
	}

	res := &Result{Labels: make(map[bigraph.Edge]Label)}

	// Single-DMR bicliques are trusted ground truth.
	for _, b := range cover {
		if len(b.DMRs) != 1 {
			continue
		}
		for _, e := range b.Edges() {
			if _, seen := res.Labels[e]; !seen {
				res.Labels[e] = Permanent
			}
		}
	}

	for _, e := range original.Edges() {
		if _, seen := res.Labels[e]; seen {
			continue
		}
		if bicliqueGraph.HasEdge(e.DMR, e.Gene) {
			res.Labels[e] = Permanent
		} else {
			res.Labels[e] = FalsePositive
		}
	}

	for _, e := range bicliqueGraph.Edges() {
		if _, seen := res.Labels[e]; !seen {
			res.Labels[e] = FalseNegative
		}
	}

	for e, label := range res.Labels {
		switch label {
		case Permanent:
			res.PermanentEdges = append(res.PermanentEdges, e)
		case FalsePositive:
			res.FalsePositiveEdges = append(res.FalsePositiveEdges, e)
		case FalseNegative:
			res.FalseNegativeEdges = append(res.FalseNegativeEdges, e)
		}
	}
	slices.SortFunc(res.PermanentEdges, bigraph.CompareEdges)
	slices.SortFunc(res.FalsePositiveEdges, bigraph.CompareEdges)
	slices.SortFunc(res.FalseNegativeEdges, bigraph.CompareEdges)

	res.Stats = computeStats(original.EdgeCount(),
		len(res.PermanentEdges), len(res.FalsePositiveEdges), len(res.FalseNegativeEdges))

	if opts.PerBiclique {
		res.ByBiclique = perBicliqueStats(original, res.Labels, cover)
	}
	return res, nil
}

// perBicliqueStats recomputes the reliability ratios restricted to each
// biclique's implied edge product, reusing the global labels so the two
// views can never disagree on an edge.
func perBicliqueStats(original *bigraph.Graph, labels map[bigraph.Edge]Label, cover []biclique.Biclique) []Stats {
	out := make([]Stats, len(cover))
	for i, b := range cover {
		var orig, perm, fp, fn int
		for _, e := range b.Edges() {
			if original.HasEdge(e.DMR, e.Gene) {
				orig++
			}
			switch labels[e] {
			case Permanent:
				perm++
			case FalsePositive:
				fp++
			case FalseNegative:
				fn++
			}
		}
		out[i] = computeStats(orig, perm, fp, fn)
	}
	return out
}
