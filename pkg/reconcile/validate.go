package reconcile

import (
	"fmt"

	"github.com/methylsight/bicover/pkg/bigraph"
)

// Validate re-derives the classification invariants from the two graphs
// and fails hard on any violation:
//
//	(a) no edge appears in two buckets
//	(b) permanent edges exist in the biclique graph (single-DMR pre-tagged
//	    edges may be missing from the original, all others exist in both)
//	(c) false positives exist only in the original graph
//	(d) false negatives exist only in the biclique graph
//	(e) |classified| == |original| + |biclique| − |permanent in both|
//
// The identity (e) subtracts only permanent edges present in both graphs:
// those are the edges counted twice in |original| + |biclique|. A pre-tagged
// edge the original lacks is counted once, like a false negative would be.
//
// Any returned error wraps ErrReconcile and means the classifier itself is
// broken; results failing validation must be discarded, not repaired.
func (r *Result) Validate(original, bicliqueGraph *bigraph.Graph) error {
	seen := make(map[bigraph.Edge]Label, len(r.Labels))
	record := func(edges []bigraph.Edge, label Label) error {
		for _, e := range edges {
			if prev, dup := seen[e]; dup {
				return fmt.Errorf("%w: edge %d-%d in both %s and %s buckets",
					ErrReconcile, e.DMR, e.Gene, prev, label)
			}
			seen[e] = label
		}
		return nil
	}
	if err := record(r.PermanentEdges, Permanent); err != nil {
		return err
	}
	if err := record(r.FalsePositiveEdges, FalsePositive); err != nil {
		return err
	}
	if err := record(r.FalseNegativeEdges, FalseNegative); err != nil {
		return err
	}

	permBoth := 0
	for _, e := range r.PermanentEdges {
		if !bicliqueGraph.HasEdge(e.DMR, e.Gene) {
			return fmt.Errorf("%w: permanent edge %d-%d missing from biclique graph",
				ErrReconcile, e.DMR, e.Gene)
		}
		if original.HasEdge(e.DMR, e.Gene) {
			permBoth++
		}
	}
	for _, e := range r.FalsePositiveEdges {
		if !original.HasEdge(e.DMR, e.Gene) || bicliqueGraph.HasEdge(e.DMR, e.Gene) {
			return fmt.Errorf("%w: false positive %d-%d not exclusive to original graph",
				ErrReconcile, e.DMR, e.Gene)
		}
	}
	for _, e := range r.FalseNegativeEdges {
		if !bicliqueGraph.HasEdge(e.DMR, e.Gene) || original.HasEdge(e.DMR, e.Gene) {
			return fmt.Errorf("%w: false negative %d-%d not exclusive to biclique graph",
				ErrReconcile, e.DMR, e.Gene)
		}
	}

	classified := len(r.PermanentEdges) + len(r.FalsePositiveEdges) + len(r.FalseNegativeEdges)
	want := original.EdgeCount() + bicliqueGraph.EdgeCount() - permBoth
	if classified != want {
		return fmt.Errorf("%w: classified %d edges, want %d (= %d original + %d biclique - %d permanent in both)",
			ErrReconcile, classified, want,
			original.EdgeCount(), bicliqueGraph.EdgeCount(), permBoth)
	}
	return nil
}
