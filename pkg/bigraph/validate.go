package bigraph

import "fmt"

// ValidationReport summarizes the outcome of Validate. Isolated gene nodes
// are removed rather than rejected, since they cannot affect domination or
// biclique coverage; the count is reported for diagnostics.
type ValidationReport struct {
	DMRCount             int
	GeneCount            int
	EdgeCount            int
	RemovedIsolatedGenes int
}

// Validate checks the structural invariants required by the analysis core:
//
//  1. at least one DMR node and at least one gene node exist
//  2. every edge connects a DMR to a gene (side purity)
//
// Violations of (1) and (2) are fatal and returned as errors wrapping
// ErrNoDMRs, ErrNoGenes or ErrSameSideEdge. Gene nodes of degree zero are a
// degenerate-but-valid state: they are removed in place and counted in the
// returned report. Isolated DMR nodes are kept; they can still matter for
// row metadata even though they dominate nothing.
func (g *Graph) Validate() (ValidationReport, error) {
	var rep ValidationReport

	var isolated []NodeID
	for id, side := range g.sides {
		switch side {
		case SideDMR:
			rep.DMRCount++
		case SideGene:
			rep.GeneCount++
			if len(g.adj[id]) == 0 {
				isolated = append(isolated, id)
			}
		}
	}
	if rep.DMRCount == 0 {
		return rep, ErrNoDMRs
	}
	if rep.GeneCount == 0 {
		return rep, ErrNoGenes
	}

	// Side purity over the adjacency itself, in case the maps were built
	// outside AddEdge.
	for id, adj := range g.adj {
		for n := range adj {
			if g.sides[id] == g.sides[n] {
				return rep, fmt.Errorf("%d-%d: %w", id, n, ErrSameSideEdge)
			}
		}
	}

	for _, id := range isolated {
		g.RemoveNode(id)
	}
	rep.GeneCount -= len(isolated)
	rep.RemovedIsolatedGenes = len(isolated)
	rep.EdgeCount = g.edgeCount
	return rep, nil
}
