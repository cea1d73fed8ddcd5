package components

import (
	"slices"

	"github.com/methylsight/bicover/pkg/biclique"
	"github.com/methylsight/bicover/pkg/bigraph"
	"github.com/methylsight/bicover/pkg/dominate"
)

// Redundancy flags a biclique whose DMR side holds more than one
// dominating-set member: within a complete bipartite block any single
// member already covers every gene, so the extras are candidates for
// removal. Informational, never an error.
type Redundancy struct {
	Biclique int              `json:"biclique" bson:"biclique"`
	Members  []bigraph.NodeID `json:"members" bson:"members"`
}

// FindRedundant scans the cover for bicliques containing more than one
// dominating-set DMR, ordered by biclique index.
func FindRedundant(cover []biclique.Biclique, ds *dominate.Set) []Redundancy {
	var out []Redundancy
	for i, b := range cover {
		var members []bigraph.NodeID
		for _, d := range b.DMRs {
			if ds.Contains(d) {
				members = append(members, d)
			}
		}
		if len(members) > 1 {
			out = append(out, Redundancy{Biclique: i, Members: members})
		}
	}
	return out
}

// Optimize refines a dominating set using full-graph knowledge: for every
// redundant member flagged by FindRedundant, it tentatively removes the
// member and keeps the removal only when every currently dominated gene
// still has a neighbor in the set. This is a secondary pass over the
// engine's own single-pass minimization; it catches members whose
// redundancy is only visible through biclique co-location, but still makes
// no global optimality claim.
//
// The input set is not modified; the refined copy and the list of dropped
// members are returned.
func Optimize(g *bigraph.Graph, cover []biclique.Biclique, ds *dominate.Set) (*dominate.Set, []bigraph.NodeID) {
	out := ds.Clone()
	var dropped []bigraph.NodeID

	for _, red := range FindRedundant(cover, out) {
		for _, dmr := range red.Members {
			if !out.Contains(dmr) {
				continue // already dropped via an earlier redundancy
			}
			if !coverageSurvives(g, out, dmr) {
				continue
			}
			out.Remove(dmr)
			dropped = append(dropped, dmr)
		}
	}
	slices.Sort(dropped)
	return out, dropped
}

// coverageSurvives checks globally that dropping the member leaves every
// dominated gene covered by some remaining member.
func coverageSurvives(g *bigraph.Graph, ds *dominate.Set, without bigraph.NodeID) bool {
	for _, gene := range ds.DominatedGenes {
		covered := false
		for _, dmr := range g.Neighbors(gene) {
			if dmr != without && ds.Contains(dmr) {
				covered = true
				break
			}
		}
		if !covered {
			return false
		}
	}
	return true
}
