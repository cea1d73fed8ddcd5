package biclique

import (
	"slices"

	"github.com/methylsight/bicover/pkg/bigraph"
)

// Biclique is a complete bipartite subgraph given as an ordered
// (DMR-set, gene-set) pair. Bicliques are produced by an external
// biclique-finding tool and ingested as opaque values; their identity is
// their position in the input cover.
type Biclique struct {
	DMRs  []bigraph.NodeID `json:"dmrs" bson:"dmrs"`
	Genes []bigraph.NodeID `json:"genes" bson:"genes"`
}

// New builds a biclique with both sides sorted and deduplicated.
func New(dmrs, genes []bigraph.NodeID) Biclique {
	return Biclique{DMRs: sortedUnique(dmrs), Genes: sortedUnique(genes)}
}

func sortedUnique(ids []bigraph.NodeID) []bigraph.NodeID {
	out := slices.Clone(ids)
	slices.Sort(out)
	return slices.Compact(out)
}

// ContainsNode reports whether the node appears on either side.
func (b Biclique) ContainsNode(id bigraph.NodeID) bool {
	_, inDMRs := slices.BinarySearch(b.DMRs, id)
	if inDMRs {
		return true
	}
	_, inGenes := slices.BinarySearch(b.Genes, id)
	return inGenes
}

// EdgeCount returns the number of edges the biclique implies.
func (b Biclique) EdgeCount() int { return len(b.DMRs) * len(b.Genes) }

// Edges enumerates the implied DMR×gene edge product in sorted order.
func (b Biclique) Edges() []bigraph.Edge {
	edges := make([]bigraph.Edge, 0, b.EdgeCount())
	for _, d := range b.DMRs {
		for _, g := range b.Genes {
			edges = append(edges, bigraph.Edge{DMR: d, Gene: g})
		}
	}
	return edges
}

// BuildGraph reconstructs the biclique graph implied by a cover: the same
// node set as the original graph, with the union of every biclique's
// DMR×gene edge product as the edge set. Cover nodes missing from the
// original are added on the side the cover assigns them; the resulting
// node-set mismatch makes edge reconciliation abort with a node-mismatch
// error instead of silently dropping those edges.
func BuildGraph(original *bigraph.Graph, cover []Biclique) *bigraph.Graph {
	g := bigraph.New(original.Timepoint())
	for _, id := range original.Nodes() {
		side, _ := original.Side(id)
		_ = g.AddNode(id, side, original.Meta(id))
	}
	for _, b := range cover {
		for _, d := range b.DMRs {
			if !g.HasNode(d) {
				_ = g.AddNode(d, bigraph.SideDMR, nil)
			}
		}
		for _, gn := range b.Genes {
			if !g.HasNode(gn) {
				_ = g.AddNode(gn, bigraph.SideGene, nil)
			}
		}
		for _, e := range b.Edges() {
			_ = g.AddEdge(e.DMR, e.Gene)
		}
	}
	return g
}
