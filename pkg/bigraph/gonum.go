package bigraph

import (
	"gonum.org/v1/gonum/graph/simple"
)

// Gonum converts the graph to a gonum simple.UndirectedGraph for use with
// gonum's topology algorithms. Node IDs carry over unchanged (NodeID is an
// int and gonum uses int64), so results translate back without a lookup
// table. Isolated nodes are preserved.
func (g *Graph) Gonum() *simple.UndirectedGraph {
	ug := simple.NewUndirectedGraph()
	for id := range g.sides {
		ug.AddNode(simple.Node(int64(id)))
	}
	for _, e := range g.Edges() {
		ug.SetEdge(simple.Edge{
			F: simple.Node(int64(e.DMR)),
			T: simple.Node(int64(e.Gene)),
		})
	}
	return ug
}
