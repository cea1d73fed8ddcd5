package components

import (
	"slices"

	"gonum.org/v1/gonum/graph/topo"

	"github.com/methylsight/bicover/pkg/biclique"
	"github.com/methylsight/bicover/pkg/bigraph"
)

// Bucket names the structural size classes used for partition statistics.
const (
	BucketSingleNode  = "single_node"
	BucketSmall       = "small"
	BucketInteresting = "interesting"
	BucketComplex     = "complex"
)

// Buckets lists all bucket names in ascending size order.
var Buckets = []string{BucketSingleNode, BucketSmall, BucketInteresting, BucketComplex}

// Component is a maximal connected piece of either the original graph or
// the rebuilt biclique graph. All node slices are ascending-sorted.
type Component struct {
	Nodes     []bigraph.NodeID  `json:"nodes" bson:"nodes"`
	DMRs      []bigraph.NodeID  `json:"dmrs" bson:"dmrs"`
	Genes     []bigraph.NodeID  `json:"genes" bson:"genes"`
	EdgeCount int               `json:"edge_count" bson:"edge_count"`
	Density   float64           `json:"density" bson:"density"`
	Category  biclique.Category `json:"-" bson:"-"`

	// Bicliques indexes the input cover's bicliques touching any node of
	// this component. Populated for connected components of either graph;
	// biconnected and triconnected pieces are left unclassified.
	Bicliques []int `json:"bicliques,omitempty" bson:"bicliques,omitempty"`
}

// Size returns the total node count.
func (c *Component) Size() int { return len(c.Nodes) }

// bucket assigns the size class: single nodes, components with at most one
// node on either side, and components meeting the interesting thresholds.
// The complex bucket requires a classified category, so only connected
// components that went through attachBicliques can land there.
func (c *Component) bucket(th biclique.Thresholds) string {
	switch {
	case c.Size() == 1:
		return BucketSingleNode
	case c.Category == biclique.CategoryComplex:
		return BucketComplex
	case len(c.DMRs) <= 1 || len(c.Genes) <= 1:
		return BucketSmall
	case biclique.Classify(th, c.DMRs, c.Genes) == biclique.CategoryInteresting:
		return BucketInteresting
	default:
		return BucketSmall
	}
}

// newComponent builds a component record over a node subset of g,
// splitting the sides, counting internal edges and computing the density
// 2E/(n(n−1)); single-node components have density 0.
func newComponent(g *bigraph.Graph, nodes []bigraph.NodeID) Component {
	c := Component{Nodes: slices.Clone(nodes)}
	slices.Sort(c.Nodes)

	inside := make(map[bigraph.NodeID]bool, len(nodes))
	for _, id := range c.Nodes {
		inside[id] = true
	}
	for _, id := range c.Nodes {
		side, _ := g.Side(id)
		if side == bigraph.SideDMR {
			c.DMRs = append(c.DMRs, id)
		} else {
			c.Genes = append(c.Genes, id)
		}
		for _, n := range g.Neighbors(id) {
			if inside[n] && id < n {
				c.EdgeCount++
			}
		}
	}
	if n := len(c.Nodes); n > 1 {
		c.Density = 2 * float64(c.EdgeCount) / float64(n*(n-1))
	}
	return c
}

// Connected returns the connected components of the graph via gonum's
// topology routines, ordered by each component's smallest node ID.
func Connected(g *bigraph.Graph) []Component {
	groups := topo.ConnectedComponents(g.Gonum())

	comps := make([]Component, 0, len(groups))
	for _, group := range groups {
		nodes := make([]bigraph.NodeID, len(group))
		for i, n := range group {
			nodes[i] = bigraph.NodeID(n.ID())
		}
		comps = append(comps, newComponent(g, nodes))
	}
	slices.SortFunc(comps, func(a, b Component) int {
		return int(a.Nodes[0] - b.Nodes[0])
	})
	return comps
}
