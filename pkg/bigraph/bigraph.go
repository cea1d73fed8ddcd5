package bigraph

import (
	"errors"
	"fmt"
	"maps"
	"slices"
)

var (
	// ErrNegativeID is returned by [Graph.AddNode] when the node ID is
	// negative. Node identifiers are non-negative integers.
	ErrNegativeID = errors.New("node ID must be non-negative")

	// ErrDuplicateNode is returned by [Graph.AddNode] when a node with the
	// same ID already exists in the graph. Node IDs must be unique.
	ErrDuplicateNode = errors.New("duplicate node ID")

	// ErrUnknownNode is returned by [Graph.AddEdge] and [Graph.AddEdgeSource]
	// when an endpoint does not exist in the graph.
	ErrUnknownNode = errors.New("unknown node")

	// ErrSameSideEdge is returned by [Graph.AddEdge] when both endpoints are
	// on the same partite side. DMRs never connect to DMRs and genes never
	// connect to genes.
	ErrSameSideEdge = errors.New("edge endpoints must be on opposite sides")

	// ErrNoDMRs is returned by [Graph.Validate] when the graph contains no
	// DMR nodes. Such a graph cannot carry any biclique cover.
	ErrNoDMRs = errors.New("graph has no DMR nodes")

	// ErrNoGenes is returned by [Graph.Validate] when the graph contains no
	// gene nodes.
	ErrNoGenes = errors.New("graph has no gene nodes")
)

// NodeID identifies a node in a bipartite graph. DMR identifiers are derived
// from spreadsheet row indices plus a timepoint offset (see [IDConfig]) and
// stay below the configured gene ID start, so the two ranges never collide.
type NodeID int

// Side is the partite side of a node: DMRs form side 0, genes side 1.
type Side int

const (
	// SideDMR marks differentially methylated region nodes.
	SideDMR Side = 0
	// SideGene marks gene nodes.
	SideGene Side = 1
)

// String returns "dmr" or "gene".
func (s Side) String() string {
	if s == SideDMR {
		return "dmr"
	}
	return "gene"
}

// Metadata stores arbitrary key-value pairs attached to a node, such as the
// biological description, the area statistic, or a display label.
// Metadata maps are never nil after AddNode.
type Metadata map[string]any

// Edge is an unordered DMR–gene pair, stored in normalized (DMR, Gene) form.
type Edge struct {
	DMR  NodeID `json:"dmr" bson:"dmr"`
	Gene NodeID `json:"gene" bson:"gene"`
}

// EvidenceSet is the set of textual evidence types justifying an edge.
// The reference ingestion layer emits "nearby", "enhancer", "promoter" and
// "direct"; the graph does not restrict the vocabulary.
type EvidenceSet map[string]struct{}

// Sorted returns the evidence types in ascending order.
func (s EvidenceSet) Sorted() []string {
	return slices.Sorted(maps.Keys(s))
}

// Graph is an undirected bipartite graph linking DMR nodes to gene nodes.
// Every node carries a partite side; edges only connect opposite sides,
// which AddEdge enforces structurally (Validate re-checks it as a defense
// against direct map manipulation).
//
// The zero value is not usable - use New to create a valid Graph instance.
// Graph is not safe for concurrent use without external synchronization.
type Graph struct {
	timepoint string
	sides     map[NodeID]Side
	meta      map[NodeID]Metadata
	adj       map[NodeID]map[NodeID]struct{}
	sources   map[Edge]EvidenceSet
	edgeCount int
}

// New creates an empty bipartite graph tagged with its provenance timepoint.
// The timepoint may be empty for synthetic graphs (e.g., rebuilt biclique
// graphs inherit the original's timepoint).
func New(timepoint string) *Graph {
	return &Graph{
		timepoint: timepoint,
		sides:     make(map[NodeID]Side),
		meta:      make(map[NodeID]Metadata),
		adj:       make(map[NodeID]map[NodeID]struct{}),
		sources:   make(map[Edge]EvidenceSet),
	}
}

// Timepoint returns the provenance tag the graph was created with.
func (g *Graph) Timepoint() string { return g.timepoint }

// SetTimepoint replaces the provenance tag. Used by boundary layers when
// the caller knows better than the serialized file (e.g., a --timepoint
// override).
func (g *Graph) SetTimepoint(tp string) { g.timepoint = tp }

// AddNode adds a node on the given side. Returns ErrNegativeID for negative
// IDs or ErrDuplicateNode if the ID is already present. A nil meta map is
// replaced with an empty one.
func (g *Graph) AddNode(id NodeID, side Side, meta Metadata) error {
	if id < 0 {
		return fmt.Errorf("node %d: %w", id, ErrNegativeID)
	}
	if _, exists := g.sides[id]; exists {
		return fmt.Errorf("node %d: %w", id, ErrDuplicateNode)
	}
	if meta == nil {
		meta = Metadata{}
	}
	g.sides[id] = side
	g.meta[id] = meta
	g.adj[id] = make(map[NodeID]struct{})
	return nil
}

// AddEdge connects a DMR to a gene. The arguments may be given in either
// order; the edge is normalized internally. Returns ErrUnknownNode if an
// endpoint is missing or ErrSameSideEdge if both endpoints share a side.
// Adding an existing edge is a no-op.
func (g *Graph) AddEdge(u, v NodeID) error {
	su, ok := g.sides[u]
	if !ok {
		return fmt.Errorf("node %d: %w", u, ErrUnknownNode)
	}
	sv, ok := g.sides[v]
	if !ok {
		return fmt.Errorf("node %d: %w", v, ErrUnknownNode)
	}
	if su == sv {
		return fmt.Errorf("%d-%d: %w", u, v, ErrSameSideEdge)
	}
	if _, dup := g.adj[u][v]; dup {
		return nil
	}
	g.adj[u][v] = struct{}{}
	g.adj[v][u] = struct{}{}
	g.edgeCount++
	return nil
}

// AddEdgeSource records an evidence type for an existing edge.
// Returns ErrUnknownNode if the edge does not exist.
func (g *Graph) AddEdgeSource(dmr, gene NodeID, evidence string) error {
	if !g.HasEdge(dmr, gene) {
		return fmt.Errorf("edge %d-%d: %w", dmr, gene, ErrUnknownNode)
	}
	e := g.normalize(dmr, gene)
	if g.sources[e] == nil {
		g.sources[e] = make(EvidenceSet)
	}
	g.sources[e][evidence] = struct{}{}
	return nil
}

// EdgeSources returns the evidence set recorded for an edge, or nil.
func (g *Graph) EdgeSources(dmr, gene NodeID) EvidenceSet {
	return g.sources[g.normalize(dmr, gene)]
}

// normalize orders an endpoint pair into (DMR, Gene) form. The caller must
// ensure both nodes exist.
func (g *Graph) normalize(u, v NodeID) Edge {
	if g.sides[u] == SideDMR {
		return Edge{DMR: u, Gene: v}
	}
	return Edge{DMR: v, Gene: u}
}

// HasNode reports whether the node exists.
func (g *Graph) HasNode(id NodeID) bool {
	_, ok := g.sides[id]
	return ok
}

// HasEdge reports whether an edge connects the two nodes.
func (g *Graph) HasEdge(u, v NodeID) bool {
	_, ok := g.adj[u][v]
	return ok
}

// Side returns the partite side of a node and whether the node exists.
func (g *Graph) Side(id NodeID) (Side, bool) {
	s, ok := g.sides[id]
	return s, ok
}

// Meta returns the metadata map of a node, or nil if the node is unknown.
// The returned map is the live map; modifications affect the graph.
func (g *Graph) Meta(id NodeID) Metadata { return g.meta[id] }

// Neighbors returns the node's neighbors in ascending ID order.
// Returns nil for unknown or isolated nodes.
func (g *Graph) Neighbors(id NodeID) []NodeID {
	adj := g.adj[id]
	if len(adj) == 0 {
		return nil
	}
	return slices.Sorted(maps.Keys(adj))
}

// Degree returns the number of edges incident to the node, or 0 if unknown.
func (g *Graph) Degree(id NodeID) int { return len(g.adj[id]) }

// Nodes returns all node IDs in ascending order.
func (g *Graph) Nodes() []NodeID {
	return slices.Sorted(maps.Keys(g.sides))
}

// DMRs returns all DMR node IDs in ascending order.
func (g *Graph) DMRs() []NodeID { return g.sideNodes(SideDMR) }

// Genes returns all gene node IDs in ascending order.
func (g *Graph) Genes() []NodeID { return g.sideNodes(SideGene) }

func (g *Graph) sideNodes(side Side) []NodeID {
	var ids []NodeID
	for id, s := range g.sides {
		if s == side {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// Edges returns all edges in normalized (DMR, Gene) form, sorted by DMR
// then gene ID for deterministic output.
func (g *Graph) Edges() []Edge {
	edges := make([]Edge, 0, g.edgeCount)
	for id, side := range g.sides {
		if side != SideDMR {
			continue
		}
		for n := range g.adj[id] {
			edges = append(edges, Edge{DMR: id, Gene: n})
		}
	}
	slices.SortFunc(edges, CompareEdges)
	return edges
}

// CompareEdges orders edges by DMR then gene ID.
func CompareEdges(a, b Edge) int {
	if a.DMR != b.DMR {
		return int(a.DMR - b.DMR)
	}
	return int(a.Gene - b.Gene)
}

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.sides) }

// EdgeCount returns the number of edges in the graph.
func (g *Graph) EdgeCount() int { return g.edgeCount }

// RemoveNode deletes a node and all incident edges and evidence entries.
// Removing an unknown node is a no-op.
func (g *Graph) RemoveNode(id NodeID) {
	if _, ok := g.sides[id]; !ok {
		return
	}
	for n := range g.adj[id] {
		delete(g.adj[n], id)
		delete(g.sources, g.normalize(id, n))
		g.edgeCount--
	}
	delete(g.adj, id)
	delete(g.sides, id)
	delete(g.meta, id)
}

// Clone returns a deep copy of the graph. Node metadata maps are copied
// shallowly (values are shared), matching how graphs are treated as
// immutable-by-convention inputs across analysis runs.
func (g *Graph) Clone() *Graph {
	c := New(g.timepoint)
	for id, side := range g.sides {
		c.sides[id] = side
		c.meta[id] = maps.Clone(g.meta[id])
		c.adj[id] = maps.Clone(g.adj[id])
	}
	for e, ev := range g.sources {
		c.sources[e] = maps.Clone(ev)
	}
	c.edgeCount = g.edgeCount
	return c
}

// SameNodeSet reports whether two graphs contain exactly the same node IDs.
// Edge reconciliation requires this as a hard precondition.
func SameNodeSet(a, b *Graph) bool {
	if a.NodeCount() != b.NodeCount() {
		return false
	}
	for id := range a.sides {
		if _, ok := b.sides[id]; !ok {
			return false
		}
	}
	return true
}
