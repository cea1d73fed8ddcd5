package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/methylsight/bicover/pkg/bigraph"
)

type graphJSON struct {
	Timepoint string     `json:"timepoint,omitempty"`
	Nodes     []nodeJSON `json:"nodes"`
	Edges     []edgeJSON `json:"edges"`
}

type nodeJSON struct {
	ID   bigraph.NodeID   `json:"id"`
	Side string           `json:"side"`
	Meta bigraph.Metadata `json:"meta,omitempty"`
}

type edgeJSON struct {
	DMR     bigraph.NodeID `json:"dmr"`
	Gene    bigraph.NodeID `json:"gene"`
	Sources []string       `json:"sources,omitempty"`
}

// WriteGraph encodes a bipartite graph as JSON and writes it to w.
// Nodes and edges are emitted in ascending order, so output is
// deterministic and diff-friendly. The format round-trips through
// [ReadGraph].
func WriteGraph(g *bigraph.Graph, w io.Writer) error {
	out := graphJSON{Timepoint: g.Timepoint()}

	for _, id := range g.Nodes() {
		side, _ := g.Side(id)
		meta := g.Meta(id)
		if len(meta) == 0 {
			meta = nil
		}
		out.Nodes = append(out.Nodes, nodeJSON{ID: id, Side: side.String(), Meta: meta})
	}
	for _, e := range g.Edges() {
		ej := edgeJSON{DMR: e.DMR, Gene: e.Gene}
		if src := g.EdgeSources(e.DMR, e.Gene); len(src) > 0 {
			ej.Sources = src.Sorted()
		}
		out.Edges = append(out.Edges, ej)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode graph: %w", err)
	}
	return nil
}

// ReadGraph decodes a JSON bipartite graph from r.
//
// The input must be an object with "nodes" and "edges" arrays. Each node
// needs an "id" and a "side" of "dmr" or "gene"; each edge needs "dmr"
// and "gene" referencing node IDs, optionally with a "sources" evidence
// list. Errors are wrapped with the offending node or edge for context.
func ReadGraph(r io.Reader) (*bigraph.Graph, error) {
	var data graphJSON
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, fmt.Errorf("decode graph: %w", err)
	}

	g := bigraph.New(data.Timepoint)
	for _, n := range data.Nodes {
		side, err := parseSide(n.Side)
		if err != nil {
			return nil, fmt.Errorf("node %d: %w", n.ID, err)
		}
		if err := g.AddNode(n.ID, side, n.Meta); err != nil {
			return nil, fmt.Errorf("node %d: %w", n.ID, err)
		}
	}
	for _, e := range data.Edges {
		if err := g.AddEdge(e.DMR, e.Gene); err != nil {
			return nil, fmt.Errorf("edge %d-%d: %w", e.DMR, e.Gene, err)
		}
		for _, src := range e.Sources {
			if err := g.AddEdgeSource(e.DMR, e.Gene, src); err != nil {
				return nil, fmt.Errorf("edge %d-%d: %w", e.DMR, e.Gene, err)
			}
		}
	}
	return g, nil
}

func parseSide(s string) (bigraph.Side, error) {
	switch s {
	case "dmr":
		return bigraph.SideDMR, nil
	case "gene":
		return bigraph.SideGene, nil
	default:
		return 0, fmt.Errorf("unknown side %q", s)
	}
}

// ImportGraph reads a JSON graph file from disk using [ReadGraph].
func ImportGraph(path string) (*bigraph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadGraph(f)
}

// ExportGraph writes a graph to a JSON file at path.
// This is a convenience wrapper around [WriteGraph] for file-based output.
func ExportGraph(g *bigraph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteGraph(g, f)
}
