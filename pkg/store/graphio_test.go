package store

import (
	"bytes"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/methylsight/bicover/pkg/bigraph"
)

func testGraph(t *testing.T) *bigraph.Graph {
	t.Helper()
	g := bigraph.New("DSS1")

	if err := g.AddNode(0, bigraph.SideDMR, bigraph.Metadata{"area": 2.5}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddNode(1, bigraph.SideDMR, nil); err != nil {
		t.Fatal(err)
	}
	if err := g.AddNode(100000, bigraph.SideGene, bigraph.Metadata{"label": "BRCA1"}); err != nil {
		t.Fatal(err)
	}
	if err := g.AddNode(100001, bigraph.SideGene, nil); err != nil {
		t.Fatal(err)
	}
	for _, e := range [][2]bigraph.NodeID{{0, 100000}, {0, 100001}, {1, 100000}} {
		if err := g.AddEdge(e[0], e[1]); err != nil {
			t.Fatal(err)
		}
	}
	if err := g.AddEdgeSource(0, 100000, "promoter"); err != nil {
		t.Fatal(err)
	}
	if err := g.AddEdgeSource(0, 100000, "body"); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestGraphRoundTrip(t *testing.T) {
	g := testGraph(t)

	var buf bytes.Buffer
	if err := WriteGraph(g, &buf); err != nil {
		t.Fatalf("WriteGraph: %v", err)
	}

	got, err := ReadGraph(&buf)
	if err != nil {
		t.Fatalf("ReadGraph: %v", err)
	}

	if got.Timepoint() != "DSS1" {
		t.Errorf("Timepoint = %q, want %q", got.Timepoint(), "DSS1")
	}
	if !bigraph.SameNodeSet(got, g) {
		t.Error("node sets differ after round trip")
	}
	if !slices.Equal(got.Edges(), g.Edges()) {
		t.Errorf("edges differ: %v vs %v", got.Edges(), g.Edges())
	}
	if got.Meta(100000)["label"] != "BRCA1" {
		t.Errorf("gene label = %v, want BRCA1", got.Meta(100000)["label"])
	}
	want := []string{"body", "promoter"}
	if src := got.EdgeSources(0, 100000).Sorted(); !slices.Equal(src, want) {
		t.Errorf("edge sources = %v, want %v", src, want)
	}
}

func TestWriteGraphDeterministic(t *testing.T) {
	g := testGraph(t)

	var a, b bytes.Buffer
	if err := WriteGraph(g, &a); err != nil {
		t.Fatal(err)
	}
	if err := WriteGraph(g, &b); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("repeated writes differ")
	}
}

func TestReadGraphErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "Malformed",
			in:   "{not json",
			want: "decode graph",
		},
		{
			name: "UnknownSide",
			in:   `{"nodes":[{"id":0,"side":"promoter"}],"edges":[]}`,
			want: `unknown side "promoter"`,
		},
		{
			name: "EdgeToMissingNode",
			in:   `{"nodes":[{"id":0,"side":"dmr"}],"edges":[{"dmr":0,"gene":100000}]}`,
			want: "edge 0-100000",
		},
		{
			name: "DuplicateNode",
			in:   `{"nodes":[{"id":0,"side":"dmr"},{"id":0,"side":"dmr"}],"edges":[]}`,
			want: "node 0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadGraph(strings.NewReader(tt.in))
			if err == nil {
				t.Fatal("ReadGraph succeeded, want error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestImportExportGraph(t *testing.T) {
	g := testGraph(t)
	path := filepath.Join(t.TempDir(), "graph.json")

	if err := ExportGraph(g, path); err != nil {
		t.Fatalf("ExportGraph: %v", err)
	}
	got, err := ImportGraph(path)
	if err != nil {
		t.Fatalf("ImportGraph: %v", err)
	}
	if !bigraph.SameNodeSet(got, g) || got.EdgeCount() != g.EdgeCount() {
		t.Error("graph differs after file round trip")
	}

	if _, err := ImportGraph(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("ImportGraph(missing) succeeded, want error")
	}
}
