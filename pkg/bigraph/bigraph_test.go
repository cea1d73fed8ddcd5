package bigraph

import (
	"errors"
	"slices"
	"testing"
)

func newTestGraph(t *testing.T) *Graph {
	t.Helper()
	g := New("P21")
	for _, d := range []NodeID{0, 1, 2} {
		if err := g.AddNode(d, SideDMR, nil); err != nil {
			t.Fatalf("AddNode(%d): %v", d, err)
		}
	}
	for _, gn := range []NodeID{100000, 100001} {
		if err := g.AddNode(gn, SideGene, nil); err != nil {
			t.Fatalf("AddNode(%d): %v", gn, err)
		}
	}
	return g
}

func TestAddNode(t *testing.T) {
	g := newTestGraph(t)

	tests := []struct {
		name    string
		id      NodeID
		side    Side
		wantErr error
	}{
		{"Fresh", 50, SideDMR, nil},
		{"Negative", -1, SideDMR, ErrNegativeID},
		{"DuplicateSameSide", 0, SideDMR, ErrDuplicateNode},
		{"DuplicateOtherSide", 100000, SideDMR, ErrDuplicateNode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.AddNode(tt.id, tt.side, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddNode() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAddEdge(t *testing.T) {
	g := newTestGraph(t)

	tests := []struct {
		name    string
		u, v    NodeID
		wantErr error
	}{
		{"DMRToGene", 0, 100000, nil},
		{"GeneToDMRReversed", 100001, 1, nil},
		{"UnknownEndpoint", 0, 999999, ErrUnknownNode},
		{"BothDMRs", 0, 1, ErrSameSideEdge},
		{"BothGenes", 100000, 100001, ErrSameSideEdge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.AddEdge(tt.u, tt.v)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("AddEdge() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if got := g.EdgeCount(); got != 2 {
		t.Errorf("EdgeCount() = %d, want 2", got)
	}

	// Duplicate edges are a no-op, in either endpoint order.
	if err := g.AddEdge(100000, 0); err != nil {
		t.Fatalf("duplicate AddEdge: %v", err)
	}
	if got := g.EdgeCount(); got != 2 {
		t.Errorf("EdgeCount() after duplicate = %d, want 2", got)
	}
}

func TestNeighborsSorted(t *testing.T) {
	g := newTestGraph(t)
	_ = g.AddEdge(0, 100001)
	_ = g.AddEdge(0, 100000)

	if got := g.Neighbors(0); !slices.Equal(got, []NodeID{100000, 100001}) {
		t.Errorf("Neighbors(0) = %v, want [100000 100001]", got)
	}
	if got := g.Neighbors(2); got != nil {
		t.Errorf("Neighbors(2) = %v, want nil for isolated node", got)
	}
	if got := g.Degree(0); got != 2 {
		t.Errorf("Degree(0) = %d, want 2", got)
	}
}

func TestEdgesNormalizedAndSorted(t *testing.T) {
	g := newTestGraph(t)
	_ = g.AddEdge(100001, 1) // Reversed endpoint order on purpose
	_ = g.AddEdge(0, 100000)
	_ = g.AddEdge(0, 100001)

	want := []Edge{
		{DMR: 0, Gene: 100000},
		{DMR: 0, Gene: 100001},
		{DMR: 1, Gene: 100001},
	}
	if got := g.Edges(); !slices.Equal(got, want) {
		t.Errorf("Edges() = %v, want %v", got, want)
	}
}

func TestEdgeSources(t *testing.T) {
	g := newTestGraph(t)
	_ = g.AddEdge(0, 100000)

	if err := g.AddEdgeSource(0, 100000, "nearby"); err != nil {
		t.Fatalf("AddEdgeSource: %v", err)
	}
	if err := g.AddEdgeSource(0, 100000, "enhancer"); err != nil {
		t.Fatalf("AddEdgeSource: %v", err)
	}
	if err := g.AddEdgeSource(0, 100001, "nearby"); !errors.Is(err, ErrUnknownNode) {
		t.Errorf("AddEdgeSource(missing edge) error = %v, want ErrUnknownNode", err)
	}

	got := g.EdgeSources(0, 100000).Sorted()
	if !slices.Equal(got, []string{"enhancer", "nearby"}) {
		t.Errorf("EdgeSources = %v, want [enhancer nearby]", got)
	}
}

func TestSideNodes(t *testing.T) {
	g := newTestGraph(t)

	if got := g.DMRs(); !slices.Equal(got, []NodeID{0, 1, 2}) {
		t.Errorf("DMRs() = %v, want [0 1 2]", got)
	}
	if got := g.Genes(); !slices.Equal(got, []NodeID{100000, 100001}) {
		t.Errorf("Genes() = %v, want [100000 100001]", got)
	}
	if got := g.Nodes(); !slices.Equal(got, []NodeID{0, 1, 2, 100000, 100001}) {
		t.Errorf("Nodes() = %v", got)
	}
}

func TestRemoveNode(t *testing.T) {
	g := newTestGraph(t)
	_ = g.AddEdge(0, 100000)
	_ = g.AddEdge(1, 100000)
	_ = g.AddEdgeSource(0, 100000, "nearby")

	g.RemoveNode(100000)

	if g.HasNode(100000) {
		t.Error("node 100000 still present")
	}
	if got := g.EdgeCount(); got != 0 {
		t.Errorf("EdgeCount() = %d, want 0", got)
	}
	if got := g.Degree(0); got != 0 {
		t.Errorf("Degree(0) = %d, want 0", got)
	}

	// Removing an unknown node is a no-op.
	g.RemoveNode(424242)
}

func TestClone(t *testing.T) {
	g := newTestGraph(t)
	_ = g.AddEdge(0, 100000)

	c := g.Clone()
	_ = c.AddEdge(1, 100001)
	c.RemoveNode(2)

	if g.EdgeCount() != 1 {
		t.Errorf("original EdgeCount() = %d, want 1", g.EdgeCount())
	}
	if !g.HasNode(2) {
		t.Error("clone mutation removed node from original")
	}
	if c.EdgeCount() != 2 {
		t.Errorf("clone EdgeCount() = %d, want 2", c.EdgeCount())
	}
	if c.Timepoint() != "P21" {
		t.Errorf("clone Timepoint() = %q, want P21", c.Timepoint())
	}
}

func TestSameNodeSet(t *testing.T) {
	a := newTestGraph(t)
	b := newTestGraph(t)

	if !SameNodeSet(a, b) {
		t.Error("SameNodeSet() = false for identical node sets")
	}

	_ = b.AddNode(99, SideDMR, nil)
	if SameNodeSet(a, b) {
		t.Error("SameNodeSet() = true after adding a node to b")
	}
}

func TestValidate(t *testing.T) {
	t.Run("RemovesIsolatedGenes", func(t *testing.T) {
		g := newTestGraph(t)
		_ = g.AddEdge(0, 100000)
		// 100001 stays isolated, DMRs 1 and 2 stay isolated too.

		rep, err := g.Validate()
		if err != nil {
			t.Fatalf("Validate: %v", err)
		}
		if rep.RemovedIsolatedGenes != 1 {
			t.Errorf("RemovedIsolatedGenes = %d, want 1", rep.RemovedIsolatedGenes)
		}
		if g.HasNode(100001) {
			t.Error("isolated gene 100001 still present")
		}
		if !g.HasNode(1) || !g.HasNode(2) {
			t.Error("isolated DMRs must be kept")
		}
		if rep.DMRCount != 3 || rep.GeneCount != 1 || rep.EdgeCount != 1 {
			t.Errorf("report = %+v", rep)
		}
	})

	t.Run("NoDMRs", func(t *testing.T) {
		g := New("")
		_ = g.AddNode(100000, SideGene, nil)
		if _, err := g.Validate(); !errors.Is(err, ErrNoDMRs) {
			t.Errorf("Validate() error = %v, want ErrNoDMRs", err)
		}
	})

	t.Run("NoGenes", func(t *testing.T) {
		g := New("")
		_ = g.AddNode(0, SideDMR, nil)
		if _, err := g.Validate(); !errors.Is(err, ErrNoGenes) {
			t.Errorf("Validate() error = %v, want ErrNoGenes", err)
		}
	})
}
