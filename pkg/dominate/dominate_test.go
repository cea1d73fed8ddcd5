package dominate

import (
	"slices"
	"testing"

	"github.com/methylsight/bicover/pkg/bigraph"
)

const geneBase = 100000

// buildGraph constructs a bipartite graph from a DMR -> genes adjacency
// table. Gene arguments are offsets added to geneBase.
func buildGraph(t *testing.T, adj map[int][]int) *bigraph.Graph {
	t.Helper()
	g := bigraph.New("")
	for dmr := range adj {
		if err := g.AddNode(bigraph.NodeID(dmr), bigraph.SideDMR, nil); err != nil {
			t.Fatalf("AddNode(%d): %v", dmr, err)
		}
	}
	for _, genes := range adj {
		for _, gn := range genes {
			id := bigraph.NodeID(geneBase + gn)
			if !g.HasNode(id) {
				if err := g.AddNode(id, bigraph.SideGene, nil); err != nil {
					t.Fatalf("AddNode(%d): %v", id, err)
				}
			}
		}
	}
	for dmr, genes := range adj {
		for _, gn := range genes {
			if err := g.AddEdge(bigraph.NodeID(dmr), bigraph.NodeID(geneBase+gn)); err != nil {
				t.Fatalf("AddEdge(%d, %d): %v", dmr, geneBase+gn, err)
			}
		}
	}
	return g
}

func genes(offsets ...int) []bigraph.NodeID {
	out := make([]bigraph.NodeID, len(offsets))
	for i, o := range offsets {
		out[i] = bigraph.NodeID(geneBase + o)
	}
	return out
}

func TestComputeStarGraph(t *testing.T) {
	// One DMR connected to five degree-1 genes: the set is exactly that
	// DMR, covering every gene, and minimization removes nothing.
	g := buildGraph(t, map[int][]int{0: {1, 2, 3, 4, 5}})

	ds := Compute(g, nil)

	if got := ds.DMRs(); !slices.Equal(got, []bigraph.NodeID{0}) {
		t.Fatalf("DMRs() = %v, want [0]", got)
	}
	if !slices.Equal(ds.DominatedGenes, genes(1, 2, 3, 4, 5)) {
		t.Errorf("DominatedGenes = %v", ds.DominatedGenes)
	}
	if ds.Members[0].Utility != 5 {
		t.Errorf("Utility = %d, want 5", ds.Members[0].Utility)
	}
	if len(ds.Removed) != 0 {
		t.Errorf("Removed = %v, want empty", ds.Removed)
	}
	if len(ds.Unreachable) != 0 {
		t.Errorf("Unreachable = %v, want empty", ds.Unreachable)
	}
}

func TestComputeDisjointComponents(t *testing.T) {
	// Two disjoint single-edge components need one member each.
	g := buildGraph(t, map[int][]int{0: {1}, 1: {2}})

	ds := Compute(g, nil)

	if got := ds.DMRs(); !slices.Equal(got, []bigraph.NodeID{0, 1}) {
		t.Fatalf("DMRs() = %v, want [0 1]", got)
	}
	if !ds.Dominates(genes(1)[0]) || !ds.Dominates(genes(2)[0]) {
		t.Error("both genes must be dominated")
	}
}

func TestComputeDegreeOneForcing(t *testing.T) {
	// Gene 3 has exactly one neighbor (DMR 2), so DMR 2 is forced even
	// though DMR 1 carries a higher utility.
	g := buildGraph(t, map[int][]int{
		1: {1, 2},
		2: {2, 3},
	})

	ds := Compute(g, nil)

	if !ds.Contains(2) {
		t.Error("forced DMR 2 missing from set")
	}
	for _, gn := range genes(1, 2, 3) {
		if !ds.Dominates(gn) {
			t.Errorf("gene %d not dominated", gn)
		}
	}
}

func TestComputeMinimizationDropsRedundantMember(t *testing.T) {
	// Utilities start tied at 2 for DMRs 1..3, so the queue picks DMR 1
	// first by ID. DMRs 2 and 3 then cover genes 3 and 4, and together
	// they also cover everything DMR 1 covered, leaving it redundant.
	g := buildGraph(t, map[int][]int{
		1: {1, 2},
		2: {1, 3},
		3: {2, 4},
		4: {3},
		5: {4},
	})

	ds := Compute(g, nil)

	if !slices.Equal(ds.Removed, []bigraph.NodeID{1}) {
		t.Fatalf("Removed = %v, want [1]", ds.Removed)
	}
	if got := ds.DMRs(); !slices.Equal(got, []bigraph.NodeID{2, 3}) {
		t.Fatalf("DMRs() = %v, want [2 3]", got)
	}
	for _, gn := range genes(1, 2, 3, 4) {
		if !ds.Dominates(gn) {
			t.Errorf("gene %d lost coverage after minimization", gn)
		}
	}
}

func TestComputeUnreachableGenes(t *testing.T) {
	g := buildGraph(t, map[int][]int{0: {1}})
	if err := g.AddNode(bigraph.NodeID(geneBase+9), bigraph.SideGene, nil); err != nil {
		t.Fatalf("AddNode: %v", err)
	}

	ds := Compute(g, nil)

	if !slices.Equal(ds.Unreachable, genes(9)) {
		t.Errorf("Unreachable = %v, want %v", ds.Unreachable, genes(9))
	}
	if ds.Dominates(genes(9)[0]) {
		t.Error("unreachable gene reported as dominated")
	}
}

func TestComputeWeightTieBreak(t *testing.T) {
	// Both DMRs cover the same two genes: equal utility, so the higher
	// area wins.
	g := bigraph.New("")
	_ = g.AddNode(1, bigraph.SideDMR, bigraph.Metadata{"area": 1.5})
	_ = g.AddNode(2, bigraph.SideDMR, bigraph.Metadata{"area": 7.25})
	_ = g.AddNode(geneBase+1, bigraph.SideGene, nil)
	_ = g.AddNode(geneBase+2, bigraph.SideGene, nil)
	for _, dmr := range []bigraph.NodeID{1, 2} {
		_ = g.AddEdge(dmr, geneBase+1)
		_ = g.AddEdge(dmr, geneBase+2)
	}

	ds := Compute(g, AreaWeights(g))

	if got := ds.DMRs(); !slices.Equal(got, []bigraph.NodeID{2}) {
		t.Fatalf("DMRs() = %v, want [2] (higher area)", got)
	}
	if ds.Members[0].Weight != 7.25 {
		t.Errorf("Weight = %v, want 7.25", ds.Members[0].Weight)
	}
}

func TestComputeEqualWeightsLowestIDWins(t *testing.T) {
	g := buildGraph(t, map[int][]int{
		3: {1, 2},
		7: {1, 2},
	})

	ds := Compute(g, nil)

	if got := ds.DMRs(); !slices.Equal(got, []bigraph.NodeID{3}) {
		t.Fatalf("DMRs() = %v, want [3] (lowest ID)", got)
	}
}

func TestComputeDeterministic(t *testing.T) {
	adj := map[int][]int{
		1: {1, 2, 3},
		2: {2, 4},
		3: {3, 4, 5},
		4: {5, 6},
		5: {6, 1},
	}

	a := Compute(buildGraph(t, adj), nil)
	b := Compute(buildGraph(t, adj), nil)

	if !slices.Equal(a.DMRs(), b.DMRs()) {
		t.Errorf("runs differ: %v vs %v", a.DMRs(), b.DMRs())
	}
	if !slices.Equal(a.DominatedGenes, b.DominatedGenes) {
		t.Errorf("dominated genes differ: %v vs %v", a.DominatedGenes, b.DominatedGenes)
	}
}

func TestAreaWeightsFallback(t *testing.T) {
	g := bigraph.New("")
	_ = g.AddNode(1, bigraph.SideDMR, bigraph.Metadata{"area": 2.5})
	_ = g.AddNode(2, bigraph.SideDMR, bigraph.Metadata{"area": 3})
	_ = g.AddNode(3, bigraph.SideDMR, bigraph.Metadata{"area": "bad"})
	_ = g.AddNode(4, bigraph.SideDMR, nil)

	w := AreaWeights(g)

	tests := []struct {
		id   bigraph.NodeID
		want float64
	}{
		{1, 2.5},
		{2, 3.0},
		{3, 1.0},
		{4, 1.0},
		{99, 1.0},
	}
	for _, tt := range tests {
		if got := w(tt.id); got != tt.want {
			t.Errorf("w(%d) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestSetCloneAndRemove(t *testing.T) {
	g := buildGraph(t, map[int][]int{0: {1}, 1: {2}})
	ds := Compute(g, nil)

	c := ds.Clone()
	if !c.Remove(0) {
		t.Fatal("Remove(0) = false, want true")
	}
	if c.Remove(0) {
		t.Error("second Remove(0) = true, want false")
	}
	if !ds.Contains(0) {
		t.Error("Remove on clone mutated the original")
	}
	if c.Contains(0) || c.Size() != 1 {
		t.Errorf("clone after remove: size %d, contains(0)=%v", c.Size(), c.Contains(0))
	}
}
