package components

import (
	"slices"
	"testing"

	"github.com/methylsight/bicover/pkg/biclique"
	"github.com/methylsight/bicover/pkg/bigraph"
	"github.com/methylsight/bicover/pkg/dominate"
)

func TestAnalyzeDisjointEdges(t *testing.T) {
	// Two disjoint DMR-gene pairs force a two-member dominating set with
	// exactly one member per component.
	g := buildGraph(t, map[int][]int{0: {0}, 1: {1}})
	cover := []biclique.Biclique{
		biclique.New(ids(0), ids(geneBase)),
		biclique.New(ids(1), ids(geneBase+1)),
	}
	bg := biclique.BuildGraph(g, cover)
	ds := dominate.Compute(g, nil)

	a := Analyze(biclique.DefaultThresholds(), g, bg, cover, ds)

	if got := len(a.Original.Connected.Components); got != 2 {
		t.Fatalf("connected components = %d, want 2", got)
	}
	if got := a.Original.Connected.Buckets[BucketSmall]; got != 2 {
		t.Errorf("small bucket = %d, want 2", got)
	}
	if len(a.Original.ArticulationPoints) != 0 {
		t.Errorf("ArticulationPoints = %v, want none", a.Original.ArticulationPoints)
	}
	wantBridges := []bigraph.Edge{
		{DMR: 0, Gene: geneBase},
		{DMR: 1, Gene: geneBase + 1},
	}
	if !slices.Equal(a.Original.Bridges, wantBridges) {
		t.Errorf("Bridges = %v, want %v", a.Original.Bridges, wantBridges)
	}

	if got := len(a.Biclique.Components); got != 2 {
		t.Fatalf("biclique components = %d, want 2", got)
	}
	if got := a.Biclique.Categories[biclique.CategorySimple.String()]; got != 2 {
		t.Errorf("simple category count = %d, want 2", got)
	}
	for _, c := range biclique.Categories {
		if _, ok := a.Biclique.Categories[c.String()]; !ok {
			t.Errorf("Categories missing key %q", c)
		}
	}
	if !slices.Equal(a.Biclique.Components[0].Bicliques, []int{0}) ||
		!slices.Equal(a.Biclique.Components[1].Bicliques, []int{1}) {
		t.Errorf("biclique attachment = %v / %v, want [0] / [1]",
			a.Biclique.Components[0].Bicliques, a.Biclique.Components[1].Bicliques)
	}

	dom := a.Domination
	if dom == nil {
		t.Fatal("Domination = nil, want stats")
	}
	if dom.Size != 2 || dom.DominatedGenes != 2 {
		t.Errorf("Size/DominatedGenes = %d/%d, want 2/2", dom.Size, dom.DominatedGenes)
	}
	if dom.DMRPercent != 100 || dom.GenePercent != 100 {
		t.Errorf("percents = %v/%v, want 100/100", dom.DMRPercent, dom.GenePercent)
	}
	if dom.ComponentsWithMember != 2 {
		t.Errorf("ComponentsWithMember = %d, want 2", dom.ComponentsWithMember)
	}
	if dom.AvgSizePerComponent != 1.0 {
		t.Errorf("AvgSizePerComponent = %v, want 1.0", dom.AvgSizePerComponent)
	}
}

func TestAnalyzeClassifiesOriginalComponents(t *testing.T) {
	// A full 3x3 block covered by an interesting biclique plus a simple
	// overlapping one: the component holds two bicliques, one interesting,
	// so it classifies as complex in the original partition too.
	g := buildGraph(t, map[int][]int{
		0: {0, 1, 2},
		1: {0, 1, 2},
		2: {0, 1, 2},
	})
	cover := []biclique.Biclique{
		biclique.New(ids(0, 1, 2), ids(geneBase, geneBase+1, geneBase+2)),
		biclique.New(ids(0), ids(geneBase)),
	}
	bg := biclique.BuildGraph(g, cover)

	a := Analyze(biclique.DefaultThresholds(), g, bg, cover, nil)

	if got := a.Original.Connected.Buckets[BucketComplex]; got != 1 {
		t.Fatalf("original complex bucket = %d, want 1 (buckets %v)",
			got, a.Original.Connected.Buckets)
	}
	comp := a.Original.Connected.Components[0]
	if comp.Category != biclique.CategoryComplex {
		t.Errorf("component category = %v, want complex", comp.Category)
	}
	if !slices.Equal(comp.Bicliques, []int{0, 1}) {
		t.Errorf("attached bicliques = %v, want [0 1]", comp.Bicliques)
	}
	if got := a.Biclique.Categories[biclique.CategoryComplex.String()]; got != 1 {
		t.Errorf("biclique complex category count = %d, want 1", got)
	}
}

func TestAnalyzeWithoutDominatingSet(t *testing.T) {
	g := buildGraph(t, map[int][]int{0: {0}})
	cover := []biclique.Biclique{biclique.New(ids(0), ids(geneBase))}
	bg := biclique.BuildGraph(g, cover)

	a := Analyze(biclique.DefaultThresholds(), g, bg, cover, nil)
	if a.Domination != nil {
		t.Errorf("Domination = %+v, want nil", a.Domination)
	}
}

func TestNewPartitionStatsInterestingAverages(t *testing.T) {
	// One interesting 3x3 block and one small pair: averages cover the
	// interesting bucket only.
	g := buildGraph(t, map[int][]int{
		0: {0, 1, 2},
		1: {0, 1, 2},
		2: {0, 1, 2},
		5: {5},
	})
	ps := newPartitionStats(biclique.DefaultThresholds(), Connected(g))

	if ps.Buckets[BucketInteresting] != 1 || ps.Buckets[BucketSmall] != 1 {
		t.Fatalf("buckets = %v, want one interesting and one small", ps.Buckets)
	}
	if ps.AvgInterestingDMRs != 3 || ps.AvgInterestingGenes != 3 {
		t.Errorf("interesting averages = %v/%v, want 3/3",
			ps.AvgInterestingDMRs, ps.AvgInterestingGenes)
	}
	for _, b := range Buckets {
		if _, ok := ps.Buckets[b]; !ok {
			t.Errorf("Buckets missing key %q", b)
		}
	}
}

func restoredSet(members, genes []bigraph.NodeID) *dominate.Set {
	s := &dominate.Set{DominatedGenes: genes}
	for _, m := range members {
		s.Members = append(s.Members, dominate.Member{DMR: m})
	}
	s.Restore()
	return s
}

func TestFindRedundant(t *testing.T) {
	cover := []biclique.Biclique{
		biclique.New(ids(0, 1), ids(geneBase, geneBase+1)),
		biclique.New(ids(2), ids(geneBase+2)),
	}
	ds := restoredSet(ids(0, 1, 2), ids(geneBase, geneBase+1, geneBase+2))

	red := FindRedundant(cover, ds)
	if len(red) != 1 {
		t.Fatalf("FindRedundant() = %v, want one entry", red)
	}
	if red[0].Biclique != 0 || !slices.Equal(red[0].Members, ids(0, 1)) {
		t.Errorf("redundancy = %+v, want biclique 0 with members [0 1]", red[0])
	}
}

func TestOptimizeDropsCoLocatedMember(t *testing.T) {
	// Complete 2x2 block: either member alone covers both genes, so one
	// of the two must go. The input set stays untouched.
	g := buildGraph(t, map[int][]int{0: {0, 1}, 1: {0, 1}})
	cover := []biclique.Biclique{biclique.New(ids(0, 1), ids(geneBase, geneBase+1))}
	ds := restoredSet(ids(0, 1), ids(geneBase, geneBase+1))

	out, dropped := Optimize(g, cover, ds)
	if !slices.Equal(dropped, ids(0)) {
		t.Fatalf("dropped = %v, want [0]", dropped)
	}
	if out.Size() != 1 || !out.Contains(1) {
		t.Errorf("refined set = %v, want only DMR 1", out.DMRs())
	}
	if ds.Size() != 2 {
		t.Errorf("input set size = %d after Optimize, want 2", ds.Size())
	}
}

func TestOptimizeKeepsNecessaryMembers(t *testing.T) {
	// Each member owns a private gene outside the shared block, so
	// neither is removable despite the co-location flag.
	g := buildGraph(t, map[int][]int{0: {0, 1, 2}, 1: {0, 1, 3}})
	cover := []biclique.Biclique{biclique.New(ids(0, 1), ids(geneBase, geneBase+1))}
	ds := restoredSet(ids(0, 1), ids(geneBase, geneBase+1, geneBase+2, geneBase+3))

	out, dropped := Optimize(g, cover, ds)
	if len(dropped) != 0 {
		t.Fatalf("dropped = %v, want none", dropped)
	}
	if out.Size() != 2 {
		t.Errorf("refined set size = %d, want 2", out.Size())
	}
}
