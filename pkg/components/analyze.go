package components

import (
	"slices"

	"gonum.org/v1/gonum/stat"

	"github.com/methylsight/bicover/pkg/biclique"
	"github.com/methylsight/bicover/pkg/bigraph"
	"github.com/methylsight/bicover/pkg/dominate"
)

// PartitionStats summarizes one partition of a graph (connected,
// biconnected or triconnected components) with size-class buckets and
// average side counts over the interesting bucket only.
type PartitionStats struct {
	Components []Component    `json:"components" bson:"components"`
	Buckets    map[string]int `json:"buckets" bson:"buckets"`
	// AvgInterestingDMRs and AvgInterestingGenes average the side sizes of
	// components in the interesting bucket; 0 when the bucket is empty.
	AvgInterestingDMRs  float64 `json:"avg_interesting_dmrs" bson:"avg_interesting_dmrs"`
	AvgInterestingGenes float64 `json:"avg_interesting_genes" bson:"avg_interesting_genes"`
}

// OriginalAnalysis covers the three partitions of the original graph plus
// its cut structure.
type OriginalAnalysis struct {
	Connected          PartitionStats   `json:"connected" bson:"connected"`
	Biconnected        PartitionStats   `json:"biconnected" bson:"biconnected"`
	Triconnected       PartitionStats   `json:"triconnected" bson:"triconnected"`
	ArticulationPoints []bigraph.NodeID `json:"articulation_points" bson:"articulation_points"`
	Bridges            []bigraph.Edge   `json:"bridges" bson:"bridges"`
	SeparationPairs    []SeparationPair `json:"separation_pairs" bson:"separation_pairs"`
}

// BicliqueAnalysis covers the connected components of the rebuilt biclique
// graph, each classified through the component rule, with an
// all-keys-present category histogram.
type BicliqueAnalysis struct {
	Components []Component    `json:"components" bson:"components"`
	Categories map[string]int `json:"categories" bson:"categories"`
}

// DominationStats relates a dominating set to the component structure.
type DominationStats struct {
	Size                 int     `json:"size" bson:"size"`
	DMRPercent           float64 `json:"dmr_percent" bson:"dmr_percent"`
	DominatedGenes       int     `json:"dominated_genes" bson:"dominated_genes"`
	GenePercent          float64 `json:"gene_percent" bson:"gene_percent"`
	ComponentsWithMember int     `json:"components_with_ds" bson:"components_with_ds"`
	AvgSizePerComponent  float64 `json:"avg_size_per_component" bson:"avg_size_per_component"`
}

// Analysis is the component-level view of one analysis run.
type Analysis struct {
	Original   OriginalAnalysis `json:"original" bson:"original"`
	Biclique   BicliqueAnalysis `json:"biclique" bson:"biclique"`
	Domination *DominationStats `json:"domination,omitempty" bson:"domination,omitempty"`
}

// Analyze partitions the original graph into connected, biconnected and
// triconnected components, classifies the connected components of both
// graphs against the cover, and, when a dominating set is supplied,
// relates it to the component structure.
func Analyze(th biclique.Thresholds, original, bicliqueGraph *bigraph.Graph,
	cover []biclique.Biclique, ds *dominate.Set) *Analysis {

	a := &Analysis{}

	conn := Connected(original)
	attachBicliques(th, conn, cover)
	bic := Biconnected(original)
	tri, pairs := Triconnected(original, bic.Components)

	a.Original.Connected = newPartitionStats(th, conn)
	a.Original.Biconnected = newPartitionStats(th, bic.Components)
	a.Original.Triconnected = newPartitionStats(th, tri)
	a.Original.ArticulationPoints = bic.ArticulationPoints
	a.Original.Bridges = bic.Bridges
	a.Original.SeparationPairs = pairs

	a.Biclique = analyzeBicliqueGraph(th, bicliqueGraph, cover)

	if ds != nil {
		a.Domination = dominationStats(original, a.Biclique.Components, ds)
	}
	return a
}

func newPartitionStats(th biclique.Thresholds, comps []Component) PartitionStats {
	ps := PartitionStats{
		Components: comps,
		Buckets:    make(map[string]int, len(Buckets)),
	}
	for _, b := range Buckets {
		ps.Buckets[b] = 0
	}

	var dmrs, genes []float64
	for i := range comps {
		b := comps[i].bucket(th)
		ps.Buckets[b]++
		if b == BucketInteresting {
			dmrs = append(dmrs, float64(len(comps[i].DMRs)))
			genes = append(genes, float64(len(comps[i].Genes)))
		}
	}
	if len(dmrs) > 0 {
		ps.AvgInterestingDMRs = stat.Mean(dmrs, nil)
		ps.AvgInterestingGenes = stat.Mean(genes, nil)
	}
	return ps
}

// analyzeBicliqueGraph classifies the biclique graph's connected
// components against the cover and tallies the category histogram with
// all keys present.
func analyzeBicliqueGraph(th biclique.Thresholds, g *bigraph.Graph, cover []biclique.Biclique) BicliqueAnalysis {
	comps := Connected(g)
	attachBicliques(th, comps, cover)

	ba := BicliqueAnalysis{Categories: make(map[string]int, len(biclique.Categories))}
	for _, c := range biclique.Categories {
		ba.Categories[c.String()] = 0
	}
	for i := range comps {
		ba.Categories[comps[i].Category.String()]++
	}
	ba.Components = comps
	return ba
}

// attachBicliques records, per component, which cover bicliques touch any
// of its nodes, then classifies each component through the component rule.
// Cover nodes absent from the partition are skipped.
func attachBicliques(th biclique.Thresholds, comps []Component, cover []biclique.Biclique) {
	// node -> component index
	where := make(map[bigraph.NodeID]int)
	for i := range comps {
		for _, id := range comps[i].Nodes {
			where[id] = i
		}
	}

	touched := make([]map[int]bool, len(comps))
	for i := range touched {
		touched[i] = make(map[int]bool)
	}
	for bi, b := range cover {
		for _, id := range b.DMRs {
			if ci, ok := where[id]; ok {
				touched[ci][bi] = true
			}
		}
		for _, id := range b.Genes {
			if ci, ok := where[id]; ok {
				touched[ci][bi] = true
			}
		}
	}

	for i := range comps {
		indices := mapKeys(touched[i])
		slices.Sort(indices)
		var compBicliques []biclique.Biclique
		for _, bi := range indices {
			comps[i].Bicliques = append(comps[i].Bicliques, bi)
			compBicliques = append(compBicliques, cover[bi])
		}
		comps[i].Category = biclique.ClassifyComponent(th, comps[i].DMRs, comps[i].Genes, compBicliques)
	}
}

func mapKeys(m map[int]bool) []int {
	out := make([]int, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func dominationStats(original *bigraph.Graph, comps []Component, ds *dominate.Set) *DominationStats {
	s := &DominationStats{
		Size:           ds.Size(),
		DominatedGenes: len(ds.DominatedGenes),
	}
	if d := len(original.DMRs()); d > 0 {
		s.DMRPercent = 100 * float64(s.Size) / float64(d)
	}
	if g := len(original.Genes()); g > 0 {
		s.GenePercent = 100 * float64(s.DominatedGenes) / float64(g)
	}
	for i := range comps {
		for _, dmr := range comps[i].DMRs {
			if ds.Contains(dmr) {
				s.ComponentsWithMember++
				break
			}
		}
	}
	if s.ComponentsWithMember > 0 {
		s.AvgSizePerComponent = float64(s.Size) / float64(s.ComponentsWithMember)
	}
	return s
}
