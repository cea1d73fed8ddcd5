// Package stats rolls the per-concern analysis results into one report
// object and flattens per-node metadata for storage.
//
// The aggregator adds no counting rules of its own: categories, edge
// labels and component buckets are taken from the packages that computed
// them, so the report can never disagree with the underlying analyses.
// All sets become sorted slices and all compound keys become flat strings
// before the report crosses the persistence boundary.
package stats

import (
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gonum.org/v1/gonum/stat"

	"github.com/methylsight/bicover/pkg/biclique"
	"github.com/methylsight/bicover/pkg/bigraph"
	"github.com/methylsight/bicover/pkg/components"
	"github.com/methylsight/bicover/pkg/dominate"
	"github.com/methylsight/bicover/pkg/reconcile"
)

// Coverage reports which fraction of each side the cover touches, plus
// participation histograms keyed by biclique count (as flat strings).
type Coverage struct {
	DMRsCovered  int     `json:"dmrs_covered" bson:"dmrs_covered"`
	DMRFraction  float64 `json:"dmr_fraction" bson:"dmr_fraction"`
	GenesCovered int     `json:"genes_covered" bson:"genes_covered"`
	GeneFraction float64 `json:"gene_fraction" bson:"gene_fraction"`

	// DMRParticipation and GeneParticipation map "number of bicliques a
	// node appears in" to "how many nodes appear in that many".
	DMRParticipation  map[string]int `json:"dmr_participation" bson:"dmr_participation"`
	GeneParticipation map[string]int `json:"gene_participation" bson:"gene_participation"`

	// AvgBicliquesPerDMR and AvgBicliquesPerGene average over covered
	// nodes only; 0 when nothing is covered.
	AvgBicliquesPerDMR  float64 `json:"avg_bicliques_per_dmr" bson:"avg_bicliques_per_dmr"`
	AvgBicliquesPerGene float64 `json:"avg_bicliques_per_gene" bson:"avg_bicliques_per_gene"`
}

// EdgeCoverage counts original edges by how many bicliques imply them.
type EdgeCoverage struct {
	Single    int `json:"single" bson:"single"`
	Multiple  int `json:"multiple" bson:"multiple"`
	Uncovered int `json:"uncovered" bson:"uncovered"`
}

// Report is the full result bundle handed to the persistence and
// reporting layers.
type Report struct {
	RunID       string    `json:"run_id" bson:"run_id"`
	Timepoint   string    `json:"timepoint" bson:"timepoint"`
	GeneratedAt time.Time `json:"generated_at" bson:"generated_at"`

	DMRCount      int `json:"dmr_count" bson:"dmr_count"`
	GeneCount     int `json:"gene_count" bson:"gene_count"`
	EdgeCount     int `json:"edge_count" bson:"edge_count"`
	BicliqueCount int `json:"biclique_count" bson:"biclique_count"`

	// SizeDistribution keys are "<dmr_count>x<gene_count>" flat strings.
	SizeDistribution map[string]int `json:"size_distribution" bson:"size_distribution"`
	// Categories is the biclique category histogram, all keys present.
	Categories map[string]int `json:"categories" bson:"categories"`

	Coverage     Coverage     `json:"coverage" bson:"coverage"`
	EdgeCoverage EdgeCoverage `json:"edge_coverage" bson:"edge_coverage"`

	Components     *components.Analysis `json:"components" bson:"components"`
	Reconciliation *reconcile.Result    `json:"reconciliation" bson:"reconciliation"`
	DominatingSet  *dominate.Set        `json:"dominating_set,omitempty" bson:"dominating_set,omitempty"`
}

// SizeKey flattens a (dmr count, gene count) pair into the boundary's
// string form, e.g. "3x5".
func SizeKey(dmrs, genes int) string {
	return fmt.Sprintf("%dx%d", dmrs, genes)
}

// Aggregate merges the analysis outputs for one graph/cover pair into a
// report. comp, rec and ds may each be nil when the corresponding stage
// was skipped; the report simply omits them.
func Aggregate(th biclique.Thresholds, g *bigraph.Graph, cover []biclique.Biclique,
	comp *components.Analysis, rec *reconcile.Result, ds *dominate.Set) *Report {

	r := &Report{
		RunID:          uuid.NewString(),
		Timepoint:      g.Timepoint(),
		GeneratedAt:    time.Now().UTC(),
		DMRCount:       len(g.DMRs()),
		GeneCount:      len(g.Genes()),
		EdgeCount:      g.EdgeCount(),
		BicliqueCount:  len(cover),
		Components:     comp,
		Reconciliation: rec,
		DominatingSet:  ds,
	}

	r.SizeDistribution = make(map[string]int)
	for _, b := range cover {
		r.SizeDistribution[SizeKey(len(b.DMRs), len(b.Genes))]++
	}

	r.Categories = make(map[string]int, len(biclique.Categories))
	for cat, n := range biclique.CountCategories(th, cover) {
		r.Categories[cat.String()] = n
	}

	r.Coverage = coverage(g, cover)
	r.EdgeCoverage = edgeCoverage(g, cover)
	return r
}

func coverage(g *bigraph.Graph, cover []biclique.Biclique) Coverage {
	dmrCounts := make(map[bigraph.NodeID]int)
	geneCounts := make(map[bigraph.NodeID]int)
	for _, b := range cover {
		for _, d := range b.DMRs {
			dmrCounts[d]++
		}
		for _, gn := range b.Genes {
			geneCounts[gn]++
		}
	}

	cov := Coverage{
		DMRParticipation:  make(map[string]int),
		GeneParticipation: make(map[string]int),
	}
	var perDMR, perGene []float64
	for _, id := range g.DMRs() {
		if n := dmrCounts[id]; n > 0 {
			cov.DMRsCovered++
			cov.DMRParticipation[strconv.Itoa(n)]++
			perDMR = append(perDMR, float64(n))
		}
	}
	for _, id := range g.Genes() {
		if n := geneCounts[id]; n > 0 {
			cov.GenesCovered++
			cov.GeneParticipation[strconv.Itoa(n)]++
			perGene = append(perGene, float64(n))
		}
	}
	if d := len(g.DMRs()); d > 0 {
		cov.DMRFraction = float64(cov.DMRsCovered) / float64(d)
	}
	if gn := len(g.Genes()); gn > 0 {
		cov.GeneFraction = float64(cov.GenesCovered) / float64(gn)
	}
	if len(perDMR) > 0 {
		cov.AvgBicliquesPerDMR = stat.Mean(perDMR, nil)
	}
	if len(perGene) > 0 {
		cov.AvgBicliquesPerGene = stat.Mean(perGene, nil)
	}
	return cov
}

func edgeCoverage(g *bigraph.Graph, cover []biclique.Biclique) EdgeCoverage {
	counts := make(map[bigraph.Edge]int)
	for _, b := range cover {
		for _, e := range b.Edges() {
			counts[e]++
		}
	}

	var ec EdgeCoverage
	for _, e := range g.Edges() {
		switch counts[e] {
		case 0:
			ec.Uncovered++
		case 1:
			ec.Single++
		default:
			ec.Multiple++
		}
	}
	return ec
}

// NodeRecord is a flattened per-node metadata row suitable for bulk
// storage or display.
type NodeRecord struct {
	ID          bigraph.NodeID `json:"id" bson:"id"`
	Type        string         `json:"type" bson:"type"`
	Label       string         `json:"label,omitempty" bson:"label,omitempty"`
	Description string         `json:"description,omitempty" bson:"description,omitempty"`
	Degree      int            `json:"degree" bson:"degree"`
	Area        float64        `json:"area,omitempty" bson:"area,omitempty"`
	// Bicliques indexes the cover bicliques referencing the node.
	Bicliques []int `json:"bicliques,omitempty" bson:"bicliques,omitempty"`
	// Component indexes the biclique-graph component holding the node,
	// or -1 when the node belongs to none.
	Component int `json:"component" bson:"component"`
	Hub       bool `json:"hub,omitempty" bson:"hub,omitempty"`
}

// NodeRecords flattens every node of the graph into a record, sorted by
// ID. comp and ds may be nil.
func NodeRecords(g *bigraph.Graph, cover []biclique.Biclique,
	comp *components.Analysis, ds *dominate.Set) []NodeRecord {

	byNode := make(map[bigraph.NodeID][]int)
	for i, b := range cover {
		for _, d := range b.DMRs {
			byNode[d] = append(byNode[d], i)
		}
		for _, gn := range b.Genes {
			byNode[gn] = append(byNode[gn], i)
		}
	}

	where := make(map[bigraph.NodeID]int)
	if comp != nil {
		for i := range comp.Biclique.Components {
			for _, id := range comp.Biclique.Components[i].Nodes {
				where[id] = i + 1 // shifted so the zero value means "none"
			}
		}
	}

	records := make([]NodeRecord, 0, g.NodeCount())
	for _, id := range g.Nodes() {
		side, _ := g.Side(id)
		meta := g.Meta(id)
		rec := NodeRecord{
			ID:        id,
			Type:      side.String(),
			Degree:    g.Degree(id),
			Bicliques: byNode[id],
			Component: where[id] - 1,
		}
		if label, ok := meta["label"].(string); ok {
			rec.Label = label
		}
		if desc, ok := meta["description"].(string); ok {
			rec.Description = desc
		}
		if area, ok := meta["area"].(float64); ok {
			rec.Area = area
		}
		if ds != nil && side == bigraph.SideDMR {
			rec.Hub = ds.Contains(id)
		}
		records = append(records, rec)
	}
	slices.SortFunc(records, func(a, b NodeRecord) int { return int(a.ID - b.ID) })
	return records
}
