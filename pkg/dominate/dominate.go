package dominate

import (
	"slices"

	"github.com/methylsight/bicover/pkg/bigraph"
)

// Weights returns the area statistic used to break utility ties between
// DMRs. Higher areas win. Return 1.0 for DMRs without data.
type Weights func(bigraph.NodeID) float64

// UniformWeights weighs every DMR at 1.0.
func UniformWeights(bigraph.NodeID) float64 { return 1.0 }

// AreaWeights builds a weight function from the "area" metadata of the
// graph's DMR nodes, defaulting to 1.0 where the statistic is missing or
// not numeric.
func AreaWeights(g *bigraph.Graph) Weights {
	return func(id bigraph.NodeID) float64 {
		switch v := g.Meta(id)["area"].(type) {
		case float64:
			return v
		case int:
			return float64(v)
		default:
			return 1.0
		}
	}
}

// Member is a DMR committed to the dominating set.
type Member struct {
	// DMR is the node ID.
	DMR bigraph.NodeID `json:"dmr" bson:"dmr"`
	// Utility is the number of genes newly covered when this DMR was
	// selected (its greedy gain, not its degree).
	Utility int `json:"utility" bson:"utility"`
	// Weight is the area statistic used for tie-breaking.
	Weight float64 `json:"weight" bson:"weight"`
	// Dominated lists the genes this member newly covered at selection
	// time, in ascending order.
	Dominated []bigraph.NodeID `json:"dominated" bson:"dominated"`
}

// Set is a red-blue dominating set over the DMR side: every gene reachable
// from any DMR has at least one neighbor among the members. Genes with no
// DMR neighbors at all are reported in Unreachable; their existence is a
// valid terminal state, not an error.
type Set struct {
	// Members in ascending DMR order.
	Members []Member `json:"members" bson:"members"`
	// DominatedGenes lists every dominated gene in ascending order.
	DominatedGenes []bigraph.NodeID `json:"dominated_genes" bson:"dominated_genes"`
	// Unreachable lists genes no DMR can cover, in ascending order.
	Unreachable []bigraph.NodeID `json:"unreachable,omitempty" bson:"unreachable,omitempty"`
	// Removed lists members dropped by the minimization pass.
	Removed []bigraph.NodeID `json:"removed,omitempty" bson:"removed,omitempty"`

	members map[bigraph.NodeID]bool
}

// Size returns the number of members.
func (s *Set) Size() int { return len(s.Members) }

// Contains reports whether the DMR is a member.
func (s *Set) Contains(dmr bigraph.NodeID) bool { return s.members[dmr] }

// Dominates reports whether the gene is covered by some member.
func (s *Set) Dominates(gene bigraph.NodeID) bool {
	_, ok := slices.BinarySearch(s.DominatedGenes, gene)
	return ok
}

// DMRs returns the member IDs in ascending order.
func (s *Set) DMRs() []bigraph.NodeID {
	ids := make([]bigraph.NodeID, len(s.Members))
	for i, m := range s.Members {
		ids[i] = m.DMR
	}
	return ids
}

// rebuild refreshes the lookup index and sorted slices after mutation.
func (s *Set) rebuild() {
	slices.SortFunc(s.Members, func(a, b Member) int { return int(a.DMR - b.DMR) })
	s.members = make(map[bigraph.NodeID]bool, len(s.Members))
	for _, m := range s.Members {
		s.members[m.DMR] = true
	}
	slices.Sort(s.DominatedGenes)
}

// Compute selects a minimal dominating subset of the graph's DMRs using
// the greedy weighted red-blue algorithm:
//
//  1. every gene of degree one forces its unique DMR neighbor into the set
//  2. remaining DMRs are drawn from a max-priority queue keyed by
//     (utility, weight, ID) with lazy invalidation of stale utilities
//  3. selection stops when all genes are dominated or no candidate can
//     cover a new gene
//  4. a single-pass minimization drops members whose genes all have
//     another covering member
//
// The result is a best-effort greedy minimum, deterministic for identical
// inputs. Genes unreachable from any DMR are reported, not failed on.
func Compute(g *bigraph.Graph, weights Weights) *Set {
	if weights == nil {
		weights = UniformWeights
	}

	genes := g.Genes()
	dominated := make(map[bigraph.NodeID]bool, len(genes))
	set := &Set{members: make(map[bigraph.NodeID]bool)}

	remaining := 0
	for _, gene := range genes {
		if g.Degree(gene) == 0 {
			set.Unreachable = append(set.Unreachable, gene)
			continue
		}
		remaining++
	}

	commit := func(dmr bigraph.NodeID) {
		var newly []bigraph.NodeID
		for _, gene := range g.Neighbors(dmr) {
			if !dominated[gene] {
				dominated[gene] = true
				newly = append(newly, gene)
				remaining--
			}
		}
		set.members[dmr] = true
		set.Members = append(set.Members, Member{
			DMR:       dmr,
			Utility:   len(newly),
			Weight:    weights(dmr),
			Dominated: newly,
		})
		set.DominatedGenes = append(set.DominatedGenes, newly...)
	}

	// Degree-one genes leave no choice: their single neighbor is free.
	for _, gene := range genes {
		if dominated[gene] || g.Degree(gene) != 1 {
			continue
		}
		dmr := g.Neighbors(gene)[0]
		if !set.members[dmr] {
			commit(dmr)
		}
	}

	utility := func(dmr bigraph.NodeID) int {
		u := 0
		for _, gene := range g.Neighbors(dmr) {
			if !dominated[gene] {
				u++
			}
		}
		return u
	}

	queue := newLazyQueue()
	for _, dmr := range g.DMRs() {
		if set.members[dmr] {
			continue
		}
		queue.push(dmr, utility(dmr), weights(dmr))
	}

	for remaining > 0 {
		c, ok := queue.pop()
		if !ok {
			break // leftover genes are unreachable by any candidate
		}
		commit(c.dmr)
		selected := set.Members[len(set.Members)-1]

		// Only DMRs touching the newly dominated genes can have lost
		// utility; recompute just those.
		touched := make(map[bigraph.NodeID]bool)
		for _, gene := range selected.Dominated {
			for _, dmr := range g.Neighbors(gene) {
				if dmr != c.dmr && !set.members[dmr] && !touched[dmr] {
					touched[dmr] = true
					queue.update(dmr, utility(dmr))
				}
			}
		}
	}

	set.rebuild()
	minimize(g, set)
	return set
}
