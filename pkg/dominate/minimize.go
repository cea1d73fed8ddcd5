package dominate

import (
	"slices"

	"github.com/methylsight/bicover/pkg/bigraph"
)

// minimize performs the post-hoc one-shot reduction pass: members are
// visited once in ascending DMR order, and a member is dropped when every
// gene it covers has some other member as a neighbor.
//
// The pass is deliberately not iterated to a fixpoint. Removal order
// matters, and a member whose redundancy only appears relative to a
// different removal order can be left behind; downstream consumers depend
// on the resulting set sizes, so this stays a single sweep. The
// components package's optimizer performs a secondary, biclique-guided
// refinement over the same sets.
func minimize(g *bigraph.Graph, set *Set) {
	covered := func(gene, without bigraph.NodeID) bool {
		for _, dmr := range g.Neighbors(gene) {
			if dmr != without && set.members[dmr] {
				return true
			}
		}
		return false
	}

	for _, m := range slices.Clone(set.Members) {
		removable := true
		for _, gene := range g.Neighbors(m.DMR) {
			if !covered(gene, m.DMR) {
				removable = false
				break
			}
		}
		if !removable {
			continue
		}
		delete(set.members, m.DMR)
		set.Members = slices.DeleteFunc(set.Members, func(x Member) bool { return x.DMR == m.DMR })
		set.Removed = append(set.Removed, m.DMR)
	}
	slices.Sort(set.Removed)
}
