package dominate

import (
	"maps"
	"slices"

	"github.com/methylsight/bicover/pkg/bigraph"
)

// Clone returns a deep copy of the set, so secondary refinements (the
// component optimizer) can work without touching the computed set.
func (s *Set) Clone() *Set {
	c := &Set{
		Members:        slices.Clone(s.Members),
		DominatedGenes: slices.Clone(s.DominatedGenes),
		Unreachable:    slices.Clone(s.Unreachable),
		Removed:        slices.Clone(s.Removed),
		members:        maps.Clone(s.members),
	}
	for i := range c.Members {
		c.Members[i].Dominated = slices.Clone(c.Members[i].Dominated)
	}
	return c
}

// Remove drops a member from the set, reporting whether it was present.
// The caller is responsible for having verified that coverage survives;
// DominatedGenes is left untouched.
func (s *Set) Remove(dmr bigraph.NodeID) bool {
	if !s.members[dmr] {
		return false
	}
	delete(s.members, dmr)
	s.Members = slices.DeleteFunc(s.Members, func(m Member) bool { return m.DMR == dmr })
	return true
}

// Restore rebuilds the member index after deserialization, when only the
// exported fields are populated.
func (s *Set) Restore() {
	s.rebuild()
}
