package components

import (
	"slices"

	"github.com/methylsight/bicover/pkg/bigraph"
)

// SeparationPair is a two-node cut of a biconnected component: removing
// both nodes disconnects it. Pairs are stored with the smaller ID first.
type SeparationPair struct {
	A bigraph.NodeID `json:"a" bson:"a"`
	B bigraph.NodeID `json:"b" bson:"b"`
}

// SeparationPairs finds every two-node cut of a biconnected component by
// exhaustive pair testing. The datasets this tool analyzes keep
// biconnected components to at most a few hundred nodes, so the quadratic
// sweep stays cheap; components of fewer than four nodes cannot have a
// separation pair and are skipped outright.
func SeparationPairs(g *bigraph.Graph, comp Component) []SeparationPair {
	if comp.Size() < 4 {
		return nil
	}
	inside := make(map[bigraph.NodeID]bool, comp.Size())
	for _, id := range comp.Nodes {
		inside[id] = true
	}

	var pairs []SeparationPair
	for i, a := range comp.Nodes {
		for _, b := range comp.Nodes[i+1:] {
			if disconnectsWithout(g, comp.Nodes, inside, a, b) {
				pairs = append(pairs, SeparationPair{A: a, B: b})
			}
		}
	}
	return pairs
}

// disconnectsWithout reports whether removing {a, b} splits the component.
func disconnectsWithout(g *bigraph.Graph, nodes []bigraph.NodeID, inside map[bigraph.NodeID]bool, a, b bigraph.NodeID) bool {
	var start bigraph.NodeID = -1
	remaining := 0
	for _, id := range nodes {
		if id == a || id == b {
			continue
		}
		remaining++
		if start == -1 {
			start = id
		}
	}
	if remaining < 2 {
		return false
	}

	seen := map[bigraph.NodeID]bool{start: true}
	frontier := []bigraph.NodeID{start}
	for len(frontier) > 0 {
		u := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]
		for _, v := range g.Neighbors(u) {
			if v == a || v == b || !inside[v] || seen[v] {
				continue
			}
			seen[v] = true
			frontier = append(frontier, v)
		}
	}
	return len(seen) < remaining
}

// Triconnected splits the graph's biconnected components at their
// separation pairs and returns the resulting pieces plus all pairs found.
// A biconnected component with no separation pair is already triconnected
// and passes through unchanged. Splitting is recursive: each side of a cut
// keeps the pair's two nodes, mirroring how split components share their
// separation pair.
func Triconnected(g *bigraph.Graph, bicon []Component) ([]Component, []SeparationPair) {
	var comps []Component
	var allPairs []SeparationPair

	for _, bc := range bicon {
		pairs := SeparationPairs(g, bc)
		allPairs = append(allPairs, pairs...)
		if len(pairs) == 0 {
			comps = append(comps, bc)
			continue
		}
		// Split the component at its first pair, then keep splitting the
		// pieces until none has a two-node cut left.
		work := splitAt(g, bc.Nodes, pairs[0])
		for len(work) > 0 {
			part := work[len(work)-1]
			work = work[:len(work)-1]
			pc := newComponent(g, part)
			sub := SeparationPairs(g, pc)
			if len(sub) == 0 {
				comps = append(comps, pc)
				continue
			}
			work = append(work, splitAt(g, pc.Nodes, sub[0])...)
		}
	}

	slices.SortFunc(comps, func(a, b Component) int {
		if d := int(a.Nodes[0] - b.Nodes[0]); d != 0 {
			return d
		}
		return a.Size() - b.Size()
	})
	slices.SortFunc(allPairs, func(x, y SeparationPair) int {
		if x.A != y.A {
			return int(x.A - y.A)
		}
		return int(x.B - y.B)
	})
	return comps, allPairs
}

// splitAt partitions the node set by connectivity without the pair, then
// adds the pair's nodes back to every part.
func splitAt(g *bigraph.Graph, nodes []bigraph.NodeID, pair SeparationPair) [][]bigraph.NodeID {
	inside := make(map[bigraph.NodeID]bool, len(nodes))
	for _, id := range nodes {
		inside[id] = true
	}

	seen := make(map[bigraph.NodeID]bool)
	var parts [][]bigraph.NodeID
	for _, start := range nodes {
		if start == pair.A || start == pair.B || seen[start] {
			continue
		}
		part := []bigraph.NodeID{}
		frontier := []bigraph.NodeID{start}
		seen[start] = true
		for len(frontier) > 0 {
			u := frontier[len(frontier)-1]
			frontier = frontier[:len(frontier)-1]
			part = append(part, u)
			for _, v := range g.Neighbors(u) {
				if v == pair.A || v == pair.B || !inside[v] || seen[v] {
					continue
				}
				seen[v] = true
				frontier = append(frontier, v)
			}
		}
		part = append(part, pair.A, pair.B)
		slices.Sort(part)
		parts = append(parts, part)
	}
	return parts
}
