package components

import (
	"slices"

	"github.com/methylsight/bicover/pkg/bigraph"
)

// Biconnectivity is the result of one Hopcroft–Tarjan sweep: the
// biconnected components (as node sets), the articulation points whose
// removal disconnects the graph, and the bridge edges.
type Biconnectivity struct {
	Components         []Component
	ArticulationPoints []bigraph.NodeID
	Bridges            []bigraph.Edge
}

// Biconnected decomposes the graph into biconnected components using a
// single depth-first sweep with an edge stack (Hopcroft–Tarjan). Isolated
// nodes form their own single-node components so the partition covers
// every node.
func Biconnected(g *bigraph.Graph) Biconnectivity {
	s := &biconnSweep{
		g:     g,
		index: make(map[bigraph.NodeID]int, g.NodeCount()),
		low:   make(map[bigraph.NodeID]int, g.NodeCount()),
		artic: make(map[bigraph.NodeID]bool),
	}
	for _, root := range g.Nodes() {
		if _, visited := s.index[root]; visited {
			continue
		}
		if g.Degree(root) == 0 {
			s.groups = append(s.groups, []bigraph.NodeID{root})
			s.index[root] = s.time
			s.time++
			continue
		}
		s.visit(root, -1)
	}

	out := Biconnectivity{
		ArticulationPoints: slices.Sorted(slices.Values(s.articList())),
		Bridges:            s.bridges,
	}
	slices.SortFunc(out.Bridges, bigraph.CompareEdges)
	for _, group := range s.groups {
		out.Components = append(out.Components, newComponent(g, group))
	}
	slices.SortFunc(out.Components, func(a, b Component) int {
		return int(a.Nodes[0] - b.Nodes[0])
	})
	return out
}

type biconnSweep struct {
	g       *bigraph.Graph
	index   map[bigraph.NodeID]int
	low     map[bigraph.NodeID]int
	time    int
	stack   [][2]bigraph.NodeID
	groups  [][]bigraph.NodeID
	artic   map[bigraph.NodeID]bool
	bridges []bigraph.Edge
}

func (s *biconnSweep) visit(u, parent bigraph.NodeID) {
	s.index[u] = s.time
	s.low[u] = s.time
	s.time++
	children := 0

	for _, v := range s.g.Neighbors(u) {
		if v == parent {
			continue
		}
		if _, visited := s.index[v]; !visited {
			children++
			s.stack = append(s.stack, [2]bigraph.NodeID{u, v})
			s.visit(v, u)
			s.low[u] = min(s.low[u], s.low[v])

			if s.low[v] > s.index[u] {
				s.bridges = append(s.bridges, s.normalize(u, v))
			}
			// u separates v's subtree: pop one biconnected component.
			if (parent != -1 && s.low[v] >= s.index[u]) || (parent == -1 && children > 1) {
				s.artic[u] = true
			}
			if s.low[v] >= s.index[u] {
				s.popComponent(u, v)
			}
		} else if s.index[v] < s.index[u] {
			s.stack = append(s.stack, [2]bigraph.NodeID{u, v})
			s.low[u] = min(s.low[u], s.index[v])
		}
	}

	// Root of the DFS tree: flush whatever edges remain into a final
	// component for this connected piece.
	if parent == -1 && len(s.stack) > 0 {
		s.flushStack()
	}
}

// popComponent pops edges up to and including (u, v) and records their
// node set as one biconnected component.
func (s *biconnSweep) popComponent(u, v bigraph.NodeID) {
	nodes := make(map[bigraph.NodeID]bool)
	for len(s.stack) > 0 {
		e := s.stack[len(s.stack)-1]
		s.stack = s.stack[:len(s.stack)-1]
		nodes[e[0]] = true
		nodes[e[1]] = true
		if e[0] == u && e[1] == v {
			break
		}
	}
	s.addGroup(nodes)
}

func (s *biconnSweep) flushStack() {
	nodes := make(map[bigraph.NodeID]bool)
	for _, e := range s.stack {
		nodes[e[0]] = true
		nodes[e[1]] = true
	}
	s.stack = s.stack[:0]
	s.addGroup(nodes)
}

func (s *biconnSweep) addGroup(nodes map[bigraph.NodeID]bool) {
	if len(nodes) == 0 {
		return
	}
	group := make([]bigraph.NodeID, 0, len(nodes))
	for id := range nodes {
		group = append(group, id)
	}
	slices.Sort(group)
	s.groups = append(s.groups, group)
}

func (s *biconnSweep) articList() []bigraph.NodeID {
	out := make([]bigraph.NodeID, 0, len(s.artic))
	for id := range s.artic {
		out = append(out, id)
	}
	return out
}

func (s *biconnSweep) normalize(u, v bigraph.NodeID) bigraph.Edge {
	if side, _ := s.g.Side(u); side == bigraph.SideDMR {
		return bigraph.Edge{DMR: u, Gene: v}
	}
	return bigraph.Edge{DMR: v, Gene: u}
}
