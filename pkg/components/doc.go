// Package components partitions DMR–gene graphs into connected,
// biconnected and triconnected components and classifies the results.
//
// Connected components come from gonum's topology routines; biconnected
// components, articulation points and bridges from a Hopcroft–Tarjan edge
// stack sweep; triconnected pieces from recursive splitting at separation
// pairs (two-node cuts). Biclique-graph components are classified against
// the cover's bicliques, and an optional dominating set is related to the
// component structure, including redundancy detection and a
// coverage-preserving optimizer.
package components
