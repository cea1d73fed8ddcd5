// Package dominate computes greedy weighted red-blue dominating sets:
// subsets of DMR nodes covering every reachable gene.
//
// Selection runs a max-priority queue over candidate DMRs keyed by
// (utility, area weight, ID) with lazy invalidation instead of eager
// rebalancing, preceded by a forced pre-pass for degree-one genes and
// followed by a single-pass minimization sweep. All ordering and
// tie-breaking is deterministic, so identical inputs reproduce identical
// sets across runs.
package dominate
