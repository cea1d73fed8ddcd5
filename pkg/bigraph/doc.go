// Package bigraph provides the bipartite DMR–gene graph model underlying
// all analyses.
//
// Nodes carry a partite side (DMR or gene) and arbitrary metadata; edges
// are unordered DMR–gene pairs optionally annotated with the evidence
// types that justified them. The model enforces side purity structurally
// (AddEdge rejects same-side edges) and re-checks it during Validate.
//
// DMR node identifiers are derived deterministically from 1-based
// spreadsheet row indices plus a timepoint-specific offset (see IDConfig),
// keeping ID ranges from different timepoints disjoint and below the gene
// ID start threshold.
//
// All node and edge accessors return ascending-sorted slices so analyses
// built on top are reproducible across runs.
package bigraph
