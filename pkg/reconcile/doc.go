// Package reconcile compares an original DMR–gene graph against the graph
// implied by its biclique cover.
//
// Every edge of the union receives exactly one label: permanent (in both
// graphs, or covered by a trusted single-DMR biclique), false_positive
// (original only) or false_negative (biclique graph only). Reliability
// ratios are derived from the buckets with zero-denominator guards, and
// Result.Validate re-derives every invariant as a hard check against
// classifier bugs.
package reconcile
