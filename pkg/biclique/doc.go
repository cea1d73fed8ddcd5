// Package biclique models externally computed biclique covers and
// classifies their structural complexity.
//
// A biclique is a (DMR-set, gene-set) pair in which every DMR is intended
// to connect to every gene. Covers are read from the external biclique
// tool's text output (header line plus one biclique per line), rebuilt
// into a biclique graph, and classified into the ordered categories
// empty < simple < interesting < complex. Classification thresholds are
// explicit configuration (Thresholds) rather than package state.
package biclique
