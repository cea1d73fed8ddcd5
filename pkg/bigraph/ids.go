package bigraph

import (
	"errors"
	"fmt"
	"maps"
)

var (
	// ErrUnknownTimepoint is returned by [DMRID] when the timepoint has no
	// configured offset.
	ErrUnknownTimepoint = errors.New("unknown timepoint")

	// ErrRowOutOfRange is returned by [DMRID] when the row index is not
	// positive or the derived ID would cross into the gene ID range.
	ErrRowOutOfRange = errors.New("row index out of range")
)

// DefaultGeneIDStart is the first identifier reserved for gene nodes.
// All derived DMR IDs stay strictly below it.
const DefaultGeneIDStart = 100000

// IDConfig maps spreadsheet rows to DMR node identifiers. Each timepoint
// gets a disjoint offset tier so DMR IDs from different timepoints never
// collide, and all of them stay below GeneIDStart.
//
// Thresholds and offsets are explicit configuration rather than package
// globals so tests and alternative datasets can override them.
type IDConfig struct {
	GeneIDStart      int            `toml:"gene_id_start"`
	TimepointOffsets map[string]int `toml:"timepoint_offsets"`
}

// DefaultIDConfig returns the offset table used by the reference dataset:
// the DSS1 overview sheet at offset 0 and the pairwise timepoints in
// 10000-wide tiers.
func DefaultIDConfig() IDConfig {
	return IDConfig{
		GeneIDStart: DefaultGeneIDStart,
		TimepointOffsets: map[string]int{
			"DSS1":  0,
			"P21":   10000,
			"P28":   20000,
			"P40":   30000,
			"P60":   40000,
			"P180":  50000,
			"TP28":  60000,
			"TP180": 70000,
		},
	}
}

// Clone returns a deep copy of the config.
func (c IDConfig) Clone() IDConfig {
	c.TimepointOffsets = maps.Clone(c.TimepointOffsets)
	return c
}

// DMRID derives the node ID for the DMR on the given 1-based spreadsheet
// row of a timepoint. The mapping is offset + row and is deterministic.
// Returns ErrUnknownTimepoint for unconfigured timepoints and
// ErrRowOutOfRange when row < 1 or the result would reach GeneIDStart.
func (c IDConfig) DMRID(timepoint string, row int) (NodeID, error) {
	offset, ok := c.TimepointOffsets[timepoint]
	if !ok {
		return 0, fmt.Errorf("%q: %w", timepoint, ErrUnknownTimepoint)
	}
	if row < 1 {
		return 0, fmt.Errorf("row %d: %w", row, ErrRowOutOfRange)
	}
	id := offset + row
	if id >= c.GeneIDStart {
		return 0, fmt.Errorf("row %d maps to %d, past gene ID start %d: %w",
			row, id, c.GeneIDStart, ErrRowOutOfRange)
	}
	return NodeID(id), nil
}

// Timepoint resolves which timepoint a DMR ID belongs to by finding the
// largest configured offset not exceeding the ID. Returns false for gene
// IDs and for IDs below every configured tier.
func (c IDConfig) Timepoint(id NodeID) (string, bool) {
	if int(id) >= c.GeneIDStart || id < 0 {
		return "", false
	}
	best, bestOffset, found := "", -1, false
	for tp, offset := range c.TimepointOffsets {
		if int(id) > offset && offset > bestOffset {
			best, bestOffset, found = tp, offset, true
		}
	}
	return best, found
}

// IsGeneID reports whether the ID falls in the configured gene range.
func (c IDConfig) IsGeneID(id NodeID) bool {
	return int(id) >= c.GeneIDStart
}
