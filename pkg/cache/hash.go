package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/methylsight/bicover/pkg/bigraph"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// GraphKey derives the cache key for a graph's dominating set from a
// content hash over its sorted node and edge lists. Metadata and evidence
// annotations are excluded: domination depends only on topology.
func GraphKey(g *bigraph.Graph) string {
	h := sha256.New()
	fmt.Fprintf(h, "t:%s;", g.Timepoint())
	for _, id := range g.Nodes() {
		side, _ := g.Side(id)
		fmt.Fprintf(h, "n:%d:%d;", id, side)
	}
	for _, e := range g.Edges() {
		fmt.Fprintf(h, "e:%d-%d;", e.DMR, e.Gene)
	}
	return "domset:" + hex.EncodeToString(h.Sum(nil))
}
