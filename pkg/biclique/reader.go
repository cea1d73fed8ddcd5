package biclique

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/methylsight/bicover/pkg/bigraph"
)

var (
	// ErrEmptyCover is returned when the input contains no biclique lines.
	ErrEmptyCover = errors.New("cover contains no bicliques")

	// ErrBadHeader is returned when the node-count header line is missing
	// or malformed.
	ErrBadHeader = errors.New("malformed cover header")

	// ErrBadToken is returned (wrapped with line context) when a node token
	// cannot be resolved.
	ErrBadToken = errors.New("unresolvable node token")

	// ErrUnknownGene is returned by [NameResolver] for gene names absent
	// from the label table.
	ErrUnknownGene = errors.New("unknown gene name")
)

// Resolver maps a cover-file token to a node ID and its partite side.
// The external biclique tool emits either numeric IDs or gene names
// depending on how it was invoked, so the reader delegates token
// interpretation entirely.
type Resolver interface {
	Resolve(token string) (bigraph.NodeID, bigraph.Side, error)
}

// NumberResolver interprets every token as a numeric node ID and assigns
// the side by ID range: IDs at or above the configured gene ID start are
// genes, everything below is a DMR.
type NumberResolver struct {
	IDs bigraph.IDConfig
}

// Resolve implements [Resolver].
func (r NumberResolver) Resolve(token string) (bigraph.NodeID, bigraph.Side, error) {
	n, err := strconv.Atoi(token)
	if err != nil || n < 0 {
		return 0, 0, fmt.Errorf("%q: %w", token, ErrBadToken)
	}
	id := bigraph.NodeID(n)
	if r.IDs.IsGeneID(id) {
		return id, bigraph.SideGene, nil
	}
	return id, bigraph.SideDMR, nil
}

// NameResolver interprets numeric tokens as DMR IDs and everything else as
// a gene name looked up in Labels. Build the table with [GeneLabels].
type NameResolver struct {
	Labels map[string]bigraph.NodeID
}

// Resolve implements [Resolver].
func (r NameResolver) Resolve(token string) (bigraph.NodeID, bigraph.Side, error) {
	if n, err := strconv.Atoi(token); err == nil {
		if n < 0 {
			return 0, 0, fmt.Errorf("%q: %w", token, ErrBadToken)
		}
		return bigraph.NodeID(n), bigraph.SideDMR, nil
	}
	id, ok := r.Labels[token]
	if !ok {
		return 0, 0, fmt.Errorf("%q: %w", token, ErrUnknownGene)
	}
	return id, bigraph.SideGene, nil
}

// GeneLabels builds a gene name → node ID table from the "label" metadata
// of a graph's gene nodes, for use with [NameResolver]. Lookups are
// case-sensitive; names are stored as-is from the ingestion layer.
func GeneLabels(g *bigraph.Graph) map[string]bigraph.NodeID {
	labels := make(map[string]bigraph.NodeID)
	for _, id := range g.Genes() {
		if label, ok := g.Meta(id)["label"].(string); ok && label != "" {
			labels[label] = id
		}
	}
	return labels
}

// ReadCover parses a biclique cover in the external tool's text convention:
// a header line with the DMR and gene node counts, then one biclique per
// line as whitespace-separated node tokens. Each token is resolved through
// res, and the resolved side decides which set it joins. Blank lines and
// lines starting with '#' are skipped.
//
// The header counts are advisory (the tool emits them for its own
// bookkeeping); ReadCover validates their shape but does not require the
// parsed cover to match them, since partial covers are valid inputs.
func ReadCover(r io.Reader, res Resolver) ([]Biclique, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	header := false
	var cover []Biclique
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		if !header {
			if err := parseHeader(text); err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			header = true
			continue
		}
		b, err := parseBiclique(text, res)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		cover = append(cover, b)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read cover: %w", err)
	}
	if len(cover) == 0 {
		return nil, ErrEmptyCover
	}
	return cover, nil
}

// ImportCover reads a cover file from disk using [ReadCover].
func ImportCover(path string, res Resolver) ([]Biclique, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadCover(f, res)
}

func parseHeader(text string) error {
	fields := strings.Fields(text)
	if len(fields) != 2 {
		return fmt.Errorf("%w: want two node counts, got %d fields", ErrBadHeader, len(fields))
	}
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n < 0 {
			return fmt.Errorf("%w: bad count %q", ErrBadHeader, f)
		}
	}
	return nil
}

func parseBiclique(text string, res Resolver) (Biclique, error) {
	var dmrs, genes []bigraph.NodeID
	for _, token := range strings.Fields(text) {
		id, side, err := res.Resolve(token)
		if err != nil {
			return Biclique{}, err
		}
		if side == bigraph.SideDMR {
			dmrs = append(dmrs, id)
		} else {
			genes = append(genes, id)
		}
	}
	return New(dmrs, genes), nil
}
