package store

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/methylsight/bicover/pkg/stats"
)

// WriteReport encodes an analysis report as indented JSON. Map keys are
// emitted in sorted order by the encoder, so repeated runs over the same
// input produce byte-identical output apart from run ID and timestamp.
func WriteReport(rep *stats.Report, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// ReadReport decodes a JSON analysis report from r and rebuilds the
// dominating set's membership index when one is present.
func ReadReport(r io.Reader) (*stats.Report, error) {
	var rep stats.Report
	if err := json.NewDecoder(r).Decode(&rep); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	if rep.DominatingSet != nil {
		rep.DominatingSet.Restore()
	}
	return &rep, nil
}

// ExportReport writes a report to a JSON file at path.
func ExportReport(rep *stats.Report, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return WriteReport(rep, f)
}

// ImportReport reads a report from a JSON file at path.
func ImportReport(path string) (*stats.Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadReport(f)
}
