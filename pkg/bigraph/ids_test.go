package bigraph

import (
	"errors"
	"testing"
)

func TestDMRID(t *testing.T) {
	cfg := DefaultIDConfig()

	tests := []struct {
		name      string
		timepoint string
		row       int
		want      NodeID
		wantErr   error
	}{
		{"OverviewSheetFirstRow", "DSS1", 1, 1, nil},
		{"P21FirstRow", "P21", 1, 10001, nil},
		{"P180MidRow", "P180", 123, 50123, nil},
		{"TP180", "TP180", 1, 70001, nil},
		{"UnknownTimepoint", "P999", 1, 0, ErrUnknownTimepoint},
		{"ZeroRow", "P21", 0, 0, ErrRowOutOfRange},
		{"NegativeRow", "P21", -5, 0, ErrRowOutOfRange},
		{"RowCrossesGeneRange", "TP180", 30000, 0, ErrRowOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := cfg.DMRID(tt.timepoint, tt.row)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("DMRID() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && got != tt.want {
				t.Errorf("DMRID() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTimepointLookup(t *testing.T) {
	cfg := DefaultIDConfig()

	tests := []struct {
		name  string
		id    NodeID
		want  string
		found bool
	}{
		{"Overview", 42, "DSS1", true},
		{"P21TierStart", 10001, "P21", true},
		{"P21TierEnd", 19999, "P21", true},
		{"TP180Tier", 70500, "TP180", true},
		{"GeneID", 100000, "", false},
		{"Negative", -1, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := cfg.Timepoint(tt.id)
			if found != tt.found || got != tt.want {
				t.Errorf("Timepoint(%d) = (%q, %v), want (%q, %v)", tt.id, got, found, tt.want, tt.found)
			}
		})
	}
}

func TestDMRIDRoundTrip(t *testing.T) {
	cfg := DefaultIDConfig()
	for tp := range cfg.TimepointOffsets {
		id, err := cfg.DMRID(tp, 77)
		if err != nil {
			t.Fatalf("DMRID(%s, 77): %v", tp, err)
		}
		got, found := cfg.Timepoint(id)
		if !found || got != tp {
			t.Errorf("Timepoint(DMRID(%s, 77)) = (%q, %v), want %s", tp, got, found, tp)
		}
	}
}

func TestIsGeneID(t *testing.T) {
	cfg := DefaultIDConfig()
	if cfg.IsGeneID(99999) {
		t.Error("IsGeneID(99999) = true, want false")
	}
	if !cfg.IsGeneID(100000) {
		t.Error("IsGeneID(100000) = false, want true")
	}
}

func TestIDConfigClone(t *testing.T) {
	cfg := DefaultIDConfig()
	c := cfg.Clone()
	c.TimepointOffsets["P21"] = 99

	if cfg.TimepointOffsets["P21"] != 10000 {
		t.Error("Clone() shares the offsets map")
	}
}
