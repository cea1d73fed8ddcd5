package reconcile

import (
	"errors"
	"slices"
	"testing"

	"github.com/methylsight/bicover/pkg/biclique"
)

func classifyFixture(t *testing.T) (*Result, func() error) {
	t.Helper()
	g := buildGraph(t, ids(0, 1), ids(100, 101),
		edges([2]int{0, 100}, [2]int{0, 101}, [2]int{1, 100}))
	cover := []biclique.Biclique{biclique.New(ids(0, 1), ids(100, 101))}
	bg := biclique.BuildGraph(g, cover)

	res, err := Classify(g, bg, cover, Options{})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	validate := func() error { return res.Validate(g, bg) }
	return res, validate
}

func TestValidateAcceptsClassifierOutput(t *testing.T) {
	_, validate := classifyFixture(t)
	if err := validate(); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidateAcceptsPreTaggedEdgeMissingFromOriginal(t *testing.T) {
	// The single-DMR biclique implies (1,101), which the original lacks.
	// The pre-tag makes it permanent anyway, so it is counted once in the
	// edge union and the identity must not treat it as double-counted.
	g := buildGraph(t, ids(0, 1), ids(100, 101),
		edges([2]int{0, 100}, [2]int{0, 101}, [2]int{1, 100}))
	cover := []biclique.Biclique{biclique.New(ids(1), ids(100, 101))}
	bg := biclique.BuildGraph(g, cover)

	res, err := Classify(g, bg, cover, Options{})
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if !slices.Equal(res.PermanentEdges, edges([2]int{1, 100}, [2]int{1, 101})) {
		t.Errorf("PermanentEdges = %v, want [(1,100) (1,101)]", res.PermanentEdges)
	}
	if !slices.Equal(res.FalsePositiveEdges, edges([2]int{0, 100}, [2]int{0, 101})) {
		t.Errorf("FalsePositiveEdges = %v, want [(0,100) (0,101)]", res.FalsePositiveEdges)
	}
	if len(res.FalseNegativeEdges) != 0 {
		t.Errorf("FalseNegativeEdges = %v, want none", res.FalseNegativeEdges)
	}
	if err := res.Validate(g, bg); err != nil {
		t.Errorf("Validate() = %v, want nil", err)
	}
}

func TestValidateRejectsTamperedResults(t *testing.T) {
	t.Run("DuplicateBucketEntry", func(t *testing.T) {
		res, validate := classifyFixture(t)
		res.FalsePositiveEdges = append(res.FalsePositiveEdges, res.PermanentEdges[0])
		if err := validate(); !errors.Is(err, ErrReconcile) {
			t.Errorf("Validate() = %v, want ErrReconcile", err)
		}
	})

	t.Run("PhantomPermanentEdge", func(t *testing.T) {
		res, validate := classifyFixture(t)
		res.PermanentEdges = append(res.PermanentEdges, edges([2]int{1, 999})...)
		if err := validate(); !errors.Is(err, ErrReconcile) {
			t.Errorf("Validate() = %v, want ErrReconcile", err)
		}
	})

	t.Run("MisfiledFalsePositive", func(t *testing.T) {
		res, validate := classifyFixture(t)
		// (0,100) exists in both graphs, so it can never be a false
		// positive.
		res.FalsePositiveEdges = edges([2]int{0, 100})
		if err := validate(); !errors.Is(err, ErrReconcile) {
			t.Errorf("Validate() = %v, want ErrReconcile", err)
		}
	})

	t.Run("OriginalOnlyEdgeFiledAsPermanent", func(t *testing.T) {
		g := buildGraph(t, ids(0, 1), ids(100, 101),
			edges([2]int{0, 100}, [2]int{0, 101}, [2]int{1, 100}))
		cover := []biclique.Biclique{biclique.New(ids(1), ids(100, 101))}
		bg := biclique.BuildGraph(g, cover)
		res, err := Classify(g, bg, cover, Options{})
		if err != nil {
			t.Fatalf("Classify: %v", err)
		}
		// (0,100) exists only in the original; permanent edges must all
		// be in the biclique graph.
		res.PermanentEdges = append(res.PermanentEdges, res.FalsePositiveEdges[0])
		res.FalsePositiveEdges = res.FalsePositiveEdges[1:]
		if err := res.Validate(g, bg); !errors.Is(err, ErrReconcile) {
			t.Errorf("Validate() = %v, want ErrReconcile", err)
		}
	})

	t.Run("DroppedEdgeBreaksCountIdentity", func(t *testing.T) {
		res, validate := classifyFixture(t)
		res.FalseNegativeEdges = nil
		if err := validate(); !errors.Is(err, ErrReconcile) {
			t.Errorf("Validate() = %v, want ErrReconcile", err)
		}
	})
}
