package biclique

import "github.com/methylsight/bicover/pkg/bigraph"

// Category is the structural complexity class of a biclique or component,
// ordered by increasing complexity. A single biclique is never COMPLEX;
// that category only applies to components aggregating more than one
// interesting biclique alongside at least one sibling.
type Category int

const (
	// CategoryEmpty means either side of the pair is empty.
	CategoryEmpty Category = iota
	// CategorySimple is the default class, including the canonical
	// 1 DMR × 1 gene case and every pair below the interesting thresholds.
	CategorySimple
	// CategoryInteresting requires both sides to meet their threshold
	// (three nodes each by default).
	CategoryInteresting
	// CategoryComplex marks a component containing an interesting biclique
	// plus at least one other biclique.
	CategoryComplex
)

// Categories lists all categories in ascending complexity order.
var Categories = []Category{CategoryEmpty, CategorySimple, CategoryInteresting, CategoryComplex}

// String returns the lowercase category name used at serialization
// boundaries.
func (c Category) String() string {
	switch c {
	case CategoryEmpty:
		return "empty"
	case CategorySimple:
		return "simple"
	case CategoryInteresting:
		return "interesting"
	case CategoryComplex:
		return "complex"
	default:
		return "unknown"
	}
}

// Complexity returns the sorting score for the category: its ordinal
// minus one, so simple scores 0 and complex scores 2.
func (c Category) Complexity() int { return int(c) - 1 }

// Thresholds configures the classifier. Explicit configuration rather
// than package globals, so tests and datasets can override the cutoffs.
type Thresholds struct {
	// MinInterestingDMRs is the minimum DMR count for CategoryInteresting.
	MinInterestingDMRs int `toml:"min_interesting_dmrs"`
	// MinInterestingGenes is the minimum gene count for CategoryInteresting.
	MinInterestingGenes int `toml:"min_interesting_genes"`
}

// DefaultThresholds returns the reference cutoffs: three nodes per side.
func DefaultThresholds() Thresholds {
	return Thresholds{MinInterestingDMRs: 3, MinInterestingGenes: 3}
}

// Classify maps a (DMR-set, gene-set) pair to its category. It is a pure,
// total function with no error conditions:
//
//   - empty if either side is empty
//   - simple for exactly 1 DMR × 1 gene
//   - interesting if both sides meet their thresholds
//   - simple otherwise
//
// Asymmetric pairs such as 2 DMRs × 5 genes intentionally fall through to
// simple; there is no partial category between simple and interesting.
func Classify(th Thresholds, dmrs, genes []bigraph.NodeID) Category {
	switch {
	case len(dmrs) == 0 || len(genes) == 0:
		return CategoryEmpty
	case len(dmrs) == 1 && len(genes) == 1:
		return CategorySimple
	case len(dmrs) >= th.MinInterestingDMRs && len(genes) >= th.MinInterestingGenes:
		return CategoryInteresting
	default:
		return CategorySimple
	}
}

// ClassifyOne classifies a single biclique.
func ClassifyOne(th Thresholds, b Biclique) Category {
	return Classify(th, b.DMRs, b.Genes)
}

// ClassifyComponent classifies a connected component of the biclique graph
// from its node sets and the bicliques touching it:
//
//   - empty if either side is empty
//   - simple if none of the bicliques is individually interesting
//   - complex if at least one biclique is interesting and the component
//     holds more than one biclique in total
//   - interesting otherwise (a lone interesting biclique)
//
// The single-biclique case deliberately reports interesting rather than
// complex: complexity requires multiple bicliques sharing the component.
func ClassifyComponent(th Thresholds, dmrs, genes []bigraph.NodeID, bicliques []Biclique) Category {
	if len(dmrs) == 0 || len(genes) == 0 {
		return CategoryEmpty
	}
	interesting := 0
	for _, b := range bicliques {
		if ClassifyOne(th, b) == CategoryInteresting {
			interesting++
		}
	}
	switch {
	case interesting == 0:
		return CategorySimple
	case len(bicliques) > 1:
		return CategoryComplex
	default:
		return CategoryInteresting
	}
}

// CountCategories computes a category histogram over a biclique list.
// All four category keys are present even when unseen, and the values sum
// to the input length.
func CountCategories(th Thresholds, bicliques []Biclique) map[Category]int {
	counts := make(map[Category]int, len(Categories))
	for _, c := range Categories {
		counts[c] = 0
	}
	for _, b := range bicliques {
		counts[ClassifyOne(th, b)]++
	}
	return counts
}
