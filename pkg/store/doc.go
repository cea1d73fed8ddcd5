// Package store handles persistence: JSON import and export of bipartite
// graphs and analysis reports, plus an optional MongoDB archive for
// reports keyed by run ID.
package store
