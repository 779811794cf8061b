// Package genre holds the static genre vocabulary shared by every source and the
// relevance scoring used to rank aggregated results.
//
// The tables are built once at start-up and never mutated, so they are safe for
// concurrent use without locking. A synonym table may be extended from a YAML file
// with LoadSynonyms.
package genre
