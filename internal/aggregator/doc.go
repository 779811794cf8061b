// Package aggregator fans a search out to every registered source, merges the
// results that come back, removes duplicates and ranks what is left.
//
// A failing, slow or panicking source never affects the others: each source
// runs under its own timeout and its failure is logged and counted, not
// returned. Output order depends only on registration order and the ranking
// rules, never on which source answered first.
package aggregator
