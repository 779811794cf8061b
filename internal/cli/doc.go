// Package cli implements the command-line interface for music-events.
//
// The cli package provides the Cobra-based CLI with three commands: search runs
// the full multi-source search, platform queries a single source, and serve
// starts the HTTP API. Results can be printed as text, JSON or an iCalendar
// feed, and sorted by relevance, date or title.
package cli
