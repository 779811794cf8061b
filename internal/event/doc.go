// Package event provides the canonical live-music event record and the search query shape.
//
// Every upstream source normalizes its records into Event. The package also owns the
// case-insensitive dedup key, the "<prefix>_<id>" id scheme, and calendar-date helpers used
// to rank events by their distance from the requested date.
package event
