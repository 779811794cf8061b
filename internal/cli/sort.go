package cli

import (
	"sort"
	"strings"

	"github.com/pfrederiksen/music-events/internal/event"
)

// SortOrder represents the available sorting options
type SortOrder string

const (
	SortByRelevance SortOrder = "relevance"
	SortByDate      SortOrder = "date"
	SortByTitle     SortOrder = "title"
)

// sortEvents sorts a slice of events based on the specified sort order.
// Relevance keeps the aggregator's ranking.
func sortEvents(events []*event.Event, sortOrder SortOrder) {
	switch sortOrder {
	case SortByDate:
		sort.SliceStable(events, func(i, j int) bool {
			return compareByDate(events[i], events[j])
		})
	case SortByTitle:
		sort.SliceStable(events, func(i, j int) bool {
			ti, tj := strings.ToLower(events[i].Title), strings.ToLower(events[j].Title)
			if ti != tj {
				return ti < tj
			}
			// If titles are equal, sort by date
			return compareByDate(events[i], events[j])
		})
	}
}

// compareByDate compares two events by their date and start time
// Returns true if event i should come before event j
func compareByDate(i, j *event.Event) bool {
	dateI := event.ParseDate(i.Date)
	dateJ := event.ParseDate(j.Date)

	// If both dates are valid, compare them
	if !dateI.IsZero() && !dateJ.IsZero() {
		if !dateI.Equal(dateJ) {
			return dateI.Before(dateJ)
		}
		// HH:MM compares correctly as a string
		return i.Time < j.Time
	}

	// If only one date is valid, put the valid one first
	if !dateI.IsZero() {
		return true
	}
	return false
}
