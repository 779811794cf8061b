package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/music-events/internal/aggregator"
	"github.com/pfrederiksen/music-events/internal/calendar"
	"github.com/pfrederiksen/music-events/internal/event"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatICS  OutputFormat = "ics"
)

// OutputResult contains data to be output
type OutputResult struct {
	SearchedAt time.Time                 `json:"searched_at"`
	Query      event.Query               `json:"query"`
	Platform   string                    `json:"platform,omitempty"`
	Count      int                       `json:"count"`
	Events     []*event.Event            `json:"events"`
	Sources    []aggregator.SourceReport `json:"sources,omitempty"`
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	case FormatICS:
		return calendar.WriteICS(w, result.Events)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	if result.Events == nil {
		result.Events = []*event.Event{}
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	q := result.Query
	scope := ""
	if result.Platform != "" {
		scope = " on " + result.Platform
	}

	if result.Count == 0 {
		fmt.Fprintf(w, "No %s events found in %s on %s%s.\n", q.Genre, q.Location, q.Date, scope)
	} else {
		fmt.Fprintf(w, "Found %d %s events in %s on %s%s\n", result.Count, q.Genre, q.Location, q.Date, scope)
	}

	for i, evt := range result.Events {
		fmt.Fprintf(w, "\n%d. %s\n", i+1, evt.Title)
		fmt.Fprintf(w, "   %s, %s | %s %s\n", evt.Venue, evt.Location, evt.Date, evt.Time)
		if evt.Artist != "" {
			fmt.Fprintf(w, "   Lineup: %s\n", evt.Artist)
		}
		fmt.Fprintf(w, "   Price: %s | Source: %s\n", evt.Price, evt.Source)
		if evt.TicketURL != "" && evt.TicketURL != "#" {
			fmt.Fprintf(w, "   Tickets: %s\n", evt.TicketURL)
		}
		if verbose {
			fmt.Fprintf(w, "   ID: %s\n", evt.ID)
			fmt.Fprintf(w, "   Genre: %s\n", evt.Genre)
			if evt.Description != "" {
				fmt.Fprintf(w, "   %s\n", evt.Description)
			}
		}
	}

	if verbose && len(result.Sources) > 0 {
		fmt.Fprintln(w, "\nSources:")
		for _, sr := range result.Sources {
			fmt.Fprintf(w, "  %-14s %-7s %3d events  %s", sr.Name, sr.Outcome, sr.Count, sr.Took.Round(time.Millisecond))
			if sr.Error != "" {
				fmt.Fprintf(w, "  (%s)", sr.Error)
			}
			fmt.Fprintln(w)
		}
	}

	return nil
}
