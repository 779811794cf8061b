// Package calendar renders search results as an iCalendar feed.
package calendar

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pfrederiksen/music-events/internal/event"
)

// EventDuration is the assumed length of a listing; sources do not report end times.
const EventDuration = 3 * time.Hour

// maxLineOctets is the RFC 5545 content line limit before folding.
const maxLineOctets = 75

// GenerateICS generates one VCALENDAR containing a VEVENT per event. Events
// whose date cannot be parsed are skipped.
func GenerateICS(events []*event.Event) string {
	var ics strings.Builder
	writeCalendar(&ics, events, time.Now().UTC())
	return ics.String()
}

// WriteICS writes the calendar for events to w.
func WriteICS(w io.Writer, events []*event.Event) error {
	_, err := io.WriteString(w, GenerateICS(events))
	return err
}

func writeCalendar(ics *strings.Builder, events []*event.Event, now time.Time) {
	line := func(format string, args ...any) {
		ics.WriteString(fold(fmt.Sprintf(format, args...)))
		ics.WriteString("\r\n")
	}

	line("BEGIN:VCALENDAR")
	line("VERSION:2.0")
	line("PRODID:-//Music Events//music-events//EN")
	line("CALSCALE:GREGORIAN")
	line("METHOD:PUBLISH")

	for _, evt := range events {
		start, ok := startTime(evt)
		if !ok {
			continue
		}

		line("BEGIN:VEVENT")
		line("UID:%s@music-events", escapeICS(evt.ID))
		line("DTSTAMP:%s", formatICSTime(now))
		// Listings carry venue-local wall-clock times, so they are written as floating times.
		line("DTSTART:%s", formatFloating(start))
		line("DTEND:%s", formatFloating(start.Add(EventDuration)))
		line("SUMMARY:%s", escapeICS(evt.Title))
		line("DESCRIPTION:%s", escapeICS(description(evt)))
		line("LOCATION:%s", escapeICS(location(evt)))
		if strings.HasPrefix(evt.TicketURL, "http") {
			line("URL:%s", evt.TicketURL)
		}
		line("CATEGORIES:%s", escapeICS(evt.Genre))
		line("STATUS:CONFIRMED")
		line("TRANSP:OPAQUE")
		line("END:VEVENT")
	}

	line("END:VCALENDAR")
}

// startTime combines the event date with its HH:MM time, falling back to
// event.DefaultTime when the time is malformed.
func startTime(evt *event.Event) (time.Time, bool) {
	day := event.ParseDate(evt.Date)
	if day.IsZero() {
		return time.Time{}, false
	}
	clock, err := time.Parse("15:04", strings.TrimSpace(evt.Time))
	if err != nil {
		clock, _ = time.Parse("15:04", event.DefaultTime)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.UTC), true
}

func description(evt *event.Event) string {
	parts := []string{}
	if evt.Artist != "" {
		parts = append(parts, "Lineup: "+evt.Artist)
	}
	if evt.Price != "" {
		parts = append(parts, "Price: "+evt.Price)
	}
	parts = append(parts, "Source: "+evt.Source)
	if evt.TicketURL != "" && evt.TicketURL != "#" {
		parts = append(parts, "Tickets: "+evt.TicketURL)
	}
	return strings.Join(parts, "\n")
}

func location(evt *event.Event) string {
	if evt.Location == "" || evt.Location == event.UnknownLocation {
		return evt.Venue
	}
	return evt.Venue + ", " + evt.Location
}

// formatICSTime formats a time.Time as an iCalendar UTC datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

func formatFloating(t time.Time) string {
	return t.Format("20060102T150405")
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// fold splits a content line longer than 75 octets into continuation lines,
// never breaking inside a UTF-8 sequence.
func fold(s string) string {
	if len(s) <= maxLineOctets {
		return s
	}
	var b strings.Builder
	limit := maxLineOctets
	n := 0
	for _, r := range s {
		size := len(string(r))
		if n+size > limit {
			b.WriteString("\r\n ")
			n = 0
			limit = maxLineOctets - 1 // continuation lines start with a space
		}
		b.WriteRune(r)
		n += size
	}
	return b.String()
}
