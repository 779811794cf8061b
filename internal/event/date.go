package event

import (
	"math"
	"strings"
	"time"
)

// DateLayout is the canonical calendar-date representation.
const DateLayout = "2006-01-02"

// ParseDate parses a canonical YYYY-MM-DD date, also accepting a full
// RFC 3339 timestamp by reading only its date part.
// Returns time.Time{} (zero value) if parsing fails.
func ParseDate(s string) time.Time {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) && s[len(DateLayout)] == 'T' {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

// DaysApart returns the absolute number of days between two canonical dates.
// An unparseable date is infinitely far away so it ranks after every dated event.
func DaysApart(a, b string) float64 {
	ta, tb := ParseDate(a), ParseDate(b)
	if ta.IsZero() || tb.IsZero() {
		return math.Inf(1)
	}
	return math.Abs(ta.Sub(tb).Hours() / 24)
}

// SplitDateTime splits a local "YYYY-MM-DDTHH:MM:SS" timestamp into canonical
// date and HH:MM time, using the fallbacks for whichever part is missing.
func SplitDateTime(local, fallbackDate, fallbackTime string) (string, string) {
	local = strings.TrimSpace(local)
	if local == "" {
		return fallbackDate, fallbackTime
	}
	date, clock, _ := strings.Cut(local, "T")
	if date == "" {
		date = fallbackDate
	}
	if len(clock) >= 5 {
		clock = clock[:5]
	} else {
		clock = fallbackTime
	}
	return date, clock
}
