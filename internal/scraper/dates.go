package scraper

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/pfrederiksen/music-events/internal/event"
)

var (
	dayMonthYear = regexp.MustCompile(`(\d{1,2})/(\d{1,2})/(\d{4})`)
	isoDate      = regexp.MustCompile(`(\d{4})-(\d{1,2})-(\d{1,2})`)
	dayNameYear  = regexp.MustCompile(`(\d{1,2})\s+([A-Za-z]+)\s+(\d{4})`)
	clockTime    = regexp.MustCompile(`(?i)(\d{1,2})(?:[:.](\d{2}))?(?:\s*([ap]m))?`)
)

// ParseDate converts an RA date label to YYYY-MM-DD. Supported forms are
// DD/MM/YYYY, YYYY-MM-DD and "DD Month YYYY"; anything else returns fallback.
func ParseDate(text, fallback string) string {
	text = strings.TrimSpace(text)
	if text == "" {
		return fallback
	}

	if m := dayMonthYear.FindStringSubmatch(text); m != nil {
		return formatDate(m[3], m[2], m[1], fallback)
	}
	if m := isoDate.FindStringSubmatch(text); m != nil {
		return formatDate(m[1], m[2], m[3], fallback)
	}
	if m := dayNameYear.FindStringSubmatch(text); m != nil {
		for _, layout := range []string{"2 January 2006", "2 Jan 2006"} {
			if t, err := time.Parse(layout, m[1]+" "+m[2]+" "+m[3]); err == nil {
				return t.Format(event.DateLayout)
			}
		}
	}
	return fallback
}

func formatDate(year, month, day, fallback string) string {
	y, _ := strconv.Atoi(year)
	m, _ := strconv.Atoi(month)
	d, _ := strconv.Atoi(day)
	s := fmt.Sprintf("%04d-%02d-%02d", y, m, d)
	if _, err := time.Parse(event.DateLayout, s); err != nil {
		return fallback
	}
	return s
}

// ParseTime extracts a 24-hour HH:MM start time from labels like "22:00",
// "10pm", "10.30pm" or "23:00 - 06:00". Unparseable input returns the club default.
func ParseTime(text string) string {
	m := clockTime.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return event.ClubTime
	}

	hours, err := strconv.Atoi(m[1])
	if err != nil {
		return event.ClubTime
	}
	minutes := 0
	if m[2] != "" {
		if minutes, err = strconv.Atoi(m[2]); err != nil || minutes > 59 {
			return event.ClubTime
		}
	}

	switch strings.ToLower(m[3]) {
	case "pm":
		if hours < 12 {
			hours += 12
		}
	case "am":
		if hours == 12 {
			hours = 0
		}
	}

	if hours > 23 {
		return event.ClubTime
	}
	return fmt.Sprintf("%02d:%02d", hours, minutes)
}
