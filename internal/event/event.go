package event

import (
	"strings"

	"github.com/google/uuid"
)

const (
	// DefaultTime is used when a concert listing carries no start time.
	DefaultTime = "20:00"
	// ClubTime is the default start time for club-night sources.
	ClubTime = "22:00"

	UnknownVenue    = "Unknown Venue"
	UnknownLocation = "Unknown Location"
	VariousArtists  = "Various Artists"
	DefaultGenre    = "Music"
)

// Event represents a single live-music listing from one source.
// Events are built once during normalization and not modified afterwards.
type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Artist      string `json:"artist"`
	Venue       string `json:"venue"`
	Location    string `json:"location"`
	Date        string `json:"date"` // YYYY-MM-DD
	Time        string `json:"time"` // HH:MM, 24-hour
	Price       string `json:"price"`
	Genre       string `json:"genre"`
	Source      string `json:"source"`
	TicketURL   string `json:"ticketUrl"`
	ImageURL    string `json:"imageUrl"`
	Description string `json:"description,omitempty"`
	RawData     any    `json:"rawData,omitempty"` // original payload, diagnostics only
}

// Key returns the dedup key: lowercase title, venue and date.
func (e *Event) Key() string {
	return strings.ToLower(e.Title + "|" + e.Venue + "|" + e.Date)
}

// NewID builds "<prefix>_<sourceID>", substituting a random UUID when the source
// did not supply an id.
func NewID(prefix, sourceID string) string {
	sourceID = strings.TrimSpace(sourceID)
	if sourceID == "" {
		sourceID = uuid.NewString()
	}
	return prefix + "_" + sourceID
}

// FirstNonEmpty returns the first value that is not blank after trimming.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if s := strings.TrimSpace(v); s != "" {
			return s
		}
	}
	return ""
}
