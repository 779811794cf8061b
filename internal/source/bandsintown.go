package source

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/pfrederiksen/music-events/internal/event"
	"github.com/pfrederiksen/music-events/internal/genre"
	"github.com/pfrederiksen/music-events/internal/logger"
)

const (
	BandsintownName     = "bandsintown"
	BandsintownBaseURL  = "https://rest.bandsintown.com"
	BandsintownAppID    = "music-event-finder"
	bandsintownTimeout  = 8 * time.Second
	bandsintownImage    = "https://images.unsplash.com/photo-1459749411175-04bf5292ceea?w=300&h=200&fit=crop"
	defaultArtistRate   = 5
	defaultArtistWorker = 4
)

// Bandsintown looks up upcoming shows for a curated roster of artists per genre.
// The API only searches by artist, so one query fans out into one request per
// candidate artist.
type Bandsintown struct {
	AppID       string
	BaseURL     string
	HTTPClient  *http.Client
	RatePerSec  float64 // artist lookups per second within one search
	Concurrency int     // parallel artist lookups within one search
	log         *logger.Logger
}

// NewBandsintown creates a Bandsintown adapter. An empty app id falls back to
// the public default, so this adapter never short-circuits for credentials.
func NewBandsintown(appID string) *Bandsintown {
	if appID == "" {
		appID = BandsintownAppID
	}
	return &Bandsintown{
		AppID:       appID,
		BaseURL:     BandsintownBaseURL,
		HTTPClient:  NewHTTPClient(bandsintownTimeout),
		RatePerSec:  defaultArtistRate,
		Concurrency: defaultArtistWorker,
		log:         logger.With(logger.Fields{"source": BandsintownName}),
	}
}

func (b *Bandsintown) Name() string { return BandsintownName }

func (b *Bandsintown) RequiresCredential() bool { return false }

func (b *Bandsintown) HasCredential() bool { return b.AppID != "" }

type bitVenue struct {
	Name    string `json:"name"`
	City    string `json:"city"`
	Country string `json:"country"`
	Region  string `json:"region"`
}

type bitEvent struct {
	ID              flexString `json:"id"`
	Title           string     `json:"title"`
	Datetime        string     `json:"datetime"`
	URL             string     `json:"url"`
	FacebookRSVPURL string     `json:"facebook_rsvp_url"`
	ArtistImageURL  string     `json:"artist_image_url"`
	Lineup          []string   `json:"lineup"`
	Venue           *bitVenue  `json:"venue"`
}

// SearchEvents queries every roster artist for the genre and merges their shows
// in the query's location on the query date.
func (b *Bandsintown) SearchEvents(ctx context.Context, q event.Query) ([]*event.Event, error) {
	artists := genre.Roster(q.Genre)
	if len(artists) == 0 {
		b.log.Info("no known artists for genre", logger.Fields{"genre": q.Genre})
		return nil, nil
	}

	every := rate.Inf
	if b.RatePerSec > 0 {
		every = rate.Limit(b.RatePerSec)
	}
	limiter := rate.NewLimiter(every, 1)

	results := SettleAll(ctx, len(artists), b.Concurrency, func(ctx context.Context, i int) ([]*event.Event, error) {
		if err := limiter.Wait(ctx); err != nil {
			return nil, err
		}
		return b.searchArtist(ctx, artists[i], q)
	})

	var all []*event.Event
	for i, r := range results {
		if r.Err != nil {
			b.log.Warn("artist search failed", logger.Fields{"artist": artists[i], "error": r.Err.Error()})
			continue
		}
		all = append(all, r.Value...)
	}

	events := Limit(Dedup(all), MaxResults)
	b.log.Info("search complete", logger.Fields{"count": len(events), "artists": len(artists)})
	return events, nil
}

// searchArtist fetches one artist's events. A 404 means the artist is unknown
// to Bandsintown and is not an error.
func (b *Bandsintown) searchArtist(ctx context.Context, artist string, q event.Query) ([]*event.Event, error) {
	params := url.Values{}
	params.Set("app_id", b.AppID)
	params.Set("date", q.Date+","+q.Date)

	reqURL := fmt.Sprintf("%s/artists/%s/events?%s", strings.TrimRight(b.BaseURL, "/"), url.PathEscape(artist), params.Encode())

	var raw json.RawMessage
	if err := getJSON(ctx, b.HTTPClient, reqURL, nil, &raw); err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, err
	}

	// An unknown artist can also come back as a 200 with an error object.
	if trimmed := bytes.TrimSpace(raw); len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, nil
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parsing events: %w", err)
	}

	events := make([]*event.Event, 0, len(items))
	for _, item := range items {
		var bit bitEvent
		if err := json.Unmarshal(item, &bit); err != nil {
			b.log.Debug("skipping malformed event", logger.Fields{"artist": artist, "error": err.Error()})
			continue
		}
		if !matchesLocation(bit.Venue, q.Location) {
			continue
		}
		events = append(events, formatBandsintown(&bit, item, artist, q))
	}
	return events, nil
}

// matchesLocation reports whether the venue's city, country or region contains
// the search location. Events without a venue are kept.
func matchesLocation(v *bitVenue, location string) bool {
	loc := strings.ToLower(strings.TrimSpace(location))
	if v == nil || loc == "" {
		return true
	}
	for _, field := range []string{v.City, v.Country, v.Region} {
		if field != "" && strings.Contains(strings.ToLower(field), loc) {
			return true
		}
	}
	return false
}

func formatBandsintown(bit *bitEvent, raw json.RawMessage, artist string, q event.Query) *event.Event {
	venue := event.UnknownVenue
	location := event.UnknownLocation
	if bit.Venue != nil {
		venue = event.FirstNonEmpty(bit.Venue.Name, event.UnknownVenue)
		location = joinLocation(bit.Venue.City, bit.Venue.Country)
	}

	date, clock := event.SplitDateTime(bit.Datetime, q.Date, event.DefaultTime)

	lineup := artist
	if len(bit.Lineup) > 0 {
		lineup = strings.Join(bit.Lineup, ", ")
	}

	return &event.Event{
		ID:        event.NewID("bit", string(bit.ID)),
		Title:     event.FirstNonEmpty(bit.Title, artist+" Concert"),
		Artist:    lineup,
		Venue:     venue,
		Location:  location,
		Date:      date,
		Time:      clock,
		Price:     "See Bandsintown",
		Genre:     genre.ForArtist(artist),
		Source:    "Bandsintown",
		TicketURL: event.FirstNonEmpty(bit.URL, bit.FacebookRSVPURL, "#"),
		ImageURL:  event.FirstNonEmpty(bit.ArtistImageURL, bandsintownImage),
		RawData:   raw,
	}
}
