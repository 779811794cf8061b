package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pfrederiksen/music-events/internal/event"
	"github.com/pfrederiksen/music-events/internal/genre"
	"github.com/pfrederiksen/music-events/internal/logger"
)

const (
	TicketmasterName    = "ticketmaster"
	TicketmasterBaseURL = "https://app.ticketmaster.com/discovery/v2"
	ticketmasterTimeout = 10 * time.Second
	ticketmasterImage   = "https://images.unsplash.com/photo-1470225620780-dba8ba36b745?w=300&h=200&fit=crop"
)

// Ticketmaster searches the Ticketmaster Discovery API.
type Ticketmaster struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	log        *logger.Logger
}

// NewTicketmaster creates a Ticketmaster adapter. An empty key disables it.
func NewTicketmaster(apiKey string) *Ticketmaster {
	return &Ticketmaster{
		APIKey:     apiKey,
		BaseURL:    TicketmasterBaseURL,
		HTTPClient: NewHTTPClient(ticketmasterTimeout),
		log:        logger.With(logger.Fields{"source": TicketmasterName}),
	}
}

func (t *Ticketmaster) Name() string { return TicketmasterName }

func (t *Ticketmaster) RequiresCredential() bool { return true }

func (t *Ticketmaster) HasCredential() bool { return t.APIKey != "" }

type tmNamed struct {
	Name string `json:"name"`
}

type tmVenue struct {
	Name    string  `json:"name"`
	City    tmNamed `json:"city"`
	Country tmNamed `json:"country"`
}

type tmEvent struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	URL   string `json:"url"`
	Dates struct {
		Start struct {
			LocalDate string `json:"localDate"`
			LocalTime string `json:"localTime"`
		} `json:"start"`
	} `json:"dates"`
	PriceRanges []struct {
		Currency string  `json:"currency"`
		Min      float64 `json:"min"`
		Max      float64 `json:"max"`
	} `json:"priceRanges"`
	Classifications []struct {
		Genre   *tmNamed `json:"genre"`
		Segment *tmNamed `json:"segment"`
	} `json:"classifications"`
	Images []struct {
		URL   string `json:"url"`
		Width int    `json:"width"`
	} `json:"images"`
	Embedded struct {
		Venues      []tmVenue `json:"venues"`
		Attractions []tmNamed `json:"attractions"`
	} `json:"_embedded"`
}

type tmResponse struct {
	Embedded struct {
		Events []json.RawMessage `json:"events"`
	} `json:"_embedded"`
}

// SearchEvents returns Ticketmaster events for the query's city and day.
func (t *Ticketmaster) SearchEvents(ctx context.Context, q event.Query) ([]*event.Event, error) {
	if t.APIKey == "" {
		t.log.Warn("API key not configured, skipping", nil)
		return nil, nil
	}

	events, err := t.search(ctx, q)
	if err != nil {
		t.log.Error("search failed", logger.Fields{"genre": q.Genre, "location": q.Location}, err)
		return nil, nil
	}
	if len(events) == 0 {
		t.log.Info("no events found", logger.Fields{"genre": q.Genre, "location": q.Location})
		return nil, nil
	}

	t.log.Info("search complete", logger.Fields{"count": len(events)})
	return events, nil
}

func (t *Ticketmaster) search(ctx context.Context, q event.Query) ([]*event.Event, error) {
	params := url.Values{}
	params.Set("apikey", t.APIKey)
	params.Set("keyword", q.Genre)
	params.Set("city", q.Location)
	params.Set("startDateTime", q.Date+"T00:00:00Z")
	params.Set("endDateTime", q.Date+"T23:59:59Z")
	params.Set("size", "50")
	params.Set("sort", "relevance,desc")
	if id := genre.Classification(q.Genre); id != "" {
		params.Set("classificationId", id)
	}

	reqURL := fmt.Sprintf("%s/events.json?%s", strings.TrimRight(t.BaseURL, "/"), params.Encode())

	var resp tmResponse
	if err := getJSON(ctx, t.HTTPClient, reqURL, nil, &resp); err != nil {
		return nil, err
	}

	events := make([]*event.Event, 0, len(resp.Embedded.Events))
	for _, raw := range resp.Embedded.Events {
		var tm tmEvent
		if err := json.Unmarshal(raw, &tm); err != nil {
			t.log.Warn("skipping malformed event", logger.Fields{"error": err.Error()})
			continue
		}
		events = append(events, t.formatEvent(&tm, raw, q))
	}

	return Limit(events, MaxResults), nil
}

func (t *Ticketmaster) formatEvent(tm *tmEvent, raw json.RawMessage, q event.Query) *event.Event {
	venue := event.UnknownVenue
	location := event.UnknownLocation
	if len(tm.Embedded.Venues) > 0 {
		v := tm.Embedded.Venues[0]
		venue = event.FirstNonEmpty(v.Name, event.UnknownVenue)
		if v.City.Name != "" && v.Country.Name != "" {
			location = v.City.Name + ", " + v.Country.Name
		}
	}

	price := "Price TBA"
	if len(tm.PriceRanges) > 0 {
		pr := tm.PriceRanges[0]
		sym := CurrencySymbol(pr.Currency)
		switch {
		case pr.Min > 0 && pr.Max > 0:
			price = fmt.Sprintf("%s%s - %s%s", sym, formatAmount(pr.Min), sym, formatAmount(pr.Max))
		case pr.Min > 0:
			price = fmt.Sprintf("From %s%s", sym, formatAmount(pr.Min))
		}
	}

	date := event.FirstNonEmpty(tm.Dates.Start.LocalDate, q.Date)
	clock := event.DefaultTime
	if lt := tm.Dates.Start.LocalTime; len(lt) >= 5 {
		clock = lt[:5]
	}

	eventGenre := event.DefaultGenre
	if len(tm.Classifications) > 0 {
		c := tm.Classifications[0]
		switch {
		case c.Genre != nil && c.Genre.Name != "":
			eventGenre = c.Genre.Name
		case c.Segment != nil && c.Segment.Name != "":
			eventGenre = c.Segment.Name
		}
	}

	artist := tm.Name
	if len(tm.Embedded.Attractions) > 0 {
		names := make([]string, 0, len(tm.Embedded.Attractions))
		for _, a := range tm.Embedded.Attractions {
			if a.Name != "" {
				names = append(names, a.Name)
			}
		}
		if len(names) > 0 {
			artist = strings.Join(names, ", ")
		}
	}

	image := ticketmasterImage
	if len(tm.Images) > 0 {
		image = tm.Images[0].URL
		for _, img := range tm.Images {
			if img.Width >= 300 {
				image = img.URL
				break
			}
		}
	}

	return &event.Event{
		ID:        event.NewID("tm", tm.ID),
		Title:     event.FirstNonEmpty(tm.Name, "Ticketmaster Event"),
		Artist:    event.FirstNonEmpty(artist, event.VariousArtists),
		Venue:     venue,
		Location:  location,
		Date:      date,
		Time:      clock,
		Price:     price,
		Genre:     eventGenre,
		Source:    "Ticketmaster",
		TicketURL: tm.URL,
		ImageURL:  event.FirstNonEmpty(image, ticketmasterImage),
		RawData:   raw,
	}
}
