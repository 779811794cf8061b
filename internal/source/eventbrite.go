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
	EventbriteName    = "eventbrite"
	EventbriteBaseURL = "https://www.eventbriteapi.com/v3"
	eventbriteTimeout = 10 * time.Second
	eventbriteImage   = "https://images.unsplash.com/photo-1459749411175-04bf5292ceea?w=300&h=200&fit=crop"

	// Eventbrite's top-level Music category.
	eventbriteMusicCategory = "103"
	eventbriteExpand        = "venue,organizer,format,category,subcategory,bookmark_info,refund_policy,ticket_availability,logo"
	descriptionLimit        = 200
)

// Eventbrite searches the Eventbrite v3 API.
type Eventbrite struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
	log        *logger.Logger
}

// NewEventbrite creates an Eventbrite adapter. An empty key disables it.
func NewEventbrite(apiKey string) *Eventbrite {
	return &Eventbrite{
		APIKey:     apiKey,
		BaseURL:    EventbriteBaseURL,
		HTTPClient: NewHTTPClient(eventbriteTimeout),
		log:        logger.With(logger.Fields{"source": EventbriteName}),
	}
}

func (e *Eventbrite) Name() string { return EventbriteName }

func (e *Eventbrite) RequiresCredential() bool { return true }

func (e *Eventbrite) HasCredential() bool { return e.APIKey != "" }

type ebText struct {
	Text string `json:"text"`
}

type ebEvent struct {
	ID          flexString `json:"id"`
	Name        ebText     `json:"name"`
	Description ebText     `json:"description"`
	Summary     string     `json:"summary"`
	URL         string     `json:"url"`
	IsFree      *bool      `json:"is_free"`
	Start       struct {
		Local string `json:"local"`
	} `json:"start"`
	Venue *struct {
		Name    string `json:"name"`
		Address *struct {
			City    string `json:"city"`
			Country string `json:"country"`
		} `json:"address"`
	} `json:"venue"`
	Organizer *struct {
		Name string `json:"name"`
	} `json:"organizer"`
	Category *struct {
		Name string `json:"name"`
	} `json:"category"`
	Subcategory *struct {
		Name string `json:"name"`
	} `json:"subcategory"`
	Logo *struct {
		Original struct {
			URL string `json:"url"`
		} `json:"original"`
	} `json:"logo"`
	TicketAvailability *struct {
		MinimumTicketPrice *struct {
			Currency string  `json:"currency"`
			Value    float64 `json:"value"` // minor units
		} `json:"minimum_ticket_price"`
	} `json:"ticket_availability"`
}

type ebResponse struct {
	Events []json.RawMessage `json:"events"`
}

// SearchEvents returns Eventbrite music events matching the query genre.
func (e *Eventbrite) SearchEvents(ctx context.Context, q event.Query) ([]*event.Event, error) {
	if e.APIKey == "" {
		e.log.Warn("API key not configured, skipping", nil)
		return nil, nil
	}

	events, err := e.search(ctx, q)
	if err != nil {
		e.log.Error("search failed", logger.Fields{"genre": q.Genre, "location": q.Location}, err)
		return nil, nil
	}
	if len(events) == 0 {
		e.log.Info("no events found", logger.Fields{"genre": q.Genre, "location": q.Location})
		return nil, nil
	}

	e.log.Info("search complete", logger.Fields{"count": len(events)})
	return events, nil
}

func (e *Eventbrite) search(ctx context.Context, q event.Query) ([]*event.Event, error) {
	params := url.Values{}
	params.Set("q", genre.SearchQuery(q.Genre))
	params.Set("location.address", q.Location)
	params.Set("start_date.range_start", q.Date+"T00:00:00")
	params.Set("start_date.range_end", q.Date+"T23:59:59")
	params.Set("categories", eventbriteMusicCategory)
	params.Set("sort_by", "relevance")
	params.Set("expand", eventbriteExpand)
	params.Set("page_size", "50")

	reqURL := fmt.Sprintf("%s/events/search/?%s", strings.TrimRight(e.BaseURL, "/"), params.Encode())
	header := http.Header{}
	header.Set("Authorization", "Bearer "+e.APIKey)

	var resp ebResponse
	if err := getJSON(ctx, e.HTTPClient, reqURL, header, &resp); err != nil {
		return nil, err
	}

	events := make([]*event.Event, 0, len(resp.Events))
	for _, raw := range resp.Events {
		var eb ebEvent
		if err := json.Unmarshal(raw, &eb); err != nil {
			e.log.Warn("skipping malformed event", logger.Fields{"error": err.Error()})
			continue
		}
		if !genre.Matches(q.Genre, eb.Name.Text, eb.Description.Text, eb.Summary) {
			continue
		}
		events = append(events, e.formatEvent(&eb, raw, q))
	}

	return Limit(events, MaxResults), nil
}

func (e *Eventbrite) formatEvent(eb *ebEvent, raw json.RawMessage, q event.Query) *event.Event {
	venue := "Online Event"
	location := "Online"
	if eb.Venue != nil {
		venue = event.FirstNonEmpty(eb.Venue.Name, event.UnknownVenue)
		if addr := eb.Venue.Address; addr != nil {
			location = joinLocation(addr.City, addr.Country)
		}
	}

	date, clock := event.SplitDateTime(eb.Start.Local, q.Date, event.DefaultTime)

	price := "Free"
	if ta := eb.TicketAvailability; ta != nil && ta.MinimumTicketPrice != nil {
		mp := ta.MinimumTicketPrice
		price = fmt.Sprintf("From %s%.2f", CurrencySymbol(mp.Currency), mp.Value/100)
	} else if eb.IsFree != nil && !*eb.IsFree {
		price = "Paid Event"
	}

	eventGenre := event.DefaultGenre
	switch {
	case eb.Category != nil && eb.Category.Name != "":
		eventGenre = eb.Category.Name
	case eb.Subcategory != nil && eb.Subcategory.Name != "":
		eventGenre = eb.Subcategory.Name
	}

	image := eventbriteImage
	if eb.Logo != nil && eb.Logo.Original.URL != "" {
		image = eb.Logo.Original.URL
	}

	artist := event.VariousArtists
	if eb.Organizer != nil && eb.Organizer.Name != "" {
		artist = eb.Organizer.Name
	}

	description := eb.Summary
	if description == "" && eb.Description.Text != "" {
		description = truncate(eb.Description.Text, descriptionLimit) + "..."
	}

	return &event.Event{
		ID:          event.NewID("eb", string(eb.ID)),
		Title:       event.FirstNonEmpty(eb.Name.Text, "Untitled Event"),
		Artist:      artist,
		Venue:       venue,
		Location:    location,
		Date:        date,
		Time:        clock,
		Price:       price,
		Genre:       eventGenre,
		Source:      "Eventbrite",
		TicketURL:   eb.URL,
		ImageURL:    image,
		Description: description,
		RawData:     raw,
	}
}

// joinLocation renders "city, country", dropping whichever part is empty.
func joinLocation(city, country string) string {
	city, country = strings.TrimSpace(city), strings.TrimSpace(country)
	switch {
	case city != "" && country != "":
		return city + ", " + country
	case city != "":
		return city
	case country != "":
		return country
	default:
		return event.UnknownLocation
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
