package scraper

import (
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/music-events/internal/event"
	"github.com/pfrederiksen/music-events/internal/logger"
)

const (
	maxElements = 20
	eventImage  = "https://images.unsplash.com/photo-1571266028243-d220c9c4e21f?w=300&h=200&fit=crop"
	eventGenre  = "Electronic"
	eventPrice  = "See RA"
)

// eventSelectors are tried in order; the first one that matches any element wins.
var eventSelectors = []string{
	"article[data-event-id]",
	".event-item",
	`[data-testid="event"]`,
	".ra-event",
	"article",
	".Event",
}

// Sub-field selectors, each tried in order until one has text.
var (
	titleSelectors  = []string{"h3 a", ".event-title", `[data-testid="event-title"]`}
	lineupSelectors = []string{".event-lineup", ".artists", `[data-testid="lineup"]`}
	venueSelectors  = []string{".event-venue", ".venue", `[data-testid="venue"]`}
)

const (
	dateSelector  = `.event-date, .date, [data-testid="date"]`
	timeSelector  = `.event-time, .time, [data-testid="time"]`
	priceSelector = `.event-price, .price, [data-testid="price"]`
)

// parseEvents extracts event cards from an RA listing page.
func (s *Scraper) parseEvents(r io.Reader, q event.Query) ([]*event.Event, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	var cards *goquery.Selection
	for _, sel := range eventSelectors {
		if found := doc.Find(sel); found.Length() > 0 {
			cards = found
			break
		}
	}
	if cards == nil {
		s.log.Debug("no event elements found", logger.Fields{
			"title":       strings.TrimSpace(doc.Find("title").Text()),
			"event_links": doc.Find(`a[href*="/events/"]`).Length(),
		})
		return nil, nil
	}

	base, err := url.Parse(s.BaseURL)
	if err != nil {
		base, _ = url.Parse(BaseURL)
	}
	events := make([]*event.Event, 0, min(cards.Length(), maxElements))
	cards.EachWithBreak(func(i int, card *goquery.Selection) bool {
		if i >= maxElements {
			return false
		}
		events = append(events, parseCard(card, base, q))
		return true
	})
	return events, nil
}

func parseCard(card *goquery.Selection, base *url.URL, q event.Query) *event.Event {
	date := q.Date
	if el := card.Find(dateSelector); el.Length() > 0 {
		date = ParseDate(el.Text(), q.Date)
	}

	clock := event.ClubTime
	if el := card.Find(timeSelector); el.Length() > 0 {
		clock = ParseTime(el.Text())
	}

	price := eventPrice
	if el := card.Find(priceSelector); el.Length() > 0 {
		price = event.FirstNonEmpty(el.Text(), eventPrice)
	}

	ticketURL := base.String()
	if href, ok := card.Find("a").First().Attr("href"); ok && strings.TrimSpace(href) != "" {
		ticketURL = resolve(base, href)
	}

	image := eventImage
	if img := card.Find("img").First(); img.Length() > 0 {
		src := img.AttrOr("src", "")
		if src == "" {
			src = img.AttrOr("data-src", "")
		}
		if src != "" && !strings.HasPrefix(src, "data:") {
			image = resolve(base, src)
		}
	}

	html, _ := card.Html()

	return &event.Event{
		ID:        event.NewID("ra", card.AttrOr("data-event-id", "")),
		Title:     firstText(card, titleSelectors, "RA Event"),
		Artist:    firstText(card, lineupSelectors, event.VariousArtists),
		Venue:     firstText(card, venueSelectors, event.UnknownVenue),
		Location:  q.Location,
		Date:      date,
		Time:      clock,
		Price:     price,
		Genre:     eventGenre,
		Source:    SourceLabel,
		TicketURL: ticketURL,
		ImageURL:  image,
		RawData: map[string]string{
			"html": html,
			"text": strings.TrimSpace(card.Text()),
		},
	}
}

// firstText returns the trimmed text of the first selector that has any.
func firstText(card *goquery.Selection, selectors []string, fallback string) string {
	for _, sel := range selectors {
		if text := strings.TrimSpace(card.Find(sel).Text()); text != "" {
			return text
		}
	}
	return fallback
}

// resolve makes ref absolute against base, returning ref unchanged if it cannot be parsed.
func resolve(base *url.URL, ref string) string {
	ref = strings.TrimSpace(ref)
	u, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return base.ResolveReference(u).String()
}
