package scraper

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/pfrederiksen/music-events/internal/event"
	"github.com/pfrederiksen/music-events/internal/genre"
	"github.com/pfrederiksen/music-events/internal/logger"
	"github.com/pfrederiksen/music-events/internal/metrics"
)

const (
	Name          = "scraped"
	BaseURL       = "https://ra.co"
	MobileBaseURL = "https://m.ra.co"
	Timeout       = 20 * time.Second
	MaxRedirects  = 5

	SourceLabel     = "Resident Advisor"
	MockSourceLabel = "Resident Advisor (Mock)"
)

// DelayFunc pauses for a random duration in [lo, hi], returning early with
// the context's error if it is cancelled.
type DelayFunc func(ctx context.Context, lo, hi time.Duration) error

// RandomDelay sleeps a uniformly random duration in [lo, hi].
func RandomDelay(ctx context.Context, lo, hi time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d := lo
	if hi > lo {
		d += rand.N(hi - lo + 1)
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// NoDelay skips human-like pauses. Used in tests and when SCRAPER_DELAY is off.
func NoDelay(ctx context.Context, _, _ time.Duration) error {
	return ctx.Err()
}

// Scraper fetches Resident Advisor listings.
type Scraper struct {
	BaseURL       string
	MobileBaseURL string
	Delay         DelayFunc
	client        *http.Client
	log           *logger.Logger
}

// New creates a Scraper pointed at the live RA site.
func New() *Scraper {
	return &Scraper{
		BaseURL:       BaseURL,
		MobileBaseURL: MobileBaseURL,
		Delay:         RandomDelay,
		client: &http.Client{
			Timeout: Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= MaxRedirects {
					return fmt.Errorf("stopped after %d redirects", MaxRedirects)
				}
				return nil
			},
		},
		log: logger.With(logger.Fields{"source": Name}),
	}
}

func (s *Scraper) Name() string { return Name }

// session returns a client with its own cookie jar. Cookies set while warming
// up carry over to later strategies of one search but never across searches.
func (s *Scraper) session() *http.Client {
	jar, _ := cookiejar.New(nil) // never fails with nil options
	c := *s.client
	c.Jar = jar
	return &c
}

// SearchEvents scrapes RA for the query's city and filters the listings by genre.
// Unsupported locations return nothing without touching the network. If no
// strategy yields listings, mock events are returned.
func (s *Scraper) SearchEvents(ctx context.Context, q event.Query) ([]*event.Event, error) {
	area := AreaCode(q.Location)
	if area == "" {
		s.log.Warn("unsupported location", logger.Fields{"location": q.Location})
		return nil, nil
	}

	client := s.session()
	for _, st := range s.strategies() {
		res := st.run(ctx, client, area, q)
		metrics.ScraperStrategies.WithLabelValues(st.name, string(res.outcome)).Inc()

		if res.outcome != outcomeMatched {
			fields := logger.Fields{"strategy": st.name, "outcome": string(res.outcome)}
			if res.err != nil {
				fields["error"] = res.err.Error()
			}
			s.log.Warn("strategy failed", fields)

			// A cancelled search will not succeed with the next strategy either.
			if errors.Is(res.err, context.Canceled) || errors.Is(res.err, context.DeadlineExceeded) {
				break
			}
			continue
		}

		filtered := make([]*event.Event, 0, len(res.events))
		for _, evt := range res.events {
			if genre.Matches(q.Genre, evt.Title, evt.Artist, evt.Venue) {
				filtered = append(filtered, evt)
			}
		}
		s.log.Info("strategy matched", logger.Fields{
			"strategy": st.name,
			"parsed":   len(res.events),
			"matched":  len(filtered),
		})
		return filtered, nil
	}

	s.log.Warn("all strategies failed, returning mock events", logger.Fields{"location": q.Location})
	return MockEvents(q), nil
}
