package config

import (
	"fmt"

	"github.com/pfrederiksen/music-events/internal/aggregator"
	"github.com/pfrederiksen/music-events/internal/genre"
	"github.com/pfrederiksen/music-events/internal/scraper"
	"github.com/pfrederiksen/music-events/internal/source"
)

// Registry builds the sources in their fixed registration order: Bandsintown,
// Ticketmaster, Eventbrite, then the RA scraper. Earlier sources win dedup ties.
//
// Sources capture the default logger when built, so logger.SetDefault must be
// called first.
func (c *Config) Registry() (*source.Registry, error) {
	bit := source.NewBandsintown(c.BandsintownAppID)
	bit.RatePerSec = c.BandsintownRatePerSecond
	bit.Concurrency = c.BandsintownConcurrency
	if c.BandsintownBaseURL != "" {
		bit.BaseURL = c.BandsintownBaseURL
	}

	tm := source.NewTicketmaster(c.TicketmasterAPIKey)
	if c.TicketmasterBaseURL != "" {
		tm.BaseURL = c.TicketmasterBaseURL
	}

	eb := source.NewEventbrite(c.EventbriteAPIKey)
	if c.EventbriteBaseURL != "" {
		eb.BaseURL = c.EventbriteBaseURL
	}

	ra := scraper.New()
	if c.RABaseURL != "" {
		ra.BaseURL = c.RABaseURL
	}
	if c.RAMobileBaseURL != "" {
		ra.MobileBaseURL = c.RAMobileBaseURL
	}
	if !c.ScraperDelay {
		ra.Delay = scraper.NoDelay
	}

	return source.NewRegistry(bit, tm, eb, ra)
}

// Scorer returns the genre scorer, extended from GENRE_SYNONYMS_FILE when set.
func (c *Config) Scorer() (*genre.Scorer, error) {
	if c.GenreSynonymsFile == "" {
		return genre.DefaultScorer, nil
	}
	return genre.LoadSynonyms(c.GenreSynonymsFile)
}

// Aggregator wires the registry and scorer into an Aggregator.
func (c *Config) Aggregator() (*aggregator.Aggregator, error) {
	reg, err := c.Registry()
	if err != nil {
		return nil, fmt.Errorf("building sources: %w", err)
	}
	scorer, err := c.Scorer()
	if err != nil {
		return nil, fmt.Errorf("loading genre synonyms: %w", err)
	}
	return aggregator.New(reg, aggregator.WithScorer(scorer), aggregator.WithTimeout(c.SourceTimeout)), nil
}
