package source

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/pfrederiksen/music-events/internal/event"
	"github.com/pfrederiksen/music-events/internal/genre"
)

func newTestBandsintown(t *testing.T, handler http.HandlerFunc) *Bandsintown {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	b := NewBandsintown("")
	b.BaseURL = server.URL
	b.RatePerSec = 0 // unthrottled in tests
	return b
}

func TestBandsintown_SearchEvents(t *testing.T) {
	var calls int32
	b := newTestBandsintown(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		if got := r.URL.Query().Get("app_id"); got != BandsintownAppID {
			t.Errorf("app_id = %q, want default", got)
		}
		if got := r.URL.Query().Get("date"); got != "2025-06-01,2025-06-01" {
			t.Errorf("date = %q, want single-day range", got)
		}

		switch {
		case strings.HasSuffix(r.URL.Path, "/Carl%20Cox/events"), strings.HasSuffix(r.URL.Path, "/Carl Cox/events"):
			w.Write([]byte(`[
			  {"id": 7, "datetime": "2025-06-01T23:00:00", "url": "https://bit/7",
			   "lineup": ["Carl Cox", "Nicole Moudaber"],
			   "venue": {"name": "Printworks", "city": "London", "country": "United Kingdom"}},
			  {"id": 8, "datetime": "2025-06-01T22:00:00",
			   "venue": {"name": "Space", "city": "Ibiza", "country": "Spain"}}
			]`))
		case strings.HasSuffix(r.URL.Path, "/Ben%20Klock/events"), strings.HasSuffix(r.URL.Path, "/Ben Klock/events"):
			w.Write([]byte(`{"errorMessage": "[NotFound] The artist was not found"}`))
		case strings.HasSuffix(r.URL.Path, "/Jeff%20Mills/events"), strings.HasSuffix(r.URL.Path, "/Jeff Mills/events"):
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	})

	events, err := b.SearchEvents(context.Background(), londonTechno)
	if err != nil {
		t.Fatalf("SearchEvents() error: %v", err)
	}
	if int(calls) != len(genre.Roster("techno")) {
		t.Errorf("made %d requests, want one per roster artist (%d)", calls, len(genre.Roster("techno")))
	}
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1 (Ibiza show filtered)", len(events))
	}

	e := events[0]
	checks := map[string][2]string{
		"id":       {e.ID, "bit_7"},
		"title":    {e.Title, "Carl Cox Concert"},
		"artist":   {e.Artist, "Carl Cox, Nicole Moudaber"},
		"venue":    {e.Venue, "Printworks"},
		"location": {e.Location, "London, United Kingdom"},
		"time":     {e.Time, "23:00"},
		"price":    {e.Price, "See Bandsintown"},
		"genre":    {e.Genre, "Techno"},
		"source":   {e.Source, "Bandsintown"},
		"ticket":   {e.TicketURL, "https://bit/7"},
	}
	for field, c := range checks {
		if c[0] != c[1] {
			t.Errorf("%s = %q, want %q", field, c[0], c[1])
		}
	}
}

func TestBandsintown_UnknownGenreSkipsNetwork(t *testing.T) {
	var calls int32
	b := newTestBandsintown(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	})

	events, err := b.SearchEvents(context.Background(), event.Query{Location: "London", Genre: "shoegaze", Date: "2025-06-01"})
	if err != nil || len(events) != 0 {
		t.Errorf("SearchEvents() = %d events, %v; want empty, nil", len(events), err)
	}
	if calls != 0 {
		t.Errorf("made %d requests, want 0", calls)
	}
}

func TestBandsintown_Credentials(t *testing.T) {
	b := NewBandsintown("")
	if b.RequiresCredential() {
		t.Error("Bandsintown should not require a credential")
	}
	if b.AppID != BandsintownAppID {
		t.Errorf("AppID = %q, want default", b.AppID)
	}
}

func TestMatchesLocation(t *testing.T) {
	tests := []struct {
		name     string
		venue    *bitVenue
		location string
		want     bool
	}{
		{"nil venue", nil, "London", true},
		{"city", &bitVenue{City: "London"}, "london", true},
		{"country", &bitVenue{City: "Manchester", Country: "United Kingdom"}, "kingdom", true},
		{"region", &bitVenue{City: "Brooklyn", Region: "New York"}, "New York", true},
		{"miss", &bitVenue{City: "Berlin", Country: "Germany"}, "London", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := matchesLocation(tt.venue, tt.location); got != tt.want {
				t.Errorf("matchesLocation() = %v, want %v", got, tt.want)
			}
		})
	}
}
