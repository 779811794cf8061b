package config

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/music-events/internal/event"
	"github.com/pfrederiksen/music-events/internal/scraper"
	"github.com/pfrederiksen/music-events/internal/source"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "LOG_LEVEL", "SOURCE_TIMEOUT", "BANDSINTOWN_APP_ID", "SCRAPER_DELAY", "TICKETMASTER_API_KEY"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != 5000 || cfg.Addr() != ":5000" {
		t.Errorf("Port = %d, want 5000", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.SourceTimeout != 25*time.Second {
		t.Errorf("SourceTimeout = %v, want 25s", cfg.SourceTimeout)
	}
	if cfg.BandsintownAppID != source.BandsintownAppID {
		t.Errorf("BandsintownAppID = %q", cfg.BandsintownAppID)
	}
	if cfg.BandsintownRatePerSecond != 5 || cfg.BandsintownConcurrency != 4 {
		t.Errorf("bandsintown pacing = %v/%d, want 5/4", cfg.BandsintownRatePerSecond, cfg.BandsintownConcurrency)
	}
	if !cfg.ScraperDelay {
		t.Error("ScraperDelay should default to true")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("SOURCE_TIMEOUT", "3s")
	t.Setenv("SCRAPER_DELAY", "false")
	t.Setenv("TICKETMASTER_API_KEY", "tm-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Port != 8081 || cfg.SourceTimeout != 3*time.Second || cfg.ScraperDelay {
		t.Errorf("cfg = %+v", cfg)
	}
	if cfg.TicketmasterAPIKey != "tm-key" {
		t.Errorf("TicketmasterAPIKey = %q", cfg.TicketmasterAPIKey)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]string{
		"PORT":           "not-a-number",
		"SOURCE_TIMEOUT": "forever",
	}
	for k, v := range tests {
		t.Run(k, func(t *testing.T) {
			t.Setenv(k, v)
			if _, err := Load(); err == nil {
				t.Errorf("Load() with %s=%q should fail", k, v)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"ok", Config{Port: 5000}, false},
		{"port zero", Config{Port: 0}, true},
		{"port too big", Config{Port: 70000}, true},
		{"negative rate", Config{Port: 5000, BandsintownRatePerSecond: -1}, true},
		{"negative concurrency", Config{Port: 5000, BandsintownConcurrency: -2}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRegistry_Order(t *testing.T) {
	cfg := &Config{Port: 5000, ScraperDelay: true}
	reg, err := cfg.Registry()
	if err != nil {
		t.Fatalf("Registry() error: %v", err)
	}

	want := []string{source.BandsintownName, source.TicketmasterName, source.EventbriteName, scraper.Name}
	got := reg.Names()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestAggregator_UsesOverrides(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/events.json") {
			w.Write([]byte(`{"_embedded":{"events":[{"id":"1","name":"Override Show","dates":{"start":{"localDate":"2025-06-01"}}}]}}`))
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	cfg := &Config{
		Port:                5000,
		TicketmasterAPIKey:  "k",
		TicketmasterBaseURL: server.URL,
		SourceTimeout:       2 * time.Second,
	}
	agg, err := cfg.Aggregator()
	if err != nil {
		t.Fatalf("Aggregator() error: %v", err)
	}

	events, err := agg.GetEventsByPlatform(context.Background(), "ticketmaster", event.Query{Location: "London", Genre: "techno", Date: "2025-06-01"})
	if err != nil {
		t.Fatalf("GetEventsByPlatform() error: %v", err)
	}
	if len(events) != 1 || events[0].Title != "Override Show" {
		t.Errorf("events = %v, want the override server's event", events)
	}
}

func TestScorer_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "synonyms.yaml")
	if err := os.WriteFile(path, []byte("synonyms:\n  garage: [ukg]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := &Config{GenreSynonymsFile: path}
	scorer, err := cfg.Scorer()
	if err != nil {
		t.Fatalf("Scorer() error: %v", err)
	}
	if got := scorer.Score("ukg", "garage"); got != 50 {
		t.Errorf("Score(ukg, garage) = %d, want 50", got)
	}

	cfg.GenreSynonymsFile = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := cfg.Scorer(); err == nil {
		t.Error("Scorer() with missing file should fail")
	}
}
