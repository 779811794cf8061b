package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pfrederiksen/music-events/internal/aggregator"
	"github.com/pfrederiksen/music-events/internal/event"
)

type fakeSearcher struct {
	events []*event.Event
	err    error
	lastQ  event.Query
	lastP  string
}

func (f *fakeSearcher) SearchEvents(_ context.Context, q event.Query) ([]*event.Event, error) {
	f.lastQ = q
	return f.events, f.err
}

func (f *fakeSearcher) GetEventsByPlatform(_ context.Context, platform string, q event.Query) ([]*event.Event, error) {
	f.lastP, f.lastQ = platform, q
	if platform != "ticketmaster" {
		return nil, fmt.Errorf("%w: %s", aggregator.ErrUnknownPlatform, platform)
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	return f.events, f.err
}

func do(t *testing.T, s Searcher, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	NewRouter(s).ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decoding %q: %v", rec.Body.String(), err)
	}
}

func TestHealth(t *testing.T) {
	rec := do(t, &fakeSearcher{}, http.MethodGet, "/api/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	decode(t, rec, &body)
	if body["status"] != "OK" || body["timestamp"] == "" {
		t.Errorf("body = %v", body)
	}
}

func TestSearch(t *testing.T) {
	fs := &fakeSearcher{events: []*event.Event{{ID: "tm_1", Title: "Warehouse", Venue: "Fabric", Date: "2025-06-01", Source: "Ticketmaster"}}}

	rec := do(t, fs, http.MethodPost, "/api/events/search", `{"location":"London","genre":"techno","date":"2025-06-01"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	var resp SearchResponse
	decode(t, rec, &resp)
	if !resp.Success || resp.Count != 1 || resp.Events[0].ID != "tm_1" {
		t.Errorf("resp = %+v", resp)
	}
	if resp.SearchParams != fs.lastQ || fs.lastQ.Location != "London" {
		t.Errorf("searchParams = %+v, searched %+v", resp.SearchParams, fs.lastQ)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("CORS header = %q", got)
	}
}

func TestSearch_EmptyResultIsArray(t *testing.T) {
	rec := do(t, &fakeSearcher{}, http.MethodPost, "/api/events/search", `{"location":"London","genre":"techno","date":"2025-06-01"}`)
	if !strings.Contains(rec.Body.String(), `"events":[]`) {
		t.Errorf("body = %s, want empty events array", rec.Body.String())
	}
}

func TestSearch_BadRequests(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantMissing []string
	}{
		{"missing genre and date", `{"location":"London"}`, []string{"genre", "date"}},
		{"blank fields", `{"location":" ","genre":"techno","date":""}`, []string{"location", "date"}},
		{"empty body", "", []string{"location", "genre", "date"}},
		{"malformed JSON", `{"location":`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := &fakeSearcher{}
			rec := do(t, fs, http.MethodPost, "/api/events/search", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			var resp ErrorResponse
			decode(t, rec, &resp)
			if strings.Join(resp.Missing, ",") != strings.Join(tt.wantMissing, ",") {
				t.Errorf("missing = %v, want %v", resp.Missing, tt.wantMissing)
			}
			if tt.wantMissing != nil && len(resp.Required) != 3 {
				t.Errorf("required = %v, want all fields", resp.Required)
			}
			if fs.lastQ != (event.Query{}) {
				t.Error("searcher should not be called for a bad request")
			}
		})
	}
}

func TestSearch_InternalError(t *testing.T) {
	rec := do(t, &fakeSearcher{err: errors.New("boom")}, http.MethodPost, "/api/events/search", `{"location":"London","genre":"techno","date":"2025-06-01"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var resp ErrorResponse
	decode(t, rec, &resp)
	if resp.Error != "Failed to search events" || resp.Message != "boom" {
		t.Errorf("resp = %+v", resp)
	}
}

func TestPlatform(t *testing.T) {
	fs := &fakeSearcher{events: []*event.Event{{ID: "tm_1"}, {ID: "tm_2"}}}

	rec := do(t, fs, http.MethodGet, "/api/events/platform/ticketmaster?location=London&genre=techno&date=2025-06-01", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	var resp PlatformResponse
	decode(t, rec, &resp)
	if !resp.Success || resp.Platform != "ticketmaster" || resp.Count != 2 {
		t.Errorf("resp = %+v", resp)
	}
	if fs.lastQ.Genre != "techno" || fs.lastQ.Date != "2025-06-01" {
		t.Errorf("query = %+v", fs.lastQ)
	}
}

func TestPlatform_Unknown(t *testing.T) {
	rec := do(t, &fakeSearcher{}, http.MethodGet, "/api/events/platform/myspace?location=London&genre=techno&date=2025-06-01", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", rec.Code)
	}
	var resp ErrorResponse
	decode(t, rec, &resp)
	if resp.Error != "Failed to get events from myspace" || !strings.Contains(resp.Message, "unknown platform") {
		t.Errorf("resp = %+v", resp)
	}
}

func TestPlatform_MissingQuery(t *testing.T) {
	rec := do(t, &fakeSearcher{}, http.MethodGet, "/api/events/platform/ticketmaster?location=London", "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	var resp ErrorResponse
	decode(t, rec, &resp)
	if strings.Join(resp.Missing, ",") != "genre,date" || len(resp.Required) != 3 {
		t.Errorf("resp = %+v, want missing genre and date", resp)
	}
}

func TestPlatform_UnknownWithIncompleteQuery(t *testing.T) {
	rec := do(t, &fakeSearcher{}, http.MethodGet, "/api/events/platform/myspace?location=London", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 for an unknown platform", rec.Code)
	}
	var resp ErrorResponse
	decode(t, rec, &resp)
	if !strings.Contains(resp.Message, "unknown platform") {
		t.Errorf("message = %q", resp.Message)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	rec := do(t, &fakeSearcher{}, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("metrics output should include the default Go collectors")
	}
}

func TestCORSPreflight(t *testing.T) {
	rec := do(t, &fakeSearcher{}, http.MethodOptions, "/api/events/search", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}
