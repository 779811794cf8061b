package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pfrederiksen/music-events/internal/event"
)

const (
	desktopUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	mobileUserAgent  = "Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/16.0 Mobile/15E148 Safari/604.1"

	maxPageSize = 5 << 20
)

// browserHeaders mimic a desktop Chrome navigation request.
var browserHeaders = map[string]string{
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.9",
	"Upgrade-Insecure-Requests": "1",
	"Sec-Fetch-Dest":            "document",
	"Sec-Fetch-Mode":            "navigate",
	"Sec-Fetch-Site":            "none",
	"Sec-Fetch-User":            "?1",
	"Cache-Control":             "max-age=0",
	"sec-ch-ua":                 `"Not_A Brand";v="8", "Chromium";v="120", "Google Chrome";v="120"`,
	"sec-ch-ua-mobile":          "?0",
	"sec-ch-ua-platform":        `"Windows"`,
}

type outcome string

const (
	outcomeMatched        outcome = "matched"
	outcomeBlocked        outcome = "blocked"
	outcomeTransportError outcome = "transport_error"
	outcomeEmpty          outcome = "empty"
)

// result is the tagged outcome of one strategy attempt.
type result struct {
	outcome outcome
	events  []*event.Event
	err     error
}

type strategy struct {
	name string
	run  func(ctx context.Context, c *http.Client, area string, q event.Query) result
}

// strategies are tried in order until one matches.
func (s *Scraper) strategies() []strategy {
	return []strategy{
		{name: "delayed", run: s.fetchDelayed},
		{name: "area", run: s.fetchArea},
		{name: "mobile", run: s.fetchMobile},
	}
}

// fetchDelayed warms a session on the homepage, waits like a human would, then
// requests the dated listing page.
func (s *Scraper) fetchDelayed(ctx context.Context, c *http.Client, area string, q event.Query) result {
	if err := s.Delay(ctx, 1*time.Second, 3*time.Second); err != nil {
		return result{outcome: outcomeTransportError, err: err}
	}
	if _, _, err := s.get(ctx, c, strings.TrimRight(s.BaseURL, "/"), desktopUserAgent); err != nil {
		return result{outcome: outcomeTransportError, err: fmt.Errorf("warming session: %w", err)}
	}
	if err := s.Delay(ctx, 2*time.Second, 4*time.Second); err != nil {
		return result{outcome: outcomeTransportError, err: err}
	}
	return s.fetchAndParse(ctx, c, s.BaseURL, fmt.Sprintf("/events/%s/%s", area, q.Date), desktopUserAgent, q)
}

// fetchArea requests the undated area listing.
func (s *Scraper) fetchArea(ctx context.Context, c *http.Client, area string, q event.Query) result {
	return s.fetchAndParse(ctx, c, s.BaseURL, "/events/"+area, desktopUserAgent, q)
}

// fetchMobile requests the mobile site with an iPhone user agent.
func (s *Scraper) fetchMobile(ctx context.Context, c *http.Client, area string, q event.Query) result {
	return s.fetchAndParse(ctx, c, s.MobileBaseURL, "/events/"+area, mobileUserAgent, q)
}

func (s *Scraper) fetchAndParse(ctx context.Context, c *http.Client, base, path, userAgent string, q event.Query) result {
	body, status, err := s.get(ctx, c, strings.TrimRight(base, "/")+path, userAgent)
	if err != nil {
		return result{outcome: outcomeTransportError, err: err}
	}
	if status == http.StatusForbidden {
		return result{outcome: outcomeBlocked, err: fmt.Errorf("blocked with status %d", status)}
	}
	if status >= http.StatusBadRequest {
		return result{outcome: outcomeTransportError, err: fmt.Errorf("unexpected status code: %d", status)}
	}

	events, err := s.parseEvents(strings.NewReader(body), q)
	if err != nil {
		return result{outcome: outcomeEmpty, err: err}
	}
	if len(events) == 0 {
		return result{outcome: outcomeEmpty}
	}
	return result{outcome: outcomeMatched, events: events}
}

// get fetches a page and returns its body and status. Client errors are
// returned as a status so the caller can classify blocking.
func (s *Scraper) get(ctx context.Context, c *http.Client, pageURL, userAgent string) (string, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", 0, fmt.Errorf("creating request: %w", err)
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.Do(req)
	if err != nil {
		return "", 0, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxPageSize))
	if err != nil {
		return "", resp.StatusCode, fmt.Errorf("reading page: %w", err)
	}
	return string(data), resp.StatusCode, nil
}
