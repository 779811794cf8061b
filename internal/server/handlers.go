package server

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pfrederiksen/music-events/internal/event"
	"github.com/pfrederiksen/music-events/internal/logger"
)

type handlers struct {
	searcher Searcher
}

// SearchResponse is the body of a successful search.
type SearchResponse struct {
	Success      bool           `json:"success"`
	Count        int            `json:"count"`
	Events       []*event.Event `json:"events"`
	SearchParams event.Query    `json:"searchParams"`
}

// PlatformResponse is the body of a successful single-platform lookup.
type PlatformResponse struct {
	Success  bool           `json:"success"`
	Platform string         `json:"platform"`
	Count    int            `json:"count"`
	Events   []*event.Event `json:"events"`
}

// ErrorResponse is returned with 4xx and 5xx statuses.
type ErrorResponse struct {
	Error    string   `json:"error"`
	Message  string   `json:"message,omitempty"`
	Required []string `json:"required,omitempty"`
	Missing  []string `json:"missing,omitempty"`
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"message":   "Music Event Finder API is running",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *handlers) search(c *gin.Context) {
	var q event.Query
	if err := c.ShouldBindJSON(&q); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid JSON payload", Message: err.Error()})
		return
	}
	if !validate(c, q) {
		return
	}

	logger.Info("searching events", logger.Fields{"location": q.Location, "genre": q.Genre, "date": q.Date})

	events, err := h.searcher.SearchEvents(c.Request.Context(), q)
	if err != nil {
		logger.Error("search failed", nil, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to search events", Message: err.Error()})
		return
	}
	if events == nil {
		events = []*event.Event{}
	}

	c.JSON(http.StatusOK, SearchResponse{
		Success:      true,
		Count:        len(events),
		Events:       events,
		SearchParams: q,
	})
}

func (h *handlers) platform(c *gin.Context) {
	platform := c.Param("platform")

	var q event.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid query string", Message: err.Error()})
		return
	}

	// The searcher resolves the platform before validating the query, so an
	// unknown platform is reported even when the query is incomplete.
	events, err := h.searcher.GetEventsByPlatform(c.Request.Context(), platform, q)
	var ve *event.ValidationError
	if errors.As(err, &ve) {
		badQuery(c, ve)
		return
	}
	if err != nil {
		logger.Error("platform search failed", logger.Fields{"platform": platform}, err)
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   fmt.Sprintf("Failed to get events from %s", platform),
			Message: err.Error(),
		})
		return
	}
	if events == nil {
		events = []*event.Event{}
	}

	c.JSON(http.StatusOK, PlatformResponse{
		Success:  true,
		Platform: platform,
		Count:    len(events),
		Events:   events,
	})
}

// validate writes a 400 and returns false when required query fields are missing.
func validate(c *gin.Context, q event.Query) bool {
	err := q.Validate()
	if err == nil {
		return true
	}
	var ve *event.ValidationError
	errors.As(err, &ve)
	badQuery(c, ve)
	return false
}

// badQuery writes the 400 listing required and missing query fields.
func badQuery(c *gin.Context, ve *event.ValidationError) {
	resp := ErrorResponse{Error: "Missing required fields", Required: event.RequiredFields}
	if ve != nil {
		resp.Missing = ve.Missing
	}
	c.JSON(http.StatusBadRequest, resp)
}
