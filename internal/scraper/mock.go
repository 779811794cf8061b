package scraper

import "github.com/pfrederiksen/music-events/internal/event"

// MockEvents returns the placeholder listings used when RA cannot be scraped.
// They are labelled with MockSourceLabel so callers can tell them apart.
func MockEvents(q event.Query) []*event.Event {
	return []*event.Event{
		{
			ID:        "ra_mock_1",
			Title:     "Underground " + q.Genre + " Night",
			Artist:    "Local DJs, Special Guest",
			Venue:     "Fabric Room 1",
			Location:  q.Location,
			Date:      q.Date,
			Time:      "23:00",
			Price:     "£15 - £20",
			Genre:     q.Genre,
			Source:    MockSourceLabel,
			TicketURL: BaseURL,
			ImageURL:  eventImage,
		},
		{
			ID:        "ra_mock_2",
			Title:     q.Genre + " Sessions",
			Artist:    event.VariousArtists,
			Venue:     "XOYO",
			Location:  q.Location,
			Date:      q.Date,
			Time:      event.ClubTime,
			Price:     "£12 - £18",
			Genre:     q.Genre,
			Source:    MockSourceLabel,
			TicketURL: BaseURL,
			ImageURL:  eventImage,
		},
	}
}
