package aggregator

import (
	"sort"

	"github.com/pfrederiksen/music-events/internal/event"
	"github.com/pfrederiksen/music-events/internal/genre"
)

// Rank stable-sorts events by genre score against the query genre, highest
// first, then by distance from the query date, closest first. Events with an
// unparseable date sort after every dated event with the same score.
func Rank(events []*event.Event, q event.Query, scorer *genre.Scorer) {
	if scorer == nil {
		scorer = genre.DefaultScorer
	}

	type key struct {
		score    int
		distance float64
	}
	keys := make(map[*event.Event]key, len(events))
	for _, e := range events {
		keys[e] = key{
			score:    scorer.Score(e.Genre, q.Genre),
			distance: event.DaysApart(e.Date, q.Date),
		}
	}

	sort.SliceStable(events, func(i, j int) bool {
		ki, kj := keys[events[i]], keys[events[j]]
		if ki.score != kj.score {
			return ki.score > kj.score
		}
		return ki.distance < kj.distance
	})
}
