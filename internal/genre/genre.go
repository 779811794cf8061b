package genre

import (
	"strings"
)

// Scores returned by Scorer.Score.
const (
	ScoreNone    = 0
	ScoreSynonym = 50
	ScorePartial = 75
	ScoreExact   = 100
)

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Keywords returns the lowercase keyword set for a search genre: its expansion
// from the static table plus the raw genre token itself.
func Keywords(searchGenre string) []string {
	g := normalize(searchGenre)
	if g == "" {
		return nil
	}
	expanded := keywords[g]
	out := make([]string, 0, len(expanded)+1)
	out = append(out, expanded...)
	for _, k := range expanded {
		if k == g {
			return out
		}
	}
	return append(out, g)
}

// Matches reports whether any keyword for searchGenre appears as a substring of
// the concatenated text fields. Matching is intentionally permissive. An empty
// search genre matches everything.
func Matches(searchGenre string, fields ...string) bool {
	kws := Keywords(searchGenre)
	if len(kws) == 0 {
		return true
	}
	text := strings.ToLower(strings.Join(fields, " "))
	for _, k := range kws {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

// Classification returns the Ticketmaster classification id for a genre, or "".
func Classification(searchGenre string) string {
	return classifications[normalize(searchGenre)]
}

// SearchQuery returns an expanded free-text query for a genre, falling back to
// "<genre> music" when the genre is not in the table.
func SearchQuery(searchGenre string) string {
	if q, ok := queryExpansions[normalize(searchGenre)]; ok {
		return q
	}
	return strings.TrimSpace(searchGenre) + " music"
}

// Roster returns the curated artist list for a genre. The returned slice must not be modified.
func Roster(searchGenre string) []string {
	return rosters[normalize(searchGenre)]
}

// ForArtist guesses a display genre from an artist name, defaulting to "Music".
func ForArtist(artist string) string {
	a := normalize(artist)
	for _, h := range artistHints {
		if strings.Contains(a, h.fragment) {
			return h.genre
		}
	}
	return "Music"
}
