package genre

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// Scorer computes genre-match scores against a synonym table.
// A Scorer is immutable once built.
type Scorer struct {
	synonyms map[string][]string
}

// DefaultScorer uses the built-in synonym table.
var DefaultScorer = NewScorer(nil)

// NewScorer builds a Scorer from the built-in synonym table extended with extra
// groups. Extra members are appended to an existing group of the same key.
func NewScorer(extra map[string][]string) *Scorer {
	merged := make(map[string][]string, len(defaultSynonyms)+len(extra))
	for k, v := range defaultSynonyms {
		merged[k] = slices.Clone(v)
	}
	for k, v := range extra {
		key := normalize(k)
		if key == "" {
			continue
		}
		for _, m := range v {
			m = normalize(m)
			if m != "" && !slices.Contains(merged[key], m) {
				merged[key] = append(merged[key], m)
			}
		}
	}
	return &Scorer{synonyms: merged}
}

// Score rates how well an event's free-text genre matches the search genre:
// 100 for a case-insensitive exact match, 75 when either contains the other,
// 50 when they belong to the same synonym group, else 0.
func (s *Scorer) Score(eventGenre, searchGenre string) int {
	e, q := normalize(eventGenre), normalize(searchGenre)
	if e == "" || q == "" {
		return ScoreNone
	}
	if e == q {
		return ScoreExact
	}
	if containsEither(e, q) {
		return ScorePartial
	}
	for key, members := range s.synonyms {
		if (key == q && slices.Contains(members, e)) || (key == e && slices.Contains(members, q)) {
			return ScoreSynonym
		}
	}
	return ScoreNone
}

func containsEither(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// Score rates a match with DefaultScorer.
func Score(eventGenre, searchGenre string) int {
	return DefaultScorer.Score(eventGenre, searchGenre)
}

// SynonymFile is the YAML shape accepted by LoadSynonyms:
//
//	synonyms:
//	  garage: [ukg, "uk garage", "2-step"]
type SynonymFile struct {
	Synonyms map[string][]string `yaml:"synonyms"`
}

// LoadSynonyms reads extra synonym groups from a YAML file and returns a Scorer
// combining them with the built-in table.
func LoadSynonyms(path string) (*Scorer, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading synonyms file: %w", err)
	}
	var f SynonymFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parsing synonyms file: %w", err)
	}
	return NewScorer(f.Synonyms), nil
}
