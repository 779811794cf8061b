package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/pfrederiksen/music-events/internal/event"
)

// MaxResults bounds the number of events a single adapter invocation returns.
const MaxResults = 20

// Source is one upstream event provider.
//
// SearchEvents must not fail because of upstream problems: network errors,
// auth failures and empty responses all resolve to an empty slice with a nil
// error, and the reason is logged. A non-nil error is reserved for faults the
// adapter cannot classify; callers treat it the same as an empty result.
type Source interface {
	Name() string
	SearchEvents(ctx context.Context, q event.Query) ([]*event.Event, error)
}

// Credentialed is implemented by sources that need a static API key. The
// aggregator skips a source whose required credential is missing.
type Credentialed interface {
	RequiresCredential() bool
	HasCredential() bool
}

// Registry is an ordered, immutable set of sources. Registration order decides
// which source wins when two return the same event.
type Registry struct {
	sources []Source
	byName  map[string]Source
}

// NewRegistry builds a registry, rejecting duplicate names.
func NewRegistry(sources ...Source) (*Registry, error) {
	r := &Registry{
		sources: make([]Source, 0, len(sources)),
		byName:  make(map[string]Source, len(sources)),
	}
	for _, s := range sources {
		key := strings.ToLower(s.Name())
		if _, dup := r.byName[key]; dup {
			return nil, fmt.Errorf("duplicate source name: %s", s.Name())
		}
		r.byName[key] = s
		r.sources = append(r.sources, s)
	}
	return r, nil
}

// Sources returns the sources in registration order.
func (r *Registry) Sources() []Source {
	out := make([]Source, len(r.sources))
	copy(out, r.sources)
	return out
}

// Lookup finds a source by case-insensitive name.
func (r *Registry) Lookup(name string) (Source, bool) {
	s, ok := r.byName[strings.ToLower(strings.TrimSpace(name))]
	return s, ok
}

// Names returns the registered source names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.sources))
	for i, s := range r.sources {
		names[i] = s.Name()
	}
	return names
}

// Limit truncates events to at most n entries.
func Limit(events []*event.Event, n int) []*event.Event {
	if len(events) > n {
		return events[:n]
	}
	return events
}

// Dedup keeps the first event for each dedup key, preserving order.
func Dedup(events []*event.Event) []*event.Event {
	seen := make(map[string]bool, len(events))
	unique := make([]*event.Event, 0, len(events))
	for _, evt := range events {
		key := evt.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		unique = append(unique, evt)
	}
	return unique
}
