package aggregator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pfrederiksen/music-events/internal/event"
	"github.com/pfrederiksen/music-events/internal/genre"
	"github.com/pfrederiksen/music-events/internal/logger"
	"github.com/pfrederiksen/music-events/internal/metrics"
	"github.com/pfrederiksen/music-events/internal/source"
)

// DefaultTimeout bounds a single source invocation.
const DefaultTimeout = 25 * time.Second

// ErrUnknownPlatform is returned when a platform lookup names no registered source.
var ErrUnknownPlatform = errors.New("unknown platform")

// Aggregator merges results from a fixed registry of sources.
type Aggregator struct {
	registry *source.Registry
	scorer   *genre.Scorer
	timeout  time.Duration
	log      *logger.Logger
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithScorer replaces the built-in genre scorer.
func WithScorer(s *genre.Scorer) Option {
	return func(a *Aggregator) {
		if s != nil {
			a.scorer = s
		}
	}
}

// WithTimeout sets the per-source timeout. Zero or negative disables it.
func WithTimeout(d time.Duration) Option {
	return func(a *Aggregator) { a.timeout = d }
}

// New creates an Aggregator over reg.
func New(reg *source.Registry, opts ...Option) *Aggregator {
	a := &Aggregator{
		registry: reg,
		scorer:   genre.DefaultScorer,
		timeout:  DefaultTimeout,
		log:      logger.With(logger.Fields{"component": "aggregator"}),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Platforms lists the registered source names in registration order.
func (a *Aggregator) Platforms() []string {
	return a.registry.Names()
}

// SourceReport describes how one source settled during a search.
type SourceReport struct {
	Name    string        `json:"name"`
	Outcome string        `json:"outcome"`
	Count   int           `json:"count"`
	Took    time.Duration `json:"took"`
	Error   string        `json:"error,omitempty"`
}

// Report is the result of a search along with per-source outcomes.
type Report struct {
	Events  []*event.Event `json:"events"`
	Sources []SourceReport `json:"sources"`
}

// SearchEvents returns the deduplicated, ranked events from every source.
// Source failures are absorbed; only an invalid query is an error.
func (a *Aggregator) SearchEvents(ctx context.Context, q event.Query) ([]*event.Event, error) {
	report, err := a.Search(ctx, q)
	if err != nil {
		return nil, err
	}
	return report.Events, nil
}

// Search is SearchEvents with per-source outcomes attached.
func (a *Aggregator) Search(ctx context.Context, q event.Query) (*Report, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}

	sources := a.registry.Sources()
	took := make([]time.Duration, len(sources))
	skipped := make([]bool, len(sources))
	for i, src := range sources {
		skipped[i] = missingCredential(src)
	}

	results := source.SettleAll(ctx, len(sources), 0, func(ctx context.Context, i int) ([]*event.Event, error) {
		if skipped[i] {
			return nil, nil
		}
		start := time.Now()
		defer func() { took[i] = time.Since(start) }()
		return a.invoke(ctx, sources[i], q)
	})

	report := &Report{Sources: make([]SourceReport, len(sources))}
	var merged []*event.Event
	for i, r := range results {
		name := sources[i].Name()
		sr := SourceReport{Name: name, Took: took[i], Count: len(r.Value)}

		switch {
		case skipped[i]:
			sr.Outcome = metrics.OutcomeSkipped
			a.log.Debug("source skipped, no credential", logger.Fields{"source": name})
		case r.Err != nil:
			sr.Outcome = outcomeFor(r.Err)
			sr.Count = 0
			sr.Error = r.Err.Error()
			a.log.Error("source failed", logger.Fields{"source": name, "outcome": sr.Outcome}, r.Err)
		case len(r.Value) == 0:
			sr.Outcome = metrics.OutcomeEmpty
		default:
			sr.Outcome = metrics.OutcomeOK
			merged = append(merged, r.Value...)
		}

		metrics.ObserveSource(name, sr.Outcome, sr.Count, sr.Took)
		report.Sources[i] = sr
	}

	unique := source.Dedup(merged)
	Rank(unique, q, a.scorer)
	report.Events = unique

	a.log.Info("search complete", logger.Fields{
		"location": q.Location,
		"genre":    q.Genre,
		"date":     q.Date,
		"merged":   len(merged),
		"returned": len(unique),
	})
	return report, nil
}

// GetEventsByPlatform returns one source's own output, without merging or
// ranking. An unrecognised name is wrapped in ErrUnknownPlatform. Unlike
// SearchEvents, a source error or panic is returned to the caller.
func (a *Aggregator) GetEventsByPlatform(ctx context.Context, platform string, q event.Query) ([]*event.Event, error) {
	src, ok := a.registry.Lookup(platform)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownPlatform, platform)
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	if missingCredential(src) {
		metrics.ObserveSource(src.Name(), metrics.OutcomeSkipped, 0, 0)
		a.log.Warn("source skipped, no credential", logger.Fields{"source": src.Name()})
		return []*event.Event{}, nil
	}

	start := time.Now()
	r := source.SettleAll(ctx, 1, 1, func(ctx context.Context, _ int) ([]*event.Event, error) {
		return a.invoke(ctx, src, q)
	})[0]

	outcome := metrics.OutcomeOK
	switch {
	case r.Err != nil:
		outcome = outcomeFor(r.Err)
	case len(r.Value) == 0:
		outcome = metrics.OutcomeEmpty
	}
	metrics.ObserveSource(src.Name(), outcome, len(r.Value), time.Since(start))

	if r.Err != nil {
		return nil, fmt.Errorf("searching %s: %w", src.Name(), r.Err)
	}
	if r.Value == nil {
		return []*event.Event{}, nil
	}
	return r.Value, nil
}

// invoke runs one source under the per-source timeout.
func (a *Aggregator) invoke(ctx context.Context, src source.Source, q event.Query) ([]*event.Event, error) {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}
	return src.SearchEvents(ctx, q)
}

// missingCredential reports whether src needs a credential it was not given.
func missingCredential(src source.Source) bool {
	c, ok := src.(source.Credentialed)
	return ok && c.RequiresCredential() && !c.HasCredential()
}

func outcomeFor(err error) string {
	var pe *source.PanicError
	if errors.As(err, &pe) {
		return metrics.OutcomePanic
	}
	return metrics.OutcomeError
}
