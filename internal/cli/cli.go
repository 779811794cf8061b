package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/pfrederiksen/music-events/internal/aggregator"
	"github.com/pfrederiksen/music-events/internal/config"
	"github.com/pfrederiksen/music-events/internal/event"
	"github.com/pfrederiksen/music-events/internal/logger"
	"github.com/pfrederiksen/music-events/internal/server"
)

const (
	ExitSuccess  = 0
	ExitError    = 1
	ExitNoEvents = 2
)

// Searcher is what the commands need from the aggregator.
type Searcher interface {
	server.Searcher
	Search(ctx context.Context, q event.Query) (*aggregator.Report, error)
	Platforms() []string
}

// deps are swapped out in tests.
type deps struct {
	loadConfig func() (*config.Config, error)
	build      func(*config.Config) (Searcher, error)
	serve      func(ctx context.Context, addr string, s server.Searcher) error
	stderr     io.Writer
}

func defaultDeps() deps {
	return deps{
		loadConfig: config.Load,
		build: func(cfg *config.Config) (Searcher, error) {
			return cfg.Aggregator()
		},
		serve:  server.Run,
		stderr: os.Stderr,
	}
}

type options struct {
	location string
	genre    string
	date     string
	format   string
	sort     string
	verbose  bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	return newRootCmd(defaultDeps())
}

func newRootCmd(d deps) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "music-events",
		Short: "Find live music events across ticketing sites",
		Long: `A CLI tool to search live music events by location, genre and date.
Queries Bandsintown, Ticketmaster, Eventbrite and Resident Advisor in parallel
and merges the results into one deduplicated, ranked list.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(newSearchCmd(d, opts), newPlatformCmd(d, opts), newServeCmd(d, opts))
	return cmd
}

func addQueryFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVar(&opts.location, "location", "", "City to search, e.g. London (required)")
	cmd.Flags().StringVar(&opts.genre, "genre", "", "Genre to search, e.g. techno (required)")
	cmd.Flags().StringVar(&opts.date, "date", "", "Date in YYYY-MM-DD format (required)")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text, json or ics")
	cmd.Flags().StringVar(&opts.sort, "sort", "relevance", "Sort order: relevance, date or title")
}

func newSearchCmd(d deps, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search every source for events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, format, order, err := opts.parse()
			if err != nil {
				return err
			}
			s, err := setup(d, opts)
			if err != nil {
				return err
			}

			report, err := s.Search(cmd.Context(), q)
			if err != nil {
				return fmt.Errorf("searching events: %w", err)
			}

			sortEvents(report.Events, order)
			result := &OutputResult{
				SearchedAt: time.Now().UTC(),
				Query:      q,
				Count:      len(report.Events),
				Events:     report.Events,
				Sources:    report.Sources,
			}
			if err := WriteOutput(cmd.OutOrStdout(), result, format, opts.verbose); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			if result.Count == 0 {
				return errNoEvents
			}
			return nil
		},
	}
	addQueryFlags(cmd, opts)
	return cmd
}

func newPlatformCmd(d deps, opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "platform NAME",
		Short: "Search a single source",
		Long:  "Search a single source by name: bandsintown, ticketmaster, eventbrite or scraped.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			q, format, order, err := opts.parse()
			if err != nil {
				return err
			}
			s, err := setup(d, opts)
			if err != nil {
				return err
			}

			platform := strings.ToLower(strings.TrimSpace(args[0]))
			events, err := s.GetEventsByPlatform(cmd.Context(), platform, q)
			if err != nil {
				return fmt.Errorf("%w (available: %s)", err, strings.Join(s.Platforms(), ", "))
			}

			sortEvents(events, order)
			result := &OutputResult{
				SearchedAt: time.Now().UTC(),
				Query:      q,
				Platform:   platform,
				Count:      len(events),
				Events:     events,
			}
			if err := WriteOutput(cmd.OutOrStdout(), result, format, opts.verbose); err != nil {
				return fmt.Errorf("writing output: %w", err)
			}
			if result.Count == 0 {
				return errNoEvents
			}
			return nil
		},
	}
	addQueryFlags(cmd, opts)
	return cmd
}

func newServeCmd(d deps, opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := d.loadConfig()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if err := configureLogger(d, cfg, opts.verbose); err != nil {
				return err
			}
			s, err := d.build(cfg)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return d.serve(ctx, cfg.Addr(), s)
		},
	}
}

// parse validates flags before any network work happens.
func (o *options) parse() (event.Query, OutputFormat, SortOrder, error) {
	q := event.Query{
		Location: strings.TrimSpace(o.location),
		Genre:    strings.TrimSpace(o.genre),
		Date:     strings.TrimSpace(o.date),
	}
	if err := q.Validate(); err != nil {
		return q, "", "", fmt.Errorf("%w (required: %s)", err, flagList(event.RequiredFields))
	}
	if event.ParseDate(q.Date).IsZero() {
		return q, "", "", fmt.Errorf("invalid date: %s (must be YYYY-MM-DD)", o.date)
	}

	format := OutputFormat(strings.ToLower(o.format))
	if format != FormatText && format != FormatJSON && format != FormatICS {
		return q, "", "", fmt.Errorf("invalid format: %s (must be 'text', 'json' or 'ics')", o.format)
	}

	order := SortOrder(strings.ToLower(o.sort))
	if order != SortByRelevance && order != SortByDate && order != SortByTitle {
		return q, "", "", fmt.Errorf("invalid sort: %s (must be 'relevance', 'date' or 'title')", o.sort)
	}
	return q, format, order, nil
}

func flagList(fields []string) string {
	flags := make([]string, len(fields))
	for i, f := range fields {
		flags[i] = "--" + f
	}
	return strings.Join(flags, ", ")
}

func setup(d deps, opts *options) (Searcher, error) {
	cfg, err := d.loadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if err := configureLogger(d, cfg, opts.verbose); err != nil {
		return nil, err
	}
	// Sources capture the default logger when built, so build after configuring it.
	return d.build(cfg)
}

func configureLogger(d deps, cfg *config.Config, verbose bool) error {
	level := logger.LevelInfo
	if cfg.LogLevel != "" {
		var err error
		if level, err = logger.ParseLevel(cfg.LogLevel); err != nil {
			return err
		}
	}
	if verbose {
		level = logger.LevelDebug
	}
	logger.SetDefault(logger.New(level, d.stderr))
	return nil
}

// errNoEvents marks a successful search that found nothing.
var errNoEvents = errors.New("no events found")

// Execute runs the CLI
func Execute() {
	ctx := context.Background()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		if errors.Is(err, errNoEvents) {
			os.Exit(ExitNoEvents)
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitError)
	}
	os.Exit(ExitSuccess)
}
