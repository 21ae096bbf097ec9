// Package commands implements the charfang subcommands.
package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/charfang/charfang/internal/config"
	"github.com/charfang/charfang/internal/diffcache"
	"github.com/charfang/charfang/internal/observability"
	"github.com/charfang/charfang/internal/report"
	"github.com/charfang/charfang/pkg/authorship"
	"github.com/charfang/charfang/pkg/gitlib"
)

// Sentinel errors for the stats command.
var (
	ErrInvalidTimeFormat = errors.New("cannot parse time")
)

// StatsCommand holds the flag state for one stats invocation.
type StatsCommand struct {
	configPath string

	groupBy       string
	includeMerges bool
	limit         int
	since         string
	until         string
	branch        string
	languages     []string
	format        string
	output        string
	noCache       bool
	progressEvery int
	logJSON       bool
	metricsListen string
	verbose       bool
	quiet         bool
}

// NewStatsCommand creates and configures the stats command.
func NewStatsCommand() *cobra.Command {
	sc := &StatsCommand{}

	cobraCmd := &cobra.Command{
		Use:   "stats [repository]",
		Short: "Per-author character-level contribution statistics",
		Long: `Walk repository history and attribute added, deleted and modified
characters to authors. Modified characters are measured by pairing
removed and added lines within each hunk and scoring the pairs with
Levenshtein edit distance.`,
		Args: cobra.MaximumNArgs(1),
		RunE: sc.run,
	}

	flags := cobraCmd.Flags()
	flags.StringVar(&sc.configPath, "config", "", "Config file path (default: .charfang.yaml in CWD or $HOME)")
	flags.StringVarP(&sc.groupBy, "group-by", "g", "", `Group authors by "name" or "email"`)
	flags.BoolVar(&sc.includeMerges, "include-merges", false, "Include merge commits")
	flags.IntVarP(&sc.limit, "limit", "n", 0, "Stop after this many commits (0 = no limit)")
	flags.StringVar(&sc.since, "since", "", "Only commits after this time (e.g. '720h', '2024-01-01', RFC3339)")
	flags.StringVar(&sc.until, "until", "", "Only commits before this time")
	flags.StringVarP(&sc.branch, "branch", "b", "", "Walk a single branch or revision (default: all refs)")
	flags.StringSliceVarP(&sc.languages, "languages", "l", nil, "Only count files in these languages (e.g. Go,Python)")
	flags.StringVarP(&sc.format, "format", "f", "", "Output format (csv, table, yaml, plot)")
	flags.StringVarP(&sc.output, "output", "o", "", "Write the report to a file instead of stdout")
	flags.BoolVar(&sc.noCache, "no-cache", false, "Disable the on-disk patch cache")
	flags.IntVarP(&sc.progressEvery, "progress", "P", 0, "Log a progress message every N commits (0 = disabled)")
	flags.BoolVar(&sc.logJSON, "log-json", false, "Emit logs as JSON instead of text")
	flags.StringVar(&sc.metricsListen, "metrics-listen", "", "Expose Prometheus metrics on this address (e.g. :9090)")
	flags.BoolVarP(&sc.verbose, "verbose", "v", false, "Debug logging")
	flags.BoolVarP(&sc.quiet, "quiet", "q", false, "Errors only")

	return cobraCmd
}

func (sc *StatsCommand) run(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(sc.configPath)
	if err != nil {
		return err
	}

	sc.applyConfig(cmd, cfg)

	groupBy, err := authorship.ParseGroupBy(sc.groupBy)
	if err != nil {
		return err
	}

	format, err := report.ParseFormat(sc.format)
	if err != nil {
		return err
	}

	window, err := sc.timeWindow()
	if err != nil {
		return err
	}

	logger := observability.NewLogger(os.Stderr, sc.logLevel(cfg), sc.logJSON || cfg.Log.JSON)
	metrics := observability.NewMetrics()

	if sc.metricsListen != "" {
		go func() {
			serveErr := metrics.Serve(sc.metricsListen)
			if serveErr != nil {
				logger.Error("metrics endpoint failed", slog.Any("error", serveErr))
			}
		}()
	}

	repoPath := "."
	if len(args) > 0 {
		repoPath = args[0]
	}

	repo, err := gitlib.OpenRepository(repoPath)
	if err != nil {
		return err
	}
	defer repo.Free()

	cache, err := sc.openCache(cfg)
	if err != nil {
		return err
	}

	engine := authorship.NewEngine(authorship.Options{
		GroupBy: groupBy,
		Filter:  authorship.NewLanguageFilter(sc.languages),
		Sink:    observability.NewEngineSink(metrics, logger),
	})

	started := time.Now()

	commits, err := sc.walkHistory(repo, window, cache, engine, logger, metrics)
	if err != nil {
		return err
	}

	rows := engine.Rows()

	if err := sc.writeReport(format, rows); err != nil {
		return err
	}

	if !sc.quiet {
		report.PrintSummary(os.Stderr, rows, commits, time.Since(started))
	}

	return nil
}

// applyConfig backfills unset flags from the loaded configuration, so
// explicit flags always win over file and environment values.
func (sc *StatsCommand) applyConfig(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()

	if !flags.Changed("group-by") || sc.groupBy == "" {
		sc.groupBy = cfg.Stats.GroupBy
	}

	if !flags.Changed("include-merges") {
		sc.includeMerges = cfg.Stats.IncludeMerges
	}

	if !flags.Changed("limit") {
		sc.limit = cfg.Stats.Limit
	}

	if !flags.Changed("branch") || sc.branch == "" {
		sc.branch = cfg.Stats.Branch
	}

	if !flags.Changed("languages") && len(sc.languages) == 0 {
		sc.languages = cfg.Stats.Languages
	}

	if !flags.Changed("format") || sc.format == "" {
		sc.format = cfg.Stats.Format
	}

	if !flags.Changed("progress") {
		sc.progressEvery = cfg.Stats.Progress
	}

	if !flags.Changed("metrics-listen") && sc.metricsListen == "" {
		sc.metricsListen = cfg.Metrics.Listen
	}
}

func (sc *StatsCommand) logLevel(cfg *config.Config) slog.Level {
	switch {
	case sc.quiet:
		return slog.LevelError
	case sc.verbose:
		return slog.LevelDebug
	default:
		return observability.ParseLevel(cfg.Log.Level)
	}
}

func (sc *StatsCommand) openCache(cfg *config.Config) (*diffcache.Cache, error) {
	if sc.noCache || !cfg.Cache.Enabled {
		return nil, nil
	}

	return diffcache.Open(cfg.Cache.Dir)
}

type timeWindow struct {
	since *time.Time
	until *time.Time
}

func (sc *StatsCommand) timeWindow() (timeWindow, error) {
	var window timeWindow

	if sc.since != "" {
		t, err := parseTime(sc.since)
		if err != nil {
			return window, err
		}

		window.since = &t
	}

	if sc.until != "" {
		t, err := parseTime(sc.until)
		if err != nil {
			return window, err
		}

		window.until = &t
	}

	return window, nil
}

// walkHistory feeds the commit log into the engine and returns the
// number of commits consumed. A commit whose patch cannot be rendered
// is consumed with empty patch text so its commit still counts.
func (sc *StatsCommand) walkHistory(
	repo *gitlib.Repository, window timeWindow, cache *diffcache.Cache,
	engine *authorship.Engine, logger *slog.Logger, metrics *observability.Metrics,
) (int, error) {
	iter, err := repo.Log(gitlib.LogOptions{
		Branch:        sc.branch,
		Since:         window.since,
		Until:         window.until,
		IncludeMerges: sc.includeMerges,
	})
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	consumed := 0

	for sc.limit == 0 || consumed < sc.limit {
		commit, err := iter.Next()
		if err != nil {
			if errors.Is(err, gitlib.ErrNoHistory) {
				break
			}

			return consumed, err
		}

		patch := sc.commitPatch(repo, commit, cache, logger, metrics)

		engine.Consume(authorship.CommitRecord{
			Hash:        commit.Hash.String(),
			AuthorName:  commit.Author.Name,
			AuthorEmail: commit.Author.Email,
			Patch:       patch,
		})

		commit.Free()

		consumed++
		if sc.progressEvery > 0 && consumed%sc.progressEvery == 0 {
			logger.Info("processing history",
				slog.String("commits", humanize.Comma(int64(consumed))),
				slog.String("authors", humanize.Comma(int64(engine.Authors()))))
		}
	}

	return consumed, nil
}

func (sc *StatsCommand) commitPatch(
	repo *gitlib.Repository, commit *gitlib.Commit, cache *diffcache.Cache,
	logger *slog.Logger, metrics *observability.Metrics,
) string {
	key := commit.Hash.String()

	cached, ok, cacheErr := cache.Get(key)
	if cacheErr != nil {
		logger.Warn("patch cache read failed", slog.String("commit", key), slog.Any("error", cacheErr))
	}

	if ok {
		metrics.CacheHits.Inc()
		return cached
	}

	metrics.CacheMisses.Inc()

	patch, err := repo.CommitPatch(commit)
	if err != nil {
		metrics.PatchFailures.Inc()
		logger.Warn("skipping patch", slog.String("commit", key), slog.Any("error", err))

		return ""
	}

	putErr := cache.Put(key, patch)
	if putErr != nil {
		logger.Warn("patch cache write failed", slog.String("commit", key), slog.Any("error", putErr))
	}

	return patch
}

func (sc *StatsCommand) writeReport(format report.Format, rows []authorship.Row) error {
	out := os.Stdout

	if sc.output != "" {
		file, err := os.Create(sc.output)
		if err != nil {
			return fmt.Errorf("create output file %q: %w", sc.output, err)
		}
		defer file.Close()

		out = file
	}

	return report.Write(out, format, rows)
}

func parseTime(s string) (time.Time, error) {
	// Try parsing as duration (e.g., "24h") relative to now.
	d, durationErr := time.ParseDuration(s)
	if durationErr == nil {
		return time.Now().Add(-d), nil
	}

	// Try RFC3339.
	parsedTime, rfc3339Err := time.Parse(time.RFC3339, s)
	if rfc3339Err == nil {
		return parsedTime, nil
	}

	// Try YYYY-MM-DD.
	parsedTime, dateOnlyErr := time.Parse(time.DateOnly, s)
	if dateOnlyErr == nil {
		return parsedTime, nil
	}

	return time.Time{}, fmt.Errorf("%w: %s", ErrInvalidTimeFormat, s)
}
