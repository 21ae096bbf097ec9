package observability

import (
	"log/slog"

	"github.com/charfang/charfang/pkg/authorship"
)

// EngineSink bridges engine progress events into Prometheus counters and
// debug logs. It satisfies [authorship.Sink].
type EngineSink struct {
	metrics *Metrics
	logger  *slog.Logger
}

// NewEngineSink builds a sink over the given instruments and logger.
func NewEngineSink(metrics *Metrics, logger *slog.Logger) *EngineSink {
	return &EngineSink{metrics: metrics, logger: logger}
}

// CommitProcessed implements authorship.Sink.
func (s *EngineSink) CommitProcessed(ev authorship.CommitEvent) {
	s.metrics.CommitsProcessed.Inc()

	if ev.EmptyPatch {
		s.metrics.CommitsEmptyPatch.Inc()
	}

	s.logger.Debug("commit processed",
		slog.String("hash", ev.Hash),
		slog.String("key", ev.Key),
		slog.Bool("empty_patch", ev.EmptyPatch),
	)
}

// Flushed implements authorship.Sink.
func (s *EngineSink) Flushed(ev authorship.FlushEvent) {
	s.metrics.HunkFlushes.Inc()
	s.metrics.PairedLines.Add(float64(ev.Pairs))
	s.metrics.SurplusAddedLines.Add(float64(ev.SurplusAdded))
	s.metrics.SurplusDeletedLine.Add(float64(ev.SurplusDeleted))

	s.logger.Debug("hunk flushed",
		slog.String("key", ev.Key),
		slog.Int("pairs", ev.Pairs),
		slog.Int("modified_chars", ev.ModifiedChars),
		slog.Int("surplus_added", ev.SurplusAdded),
		slog.Int("surplus_deleted", ev.SurplusDeleted),
	)
}
