package authorship

// CommitEvent is emitted after a commit has been folded into the aggregator.
type CommitEvent struct {
	Hash       string
	Key        string
	EmptyPatch bool
}

// FlushEvent is emitted for every non-empty accumulator flush.
type FlushEvent struct {
	Key            string
	Pairs          int
	ModifiedChars  int
	SurplusAdded   int
	SurplusDeleted int
}

// Sink receives progress events from the engine. Implementations must be
// cheap: events fire on the hot path of patch walking.
type Sink interface {
	CommitProcessed(ev CommitEvent)
	Flushed(ev FlushEvent)
}

// NopSink discards all events.
type NopSink struct{}

// CommitProcessed implements Sink.
func (NopSink) CommitProcessed(CommitEvent) {}

// Flushed implements Sink.
func (NopSink) Flushed(FlushEvent) {}
