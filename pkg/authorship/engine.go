package authorship

// CommitRecord is the engine's per-commit input: commit metadata plus the
// already-fetched unified-diff body. Patch may be empty; an empty patch is
// a zero-contribution commit, not an error.
type CommitRecord struct {
	Hash        string
	AuthorName  string
	AuthorEmail string
	Patch       string
}

// Options configures an Engine.
type Options struct {
	GroupBy GroupBy
	Filter  *FileFilter // nil admits every file
	Sink    Sink        // nil discards events
}

// Engine folds commits into per-author statistics. It is single-threaded:
// one commit is fully parsed and folded before the next begins.
type Engine struct {
	agg    *Aggregator
	walker *Walker
	sink   Sink
}

// NewEngine creates an engine with a fresh aggregator and accumulator.
func NewEngine(opts Options) *Engine {
	sink := opts.Sink
	if sink == nil {
		sink = NopSink{}
	}

	return &Engine{
		agg:    NewAggregator(opts.GroupBy),
		walker: NewWalker(NewAccumulator(), opts.Filter, sink),
		sink:   sink,
	}
}

// Consume resolves the commit's author group, bumps its commit counter and
// folds the patch contribution. Commits with an empty patch still count
// toward the group's commit total.
func (e *Engine) Consume(rec CommitRecord) {
	key := e.agg.ObserveCommit(rec.AuthorName, rec.AuthorEmail)

	if rec.Patch != "" {
		stats := e.walker.Walk(key, rec.Patch)
		e.agg.Apply(key, stats)
	}

	e.sink.CommitProcessed(CommitEvent{
		Hash:       rec.Hash,
		Key:        key,
		EmptyPatch: rec.Patch == "",
	})
}

// Authors returns the number of distinct author groups seen.
func (e *Engine) Authors() int {
	return e.agg.Len()
}

// Rows renders the final sorted output rows.
func (e *Engine) Rows() []Row {
	return e.agg.Rows()
}
