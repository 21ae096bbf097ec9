package authorship

import "strings"

// walkerState is the position of the walker relative to hunk boundaries.
type walkerState int

const (
	outsideHunk walkerState = iota
	insideHunk
)

// lineClass is the classification of one physical patch line.
type lineClass int

const (
	lineFileHeader lineClass = iota
	lineHunkHeader
	lineBlank
	lineRemoval
	lineAddition
	lineContext
)

// fileHeaderPrefixes are the four line prefixes that signal a file boundary
// in git patch output. They are checked before the removal/addition markers
// so that "--- " and "+++ " old/new file headers are not miscounted.
var fileHeaderPrefixes = [4]string{"diff ", "index ", "--- ", "+++ "}

// noNewlineMarker prefixes the "\ No newline at end of file" note that git
// appends after a change to a file's final unterminated line.
const noNewlineMarker = `\ No newline`

// classifyLine maps a raw patch line to its class. Classification is purely
// lexical; the walker applies state-dependent meaning.
func classifyLine(raw string) lineClass {
	for _, prefix := range fileHeaderPrefixes {
		if strings.HasPrefix(raw, prefix) {
			return lineFileHeader
		}
	}

	if strings.HasPrefix(raw, "@@") {
		return lineHunkHeader
	}

	if raw == "" {
		return lineBlank
	}

	switch raw[0] {
	case '-':
		return lineRemoval
	case '+':
		return lineAddition
	}

	return lineContext
}

// PatchStats is the total contribution of one commit's patch.
type PatchStats struct {
	AddedLines    int
	DeletedLines  int
	AddedChars    int
	DeletedChars  int
	ModifiedChars int
}

// Walker scans the unified-diff text of one commit, classifies every line
// and drives the Accumulator. The walker is deliberately permissive: lines
// it cannot place inside a hunk are ignored, never rejected.
type Walker struct {
	acc    *Accumulator
	filter *FileFilter
	sink   Sink
}

// NewWalker creates a walker around the given accumulator. A nil filter
// admits every file; a nil sink discards events.
func NewWalker(acc *Accumulator, filter *FileFilter, sink Sink) *Walker {
	if sink == nil {
		sink = NopSink{}
	}

	return &Walker{acc: acc, filter: filter, sink: sink}
}

// Walk processes the whole patch for the author group key and returns the
// accumulated stats. An empty patch yields zero stats. Flushes fire at file
// headers, hunk headers, blank lines and context lines inside hunks, and
// once more at end of input.
func (w *Walker) Walk(key, patch string) PatchStats {
	var stats PatchStats

	state := outsideHunk
	skipFile := false

	for line := range strings.Lines(patch) {
		line = strings.TrimSuffix(line, "\n")
		line = strings.TrimSuffix(line, "\r")

		class := classifyLine(line)

		switch class {
		case lineFileHeader:
			w.flush(key, &stats)

			state = outsideHunk

			if strings.HasPrefix(line, "diff ") {
				skipFile = !w.filter.Allow(newFilePath(line))
			}

			continue
		case lineHunkHeader:
			w.flush(key, &stats)

			state = insideHunk

			continue
		case lineBlank, lineRemoval, lineAddition, lineContext:
		}

		if state == outsideHunk || skipFile {
			continue
		}

		w.consumeHunkLine(key, class, line, &stats)
	}

	w.flush(key, &stats)

	return stats
}

// consumeHunkLine handles a line already known to be inside a hunk.
func (w *Walker) consumeHunkLine(key string, class lineClass, line string, stats *PatchStats) {
	switch class {
	case lineBlank:
		w.flush(key, stats)
	case lineRemoval:
		content := line[1:]
		if strings.HasPrefix(content, noNewlineMarker) {
			return
		}

		stats.DeletedLines++
		w.acc.PushRemoved(content)
	case lineAddition:
		content := line[1:]
		if strings.HasPrefix(content, noNewlineMarker) {
			return
		}

		stats.AddedLines++
		w.acc.PushAdded(content)
	case lineContext:
		w.flush(key, stats)
	case lineFileHeader, lineHunkHeader:
		// Handled by the caller before dispatch.
	}
}

// flush folds one accumulator flush into the stats. An empty flush emits no
// event and changes nothing.
func (w *Walker) flush(key string, stats *PatchStats) {
	delta := w.acc.Flush()
	if delta.IsZero() {
		return
	}

	stats.ModifiedChars += delta.ModifiedChars
	stats.AddedChars += delta.AddedChars
	stats.DeletedChars += delta.DeletedChars

	w.sink.Flushed(FlushEvent{
		Key:            key,
		Pairs:          delta.Pairs,
		ModifiedChars:  delta.ModifiedChars,
		SurplusAdded:   delta.SurplusAdded,
		SurplusDeleted: delta.SurplusDeleted,
	})
}

// newFilePath extracts the post-image path from a "diff --git a/x b/y" line.
// Returns "" when the line does not carry one.
func newFilePath(line string) string {
	idx := strings.LastIndex(line, " b/")
	if idx < 0 {
		return ""
	}

	return line[idx+len(" b/"):]
}
