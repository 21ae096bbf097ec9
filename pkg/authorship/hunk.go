package authorship

import (
	"unicode/utf8"

	"github.com/charfang/charfang/pkg/levenshtein"
)

// FlushDelta holds the counts produced by one accumulator flush.
type FlushDelta struct {
	Pairs          int // removed/added lines paired positionally
	ModifiedChars  int // summed edit distances of the pairs
	AddedChars     int // total length of surplus added lines
	DeletedChars   int // total length of surplus removed lines
	SurplusAdded   int // surplus added line count
	SurplusDeleted int // surplus removed line count
}

// IsZero reports whether the flush produced no counts.
func (d FlushDelta) IsZero() bool {
	return d == FlushDelta{}
}

// Accumulator buffers the removed and added line runs of the currently open
// hunk segment and converts them into distance and surplus contributions on
// Flush. It is reused across hunks and commits; Flush clears both buffers.
type Accumulator struct {
	removed  []string
	added    []string
	distance *levenshtein.Context
}

// NewAccumulator creates an empty accumulator.
func NewAccumulator() *Accumulator {
	return &Accumulator{distance: &levenshtein.Context{}}
}

// PushRemoved appends a removed-line content (marker already stripped).
func (a *Accumulator) PushRemoved(line string) {
	a.removed = append(a.removed, line)
}

// PushAdded appends an added-line content (marker already stripped).
func (a *Accumulator) PushAdded(line string) {
	a.added = append(a.added, line)
}

// Empty reports whether both buffers are empty.
func (a *Accumulator) Empty() bool {
	return len(a.removed) == 0 && len(a.added) == 0
}

// Flush pairs buffered removed and added lines positionally (index i of the
// removed run against index i of the added run; no best-match alignment is
// attempted) and returns the resulting delta. Lines beyond the shorter run
// are surplus: their rune lengths go to AddedChars or DeletedChars. Both
// buffers are cleared. Flushing empty buffers returns a zero delta.
func (a *Accumulator) Flush() FlushDelta {
	var delta FlushDelta

	if a.Empty() {
		return delta
	}

	pairs := min(len(a.removed), len(a.added))
	delta.Pairs = pairs

	for idx := range pairs {
		delta.ModifiedChars += a.distance.Distance(a.removed[idx], a.added[idx])
	}

	for _, line := range a.added[pairs:] {
		delta.AddedChars += utf8.RuneCountInString(line)
		delta.SurplusAdded++
	}

	for _, line := range a.removed[pairs:] {
		delta.DeletedChars += utf8.RuneCountInString(line)
		delta.SurplusDeleted++
	}

	a.removed = a.removed[:0]
	a.added = a.added[:0]

	return delta
}
