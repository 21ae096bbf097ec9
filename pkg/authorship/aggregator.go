package authorship

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
)

// ErrUnknownGroupBy is returned for grouping modes other than name or email.
var ErrUnknownGroupBy = errors.New("unknown group-by mode")

// GroupBy selects which identity half forms the aggregation key.
type GroupBy int

const (
	// GroupByName buckets commits by case-folded author name.
	GroupByName GroupBy = iota
	// GroupByEmail buckets commits by case-folded author email.
	GroupByEmail
)

// ParseGroupBy parses "name" or "email".
func ParseGroupBy(s string) (GroupBy, error) {
	switch s {
	case "name":
		return GroupByName, nil
	case "email":
		return GroupByEmail, nil
	}

	return GroupByName, fmt.Errorf("%w: %s (use name or email)", ErrUnknownGroupBy, s)
}

// String returns the flag spelling of the mode.
func (g GroupBy) String() string {
	if g == GroupByEmail {
		return "email"
	}

	return "name"
}

// variant is one observed spelling of a name or email.
type variant struct {
	value string
	count int
	seq   int
}

// variantSet counts distinct spellings in observation order.
type variantSet struct {
	index map[string]int
	all   []variant
}

func newVariantSet() *variantSet {
	return &variantSet{index: map[string]int{}}
}

func (vs *variantSet) observe(value string) {
	if i, ok := vs.index[value]; ok {
		vs.all[i].count++

		return
	}

	vs.index[value] = len(vs.all)
	vs.all = append(vs.all, variant{value: value, count: 1, seq: len(vs.all)})
}

// joined renders the variants most-frequent first, ties in first-seen order,
// separated by semicolons.
func (vs *variantSet) joined() string {
	ordered := make([]variant, len(vs.all))
	copy(ordered, vs.all)

	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].count != ordered[j].count {
			return ordered[i].count > ordered[j].count
		}

		return ordered[i].seq < ordered[j].seq
	})

	values := make([]string, len(ordered))
	for i, v := range ordered {
		values[i] = v.value
	}

	return strings.Join(values, ";")
}

// Record accumulates all counters for one author group key. Records are
// created lazily on first sight, mutated additively and never deleted.
type Record struct {
	Commits       int
	AddedLines    int
	DeletedLines  int
	AddedChars    int
	DeletedChars  int
	ModifiedChars int

	canonical string // first-seen spelling of the keyed identity half
	variants  *variantSet
	seq       int // first-seen order of the key, for deterministic ties
}

// Row is one rendered output row. Column meanings follow the output
// contract: author, email, commits, added_lines, deleted_lines,
// added+deleted_lines, net_lines, added_chars, deleted_chars,
// modified_chars, added_or_modified_chars, net_chars.
type Row struct {
	Author               string
	Email                string
	Commits              int
	AddedLines           int
	DeletedLines         int
	AddedPlusDeleted     int
	NetLines             int
	AddedChars           int
	DeletedChars         int
	ModifiedChars        int
	AddedOrModifiedChars int
	NetChars             int
}

// Aggregator resolves commit identities to group keys and maintains the
// per-key records. It is not safe for concurrent use; the engine folds
// commits from a single goroutine.
type Aggregator struct {
	mode    GroupBy
	folder  cases.Caser
	records map[string]*Record
}

// NewAggregator creates an aggregator for the given grouping mode.
func NewAggregator(mode GroupBy) *Aggregator {
	return &Aggregator{
		mode:    mode,
		folder:  cases.Fold(),
		records: map[string]*Record{},
	}
}

// ObserveCommit resolves (name, email) to the group key under the active
// mode, creates the record on first sight, registers the alias spellings
// and increments the commit counter. Returns the key.
func (a *Aggregator) ObserveCommit(name, email string) string {
	keyed, other := name, email
	if a.mode == GroupByEmail {
		keyed, other = email, name
	}

	key := a.folder.String(keyed)

	rec, ok := a.records[key]
	if !ok {
		rec = &Record{
			canonical: keyed, // first-seen wins
			variants:  newVariantSet(),
			seq:       len(a.records),
		}
		a.records[key] = rec
	}

	rec.variants.observe(other)
	rec.Commits++

	return key
}

// Apply adds one commit's patch stats to the keyed record. Unknown keys are
// ignored; keys only exist through ObserveCommit.
func (a *Aggregator) Apply(key string, stats PatchStats) {
	rec, ok := a.records[key]
	if !ok {
		return
	}

	rec.AddedLines += stats.AddedLines
	rec.DeletedLines += stats.DeletedLines
	rec.AddedChars += stats.AddedChars
	rec.DeletedChars += stats.DeletedChars
	rec.ModifiedChars += stats.ModifiedChars
}

// Len returns the number of distinct group keys seen so far.
func (a *Aggregator) Len() int {
	return len(a.records)
}

// Rows renders one output row per key, sorted by descending
// modified_chars+added_chars; equal weights fall back to first-seen key
// order so repeated runs produce identical output.
func (a *Aggregator) Rows() []Row {
	recs := make([]*Record, 0, len(a.records))
	for _, rec := range a.records {
		recs = append(recs, rec)
	}

	sort.Slice(recs, func(i, j int) bool {
		wi := recs[i].ModifiedChars + recs[i].AddedChars
		wj := recs[j].ModifiedChars + recs[j].AddedChars

		if wi != wj {
			return wi > wj
		}

		return recs[i].seq < recs[j].seq
	})

	rows := make([]Row, len(recs))
	for i, rec := range recs {
		rows[i] = a.renderRow(rec)
	}

	return rows
}

func (a *Aggregator) renderRow(rec *Record) Row {
	author := rec.canonical
	email := rec.variants.joined()

	if a.mode == GroupByEmail {
		author, email = email, author
	}

	return Row{
		Author:               author,
		Email:                email,
		Commits:              rec.Commits,
		AddedLines:           rec.AddedLines,
		DeletedLines:         rec.DeletedLines,
		AddedPlusDeleted:     rec.AddedLines + rec.DeletedLines,
		NetLines:             rec.AddedLines - rec.DeletedLines,
		AddedChars:           rec.AddedChars,
		DeletedChars:         rec.DeletedChars,
		ModifiedChars:        rec.ModifiedChars,
		AddedOrModifiedChars: rec.ModifiedChars + rec.AddedChars,
		NetChars:             rec.AddedChars - rec.DeletedChars,
	}
}
