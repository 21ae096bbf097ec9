// Package authorship computes per-author authorship statistics over a
// sequence of commits, at line and character granularity.
//
// The package is a synchronous fold: an Engine consumes one CommitRecord at
// a time, a Walker classifies each line of the commit's unified diff and
// drives an Accumulator, and an Aggregator buckets the resulting counts
// under case-folded author group keys. The core performs no I/O and never
// logs; progress is exposed through the Sink interface.
package authorship
