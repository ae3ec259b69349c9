// Package models defines the core domain entities for linkedlens.
// These models represent normalized activity events, the auxiliary export
// records (connections, saved jobs, positions) and the derived aggregates
// produced by the analytics packages.
//
// Terminology:
//   - Event: a single timestamped reaction or comment, the atomic unit of
//     trend and interval analysis.
//   - Bucket: the events sharing one calendar period at a given granularity.
//
// All models are value objects. Nothing downstream of the normalizer mutates
// them; derived structures are always built fresh.
package models

import (
	"errors"
	"time"
)

// EventKind identifies the export source an event came from.
type EventKind string

const (
	KindReaction EventKind = "reaction"
	KindComment  EventKind = "comment"
)

// EventKinds returns every kind in display order.
func EventKinds() []EventKind {
	return []EventKind{KindReaction, KindComment}
}

// Valid reports whether k is a known kind.
func (k EventKind) Valid() bool {
	return k == KindReaction || k == KindComment
}

// Event is a normalized, timestamped interaction.
type Event struct {
	Timestamp time.Time `json:"timestamp"`
	Kind      EventKind `json:"kind"`
}

// Validate checks that the event can flow into the analytics packages.
func (e *Event) Validate() error {
	if e.Timestamp.IsZero() {
		return errors.New("event timestamp must not be zero")
	}
	if !e.Kind.Valid() {
		return errors.New("event kind must be reaction or comment")
	}
	return nil
}

// Counts holds per-kind event counts.
type Counts map[EventKind]int

// Total returns the sum over all kinds.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// Get returns the count for kind, zero when absent.
func (c Counts) Get(kind EventKind) int {
	return c[kind]
}

// Clone returns an independent copy.
func (c Counts) Clone() Counts {
	out := make(Counts, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}
