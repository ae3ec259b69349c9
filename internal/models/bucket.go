package models

import (
	"errors"
	"fmt"
	"time"
)

// Granularity is the calendar resolution used to group events.
type Granularity string

const (
	Day   Granularity = "day"
	Week  Granularity = "week"
	Month Granularity = "month"
	Year  Granularity = "year"
)

// ParseGranularity parses a granularity name.
func ParseGranularity(s string) (Granularity, error) {
	switch g := Granularity(s); g {
	case Day, Week, Month, Year:
		return g, nil
	default:
		return "", fmt.Errorf("invalid granularity %q: must be day, week, month or year", s)
	}
}

// Bucket aggregates the events of one calendar period.
// Period is the first instant of that period in the events' location.
type Bucket struct {
	Granularity Granularity `json:"granularity"`
	Period      time.Time   `json:"period"`
	Counts      Counts      `json:"counts"`
}

// Total returns the summed count across kinds.
func (b *Bucket) Total() int {
	return b.Counts.Total()
}

// Validate checks bucket invariants.
func (b *Bucket) Validate() error {
	if b.Period.IsZero() {
		return errors.New("bucket period must not be zero")
	}
	for kind, n := range b.Counts {
		if n < 0 {
			return fmt.Errorf("bucket count for %s must not be negative", kind)
		}
	}
	return nil
}

// Span is a closed time range.
type Span struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Duration returns End - Start.
func (s Span) Duration() time.Duration {
	return s.End.Sub(s.Start)
}

// IntervalStat summarizes the gaps between consecutive events.
type IntervalStat struct {
	Count    int           `json:"count"` // number of intervals, one less than events
	Mean     time.Duration `json:"mean"`
	Median   time.Duration `json:"median"`
	Max      time.Duration `json:"max"`
	Min      time.Duration `json:"min"`
	Longest  Span          `json:"longest"`  // quietest gap
	Shortest Span          `json:"shortest"` // burst window
}
