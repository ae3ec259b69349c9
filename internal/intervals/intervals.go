// Package intervals measures the gaps between consecutive events.
package intervals

import (
	"slices"
	"time"

	"github.com/rewired-gh/linkedlens/internal/models"
)

// Gaps returns the intervals between consecutive timestamps after sorting
// them ascending. The input is not modified.
func Gaps(ts []time.Time) []models.Span {
	sorted := slices.Clone(ts)
	slices.SortFunc(sorted, func(a, b time.Time) int { return a.Compare(b) })

	if len(sorted) < 2 {
		return nil
	}
	gaps := make([]models.Span, 0, len(sorted)-1)
	for i := 1; i < len(sorted); i++ {
		gaps = append(gaps, models.Span{Start: sorted[i-1], End: sorted[i]})
	}
	return gaps
}

// Analyze summarizes the gaps of events. ok is false with fewer than two
// events, which callers report as "no data".
//
// Longest and Shortest bound the first maximum and first minimum gap in
// chronological order.
func Analyze(events []models.Event) (models.IntervalStat, bool) {
	ts := make([]time.Time, len(events))
	for i, e := range events {
		ts[i] = e.Timestamp
	}
	return AnalyzeTimes(ts)
}

// AnalyzeTimes is Analyze over bare timestamps.
func AnalyzeTimes(ts []time.Time) (models.IntervalStat, bool) {
	gaps := Gaps(ts)
	if len(gaps) == 0 {
		return models.IntervalStat{}, false
	}

	stat := models.IntervalStat{
		Count:    len(gaps),
		Longest:  gaps[0],
		Shortest: gaps[0],
	}
	var sum time.Duration
	durations := make([]time.Duration, len(gaps))
	for i, g := range gaps {
		d := g.Duration()
		durations[i] = d
		sum += d
		if d > stat.Longest.Duration() {
			stat.Longest = g
		}
		if d < stat.Shortest.Duration() {
			stat.Shortest = g
		}
	}

	stat.Mean = sum / time.Duration(len(gaps))
	stat.Max = stat.Longest.Duration()
	stat.Min = stat.Shortest.Duration()
	stat.Median = median(durations)
	return stat, true
}

// median averages the two middle values for an even count.
func median(ds []time.Duration) time.Duration {
	sorted := slices.Clone(ds)
	slices.Sort(sorted)
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}
