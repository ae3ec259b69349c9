// Package aggregate groups events into calendar buckets and builds the
// cumulative series.
//
// Trend buckets are sparse: a period with no event produces no bucket.
// Consumers that need a continuous axis must fill gaps themselves.
package aggregate

import (
	"slices"
	"time"

	"github.com/rewired-gh/linkedlens/internal/models"
)

// PeriodStart truncates t to the first instant of its period in t's location.
// Weeks start on Monday.
func PeriodStart(t time.Time, g models.Granularity) time.Time {
	y, m, d := t.Date()
	loc := t.Location()
	switch g {
	case models.Day:
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	case models.Week:
		offset := (int(t.Weekday()) + 6) % 7
		return time.Date(y, m, d-offset, 0, 0, 0, 0, loc)
	case models.Month:
		return time.Date(y, m, 1, 0, 0, 0, 0, loc)
	case models.Year:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, loc)
	}
}

// ByGranularity counts events per kind for every non-empty period,
// returned in chronological order.
func ByGranularity(events []models.Event, g models.Granularity) []models.Bucket {
	index := make(map[int64]int)
	buckets := make([]models.Bucket, 0)

	for _, e := range events {
		start := PeriodStart(e.Timestamp, g)
		key := start.UnixNano()
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, models.Bucket{
				Granularity: g,
				Period:      start,
				Counts:      make(models.Counts),
			})
		}
		buckets[i].Counts[e.Kind]++
	}

	slices.SortFunc(buckets, func(a, b models.Bucket) int {
		return a.Period.Compare(b.Period)
	})
	return buckets
}

// Point is one period of a single-series count.
type Point struct {
	Period time.Time `json:"period"`
	Count  int       `json:"count"`
}

// Total returns the point's count.
func (p Point) Total() int { return p.Count }

// Times buckets bare timestamps the way ByGranularity buckets events.
// It serves the record families that are not interactions.
func Times(ts []time.Time, g models.Granularity) []Point {
	index := make(map[int64]int)
	points := make([]Point, 0)

	for _, t := range ts {
		start := PeriodStart(t, g)
		key := start.UnixNano()
		i, ok := index[key]
		if !ok {
			i = len(points)
			index[key] = i
			points = append(points, Point{Period: start})
		}
		points[i].Count++
	}

	slices.SortFunc(points, func(a, b Point) int {
		return a.Period.Compare(b.Period)
	})
	return points
}

// Totals collapses per-kind buckets into a single series.
func Totals(buckets []models.Bucket) []Point {
	out := make([]Point, len(buckets))
	for i := range buckets {
		out[i] = Point{Period: buckets[i].Period, Count: buckets[i].Total()}
	}
	return out
}

// Next returns the start of the period following start.
func Next(start time.Time, g models.Granularity) time.Time {
	switch g {
	case models.Week:
		return start.AddDate(0, 0, 7)
	case models.Month:
		return start.AddDate(0, 1, 0)
	case models.Year:
		return start.AddDate(1, 0, 0)
	default:
		return start.AddDate(0, 0, 1)
	}
}

// Dense inserts zero-count points for the periods missing between the first
// and last point. points must be sorted and share granularity g.
func Dense(points []Point, g models.Granularity) []Point {
	if len(points) == 0 {
		return []Point{}
	}
	out := make([]Point, 0, len(points))
	next := 0
	last := points[len(points)-1].Period
	for p := points[0].Period; !p.After(last); p = Next(p, g) {
		if next < len(points) && points[next].Period.Equal(p) {
			out = append(out, points[next])
			next++
			continue
		}
		out = append(out, Point{Period: p})
	}
	return out
}

// CumulativePoint is the running count per kind up to and including Timestamp.
type CumulativePoint struct {
	Timestamp time.Time     `json:"timestamp"`
	Counts    models.Counts `json:"counts"`
}

// Cumulative groups events by exact timestamp and returns a prefix sum per
// kind over strictly increasing timestamps.
func Cumulative(events []models.Event) []CumulativePoint {
	type group struct {
		at     time.Time
		counts models.Counts
	}
	index := make(map[int64]int)
	groups := make([]group, 0)

	for _, e := range events {
		key := e.Timestamp.UnixNano()
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, group{at: e.Timestamp, counts: make(models.Counts)})
		}
		groups[i].counts[e.Kind]++
	}

	slices.SortFunc(groups, func(a, b group) int {
		return a.at.Compare(b.at)
	})

	running := make(models.Counts)
	points := make([]CumulativePoint, 0, len(groups))
	for _, g := range groups {
		for kind, n := range g.counts {
			running[kind] += n
		}
		points = append(points, CumulativePoint{Timestamp: g.at, Counts: running.Clone()})
	}
	return points
}

// CumulativeMonthly re-buckets a cumulative series to months. Each month
// carries the level reached at its last point; months without points keep
// the previous level. Bucket counts are therefore running totals.
func CumulativeMonthly(points []CumulativePoint) []models.Bucket {
	if len(points) == 0 {
		return []models.Bucket{}
	}

	first := PeriodStart(points[0].Timestamp, models.Month)
	last := PeriodStart(points[len(points)-1].Timestamp, models.Month)

	buckets := make([]models.Bucket, 0)
	level := make(models.Counts)
	next := 0
	for month := first; !month.After(last); month = Next(month, models.Month) {
		end := Next(month, models.Month)
		for next < len(points) && points[next].Timestamp.Before(end) {
			level = points[next].Counts
			next++
		}
		buckets = append(buckets, models.Bucket{
			Granularity: models.Month,
			Period:      month,
			Counts:      level.Clone(),
		})
	}
	return buckets
}
