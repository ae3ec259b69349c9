// Package extremum finds the most and least active periods of a bucket set.
package extremum

import (
	"slices"

	"github.com/rewired-gh/linkedlens/internal/aggregate"
	"github.com/rewired-gh/linkedlens/internal/models"
)

// Result holds the maximum and minimum items with their values.
type Result[T any] struct {
	Max      T   `json:"max"`
	MaxValue int `json:"max_value"`
	Min      T   `json:"min"`
	MinValue int `json:"min_value"`
}

// FindFunc scans items in order and keeps the first maximum and first
// minimum of value. ok is false for an empty slice.
func FindFunc[T any](items []T, value func(T) int) (Result[T], bool) {
	var res Result[T]
	if len(items) == 0 {
		return res, false
	}

	res.Max, res.MaxValue = items[0], value(items[0])
	res.Min, res.MinValue = items[0], value(items[0])
	for _, item := range items[1:] {
		v := value(item)
		if v > res.MaxValue {
			res.Max, res.MaxValue = item, v
		}
		if v < res.MinValue {
			res.Min, res.MinValue = item, v
		}
	}
	return res, true
}

// Find returns the buckets with the highest and lowest total count. Ties go
// to the chronologically first bucket.
func Find(buckets []models.Bucket) (Result[models.Bucket], bool) {
	sorted := slices.Clone(buckets)
	slices.SortStableFunc(sorted, func(a, b models.Bucket) int {
		return a.Period.Compare(b.Period)
	})
	return FindFunc(sorted, func(b models.Bucket) int { return b.Total() })
}

// FindPoints is Find for single-series points.
func FindPoints(points []aggregate.Point) (Result[aggregate.Point], bool) {
	sorted := slices.Clone(points)
	slices.SortStableFunc(sorted, func(a, b aggregate.Point) int {
		return a.Period.Compare(b.Period)
	})
	return FindFunc(sorted, aggregate.Point.Total)
}

// Peaks holds the busiest day, week and month, each detected on its own
// bucket set.
type Peaks struct {
	Day   models.Bucket `json:"day"`
	Week  models.Bucket `json:"week"`
	Month models.Bucket `json:"month"`
}

// FindPeaks computes the peak of every granularity. ok is false without events.
func FindPeaks(events []models.Event) (Peaks, bool) {
	var p Peaks
	if len(events) == 0 {
		return p, false
	}

	for _, target := range []struct {
		g   models.Granularity
		dst *models.Bucket
	}{
		{models.Day, &p.Day},
		{models.Week, &p.Week},
		{models.Month, &p.Month},
	} {
		res, ok := Find(aggregate.ByGranularity(events, target.g))
		if !ok {
			return Peaks{}, false
		}
		*target.dst = res.Max
	}
	return p, true
}
