package extremum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewired-gh/linkedlens/internal/aggregate"
	"github.com/rewired-gh/linkedlens/internal/models"
)

func month(m time.Month, reactions, comments int) models.Bucket {
	return models.Bucket{
		Granularity: models.Month,
		Period:      time.Date(2024, m, 1, 0, 0, 0, 0, time.UTC),
		Counts:      models.Counts{models.KindReaction: reactions, models.KindComment: comments},
	}
}

func TestFind(t *testing.T) {
	buckets := []models.Bucket{
		month(time.March, 4, 1),
		month(time.January, 2, 0),
		month(time.February, 7, 3),
		month(time.April, 1, 0),
	}

	res, ok := Find(buckets)
	require.True(t, ok)
	assert.Equal(t, time.February, res.Max.Period.Month())
	assert.Equal(t, 10, res.MaxValue)
	assert.Equal(t, time.April, res.Min.Period.Month())
	assert.Equal(t, 1, res.MinValue)

	for _, b := range buckets {
		assert.GreaterOrEqual(t, res.MaxValue, b.Total())
		assert.LessOrEqual(t, res.MinValue, b.Total())
	}
}

func TestFind_EarliestTieWins(t *testing.T) {
	// input deliberately out of order
	buckets := []models.Bucket{
		month(time.May, 5, 0),
		month(time.February, 3, 2),
		month(time.March, 1, 0),
		month(time.January, 0, 1),
	}

	res, ok := Find(buckets)
	require.True(t, ok)
	assert.Equal(t, time.February, res.Max.Period.Month())
	assert.Equal(t, time.January, res.Min.Period.Month())
}

func TestFind_Empty(t *testing.T) {
	_, ok := Find(nil)
	assert.False(t, ok)

	_, ok = FindPoints([]aggregate.Point{})
	assert.False(t, ok)
}

func TestFindPoints(t *testing.T) {
	points := []aggregate.Point{
		{Period: time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC), Count: 4},
		{Period: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), Count: 4},
		{Period: time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC), Count: 1},
	}

	res, ok := FindPoints(points)
	require.True(t, ok)
	assert.Equal(t, time.January, res.Max.Period.Month())
	assert.Equal(t, 1, res.MinValue)
}

func TestFindPeaks_Independent(t *testing.T) {
	ts := func(m time.Month, d, h int) time.Time { return time.Date(2024, m, d, h, 0, 0, 0, time.UTC) }
	var events []models.Event
	// three events on one day in January
	for h := 8; h < 11; h++ {
		events = append(events, models.Event{Timestamp: ts(time.January, 10, h), Kind: models.KindReaction})
	}
	// four events spread over March, two per week
	for _, d := range []int{4, 5, 18, 19} {
		events = append(events, models.Event{Timestamp: ts(time.March, d, 9), Kind: models.KindComment})
	}

	peaks, ok := FindPeaks(events)
	require.True(t, ok)
	assert.Equal(t, time.January, peaks.Day.Period.Month())
	assert.Equal(t, 3, peaks.Day.Total())
	assert.Equal(t, time.January, peaks.Week.Period.Month())
	assert.Equal(t, time.March, peaks.Month.Period.Month())
	assert.Equal(t, 4, peaks.Month.Total())
}

func TestFindPeaks_Empty(t *testing.T) {
	_, ok := FindPeaks(nil)
	assert.False(t, ok)
}
