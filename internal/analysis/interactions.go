package analysis

import (
	"slices"
	"time"

	"github.com/rewired-gh/linkedlens/internal/aggregate"
	"github.com/rewired-gh/linkedlens/internal/extremum"
	"github.com/rewired-gh/linkedlens/internal/intervals"
	"github.com/rewired-gh/linkedlens/internal/logger"
	"github.com/rewired-gh/linkedlens/internal/models"
	"github.com/rewired-gh/linkedlens/internal/narrative"
)

// Milestone marks the start of a position on a trend axis.
type Milestone struct {
	At      time.Time `json:"at"`
	Title   string    `json:"title"`
	Company string    `json:"company"`
}

// MonthlyTrend is the payload of KindMonthly.
type MonthlyTrend struct {
	Buckets    []models.Bucket `json:"buckets"`
	Best       models.Bucket   `json:"best"`
	Worst      models.Bucket   `json:"worst"`
	Milestones []Milestone     `json:"milestones"`
}

// CumulativeTrend is the payload of KindCumulative. Monthly holds running
// totals at each month end; Variation is the mean absolute change of the
// zero-filled monthly totals.
type CumulativeTrend struct {
	Points       []aggregate.CumulativePoint `json:"points"`
	Monthly      []models.Bucket             `json:"monthly"`
	Variation    float64                     `json:"variation"`
	HasVariation bool                        `json:"has_variation"`
	Milestones   []Milestone                 `json:"milestones"`
}

// IntervalRow holds the gap statistics of one kind; an empty Kind means
// every interaction together.
type IntervalRow struct {
	Kind models.EventKind    `json:"kind,omitempty"`
	Stat models.IntervalStat `json:"stat"`
}

// IntervalReport is the payload of KindIntervals.
type IntervalReport struct {
	Rows []IntervalRow `json:"rows"`
}

// ExtremePeriods is the payload of KindExtremes.
type ExtremePeriods struct {
	Quietest  models.Span   `json:"quietest"`
	Burst     models.Span   `json:"burst"`
	PeakMonth models.Bucket `json:"peak_month"`
	LowMonth  models.Bucket `json:"low_month"`
}

// narrate appends one rendered message to out. Rendering failures are
// logged and skipped so a bad template never hides the numbers.
func (env *Env) narrate(out []string, topic narrative.Topic, tier narrative.Tier, facts narrative.Facts) []string {
	if env.Narrator == nil {
		return out
	}
	msg, err := env.Narrator.Message(topic, tier, facts)
	if err != nil {
		logger.Warn("Narrative %s/%s: %v", topic, tier, err)
		return out
	}
	return append(out, msg)
}

func milestones(ds *models.Dataset) []Milestone {
	positions := ds.Positions()
	slices.SortStableFunc(positions, func(a, b models.PositionRecord) int {
		return a.StartedAt.Compare(b.StartedAt)
	})
	out := make([]Milestone, 0, len(positions))
	for _, p := range positions {
		out = append(out, Milestone{At: p.StartedAt, Title: p.Title, Company: p.Company})
	}
	return out
}

func monthly(ds *models.Dataset, env *Env) (any, []string, error) {
	events := ds.Events()
	if len(events) == 0 {
		return nil, nil, ErrEmptyDataset
	}

	buckets := aggregate.ByGranularity(events, models.Month)
	ext, ok := extremum.Find(buckets)
	if !ok {
		return nil, nil, ErrEmptyDataset
	}

	trend := MonthlyTrend{
		Buckets:    buckets,
		Best:       ext.Max,
		Worst:      ext.Min,
		Milestones: milestones(ds),
	}

	f := env.Format
	var out []string
	out = env.narrate(out, narrative.TopicTrendSummary, narrative.TierAny, narrative.Facts{
		"Best":       f.Month(ext.Max.Period),
		"BestValue":  f.Number(ext.MaxValue),
		"Worst":      f.Month(ext.Min.Period),
		"WorstValue": f.Number(ext.MinValue),
	})
	out = env.narrate(out, narrative.TopicVolume, narrative.VolumeLadder.Classify(float64(ext.MaxValue)), nil)
	return trend, out, nil
}

func cumulative(ds *models.Dataset, env *Env) (any, []string, error) {
	events := ds.Events()
	if len(events) == 0 {
		return nil, nil, ErrEmptyDataset
	}

	points := aggregate.Cumulative(events)
	trend := CumulativeTrend{
		Points:     points,
		Monthly:    aggregate.CumulativeMonthly(points),
		Milestones: milestones(ds),
	}

	totals := aggregate.Dense(aggregate.Totals(aggregate.ByGranularity(events, models.Month)), models.Month)
	series := make([]int, len(totals))
	for i, p := range totals {
		series[i] = p.Count
	}
	trend.Variation, trend.HasVariation = narrative.MeanAbsVariation(series)

	var out []string
	if ext, ok := extremum.FindPoints(totals); ok {
		f := env.Format
		out = env.narrate(out, narrative.TopicTrendSummary, narrative.TierAny, narrative.Facts{
			"Best":       f.Month(ext.Max.Period),
			"BestValue":  f.Number(ext.MaxValue),
			"Worst":      f.Month(ext.Min.Period),
			"WorstValue": f.Number(ext.MinValue),
		})
	}
	if trend.HasVariation {
		out = env.narrate(out, narrative.TopicRegularity, narrative.RegularityLadder.Classify(trend.Variation), nil)
	}
	return trend, out, nil
}

func peaks(ds *models.Dataset, env *Env) (any, []string, error) {
	p, ok := extremum.FindPeaks(ds.Events())
	if !ok {
		return nil, nil, ErrEmptyDataset
	}

	out := env.narrate(nil, narrative.TopicPeakMonth, narrative.PeakLadder.Classify(float64(p.Month.Total())), narrative.Facts{
		"Period": env.Format.Month(p.Month.Period),
	})
	return p, out, nil
}

func intervalStats(ds *models.Dataset, env *Env) (any, []string, error) {
	var rep IntervalReport
	for _, kind := range models.EventKinds() {
		if stat, ok := intervals.Analyze(ds.EventsOf(kind)); ok {
			rep.Rows = append(rep.Rows, IntervalRow{Kind: kind, Stat: stat})
		}
	}
	all, ok := intervals.Analyze(ds.Events())
	if !ok {
		return nil, nil, ErrEmptyDataset
	}
	rep.Rows = append(rep.Rows, IntervalRow{Stat: all})

	out := env.narrate(nil, narrative.TopicIntervals, narrative.TierAny, narrative.Facts{
		"Mean":   env.Format.Duration(all.Mean),
		"Median": env.Format.Duration(all.Median),
	})
	return rep, out, nil
}

func extremes(ds *models.Dataset, env *Env) (any, []string, error) {
	events := ds.Events()
	stat, ok := intervals.Analyze(events)
	if !ok {
		return nil, nil, ErrEmptyDataset
	}
	ext, ok := extremum.Find(aggregate.ByGranularity(events, models.Month))
	if !ok {
		return nil, nil, ErrEmptyDataset
	}

	periods := ExtremePeriods{
		Quietest:  stat.Longest,
		Burst:     stat.Shortest,
		PeakMonth: ext.Max,
		LowMonth:  ext.Min,
	}

	out := env.narrate(nil, narrative.TopicExtremes, narrative.PeakLadder.Classify(float64(ext.MaxValue)), narrative.Facts{
		"Peak": env.Format.Month(ext.Max.Period),
		"Low":  env.Format.Month(ext.Min.Period),
	})
	return periods, out, nil
}
