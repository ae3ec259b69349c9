package analysis

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rewired-gh/linkedlens/internal/aggregate"
	"github.com/rewired-gh/linkedlens/internal/extremum"
	"github.com/rewired-gh/linkedlens/internal/models"
	"github.com/rewired-gh/linkedlens/internal/narrative"
)

// Ranked is one entry of a frequency ranking.
type Ranked struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// SavedJobsSummary is the payload of KindSavedJobs.
type SavedJobsSummary struct {
	Total        int               `json:"total"`
	Monthly      []aggregate.Point `json:"monthly"`
	Peak         aggregate.Point   `json:"peak"`
	TopCompanies []Ranked          `json:"top_companies"`
	TopTitles    []Ranked          `json:"top_titles"`
}

// JourneyEntry is one position with its length in average months.
type JourneyEntry struct {
	Position models.PositionRecord `json:"position"`
	Months   float64               `json:"months"`
}

// Journey is the payload of KindJourney. Positions whose end does not come
// after their start are left out and counted in Skipped.
type Journey struct {
	Entries       []JourneyEntry `json:"entries"`
	Skipped       int            `json:"skipped"`
	AverageMonths float64        `json:"average_months"`
	Longest       JourneyEntry   `json:"longest"`
	Shortest      JourneyEntry   `json:"shortest"`
}

// SectorShare is the share of connections in one sector.
type SectorShare struct {
	Sector  string  `json:"sector"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// SectorBreakdown is the payload of KindSectors. Connections without a
// sector are not counted in Total.
type SectorBreakdown struct {
	Shares []SectorShare `json:"shares"`
	Total  int           `json:"total"`
}

// NetworkGrowth is the payload of KindNetwork.
type NetworkGrowth struct {
	Monthly         []aggregate.Point `json:"monthly"`
	Total           int               `json:"total"`
	Most            aggregate.Point   `json:"most"`
	Least           aggregate.Point   `json:"least"`
	AveragePerMonth float64           `json:"average_per_month"`
}

// rank counts non-empty names and returns the n most frequent, ties by name.
func rank(names []string, n int) []Ranked {
	counts := make(map[string]int)
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		counts[name]++
	}

	out := make([]Ranked, 0, len(counts))
	for name, c := range counts {
		out = append(out, Ranked{Name: name, Count: c})
	}
	slices.SortFunc(out, func(a, b Ranked) int {
		if a.Count != b.Count {
			return b.Count - a.Count
		}
		return strings.Compare(a.Name, b.Name)
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func savedJobs(ds *models.Dataset, env *Env) (any, []string, error) {
	jobs := ds.SavedJobs()
	if len(jobs) == 0 {
		return nil, nil, ErrEmptyDataset
	}

	ts := make([]time.Time, len(jobs))
	companies := make([]string, len(jobs))
	titles := make([]string, len(jobs))
	for i, j := range jobs {
		ts[i] = j.SavedAt
		companies[i] = j.Company
		titles[i] = j.Title
	}

	monthlyCounts := aggregate.Times(ts, models.Month)
	ext, ok := extremum.FindPoints(monthlyCounts)
	if !ok {
		return nil, nil, ErrEmptyDataset
	}

	summary := SavedJobsSummary{
		Total:        len(jobs),
		Monthly:      monthlyCounts,
		Peak:         ext.Max,
		TopCompanies: rank(companies, env.TopN),
		TopTitles:    rank(titles, env.TopN),
	}

	var out []string
	if len(summary.TopCompanies) > 0 && len(summary.TopTitles) > 0 {
		out = env.narrate(out, narrative.TopicSavedJobs, narrative.TierAny, narrative.Facts{
			"Period":  env.Format.Month(ext.Max.Period),
			"Company": summary.TopCompanies[0].Name,
			"Title":   summary.TopTitles[0].Name,
		})
	}
	return summary, out, nil
}

func journey(ds *models.Dataset, env *Env) (any, []string, error) {
	positions := ds.Positions()
	if len(positions) == 0 {
		return nil, nil, ErrEmptyDataset
	}
	slices.SortStableFunc(positions, func(a, b models.PositionRecord) int {
		return a.StartedAt.Compare(b.StartedAt)
	})

	var j Journey
	var sum float64
	for _, p := range positions {
		if p.Duration() <= 0 {
			j.Skipped++
			continue
		}
		e := JourneyEntry{Position: p, Months: p.DurationMonths()}
		if len(j.Entries) == 0 || e.Months > j.Longest.Months {
			j.Longest = e
		}
		if len(j.Entries) == 0 || e.Months < j.Shortest.Months {
			j.Shortest = e
		}
		j.Entries = append(j.Entries, e)
		sum += e.Months
	}
	if len(j.Entries) == 0 {
		return nil, nil, ErrEmptyDataset
	}
	j.AverageMonths = sum / float64(len(j.Entries))

	out := env.narrate(nil, narrative.TopicJourney, narrative.TierAny, narrative.Facts{
		"Count":   env.Format.Number(len(j.Entries)),
		"Average": fmt.Sprintf("%.1f", j.AverageMonths),
		"Longest": PositionLabel(j.Longest.Position),
	})
	return j, out, nil
}

// PositionLabel renders a position as "Title – Company", dropping empty parts.
func PositionLabel(p models.PositionRecord) string {
	switch {
	case p.Company == "":
		return p.Title
	case p.Title == "":
		return p.Company
	default:
		return p.Title + " – " + p.Company
	}
}

func sectors(ds *models.Dataset, env *Env) (any, []string, error) {
	connections := ds.Connections()
	names := make([]string, len(connections))
	for i, c := range connections {
		names[i] = c.Sector
	}

	ranked := rank(names, 0)
	if len(ranked) == 0 {
		return nil, nil, ErrEmptyDataset
	}

	var b SectorBreakdown
	for _, r := range ranked {
		b.Total += r.Count
	}
	for _, r := range ranked {
		b.Shares = append(b.Shares, SectorShare{
			Sector:  r.Name,
			Count:   r.Count,
			Percent: float64(r.Count) * 100 / float64(b.Total),
		})
	}

	out := env.narrate(nil, narrative.TopicSectors, narrative.TierAny, narrative.Facts{
		"Sector": b.Shares[0].Sector,
	})
	return b, out, nil
}

func network(ds *models.Dataset, env *Env) (any, []string, error) {
	connections := ds.Connections()
	if len(connections) == 0 {
		return nil, nil, ErrEmptyDataset
	}

	ts := make([]time.Time, len(connections))
	for i, c := range connections {
		ts[i] = c.ConnectedAt
	}
	monthlyCounts := aggregate.Times(ts, models.Month)
	ext, ok := extremum.FindPoints(monthlyCounts)
	if !ok {
		return nil, nil, ErrEmptyDataset
	}

	g := NetworkGrowth{
		Monthly:         monthlyCounts,
		Total:           len(connections),
		Most:            ext.Max,
		Least:           ext.Min,
		AveragePerMonth: float64(len(connections)) / float64(len(monthlyCounts)),
	}

	out := env.narrate(nil, narrative.TopicNetwork, narrative.TierAny, narrative.Facts{
		"Period": env.Format.Month(ext.Max.Period),
	})
	return g, out, nil
}
