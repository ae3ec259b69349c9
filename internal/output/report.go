package output

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/rewired-gh/linkedlens/internal/analysis"
	"github.com/rewired-gh/linkedlens/internal/calfmt"
	"github.com/rewired-gh/linkedlens/internal/cyclic"
	"github.com/rewired-gh/linkedlens/internal/extremum"
	"github.com/rewired-gh/linkedlens/internal/models"
)

func count(n int) string {
	return humanize.Comma(int64(n))
}

func countCells(c models.Counts) []string {
	return []string{
		count(c.Get(models.KindReaction)),
		count(c.Get(models.KindComment)),
		count(c.Total()),
	}
}

// Files prints the presence of every expected export file.
func (p *Printer) Files(files []models.FileStatus) {
	t := p.NewTable("Status", "File", "Path")
	found := 0
	for _, f := range files {
		if f.Present {
			found++
		}
		t.AddRow(p.Presence(f.Present), f.Name, f.Path)
	}
	t.Render()
	p.Print("%d of %d files found", found, len(files))
}

// Kinds prints the analysis catalogue.
func (p *Printer) Kinds() {
	t := p.NewTable("Kind", "Sources", "Description")
	for _, k := range analysis.Kinds() {
		var sources string
		for i, s := range analysis.Sources(k) {
			if i > 0 {
				sources += ", "
			}
			sources += string(s)
		}
		t.AddRow(string(k), sources, analysis.Describe(k))
	}
	t.Render()
}

// Snapshot prints a one-line summary of a loaded dataset.
func (p *Printer) Snapshot(ds *models.Dataset) {
	p.Info("Snapshot %s loaded %s: %s interactions, %s connections, %s saved jobs, %s positions",
		ds.ID()[:8],
		humanize.Time(ds.LoadedAt()),
		count(len(ds.Events())),
		count(len(ds.Connections())),
		count(len(ds.SavedJobs())),
		count(len(ds.Positions())),
	)
	for _, src := range models.Sources() {
		if err := ds.SourceError(src); err != nil {
			p.Warning("%s unavailable: %v", src, err)
		}
		if n := ds.Dropped(src); n > 0 {
			p.Warning("%s: %s rows skipped for unreadable dates", src, count(n))
		}
	}
}

// Report prints one analysis result with its narratives.
func (p *Printer) Report(rep analysis.Report, f calfmt.Formatter) {
	p.Header(fmt.Sprintf("%s  %s", rep.Kind, p.Dim(analysis.Describe(rep.Kind))))

	switch rep.Status {
	case analysis.StatusNoData:
		p.Warning("No data for %s", rep.Kind)
		return
	case analysis.StatusFailed:
		p.Error("%s failed: %v", rep.Kind, rep.Err)
		return
	}

	switch v := rep.Payload.(type) {
	case analysis.MonthlyTrend:
		p.buckets(v.Buckets, f)
		p.milestones(v.Milestones, f)
	case analysis.CumulativeTrend:
		p.buckets(v.Monthly, f)
		p.milestones(v.Milestones, f)
	case extremum.Peaks:
		p.peaks(v, f)
	case analysis.IntervalReport:
		p.intervals(v, f)
	case analysis.ExtremePeriods:
		p.extremes(v, f)
	case []cyclic.BandCount:
		t := p.NewTable("Band", "Interactions")
		for _, b := range v {
			t.AddRow(f.Band(b.Band), count(b.Count))
		}
		t.Render()
	case cyclic.Heatmap:
		p.heatmap(v, f)
	case []cyclic.MonthCount:
		t := p.NewTable("Month", "Interactions")
		for _, m := range v {
			t.AddRow(f.MonthName(m.Month), count(m.Count))
		}
		t.Render()
	case analysis.SavedJobsSummary:
		p.savedJobs(v, f)
	case analysis.Journey:
		p.journey(v, f)
	case analysis.SectorBreakdown:
		t := p.NewTable("Sector", "Connections", "Share")
		for _, s := range v.Shares {
			t.AddRow(s.Sector, count(s.Count), f.Percent(s.Percent))
		}
		t.Render()
	case analysis.NetworkGrowth:
		p.network(v, f)
	default:
		p.Print("%+v", v)
	}

	for _, n := range rep.Narratives {
		p.Print("%s", n)
	}
}

func (p *Printer) buckets(buckets []models.Bucket, f calfmt.Formatter) {
	t := p.NewTable("Month", "Reactions", "Comments", "Total")
	for _, b := range buckets {
		t.AddRow(append([]string{f.Month(b.Period)}, countCells(b.Counts)...)...)
	}
	t.Render()
}

func (p *Printer) milestones(ms []analysis.Milestone, f calfmt.Formatter) {
	if len(ms) == 0 {
		return
	}
	t := p.NewTable("Started", "Position")
	for _, m := range ms {
		t.AddRow(f.Month(m.At), analysis.PositionLabel(models.PositionRecord{Title: m.Title, Company: m.Company}))
	}
	t.Render()
}

func (p *Printer) peaks(pk extremum.Peaks, f calfmt.Formatter) {
	t := p.NewTable("Period", "Date", "Reactions", "Comments", "Total")
	t.AddRow(append([]string{"day", f.Day(pk.Day.Period)}, countCells(pk.Day.Counts)...)...)
	t.AddRow(append([]string{"week", f.Week(pk.Week.Period)}, countCells(pk.Week.Counts)...)...)
	t.AddRow(append([]string{"month", f.Month(pk.Month.Period)}, countCells(pk.Month.Counts)...)...)
	t.Render()
}

func (p *Printer) intervals(rep analysis.IntervalReport, f calfmt.Formatter) {
	t := p.NewTable("Kind", "Intervals", "Mean", "Median", "Shortest", "Longest")
	for _, row := range rep.Rows {
		kind := string(row.Kind)
		if kind == "" {
			kind = "all"
		}
		s := row.Stat
		t.AddRow(kind, count(s.Count), f.Duration(s.Mean), f.Duration(s.Median), f.Duration(s.Min), f.Duration(s.Max))
	}
	t.Render()
}

func (p *Printer) extremes(e analysis.ExtremePeriods, f calfmt.Formatter) {
	t := p.NewTable("", "From", "To", "Length")
	t.AddRow("quietest gap", f.DateTime(e.Quietest.Start), f.DateTime(e.Quietest.End), f.Duration(e.Quietest.Duration()))
	t.AddRow("densest burst", f.DateTime(e.Burst.Start), f.DateTime(e.Burst.End), f.Duration(e.Burst.Duration()))
	t.AddRow("peak month", f.Month(e.PeakMonth.Period), "", count(e.PeakMonth.Total()))
	t.AddRow("low month", f.Month(e.LowMonth.Period), "", count(e.LowMonth.Total()))
	t.Render()
}

func (p *Printer) heatmap(h cyclic.Heatmap, f calfmt.Formatter) {
	headers := []string{""}
	for _, b := range cyclic.Bands() {
		headers = append(headers, f.Band(b))
	}
	t := p.NewTable(headers...)
	for _, d := range cyclic.Weekdays() {
		row := []string{f.Weekday(d)}
		for _, b := range cyclic.Bands() {
			row = append(row, count(h.At(d, b)))
		}
		t.AddRow(row...)
	}
	t.Render()
}

func (p *Printer) savedJobs(s analysis.SavedJobsSummary, f calfmt.Formatter) {
	p.Print("Saved jobs: %s, peak in %s (%s)", p.Bold(count(s.Total)), f.Month(s.Peak.Period), count(s.Peak.Count))

	t := p.NewTable("Top companies", "Saved")
	for _, r := range s.TopCompanies {
		t.AddRow(r.Name, count(r.Count))
	}
	t.Render()

	t = p.NewTable("Top titles", "Saved")
	for _, r := range s.TopTitles {
		t.AddRow(r.Name, count(r.Count))
	}
	t.Render()
}

func (p *Printer) journey(j analysis.Journey, f calfmt.Formatter) {
	t := p.NewTable("From", "To", "Position", "Months")
	for _, e := range j.Entries {
		end := f.Month(e.Position.FinishedAt)
		if e.Position.Ongoing {
			end = "now"
		}
		t.AddRow(f.Month(e.Position.StartedAt), end, analysis.PositionLabel(e.Position), months(e.Months))
	}
	t.Render()
	p.Print("Average %s months, longest %s, shortest %s",
		months(j.AverageMonths), analysis.PositionLabel(j.Longest.Position),
		analysis.PositionLabel(j.Shortest.Position))
	if j.Skipped > 0 {
		p.Warning("%d positions skipped: end date not after start date", j.Skipped)
	}
}

func (p *Printer) network(g analysis.NetworkGrowth, f calfmt.Formatter) {
	t := p.NewTable("Month", "New connections")
	for _, m := range g.Monthly {
		t.AddRow(f.Month(m.Period), count(m.Count))
	}
	t.Render()
	p.Print("Total %s, %.1f per active month, most in %s, least in %s",
		p.Bold(count(g.Total)), g.AveragePerMonth, f.Month(g.Most.Period), f.Month(g.Least.Period))
}

func months(m float64) string {
	return humanize.FormatFloat("#,###.#", m)
}

// Elapsed describes how long ago t was, for snapshot history listings.
func Elapsed(t time.Time) string {
	return humanize.Time(t)
}
