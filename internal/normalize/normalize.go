// Package normalize turns raw export rows into the canonical event stream and
// the auxiliary record types.
//
// Rows whose timestamp is missing or cannot be parsed are dropped. This is
// intentional data loss: it is never reported as an error, only counted in
// Diagnostics so callers can surface it if they want to.
package normalize

import (
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/rewired-gh/linkedlens/internal/loader"
	"github.com/rewired-gh/linkedlens/internal/logger"
	"github.com/rewired-gh/linkedlens/internal/models"
)

// layouts are the formats seen in LinkedIn exports, tried before the
// generic parser.
var layouts = []string{
	"2006-01-02 15:04:05 MST",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"02 Jan 2006",
	"2 Jan 2006",
	"Jan 2006",
	"1/2/06, 3:04 PM",
	"01/02/2006 15:04",
	"2006",
}

// ParseTime parses a free-form export timestamp in loc. Offsets or zone names
// present in s fix the instant, and the result is always expressed in loc so
// calendar projections agree across rows.
func ParseTime(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}

	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), true
		}
	}

	t, err := dateparse.ParseIn(s, loc)
	if err != nil || t.IsZero() {
		return time.Time{}, false
	}
	return t.In(loc), true
}

// Diagnostics counts kept and dropped rows per source.
type Diagnostics struct {
	Kept    map[models.Source]int
	Dropped map[models.Source]int
}

func newDiagnostics() Diagnostics {
	return Diagnostics{
		Kept:    make(map[models.Source]int),
		Dropped: make(map[models.Source]int),
	}
}

// TotalDropped sums dropped rows over every source.
func (d Diagnostics) TotalDropped() int {
	total := 0
	for _, n := range d.Dropped {
		total += n
	}
	return total
}

// InteractionSource is one family of interaction rows.
type InteractionSource struct {
	Source  models.Source
	Kind    models.EventKind
	Column  string // timestamp column, "Date" in the exports
	Records []loader.Record
}

// Interactions converts every source into events, preserving input order.
// No deduplication happens: identical timestamps are distinct events.
// Empty input yields an empty stream, which callers treat as "no data".
func Interactions(loc *time.Location, sources ...InteractionSource) ([]models.Event, Diagnostics) {
	diag := newDiagnostics()
	events := make([]models.Event, 0)

	for _, src := range sources {
		column := src.Column
		if column == "" {
			column = "Date"
		}
		for _, rec := range src.Records {
			ts, ok := ParseTime(rec.Get(column), loc)
			if !ok {
				diag.Dropped[src.Source]++
				continue
			}
			events = append(events, models.Event{Timestamp: ts, Kind: src.Kind})
			diag.Kept[src.Source]++
		}
		if n := diag.Dropped[src.Source]; n > 0 {
			logger.Debug("Dropped %d %s rows with unparseable %q", n, src.Source, column)
		}
	}

	return events, diag
}

// Connections converts connection rows. Sector, company and position are optional.
func Connections(records []loader.Record, loc *time.Location) ([]models.ConnectionRecord, int) {
	out := make([]models.ConnectionRecord, 0, len(records))
	dropped := 0
	for _, rec := range records {
		ts, ok := ParseTime(rec.Get("Connected On"), loc)
		if !ok {
			dropped++
			continue
		}
		out = append(out, models.ConnectionRecord{
			ConnectedAt: ts,
			Sector:      rec.Get("Sector"),
			Company:     rec.Get("Company"),
			Position:    rec.Get("Position"),
		})
	}
	return out, dropped
}

// SavedJobs converts saved-job rows.
func SavedJobs(records []loader.Record, loc *time.Location) ([]models.SavedJobRecord, int) {
	out := make([]models.SavedJobRecord, 0, len(records))
	dropped := 0
	for _, rec := range records {
		ts, ok := ParseTime(rec.Get("Saved Date"), loc)
		if !ok {
			dropped++
			continue
		}
		out = append(out, models.SavedJobRecord{
			SavedAt: ts,
			Company: rec.Get("Company Name"),
			Title:   rec.Get("Job Title"),
		})
	}
	return out, dropped
}

// Positions converts position rows. A missing or unparseable end date means
// the position is ongoing and ends at now.
func Positions(records []loader.Record, loc *time.Location, now time.Time) ([]models.PositionRecord, int) {
	out := make([]models.PositionRecord, 0, len(records))
	dropped := 0
	for _, rec := range records {
		start, ok := ParseTime(rec.Get("Started On"), loc)
		if !ok {
			dropped++
			continue
		}
		p := models.PositionRecord{
			StartedAt: start,
			Title:     rec.Get("Title"),
			Company:   rec.Get("Company Name"),
		}
		if end, ok := ParseTime(rec.Get("Finished On"), loc); ok {
			p.FinishedAt = end
		} else {
			p.FinishedAt = now
			p.Ongoing = true
		}
		out = append(out, p)
	}
	return out, dropped
}
