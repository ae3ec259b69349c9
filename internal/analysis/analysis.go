// Package analysis runs the named analyses over a dataset snapshot.
//
// Each Kind maps to one handler in a fixed registry. The Runner executes the
// requested kinds one after another in registry order and wraps each outcome
// in a Report. A failing or empty analysis never stops the others:
//
//	ok       the handler produced a payload
//	no_data  the inputs were empty (ErrEmptyDataset)
//	failed   a required source could not be loaded, or the handler errored
package analysis

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/rewired-gh/linkedlens/internal/calfmt"
	"github.com/rewired-gh/linkedlens/internal/logger"
	"github.com/rewired-gh/linkedlens/internal/models"
	"github.com/rewired-gh/linkedlens/internal/narrative"
)

// ErrEmptyDataset means an analysis had nothing to work on.
var ErrEmptyDataset = errors.New("no data")

// Kind names one analysis.
type Kind string

const (
	KindMonthly     Kind = "monthly"
	KindCumulative  Kind = "cumulative"
	KindPeaks       Kind = "peaks"
	KindIntervals   Kind = "intervals"
	KindExtremes    Kind = "extremes"
	KindTimeOfDay   Kind = "timeofday"
	KindHeatmap     Kind = "heatmap"
	KindSeasonality Kind = "seasonality"
	KindSavedJobs   Kind = "savedjobs"
	KindJourney     Kind = "journey"
	KindSectors     Kind = "sectors"
	KindNetwork     Kind = "network"
)

// KindAll expands to every kind.
const KindAll = "all"

// Status is the outcome of one analysis.
type Status string

const (
	StatusOK     Status = "ok"
	StatusNoData Status = "no_data"
	StatusFailed Status = "failed"
)

// Report is the result of one analysis.
type Report struct {
	ID         string   `json:"id"`
	Kind       Kind     `json:"kind"`
	Status     Status   `json:"status"`
	Err        error    `json:"-"`
	Payload    any      `json:"payload,omitempty"`
	Narratives []string `json:"narratives,omitempty"`
}

// Env carries what handlers need besides the dataset.
type Env struct {
	Format   calfmt.Formatter
	Narrator *narrative.Classifier
	TopN     int
}

// Handler computes one analysis. It returns ErrEmptyDataset when its inputs
// are empty.
type Handler func(ds *models.Dataset, env *Env) (payload any, narratives []string, err error)

type entry struct {
	kind        Kind
	description string
	sources     []models.Source
	handler     Handler
}

var interactionSources = []models.Source{models.SourceReactions, models.SourceComments}

// registry is iterated in declaration order.
var registry = []entry{
	{KindMonthly, "Monthly interaction trend with career milestones", interactionSources, monthly},
	{KindCumulative, "Cumulative interactions and month-to-month regularity", interactionSources, cumulative},
	{KindPeaks, "Busiest day, week and month", interactionSources, peaks},
	{KindIntervals, "Time between consecutive interactions", interactionSources, intervalStats},
	{KindExtremes, "Quietest gap, densest burst and extreme months", interactionSources, extremes},
	{KindTimeOfDay, "Interactions per part of the day", interactionSources, timeOfDay},
	{KindHeatmap, "Weekday by part-of-day heatmap", interactionSources, heatmap},
	{KindSeasonality, "Interactions per calendar month across years", interactionSources, seasonality},
	{KindSavedJobs, "Saved job postings by month, company and title", []models.Source{models.SourceSavedJobs}, savedJobs},
	{KindJourney, "Professional positions and their durations", []models.Source{models.SourcePositions}, journey},
	{KindSectors, "Share of connections per sector", []models.Source{models.SourceConnections}, sectors},
	{KindNetwork, "Connection growth by month", []models.Source{models.SourceConnections}, network},
}

// Kinds returns every kind in execution order.
func Kinds() []Kind {
	out := make([]Kind, len(registry))
	for i, e := range registry {
		out[i] = e.kind
	}
	return out
}

// Describe returns the one-line description of k.
func Describe(k Kind) string {
	if e, ok := lookup(k); ok {
		return e.description
	}
	return ""
}

// Sources returns the export sources k reads.
func Sources(k Kind) []models.Source {
	if e, ok := lookup(k); ok {
		return append([]models.Source(nil), e.sources...)
	}
	return nil
}

func lookup(k Kind) (entry, bool) {
	for _, e := range registry {
		if e.kind == k {
			return e, true
		}
	}
	return entry{}, false
}

// ParseKinds resolves names to kinds, expanding "all". The result follows
// execution order and holds each kind once.
func ParseKinds(names []string) ([]Kind, error) {
	want := make(map[Kind]bool)
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == KindAll {
			for _, k := range Kinds() {
				want[k] = true
			}
			continue
		}
		if _, ok := lookup(Kind(name)); !ok {
			return nil, fmt.Errorf("unknown analysis %q", name)
		}
		want[Kind(name)] = true
	}
	if len(want) == 0 {
		return nil, fmt.Errorf("no analysis selected")
	}

	out := make([]Kind, 0, len(want))
	for _, k := range Kinds() {
		if want[k] {
			out = append(out, k)
		}
	}
	return out, nil
}

// Runner executes analyses against snapshots.
type Runner struct {
	env Env
}

// NewRunner creates a Runner. topN bounds the ranked lists.
func NewRunner(f calfmt.Formatter, n *narrative.Classifier, topN int) *Runner {
	if topN < 1 {
		topN = 5
	}
	return &Runner{env: Env{Format: f, Narrator: n, TopN: topN}}
}

// Run executes kinds in registry order, whatever order they are given in.
func (r *Runner) Run(ds *models.Dataset, kinds []Kind) []Report {
	want := make(map[Kind]bool, len(kinds))
	for _, k := range kinds {
		want[k] = true
	}

	reports := make([]Report, 0, len(kinds))
	failed, empty := 0, 0
	for _, e := range registry {
		if !want[e.kind] {
			continue
		}
		rep := r.run(ds, e)
		switch rep.Status {
		case StatusFailed:
			failed++
		case StatusNoData:
			empty++
		}
		reports = append(reports, rep)
	}

	logger.Debug("Run: snapshot=%s kinds=%d failed=%d no_data=%d", ds.ID(), len(reports), failed, empty)
	return reports
}

// RunOne executes a single kind.
func (r *Runner) RunOne(ds *models.Dataset, k Kind) Report {
	e, ok := lookup(k)
	if !ok {
		return Report{ID: uuid.New().String(), Kind: k, Status: StatusFailed, Err: fmt.Errorf("unknown analysis %q", k)}
	}
	return r.run(ds, e)
}

func (r *Runner) run(ds *models.Dataset, e entry) Report {
	rep := Report{ID: uuid.New().String(), Kind: e.kind}

	// A kind fails only when every source it reads is broken.
	var sourceErrs []error
	for _, src := range e.sources {
		if err := ds.SourceError(src); err != nil {
			sourceErrs = append(sourceErrs, err)
		}
	}
	if len(sourceErrs) > 0 && len(sourceErrs) == len(e.sources) {
		rep.Status = StatusFailed
		rep.Err = errors.Join(sourceErrs...)
		logger.Warn("Analysis %s skipped: %v", e.kind, rep.Err)
		return rep
	}
	for _, err := range sourceErrs {
		logger.Warn("Analysis %s runs without a source: %v", e.kind, err)
	}

	payload, narratives, err := e.handler(ds, &r.env)
	switch {
	case errors.Is(err, ErrEmptyDataset):
		rep.Status = StatusNoData
		rep.Err = err
	case err != nil:
		rep.Status = StatusFailed
		rep.Err = fmt.Errorf("analysis %s: %w", e.kind, err)
		logger.Error("Analysis %s failed: %v", e.kind, err)
	default:
		rep.Status = StatusOK
		rep.Payload = payload
		rep.Narratives = narratives
	}
	return rep
}
