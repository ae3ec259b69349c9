package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// Source names one export file family.
type Source string

const (
	SourceReactions   Source = "reactions"
	SourceComments    Source = "comments"
	SourcePositions   Source = "positions"
	SourceConnections Source = "connections"
	SourceSavedJobs   Source = "saved_jobs"
)

// Sources returns every analysed source in load order.
func Sources() []Source {
	return []Source{SourceReactions, SourceComments, SourcePositions, SourceConnections, SourceSavedJobs}
}

// FileStatus reports whether one expected export file was found.
type FileStatus struct {
	Name    string `json:"name"`
	Path    string `json:"path"` // relative to the export directory
	Present bool   `json:"present"`
}

// DatasetParts carries the pieces a Dataset is built from.
type DatasetParts struct {
	LoadedAt     time.Time
	Files        []FileStatus
	Events       []Event
	Connections  []ConnectionRecord
	SavedJobs    []SavedJobRecord
	Positions    []PositionRecord
	SourceErrors map[Source]error
	Dropped      map[Source]int
}

// Dataset is an immutable snapshot of one load of the export directory.
// Accessors hand out copies; a refresh builds a new Dataset instead of
// editing this one.
type Dataset struct {
	id           string
	loadedAt     time.Time
	files        []FileStatus
	events       []Event
	connections  []ConnectionRecord
	savedJobs    []SavedJobRecord
	positions    []PositionRecord
	sourceErrors map[Source]error
	dropped      map[Source]int
}

// NewDataset freezes parts into a snapshot with a fresh ID.
func NewDataset(parts DatasetParts) *Dataset {
	d := &Dataset{
		id:           uuid.New().String(),
		loadedAt:     parts.LoadedAt,
		files:        slices.Clone(parts.Files),
		events:       slices.Clone(parts.Events),
		connections:  slices.Clone(parts.Connections),
		savedJobs:    slices.Clone(parts.SavedJobs),
		positions:    slices.Clone(parts.Positions),
		sourceErrors: make(map[Source]error, len(parts.SourceErrors)),
		dropped:      make(map[Source]int, len(parts.Dropped)),
	}
	for k, v := range parts.SourceErrors {
		d.sourceErrors[k] = v
	}
	for k, v := range parts.Dropped {
		d.dropped[k] = v
	}
	return d
}

// EmptyDataset returns a snapshot with no records, used before the first load.
func EmptyDataset() *Dataset {
	return NewDataset(DatasetParts{})
}

func (d *Dataset) ID() string          { return d.id }
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

// Files returns the presence flags of the expected export files.
func (d *Dataset) Files() []FileStatus { return slices.Clone(d.files) }

// Events returns reactions and comments together, in load order.
func (d *Dataset) Events() []Event { return slices.Clone(d.events) }

// EventsOf returns the events of a single kind.
func (d *Dataset) EventsOf(kind EventKind) []Event {
	var out []Event
	for _, e := range d.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

func (d *Dataset) Connections() []ConnectionRecord { return slices.Clone(d.connections) }
func (d *Dataset) SavedJobs() []SavedJobRecord     { return slices.Clone(d.savedJobs) }
func (d *Dataset) Positions() []PositionRecord     { return slices.Clone(d.positions) }

// SourceError returns the load error recorded for src, if any.
func (d *Dataset) SourceError(src Source) error {
	return d.sourceErrors[src]
}

// Dropped returns how many rows of src were discarded for unparseable dates.
func (d *Dataset) Dropped(src Source) int {
	return d.dropped[src]
}
