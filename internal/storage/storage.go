// Package storage provides thread-safe in-memory storage of the current
// dataset snapshot.
//
// A snapshot is never edited. Refresh reads the data directory again, builds
// a new models.Dataset and swaps it in, so analyses holding the previous
// snapshot keep a consistent view. A bounded history of past loads is kept
// for display.
package storage

import (
	"fmt"
	"sync"
	"time"

	"github.com/rewired-gh/linkedlens/internal/loader"
	"github.com/rewired-gh/linkedlens/internal/logger"
	"github.com/rewired-gh/linkedlens/internal/models"
	"github.com/rewired-gh/linkedlens/internal/normalize"
)

// SnapshotInfo summarizes one past load.
type SnapshotInfo struct {
	ID       string    `json:"id"`
	LoadedAt time.Time `json:"loaded_at"`
	Events   int       `json:"events"`
	Dropped  int       `json:"dropped"`
}

// Storage holds the current dataset snapshot
type Storage struct {
	current *models.Dataset
	history []SnapshotInfo
	mu      sync.RWMutex

	// Configuration
	dataDir    string
	location   *time.Location
	maxHistory int
	now        func() time.Time
}

// New creates a Storage reading from dataDir. It starts with an empty
// snapshot until the first Refresh.
func New(dataDir string, location *time.Location, maxHistory int) *Storage {
	if location == nil {
		location = time.UTC
	}
	if maxHistory < 1 {
		maxHistory = 1
	}
	return &Storage{
		current:    models.EmptyDataset(),
		history:    make([]SnapshotInfo, 0),
		dataDir:    dataDir,
		location:   location,
		maxHistory: maxHistory,
		now:        time.Now,
	}
}

// Current returns the snapshot in use.
func (s *Storage) Current() *models.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Refresh loads the data directory into a new snapshot and makes it current.
// On error the previous snapshot stays in place.
func (s *Storage) Refresh() (*models.Dataset, error) {
	ds, err := Build(s.dataDir, s.location, s.now())
	if err != nil {
		return nil, err
	}

	info := SnapshotInfo{ID: ds.ID(), LoadedAt: ds.LoadedAt(), Events: len(ds.Events())}
	for _, src := range models.Sources() {
		info.Dropped += ds.Dropped(src)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.current = ds
	s.history = append(s.history, info)
	s.rotateHistory()

	logger.Debug("Snapshot %s loaded with %d events", info.ID, info.Events)
	return ds, nil
}

// History returns past loads, oldest first.
func (s *Storage) History() []SnapshotInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]SnapshotInfo, len(s.history))
	copy(out, s.history)
	return out
}

// rotateHistory keeps only the most recent entries. Callers hold the lock.
func (s *Storage) rotateHistory() {
	if len(s.history) > s.maxHistory {
		start := len(s.history) - s.maxHistory
		s.history = append([]SnapshotInfo(nil), s.history[start:]...)
	}
}

// Build reads dir and normalizes every source into a Dataset. Positions
// without an end date end at now.
func Build(dir string, location *time.Location, now time.Time) (*models.Dataset, error) {
	res, err := loader.Load(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to load exports: %w", err)
	}

	events, diag := normalize.Interactions(location,
		normalize.InteractionSource{
			Source:  models.SourceReactions,
			Kind:    models.KindReaction,
			Records: res.Tables[models.SourceReactions],
		},
		normalize.InteractionSource{
			Source:  models.SourceComments,
			Kind:    models.KindComment,
			Records: res.Tables[models.SourceComments],
		},
	)

	dropped := make(map[models.Source]int)
	for src, n := range diag.Dropped {
		dropped[src] = n
	}

	connections, n := normalize.Connections(res.Tables[models.SourceConnections], location)
	dropped[models.SourceConnections] = n
	savedJobs, n := normalize.SavedJobs(res.Tables[models.SourceSavedJobs], location)
	dropped[models.SourceSavedJobs] = n
	positions, n := normalize.Positions(res.Tables[models.SourcePositions], location, now)
	dropped[models.SourcePositions] = n

	for src, n := range dropped {
		if n > 0 {
			logger.Info("Ignored %d %s rows with unreadable dates", n, src)
		}
	}

	return models.NewDataset(models.DatasetParts{
		LoadedAt:     now,
		Files:        res.Files,
		Events:       events,
		Connections:  connections,
		SavedJobs:    savedJobs,
		Positions:    positions,
		SourceErrors: res.Errors,
		Dropped:      dropped,
	}), nil
}
