package models

import (
	"errors"
	"testing"
	"time"
)

func TestEventValidate(t *testing.T) {
	tests := []struct {
		name    string
		event   Event
		wantErr bool
	}{
		{
			name:    "valid reaction",
			event:   Event{Timestamp: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), Kind: KindReaction},
			wantErr: false,
		},
		{
			name:    "zero timestamp",
			event:   Event{Kind: KindComment},
			wantErr: true,
		},
		{
			name:    "unknown kind",
			event:   Event{Timestamp: time.Now(), Kind: "share"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.event.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Event.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCountsTotal(t *testing.T) {
	c := Counts{KindReaction: 3, KindComment: 2}
	if c.Total() != 5 {
		t.Errorf("Expected total 5, got %d", c.Total())
	}
	if c.Get("share") != 0 {
		t.Errorf("Expected 0 for absent kind, got %d", c.Get("share"))
	}

	clone := c.Clone()
	clone[KindReaction] = 10
	if c[KindReaction] != 3 {
		t.Error("Clone must not share storage with the original")
	}
}

func TestPositionDuration(t *testing.T) {
	start := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	p := PositionRecord{StartedAt: start, FinishedAt: start.AddDate(0, 0, 3044)}
	if got := p.DurationMonths(); got < 99.99 || got > 100.01 {
		t.Errorf("Expected ~100 months, got %f", got)
	}

	inverted := PositionRecord{StartedAt: start, FinishedAt: start.AddDate(0, -1, 0)}
	if inverted.Duration() >= 0 {
		t.Errorf("Expected negative duration for inverted position, got %v", inverted.Duration())
	}
}

func TestParseGranularity(t *testing.T) {
	for _, s := range []string{"day", "week", "month", "year"} {
		if _, err := ParseGranularity(s); err != nil {
			t.Errorf("ParseGranularity(%q) unexpected error: %v", s, err)
		}
	}
	if _, err := ParseGranularity("quarter"); err == nil {
		t.Error("Expected error for unknown granularity")
	}
}

func TestDatasetIsImmutable(t *testing.T) {
	ts := time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)
	events := []Event{{Timestamp: ts, Kind: KindReaction}, {Timestamp: ts, Kind: KindComment}}
	srcErr := errors.New("boom")

	d := NewDataset(DatasetParts{
		Events:       events,
		SourceErrors: map[Source]error{SourcePositions: srcErr},
		Dropped:      map[Source]int{SourceReactions: 2},
	})

	events[0].Kind = KindComment
	if d.Events()[0].Kind != KindReaction {
		t.Error("Dataset must not alias the caller's slice")
	}

	got := d.Events()
	got[1].Kind = KindReaction
	if d.Events()[1].Kind != KindComment {
		t.Error("Events() must return a copy")
	}

	if len(d.EventsOf(KindComment)) != 1 {
		t.Errorf("Expected 1 comment, got %d", len(d.EventsOf(KindComment)))
	}
	if !errors.Is(d.SourceError(SourcePositions), srcErr) {
		t.Error("Expected positions source error to be kept")
	}
	if d.Dropped(SourceReactions) != 2 {
		t.Errorf("Expected 2 dropped reactions, got %d", d.Dropped(SourceReactions))
	}
	if d.ID() == "" {
		t.Error("Expected dataset ID to be set")
	}
	if d.ID() == NewDataset(DatasetParts{}).ID() {
		t.Error("Expected distinct IDs per snapshot")
	}
}
