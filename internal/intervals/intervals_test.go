package intervals

import (
	"testing"
	"time"

	"github.com/rewired-gh/linkedlens/internal/models"
)

var base = time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC)

func events(offsets ...time.Duration) []models.Event {
	out := make([]models.Event, len(offsets))
	for i, o := range offsets {
		out[i] = models.Event{Timestamp: base.Add(o), Kind: models.KindReaction}
	}
	return out
}

func TestAnalyze_TwoEvents(t *testing.T) {
	stat, ok := Analyze(events(5*time.Hour, 0))
	if !ok {
		t.Fatal("Expected data for two events")
	}
	if stat.Count != 1 {
		t.Errorf("Expected 1 interval, got %d", stat.Count)
	}
	for name, d := range map[string]time.Duration{
		"mean": stat.Mean, "median": stat.Median, "max": stat.Max, "min": stat.Min,
	} {
		if d != 5*time.Hour {
			t.Errorf("Expected %s 5h, got %v", name, d)
		}
	}
	if !stat.Longest.Start.Equal(base) || !stat.Longest.End.Equal(base.Add(5*time.Hour)) {
		t.Errorf("Unexpected longest span: %+v", stat.Longest)
	}
	if stat.Shortest != stat.Longest {
		t.Error("Expected shortest and longest to be the same single gap")
	}
}

func TestAnalyze_NotEnoughEvents(t *testing.T) {
	tests := []struct {
		name   string
		events []models.Event
	}{
		{"none", nil},
		{"one", events(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, ok := Analyze(tt.events); ok {
				t.Error("Expected no data")
			}
		})
	}
}

func TestAnalyze_Stats(t *testing.T) {
	// gaps: 1h, 3h, 1h, 7h
	stat, ok := Analyze(events(0, time.Hour, 4*time.Hour, 5*time.Hour, 12*time.Hour))
	if !ok {
		t.Fatal("Expected data")
	}

	if stat.Count != 4 {
		t.Errorf("Expected 4 intervals, got %d", stat.Count)
	}
	if stat.Mean != 3*time.Hour {
		t.Errorf("Expected mean 3h, got %v", stat.Mean)
	}
	if stat.Median != 2*time.Hour {
		t.Errorf("Expected median 2h (average of 1h and 3h), got %v", stat.Median)
	}
	if stat.Max != 7*time.Hour || stat.Min != time.Hour {
		t.Errorf("Unexpected max/min: %v/%v", stat.Max, stat.Min)
	}
	// the first 1h gap wins over the later one
	if !stat.Shortest.Start.Equal(base) {
		t.Errorf("Expected earliest minimum gap, got %+v", stat.Shortest)
	}
	if stat.Longest.Duration() != 7*time.Hour || !stat.Longest.Start.Equal(base.Add(5*time.Hour)) {
		t.Errorf("Unexpected longest span: %+v", stat.Longest)
	}
}

func TestAnalyze_DoesNotMutateInput(t *testing.T) {
	in := events(3*time.Hour, 0, time.Hour)
	first := in[0].Timestamp

	Analyze(in)
	if !in[0].Timestamp.Equal(first) {
		t.Error("Analyze must not reorder its input")
	}
}

func TestAnalyze_DuplicateTimestamps(t *testing.T) {
	stat, ok := Analyze(events(0, 0, time.Hour))
	if !ok {
		t.Fatal("Expected data")
	}
	if stat.Min != 0 {
		t.Errorf("Expected zero minimum gap, got %v", stat.Min)
	}
}
