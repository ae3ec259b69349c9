package cyclic

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/rewired-gh/linkedlens/internal/models"
)

func TestBandOf(t *testing.T) {
	tests := []struct {
		hour int
		want Band
	}{
		{0, Night},
		{4, Night},
		{5, Morning},
		{11, Morning},
		{12, Afternoon},
		{16, Afternoon},
		{17, Evening},
		{21, Evening},
		{22, Night},
		{23, Night},
	}

	for _, tt := range tests {
		if got := BandOf(tt.hour); got != tt.want {
			t.Errorf("BandOf(%d) = %s, want %s", tt.hour, got, tt.want)
		}
	}
}

func TestTimeOfDay_Dense(t *testing.T) {
	events := []models.Event{
		{Timestamp: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC), Kind: models.KindReaction},
		{Timestamp: time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC), Kind: models.KindComment},
		{Timestamp: time.Date(2024, 3, 5, 23, 0, 0, 0, time.UTC), Kind: models.KindReaction},
	}

	got := TimeOfDay(events)
	if len(got) != 4 {
		t.Fatalf("Expected 4 bands, got %d", len(got))
	}
	want := []int{2, 0, 0, 1}
	for i, bc := range got {
		if bc.Band != Bands()[i] {
			t.Errorf("Band %d out of order: %s", i, bc.Band)
		}
		if bc.Count != want[i] {
			t.Errorf("%s: expected %d, got %d", bc.Band, want[i], bc.Count)
		}
	}

	if empty := TimeOfDay(nil); len(empty) != 4 {
		t.Errorf("Expected 4 zero bands for no events, got %d", len(empty))
	}
}

func TestHeatmap(t *testing.T) {
	// 2024-03-04 is a Monday
	events := []models.Event{
		{Timestamp: time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)},
		{Timestamp: time.Date(2024, 3, 4, 10, 0, 0, 0, time.UTC)},
		{Timestamp: time.Date(2024, 3, 10, 22, 30, 0, 0, time.UTC)},
		{Timestamp: time.Date(2024, 3, 8, 13, 0, 0, 0, time.UTC)},
	}

	h := BuildHeatmap(events)
	if h.Total() != len(events) {
		t.Errorf("Expected %d events in grid, got %d", len(events), h.Total())
	}

	tests := []struct {
		day  string
		band Band
		want int
	}{
		{"Monday", Morning, 2},
		{"lundi", Morning, 2},
		{"LUNDI", Morning, 2},
		{"dimanche", Night, 1},
		{"Friday", Afternoon, 1},
		{"vendredi", Evening, 0},
		{"Tuesday", Morning, 0},
	}
	for _, tt := range tests {
		got, ok := h.Cell(tt.day, tt.band)
		if !ok {
			t.Errorf("Cell(%q) not found", tt.day)
			continue
		}
		if got != tt.want {
			t.Errorf("Cell(%q, %s) = %d, want %d", tt.day, tt.band, got, tt.want)
		}
	}

	if _, ok := h.Cell("someday", Morning); ok {
		t.Error("Expected unknown day name to be rejected")
	}

	day, n := h.BusiestDay()
	if day != time.Monday || n != 2 {
		t.Errorf("Expected Monday with 2, got %s with %d", day, n)
	}
	band, n := h.BusiestBand()
	if band != Morning || n != 2 {
		t.Errorf("Expected morning with 2, got %s with %d", band, n)
	}
}

func TestHeatmap_EmptyIsZeroFilled(t *testing.T) {
	h := BuildHeatmap(nil)
	for _, d := range Weekdays() {
		for _, b := range Bands() {
			if h.At(d, b) != 0 {
				t.Errorf("Expected zero at %s/%s", d, b)
			}
		}
	}
	if day, _ := h.BusiestDay(); day != time.Monday {
		t.Errorf("Expected Monday on an all-zero tie, got %s", day)
	}
}

func TestSeasonality_IgnoresYear(t *testing.T) {
	// one event per calendar month, spread over three years
	var events []models.Event
	for i := 0; i < 12; i++ {
		year := 2021 + i%3
		events = append(events, models.Event{
			Timestamp: time.Date(year, time.Month(i+1), 15, 12, 0, 0, 0, time.UTC),
		})
	}

	got := Seasonality(events)
	if len(got) != 12 {
		t.Fatalf("Expected 12 months, got %d", len(got))
	}
	for i, mc := range got {
		if mc.Month != time.Month(i+1) {
			t.Errorf("Month %d out of order: %s", i, mc.Month)
		}
		if mc.Count != 1 {
			t.Errorf("%s: expected 1, got %d", mc.Month, mc.Count)
		}
	}
}

func TestSeasonality_AccumulatesYears(t *testing.T) {
	var events []models.Event
	for year := 2021; year <= 2023; year++ {
		events = append(events, models.Event{Timestamp: time.Date(year, time.June, 1, 0, 0, 0, 0, time.UTC)})
	}
	if got := Seasonality(events)[time.June-1].Count; got != 3 {
		t.Errorf("Expected 3 June events, got %d", got)
	}
}

func TestBandCount_JSON(t *testing.T) {
	got, err := json.Marshal([]BandCount{{Band: Morning, Count: 2}, {Band: Night, Count: 1}})
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `[{"band":"morning","count":2},{"band":"night","count":1}]`
	if string(got) != want {
		t.Errorf("Marshal() = %s, want %s", got, want)
	}
}
