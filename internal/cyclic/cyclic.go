// Package cyclic projects events onto recurring cycles: bands of the day,
// days of the week and months of the year.
//
// Every series here is dense. Cells without events are present with a zero
// count, unlike the sparse trend buckets of package aggregate.
package cyclic

import (
	"strings"
	"time"

	"github.com/rewired-gh/linkedlens/internal/models"
)

// Band is a part of the day.
type Band int

const (
	Morning   Band = iota // [05:00, 12:00)
	Afternoon             // [12:00, 17:00)
	Evening               // [17:00, 22:00)
	Night                 // [22:00, 05:00)
)

// Bands returns the bands in display order.
func Bands() []Band {
	return []Band{Morning, Afternoon, Evening, Night}
}

func (b Band) String() string {
	switch b {
	case Morning:
		return "morning"
	case Afternoon:
		return "afternoon"
	case Evening:
		return "evening"
	case Night:
		return "night"
	default:
		return "unknown"
	}
}

// MarshalText encodes the band by name.
func (b Band) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

// BandOf maps an hour in [0, 23] to its band.
func BandOf(hour int) Band {
	switch {
	case hour >= 5 && hour < 12:
		return Morning
	case hour >= 12 && hour < 17:
		return Afternoon
	case hour >= 17 && hour < 22:
		return Evening
	default:
		return Night
	}
}

// BandCount is one entry of the time-of-day series.
type BandCount struct {
	Band  Band `json:"band"`
	Count int  `json:"count"`
}

// TimeOfDay counts events per band, always returning the four bands.
func TimeOfDay(events []models.Event) []BandCount {
	var counts [4]int
	for _, e := range events {
		counts[BandOf(e.Timestamp.Hour())]++
	}
	out := make([]BandCount, 0, len(counts))
	for _, b := range Bands() {
		out = append(out, BandCount{Band: b, Count: counts[b]})
	}
	return out
}

// Weekdays returns Monday through Sunday.
func Weekdays() []time.Weekday {
	return []time.Weekday{
		time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
		time.Friday, time.Saturday, time.Sunday,
	}
}

// weekdayRow is the heatmap row of d, Monday first.
func weekdayRow(d time.Weekday) int {
	return (int(d) + 6) % 7
}

var frenchWeekdays = map[string]time.Weekday{
	"lundi":    time.Monday,
	"mardi":    time.Tuesday,
	"mercredi": time.Wednesday,
	"jeudi":    time.Thursday,
	"vendredi": time.Friday,
	"samedi":   time.Saturday,
	"dimanche": time.Sunday,
}

// ParseWeekday resolves an English or French day name, ignoring case.
func ParseWeekday(name string) (time.Weekday, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if d, ok := frenchWeekdays[name]; ok {
		return d, true
	}
	for _, d := range Weekdays() {
		if strings.ToLower(d.String()) == name {
			return d, true
		}
	}
	return 0, false
}

// Heatmap counts events per weekday and band. Rows run Monday to Sunday,
// columns follow Bands().
type Heatmap struct {
	Counts [7][4]int `json:"counts"`
}

// BuildHeatmap fills the full 7x4 grid.
func BuildHeatmap(events []models.Event) Heatmap {
	var h Heatmap
	for _, e := range events {
		h.Counts[weekdayRow(e.Timestamp.Weekday())][BandOf(e.Timestamp.Hour())]++
	}
	return h
}

// At returns the count of one cell.
func (h Heatmap) At(d time.Weekday, b Band) int {
	return h.Counts[weekdayRow(d)][b]
}

// Cell looks a cell up by day name. ok is false for an unknown name.
func (h Heatmap) Cell(day string, b Band) (int, bool) {
	d, ok := ParseWeekday(day)
	if !ok || b < Morning || b > Night {
		return 0, false
	}
	return h.At(d, b), true
}

// Total returns the number of events in the grid.
func (h Heatmap) Total() int {
	total := 0
	for _, row := range h.Counts {
		for _, n := range row {
			total += n
		}
	}
	return total
}

// BusiestDay returns the weekday with the most events, the earliest in
// week order on ties.
func (h Heatmap) BusiestDay() (time.Weekday, int) {
	best, bestCount := time.Monday, -1
	for _, d := range Weekdays() {
		n := 0
		for _, c := range h.Counts[weekdayRow(d)] {
			n += c
		}
		if n > bestCount {
			best, bestCount = d, n
		}
	}
	return best, bestCount
}

// BusiestBand returns the band with the most events, the earliest on ties.
func (h Heatmap) BusiestBand() (Band, int) {
	best, bestCount := Morning, -1
	for _, b := range Bands() {
		n := 0
		for _, row := range h.Counts {
			n += row[b]
		}
		if n > bestCount {
			best, bestCount = b, n
		}
	}
	return best, bestCount
}

// MonthCount is one entry of the seasonality series.
type MonthCount struct {
	Month time.Month `json:"month"`
	Count int        `json:"count"`
}

// Seasonality counts events per calendar month regardless of year,
// January through December.
func Seasonality(events []models.Event) []MonthCount {
	var counts [12]int
	for _, e := range events {
		counts[e.Timestamp.Month()-1]++
	}
	out := make([]MonthCount, 12)
	for i := range out {
		out[i] = MonthCount{Month: time.Month(i + 1), Count: counts[i]}
	}
	return out
}
