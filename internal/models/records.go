package models

import (
	"errors"
	"time"
)

// ConnectionRecord is one row of the connections export.
type ConnectionRecord struct {
	ConnectedAt time.Time `json:"connected_at"`
	Sector      string    `json:"sector,omitempty"`
	Company     string    `json:"company,omitempty"`
	Position    string    `json:"position,omitempty"`
}

// Validate checks that the connection has a usable date.
func (c *ConnectionRecord) Validate() error {
	if c.ConnectedAt.IsZero() {
		return errors.New("connected at must not be zero")
	}
	return nil
}

// SavedJobRecord is one job posting the user bookmarked.
type SavedJobRecord struct {
	SavedAt time.Time `json:"saved_at"`
	Company string    `json:"company"`
	Title   string    `json:"title"`
}

// Validate checks that the saved job has a usable date.
func (s *SavedJobRecord) Validate() error {
	if s.SavedAt.IsZero() {
		return errors.New("saved at must not be zero")
	}
	return nil
}

// PositionRecord is one professional position.
//
// FinishedAt >= StartedAt is not guaranteed: malformed exports can invert
// the two, so Duration may be zero or negative and callers must skip those.
type PositionRecord struct {
	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
	Title      string    `json:"title"`
	Company    string    `json:"company"`
	Ongoing    bool      `json:"ongoing"` // FinishedAt was absent and defaulted to the load time
}

// Validate checks that the position has a usable start date.
func (p *PositionRecord) Validate() error {
	if p.StartedAt.IsZero() {
		return errors.New("started at must not be zero")
	}
	if p.FinishedAt.IsZero() {
		return errors.New("finished at must not be zero")
	}
	return nil
}

// Duration returns FinishedAt - StartedAt, possibly non-positive.
func (p *PositionRecord) Duration() time.Duration {
	return p.FinishedAt.Sub(p.StartedAt)
}

// daysPerMonth is the average Gregorian month length.
const daysPerMonth = 30.44

// DurationMonths returns the position length in average months.
func (p *PositionRecord) DurationMonths() float64 {
	return p.Duration().Hours() / 24 / daysPerMonth
}
