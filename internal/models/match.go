package models

import (
	"time"

	"github.com/google/uuid"
)

// Score is a pair of goal counts for the home and away sides
type Score struct {
	Home int `json:"home"`
	Away int `json:"away"`
}

// Total returns the combined goals of both sides
func (s Score) Total() int {
	return s.Home + s.Away
}

// IsZero reports whether both sides are scoreless
func (s Score) IsZero() bool {
	return s.Home == 0 && s.Away == 0
}

// Match represents a single result or fixture row of a competition
type Match struct {
	ID            uuid.UUID `json:"id"`
	Sequence      int       `json:"sequence"`
	Date          time.Time `json:"date" validate:"required"`
	HomeTeam      string    `json:"home_team" validate:"required,max=100"`
	AwayTeam      string    `json:"away_team" validate:"required,max=100,nefield=HomeTeam"`
	Competition   string    `json:"competition" validate:"required"`
	HalfTimeRaw   string    `json:"half_time_raw"`
	FullTimeRaw   string    `json:"full_time_raw"`
	HalfTime      Score     `json:"half_time"`
	FullTime      Score     `json:"full_time"`
	HalfTimeKnown bool      `json:"half_time_known"`
}

// IsFixture reports whether the match has not been played yet
func (m *Match) IsFixture() bool {
	return m.HalfTimeRaw == ""
}

// Involves reports whether team played on either side
func (m *Match) Involves(team string) bool {
	return m.HomeTeam == team || m.AwayTeam == team
}

// IsHome reports whether team was the home side
func (m *Match) IsHome(team string) bool {
	return m.HomeTeam == team
}

// GoalsFor returns the half-time and full-time goals scored by team
func (m *Match) GoalsFor(team string) (halfTime, fullTime int) {
	if m.IsHome(team) {
		return m.HalfTime.Home, m.FullTime.Home
	}
	return m.HalfTime.Away, m.FullTime.Away
}

// GoalsAgainst returns the half-time and full-time goals conceded by team
func (m *Match) GoalsAgainst(team string) (halfTime, fullTime int) {
	if m.IsHome(team) {
		return m.HalfTime.Away, m.FullTime.Away
	}
	return m.HalfTime.Home, m.FullTime.Home
}

// Before orders matches chronologically, falling back to ingestion order
func (m *Match) Before(other *Match) bool {
	if m.Date.Equal(other.Date) {
		return m.Sequence < other.Sequence
	}
	return m.Date.Before(other.Date)
}
