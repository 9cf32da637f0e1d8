package repository

import (
	"sort"
	"time"

	"github.com/yourusername/futalgo/internal/models"
)

// Snapshot is an immutable, chronologically ordered view of the store
type Snapshot struct {
	Version  uint64
	LoadedAt time.Time

	results      []models.Match
	fixtures     []models.Match
	competitions []string
	teams        []string
}

// Overview summarizes a snapshot
type Overview struct {
	Matches      int `json:"matches"`
	Fixtures     int `json:"fixtures"`
	Competitions int `json:"competitions"`
	Teams        int `json:"teams"`
}

func newSnapshot(version uint64, loadedAt time.Time, matches []models.Match) *Snapshot {
	snap := &Snapshot{Version: version, LoadedAt: loadedAt}
	competitions := make(map[string]bool)
	teams := make(map[string]bool)
	for _, m := range matches {
		if m.IsFixture() {
			snap.fixtures = append(snap.fixtures, m)
		} else {
			snap.results = append(snap.results, m)
		}
		competitions[m.Competition] = true
		teams[m.HomeTeam] = true
		teams[m.AwayTeam] = true
	}
	snap.competitions = sortedKeys(competitions)
	snap.teams = sortedKeys(teams)
	return snap
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Results returns the completed matches, oldest first. The slice must not be modified.
func (s *Snapshot) Results() []models.Match {
	return s.results
}

// Fixtures returns the matches not played yet, oldest first
func (s *Snapshot) Fixtures() []models.Match {
	return s.fixtures
}

// Competitions returns every competition name, sorted
func (s *Snapshot) Competitions() []string {
	return s.competitions
}

// Teams returns every team name, sorted
func (s *Snapshot) Teams() []string {
	return s.teams
}

// HasTeam reports whether team appears in the snapshot
func (s *Snapshot) HasTeam(team string) bool {
	i := sort.SearchStrings(s.teams, team)
	return i < len(s.teams) && s.teams[i] == team
}

// Upcoming returns fixtures dated from the day of from up to days days ahead
func (s *Snapshot) Upcoming(from time.Time, days int) []models.Match {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	end := start.AddDate(0, 0, days)
	var out []models.Match
	for _, m := range s.fixtures {
		if !m.Date.Before(start) && m.Date.Before(end) {
			out = append(out, m)
		}
	}
	return out
}

// Overview returns the dataset totals
func (s *Snapshot) Overview() Overview {
	return Overview{
		Matches:      len(s.results),
		Fixtures:     len(s.fixtures),
		Competitions: len(s.competitions),
		Teams:        len(s.teams),
	}
}
