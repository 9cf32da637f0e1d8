// Package ranking ranks teams and leagues by their historical hit rate on a
// market.
package ranking

import (
	"errors"
	"fmt"
	"sort"

	"github.com/yourusername/futalgo/internal/form"
	"github.com/yourusername/futalgo/internal/markets"
	"github.com/yourusername/futalgo/internal/models"
)

// AllCompetitions disables the competition filter of RankMarket
const AllCompetitions = ""

// ErrNotRankable is returned for markets without a hit-rate definition
var ErrNotRankable = errors.New("market is not rankable")

// TeamEntry is one row of the team ranking
type TeamEntry struct {
	Name    string                         `json:"name"`
	League  string                         `json:"league"`
	HitRate float64                        `json:"hit_rate"`
	Samples int                            `json:"samples"`
	Hits    int                            `json:"hits"`
	Last5   [form.Last5Size]models.Outcome `json:"last5"`
}

// LeagueEntry is one row of the league ranking
type LeagueEntry struct {
	Name    string  `json:"name"`
	HitRate float64 `json:"hit_rate"`
	Samples int     `json:"samples"`
	Hits    int     `json:"hits"`
}

// Result is the ranking of one market
type Result struct {
	Market  markets.Config `json:"-"`
	Teams   []TeamEntry    `json:"teams"`
	Leagues []LeagueEntry  `json:"leagues"`
}

// Ranker computes hit rates over a fixed set of completed matches
type Ranker struct {
	table   *markets.Table
	history []models.Match
	teams   []string
	leagues []string
}

// New creates a ranker over history. Fixtures are ignored.
func New(table *markets.Table, history []models.Match) *Ranker {
	if table == nil {
		table = markets.Default()
	}
	r := &Ranker{table: table}

	seenTeams := make(map[string]bool)
	seenLeagues := make(map[string]bool)
	for i := range history {
		m := history[i]
		if m.IsFixture() {
			continue
		}
		r.history = append(r.history, m)
		for _, team := range []string{m.HomeTeam, m.AwayTeam} {
			if !seenTeams[team] {
				seenTeams[team] = true
				r.teams = append(r.teams, team)
			}
		}
		if !seenLeagues[m.Competition] {
			seenLeagues[m.Competition] = true
			r.leagues = append(r.leagues, m.Competition)
		}
	}
	return r
}

func (r *Ranker) market(id markets.ID) (markets.Config, error) {
	market, err := r.table.Get(id)
	if err != nil {
		return markets.Config{}, err
	}
	if !market.Rankable {
		return markets.Config{}, fmt.Errorf("%w: %s", ErrNotRankable, id)
	}
	return market, nil
}

// TeamRate returns the hit rate, valid sample count and recent outcomes of team
func (r *Ranker) TeamRate(team string, id markets.ID) (float64, int, [form.Last5Size]models.Outcome, error) {
	market, err := r.market(id)
	if err != nil {
		return 0, 0, [form.Last5Size]models.Outcome{}, err
	}
	rec := form.TeamRecord(team, market, r.history)
	return rec.Rate(), rec.Samples, rec.Last5, nil
}

// LeagueRate returns the hit rate and valid sample count of a competition
func (r *Ranker) LeagueRate(league string, id markets.ID) (float64, int, error) {
	market, err := r.market(id)
	if err != nil {
		return 0, 0, err
	}
	rec := form.LeagueRecord(league, market, r.history)
	return rec.Rate(), rec.Samples, nil
}

// RankMarket ranks every team and league with enough valid samples. The team
// list is restricted to teams whose main competition is competition unless it
// is AllCompetitions. Equal rates keep first-appearance order.
func (r *Ranker) RankMarket(id markets.ID, competition string) (Result, error) {
	market, err := r.market(id)
	if err != nil {
		return Result{}, err
	}
	minSamples := market.MinSamples()
	result := Result{Market: market}

	for _, league := range r.leagues {
		rec := form.LeagueRecord(league, market, r.history)
		if rec.Samples < minSamples {
			continue
		}
		result.Leagues = append(result.Leagues, LeagueEntry{
			Name:    league,
			HitRate: rec.Rate(),
			Samples: rec.Samples,
			Hits:    rec.Hits,
		})
	}

	for _, team := range r.teams {
		rec := form.TeamRecord(team, market, r.history)
		if rec.Samples < minSamples {
			continue
		}
		league := r.MainCompetition(team)
		if competition != AllCompetitions && league != competition {
			continue
		}
		result.Teams = append(result.Teams, TeamEntry{
			Name:    team,
			League:  league,
			HitRate: rec.Rate(),
			Samples: rec.Samples,
			Hits:    rec.Hits,
			Last5:   rec.Last5,
		})
	}

	sort.SliceStable(result.Leagues, func(i, j int) bool {
		return result.Leagues[i].HitRate > result.Leagues[j].HitRate
	})
	sort.SliceStable(result.Teams, func(i, j int) bool {
		return result.Teams[i].HitRate > result.Teams[j].HitRate
	})
	return result, nil
}

// MainCompetition returns the competition team played most often in, ties
// going to the alphabetically first name
func (r *Ranker) MainCompetition(team string) string {
	counts := make(map[string]int)
	for i := range r.history {
		if r.history[i].Involves(team) {
			counts[r.history[i].Competition]++
		}
	}
	best, bestCount := "", 0
	for league, n := range counts {
		if n > bestCount || (n == bestCount && league < best) {
			best, bestCount = league, n
		}
	}
	return best
}

// Teams returns every team in first-appearance order
func (r *Ranker) Teams() []string {
	return append([]string(nil), r.teams...)
}

// Leagues returns every competition in first-appearance order
func (r *Ranker) Leagues() []string {
	return append([]string(nil), r.leagues...)
}
