// Package form derives team strength figures from match history.
//
// Three measures coexist, each bound to the consumer that needs it:
// WeightedRecent feeds the match simulator, SimplePercentRecent feeds the tip
// selector and AllHistory feeds the hit-rate ranking.
package form

import (
	"github.com/yourusername/futalgo/internal/markets"
	"github.com/yourusername/futalgo/internal/models"
)

// Kind names a form measure
type Kind string

// Form measures
const (
	WeightedRecent      Kind = "weighted_recent"
	SimplePercentRecent Kind = "simple_percent_recent"
	AllHistory          Kind = "all_history"
)

// Stat names a single aggregated series of a form
type Stat string

// Series produced by the weighted profiler
const (
	GoalsForHT     Stat = "goals_for_ht"
	GoalsAgainstHT Stat = "goals_against_ht"
	GoalsForFT     Stat = "goals_for_ft"
	GoalsAgainstFT Stat = "goals_against_ft"
	Over05HT       Stat = "over_0_5_ht"
	Over15HT       Stat = "over_1_5_ht"
	Over05FT       Stat = "over_0_5_ft"
	Over15FT       Stat = "over_1_5_ft"
	Over25FT       Stat = "over_2_5_ft"
	Over35FT       Stat = "over_3_5_ft"
	BTTS           Stat = "btts"
	Scored15Plus   Stat = "scored_1_5_plus"
	Scored25Plus   Stat = "scored_2_5_plus"
)

// MarketStat keys a percentage series by market
func MarketStat(id markets.ID) Stat {
	return Stat(id)
}

// Form is the result of a FormSource for one team
type Form struct {
	Team    string           `json:"team"`
	Kind    Kind             `json:"kind"`
	Matches int              `json:"matches"`
	Values  map[Stat]float64 `json:"values"`
}

// Value returns a series value, zero when the form or series is absent
func (f *Form) Value(s Stat) float64 {
	if f == nil {
		return 0
	}
	return f.Values[s]
}

// FormSource computes a form for a team over a chronologically ordered history
type FormSource interface {
	Kind() Kind
	// Form returns nil when the team has no matches in history
	Form(team string, history []models.Match) *Form
}

// Recent returns up to window most recent matches of team, oldest first
func Recent(team string, history []models.Match, window int) []models.Match {
	played := TeamMatches(team, history)
	if window > 0 && len(played) > window {
		played = played[len(played)-window:]
	}
	return played
}

// TeamMatches returns every match of team in history order
func TeamMatches(team string, history []models.Match) []models.Match {
	var played []models.Match
	for i := range history {
		if history[i].Involves(team) {
			played = append(played, history[i])
		}
	}
	return played
}

func indicator(hit bool) float64 {
	if hit {
		return 1
	}
	return 0
}
