package form

import (
	"github.com/yourusername/futalgo/internal/markets"
	"github.com/yourusername/futalgo/internal/models"
)

// Last5Size is the length of the recent outcome strip of a record
const Last5Size = 5

// Record is the all-history hit record of one team or league for one market
type Record struct {
	Hits    int
	Samples int
	// Last5 holds the most recent valid outcomes, newest first, padded with OutcomeUnknown
	Last5 [Last5Size]models.Outcome
}

// Rate returns the hit percentage, zero without samples
func (r Record) Rate() float64 {
	if r.Samples == 0 {
		return 0
	}
	return float64(r.Hits) / float64(r.Samples) * 100
}

// History is the AllHistory form source used by the ranking
type History struct {
	Table *markets.Table
}

// NewHistory creates an all-history source over the rankable markets of table
func NewHistory(table *markets.Table) *History {
	if table == nil {
		table = markets.Default()
	}
	return &History{Table: table}
}

// Kind implements FormSource
func (h *History) Kind() Kind {
	return AllHistory
}

// Form implements FormSource with the hit rate of every rankable market
func (h *History) Form(team string, history []models.Match) *Form {
	played := TeamMatches(team, history)
	if len(played) == 0 {
		return nil
	}

	rankable := h.Table.Rankable()
	values := make(map[Stat]float64, len(rankable))
	for _, market := range rankable {
		values[MarketStat(market.ID)] = TeamRecord(team, market, played).Rate()
	}

	return &Form{
		Team:    team,
		Kind:    AllHistory,
		Matches: len(played),
		Values:  values,
	}
}

// TeamRecord evaluates market over every match of team in history
func TeamRecord(team string, market markets.Config, history []models.Match) Record {
	var outcomes []models.Outcome
	for i := range history {
		m := &history[i]
		if !m.Involves(team) || skipped(m, market) {
			continue
		}
		hit, ok := TeamHit(m, team, market.ID)
		if !ok {
			continue
		}
		outcomes = append(outcomes, models.OutcomeOf(hit))
	}
	return newRecord(outcomes)
}

// LeagueRecord evaluates market over every match of competition in history
func LeagueRecord(competition string, market markets.Config, history []models.Match) Record {
	var outcomes []models.Outcome
	for i := range history {
		m := &history[i]
		if m.Competition != competition || skipped(m, market) {
			continue
		}
		outcomes = append(outcomes, models.OutcomeOf(LeagueHit(m, market.ID)))
	}
	return newRecord(outcomes)
}

// skipped drops matches without usable half-time goals from half-time markets
func skipped(m *models.Match, market markets.Config) bool {
	return market.HalfTimeOnly && m.HalfTime.IsZero()
}

func newRecord(outcomes []models.Outcome) Record {
	r := Record{Samples: len(outcomes)}
	for _, o := range outcomes {
		if o == models.OutcomeHit {
			r.Hits++
		}
	}
	for i := range r.Last5 {
		j := len(outcomes) - 1 - i
		if j >= 0 {
			r.Last5[i] = outcomes[j]
		} else {
			r.Last5[i] = models.OutcomeUnknown
		}
	}
	return r
}

// TeamHit reports whether market was hit in m from the point of view of team.
// The second result is false for markets without a per-match definition.
func TeamHit(m *models.Match, team string, id markets.ID) (bool, bool) {
	_, forFT := m.GoalsFor(team)
	_, againstFT := m.GoalsAgainst(team)

	switch id {
	case markets.Wins:
		return forFT > againstFT, true
	case markets.Losses:
		return forFT < againstFT, true
	}
	return ScoreHit(m.HalfTime, m.FullTime, id)
}

// LeagueHit reports whether market was hit in m. Wins and Losses are read from
// the home side.
func LeagueHit(m *models.Match, id markets.ID) bool {
	hit, _ := ScoreHit(m.HalfTime, m.FullTime, id)
	return hit
}

// ScoreHit evaluates a market on a half-time and full-time score pair. Side
// specific markets refer to the home and away side of the match.
func ScoreHit(ht, ft models.Score, id markets.ID) (bool, bool) {
	switch id {
	case markets.Over05HT:
		return ht.Total() > 0, true
	case markets.Over15HT:
		return ht.Total() > 1, true
	case markets.BTTSHT:
		return ht.Home > 0 && ht.Away > 0, true
	case markets.HomeScoresHT:
		return ht.Home > 0, true
	case markets.AwayScoresHT:
		return ht.Away > 0, true
	case markets.Over05FT:
		return ft.Total() > 0, true
	case markets.Over15FT:
		return ft.Total() > 1, true
	case markets.Over25FT:
		return ft.Total() > 2, true
	case markets.Over35FT:
		return ft.Total() > 3, true
	case markets.Over45FT:
		return ft.Total() > 4, true
	case markets.BTTSFT:
		return ft.Home > 0 && ft.Away > 0, true
	case markets.BTTSOver25:
		return ft.Home > 0 && ft.Away > 0 && ft.Total() > 2, true
	case markets.HomeScores15:
		return ft.Home >= 2, true
	case markets.AwayScores15:
		return ft.Away >= 2, true
	case markets.HomeWin, markets.Wins:
		return ft.Home > ft.Away, true
	case markets.Draw:
		return ft.Home == ft.Away, true
	case markets.AwayWin:
		return ft.Away > ft.Home, true
	case markets.Losses:
		return ft.Home < ft.Away, true
	}
	return false, false
}
