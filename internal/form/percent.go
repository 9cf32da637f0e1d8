package form

import (
	"github.com/yourusername/futalgo/internal/markets"
	"github.com/yourusername/futalgo/internal/models"
)

// DefaultTipWindow is the number of matches considered for short-term tips
const DefaultTipWindow = 10

// SimplePercent is the SimplePercentRecent form source. Values are unweighted
// percentages keyed by MarketStat of each tippable market.
type SimplePercent struct {
	Window int
}

// NewSimplePercent creates a percentage form source over the last window matches
func NewSimplePercent(window int) *SimplePercent {
	if window <= 0 {
		window = DefaultTipWindow
	}
	return &SimplePercent{Window: window}
}

// Kind implements FormSource
func (p *SimplePercent) Kind() Kind {
	return SimplePercentRecent
}

// Form implements FormSource
func (p *SimplePercent) Form(team string, history []models.Match) *Form {
	played := Recent(team, history, p.Window)
	if len(played) == 0 {
		return nil
	}

	counts := make(map[markets.ID]int, len(percentChecks))
	for i := range played {
		m := &played[i]
		for id, check := range percentChecks {
			if check(m, team) {
				counts[id]++
			}
		}
	}

	n := float64(len(played))
	values := make(map[Stat]float64, len(percentChecks))
	for id := range percentChecks {
		values[MarketStat(id)] = float64(counts[id]) / n * 100
	}

	return &Form{
		Team:    team,
		Kind:    SimplePercentRecent,
		Matches: len(played),
		Values:  values,
	}
}

// percentChecks holds the per-match condition of each tippable market from the
// point of view of team. Result and team-scoring markets only count matches
// played in the matching role.
var percentChecks = map[markets.ID]func(m *models.Match, team string) bool{
	markets.Over05HT: func(m *models.Match, _ string) bool { return m.HalfTime.Total() > 0 },
	markets.Over15HT: func(m *models.Match, _ string) bool { return m.HalfTime.Total() > 1 },
	markets.Over05FT: func(m *models.Match, _ string) bool { return m.FullTime.Total() > 0 },
	markets.Over15FT: func(m *models.Match, _ string) bool { return m.FullTime.Total() > 1 },
	markets.Over25FT: func(m *models.Match, _ string) bool { return m.FullTime.Total() > 2 },
	markets.Over35FT: func(m *models.Match, _ string) bool { return m.FullTime.Total() > 3 },
	markets.BTTSFT: func(m *models.Match, _ string) bool {
		return m.FullTime.Home > 0 && m.FullTime.Away > 0
	},
	markets.BTTSOver25: func(m *models.Match, _ string) bool {
		return m.FullTime.Home > 0 && m.FullTime.Away > 0 && m.FullTime.Total() > 2
	},
	markets.HomeScores15: func(m *models.Match, team string) bool {
		return m.IsHome(team) && m.FullTime.Home >= 2
	},
	markets.AwayScores15: func(m *models.Match, team string) bool {
		return !m.IsHome(team) && m.FullTime.Away >= 2
	},
	markets.HomeWin: func(m *models.Match, team string) bool {
		return m.IsHome(team) && m.FullTime.Home > m.FullTime.Away
	},
	markets.AwayWin: func(m *models.Match, team string) bool {
		return !m.IsHome(team) && m.FullTime.Away > m.FullTime.Home
	},
}
