package form

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/futalgo/internal/markets"
	"github.com/yourusername/futalgo/internal/models"
)

var baseDate = time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC)

func match(seq int, home, away string, ht, ft models.Score) models.Match {
	return models.Match{
		Sequence:      seq,
		Date:          baseDate.AddDate(0, 0, seq*7),
		HomeTeam:      home,
		AwayTeam:      away,
		Competition:   "Premier League",
		HalfTimeRaw:   "x",
		HalfTime:      ht,
		FullTime:      ft,
		HalfTimeKnown: true,
	}
}

func s(h, a int) models.Score { return models.Score{Home: h, Away: a} }

func TestProfileNoMatches(t *testing.T) {
	history := []models.Match{match(1, "Arsenal", "Chelsea", s(1, 0), s(2, 1))}
	assert.Nil(t, Profile("Everton", history, 15))
	assert.Nil(t, Profile("Everton", nil, 15))
}

func TestProfileWeightedMeanTwoMatches(t *testing.T) {
	history := []models.Match{
		match(1, "Arsenal", "Chelsea", s(1, 0), s(2, 1)),
		match(2, "Leeds", "Arsenal", s(0, 0), s(3, 1)),
	}

	f := Profile("Arsenal", history, 15)
	require.NotNil(t, f)
	assert.Equal(t, WeightedRecent, f.Kind)
	assert.Equal(t, 2, f.Matches)

	// Arsenal scored 2 then 1 at full time
	assert.InDelta(t, (2*0.08+1*0.12)/0.20, f.Value(GoalsForFT), 1e-9)
	assert.InDelta(t, (1*0.08+3*0.12)/0.20, f.Value(GoalsAgainstFT), 1e-9)
	assert.InDelta(t, (1*0.08+0*0.12)/0.20, f.Value(GoalsForHT), 1e-9)
	assert.InDelta(t, 1.0, f.Value(BTTS), 1e-9)
	assert.InDelta(t, (0*0.08+1*0.12)/0.20, f.Value(Over35FT), 1e-9)
	assert.InDelta(t, 0.08/0.20, f.Value(Scored15Plus), 1e-9)
}

func TestProfileWindowKeepsMostRecent(t *testing.T) {
	var history []models.Match
	for i := 0; i < 20; i++ {
		goals := 0
		if i >= 17 {
			goals = 4
		}
		history = append(history, match(i, "Arsenal", "Chelsea", s(0, 0), s(goals, 0)))
	}

	f := Profile("Arsenal", history, 3)
	require.NotNil(t, f)
	assert.Equal(t, 3, f.Matches)
	assert.InDelta(t, 4.0, f.Value(GoalsForFT), 1e-9)
}

func TestWeightedOverflowWeight(t *testing.T) {
	w := NewWeighted(15)
	assert.InDelta(t, 0.08, w.weight(0), 1e-12)
	assert.InDelta(t, 0.95, w.weight(9), 1e-12)
	assert.InDelta(t, 0.1, w.weight(10), 1e-12)
	assert.InDelta(t, 0.1, w.weight(14), 1e-12)
}

func TestSimplePercentRoleSemantics(t *testing.T) {
	history := []models.Match{
		match(1, "Arsenal", "Chelsea", s(1, 0), s(2, 0)), // home win, scored 2 at home
		match(2, "Leeds", "Arsenal", s(0, 1), s(0, 3)),   // away win, scored 3 away
		match(3, "Arsenal", "Spurs", s(0, 0), s(1, 1)),   // home draw
		match(4, "Fulham", "Arsenal", s(1, 0), s(2, 1)),  // away loss
	}

	f := NewSimplePercent(10).Form("Arsenal", history)
	require.NotNil(t, f)
	assert.Equal(t, SimplePercentRecent, f.Kind)
	assert.InDelta(t, 25.0, f.Value(MarketStat(markets.HomeWin)), 1e-9)
	assert.InDelta(t, 25.0, f.Value(MarketStat(markets.AwayWin)), 1e-9)
	assert.InDelta(t, 25.0, f.Value(MarketStat(markets.HomeScores15)), 1e-9)
	assert.InDelta(t, 25.0, f.Value(MarketStat(markets.AwayScores15)), 1e-9)
	assert.InDelta(t, 100.0, f.Value(MarketStat(markets.Over15FT)), 1e-9)
	assert.InDelta(t, 50.0, f.Value(MarketStat(markets.BTTSFT)), 1e-9)
	assert.InDelta(t, 75.0, f.Value(MarketStat(markets.Over05HT)), 1e-9)
}

func TestSimplePercentNoMatches(t *testing.T) {
	assert.Nil(t, NewSimplePercent(10).Form("Arsenal", nil))
}

func TestTeamRecordLast5(t *testing.T) {
	over25, err := markets.Default().Get(markets.Over25FT)
	require.NoError(t, err)

	tests := []struct {
		name    string
		goals   []int
		samples int
		last5   [Last5Size]models.Outcome
	}{
		{
			name:  "no matches",
			last5: [Last5Size]models.Outcome{models.OutcomeUnknown, models.OutcomeUnknown, models.OutcomeUnknown, models.OutcomeUnknown, models.OutcomeUnknown},
		},
		{
			name:    "three matches newest first",
			goals:   []int{3, 0, 0},
			samples: 3,
			last5:   [Last5Size]models.Outcome{models.OutcomeMiss, models.OutcomeMiss, models.OutcomeHit, models.OutcomeUnknown, models.OutcomeUnknown},
		},
		{
			name:    "seven matches keeps five newest",
			goals:   []int{0, 0, 3, 3, 0, 3, 4},
			samples: 7,
			last5:   [Last5Size]models.Outcome{models.OutcomeHit, models.OutcomeHit, models.OutcomeMiss, models.OutcomeHit, models.OutcomeHit},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var history []models.Match
			for i, g := range tt.goals {
				history = append(history, match(i, "Arsenal", "Chelsea", s(0, 0), s(g, 0)))
			}
			r := TeamRecord("Arsenal", over25, history)
			assert.Equal(t, tt.samples, r.Samples)
			assert.Len(t, r.Last5, Last5Size)
			assert.Equal(t, tt.last5, r.Last5)
		})
	}
}

func TestTeamRecordSkipsMissingHalfTime(t *testing.T) {
	over05HT, err := markets.Default().Get(markets.Over05HT)
	require.NoError(t, err)

	history := []models.Match{
		match(1, "Arsenal", "Chelsea", s(0, 0), s(0, 0)),
		match(2, "Arsenal", "Leeds", s(1, 0), s(1, 0)),
		match(3, "Spurs", "Arsenal", s(0, 2), s(0, 2)),
	}

	r := TeamRecord("Arsenal", over05HT, history)
	assert.Equal(t, 2, r.Samples)
	assert.Equal(t, 2, r.Hits)
	assert.InDelta(t, 100.0, r.Rate(), 1e-9)
}

func TestTeamHitOrientation(t *testing.T) {
	m := match(1, "Arsenal", "Chelsea", s(0, 1), s(0, 2))

	won, ok := TeamHit(&m, "Chelsea", markets.Wins)
	require.True(t, ok)
	assert.True(t, won)

	lost, _ := TeamHit(&m, "Arsenal", markets.Losses)
	assert.True(t, lost)

	awayScored, _ := TeamHit(&m, "Arsenal", markets.AwayScores15)
	assert.True(t, awayScored)

	_, ok = TeamHit(&m, "Arsenal", markets.ExpectedGoalsFT)
	assert.False(t, ok)
}

func TestLeagueHitReadsHomeSide(t *testing.T) {
	m := match(1, "Arsenal", "Chelsea", s(0, 1), s(0, 2))
	assert.False(t, LeagueHit(&m, markets.Wins))
	assert.True(t, LeagueHit(&m, markets.Losses))
	assert.True(t, LeagueHit(&m, markets.AwayScores15))
}

func TestHistoryForm(t *testing.T) {
	history := []models.Match{
		match(1, "Arsenal", "Chelsea", s(1, 0), s(3, 0)),
		match(2, "Leeds", "Arsenal", s(0, 0), s(1, 1)),
	}
	h := NewHistory(nil)
	f := h.Form("Arsenal", history)
	require.NotNil(t, f)
	assert.Equal(t, AllHistory, h.Kind())
	assert.InDelta(t, 50.0, f.Value(MarketStat(markets.Over25FT)), 1e-9)
	assert.InDelta(t, 50.0, f.Value(MarketStat(markets.Wins)), 1e-9)
	assert.Nil(t, h.Form("Everton", history))
}

func TestFormSourcesImplementInterface(t *testing.T) {
	sources := []FormSource{NewWeighted(0), NewSimplePercent(0), NewHistory(nil)}
	kinds := []Kind{WeightedRecent, SimplePercentRecent, AllHistory}
	for i, src := range sources {
		assert.Equal(t, kinds[i], src.Kind())
	}
}
