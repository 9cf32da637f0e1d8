package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/futalgo/internal/cache"
	"github.com/yourusername/futalgo/internal/markets"
	"github.com/yourusername/futalgo/internal/models"
	"github.com/yourusername/futalgo/internal/ranking"
	"github.com/yourusername/futalgo/internal/repository"
	"github.com/yourusername/futalgo/internal/simulation"
	"github.com/yourusername/futalgo/internal/tips"
)

var laLiga = []string{"Betis", "Sevilla", "Getafe", "Cadiz"}

// seasonHistory is a double round robin where every home side wins 3-1 after leading 1-0
func seasonHistory() []models.Match {
	var out []models.Match
	day := time.Date(2026, 1, 3, 0, 0, 0, 0, time.UTC)
	for _, home := range laLiga {
		for _, away := range laLiga {
			if home == away {
				continue
			}
			out = append(out, models.Match{
				Sequence:      len(out),
				Date:          day.AddDate(0, 0, len(out)),
				HomeTeam:      home,
				AwayTeam:      away,
				Competition:   "Spain La Liga",
				HalfTimeRaw:   "(1-0)",
				FullTimeRaw:   "3-1",
				HalfTime:      models.Score{Home: 1},
				FullTime:      models.Score{Home: 3, Away: 1},
				HalfTimeKnown: true,
			})
		}
	}
	return out
}

func testOptions() AnalysisOptions {
	opts := DefaultAnalysisOptions()
	opts.Simulation.Trials = 2000
	opts.Simulation.Seed = 42
	return opts
}

func newTestService(t *testing.T, probCache *cache.ProbabilityCache) *AnalysisService {
	t.Helper()
	store := repository.NewMemoryStore()
	_, _, err := store.Replace(context.Background(), seasonHistory())
	require.NoError(t, err)

	svc, err := NewAnalysisService(store, markets.Default(), testOptions(), probCache, quietLogger())
	require.NoError(t, err)
	return svc
}

func TestNewAnalysisService(t *testing.T) {
	_, err := NewAnalysisService(nil, nil, testOptions(), nil, nil)
	assert.Error(t, err)

	opts := testOptions()
	opts.Simulation.Trials = 0
	_, err = NewAnalysisService(repository.NewMemoryStore(), nil, opts, nil, nil)
	assert.Error(t, err)
}

func TestAnalysisService_NotLoaded(t *testing.T) {
	svc, err := NewAnalysisService(repository.NewMemoryStore(), nil, testOptions(), nil, quietLogger())
	require.NoError(t, err)

	assert.Nil(t, svc.Profile("Betis", 0))
	_, err = svc.SimulateMarketProbabilities(context.Background(), "Betis", "Sevilla")
	assert.ErrorIs(t, err, repository.ErrNotLoaded)
	_, err = svc.RankMarket(markets.Over25FT, ranking.AllCompetitions)
	assert.ErrorIs(t, err, repository.ErrNotLoaded)
	assert.Empty(t, svc.GenerateTips("Betis", "Sevilla", nil))
	_, err = svc.Overview()
	assert.ErrorIs(t, err, repository.ErrNotLoaded)
	_, err = svc.Snapshot()
	assert.ErrorIs(t, err, repository.ErrNotLoaded)
	_, err = svc.Leagues()
	assert.ErrorIs(t, err, repository.ErrNotLoaded)
	_, err = svc.Upcoming(time.Now(), 7)
	assert.ErrorIs(t, err, repository.ErrNotLoaded)
}

func TestAnalysisService_Profile(t *testing.T) {
	svc := newTestService(t, nil)

	p := svc.Profile("Betis", 0)
	require.NotNil(t, p)
	assert.Equal(t, 6, p.Matches)
	assert.Nil(t, svc.Profile("Nobody", 0))

	short := svc.Profile("Betis", 2)
	require.NotNil(t, short)
	assert.Equal(t, 2, short.Matches)
}

func TestAnalysisService_SimulateMarketProbabilities(t *testing.T) {
	probCache := cache.NewProbabilityCache(time.Minute, 100)
	svc := newTestService(t, probCache)

	probs, err := svc.SimulateMarketProbabilities(context.Background(), "Betis", "Sevilla")
	require.NoError(t, err)
	assert.Equal(t, 2000, probs.Trials)

	w, _ := probs.Get(markets.HomeWin)
	d, _ := probs.Get(markets.Draw)
	l, _ := probs.Get(markets.AwayWin)
	assert.InDelta(t, 100, w+d+l, 1e-6)

	again, err := svc.SimulateMarketProbabilities(context.Background(), "Betis", "Sevilla")
	require.NoError(t, err)
	assert.Same(t, probs, again)
	hits, misses, _ := probCache.Stats()
	assert.Equal(t, uint64(1), hits)
	assert.Equal(t, uint64(1), misses)

	_, err = svc.SimulateMarketProbabilities(context.Background(), "Betis", "Nobody")
	assert.ErrorIs(t, err, simulation.ErrMissingProfile)
}

func TestAnalysisService_RankMarket(t *testing.T) {
	svc := newTestService(t, nil)

	result, err := svc.RankMarket(markets.Over25FT, ranking.AllCompetitions)
	require.NoError(t, err)
	require.Len(t, result.Teams, 4)
	for _, team := range result.Teams {
		assert.Equal(t, 100.0, team.HitRate)
		assert.Equal(t, 6, team.Samples)
	}
	require.Len(t, result.Leagues, 1)
	assert.Equal(t, "Spain La Liga", result.Leagues[0].Name)

	leagues, err := svc.Leagues()
	require.NoError(t, err)
	assert.Equal(t, []string{"Spain La Liga"}, leagues)

	_, err = svc.RankMarket(markets.ID("corners"), ranking.AllCompetitions)
	assert.ErrorIs(t, err, markets.ErrUnknownMarket)
}

func TestAnalysisService_GenerateTips(t *testing.T) {
	svc := newTestService(t, nil)

	generated := svc.GenerateTips("Betis", "Sevilla", nil)
	require.NotEmpty(t, generated)
	for i := 1; i < len(generated); i++ {
		assert.GreaterOrEqual(t, generated[i-1].Combined, generated[i].Combined)
	}

	overFT := svc.GenerateTips("Betis", "Sevilla", tips.Families(markets.FamilyOverFT))
	require.Len(t, overFT, 1)
	// Every match has four goals, so the highest qualifying line wins
	assert.Equal(t, markets.Over35FT, overFT[0].Market)

	single := svc.GenerateTips("Betis", "Sevilla", tips.Market(markets.Over15FT))
	require.Len(t, single, 1)
	assert.Equal(t, markets.Over15FT, single[0].Market)
	assert.InDelta(t, 100, single[0].Combined, 1e-9)

	assert.Empty(t, svc.GenerateTips("Betis", "Nobody", nil))
}

func TestAnalysisService_TipBatch(t *testing.T) {
	svc := newTestService(t, nil)
	fixtures := []models.Match{
		{HomeTeam: "Nobody", AwayTeam: "Betis", Competition: "Spain La Liga"},
		{HomeTeam: "Betis", AwayTeam: "Sevilla", Competition: "Spain La Liga"},
	}

	batch := svc.TipBatch(fixtures, DefaultMinTipProbability, nil)
	require.Len(t, batch, 1)
	assert.Equal(t, "Betis", batch[0].Fixture.HomeTeam)
	for _, tip := range batch[0].Tips {
		assert.GreaterOrEqual(t, tip.Combined, DefaultMinTipProbability)
	}
	assert.Equal(t, batch[0].Tips[0].Combined, batch[0].Best.Combined)

	assert.Empty(t, svc.TipBatch(fixtures, 101, nil))
}

func TestAnalysisService_UpcomingAndOverview(t *testing.T) {
	store := repository.NewMemoryStore()
	history := seasonHistory()
	fixtureDay := time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC)
	history = append(history,
		models.Match{Sequence: 100, Date: fixtureDay, HomeTeam: "Betis", AwayTeam: "Getafe", Competition: "Spain La Liga"},
		models.Match{Sequence: 101, Date: fixtureDay.AddDate(0, 0, 4), HomeTeam: "Cadiz", AwayTeam: "Sevilla", Competition: "Spain La Liga"},
	)
	_, _, err := store.Replace(context.Background(), history)
	require.NoError(t, err)
	svc, err := NewAnalysisService(store, nil, testOptions(), nil, quietLogger())
	require.NoError(t, err)

	now := time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)
	three, err := svc.Upcoming(now, 3)
	require.NoError(t, err)
	assert.Len(t, three, 1)
	seven, err := svc.Upcoming(now, 7)
	require.NoError(t, err)
	assert.Len(t, seven, 2)

	overview, err := svc.Overview()
	require.NoError(t, err)
	assert.Equal(t, repository.Overview{Matches: 12, Fixtures: 2, Competitions: 1, Teams: 4}, overview)
}

func TestFixtureAnalyzer_Analyze(t *testing.T) {
	svc := newTestService(t, nil)
	analyzer := NewFixtureAnalyzer(svc, 2, time.Minute)

	fixtures := []models.Match{
		{HomeTeam: "Sevilla", AwayTeam: "Betis", Competition: "Spain La Liga"},
		{HomeTeam: "Nobody", AwayTeam: "Betis", Competition: "Atlantis League"},
		{HomeTeam: "Betis", AwayTeam: "Getafe", Competition: "Spain La Liga"},
	}

	var calls []int
	report, err := analyzer.Analyze(context.Background(), fixtures, func(done, total int) {
		assert.Equal(t, 3, total)
		calls = append(calls, done)
	})
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 3}, calls)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, 2, report.Analyzed)
	assert.Equal(t, 1, report.NoData)

	require.Len(t, report.Analyses, 3)
	assert.Equal(t, "Nobody", report.Analyses[0].Fixture.HomeTeam)
	assert.True(t, report.Analyses[0].NoData)
	assert.ErrorIs(t, report.Analyses[0].Err, simulation.ErrMissingProfile)
	assert.Equal(t, "Betis", report.Analyses[1].Fixture.HomeTeam)
	assert.Equal(t, "Sevilla", report.Analyses[2].Fixture.HomeTeam)
	assert.NotNil(t, report.Analyses[2].Probabilities)
}

func TestFixtureAnalyzer_Timeout(t *testing.T) {
	svc := newTestService(t, nil)
	analyzer := NewFixtureAnalyzer(svc, 1, time.Nanosecond)

	fixtures := []models.Match{
		{HomeTeam: "Sevilla", AwayTeam: "Betis", Competition: "Spain La Liga"},
		{HomeTeam: "Betis", AwayTeam: "Getafe", Competition: "Spain La Liga"},
	}
	report, err := analyzer.Analyze(context.Background(), fixtures, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, report.Analyzed)
	assert.Equal(t, 2, report.NoData)
	for _, a := range report.Analyses {
		assert.Error(t, a.Err)
	}
}

func TestFixtureAnalyzer_EmptyAndNotLoaded(t *testing.T) {
	svc := newTestService(t, nil)
	report, err := NewFixtureAnalyzer(svc, 0, 0).Analyze(context.Background(), nil, nil)
	require.NoError(t, err)
	assert.Empty(t, report.Analyses)

	empty, err := NewAnalysisService(repository.NewMemoryStore(), nil, testOptions(), nil, quietLogger())
	require.NoError(t, err)
	_, err = NewFixtureAnalyzer(empty, 0, 0).Analyze(context.Background(), nil, nil)
	assert.ErrorIs(t, err, repository.ErrNotLoaded)
}
