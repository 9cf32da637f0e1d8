package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/futalgo/internal/cache"
	"github.com/yourusername/futalgo/internal/config"
	"github.com/yourusername/futalgo/internal/form"
	"github.com/yourusername/futalgo/internal/logger"
	"github.com/yourusername/futalgo/internal/markets"
	"github.com/yourusername/futalgo/internal/metrics"
	"github.com/yourusername/futalgo/internal/models"
	"github.com/yourusername/futalgo/internal/ranking"
	"github.com/yourusername/futalgo/internal/repository"
	"github.com/yourusername/futalgo/internal/simulation"
	"github.com/yourusername/futalgo/internal/tips"
)

// AnalysisOptions tunes profiling, simulation and tipping
type AnalysisOptions struct {
	ProfileWindow  int
	TipWindow      int
	Weights        []float64
	OverflowWeight float64
	Simulation     simulation.Config
}

// DefaultAnalysisOptions returns the built-in analysis parameters
func DefaultAnalysisOptions() AnalysisOptions {
	return AnalysisOptions{
		ProfileWindow:  form.DefaultProfileWindow,
		TipWindow:      form.DefaultTipWindow,
		Weights:        form.DefaultWeights,
		OverflowWeight: form.DefaultOverflowWeight,
		Simulation:     simulation.DefaultConfig(),
	}
}

// AnalysisOptionsFromConfig converts the analysis section of the app config
func AnalysisOptionsFromConfig(cfg *config.AnalysisConfig) (AnalysisOptions, error) {
	simCfg, err := simulation.FromConfig(cfg)
	if err != nil {
		return AnalysisOptions{}, fmt.Errorf("invalid simulation config: %w", err)
	}
	opts := DefaultAnalysisOptions()
	opts.Simulation = simCfg
	if cfg.ProfileWindow > 0 {
		opts.ProfileWindow = cfg.ProfileWindow
	}
	if cfg.TipWindow > 0 {
		opts.TipWindow = cfg.TipWindow
	}
	if len(cfg.Weights) > 0 {
		opts.Weights = cfg.Weights
	}
	if cfg.DefaultWeight > 0 {
		opts.OverflowWeight = cfg.DefaultWeight
	}
	return opts, nil
}

// AnalysisService answers profile, simulation, ranking and tip queries against
// the current store snapshot
type AnalysisService struct {
	store     repository.MatchRepository
	table     *markets.Table
	opts      AnalysisOptions
	simulator *simulation.Simulator
	percent   *form.SimplePercent
	selector  *tips.Selector
	cache     *cache.ProbabilityCache
	logger    *logrus.Logger
	events    *logger.AnalysisLogger

	mu            sync.Mutex
	ranker        *ranking.Ranker
	rankerVersion uint64
}

// NewAnalysisService creates the analysis facade. probCache may be nil.
func NewAnalysisService(store repository.MatchRepository, table *markets.Table, opts AnalysisOptions, probCache *cache.ProbabilityCache, log *logrus.Logger) (*AnalysisService, error) {
	if store == nil {
		return nil, fmt.Errorf("match store is required")
	}
	if table == nil {
		table = markets.Default()
	}
	if err := table.Validate(); err != nil {
		return nil, fmt.Errorf("invalid market table: %w", err)
	}
	if err := opts.Simulation.Validate(); err != nil {
		return nil, fmt.Errorf("invalid simulation config: %w", err)
	}
	if log == nil {
		log = logrus.New()
	}

	return &AnalysisService{
		store:     store,
		table:     table,
		opts:      opts,
		simulator: simulation.New(opts.Simulation),
		percent:   form.NewSimplePercent(opts.TipWindow),
		selector:  tips.NewSelector(table),
		cache:     probCache,
		logger:    log,
		events:    logger.NewAnalysisLogger(log),
	}, nil
}

// Table returns the market table in use
func (s *AnalysisService) Table() *markets.Table {
	return s.table
}

// Snapshot returns the current store snapshot
func (s *AnalysisService) Snapshot() (*repository.Snapshot, error) {
	snap := s.store.Snapshot()
	if snap == nil {
		return nil, repository.ErrNotLoaded
	}
	return snap, nil
}

func (s *AnalysisService) results() []models.Match {
	snap := s.store.Snapshot()
	if snap == nil {
		return nil
	}
	return snap.Results()
}

func (s *AnalysisService) profiler(window int) *form.Weighted {
	if window <= 0 {
		window = s.opts.ProfileWindow
	}
	return &form.Weighted{
		Window:         window,
		Weights:        s.opts.Weights,
		OverflowWeight: s.opts.OverflowWeight,
	}
}

// Profile returns the weighted recent form of team, nil when it has no results.
// A non-positive window uses the configured profile window.
func (s *AnalysisService) Profile(team string, window int) *form.Form {
	return s.profiler(window).Form(team, s.results())
}

// SimulateMarketProbabilities simulates the fixture home vs away and returns
// one calibrated value per simulated market
func (s *AnalysisService) SimulateMarketProbabilities(ctx context.Context, home, away string) (*simulation.MarketProbabilities, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	key := cache.Key{Version: snap.Version, Home: home, Away: away}
	if s.cache != nil {
		if probs, ok := s.cache.Get(key); ok {
			s.events.LogSimulation(home, away, probs.HomeRate, probs.AwayRate, probs.Trials, true, 0)
			return probs, nil
		}
	}

	start := time.Now()
	profiler := s.profiler(0)
	homeForm := profiler.Form(home, snap.Results())
	awayForm := profiler.Form(away, snap.Results())

	probs, err := s.simulator.MarketProbabilities(ctx, homeForm, awayForm, s.table)
	elapsed := time.Since(start)
	if err != nil {
		metrics.RecordSimulation("error", elapsed.Seconds())
		return nil, fmt.Errorf("simulate %s vs %s: %w", home, away, err)
	}
	metrics.RecordSimulation("success", elapsed.Seconds())
	s.events.LogSimulation(home, away, probs.HomeRate, probs.AwayRate, probs.Trials, false, float64(elapsed.Milliseconds()))

	if s.cache != nil {
		s.cache.Set(key, probs)
	}
	return probs, nil
}

// currentRanker returns a ranker over the current snapshot, rebuilt when the store version changes
func (s *AnalysisService) currentRanker() (*ranking.Ranker, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ranker == nil || s.rankerVersion != snap.Version {
		s.ranker = ranking.New(s.table, snap.Results())
		s.rankerVersion = snap.Version
	}
	return s.ranker, nil
}

// RankMarket ranks teams and leagues by their historical hit rate on market.
// competition restricts the team list; ranking.AllCompetitions keeps every team.
func (s *AnalysisService) RankMarket(market markets.ID, competition string) (ranking.Result, error) {
	r, err := s.currentRanker()
	if err != nil {
		return ranking.Result{}, err
	}
	result, err := r.RankMarket(market, competition)
	if err != nil {
		return ranking.Result{}, err
	}
	metrics.RecordRanking(string(market))
	s.events.LogRanking(string(market), competition, len(result.Teams), len(result.Leagues))
	return result, nil
}

// Leagues returns every competition with completed results
func (s *AnalysisService) Leagues() ([]string, error) {
	r, err := s.currentRanker()
	if err != nil {
		return nil, err
	}
	return r.Leagues(), nil
}

// GenerateTips returns the qualifying tips for home vs away from the recent
// percentage form of both teams. filter may be nil.
func (s *AnalysisService) GenerateTips(home, away string, filter tips.Filter) []tips.Tip {
	history := s.results()
	generated := s.selector.Generate(s.percent.Form(home, history), s.percent.Form(away, history), filter)

	best, ok := tips.Best(generated)
	if !ok {
		s.events.LogTips(home, away, 0, "", 0)
		return generated
	}
	for _, t := range generated {
		metrics.RecordTip(string(t.Market))
	}
	s.events.LogTips(home, away, len(generated), best.Name, best.Combined)
	return generated
}

// Upcoming returns the fixtures of the next days days, starting today
func (s *AnalysisService) Upcoming(now time.Time, days int) ([]models.Match, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Upcoming(now, days), nil
}

// Overview returns the dataset totals of the current snapshot
func (s *AnalysisService) Overview() (repository.Overview, error) {
	snap, err := s.Snapshot()
	if err != nil {
		return repository.Overview{}, err
	}
	return snap.Overview(), nil
}
