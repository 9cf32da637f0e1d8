package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yourusername/futalgo/internal/config"
	"github.com/yourusername/futalgo/internal/logger"
	"github.com/yourusername/futalgo/internal/metrics"
	"github.com/yourusername/futalgo/internal/models"
	"github.com/yourusername/futalgo/internal/simulation"
)

const (
	// DefaultWorkers is the pool size when none is configured
	DefaultWorkers = 4
	// DefaultBatchTimeout bounds a whole fixture batch
	DefaultBatchTimeout = 5 * time.Minute
)

// ProgressFunc receives the number of finished fixtures after each one completes
type ProgressFunc func(done, total int)

// FixtureAnalysis is the simulated outcome of one fixture. NoData is set when
// either team lacks history or the simulation did not finish.
type FixtureAnalysis struct {
	Fixture       models.Match
	Probabilities *simulation.MarketProbabilities
	NoData        bool
	Err           error
}

// FixtureReport is the result of one batch run
type FixtureReport struct {
	RunID    string
	Analyses []FixtureAnalysis
	Analyzed int
	NoData   int
	Duration time.Duration
}

// FixtureAnalyzer simulates many fixtures on a bounded worker pool
type FixtureAnalyzer struct {
	svc     *AnalysisService
	workers int
	timeout time.Duration
	events  *logger.AnalysisLogger
}

// NewFixtureAnalyzer creates a fixture analyzer
func NewFixtureAnalyzer(svc *AnalysisService, workers int, timeout time.Duration) *FixtureAnalyzer {
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if timeout <= 0 {
		timeout = DefaultBatchTimeout
	}
	return &FixtureAnalyzer{
		svc:     svc,
		workers: workers,
		timeout: timeout,
		events:  svc.events,
	}
}

// NewFixtureAnalyzerFromConfig sizes the analyzer from the analysis config
func NewFixtureAnalyzerFromConfig(svc *AnalysisService, cfg *config.AnalysisConfig) *FixtureAnalyzer {
	if cfg == nil {
		return NewFixtureAnalyzer(svc, 0, 0)
	}
	return NewFixtureAnalyzer(svc, cfg.Workers, cfg.BatchTimeout())
}

// Analyze simulates every fixture. Failures never abort the batch: a fixture
// that cannot be simulated, or is still pending when the batch times out,
// becomes a NoData entry. The report is ordered by competition, then home team.
func (a *FixtureAnalyzer) Analyze(ctx context.Context, fixtures []models.Match, progress ProgressFunc) (*FixtureReport, error) {
	if _, err := a.svc.Snapshot(); err != nil {
		return nil, err
	}
	start := time.Now()
	report := &FixtureReport{RunID: uuid.New().String()}

	ordered := make([]models.Match, len(fixtures))
	copy(ordered, fixtures)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Competition != ordered[j].Competition {
			return ordered[i].Competition < ordered[j].Competition
		}
		return ordered[i].HomeTeam < ordered[j].HomeTeam
	})

	report.Analyses = make([]FixtureAnalysis, len(ordered))
	for i := range ordered {
		report.Analyses[i] = FixtureAnalysis{Fixture: ordered[i], NoData: true}
	}
	if len(ordered) == 0 {
		return report, nil
	}

	batchCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	metrics.FixturesInFlight.Set(float64(len(ordered)))
	defer metrics.FixturesInFlight.Set(0)

	jobs := make(chan int)
	finished := make(chan int, len(ordered))

	var wg sync.WaitGroup
	workers := a.workers
	if workers > len(ordered) {
		workers = len(ordered)
	}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				a.analyzeOne(batchCtx, &report.Analyses[idx])
				finished <- idx
			}
		}()
	}

	go func() {
		defer close(jobs)
		for i := range ordered {
			select {
			case jobs <- i:
			case <-batchCtx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(finished)
	}()

	done := 0
	for range finished {
		done++
		metrics.FixturesInFlight.Set(float64(len(ordered) - done))
		if progress != nil {
			progress(done, len(ordered))
		}
	}

	for i := range report.Analyses {
		entry := &report.Analyses[i]
		if entry.NoData && entry.Err == nil {
			entry.Err = fmt.Errorf("fixture not simulated: %w", batchCtx.Err())
		}
		if entry.NoData {
			report.NoData++
		} else {
			report.Analyzed++
		}
	}

	report.Duration = time.Since(start)
	metrics.RecordFixtureBatch(report.Duration.Seconds())
	a.events.LogFixtureBatch(report.RunID, len(ordered), report.Analyzed, report.NoData, float64(report.Duration.Milliseconds()))
	return report, nil
}

func (a *FixtureAnalyzer) analyzeOne(ctx context.Context, entry *FixtureAnalysis) {
	f := entry.Fixture
	probs, err := a.svc.SimulateMarketProbabilities(ctx, f.HomeTeam, f.AwayTeam)
	if err != nil {
		entry.Err = err
		a.events.LogFixtureSkipped(f.HomeTeam, f.AwayTeam, err.Error())
		return
	}
	entry.Probabilities = probs
	entry.NoData = false
}
