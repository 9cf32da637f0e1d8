// Package simulation runs Monte Carlo simulations of a fixture from the
// weighted form of both teams and turns the sampled scores into calibrated
// market probabilities.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"time"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/yourusername/futalgo/internal/form"
)

var (
	// ErrMissingProfile is returned when either side has no form
	ErrMissingProfile = errors.New("missing team profile")
	// ErrSimulation is returned when the sampler cannot run
	ErrSimulation = errors.New("simulation failed")
)

// checkEvery is the number of trials between context checks
const checkEvery = 10000

// OutcomeBatch holds the sampled goals of every trial
type OutcomeBatch struct {
	HomeRate float64
	AwayRate float64
	HomeHT   []int
	AwayHT   []int
	HomeFT   []int
	AwayFT   []int
}

// Len returns the number of trials in the batch
func (b *OutcomeBatch) Len() int {
	return len(b.HomeFT)
}

// Simulator samples match outcomes
type Simulator struct {
	cfg Config
}

// New creates a simulator
func New(cfg Config) *Simulator {
	return &Simulator{cfg: cfg}
}

// Config returns the simulator parameters
func (s *Simulator) Config() Config {
	return s.cfg
}

// Rates returns the expected full-time goals of the home and away side. The
// rate floor applies before the venue factor.
func (s *Simulator) Rates(home, away *form.Form) (float64, float64) {
	homeRate := math.Max(s.cfg.MinRate, 0.6*home.Value(form.GoalsForFT)+0.4*away.Value(form.GoalsAgainstFT))
	awayRate := math.Max(s.cfg.MinRate, 0.6*away.Value(form.GoalsForFT)+0.4*home.Value(form.GoalsAgainstFT))
	return homeRate * s.cfg.HomeAdvantage, awayRate * s.cfg.AwayFactor
}

// Simulate draws full-time goals per side from a Poisson distribution and
// thins them binomially into half-time goals, so half-time never exceeds
// full-time.
func (s *Simulator) Simulate(ctx context.Context, home, away *form.Form) (*OutcomeBatch, error) {
	if home == nil || away == nil {
		return nil, ErrMissingProfile
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSimulation, err)
	}

	homeRate, awayRate := s.Rates(home, away)
	if !validRate(homeRate) || !validRate(awayRate) {
		return nil, fmt.Errorf("%w: invalid rates %.3f/%.3f", ErrSimulation, homeRate, awayRate)
	}

	seed := s.cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)

	homeGoals := distuv.Poisson{Lambda: homeRate, Src: src}
	awayGoals := distuv.Poisson{Lambda: awayRate, Src: src}

	n := s.cfg.Trials
	batch := &OutcomeBatch{
		HomeRate: homeRate,
		AwayRate: awayRate,
		HomeHT:   make([]int, n),
		AwayHT:   make([]int, n),
		HomeFT:   make([]int, n),
		AwayFT:   make([]int, n),
	}

	for i := 0; i < n; i++ {
		if i%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("%w: %v", ErrSimulation, err)
			}
		}
		hft := int(homeGoals.Rand())
		aft := int(awayGoals.Rand())
		batch.HomeFT[i] = hft
		batch.AwayFT[i] = aft
		batch.HomeHT[i] = s.halfTime(hft, src)
		batch.AwayHT[i] = s.halfTime(aft, src)
	}

	return batch, nil
}

func (s *Simulator) halfTime(fullTime int, src rand.Source) int {
	if fullTime == 0 {
		return 0
	}
	return int(distuv.Binomial{N: float64(fullTime), P: s.cfg.HalfTimeShare, Src: src}.Rand())
}

func validRate(r float64) bool {
	return r > 0 && !math.IsNaN(r) && !math.IsInf(r, 0)
}
