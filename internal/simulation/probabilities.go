package simulation

import (
	"context"

	"github.com/yourusername/futalgo/internal/form"
	"github.com/yourusername/futalgo/internal/markets"
	"github.com/yourusername/futalgo/internal/models"
)

// MarketProbabilities are the simulated percentages of a fixture per market
type MarketProbabilities struct {
	HomeRate float64                `json:"home_rate"`
	AwayRate float64                `json:"away_rate"`
	Trials   int                    `json:"trials"`
	Values   map[markets.ID]float64 `json:"values"`
}

// Get returns the value of market id
func (p *MarketProbabilities) Get(id markets.ID) (float64, bool) {
	if p == nil {
		return 0, false
	}
	v, ok := p.Values[id]
	return v, ok
}

// Aggregate turns a batch into market values. Banded markets are calibrated and
// clamped, expected goals are raw means and results are raw frequencies.
func Aggregate(batch *OutcomeBatch, table *markets.Table) *MarketProbabilities {
	simulated := table.Simulated()
	n := batch.Len()

	hits := make([]int, len(simulated))
	var goalsHT, goalsFT int
	for i := 0; i < n; i++ {
		ht := models.Score{Home: batch.HomeHT[i], Away: batch.AwayHT[i]}
		ft := models.Score{Home: batch.HomeFT[i], Away: batch.AwayFT[i]}
		goalsHT += ht.Total()
		goalsFT += ft.Total()
		for j, market := range simulated {
			if hit, _ := form.ScoreHit(ht, ft, market.ID); hit {
				hits[j]++
			}
		}
	}

	probs := &MarketProbabilities{
		HomeRate: batch.HomeRate,
		AwayRate: batch.AwayRate,
		Trials:   n,
		Values:   make(map[markets.ID]float64, len(simulated)),
	}
	if n == 0 {
		return probs
	}

	for j, market := range simulated {
		switch market.ID {
		case markets.ExpectedGoalsHT:
			probs.Values[market.ID] = float64(goalsHT) / float64(n)
		case markets.ExpectedGoalsFT:
			probs.Values[market.ID] = float64(goalsFT) / float64(n)
		default:
			probs.Values[market.ID] = market.Clamp(float64(hits[j]) / float64(n) * 100)
		}
	}
	return probs
}

// MarketProbabilities simulates a fixture and aggregates it against table
func (s *Simulator) MarketProbabilities(ctx context.Context, home, away *form.Form, table *markets.Table) (*MarketProbabilities, error) {
	batch, err := s.Simulate(ctx, home, away)
	if err != nil {
		return nil, err
	}
	return Aggregate(batch, table), nil
}
