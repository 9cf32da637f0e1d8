package service

import (
	"sort"

	"github.com/yourusername/futalgo/internal/models"
	"github.com/yourusername/futalgo/internal/tips"
)

// DefaultMinTipProbability is the combined probability a tip needs to be listed in a batch
const DefaultMinTipProbability = 70.0

// FixtureTips are the listed tips of one fixture
type FixtureTips struct {
	Fixture models.Match
	Tips    []tips.Tip
	Best    tips.Tip
}

// TipBatch generates tips for every fixture and keeps those reaching
// minProbability. Fixtures without such a tip are left out; the rest are
// ordered by their best tip, strongest first.
func (s *AnalysisService) TipBatch(fixtures []models.Match, minProbability float64, filter tips.Filter) []FixtureTips {
	var out []FixtureTips
	for _, f := range fixtures {
		listed := tips.AtLeast(s.GenerateTips(f.HomeTeam, f.AwayTeam, filter), minProbability)
		best, ok := tips.Best(listed)
		if !ok {
			continue
		}
		out = append(out, FixtureTips{Fixture: f, Tips: listed, Best: best})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Best.Combined > out[j].Best.Combined
	})
	return out
}
