package form

import "github.com/yourusername/futalgo/internal/models"

// DefaultWeights is the progressive weight sequence applied oldest to newest
var DefaultWeights = []float64{0.08, 0.12, 0.16, 0.20, 0.25, 0.35, 0.50, 0.65, 0.80, 0.95}

const (
	// DefaultOverflowWeight applies to positions beyond the weight sequence
	DefaultOverflowWeight = 0.1
	// DefaultProfileWindow is the number of matches profiled for simulation
	DefaultProfileWindow = 15
)

// Weighted is the WeightedRecent form source
type Weighted struct {
	Window         int
	Weights        []float64
	OverflowWeight float64
}

// NewWeighted creates a weighted profiler with the default weight sequence
func NewWeighted(window int) *Weighted {
	if window <= 0 {
		window = DefaultProfileWindow
	}
	return &Weighted{
		Window:         window,
		Weights:        DefaultWeights,
		OverflowWeight: DefaultOverflowWeight,
	}
}

// Profile computes the weighted profile of team over its last window matches
func Profile(team string, history []models.Match, window int) *Form {
	return NewWeighted(window).Form(team, history)
}

// Kind implements FormSource
func (w *Weighted) Kind() Kind {
	return WeightedRecent
}

func (w *Weighted) weight(i int) float64 {
	if i < len(w.Weights) {
		return w.Weights[i]
	}
	return w.OverflowWeight
}

// Form implements FormSource. Each series is normalized by the weights actually
// consumed so short histories still yield proper means.
func (w *Weighted) Form(team string, history []models.Match) *Form {
	played := Recent(team, history, w.Window)
	if len(played) == 0 {
		return nil
	}

	sums := make(map[Stat]float64, 13)
	totalWeight := 0.0

	for i := range played {
		m := &played[i]
		weight := w.weight(i)
		totalWeight += weight

		forHT, forFT := m.GoalsFor(team)
		againstHT, againstFT := m.GoalsAgainst(team)
		totalHT := forHT + againstHT
		totalFT := forFT + againstFT

		series := map[Stat]float64{
			GoalsForHT:     float64(forHT),
			GoalsAgainstHT: float64(againstHT),
			GoalsForFT:     float64(forFT),
			GoalsAgainstFT: float64(againstFT),
			Over05HT:       indicator(totalHT > 0),
			Over15HT:       indicator(totalHT > 1),
			Over05FT:       indicator(totalFT > 0),
			Over15FT:       indicator(totalFT > 1),
			Over25FT:       indicator(totalFT > 2),
			Over35FT:       indicator(totalFT > 3),
			BTTS:           indicator(forFT > 0 && againstFT > 0),
			Scored15Plus:   indicator(forFT >= 2),
			Scored25Plus:   indicator(forFT >= 3),
		}
		for stat, v := range series {
			sums[stat] += v * weight
		}
	}

	values := make(map[Stat]float64, len(sums))
	for stat, sum := range sums {
		values[stat] = sum / totalWeight
	}

	return &Form{
		Team:    team,
		Kind:    WeightedRecent,
		Matches: len(played),
		Values:  values,
	}
}
