// Package markets holds the static configuration of every betting market the
// analysis produces: tip thresholds, clamp bands, calibration factors and the
// family/line used to drop redundant over-lines.
package markets

import (
	"errors"
	"fmt"
	"sort"
)

// ID identifies a market
type ID string

// Market identifiers
const (
	ExpectedGoalsHT ID = "expected_goals_ht"
	Over05HT        ID = "over_0_5_ht"
	Over15HT        ID = "over_1_5_ht"
	BTTSHT          ID = "btts_ht"
	HomeScoresHT    ID = "home_scores_ht"
	AwayScoresHT    ID = "away_scores_ht"
	ExpectedGoalsFT ID = "expected_goals_ft"
	Over05FT        ID = "over_0_5_ft"
	Over15FT        ID = "over_1_5_ft"
	Over25FT        ID = "over_2_5_ft"
	Over35FT        ID = "over_3_5_ft"
	Over45FT        ID = "over_4_5_ft"
	BTTSFT          ID = "btts_ft"
	BTTSOver25      ID = "btts_over_2_5"
	HomeScores15    ID = "home_scores_1_5"
	AwayScores15    ID = "away_scores_1_5"
	HomeWin         ID = "home_win"
	Draw            ID = "draw"
	AwayWin         ID = "away_win"
	Wins            ID = "wins"
	Losses          ID = "losses"
)

// Family groups markets that describe nested thresholds of the same event
type Family string

// Market families
const (
	FamilyOverHT       Family = "over_ht"
	FamilyOverFT       Family = "over_ft"
	FamilyBTTS         Family = "btts"
	FamilyBTTSHT       Family = "btts_ht"
	FamilyCombined     Family = "combined"
	FamilyTeamAttack   Family = "team_attack"
	FamilyTeamScoresHT Family = "team_scores_ht"
	FamilyResult       Family = "result"
	FamilyExpected     Family = "expected_goals"
)

// ErrUnknownMarket is returned for identifiers missing from the table
var ErrUnknownMarket = errors.New("unknown market")

// Config describes a single market
type Config struct {
	ID     ID
	Name   string
	Icon   string
	Family Family
	Line   float64

	// Threshold is the minimum combined percentage for a tip; zero when the market is never tipped
	Threshold float64

	// Banded markets are scaled by Calibration and clamped into [Floor, Ceiling]
	Banded      bool
	Floor       float64
	Ceiling     float64
	Calibration float64

	Simulated    bool
	Tippable     bool
	Rankable     bool
	HalfTimeOnly bool
}

// Clamp scales a raw percentage by the calibration factor and forces it into the band
func (c Config) Clamp(rawPercent float64) float64 {
	if !c.Banded {
		return rawPercent
	}
	v := rawPercent * c.Calibration
	if v > c.Ceiling {
		v = c.Ceiling
	}
	if v < c.Floor {
		v = c.Floor
	}
	return v
}

// IsOverFamily reports whether only the highest qualifying line of the family should survive
func (c Config) IsOverFamily() bool {
	return c.Family == FamilyOverHT || c.Family == FamilyOverFT
}

// MinSamples is the number of valid matches an entity needs before it is ranked
func (c Config) MinSamples() int {
	if c.HalfTimeOnly {
		return 3
	}
	return 5
}

// Override replaces tunable values of a market; zero fields keep the default
type Override struct {
	Threshold   float64 `mapstructure:"threshold" validate:"gte=0,lte=100"`
	Floor       float64 `mapstructure:"floor" validate:"gte=0,lte=100"`
	Ceiling     float64 `mapstructure:"ceiling" validate:"gte=0,lte=100"`
	Calibration float64 `mapstructure:"calibration" validate:"gte=0"`
}

// Table is an immutable, ordered set of market configurations
type Table struct {
	order   []ID
	configs map[ID]Config
}

// NewTable builds a table preserving the order of configs
func NewTable(configs []Config) *Table {
	t := &Table{
		order:   make([]ID, 0, len(configs)),
		configs: make(map[ID]Config, len(configs)),
	}
	for _, c := range configs {
		if _, exists := t.configs[c.ID]; !exists {
			t.order = append(t.order, c.ID)
		}
		t.configs[c.ID] = c
	}
	return t
}

// Get returns the configuration of id
func (t *Table) Get(id ID) (Config, error) {
	c, ok := t.configs[id]
	if !ok {
		return Config{}, fmt.Errorf("%w: %s", ErrUnknownMarket, id)
	}
	return c, nil
}

// ByName finds a market by its display name
func (t *Table) ByName(name string) (Config, bool) {
	for _, id := range t.order {
		if t.configs[id].Name == name {
			return t.configs[id], true
		}
	}
	return Config{}, false
}

// All returns every market in table order
func (t *Table) All() []Config {
	return t.filter(func(Config) bool { return true })
}

// Simulated returns the markets produced by the match simulator
func (t *Table) Simulated() []Config {
	return t.filter(func(c Config) bool { return c.Simulated })
}

// Tippable returns the markets considered by the tip selector
func (t *Table) Tippable() []Config {
	return t.filter(func(c Config) bool { return c.Tippable })
}

// Rankable returns the markets available to the hit-rate ranker
func (t *Table) Rankable() []Config {
	return t.filter(func(c Config) bool { return c.Rankable })
}

func (t *Table) filter(keep func(Config) bool) []Config {
	out := make([]Config, 0, len(t.order))
	for _, id := range t.order {
		if c := t.configs[id]; keep(c) {
			out = append(out, c)
		}
	}
	return out
}

// WithOverrides returns a copy of the table with overrides applied
func (t *Table) WithOverrides(overrides map[string]Override) (*Table, error) {
	configs := t.All()
	index := make(map[ID]int, len(configs))
	for i, c := range configs {
		index[c.ID] = i
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		i, ok := index[ID(k)]
		if !ok {
			return nil, fmt.Errorf("override for %w: %s", ErrUnknownMarket, k)
		}
		o := overrides[k]
		if o.Threshold > 0 {
			configs[i].Threshold = o.Threshold
		}
		if o.Floor > 0 {
			configs[i].Floor = o.Floor
		}
		if o.Ceiling > 0 {
			configs[i].Ceiling = o.Ceiling
		}
		if o.Calibration > 0 {
			configs[i].Calibration = o.Calibration
		}
	}

	return NewTable(configs), nil
}

// Validate checks the table is complete and every entry is consistent
func (t *Table) Validate() error {
	for _, id := range requiredMarkets {
		if _, ok := t.configs[id]; !ok {
			return fmt.Errorf("market table incomplete: %w: %s", ErrUnknownMarket, id)
		}
	}

	for _, id := range t.order {
		c := t.configs[id]
		if c.Name == "" {
			return fmt.Errorf("market %s has no name", id)
		}
		if c.Banded {
			if c.Floor < 0 || c.Ceiling > 100 || c.Floor > c.Ceiling {
				return fmt.Errorf("market %s has invalid band [%.2f, %.2f]", id, c.Floor, c.Ceiling)
			}
			if c.Calibration <= 0 {
				return fmt.Errorf("market %s has non-positive calibration %.3f", id, c.Calibration)
			}
		}
		if c.Tippable && (c.Threshold <= 0 || c.Threshold > 100) {
			return fmt.Errorf("market %s has threshold %.2f outside (0, 100]", id, c.Threshold)
		}
		if c.IsOverFamily() && c.Line <= 0 {
			return fmt.Errorf("market %s belongs to %s but has no line", id, c.Family)
		}
		if c.Simulated && !c.Banded && c.Family != FamilyResult && c.Family != FamilyExpected {
			return fmt.Errorf("simulated market %s has no clamp band", id)
		}
	}

	return nil
}
