// Package tips selects betting tips for a fixture from the recent percentage
// form of both teams.
package tips

import (
	"sort"

	"github.com/yourusername/futalgo/internal/form"
	"github.com/yourusername/futalgo/internal/markets"
)

// Weights of the home and away rate in the combined probability
const (
	HomeWeight = 0.6
	AwayWeight = 0.4
)

// Tip is a market whose combined probability reached its threshold
type Tip struct {
	Market   markets.ID     `json:"market"`
	Name     string         `json:"name"`
	Icon     string         `json:"icon"`
	Combined float64        `json:"combined"`
	HomeRate float64        `json:"home_rate"`
	AwayRate float64        `json:"away_rate"`
	Family   markets.Family `json:"family"`
	Line     float64        `json:"line"`
}

// Filter restricts the markets considered; a nil filter keeps every market
type Filter func(markets.Config) bool

// Families returns a filter keeping the given families
func Families(families ...markets.Family) Filter {
	keep := make(map[markets.Family]bool, len(families))
	for _, f := range families {
		keep[f] = true
	}
	return func(c markets.Config) bool { return keep[c.Family] }
}

// Market returns a filter keeping the single market id. It runs before the
// over-line dedupe, so a lower line is still reported when higher ones qualify.
func Market(id markets.ID) Filter {
	return func(c markets.Config) bool { return c.ID == id }
}

// All returns a filter passing only markets every non-nil filter keeps
func All(filters ...Filter) Filter {
	var active []Filter
	for _, f := range filters {
		if f != nil {
			active = append(active, f)
		}
	}
	if len(active) == 0 {
		return nil
	}
	return func(c markets.Config) bool {
		for _, f := range active {
			if !f(c) {
				return false
			}
		}
		return true
	}
}

// Selector produces tips from the tippable markets of a table
type Selector struct {
	table *markets.Table
}

// NewSelector creates a tip selector
func NewSelector(table *markets.Table) *Selector {
	if table == nil {
		table = markets.Default()
	}
	return &Selector{table: table}
}

// Generate returns the qualifying tips ordered by combined probability. Both
// forms must come from a SimplePercentRecent source; a nil form yields no tips.
func (s *Selector) Generate(home, away *form.Form, filter Filter) []Tip {
	if home == nil || away == nil {
		return nil
	}

	var candidates []Tip
	for _, market := range s.table.Tippable() {
		if filter != nil && !filter(market) {
			continue
		}
		stat := form.MarketStat(market.ID)
		homeRate := home.Value(stat)
		awayRate := away.Value(stat)
		combined := HomeWeight*homeRate + AwayWeight*awayRate
		if combined < market.Threshold {
			continue
		}
		candidates = append(candidates, Tip{
			Market:   market.ID,
			Name:     market.Name,
			Icon:     market.Icon,
			Combined: combined,
			HomeRate: homeRate,
			AwayRate: awayRate,
			Family:   market.Family,
			Line:     market.Line,
		})
	}

	selected := dedupe(candidates, s.table)
	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Combined > selected[j].Combined
	})
	return selected
}

// dedupe keeps only the highest qualifying line of each over family
func dedupe(candidates []Tip, table *markets.Table) []Tip {
	highest := make(map[markets.Family]float64)
	for _, tip := range candidates {
		if !isOver(tip, table) {
			continue
		}
		if line, ok := highest[tip.Family]; !ok || tip.Line > line {
			highest[tip.Family] = tip.Line
		}
	}

	var out []Tip
	for _, tip := range candidates {
		if isOver(tip, table) && tip.Line != highest[tip.Family] {
			continue
		}
		out = append(out, tip)
	}
	return out
}

func isOver(tip Tip, table *markets.Table) bool {
	market, err := table.Get(tip.Market)
	return err == nil && market.IsOverFamily()
}

// Best returns the tip with the highest combined probability
func Best(tips []Tip) (Tip, bool) {
	if len(tips) == 0 {
		return Tip{}, false
	}
	best := tips[0]
	for _, t := range tips[1:] {
		if t.Combined > best.Combined {
			best = t
		}
	}
	return best, true
}

// AtLeast returns the tips whose combined probability reaches min
func AtLeast(tips []Tip, min float64) []Tip {
	var out []Tip
	for _, t := range tips {
		if t.Combined >= min {
			out = append(out, t)
		}
	}
	return out
}
