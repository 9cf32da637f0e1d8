package simulation

import (
	"fmt"
	"math"

	"github.com/yourusername/futalgo/internal/config"
)

// Default simulation parameters
const (
	DefaultTrials        = 100000
	DefaultHomeAdvantage = 1.15
	DefaultAwayFactor    = 0.85
	DefaultMinRate       = 0.1
	DefaultHalfTimeShare = 0.4
)

// Config configures the match outcome simulator
type Config struct {
	Trials int
	// Seed makes runs reproducible; zero seeds from the clock
	Seed          uint64
	HomeAdvantage float64
	AwayFactor    float64
	MinRate       float64
	HalfTimeShare float64
}

// DefaultConfig returns the tuned simulation parameters
func DefaultConfig() Config {
	return Config{
		Trials:        DefaultTrials,
		HomeAdvantage: DefaultHomeAdvantage,
		AwayFactor:    DefaultAwayFactor,
		MinRate:       DefaultMinRate,
		HalfTimeShare: DefaultHalfTimeShare,
	}
}

// FromConfig converts the analysis section of the app config
func FromConfig(cfg *config.AnalysisConfig) (Config, error) {
	if cfg == nil {
		return Config{}, fmt.Errorf("analysis config is required")
	}
	c := DefaultConfig()
	if cfg.SimulationTrials > 0 {
		c.Trials = cfg.SimulationTrials
	}
	c.Seed = cfg.Seed
	if cfg.HomeAdvantage > 0 {
		c.HomeAdvantage = cfg.HomeAdvantage
	}
	if cfg.AwayFactor > 0 {
		c.AwayFactor = cfg.AwayFactor
	}
	if cfg.MinRate > 0 {
		c.MinRate = cfg.MinRate
	}
	if cfg.HalfTimeShare > 0 {
		c.HalfTimeShare = cfg.HalfTimeShare
	}
	return c, c.Validate()
}

// Validate validates simulation parameters
func (c Config) Validate() error {
	if c.Trials <= 0 {
		return fmt.Errorf("trials must be positive")
	}
	for name, v := range map[string]float64{
		"home advantage": c.HomeAdvantage,
		"away factor":    c.AwayFactor,
		"min rate":       c.MinRate,
	} {
		if v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s must be a positive number", name)
		}
	}
	if c.HalfTimeShare <= 0 || c.HalfTimeShare >= 1 {
		return fmt.Errorf("half time share must be between 0 and 1")
	}
	return nil
}
