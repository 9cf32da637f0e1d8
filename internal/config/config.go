// Package config provides configuration management for the futalgo application.
package config

import (
	"time"

	"github.com/yourusername/futalgo/internal/markets"
)

// Config represents the complete application configuration
type Config struct {
	App           AppConfig           `mapstructure:"app" validate:"required"`
	Analysis      AnalysisConfig      `mapstructure:"analysis" validate:"required"`
	Markets       MarketsConfig       `mapstructure:"markets"`
	DataIngestion DataIngestionConfig `mapstructure:"data_ingestion" validate:"required"`
	HTTP          HTTPConfig          `mapstructure:"http" validate:"required"`
	Metrics       MetricsConfig       `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// AnalysisConfig represents the simulation, profiling and tipping parameters
type AnalysisConfig struct {
	SimulationTrials    int       `mapstructure:"simulation_trials" validate:"required,min=1000,max=1000000"`
	Seed                uint64    `mapstructure:"seed"`
	HomeAdvantage       float64   `mapstructure:"home_advantage" validate:"required,gt=0,lte=3"`
	AwayFactor          float64   `mapstructure:"away_factor" validate:"required,gt=0,lte=3"`
	MinRate             float64   `mapstructure:"min_rate" validate:"required,gt=0"`
	HalfTimeShare       float64   `mapstructure:"half_time_share" validate:"required,gt=0,lt=1"`
	ProfileWindow       int       `mapstructure:"profile_window" validate:"required,gt=0"`
	TipWindow           int       `mapstructure:"tip_window" validate:"required,gt=0"`
	Weights             []float64 `mapstructure:"weights" validate:"omitempty,dive,gt=0"`
	DefaultWeight       float64   `mapstructure:"default_weight" validate:"gte=0"`
	Workers             int       `mapstructure:"workers" validate:"required,min=1,max=64"`
	BatchTimeoutSeconds int       `mapstructure:"batch_timeout_seconds" validate:"required,gt=0"`
	CacheTTLSeconds     int       `mapstructure:"cache_ttl_seconds" validate:"required,gt=0"`
	CacheMaxSize        int       `mapstructure:"cache_max_size" validate:"required,gt=0"`
	MinTipProbability   float64   `mapstructure:"min_tip_probability" validate:"gte=0,lte=100"`
	FixtureDays         int       `mapstructure:"fixture_days" validate:"required,oneof=3 7"`
}

// MarketsConfig holds per-market overrides of the built-in table
type MarketsConfig struct {
	Overrides map[string]markets.Override `mapstructure:"overrides" validate:"omitempty,dive"`
}

// DataIngestionConfig represents data ingestion configuration
type DataIngestionConfig struct {
	Sources  []DataSourceConfig `mapstructure:"sources" validate:"required,min=1,dive"`
	Schedule ScheduleConfig     `mapstructure:"schedule" validate:"required"`
}

// DataSourceConfig represents a single data source configuration
type DataSourceConfig struct {
	Name         string   `mapstructure:"name" validate:"required"`
	Type         string   `mapstructure:"type" validate:"required,oneof=soccerstats csv"`
	Enabled      bool     `mapstructure:"enabled"`
	BaseURL      string   `mapstructure:"base_url" validate:"omitempty,url"`
	Path         string   `mapstructure:"path"`
	Competitions []string `mapstructure:"competitions"`
	Workers      int      `mapstructure:"workers" validate:"omitempty,gt=0,lte=32"`
}

// ScheduleConfig represents data refresh scheduling
type ScheduleConfig struct {
	RefreshCron string `mapstructure:"refresh_cron" validate:"required,cron"`
}

// HTTPConfig represents the outbound HTTP client configuration
type HTTPConfig struct {
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"gte=0,lte=10"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"required,gt=0"`
	Burst          int     `mapstructure:"burst" validate:"required,gt=0"`
	UserAgent      string  `mapstructure:"user_agent"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// MarketTable returns the built-in market table with the configured overrides applied
func (c *Config) MarketTable() (*markets.Table, error) {
	table, err := markets.Default().WithOverrides(c.Markets.Overrides)
	if err != nil {
		return nil, err
	}
	if err := table.Validate(); err != nil {
		return nil, err
	}
	return table, nil
}

// EnabledSources returns the data sources switched on
func (c *Config) EnabledSources() []DataSourceConfig {
	var out []DataSourceConfig
	for _, s := range c.DataIngestion.Sources {
		if s.Enabled {
			out = append(out, s)
		}
	}
	return out
}

// BatchTimeout returns the fixture batch timeout
func (a AnalysisConfig) BatchTimeout() time.Duration {
	return time.Duration(a.BatchTimeoutSeconds) * time.Second
}

// CacheTTL returns the probability cache lifetime
func (a AnalysisConfig) CacheTTL() time.Duration {
	return time.Duration(a.CacheTTLSeconds) * time.Second
}

// Timeout returns the per-request timeout
func (h HTTPConfig) Timeout() time.Duration {
	return time.Duration(h.TimeoutSeconds) * time.Second
}
