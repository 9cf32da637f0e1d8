package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	defaultConfigPath = "config/config.yaml"
	envPrefix         = "FUTALGO"
)

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional fields.
// A missing file is not an error; defaults and environment variables apply.
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = defaultConfigPath
	}

	v := newViper()
	setDefaults(v)

	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	if len(cfg.DataIngestion.Sources) == 0 {
		cfg.DataIngestion.Sources = []DataSourceConfig{defaultSource()}
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "futalgo")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("analysis.simulation_trials", 100000)
	v.SetDefault("analysis.seed", 0)
	v.SetDefault("analysis.home_advantage", 1.15)
	v.SetDefault("analysis.away_factor", 0.85)
	v.SetDefault("analysis.min_rate", 0.1)
	v.SetDefault("analysis.half_time_share", 0.4)
	v.SetDefault("analysis.profile_window", 15)
	v.SetDefault("analysis.tip_window", 10)
	v.SetDefault("analysis.weights", []float64{0.08, 0.12, 0.16, 0.20, 0.25, 0.35, 0.50, 0.65, 0.80, 0.95})
	v.SetDefault("analysis.default_weight", 0.1)
	v.SetDefault("analysis.workers", 8)
	v.SetDefault("analysis.batch_timeout_seconds", 300)
	v.SetDefault("analysis.cache_ttl_seconds", 1800)
	v.SetDefault("analysis.cache_max_size", 5000)
	v.SetDefault("analysis.min_tip_probability", 70)
	v.SetDefault("analysis.fixture_days", 3)

	v.SetDefault("data_ingestion.schedule.refresh_cron", "0 */6 * * *")

	v.SetDefault("http.timeout_seconds", 30)
	v.SetDefault("http.max_retries", 3)
	v.SetDefault("http.rate_limit", 2)
	v.SetDefault("http.burst", 4)
	v.SetDefault("http.user_agent", "Mozilla/5.0 (compatible; futalgo/1.0)")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
	v.SetDefault("metrics.path", "/metrics")
}

func defaultSource() DataSourceConfig {
	return DataSourceConfig{
		Name:    "soccerstats",
		Type:    "soccerstats",
		Enabled: true,
		BaseURL: "https://www.soccerstats.com",
		Workers: 10,
	}
}
