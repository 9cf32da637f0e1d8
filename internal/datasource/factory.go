package datasource

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/futalgo/internal/config"
)

// SourceType represents the type of data source
type SourceType string

const (
	// SoccerStatsSourceType scrapes result pages
	SoccerStatsSourceType SourceType = "soccerstats"
	// CSVSourceType reads exported result files
	CSVSourceType SourceType = "csv"
)

// Factory creates DataSource implementations based on configuration
type Factory struct {
	logger *logrus.Logger
	config *config.Config
}

// NewFactory creates a new data source factory
func NewFactory(cfg *config.Config, logger *logrus.Logger) *Factory {
	if logger == nil {
		logger = logrus.New()
	}
	return &Factory{
		logger: logger,
		config: cfg,
	}
}

// NewDataSource creates a new DataSource based on the provided configuration
func (f *Factory) NewDataSource(cfg config.DataSourceConfig, httpClient *RateLimitedHTTPClient) (DataSource, error) {
	switch SourceType(cfg.Type) {
	case SoccerStatsSourceType:
		if httpClient == nil {
			return nil, fmt.Errorf("HTTP client is required")
		}
		competitions, err := ResolveCompetitions(cfg.Competitions)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", cfg.Name, err)
		}
		return NewSoccerStatsSource(cfg.Name, cfg.BaseURL, competitions, cfg.Workers, httpClient, cfg.Enabled, f.logger), nil

	case CSVSourceType:
		if cfg.Path == "" {
			return nil, fmt.Errorf("source %s: path is required", cfg.Name)
		}
		return NewCSVSource(cfg.Name, cfg.Path, cfg.Enabled, f.logger), nil

	default:
		return nil, fmt.Errorf("unknown data source type: %s", cfg.Type)
	}
}

// ListAvailableSources returns the source types present in configuration
func (f *Factory) ListAvailableSources() []SourceType {
	available := make([]SourceType, 0)
	if f.config == nil {
		return available
	}

	seen := make(map[SourceType]bool)
	for _, src := range f.config.DataIngestion.Sources {
		t := SourceType(src.Type)
		if !seen[t] {
			seen[t] = true
			available = append(available, t)
		}
	}
	return available
}

// NewDataSources creates all enabled data sources from configuration
func (f *Factory) NewDataSources(dataCfg config.DataIngestionConfig, httpClient *RateLimitedHTTPClient) ([]DataSource, error) {
	var sources []DataSource

	for _, srcCfg := range dataCfg.Sources {
		if !srcCfg.Enabled {
			f.logger.Debugf("Skipping disabled data source: %s", srcCfg.Name)
			continue
		}

		source, err := f.NewDataSource(srcCfg, httpClient)
		if err != nil {
			return nil, fmt.Errorf("failed to create data source %s: %w", srcCfg.Name, err)
		}

		sources = append(sources, source)
		f.logger.Debugf("Created data source: %s", srcCfg.Name)
	}

	if len(sources) == 0 {
		return nil, fmt.Errorf("no enabled data sources configured")
	}

	return sources, nil
}
