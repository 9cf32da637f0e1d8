package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/futalgo/internal/cache"
	"github.com/yourusername/futalgo/internal/config"
	"github.com/yourusername/futalgo/internal/datasource"
	"github.com/yourusername/futalgo/internal/markets"
	"github.com/yourusername/futalgo/internal/metrics"
	"github.com/yourusername/futalgo/internal/repository"
	"github.com/yourusername/futalgo/internal/service"
)

// app wires the store, sources and services used by every command
type app struct {
	cfg        *config.Config
	logger     *logrus.Logger
	table      *markets.Table
	store      *repository.MemoryStore
	cache      *cache.ProbabilityCache
	httpClient *datasource.RateLimitedHTTPClient
	ingestion  *service.IngestionService
	analysis   *service.AnalysisService
}

func newApp(cfg *config.Config, logger *logrus.Logger) (*app, error) {
	metrics.InitRegistry()

	table, err := cfg.MarketTable()
	if err != nil {
		return nil, fmt.Errorf("failed to build market table: %w", err)
	}

	httpClient := datasource.NewRateLimitedHTTPClient(datasource.HTTPClientConfigFrom(cfg.HTTP), logger)
	factory := datasource.NewFactory(cfg, logger)
	sources, err := factory.NewDataSources(cfg.DataIngestion, httpClient)
	if err != nil {
		return nil, fmt.Errorf("failed to create data sources: %w", err)
	}
	logger.WithFields(logrus.Fields{
		"sources": len(sources),
		"types":   factory.ListAvailableSources(),
	}).Debug("Data sources configured")

	store := repository.NewMemoryStore()
	probCache := cache.NewProbabilityCache(cfg.Analysis.CacheTTL(), cfg.Analysis.CacheMaxSize)

	opts, err := service.AnalysisOptionsFromConfig(&cfg.Analysis)
	if err != nil {
		return nil, err
	}
	analysis, err := service.NewAnalysisService(store, table, opts, probCache, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create analysis service: %w", err)
	}

	ingestion := service.NewIngestionService(
		sources,
		store,
		service.NewDataValidator(logger),
		service.NewDataNormalizer(logger),
		probCache,
		logger,
	)

	return &app{
		cfg:        cfg,
		logger:     logger,
		table:      table,
		store:      store,
		cache:      probCache,
		httpClient: httpClient,
		ingestion:  ingestion,
		analysis:   analysis,
	}, nil
}

// load performs the initial store refresh
func (a *app) load(ctx context.Context) error {
	fmt.Fprintln(os.Stderr, "Loading results...")
	snap, err := a.ingestion.Refresh(ctx)
	if err != nil {
		return fmt.Errorf("failed to load results: %w", err)
	}
	a.logger.WithField("version", snap.Version).Debug("Results loaded")
	return nil
}

func (a *app) close() {
	a.httpClient.Close()
}

// resolveMarket accepts a market id or display name
func resolveMarket(table *markets.Table, arg string) (markets.Config, error) {
	if c, err := table.Get(markets.ID(arg)); err == nil {
		return c, nil
	}
	if c, ok := table.ByName(arg); ok {
		return c, nil
	}
	normalized := strings.ToLower(strings.NewReplacer(" ", "_", ".", "_", "&", "").Replace(arg))
	if c, err := table.Get(markets.ID(normalized)); err == nil {
		return c, nil
	}
	return markets.Config{}, fmt.Errorf("%w: %s", markets.ErrUnknownMarket, arg)
}
