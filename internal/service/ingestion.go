package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/futalgo/internal/datasource"
	"github.com/yourusername/futalgo/internal/logger"
	"github.com/yourusername/futalgo/internal/metrics"
	"github.com/yourusername/futalgo/internal/models"
	"github.com/yourusername/futalgo/internal/repository"
)

// allCompetitions labels source level log entries
const allCompetitions = "all"

// VersionInvalidator drops memoized state computed on older store versions
type VersionInvalidator interface {
	InvalidateBefore(version uint64) int
}

// IngestionService fetches every source and installs the result as a new store snapshot
type IngestionService struct {
	sources     []datasource.DataSource
	store       repository.MatchRepository
	validator   *DataValidator
	normalizer  *DataNormalizer
	invalidator VersionInvalidator
	metrics     *IngestionMetrics
	logger      *logrus.Logger
	events      *logger.IngestionLogger

	mu sync.Mutex
}

// NewIngestionService creates a new ingestion service. invalidator may be nil.
func NewIngestionService(
	sources []datasource.DataSource,
	store repository.MatchRepository,
	validator *DataValidator,
	normalizer *DataNormalizer,
	invalidator VersionInvalidator,
	log *logrus.Logger,
) *IngestionService {
	if log == nil {
		log = logrus.New()
	}
	if validator == nil {
		validator = NewDataValidator(log)
	}
	if normalizer == nil {
		normalizer = NewDataNormalizer(log)
	}

	return &IngestionService{
		sources:     sources,
		store:       store,
		validator:   validator,
		normalizer:  normalizer,
		invalidator: invalidator,
		metrics:     NewIngestionMetrics(),
		logger:      log,
		events:      logger.NewIngestionLogger(log),
	}
}

// Refresh fetches all enabled sources and replaces the store contents.
// A source that fails is skipped; the refresh fails when no source yields rows.
func (s *IngestionService) Refresh(ctx context.Context) (*repository.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.metrics.Reset()
	runID := uuid.New().String()

	var matches []models.Match
	var fetched, failed int
	for _, src := range s.sources {
		if !src.IsEnabled() {
			continue
		}
		fetched++

		start := time.Now()
		rows, err := src.FetchMatches(ctx)
		if err != nil {
			failed++
			s.metrics.RecordError()
			s.events.LogFetchError(src.Name(), allCompetitions, err)
			continue
		}
		s.metrics.RecordRows(len(rows))

		accepted := s.processRows(rows, len(matches), &matches)
		metrics.RecordIngested(src.Name(), accepted)
		s.events.LogFetch(src.Name(), allCompetitions, len(rows), float64(time.Since(start).Milliseconds()))
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("refresh cancelled: %w", err)
	}
	if fetched == 0 {
		return nil, fmt.Errorf("no enabled data sources")
	}
	if failed == fetched {
		return nil, fmt.Errorf("all data sources failed")
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("refresh produced no usable rows: %w", models.ErrNoMatches)
	}

	snapshot, stats, err := s.store.Replace(ctx, matches)
	if err != nil {
		return nil, fmt.Errorf("failed to replace matches: %w", err)
	}
	s.metrics.RecordLoad(stats.Results, stats.Fixtures, stats.Duplicates)
	s.metrics.Finish()

	metrics.UpdateStore(snapshot.Version, stats.Results, stats.Fixtures)
	if s.invalidator != nil {
		s.invalidator.InvalidateBefore(snapshot.Version)
	}

	summary := s.metrics.Stats()
	s.events.LogRefresh(runID, snapshot.Version, stats.Results, stats.Fixtures,
		summary.Rejected(), stats.Duplicates, float64(summary.Duration.Milliseconds()))

	return snapshot, nil
}

// processRows normalizes and validates rows, appending accepted matches.
// Sequence numbers continue from offset so ingestion order spans sources.
func (s *IngestionService) processRows(rows []datasource.MatchData, offset int, out *[]models.Match) int {
	accepted := 0
	for i := range rows {
		match, err := s.normalizer.NormalizeMatch(&rows[i], offset+accepted)
		if errors.Is(err, ErrPostponed) {
			s.metrics.RecordPostponed()
			metrics.RecordRejected("postponed")
			continue
		}
		if err != nil {
			s.metrics.RecordError()
			metrics.RecordRejected("date")
			s.logger.WithFields(logrus.Fields{
				"source": rows[i].Source,
				"home":   rows[i].HomeTeam,
				"away":   rows[i].AwayTeam,
			}).Debugf("Skipping row: %v", err)
			continue
		}

		if errs := s.validator.ValidateMatch(match); len(errs) > 0 {
			s.metrics.RecordValidationError()
			metrics.RecordRejected(s.validator.Reason(errs))
			s.logger.WithFields(logrus.Fields{
				"source": rows[i].Source,
				"home":   match.HomeTeam,
				"away":   match.AwayTeam,
			}).Debugf("Match validation failed: %v", errs)
			continue
		}

		*out = append(*out, *match)
		s.metrics.RecordAccepted()
		accepted++
	}
	return accepted
}

// Stats returns the counters of the last refresh
func (s *IngestionService) Stats() IngestionStats {
	return s.metrics.Stats()
}
