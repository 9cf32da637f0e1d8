package logger

import (
	"github.com/sirupsen/logrus"
)

// IngestionLogger provides dedicated logging for result page ingestion.
type IngestionLogger struct {
	*logrus.Entry
}

// NewIngestionLogger creates a new ingestion logger.
func NewIngestionLogger(baseLogger *logrus.Logger) *IngestionLogger {
	return &IngestionLogger{
		Entry: baseLogger.WithField("component", "ingestion"),
	}
}

// LogFetch logs a single competition fetch.
func (il *IngestionLogger) LogFetch(source, competition string, rows int, latencyMs float64) {
	il.WithFields(logrus.Fields{
		"source":      source,
		"competition": competition,
		"rows":        rows,
		"latency_ms":  latencyMs,
	}).Debug("Result page fetched")
}

// LogFetchError logs a failed fetch.
func (il *IngestionLogger) LogFetchError(source, competition string, err error) {
	il.WithFields(logrus.Fields{
		"source":      source,
		"competition": competition,
		"error":       err.Error(),
	}).Warn("Result page fetch failed")
}

// LogRefresh logs a completed store refresh.
func (il *IngestionLogger) LogRefresh(runID string, version uint64, results, fixtures, rejected, duplicates int, durationMs float64) {
	il.WithFields(logrus.Fields{
		"run_id":      runID,
		"event_type":  "refresh",
		"version":     version,
		"results":     results,
		"fixtures":    fixtures,
		"rejected":    rejected,
		"duplicates":  duplicates,
		"duration_ms": durationMs,
	}).Info("Match store refreshed")
}

// LogCircuitBreakerEvent logs circuit breaker state changes.
func (il *IngestionLogger) LogCircuitBreakerEvent(source, state string, failures int) {
	il.WithFields(logrus.Fields{
		"source":     source,
		"event_type": "circuit_breaker",
		"state":      state,
		"failures":   failures,
	}).Warn("Circuit breaker state changed")
}
