package service

import (
	"fmt"
	"sync"
	"time"
)

// IngestionStats is a point-in-time copy of IngestionMetrics
type IngestionStats struct {
	StartTime        time.Time
	Duration         time.Duration
	TotalRows        int
	Accepted         int
	Results          int
	Fixtures         int
	Postponed        int
	Duplicates       int
	ValidationErrors int
	Errors           int
}

// IngestionMetrics tracks statistics about one refresh of the match store
type IngestionMetrics struct {
	mu    sync.RWMutex
	stats IngestionStats
}

// NewIngestionMetrics creates a new metrics tracker
func NewIngestionMetrics() *IngestionMetrics {
	return &IngestionMetrics{stats: IngestionStats{StartTime: time.Now()}}
}

// Reset resets all metrics
func (m *IngestionMetrics) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats = IngestionStats{StartTime: time.Now()}
}

// RecordRows adds fetched source rows
func (m *IngestionMetrics) RecordRows(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.TotalRows += n
}

// RecordAccepted increments the accepted row count
func (m *IngestionMetrics) RecordAccepted() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Accepted++
}

// RecordPostponed increments postponed row count
func (m *IngestionMetrics) RecordPostponed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Postponed++
}

// RecordError increments error count
func (m *IngestionMetrics) RecordError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Errors++
}

// RecordValidationError increments validation error count
func (m *IngestionMetrics) RecordValidationError() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.ValidationErrors++
}

// RecordLoad stores what the match store kept
func (m *IngestionMetrics) RecordLoad(results, fixtures, duplicates int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Results = results
	m.stats.Fixtures = fixtures
	m.stats.Duplicates = duplicates
}

// Finish records the elapsed time since the last reset
func (m *IngestionMetrics) Finish() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stats.Duration = time.Since(m.stats.StartTime)
}

// Stats returns a copy of the current counters
func (m *IngestionMetrics) Stats() IngestionStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.stats
}

// Rejected returns the rows that did not reach the store
func (s IngestionStats) Rejected() int {
	return s.Postponed + s.ValidationErrors + s.Errors
}

// String returns a formatted string representation of metrics
func (m *IngestionMetrics) String() string {
	s := m.Stats()

	acceptRate := float64(0)
	if s.TotalRows > 0 {
		acceptRate = float64(s.Accepted) / float64(s.TotalRows) * 100
	}

	return fmt.Sprintf(
		"IngestionMetrics{Rows=%d, Accepted=%d (%.1f%%), Results=%d, Fixtures=%d, Postponed=%d, Duplicates=%d, ValidationErrors=%d, Errors=%d, Duration=%v}",
		s.TotalRows,
		s.Accepted,
		acceptRate,
		s.Results,
		s.Fixtures,
		s.Postponed,
		s.Duplicates,
		s.ValidationErrors,
		s.Errors,
		s.Duration,
	)
}
