// Package logger provides analysis-specific logging.
package logger

import (
	"github.com/sirupsen/logrus"
)

// AnalysisLogger provides dedicated logging for simulation, ranking and tips.
type AnalysisLogger struct {
	*logrus.Entry
}

// NewAnalysisLogger creates a new analysis logger.
func NewAnalysisLogger(baseLogger *logrus.Logger) *AnalysisLogger {
	return &AnalysisLogger{
		Entry: baseLogger.WithField("component", "analysis"),
	}
}

// LogSimulation logs a fixture simulation.
func (al *AnalysisLogger) LogSimulation(home, away string, homeRate, awayRate float64, trials int, cacheHit bool, durationMs float64) {
	al.WithFields(logrus.Fields{
		"home_team":   home,
		"away_team":   away,
		"home_rate":   homeRate,
		"away_rate":   awayRate,
		"trials":      trials,
		"cache_hit":   cacheHit,
		"duration_ms": durationMs,
	}).Debug("Fixture simulated")
}

// LogFixtureSkipped logs a fixture analyzed without result.
func (al *AnalysisLogger) LogFixtureSkipped(home, away, reason string) {
	al.WithFields(logrus.Fields{
		"home_team": home,
		"away_team": away,
		"reason":    reason,
	}).Warn("Fixture analysis produced no data")
}

// LogFixtureBatch logs a completed fixture batch.
func (al *AnalysisLogger) LogFixtureBatch(runID string, fixtures, analyzed, noData int, durationMs float64) {
	al.WithFields(logrus.Fields{
		"run_id":      runID,
		"event_type":  "fixture_batch",
		"fixtures":    fixtures,
		"analyzed":    analyzed,
		"no_data":     noData,
		"duration_ms": durationMs,
	}).Info("Fixture batch analysis completed")
}

// LogRanking logs a market ranking.
func (al *AnalysisLogger) LogRanking(market, competition string, teams, leagues int) {
	al.WithFields(logrus.Fields{
		"market":      market,
		"competition": competition,
		"teams":       teams,
		"leagues":     leagues,
	}).Info("Market ranking computed")
}

// LogTips logs the tips produced for a fixture.
func (al *AnalysisLogger) LogTips(home, away string, tips int, best string, bestProbability float64) {
	al.WithFields(logrus.Fields{
		"home_team":        home,
		"away_team":        away,
		"tips":             tips,
		"best_tip":         best,
		"best_probability": bestProbability,
	}).Debug("Tips generated")
}
