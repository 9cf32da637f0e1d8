package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestLogger() (*logrus.Logger, *bytes.Buffer) {
	log := logrus.New()
	buf := &bytes.Buffer{}
	log.SetOutput(buf)
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetLevel(logrus.DebugLevel)
	return log, buf
}

func parseLogOutput(buf *bytes.Buffer) map[string]interface{} {
	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		return nil
	}
	return logEntry
}

func TestNewLogger(t *testing.T) {
	log := NewLogger("debug", "production")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, log.Formatter)

	log = NewLogger("nonsense", "development")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
	assert.IsType(t, &logrus.TextFormatter{}, log.Formatter)
}

func TestAnalysisLoggerSimulation(t *testing.T) {
	log, buf := setupTestLogger()
	analysisLogger := NewAnalysisLogger(log)

	analysisLogger.LogSimulation("Celtic", "Rangers", 2.07, 0.85, 100000, false, 42)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "analysis", logEntry["component"])
	assert.Equal(t, "Celtic", logEntry["home_team"])
	assert.Equal(t, float64(100000), logEntry["trials"])
}

func TestAnalysisLoggerFixtureBatch(t *testing.T) {
	log, buf := setupTestLogger()
	NewAnalysisLogger(log).LogFixtureBatch("run-1", 12, 10, 2, 1500)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "fixture_batch", logEntry["event_type"])
	assert.Equal(t, float64(2), logEntry["no_data"])
}

func TestAnalysisLoggerFixtureSkipped(t *testing.T) {
	log, buf := setupTestLogger()
	NewAnalysisLogger(log).LogFixtureSkipped("Celtic", "Rangers", "missing team profile")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "warning", logEntry["level"])
	assert.Equal(t, "missing team profile", logEntry["reason"])
}

func TestIngestionLoggerRefresh(t *testing.T) {
	log, buf := setupTestLogger()
	NewIngestionLogger(log).LogRefresh("run-2", 3, 900, 40, 5, 1, 2300)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "ingestion", logEntry["component"])
	assert.Equal(t, float64(3), logEntry["version"])
}

func TestIngestionLoggerFetchError(t *testing.T) {
	log, buf := setupTestLogger()
	NewIngestionLogger(log).LogFetchError("soccerstats", "england", errors.New("status 503"))

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "status 503", logEntry["error"])
}
