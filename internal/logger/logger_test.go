package logger

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
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

func TestNewLoggerLevels(t *testing.T) {
	log := NewLogger("debug")
	assert.Equal(t, logrus.DebugLevel, log.GetLevel())

	log = NewLogger("error")
	assert.Equal(t, logrus.ErrorLevel, log.GetLevel())
}

func TestNewLoggerInvalidLevelDefaultsToInfo(t *testing.T) {
	log := NewLogger("extremely-verbose")
	assert.Equal(t, logrus.InfoLevel, log.GetLevel())
}

func TestBacktestLoggerDateProcessed(t *testing.T) {
	log, buf := setupTestLogger()
	runID := uuid.New()
	btLogger := NewBacktestLogger(log, runID)

	btLogger.LogDateProcessed(time.Date(2024, 9, 21, 0, 0, 0, 0, time.UTC), 10, 8, 125.0)

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, "backtest", logEntry["component"])
	assert.Equal(t, runID.String(), logEntry["run_id"])
	assert.Equal(t, "2024-09-21", logEntry["date"])
	assert.Equal(t, float64(8), logEntry["stored"])
}

func TestBacktestLoggerPrediction(t *testing.T) {
	log, buf := setupTestLogger()
	btLogger := NewBacktestLogger(log, uuid.New())

	btLogger.LogPrediction(12345, 10.2, 88.5, "Good")

	logEntry := parseLogOutput(buf)
	require.NotNil(t, logEntry)
	assert.Equal(t, float64(12345), logEntry["fixture_id"])
	assert.Equal(t, "Good", logEntry["quality"])
}
