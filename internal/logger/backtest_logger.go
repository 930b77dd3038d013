// Package logger provides backtest-specific logging.
package logger

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// BacktestLogger provides dedicated logging for backtest runs.
type BacktestLogger struct {
	*logrus.Entry
}

// NewBacktestLogger creates a new backtest logger.
func NewBacktestLogger(baseLogger *logrus.Logger, runID uuid.UUID) *BacktestLogger {
	return &BacktestLogger{
		Entry: baseLogger.WithFields(logrus.Fields{
			"component": "backtest",
			"run_id":    runID.String(),
		}),
	}
}

// LogDateProcessed logs the outcome of one replayed match date.
func (bl *BacktestLogger) LogDateProcessed(date time.Time, fixtures, stored int, durationMs float64) {
	bl.WithFields(logrus.Fields{
		"date":        date.Format("2006-01-02"),
		"fixtures":    fixtures,
		"stored":      stored,
		"duration_ms": durationMs,
	}).Info("Backtest date processed")
}

// LogPrediction logs one stored fixture prediction.
func (bl *BacktestLogger) LogPrediction(fixtureID int64, predictedCorners float64, confidence5p5 float64, quality string) {
	bl.WithFields(logrus.Fields{
		"fixture_id":        fixtureID,
		"predicted_corners": predictedCorners,
		"confidence_5_5":    confidence5p5,
		"quality":           quality,
	}).Debug("Prediction stored")
}
