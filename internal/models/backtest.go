package models

import (
	"time"

	"github.com/google/uuid"
)

// CornerPrediction holds the corner-total forecast for one fixture
type CornerPrediction struct {
	PredictedTotalCorners float64 `json:"predicted_total_corners"`
	PredictedHomeCorners  float64 `json:"predicted_home_corners"`
	PredictedAwayCorners  float64 `json:"predicted_away_corners"`
	Confidence5p5         float64 `json:"confidence_5_5"`
	Confidence6p5         float64 `json:"confidence_6_5"`
	Confidence7p5         float64 `json:"confidence_7_5"`
	Confidence8p5         float64 `json:"confidence_8_5"`
	StatisticalConfidence float64 `json:"statistical_confidence"`
	PredictionQuality     string  `json:"prediction_quality"`
	AnalysisReport        string  `json:"analysis_report"`
}

// BacktestResult is one stored prediction replayed against a historical
// fixture, keyed by (api_fixture_id, run_id). Re-running a date overwrites
// rows; individual rows are never amended.
type BacktestResult struct {
	APIFixtureID          int64     `db:"api_fixture_id" json:"api_fixture_id"`
	RunID                 uuid.UUID `db:"run_id" json:"run_id"`
	PredictionDate        time.Time `db:"prediction_date" json:"prediction_date"`
	MatchDate             time.Time `db:"match_date" json:"match_date"`
	Season                int       `db:"season" json:"season"`
	HomeTeamID            int64     `db:"home_team_id" json:"home_team_id"`
	AwayTeamID            int64     `db:"away_team_id" json:"away_team_id"`
	HomeTeamName          string    `db:"home_team_name" json:"home_team_name"`
	AwayTeamName          string    `db:"away_team_name" json:"away_team_name"`
	PredictedTotalCorners float64   `db:"predicted_total_corners" json:"predicted_total_corners"`
	PredictedHomeCorners  float64   `db:"predicted_home_corners" json:"predicted_home_corners"`
	PredictedAwayCorners  float64   `db:"predicted_away_corners" json:"predicted_away_corners"`
	Confidence5p5         float64   `db:"confidence_5_5" json:"confidence_5_5"`
	Confidence6p5         float64   `db:"confidence_6_5" json:"confidence_6_5"`
	HomeScoreProbability  float64   `db:"home_score_probability" json:"home_score_probability"`
	AwayScoreProbability  float64   `db:"away_score_probability" json:"away_score_probability"`
	BTTSProbability       float64   `db:"btts_probability" json:"btts_probability"`
	ActualTotalCorners    *int      `db:"actual_total_corners" json:"actual_total_corners"`
	ActualGoalsHome       *int      `db:"actual_goals_home" json:"actual_goals_home"`
	ActualGoalsAway       *int      `db:"actual_goals_away" json:"actual_goals_away"`
	Over5p5Correct        *bool     `db:"over_5_5_correct" json:"over_5_5_correct"`
	Over6p5Correct        *bool     `db:"over_6_5_correct" json:"over_6_5_correct"`
	PredictionAccuracy    *float64  `db:"prediction_accuracy" json:"prediction_accuracy"`
	AnalysisReport        string    `db:"analysis_report" json:"analysis_report"`
	CreatedAt             time.Time `db:"created_at" json:"created_at"`
}

// BacktestRun summarizes one batch execution
type BacktestRun struct {
	RunID            uuid.UUID     `json:"run_id"`
	Season           int           `json:"season"`
	DatesAvailable   int           `json:"dates_available"`
	DatesProcessed   int           `json:"dates_processed"`
	DatesSuccessful  int           `json:"dates_successful"`
	DatesFailed      int           `json:"dates_failed"`
	TotalPredictions int           `json:"total_predictions"`
	SuccessRate      float64       `json:"success_rate"`
	Errors           []string      `json:"errors"`
	StartedAt        time.Time     `json:"started_at"`
	Duration         time.Duration `json:"duration"`
}

// BacktestSummary aggregates stored results for reporting
type BacktestSummary struct {
	TotalPredictions    int     `json:"total_predictions"`
	VerifiedPredictions int     `json:"verified_predictions"`
	AverageAccuracy     float64 `json:"average_accuracy"`
	Over5p5SuccessRate  float64 `json:"over_5_5_success_rate"`
	Over6p5SuccessRate  float64 `json:"over_6_5_success_rate"`
}
