package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/corner-edge/internal/database"
	"github.com/yourusername/corner-edge/internal/models"
)

const errScanBacktestResult = "failed to scan backtest result: %w"

const backtestResultColumns = `
	api_fixture_id, run_id, prediction_date, match_date, season,
	home_team_id, away_team_id, home_team_name, away_team_name,
	predicted_total_corners, predicted_home_corners, predicted_away_corners,
	confidence_5_5, confidence_6_5,
	home_score_probability, away_score_probability, btts_probability,
	actual_total_corners, actual_goals_home, actual_goals_away,
	over_5_5_correct, over_6_5_correct,
	prediction_accuracy, analysis_report, created_at`

// PostgresBacktestResultRepository implements BacktestResultRepository for PostgreSQL
type PostgresBacktestResultRepository struct {
	db *database.DB
}

// NewPostgresBacktestResultRepository creates a new backtest result repository
func NewPostgresBacktestResultRepository(db *database.DB) BacktestResultRepository {
	return &PostgresBacktestResultRepository{db: db}
}

// InsertBatchTx inserts a date's results inside the caller's transaction so
// the date is stored atomically.
func (r *PostgresBacktestResultRepository) InsertBatchTx(ctx context.Context, tx pgx.Tx, results []*models.BacktestResult) error {
	query := `
		INSERT INTO backtest_results (
			api_fixture_id, run_id, prediction_date, match_date, season,
			home_team_id, away_team_id, home_team_name, away_team_name,
			predicted_total_corners, predicted_home_corners, predicted_away_corners,
			confidence_5_5, confidence_6_5,
			home_score_probability, away_score_probability, btts_probability,
			actual_total_corners, actual_goals_home, actual_goals_away,
			over_5_5_correct, over_6_5_correct,
			prediction_accuracy, analysis_report
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12,
		          $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24)
		ON CONFLICT (api_fixture_id, run_id) DO NOTHING
	`

	for _, result := range results {
		_, err := tx.Exec(ctx, query,
			result.APIFixtureID, result.RunID, result.PredictionDate, result.MatchDate, result.Season,
			result.HomeTeamID, result.AwayTeamID, result.HomeTeamName, result.AwayTeamName,
			result.PredictedTotalCorners, result.PredictedHomeCorners, result.PredictedAwayCorners,
			result.Confidence5p5, result.Confidence6p5,
			result.HomeScoreProbability, result.AwayScoreProbability, result.BTTSProbability,
			result.ActualTotalCorners, result.ActualGoalsHome, result.ActualGoalsAway,
			result.Over5p5Correct, result.Over6p5Correct,
			result.PredictionAccuracy, result.AnalysisReport,
		)
		if err != nil {
			return fmt.Errorf("failed to insert backtest result for fixture %d: %w", result.APIFixtureID, err)
		}
	}

	return nil
}

// CountForDate counts stored results for a match day. A non-zero count
// marks the date as already processed for the idempotence check.
func (r *PostgresBacktestResultRepository) CountForDate(ctx context.Context, date time.Time, season int) (int, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	query := `
		SELECT COUNT(*) FROM backtest_results
		WHERE match_date >= $1 AND match_date < $2 AND season = $3
	`

	var count int
	err := r.db.GetPool().QueryRow(ctx, query, dayStart, dayEnd, season).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count backtest results for date: %w", err)
	}

	return count, nil
}

// DeleteForDateTx removes a date's stored results within a transaction,
// used when a re-run overwrites a date.
func (r *PostgresBacktestResultRepository) DeleteForDateTx(ctx context.Context, tx pgx.Tx, date time.Time, season int) error {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	query := `
		DELETE FROM backtest_results
		WHERE match_date >= $1 AND match_date < $2 AND season = $3
	`

	if _, err := tx.Exec(ctx, query, dayStart, dayEnd, season); err != nil {
		return fmt.Errorf("failed to delete backtest results for date: %w", err)
	}

	return nil
}

func (r *PostgresBacktestResultRepository) queryResults(ctx context.Context, query string, args ...interface{}) ([]*models.BacktestResult, error) {
	rows, err := r.db.GetPool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query backtest results: %w", err)
	}
	defer rows.Close()

	var results []*models.BacktestResult
	for rows.Next() {
		result := &models.BacktestResult{}
		err := rows.Scan(
			&result.APIFixtureID, &result.RunID, &result.PredictionDate, &result.MatchDate, &result.Season,
			&result.HomeTeamID, &result.AwayTeamID, &result.HomeTeamName, &result.AwayTeamName,
			&result.PredictedTotalCorners, &result.PredictedHomeCorners, &result.PredictedAwayCorners,
			&result.Confidence5p5, &result.Confidence6p5,
			&result.HomeScoreProbability, &result.AwayScoreProbability, &result.BTTSProbability,
			&result.ActualTotalCorners, &result.ActualGoalsHome, &result.ActualGoalsAway,
			&result.Over5p5Correct, &result.Over6p5Correct,
			&result.PredictionAccuracy, &result.AnalysisReport, &result.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanBacktestResult, err)
		}
		results = append(results, result)
	}

	return results, rows.Err()
}

// GetByRunID retrieves all results stored by one batch run
func (r *PostgresBacktestResultRepository) GetByRunID(ctx context.Context, runID uuid.UUID) ([]*models.BacktestResult, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM backtest_results
		WHERE run_id = $1
		ORDER BY match_date ASC, api_fixture_id ASC
	`, backtestResultColumns)

	return r.queryResults(ctx, query, runID)
}

// GetBySeason retrieves all stored results for a season
func (r *PostgresBacktestResultRepository) GetBySeason(ctx context.Context, season int) ([]*models.BacktestResult, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM backtest_results
		WHERE season = $1
		ORDER BY match_date ASC, api_fixture_id ASC
	`, backtestResultColumns)

	return r.queryResults(ctx, query, season)
}

// GetSummary aggregates stored results for a season. Season 0 aggregates
// across all seasons.
func (r *PostgresBacktestResultRepository) GetSummary(ctx context.Context, season int) (*models.BacktestSummary, error) {
	query := `
		SELECT
			COUNT(*) AS total_predictions,
			COALESCE(AVG(prediction_accuracy), 0) AS avg_accuracy,
			COUNT(*) FILTER (WHERE over_5_5_correct) AS over_5_5_wins,
			COUNT(*) FILTER (WHERE over_6_5_correct) AS over_6_5_wins,
			COUNT(*) FILTER (WHERE actual_total_corners IS NOT NULL) AS verified
		FROM backtest_results
		WHERE ($1 = 0 OR season = $1)
	`

	summary := &models.BacktestSummary{}
	var over5Wins, over6Wins int
	err := r.db.GetPool().QueryRow(ctx, query, season).Scan(
		&summary.TotalPredictions, &summary.AverageAccuracy,
		&over5Wins, &over6Wins, &summary.VerifiedPredictions,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get backtest summary: %w", err)
	}

	if summary.VerifiedPredictions > 0 {
		verified := float64(summary.VerifiedPredictions)
		summary.Over5p5SuccessRate = float64(over5Wins) / verified * 100
		summary.Over6p5SuccessRate = float64(over6Wins) / verified * 100
	}

	return summary, nil
}
