// Package backtest replays stored seasons date by date, generating
// predictions from pre-match history only and validating them against the
// known results. Each date is stored atomically, so an interrupted run
// resumes by skipping the dates that are already in the table.
package backtest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/corner-edge/internal/logger"
	"github.com/yourusername/corner-edge/internal/metrics"
	"github.com/yourusername/corner-edge/internal/models"
	"github.com/yourusername/corner-edge/internal/repository"
)

// maxStoredErrors caps how many per-match errors a run keeps for its
// summary; the rest are only logged.
const maxStoredErrors = 5

// accuracyPenaltyPerCorner converts the absolute corner-count miss into a
// 0..100 accuracy score.
const accuracyPenaltyPerCorner = 15.0

// TxRunner runs a function inside a database transaction.
// *database.DB satisfies it.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// FixturePredictor generates goal and corner predictions for a fixture at
// a cutoff date. *predictor.Predictor satisfies it.
type FixturePredictor interface {
	Predict(ctx context.Context, homeID, awayID int64, season int, cutoff time.Time) (models.PredictionOutcome, error)
	PredictCorners(ctx context.Context, homeID, awayID int64, season int, cutoff time.Time) (*models.CornerPrediction, error)
}

// Engine orchestrates date-based backtest runs.
type Engine struct {
	config    Config
	db        TxRunner
	matches   repository.MatchRepository
	teams     repository.TeamRepository
	results   repository.BacktestResultRepository
	predictor FixturePredictor
	logger    *logrus.Logger

	teamNames map[int64]string
}

// NewEngine creates a new backtesting engine.
func NewEngine(cfg Config, db TxRunner, repos *repository.Repositories, pred FixturePredictor, logger *logrus.Logger) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if db == nil {
		return nil, fmt.Errorf("database is required")
	}
	if repos == nil {
		return nil, fmt.Errorf("repositories are required")
	}
	if pred == nil {
		return nil, fmt.Errorf("predictor is required")
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &Engine{
		config:    cfg,
		db:        db,
		matches:   repos.Match,
		teams:     repos.Team,
		results:   repos.BacktestResult,
		predictor: pred,
		logger:    logger,
		teamNames: make(map[int64]string),
	}, nil
}

// Run replays every remaining match date for the configured season, oldest
// first. Per-date failures are recorded on the run and do not abort it;
// only context cancellation and the initial date listing stop a run early.
func (e *Engine) Run(ctx context.Context) (*models.BacktestRun, error) {
	run := &models.BacktestRun{
		RunID:     uuid.New(),
		Season:    e.config.Season,
		StartedAt: time.Now().UTC(),
	}

	dates, err := e.matches.GetDatesWithResults(ctx, e.config.Season, repository.FilterCorners)
	if err != nil {
		return nil, fmt.Errorf("listing match dates: %w", err)
	}
	run.DatesAvailable = len(dates)
	metrics.BacktestDatesRemaining.Set(float64(len(dates)))

	e.logger.WithFields(logrus.Fields{
		"run_id":    run.RunID,
		"season":    e.config.Season,
		"dates":     len(dates),
		"max_dates": e.config.MaxDates,
		"force":     e.config.Force,
	}).Info("Starting backtest run")

	for _, date := range dates {
		if err := ctx.Err(); err != nil {
			e.finish(run)
			return run, err
		}
		if e.config.MaxDates > 0 && run.DatesProcessed >= e.config.MaxDates {
			break
		}

		if !e.config.Force {
			count, err := e.results.CountForDate(ctx, date, e.config.Season)
			if err != nil {
				e.recordFailure(run, date, fmt.Errorf("checking stored results: %w", err))
				continue
			}
			if count > 0 {
				e.logger.WithFields(logrus.Fields{
					"date":   date.Format("2006-01-02"),
					"stored": count,
				}).Debug("Date already processed, skipping")
				metrics.RecordBacktestDate("skipped")
				metrics.BacktestDatesRemaining.Dec()
				continue
			}
		}

		run.DatesProcessed++
		rows, err := e.processDate(ctx, run, date)
		if err != nil {
			e.recordFailure(run, date, err)
		} else {
			run.DatesSuccessful++
			run.TotalPredictions += len(rows)
			metrics.RecordBacktestDate("success")
			metrics.RecordBacktestStored(len(rows))
		}
		metrics.BacktestDatesRemaining.Dec()
	}

	e.finish(run)
	return run, nil
}

// RunForDate replays a single match date and returns the rows it stored.
// Unless the engine is configured to force rewrites, a date that already
// has stored results is an error rather than a silent skip.
func (e *Engine) RunForDate(ctx context.Context, date time.Time) ([]*models.BacktestResult, error) {
	if !e.config.Force {
		count, err := e.results.CountForDate(ctx, date, e.config.Season)
		if err != nil {
			return nil, fmt.Errorf("checking stored results: %w", err)
		}
		if count > 0 {
			return nil, fmt.Errorf("date %s already has %d stored results", date.Format("2006-01-02"), count)
		}
	}

	run := &models.BacktestRun{
		RunID:     uuid.New(),
		Season:    e.config.Season,
		StartedAt: time.Now().UTC(),
	}

	rows, err := e.processDate(ctx, run, date)
	if err != nil {
		metrics.RecordBacktestDate("failure")
		return nil, err
	}

	metrics.RecordBacktestDate("success")
	metrics.RecordBacktestStored(len(rows))
	return rows, nil
}

// Summary returns the stored verification summary for the engine's season.
func (e *Engine) Summary(ctx context.Context) (*models.BacktestSummary, error) {
	return e.results.GetSummary(ctx, e.config.Season)
}

func (e *Engine) finish(run *models.BacktestRun) {
	run.Duration = time.Since(run.StartedAt)
	if run.DatesProcessed > 0 {
		run.SuccessRate = float64(run.DatesSuccessful) / float64(run.DatesProcessed) * 100
	}
	metrics.BacktestDuration.Observe(run.Duration.Seconds())
	// The backlog gauge tracks the current run only; an early exit via
	// MaxDates or cancellation must not leave it reporting unvisited dates.
	metrics.BacktestDatesRemaining.Set(0)

	e.logger.WithFields(logrus.Fields{
		"run_id":      run.RunID,
		"processed":   run.DatesProcessed,
		"successful":  run.DatesSuccessful,
		"failed":      run.DatesFailed,
		"predictions": run.TotalPredictions,
		"duration":    run.Duration.Round(time.Millisecond),
	}).Info("Backtest run finished")
}

func (e *Engine) recordFailure(run *models.BacktestRun, date time.Time, err error) {
	run.DatesFailed++
	metrics.RecordBacktestDate("failure")
	e.appendError(run, fmt.Sprintf("%s: %v", date.Format("2006-01-02"), err))
	e.logger.WithError(err).WithField("date", date.Format("2006-01-02")).Error("Failed to process backtest date")
}

func (e *Engine) appendError(run *models.BacktestRun, msg string) {
	if len(run.Errors) < maxStoredErrors {
		run.Errors = append(run.Errors, msg)
	}
}

// processDate predicts every finished fixture on one match day using only
// history strictly before the previous day, then stores the date's rows in
// a single transaction.
func (e *Engine) processDate(ctx context.Context, run *models.BacktestRun, date time.Time) ([]*models.BacktestResult, error) {
	start := time.Now()
	runLog := logger.NewBacktestLogger(e.logger, run.RunID)

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	cutoff := dayStart.AddDate(0, 0, -1)

	fixtures, err := e.matches.GetMatchesOnDate(ctx, date, e.config.Season)
	if err != nil {
		return nil, fmt.Errorf("loading fixtures: %w", err)
	}

	rows := make([]*models.BacktestResult, 0, len(fixtures))
	for _, fixture := range fixtures {
		if !fixture.IsFinished() {
			continue
		}

		row, err := e.predictFixture(ctx, run.RunID, runLog, fixture, cutoff)
		if errors.Is(err, models.ErrInsufficientHistory) {
			e.logger.WithFields(logrus.Fields{
				"fixture": fixture.APIFixtureID,
				"date":    date.Format("2006-01-02"),
			}).Debug("Skipping fixture with insufficient history")
			continue
		}
		if err != nil {
			e.appendError(run, fmt.Sprintf("fixture %d: %v", fixture.APIFixtureID, err))
			e.logger.WithError(err).WithField("fixture", fixture.APIFixtureID).Error("Failed to predict fixture")
			continue
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no successful predictions among %d fixtures", len(fixtures))
	}

	err = e.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		if e.config.Force {
			if err := e.results.DeleteForDateTx(ctx, tx, date, e.config.Season); err != nil {
				return err
			}
		}
		return e.results.InsertBatchTx(ctx, tx, rows)
	})
	if err != nil {
		return nil, fmt.Errorf("storing results: %w", err)
	}

	runLog.LogDateProcessed(date, len(fixtures), len(rows), float64(time.Since(start).Milliseconds()))

	return rows, nil
}

func (e *Engine) predictFixture(ctx context.Context, runID uuid.UUID, runLog *logger.BacktestLogger, fixture *models.Match, cutoff time.Time) (*models.BacktestResult, error) {
	corner, err := e.predictor.PredictCorners(ctx, fixture.HomeTeamID, fixture.AwayTeamID, fixture.Season, cutoff)
	if err != nil {
		return nil, err
	}

	outcome, err := e.predictor.Predict(ctx, fixture.HomeTeamID, fixture.AwayTeamID, fixture.Season, cutoff)
	if err != nil {
		return nil, err
	}

	// A thin goal history degrades to the neutral probability rather
	// than dropping the fixture, matching the live prediction behavior.
	homeProb, awayProb, btts := 50.0, 50.0, 50.0
	if outcome.OK() {
		homeProb = outcome.Prediction.HomeScoreProbability
		awayProb = outcome.Prediction.AwayScoreProbability
		btts = outcome.Prediction.BTTSProbability
	}

	row := &models.BacktestResult{
		APIFixtureID:          fixture.APIFixtureID,
		RunID:                 runID,
		PredictionDate:        cutoff,
		MatchDate:             fixture.MatchDate,
		Season:                fixture.Season,
		HomeTeamID:            fixture.HomeTeamID,
		AwayTeamID:            fixture.AwayTeamID,
		HomeTeamName:          e.teamName(ctx, fixture.HomeTeamID),
		AwayTeamName:          e.teamName(ctx, fixture.AwayTeamID),
		PredictedTotalCorners: corner.PredictedTotalCorners,
		PredictedHomeCorners:  corner.PredictedHomeCorners,
		PredictedAwayCorners:  corner.PredictedAwayCorners,
		Confidence5p5:         corner.Confidence5p5,
		Confidence6p5:         corner.Confidence6p5,
		HomeScoreProbability:  homeProb,
		AwayScoreProbability:  awayProb,
		BTTSProbability:       btts,
		AnalysisReport:        corner.AnalysisReport,
	}

	if total, ok := fixture.TotalCorners(); ok {
		actual := total
		row.ActualTotalCorners = &actual

		over5 := (corner.PredictedTotalCorners > 5.5) == (float64(actual) > 5.5)
		over6 := (corner.PredictedTotalCorners > 6.5) == (float64(actual) > 6.5)
		row.Over5p5Correct = &over5
		row.Over6p5Correct = &over6

		accuracy := math.Max(0, 100-math.Abs(corner.PredictedTotalCorners-float64(actual))*accuracyPenaltyPerCorner)
		row.PredictionAccuracy = &accuracy
	}

	if fixture.HasGoalData() {
		goalsHome := *fixture.GoalsHome
		goalsAway := *fixture.GoalsAway
		row.ActualGoalsHome = &goalsHome
		row.ActualGoalsAway = &goalsAway
	}

	runLog.LogPrediction(fixture.APIFixtureID, corner.PredictedTotalCorners, corner.Confidence5p5, corner.PredictionQuality)

	return row, nil
}

// teamName resolves and caches a team's display name for stored rows.
func (e *Engine) teamName(ctx context.Context, teamID int64) string {
	if name, ok := e.teamNames[teamID]; ok {
		return name
	}

	team, err := e.teams.GetByID(ctx, teamID)
	if err != nil {
		e.logger.WithError(err).WithField("team_id", teamID).Warn("Could not resolve team name")
		return fmt.Sprintf("team %d", teamID)
	}

	e.teamNames[teamID] = team.Name
	return team.Name
}
