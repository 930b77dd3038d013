package backtest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/corner-edge/internal/metrics"
	"github.com/yourusername/corner-edge/internal/models"
	"github.com/yourusername/corner-edge/internal/repository"
)

// fakeTxRunner executes the transaction function directly.
type fakeTxRunner struct{}

func (fakeTxRunner) WithTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	return fn(nil)
}

// MockFixturePredictor mocks prediction generation
type MockFixturePredictor struct {
	mock.Mock
}

func (m *MockFixturePredictor) Predict(ctx context.Context, homeID, awayID int64, season int, cutoff time.Time) (models.PredictionOutcome, error) {
	args := m.Called(ctx, homeID, awayID, season, cutoff)
	return args.Get(0).(models.PredictionOutcome), args.Error(1)
}

func (m *MockFixturePredictor) PredictCorners(ctx context.Context, homeID, awayID int64, season int, cutoff time.Time) (*models.CornerPrediction, error) {
	args := m.Called(ctx, homeID, awayID, season, cutoff)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CornerPrediction), args.Error(1)
}

// MockTeamRepository mocks team data access
type MockTeamRepository struct {
	mock.Mock
}

func (m *MockTeamRepository) Create(ctx context.Context, team *models.Team) error {
	args := m.Called(ctx, team)
	return args.Error(0)
}

func (m *MockTeamRepository) GetByID(ctx context.Context, id int64) (*models.Team, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamRepository) GetByAPIID(ctx context.Context, apiTeamID int64, season int) (*models.Team, error) {
	args := m.Called(ctx, apiTeamID, season)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Team), args.Error(1)
}

func (m *MockTeamRepository) GetBySeason(ctx context.Context, season int) ([]*models.Team, error) {
	args := m.Called(ctx, season)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Team), args.Error(1)
}

// MockMatchRepository mocks match data access
type MockMatchRepository struct {
	mock.Mock
}

func (m *MockMatchRepository) Create(ctx context.Context, match *models.Match) error {
	args := m.Called(ctx, match)
	return args.Error(0)
}

func (m *MockMatchRepository) GetByID(ctx context.Context, id int64) (*models.Match, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Match), args.Error(1)
}

func (m *MockMatchRepository) GetByAPIFixtureID(ctx context.Context, apiFixtureID int64) (*models.Match, error) {
	args := m.Called(ctx, apiFixtureID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Match), args.Error(1)
}

func (m *MockMatchRepository) GetTeamMatchesBefore(ctx context.Context, teamID int64, season int, cutoff time.Time, limit int, filter repository.StatsFilter) ([]*models.Match, error) {
	args := m.Called(ctx, teamID, season, cutoff, limit, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Match), args.Error(1)
}

func (m *MockMatchRepository) GetMatchesOnDate(ctx context.Context, date time.Time, season int) ([]*models.Match, error) {
	args := m.Called(ctx, date, season)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Match), args.Error(1)
}

func (m *MockMatchRepository) GetDatesWithResults(ctx context.Context, season int, filter repository.StatsFilter) ([]time.Time, error) {
	args := m.Called(ctx, season, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]time.Time), args.Error(1)
}

func (m *MockMatchRepository) GetMissingStats(ctx context.Context, season int, limit int) ([]*models.Match, error) {
	args := m.Called(ctx, season, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Match), args.Error(1)
}

func (m *MockMatchRepository) AttachStats(ctx context.Context, apiFixtureID int64, goalsHome, goalsAway, cornersHome, cornersAway *int) error {
	args := m.Called(ctx, apiFixtureID, goalsHome, goalsAway, cornersHome, cornersAway)
	return args.Error(0)
}

// MockBacktestResultRepository mocks result persistence
type MockBacktestResultRepository struct {
	mock.Mock
}

func (m *MockBacktestResultRepository) InsertBatchTx(ctx context.Context, tx pgx.Tx, results []*models.BacktestResult) error {
	args := m.Called(ctx, tx, results)
	return args.Error(0)
}

func (m *MockBacktestResultRepository) CountForDate(ctx context.Context, date time.Time, season int) (int, error) {
	args := m.Called(ctx, date, season)
	return args.Int(0), args.Error(1)
}

func (m *MockBacktestResultRepository) DeleteForDateTx(ctx context.Context, tx pgx.Tx, date time.Time, season int) error {
	args := m.Called(ctx, tx, date, season)
	return args.Error(0)
}

func (m *MockBacktestResultRepository) GetByRunID(ctx context.Context, runID uuid.UUID) ([]*models.BacktestResult, error) {
	args := m.Called(ctx, runID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BacktestResult), args.Error(1)
}

func (m *MockBacktestResultRepository) GetBySeason(ctx context.Context, season int) ([]*models.BacktestResult, error) {
	args := m.Called(ctx, season)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.BacktestResult), args.Error(1)
}

func (m *MockBacktestResultRepository) GetSummary(ctx context.Context, season int) (*models.BacktestSummary, error) {
	args := m.Called(ctx, season)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BacktestSummary), args.Error(1)
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func intPtr(v int) *int { return &v }

func finishedFixture(fixtureID, homeID, awayID int64, date time.Time, cornersHome, cornersAway, goalsHome, goalsAway int) *models.Match {
	return &models.Match{
		ID:           fixtureID,
		APIFixtureID: fixtureID,
		HomeTeamID:   homeID,
		AwayTeamID:   awayID,
		MatchDate:    date,
		Season:       2024,
		Status:       models.MatchStatusFinished,
		GoalsHome:    intPtr(goalsHome),
		GoalsAway:    intPtr(goalsAway),
		CornersHome:  intPtr(cornersHome),
		CornersAway:  intPtr(cornersAway),
	}
}

func cornerPrediction(total float64) *models.CornerPrediction {
	return &models.CornerPrediction{
		PredictedTotalCorners: total,
		PredictedHomeCorners:  total / 2,
		PredictedAwayCorners:  total / 2,
		Confidence5p5:         75,
		Confidence6p5:         60,
		PredictionQuality:     models.QualityGood,
		AnalysisReport:        "test report",
	}
}

func newEngineWithMocks(t *testing.T, cfg Config, matches *MockMatchRepository, teams *MockTeamRepository, results *MockBacktestResultRepository, pred *MockFixturePredictor) *Engine {
	t.Helper()
	repos := &repository.Repositories{
		Team:           teams,
		Match:          matches,
		BacktestResult: results,
	}
	engine, err := NewEngine(cfg, fakeTxRunner{}, repos, pred, testLogger())
	require.NoError(t, err)
	return engine
}

func TestRun_SkipsStoredDatesAndValidatesResults(t *testing.T) {
	day1 := time.Date(2024, 9, 14, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 9, 21, 0, 0, 0, 0, time.UTC)
	expectedCutoff := day2.AddDate(0, 0, -1)

	matches := new(MockMatchRepository)
	teams := new(MockTeamRepository)
	results := new(MockBacktestResultRepository)
	pred := new(MockFixturePredictor)

	matches.On("GetDatesWithResults", mock.Anything, 2024, repository.FilterCorners).
		Return([]time.Time{day1, day2}, nil)

	// day1 already has stored rows and must be skipped untouched.
	results.On("CountForDate", mock.Anything, day1, 2024).Return(4, nil)
	results.On("CountForDate", mock.Anything, day2, 2024).Return(0, nil)

	fixture := finishedFixture(501, 10, 20, day2.Add(15*time.Hour), 7, 5, 2, 1)
	matches.On("GetMatchesOnDate", mock.Anything, day2, 2024).Return([]*models.Match{fixture}, nil)

	pred.On("PredictCorners", mock.Anything, int64(10), int64(20), 2024, expectedCutoff).
		Return(cornerPrediction(8.0), nil)
	pred.On("Predict", mock.Anything, int64(10), int64(20), 2024, expectedCutoff).
		Return(models.PredictionOutcome{Prediction: &models.Prediction{
			HomeScoreProbability: 62.5,
			AwayScoreProbability: 48.0,
			BTTSProbability:      30.0,
		}}, nil)

	teams.On("GetByID", mock.Anything, int64(10)).Return(&models.Team{ID: 10, Name: "Arsenal"}, nil)
	teams.On("GetByID", mock.Anything, int64(20)).Return(&models.Team{ID: 20, Name: "Chelsea"}, nil)

	var stored []*models.BacktestResult
	results.On("InsertBatchTx", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(2).([]*models.BacktestResult)
		}).
		Return(nil)

	engine := newEngineWithMocks(t, Config{Season: 2024}, matches, teams, results, pred)
	run, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, run.DatesAvailable)
	assert.Equal(t, 1, run.DatesProcessed)
	assert.Equal(t, 1, run.DatesSuccessful)
	assert.Equal(t, 0, run.DatesFailed)
	assert.Equal(t, 1, run.TotalPredictions)
	assert.InDelta(t, 100.0, run.SuccessRate, 1e-9)

	matches.AssertNotCalled(t, "GetMatchesOnDate", mock.Anything, day1, 2024)

	require.Len(t, stored, 1)
	row := stored[0]
	assert.Equal(t, int64(501), row.APIFixtureID)
	assert.Equal(t, run.RunID, row.RunID)
	assert.Equal(t, expectedCutoff, row.PredictionDate)
	assert.Equal(t, "Arsenal", row.HomeTeamName)
	assert.Equal(t, "Chelsea", row.AwayTeamName)
	assert.Equal(t, 62.5, row.HomeScoreProbability)

	// Actual total 12 vs predicted 8.0: both over the 5.5 and 6.5
	// lines, accuracy 100 - 4*15 = 40.
	require.NotNil(t, row.ActualTotalCorners)
	assert.Equal(t, 12, *row.ActualTotalCorners)
	require.NotNil(t, row.Over5p5Correct)
	assert.True(t, *row.Over5p5Correct)
	require.NotNil(t, row.Over6p5Correct)
	assert.True(t, *row.Over6p5Correct)
	require.NotNil(t, row.PredictionAccuracy)
	assert.InDelta(t, 40.0, *row.PredictionAccuracy, 1e-9)

	require.NotNil(t, row.ActualGoalsHome)
	assert.Equal(t, 2, *row.ActualGoalsHome)
}

func TestRun_InsufficientHistorySkipsFixture(t *testing.T) {
	day := time.Date(2024, 8, 17, 0, 0, 0, 0, time.UTC)

	matches := new(MockMatchRepository)
	teams := new(MockTeamRepository)
	results := new(MockBacktestResultRepository)
	pred := new(MockFixturePredictor)

	matches.On("GetDatesWithResults", mock.Anything, 2024, repository.FilterCorners).
		Return([]time.Time{day}, nil)
	results.On("CountForDate", mock.Anything, day, 2024).Return(0, nil)

	fixture := finishedFixture(601, 10, 20, day.Add(12*time.Hour), 6, 4, 1, 1)
	matches.On("GetMatchesOnDate", mock.Anything, day, 2024).Return([]*models.Match{fixture}, nil)

	pred.On("PredictCorners", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, fmt.Errorf("corner prediction: %w", models.ErrInsufficientHistory))

	engine := newEngineWithMocks(t, Config{Season: 2024}, matches, teams, results, pred)
	run, err := engine.Run(context.Background())
	require.NoError(t, err)

	// An early-season fixture without history does not abort the run,
	// but a date yielding nothing counts as failed.
	assert.Equal(t, 0, run.DatesSuccessful)
	assert.Equal(t, 1, run.DatesFailed)
	assert.Equal(t, 0, run.TotalPredictions)
	require.Len(t, run.Errors, 1)
	assert.Contains(t, run.Errors[0], "no successful predictions")
	results.AssertNotCalled(t, "InsertBatchTx", mock.Anything, mock.Anything, mock.Anything)
}

func TestRun_MaxDatesLimitsWork(t *testing.T) {
	days := []time.Time{
		time.Date(2024, 9, 7, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 9, 14, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 9, 21, 0, 0, 0, 0, time.UTC),
	}

	matches := new(MockMatchRepository)
	teams := new(MockTeamRepository)
	results := new(MockBacktestResultRepository)
	pred := new(MockFixturePredictor)

	matches.On("GetDatesWithResults", mock.Anything, 2024, repository.FilterCorners).Return(days, nil)
	results.On("CountForDate", mock.Anything, mock.Anything, 2024).Return(0, nil)
	matches.On("GetMatchesOnDate", mock.Anything, mock.Anything, 2024).Return([]*models.Match{}, nil)

	engine := newEngineWithMocks(t, Config{Season: 2024, MaxDates: 1}, matches, teams, results, pred)
	run, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, run.DatesAvailable)
	assert.Equal(t, 1, run.DatesProcessed)
	matches.AssertNumberOfCalls(t, "GetMatchesOnDate", 1)

	// The run stopped with two dates unvisited; the backlog gauge must
	// not keep reporting them after the run ends.
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.BacktestDatesRemaining))
}

func TestRun_ForceRewritesDate(t *testing.T) {
	day := time.Date(2024, 9, 21, 0, 0, 0, 0, time.UTC)

	matches := new(MockMatchRepository)
	teams := new(MockTeamRepository)
	results := new(MockBacktestResultRepository)
	pred := new(MockFixturePredictor)

	matches.On("GetDatesWithResults", mock.Anything, 2024, repository.FilterCorners).
		Return([]time.Time{day}, nil)

	fixture := finishedFixture(701, 10, 20, day.Add(14*time.Hour), 5, 4, 0, 0)
	matches.On("GetMatchesOnDate", mock.Anything, day, 2024).Return([]*models.Match{fixture}, nil)

	pred.On("PredictCorners", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(cornerPrediction(9.0), nil)
	pred.On("Predict", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(models.PredictionOutcome{Insufficient: &models.InsufficientData{Probability: 50.0}}, nil)

	teams.On("GetByID", mock.Anything, mock.Anything).Return(&models.Team{Name: "Team"}, nil)

	results.On("DeleteForDateTx", mock.Anything, mock.Anything, day, 2024).Return(nil)

	var stored []*models.BacktestResult
	results.On("InsertBatchTx", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			stored = args.Get(2).([]*models.BacktestResult)
		}).
		Return(nil)

	engine := newEngineWithMocks(t, Config{Season: 2024, Force: true}, matches, teams, results, pred)
	run, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, run.DatesSuccessful)
	results.AssertNotCalled(t, "CountForDate", mock.Anything, mock.Anything, mock.Anything)
	results.AssertCalled(t, "DeleteForDateTx", mock.Anything, mock.Anything, day, 2024)

	// Thin goal history falls back to the neutral probabilities.
	require.Len(t, stored, 1)
	assert.Equal(t, 50.0, stored[0].HomeScoreProbability)
	assert.Equal(t, 50.0, stored[0].AwayScoreProbability)
	assert.Equal(t, 50.0, stored[0].BTTSProbability)
}

func TestRun_ErrorsCappedAtFive(t *testing.T) {
	var days []time.Time
	base := time.Date(2024, 9, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 8; i++ {
		days = append(days, base.AddDate(0, 0, i))
	}

	matches := new(MockMatchRepository)
	teams := new(MockTeamRepository)
	results := new(MockBacktestResultRepository)
	pred := new(MockFixturePredictor)

	matches.On("GetDatesWithResults", mock.Anything, 2024, repository.FilterCorners).Return(days, nil)
	results.On("CountForDate", mock.Anything, mock.Anything, 2024).Return(0, nil)
	matches.On("GetMatchesOnDate", mock.Anything, mock.Anything, 2024).
		Return(nil, errors.New("connection reset"))

	engine := newEngineWithMocks(t, Config{Season: 2024}, matches, teams, results, pred)
	run, err := engine.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 8, run.DatesFailed)
	assert.Len(t, run.Errors, maxStoredErrors)
	assert.Equal(t, 0.0, run.SuccessRate)
}

func TestNewEngine_Validation(t *testing.T) {
	repos := &repository.Repositories{}

	_, err := NewEngine(Config{Season: 1}, fakeTxRunner{}, repos, new(MockFixturePredictor), testLogger())
	assert.Error(t, err)

	_, err = NewEngine(Config{Season: 2024}, nil, repos, new(MockFixturePredictor), testLogger())
	assert.Error(t, err)

	_, err = NewEngine(Config{Season: 2024}, fakeTxRunner{}, nil, new(MockFixturePredictor), testLogger())
	assert.Error(t, err)

	_, err = NewEngine(Config{Season: 2024}, fakeTxRunner{}, repos, nil, testLogger())
	assert.Error(t, err)
}

func TestRunForDate_RefusesStoredDate(t *testing.T) {
	day := time.Date(2024, 9, 21, 0, 0, 0, 0, time.UTC)

	matches := new(MockMatchRepository)
	teams := new(MockTeamRepository)
	results := new(MockBacktestResultRepository)
	pred := new(MockFixturePredictor)

	results.On("CountForDate", mock.Anything, day, 2024).Return(3, nil)

	engine := newEngineWithMocks(t, Config{Season: 2024}, matches, teams, results, pred)

	_, err := engine.RunForDate(context.Background(), day)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already has 3 stored results")
	matches.AssertNotCalled(t, "GetMatchesOnDate", mock.Anything, mock.Anything, mock.Anything)
}

func TestRunForDate_StoresAndReturnsRows(t *testing.T) {
	day := time.Date(2024, 9, 21, 0, 0, 0, 0, time.UTC)
	expectedCutoff := day.AddDate(0, 0, -1)

	matches := new(MockMatchRepository)
	teams := new(MockTeamRepository)
	results := new(MockBacktestResultRepository)
	pred := new(MockFixturePredictor)

	results.On("CountForDate", mock.Anything, day, 2024).Return(0, nil)

	fixture := finishedFixture(601, 10, 20, day.Add(12*time.Hour), 6, 4, 1, 0)
	matches.On("GetMatchesOnDate", mock.Anything, day, 2024).Return([]*models.Match{fixture}, nil)

	pred.On("PredictCorners", mock.Anything, int64(10), int64(20), 2024, expectedCutoff).
		Return(cornerPrediction(9.0), nil)
	pred.On("Predict", mock.Anything, int64(10), int64(20), 2024, expectedCutoff).
		Return(models.PredictionOutcome{Prediction: &models.Prediction{
			HomeScoreProbability: 70.0,
			AwayScoreProbability: 40.0,
			BTTSProbability:      28.0,
		}}, nil)

	teams.On("GetByID", mock.Anything, int64(10)).Return(&models.Team{ID: 10, Name: "Arsenal"}, nil)
	teams.On("GetByID", mock.Anything, int64(20)).Return(&models.Team{ID: 20, Name: "Chelsea"}, nil)

	results.On("InsertBatchTx", mock.Anything, mock.Anything, mock.Anything).Return(nil)

	engine := newEngineWithMocks(t, Config{Season: 2024}, matches, teams, results, pred)

	rows, err := engine.RunForDate(context.Background(), day)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, int64(601), row.APIFixtureID)
	assert.Equal(t, expectedCutoff, row.PredictionDate)
	require.NotNil(t, row.ActualTotalCorners)
	assert.Equal(t, 10, *row.ActualTotalCorners)
}

func TestSummary_DelegatesToRepository(t *testing.T) {
	matches := new(MockMatchRepository)
	teams := new(MockTeamRepository)
	results := new(MockBacktestResultRepository)
	pred := new(MockFixturePredictor)

	want := &models.BacktestSummary{TotalPredictions: 42, VerifiedPredictions: 40, AverageAccuracy: 71.5}
	results.On("GetSummary", mock.Anything, 2024).Return(want, nil)

	engine := newEngineWithMocks(t, Config{Season: 2024}, matches, teams, results, pred)

	got, err := engine.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRun_CancellationReturnsPartialRun(t *testing.T) {
	day1 := time.Date(2024, 9, 14, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2024, 9, 21, 0, 0, 0, 0, time.UTC)

	matches := new(MockMatchRepository)
	teams := new(MockTeamRepository)
	results := new(MockBacktestResultRepository)
	pred := new(MockFixturePredictor)

	matches.On("GetDatesWithResults", mock.Anything, 2024, repository.FilterCorners).
		Return([]time.Time{day1, day2}, nil)
	results.On("CountForDate", mock.Anything, day1, 2024).Return(0, nil)

	fixture := finishedFixture(801, 10, 20, day1.Add(14*time.Hour), 6, 5, 1, 1)
	matches.On("GetMatchesOnDate", mock.Anything, day1, 2024).Return([]*models.Match{fixture}, nil)

	pred.On("PredictCorners", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(cornerPrediction(9.0), nil)
	pred.On("Predict", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(models.PredictionOutcome{Insufficient: &models.InsufficientData{Probability: 50.0}}, nil)
	teams.On("GetByID", mock.Anything, mock.Anything).Return(&models.Team{Name: "Team"}, nil)

	ctx, cancel := context.WithCancel(context.Background())
	results.On("InsertBatchTx", mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { cancel() }).
		Return(nil)

	engine := newEngineWithMocks(t, Config{Season: 2024}, matches, teams, results, pred)
	run, err := engine.Run(ctx)

	// The partial summary comes back with the cancellation error so the
	// caller can still report what was stored.
	require.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, run)
	assert.Equal(t, 1, run.DatesSuccessful)
	assert.Equal(t, 1, run.TotalPredictions)
	assert.InDelta(t, 100.0, run.SuccessRate, 1e-9)
	matches.AssertNotCalled(t, "GetMatchesOnDate", mock.Anything, day2, 2024)
}
