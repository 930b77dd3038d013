package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/yourusername/corner-edge/internal/models"
)

// StatsFilter selects which statistic fields must be populated when
// retrieving a team's historical matches.
type StatsFilter int

// Statistic filters for historical windows
const (
	FilterGoals StatsFilter = iota
	FilterCorners
)

// Default window sizes for historical analysis
const (
	DefaultGoalWindow   = 20
	DefaultCornerWindow = 10
)

// TeamRepository defines the interface for team data access
type TeamRepository interface {
	Create(ctx context.Context, team *models.Team) error
	GetByID(ctx context.Context, id int64) (*models.Team, error)
	GetByAPIID(ctx context.Context, apiTeamID int64, season int) (*models.Team, error)
	GetBySeason(ctx context.Context, season int) ([]*models.Team, error)
}

// MatchRepository defines the interface for match data access. It is also
// the historical data provider: GetTeamMatchesBefore enforces the cutoff
// that keeps predictions free of lookahead bias.
type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int64) (*models.Match, error)
	GetByAPIFixtureID(ctx context.Context, apiFixtureID int64) (*models.Match, error)
	// GetTeamMatchesBefore returns up to limit finished matches for the
	// team with the filtered statistics populated and match_date strictly
	// before cutoff, most recent first. No qualifying matches yields an
	// empty slice, never an error.
	GetTeamMatchesBefore(ctx context.Context, teamID int64, season int, cutoff time.Time, limit int, filter StatsFilter) ([]*models.Match, error)
	GetMatchesOnDate(ctx context.Context, date time.Time, season int) ([]*models.Match, error)
	GetDatesWithResults(ctx context.Context, season int, filter StatsFilter) ([]time.Time, error)
	GetMissingStats(ctx context.Context, season int, limit int) ([]*models.Match, error)
	AttachStats(ctx context.Context, apiFixtureID int64, goalsHome, goalsAway, cornersHome, cornersAway *int) error
}

// BacktestResultRepository defines backtest result persistence. A date's
// rows are written inside one transaction so a crash cannot leave a
// half-stored date behind the idempotence check.
type BacktestResultRepository interface {
	InsertBatchTx(ctx context.Context, tx pgx.Tx, results []*models.BacktestResult) error
	CountForDate(ctx context.Context, date time.Time, season int) (int, error)
	DeleteForDateTx(ctx context.Context, tx pgx.Tx, date time.Time, season int) error
	GetByRunID(ctx context.Context, runID uuid.UUID) ([]*models.BacktestResult, error)
	GetBySeason(ctx context.Context, season int) ([]*models.BacktestResult, error)
	GetSummary(ctx context.Context, season int) (*models.BacktestSummary, error)
}
