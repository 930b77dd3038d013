package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/corner-edge/internal/database"
	"github.com/yourusername/corner-edge/internal/models"
)

const errScanMatch = "failed to scan match: %w"

const matchColumns = `
	id, api_fixture_id, home_team_id, away_team_id, match_date, season,
	status, goals_home, goals_away, corners_home, corners_away,
	created_at, updated_at`

// PostgresMatchRepository implements MatchRepository for PostgreSQL
type PostgresMatchRepository struct {
	db *database.DB
}

// NewPostgresMatchRepository creates a new match repository
func NewPostgresMatchRepository(db *database.DB) MatchRepository {
	return &PostgresMatchRepository{db: db}
}

func scanMatch(row pgx.Row) (*models.Match, error) {
	match := &models.Match{}
	err := row.Scan(
		&match.ID, &match.APIFixtureID, &match.HomeTeamID, &match.AwayTeamID,
		&match.MatchDate, &match.Season, &match.Status,
		&match.GoalsHome, &match.GoalsAway, &match.CornersHome, &match.CornersAway,
		&match.CreatedAt, &match.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return match, nil
}

func scanMatches(rows pgx.Rows) ([]*models.Match, error) {
	defer rows.Close()

	var matches []*models.Match
	for rows.Next() {
		match, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf(errScanMatch, err)
		}
		matches = append(matches, match)
	}
	return matches, rows.Err()
}

// statsPredicate returns the SQL predicate requiring the filtered statistic
// fields to be populated.
func statsPredicate(filter StatsFilter) string {
	if filter == FilterCorners {
		return "corners_home IS NOT NULL AND corners_away IS NOT NULL"
	}
	return "goals_home IS NOT NULL AND goals_away IS NOT NULL"
}

// Create inserts a new match
func (r *PostgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches (api_fixture_id, home_team_id, away_team_id, match_date,
		                     season, status, goals_home, goals_away, corners_home, corners_away)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at
	`

	err := r.db.GetPool().QueryRow(ctx, query,
		match.APIFixtureID, match.HomeTeamID, match.AwayTeamID, match.MatchDate,
		match.Season, match.Status, match.GoalsHome, match.GoalsAway,
		match.CornersHome, match.CornersAway,
	).Scan(&match.ID, &match.CreatedAt, &match.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create match: %w", err)
	}

	return nil
}

// GetByID retrieves a match by internal ID
func (r *PostgresMatchRepository) GetByID(ctx context.Context, id int64) (*models.Match, error) {
	query := fmt.Sprintf("SELECT %s FROM matches WHERE id = $1", matchColumns)

	match, err := scanMatch(r.db.GetPool().QueryRow(ctx, query, id))
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match: %w", err)
	}

	return match, nil
}

// GetByAPIFixtureID retrieves a match by its upstream fixture ID
func (r *PostgresMatchRepository) GetByAPIFixtureID(ctx context.Context, apiFixtureID int64) (*models.Match, error) {
	query := fmt.Sprintf("SELECT %s FROM matches WHERE api_fixture_id = $1", matchColumns)

	match, err := scanMatch(r.db.GetPool().QueryRow(ctx, query, apiFixtureID))
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get match by fixture id: %w", err)
	}

	return match, nil
}

// GetTeamMatchesBefore retrieves a team's finished matches strictly before
// the cutoff date, most recent first. The strict inequality is what keeps
// backtested predictions free of lookahead bias.
func (r *PostgresMatchRepository) GetTeamMatchesBefore(ctx context.Context, teamID int64, season int, cutoff time.Time, limit int, filter StatsFilter) ([]*models.Match, error) {
	if limit <= 0 {
		limit = DefaultGoalWindow
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM matches
		WHERE (home_team_id = $1 OR away_team_id = $1)
		  AND season = $2
		  AND status = $3
		  AND match_date < $4
		  AND %s
		ORDER BY match_date DESC
		LIMIT $5
	`, matchColumns, statsPredicate(filter))

	rows, err := r.db.GetPool().Query(ctx, query, teamID, season, models.MatchStatusFinished, cutoff, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query team matches before cutoff: %w", err)
	}

	return scanMatches(rows)
}

// GetMatchesOnDate retrieves all matches scheduled on a calendar day
func (r *PostgresMatchRepository) GetMatchesOnDate(ctx context.Context, date time.Time, season int) ([]*models.Match, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	query := fmt.Sprintf(`
		SELECT %s
		FROM matches
		WHERE match_date >= $1 AND match_date < $2 AND season = $3
		ORDER BY match_date ASC, api_fixture_id ASC
	`, matchColumns)

	rows, err := r.db.GetPool().Query(ctx, query, dayStart, dayEnd, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches on date: %w", err)
	}

	return scanMatches(rows)
}

// GetDatesWithResults enumerates distinct days that have finished matches
// with the filtered statistics recorded, ascending.
func (r *PostgresMatchRepository) GetDatesWithResults(ctx context.Context, season int, filter StatsFilter) ([]time.Time, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT date_trunc('day', match_date) AS match_day
		FROM matches
		WHERE season = $1 AND status = $2 AND %s
		ORDER BY match_day ASC
	`, statsPredicate(filter))

	rows, err := r.db.GetPool().Query(ctx, query, season, models.MatchStatusFinished)
	if err != nil {
		return nil, fmt.Errorf("failed to query dates with results: %w", err)
	}
	defer rows.Close()

	var dates []time.Time
	for rows.Next() {
		var day time.Time
		if err := rows.Scan(&day); err != nil {
			return nil, fmt.Errorf("failed to scan match date: %w", err)
		}
		dates = append(dates, day)
	}

	return dates, rows.Err()
}

// GetMissingStats retrieves finished matches still waiting for goal or
// corner statistics from the upstream API.
func (r *PostgresMatchRepository) GetMissingStats(ctx context.Context, season int, limit int) ([]*models.Match, error) {
	if limit <= 0 {
		limit = 100
	}

	query := fmt.Sprintf(`
		SELECT %s
		FROM matches
		WHERE season = $1 AND status = $2
		  AND (goals_home IS NULL OR goals_away IS NULL
		       OR corners_home IS NULL OR corners_away IS NULL)
		ORDER BY match_date ASC
		LIMIT $3
	`, matchColumns)

	rows, err := r.db.GetPool().Query(ctx, query, season, models.MatchStatusFinished, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches missing stats: %w", err)
	}

	return scanMatches(rows)
}

// AttachStats fills in late-arriving statistics on an existing match. Only
// NULL columns are written; populated statistics are never overwritten.
func (r *PostgresMatchRepository) AttachStats(ctx context.Context, apiFixtureID int64, goalsHome, goalsAway, cornersHome, cornersAway *int) error {
	query := `
		UPDATE matches SET
			goals_home = COALESCE(goals_home, $2),
			goals_away = COALESCE(goals_away, $3),
			corners_home = COALESCE(corners_home, $4),
			corners_away = COALESCE(corners_away, $5),
			updated_at = NOW()
		WHERE api_fixture_id = $1
	`

	commandTag, err := r.db.GetPool().Exec(ctx, query, apiFixtureID, goalsHome, goalsAway, cornersHome, cornersAway)
	if err != nil {
		return fmt.Errorf("failed to attach match stats: %w", err)
	}

	if commandTag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}
