package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/yourusername/corner-edge/internal/database"
	"github.com/yourusername/corner-edge/internal/models"
)

const errScanTeam = "failed to scan team: %w"

// PostgresTeamRepository implements TeamRepository for PostgreSQL
type PostgresTeamRepository struct {
	db *database.DB
}

// NewPostgresTeamRepository creates a new team repository
func NewPostgresTeamRepository(db *database.DB) TeamRepository {
	return &PostgresTeamRepository{db: db}
}

// Create inserts a new team
func (r *PostgresTeamRepository) Create(ctx context.Context, team *models.Team) error {
	query := `
		INSERT INTO teams (api_team_id, name, season, league_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	err := r.db.GetPool().QueryRow(ctx, query,
		team.APITeamID, team.Name, team.Season, team.LeagueID,
	).Scan(&team.ID)
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}

	return nil
}

// GetByID retrieves a team by internal ID
func (r *PostgresTeamRepository) GetByID(ctx context.Context, id int64) (*models.Team, error) {
	query := `
		SELECT id, api_team_id, name, season, league_id
		FROM teams WHERE id = $1
	`

	team := &models.Team{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&team.ID, &team.APITeamID, &team.Name, &team.Season, &team.LeagueID,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	return team, nil
}

// GetByAPIID retrieves a team by its upstream API ID within a season
func (r *PostgresTeamRepository) GetByAPIID(ctx context.Context, apiTeamID int64, season int) (*models.Team, error) {
	query := `
		SELECT id, api_team_id, name, season, league_id
		FROM teams WHERE api_team_id = $1 AND season = $2
	`

	team := &models.Team{}
	err := r.db.GetPool().QueryRow(ctx, query, apiTeamID, season).Scan(
		&team.ID, &team.APITeamID, &team.Name, &team.Season, &team.LeagueID,
	)
	if err == pgx.ErrNoRows {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get team by api id: %w", err)
	}

	return team, nil
}

// GetBySeason retrieves all teams tracked for a season
func (r *PostgresTeamRepository) GetBySeason(ctx context.Context, season int) ([]*models.Team, error) {
	query := `
		SELECT id, api_team_id, name, season, league_id
		FROM teams WHERE season = $1
		ORDER BY name ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, season)
	if err != nil {
		return nil, fmt.Errorf("failed to query teams by season: %w", err)
	}
	defer rows.Close()

	var teams []*models.Team
	for rows.Next() {
		team := &models.Team{}
		err := rows.Scan(&team.ID, &team.APITeamID, &team.Name, &team.Season, &team.LeagueID)
		if err != nil {
			return nil, fmt.Errorf(errScanTeam, err)
		}
		teams = append(teams, team)
	}

	return teams, rows.Err()
}
