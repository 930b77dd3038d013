package models

// Team represents a tracked team within one season
type Team struct {
	ID        int64  `db:"id" json:"id" validate:"required"`
	APITeamID int64  `db:"api_team_id" json:"api_team_id" validate:"required"`
	Name      string `db:"name" json:"name" validate:"required"`
	Season    int    `db:"season" json:"season" validate:"required,gt=1900"`
	LeagueID  int64  `db:"league_id" json:"league_id"`
}
