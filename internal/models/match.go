package models

import "time"

// Match status values as reported by the upstream sports API.
const (
	MatchStatusFinished  = "FT"
	MatchStatusScheduled = "NS"
	MatchStatusLive      = "LIVE"
	MatchStatusPostponed = "PST"
)

// Match represents a single fixture. Rows are created on import and never
// mutated afterwards, except to attach goal/corner statistics that arrive
// after the final whistle.
type Match struct {
	ID           int64      `db:"id" json:"id" validate:"required"`
	APIFixtureID int64      `db:"api_fixture_id" json:"api_fixture_id" validate:"required"`
	HomeTeamID   int64      `db:"home_team_id" json:"home_team_id" validate:"required"`
	AwayTeamID   int64      `db:"away_team_id" json:"away_team_id" validate:"required"`
	MatchDate    time.Time  `db:"match_date" json:"match_date" validate:"required"`
	Season       int        `db:"season" json:"season" validate:"required"`
	Status       string     `db:"status" json:"status"`
	GoalsHome    *int       `db:"goals_home" json:"goals_home"`
	GoalsAway    *int       `db:"goals_away" json:"goals_away"`
	CornersHome  *int       `db:"corners_home" json:"corners_home"`
	CornersAway  *int       `db:"corners_away" json:"corners_away"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `db:"updated_at" json:"updated_at"`
}

// IsFinished checks whether the match has a final result
func (m *Match) IsFinished() bool {
	return m.Status == MatchStatusFinished
}

// HasGoalData checks whether goal statistics are populated
func (m *Match) HasGoalData() bool {
	return m.GoalsHome != nil && m.GoalsAway != nil
}

// HasCornerData checks whether corner statistics are populated
func (m *Match) HasCornerData() bool {
	return m.CornersHome != nil && m.CornersAway != nil
}

// TotalCorners returns the combined corner count, or false when the
// statistics have not been attached yet.
func (m *Match) TotalCorners() (int, bool) {
	if !m.HasCornerData() {
		return 0, false
	}
	return *m.CornersHome + *m.CornersAway, true
}

// GoalsFor returns the goals scored by the given team in this match.
func (m *Match) GoalsFor(teamID int64) (int, bool) {
	if !m.HasGoalData() {
		return 0, false
	}
	if m.HomeTeamID == teamID {
		return *m.GoalsHome, true
	}
	return *m.GoalsAway, true
}

// GoalsAgainst returns the goals conceded by the given team in this match.
func (m *Match) GoalsAgainst(teamID int64) (int, bool) {
	if !m.HasGoalData() {
		return 0, false
	}
	if m.HomeTeamID == teamID {
		return *m.GoalsAway, true
	}
	return *m.GoalsHome, true
}

// CornersFor returns corners won by the given team in this match.
func (m *Match) CornersFor(teamID int64) (int, bool) {
	if !m.HasCornerData() {
		return 0, false
	}
	if m.HomeTeamID == teamID {
		return *m.CornersHome, true
	}
	return *m.CornersAway, true
}

// CornersAgainst returns corners conceded by the given team in this match.
func (m *Match) CornersAgainst(teamID int64) (int, bool) {
	if !m.HasCornerData() {
		return 0, false
	}
	if m.HomeTeamID == teamID {
		return *m.CornersAway, true
	}
	return *m.CornersHome, true
}
