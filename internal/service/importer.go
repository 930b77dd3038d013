package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/corner-edge/internal/models"
	"github.com/yourusername/corner-edge/internal/repository"
	"github.com/yourusername/corner-edge/internal/sportsdata"
)

// FixtureLister is the subset of the sports API client the importer needs.
type FixtureLister interface {
	FetchTeams(ctx context.Context, season int) ([]sportsdata.TeamInfo, error)
	FetchFixturesByDate(ctx context.Context, date time.Time, season int) ([]sportsdata.Fixture, error)
}

// ImportReport summarizes one import pass.
type ImportReport struct {
	Fetched  int
	Created  int
	Existing int
	Skipped  int
}

// ImportService pulls teams and fixtures from the sports API into the
// database. Imports are idempotent: rows that already exist are left alone.
type ImportService struct {
	teams    repository.TeamRepository
	matches  repository.MatchRepository
	client   FixtureLister
	leagueID int64
	logger   *logrus.Logger
}

// NewImportService creates a new import service
func NewImportService(teams repository.TeamRepository, matches repository.MatchRepository, client FixtureLister, leagueID int64, logger *logrus.Logger) (*ImportService, error) {
	if teams == nil || matches == nil {
		return nil, fmt.Errorf("team and match repositories are required")
	}
	if client == nil {
		return nil, fmt.Errorf("sports API client is required")
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &ImportService{
		teams:    teams,
		matches:  matches,
		client:   client,
		leagueID: leagueID,
		logger:   logger,
	}, nil
}

// ImportTeams imports the league's teams for a season.
func (s *ImportService) ImportTeams(ctx context.Context, season int) (*ImportReport, error) {
	teams, err := s.client.FetchTeams(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("fetching teams: %w", err)
	}

	report := &ImportReport{Fetched: len(teams)}
	for _, info := range teams {
		_, err := s.teams.GetByAPIID(ctx, info.APITeamID, season)
		if err == nil {
			report.Existing++
			continue
		}
		if !errors.Is(err, models.ErrNotFound) {
			return report, fmt.Errorf("looking up team %d: %w", info.APITeamID, err)
		}

		team := &models.Team{
			APITeamID: info.APITeamID,
			Name:      info.Name,
			Season:    season,
			LeagueID:  s.leagueID,
		}
		if err := s.teams.Create(ctx, team); err != nil {
			return report, fmt.Errorf("creating team %q: %w", info.Name, err)
		}
		report.Created++
	}

	s.logger.WithFields(logrus.Fields{
		"season":   season,
		"fetched":  report.Fetched,
		"created":  report.Created,
		"existing": report.Existing,
	}).Info("Team import finished")

	return report, nil
}

// ImportFixturesByDate imports one calendar day of fixtures. Fixtures whose
// teams are not in the database yet are skipped; run ImportTeams first.
func (s *ImportService) ImportFixturesByDate(ctx context.Context, date time.Time, season int) (*ImportReport, error) {
	fixtures, err := s.client.FetchFixturesByDate(ctx, date, season)
	if err != nil {
		return nil, fmt.Errorf("fetching fixtures for %s: %w", date.Format("2006-01-02"), err)
	}

	report := &ImportReport{Fetched: len(fixtures)}
	for _, fixture := range fixtures {
		_, err := s.matches.GetByAPIFixtureID(ctx, fixture.APIFixtureID)
		if err == nil {
			report.Existing++
			continue
		}
		if !errors.Is(err, models.ErrNotFound) {
			return report, fmt.Errorf("looking up fixture %d: %w", fixture.APIFixtureID, err)
		}

		homeTeam, err := s.lookupTeam(ctx, fixture.HomeTeamAPIID, season)
		if err != nil {
			return report, fmt.Errorf("looking up home team %d: %w", fixture.HomeTeamAPIID, err)
		}
		awayTeam, err := s.lookupTeam(ctx, fixture.AwayTeamAPIID, season)
		if err != nil {
			return report, fmt.Errorf("looking up away team %d: %w", fixture.AwayTeamAPIID, err)
		}
		if homeTeam == nil || awayTeam == nil {
			report.Skipped++
			s.logger.WithField("api_fixture_id", fixture.APIFixtureID).
				Warn("Skipping fixture with unknown team")
			continue
		}

		match := &models.Match{
			APIFixtureID: fixture.APIFixtureID,
			HomeTeamID:   homeTeam.ID,
			AwayTeamID:   awayTeam.ID,
			MatchDate:    fixture.Date,
			Season:       season,
			Status:       fixture.Status,
			GoalsHome:    fixture.GoalsHome,
			GoalsAway:    fixture.GoalsAway,
		}
		if err := s.matches.Create(ctx, match); err != nil {
			return report, fmt.Errorf("creating fixture %d: %w", fixture.APIFixtureID, err)
		}
		report.Created++
	}

	s.logger.WithFields(logrus.Fields{
		"date":     date.Format("2006-01-02"),
		"season":   season,
		"fetched":  report.Fetched,
		"created":  report.Created,
		"existing": report.Existing,
		"skipped":  report.Skipped,
	}).Info("Fixture import finished")

	return report, nil
}

// ImportFixtureRange imports fixtures for every day in [from, to].
func (s *ImportService) ImportFixtureRange(ctx context.Context, from, to time.Time, season int) (*ImportReport, error) {
	total := &ImportReport{}
	for day := from; !day.After(to); day = day.AddDate(0, 0, 1) {
		if err := ctx.Err(); err != nil {
			return total, err
		}

		report, err := s.ImportFixturesByDate(ctx, day, season)
		if report != nil {
			total.Fetched += report.Fetched
			total.Created += report.Created
			total.Existing += report.Existing
			total.Skipped += report.Skipped
		}
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// lookupTeam resolves a team by its upstream ID, mapping not-found to nil.
func (s *ImportService) lookupTeam(ctx context.Context, apiTeamID int64, season int) (*models.Team, error) {
	team, err := s.teams.GetByAPIID(ctx, apiTeamID, season)
	if errors.Is(err, models.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return team, nil
}

// HandleLiveUpdate applies a live stream message to the database. Only the
// final whistle matters here; in-play updates are ignored.
func (s *ImportService) HandleLiveUpdate(ctx context.Context, msg sportsdata.LiveFixtureMessage) error {
	if msg.Status != models.MatchStatusFinished {
		return nil
	}

	match, err := s.matches.GetByAPIFixtureID(ctx, msg.FixtureID)
	if errors.Is(err, models.ErrNotFound) {
		s.logger.WithField("api_fixture_id", msg.FixtureID).
			Debug("Ignoring live update for unknown fixture")
		return nil
	}
	if err != nil {
		return fmt.Errorf("looking up fixture %d: %w", msg.FixtureID, err)
	}

	// Corners arrive later through the statistics backfill.
	if err := s.matches.AttachStats(ctx, msg.FixtureID, msg.GoalsHome, msg.GoalsAway, match.CornersHome, match.CornersAway); err != nil {
		return fmt.Errorf("attaching final score for fixture %d: %w", msg.FixtureID, err)
	}

	s.logger.WithField("api_fixture_id", msg.FixtureID).Info("Final score recorded from live stream")
	return nil
}
