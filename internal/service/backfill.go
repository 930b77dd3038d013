// Package service holds the long-running operational services that sit
// between the data API and the repositories.
package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/corner-edge/internal/metrics"
	"github.com/yourusername/corner-edge/internal/models"
	"github.com/yourusername/corner-edge/internal/repository"
	"github.com/yourusername/corner-edge/internal/sportsdata"
)

// FixtureFetcher is the subset of the sports API client the backfill needs.
type FixtureFetcher interface {
	FetchFixtureByID(ctx context.Context, fixtureID int64) (*sportsdata.Fixture, error)
	FetchFixtureStatistics(ctx context.Context, fixtureID int64) (*sportsdata.FixtureStatistics, error)
}

// BackfillReport summarizes one backfill pass.
type BackfillReport struct {
	Checked   int
	Completed int
	Pending   int
	Failed    int
	Duration  time.Duration
}

// StatsBackfillService fills in goal and corner statistics for finished
// matches whose numbers had not been published yet at import time.
type StatsBackfillService struct {
	matches repository.MatchRepository
	client  FixtureFetcher
	logger  *logrus.Logger
}

// NewStatsBackfillService creates a new backfill service
func NewStatsBackfillService(matches repository.MatchRepository, client FixtureFetcher, logger *logrus.Logger) (*StatsBackfillService, error) {
	if matches == nil {
		return nil, fmt.Errorf("match repository is required")
	}
	if client == nil {
		return nil, fmt.Errorf("sports API client is required")
	}
	if logger == nil {
		logger = logrus.New()
	}

	return &StatsBackfillService{
		matches: matches,
		client:  client,
		logger:  logger,
	}, nil
}

// Run performs one backfill pass over at most batchSize matches.
func (s *StatsBackfillService) Run(ctx context.Context, season, batchSize int) (*BackfillReport, error) {
	start := time.Now()

	missing, err := s.matches.GetMissingStats(ctx, season, batchSize)
	if err != nil {
		return nil, fmt.Errorf("listing matches missing stats: %w", err)
	}

	metrics.MatchesMissingStats.Set(float64(len(missing)))

	report := &BackfillReport{Checked: len(missing)}
	for _, match := range missing {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		switch err := s.backfillMatch(ctx, match); {
		case err == nil:
			report.Completed++
			metrics.RecordBackfill("success")
		case errors.Is(err, sportsdata.ErrStatsUnavailable):
			// The upstream often publishes statistics hours after the
			// final whistle. Leave the match for the next pass.
			report.Pending++
			metrics.RecordBackfill("pending")
			s.logger.WithField("api_fixture_id", match.APIFixtureID).
				Debug("Statistics not published yet")
		default:
			report.Failed++
			metrics.RecordBackfill("failure")
			s.logger.WithError(err).WithField("api_fixture_id", match.APIFixtureID).
				Warn("Statistics backfill failed")
		}
	}

	report.Duration = time.Since(start)
	s.logger.WithFields(logrus.Fields{
		"season":    season,
		"checked":   report.Checked,
		"completed": report.Completed,
		"pending":   report.Pending,
		"failed":    report.Failed,
		"duration":  report.Duration.Round(time.Millisecond),
	}).Info("Statistics backfill pass finished")

	return report, nil
}

func (s *StatsBackfillService) backfillMatch(ctx context.Context, match *models.Match) error {
	goalsHome, goalsAway := match.GoalsHome, match.GoalsAway
	if !match.HasGoalData() {
		fixture, err := s.client.FetchFixtureByID(ctx, match.APIFixtureID)
		if err != nil {
			return fmt.Errorf("fetching fixture: %w", err)
		}
		if fixture.GoalsHome == nil || fixture.GoalsAway == nil {
			return fmt.Errorf("fixture %d: %w", match.APIFixtureID, sportsdata.ErrStatsUnavailable)
		}
		goalsHome, goalsAway = fixture.GoalsHome, fixture.GoalsAway
	}

	cornersHome, cornersAway := match.CornersHome, match.CornersAway
	if !match.HasCornerData() {
		stats, err := s.client.FetchFixtureStatistics(ctx, match.APIFixtureID)
		if err != nil {
			return fmt.Errorf("fetching statistics: %w", err)
		}
		cornersHome, cornersAway = stats.CornersHome, stats.CornersAway
	}

	if err := s.matches.AttachStats(ctx, match.APIFixtureID, goalsHome, goalsAway, cornersHome, cornersAway); err != nil {
		return fmt.Errorf("attaching stats: %w", err)
	}

	return nil
}
