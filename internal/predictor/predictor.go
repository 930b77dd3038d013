// Package predictor orchestrates historical windows, dynamic weighting and
// the scoring formulas into fixture predictions. Every prediction is a pure
// function of the stored history strictly before the cutoff date, so
// replaying a fixture always yields the same numbers.
package predictor

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/corner-edge/internal/analysis"
	"github.com/yourusername/corner-edge/internal/corners"
	"github.com/yourusername/corner-edge/internal/metrics"
	"github.com/yourusername/corner-edge/internal/models"
	"github.com/yourusername/corner-edge/internal/repository"
	"github.com/yourusername/corner-edge/internal/weighting"
)

const (
	// minMatchesRequired is the floor below which a team's history cannot
	// support a real prediction and the outcome degrades gracefully.
	minMatchesRequired = 3

	insufficientProbability = 50.0
	insufficientConfidence  = 25.0

	methodology = "dynamic_weighting_matrix_v2"
)

// Predictor generates goal-line and corner predictions for a fixture.
type Predictor struct {
	matches      repository.MatchRepository
	weights      *weighting.Engine
	corners      *corners.Predictor
	logger       *logrus.Logger
	goalWindow   int
	cornerWindow int
}

// New creates a Predictor with the default window sizes.
func New(matches repository.MatchRepository, weights *weighting.Engine, cornerPredictor *corners.Predictor, logger *logrus.Logger) *Predictor {
	return &Predictor{
		matches:      matches,
		weights:      weights,
		corners:      cornerPredictor,
		logger:       logger,
		goalWindow:   repository.DefaultGoalWindow,
		cornerWindow: repository.DefaultCornerWindow,
	}
}

// Predict produces the goal-line outcome for a fixture using only matches
// strictly before cutoff. A thin history yields an InsufficientData outcome,
// never an error; errors are reserved for storage failures.
func (p *Predictor) Predict(ctx context.Context, homeID, awayID int64, season int, cutoff time.Time) (models.PredictionOutcome, error) {
	start := time.Now()

	homeWindow, err := p.matches.GetTeamMatchesBefore(ctx, homeID, season, cutoff, p.goalWindow, repository.FilterGoals)
	if err != nil {
		return models.PredictionOutcome{}, fmt.Errorf("fetching home window: %w", err)
	}
	awayWindow, err := p.matches.GetTeamMatchesBefore(ctx, awayID, season, cutoff, p.goalWindow, repository.FilterGoals)
	if err != nil {
		return models.PredictionOutcome{}, fmt.Errorf("fetching away window: %w", err)
	}

	homeWindow = p.enforceCutoff(homeWindow, cutoff)
	awayWindow = p.enforceCutoff(awayWindow, cutoff)

	if len(homeWindow) < minMatchesRequired || len(awayWindow) < minMatchesRequired {
		p.logger.WithFields(logrus.Fields{
			"home_team_id": homeID,
			"away_team_id": awayID,
			"home_matches": len(homeWindow),
			"away_matches": len(awayWindow),
			"cutoff":       cutoff.Format("2006-01-02"),
		}).Warn("Insufficient history for prediction")

		short := len(homeWindow)
		if len(awayWindow) < short {
			short = len(awayWindow)
		}
		metrics.RecordPrediction("insufficient_data", time.Since(start).Seconds())
		return models.PredictionOutcome{
			Insufficient: &models.InsufficientData{
				HomeTeamID:      homeID,
				AwayTeamID:      awayID,
				Season:          season,
				CutoffDate:      cutoff,
				Probability:     insufficientProbability,
				ConfidenceScore: insufficientConfidence,
				DataQuality:     models.QualityPoor,
				Reason:          fmt.Sprintf("only %d qualifying matches before cutoff", short),
			},
		}, nil
	}

	homeStats := analysis.ComputeRateStats(homeID, homeWindow)
	awayStats := analysis.ComputeRateStats(awayID, awayWindow)

	homeCalc := p.teamCalculation(homeID, homeStats.Scored1PlusRate, awayStats.Conceded1PlusRate, homeStats.GamesAnalyzed, awayStats.GamesAnalyzed)
	awayCalc := p.teamCalculation(awayID, awayStats.Scored1PlusRate, homeStats.Conceded1PlusRate, homeStats.GamesAnalyzed, awayStats.GamesAnalyzed)

	homeProb := analysis.TeamScoreProbability(homeCalc.AttackRate, homeCalc.DefenseVulnerability, homeCalc.Weights.Attack, homeCalc.Weights.Defense)
	awayProb := analysis.TeamScoreProbability(awayCalc.AttackRate, awayCalc.DefenseVulnerability, awayCalc.Weights.Attack, awayCalc.Weights.Defense)

	// Same matrix, applied to the 2+ goal rates.
	home2Plus := p.lineProbability(homeStats.Scored2PlusRate, awayStats.Conceded2PlusRate, homeStats.GamesAnalyzed, awayStats.GamesAnalyzed)
	away2Plus := p.lineProbability(awayStats.Scored2PlusRate, homeStats.Conceded2PlusRate, homeStats.GamesAnalyzed, awayStats.GamesAnalyzed)

	minGames := homeStats.GamesAnalyzed
	if awayStats.GamesAnalyzed < minGames {
		minGames = awayStats.GamesAnalyzed
	}

	prediction := &models.Prediction{
		HomeTeamID:           homeID,
		AwayTeamID:           awayID,
		Season:               season,
		CutoffDate:           cutoff,
		BTTSProbability:      analysis.BTTSProbability(homeProb, awayProb),
		BTTS2PlusProbability: analysis.BTTSProbability(home2Plus, away2Plus),
		HomeScoreProbability: homeProb,
		AwayScoreProbability: awayProb,
		ConfidenceScore:      analysis.ConfidenceScore(homeProb, awayProb, minGames),
		DataQuality:          models.AssessDataQuality(minGames),
		HomeCalculation:      homeCalc,
		AwayCalculation:      awayCalc,
		HomeStats:            homeStats,
		AwayStats:            awayStats,
		Methodology:          methodology,
	}
	prediction.Confidence = models.ConfidenceLabel(prediction.ConfidenceScore)

	p.logger.WithFields(logrus.Fields{
		"home_team_id": homeID,
		"away_team_id": awayID,
		"btts":         prediction.BTTSProbability,
		"confidence":   prediction.ConfidenceScore,
		"data_quality": prediction.DataQuality,
	}).Debug("Prediction generated")

	metrics.RecordPrediction("full", time.Since(start).Seconds())
	return models.PredictionOutcome{Prediction: prediction}, nil
}

// PredictCorners produces the corner-total prediction for a fixture from
// the corner windows before cutoff. Thin history surfaces as
// models.ErrInsufficientHistory.
func (p *Predictor) PredictCorners(ctx context.Context, homeID, awayID int64, season int, cutoff time.Time) (*models.CornerPrediction, error) {
	homeWindow, err := p.matches.GetTeamMatchesBefore(ctx, homeID, season, cutoff, p.cornerWindow, repository.FilterCorners)
	if err != nil {
		return nil, fmt.Errorf("fetching home corner window: %w", err)
	}
	awayWindow, err := p.matches.GetTeamMatchesBefore(ctx, awayID, season, cutoff, p.cornerWindow, repository.FilterCorners)
	if err != nil {
		return nil, fmt.Errorf("fetching away corner window: %w", err)
	}

	homeWindow = p.enforceCutoff(homeWindow, cutoff)
	awayWindow = p.enforceCutoff(awayWindow, cutoff)

	homeFor, homeAgainst := cornerSeries(homeID, homeWindow)
	awayFor, awayAgainst := cornerSeries(awayID, awayWindow)

	return p.corners.Predict(homeID, awayID, homeFor, homeAgainst, awayFor, awayAgainst)
}

// enforceCutoff drops any match dated on or after the cutoff. The window
// query already applies the strict inequality, but a row slipping through
// here would invalidate every backtested number, so it is treated as a data
// integrity problem and excluded rather than trusted.
func (p *Predictor) enforceCutoff(window []*models.Match, cutoff time.Time) []*models.Match {
	kept := make([]*models.Match, 0, len(window))
	for _, match := range window {
		if !match.MatchDate.Before(cutoff) {
			p.logger.WithFields(logrus.Fields{
				"api_fixture_id": match.APIFixtureID,
				"match_date":     match.MatchDate.Format("2006-01-02"),
				"cutoff":         cutoff.Format("2006-01-02"),
			}).Warn("Excluding match at or after cutoff from historical window")
			continue
		}
		kept = append(kept, match)
	}
	return kept
}

// teamCalculation runs one side's rates through the weighting engine and
// records the full derivation for auditability.
func (p *Predictor) teamCalculation(teamID int64, attackRate, opponentConcedeRate float64, gamesA, gamesB int) models.TeamCalculation {
	weights, reasoning := p.weights.ComputeWeights(attackRate, opponentConcedeRate)
	adjusted := p.weights.AdjustForSampleSize(weights, gamesA, gamesB)

	return models.TeamCalculation{
		TeamID:               teamID,
		AttackRate:           attackRate,
		DefenseVulnerability: opponentConcedeRate,
		AttackClass:          reasoning.AttackClass,
		DefenseClass:         reasoning.DefenseClass,
		Weights:              adjusted,
		ConfidenceBoost:      reasoning.ConfidenceBoost,
		Reasoning:            reasoning.Description,
		SampleAdjusted:       adjusted != weights,
	}
}

func (p *Predictor) lineProbability(attackRate, opponentConcedeRate float64, gamesA, gamesB int) float64 {
	weights, _ := p.weights.ComputeWeights(attackRate, opponentConcedeRate)
	adjusted := p.weights.AdjustForSampleSize(weights, gamesA, gamesB)
	return analysis.TeamScoreProbability(attackRate, opponentConcedeRate, adjusted.Attack, adjusted.Defense)
}

// cornerSeries extracts per-match corner counts, preserving the
// most-recent-first order of the window.
func cornerSeries(teamID int64, window []*models.Match) (forCorners, againstCorners []int) {
	forCorners = make([]int, 0, len(window))
	againstCorners = make([]int, 0, len(window))
	for _, match := range window {
		cf, ok := match.CornersFor(teamID)
		if !ok {
			continue
		}
		ca, _ := match.CornersAgainst(teamID)
		forCorners = append(forCorners, cf)
		againstCorners = append(againstCorners, ca)
	}
	return forCorners, againstCorners
}
