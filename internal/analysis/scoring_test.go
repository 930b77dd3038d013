package analysis

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/yourusername/corner-edge/internal/models"
)

func intPtr(v int) *int { return &v }

func finishedMatch(homeID, awayID int64, goalsHome, goalsAway int, day int) *models.Match {
	return &models.Match{
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		MatchDate:  time.Date(2025, 3, day, 15, 0, 0, 0, time.UTC),
		Status:     models.MatchStatusFinished,
		GoalsHome:  intPtr(goalsHome),
		GoalsAway:  intPtr(goalsAway),
	}
}

func TestComputeRateStats(t *testing.T) {
	// Team 1: scored in 8/10, scored 2+ in 3/10, conceded in 2/10.
	window := []*models.Match{
		finishedMatch(1, 2, 2, 0, 1),
		finishedMatch(1, 3, 1, 0, 2),
		finishedMatch(4, 1, 0, 2, 3),
		finishedMatch(1, 5, 1, 1, 4),
		finishedMatch(6, 1, 0, 1, 5),
		finishedMatch(1, 7, 3, 0, 6),
		finishedMatch(8, 1, 1, 1, 7),
		finishedMatch(1, 9, 1, 0, 8),
		finishedMatch(10, 1, 0, 0, 9),
		finishedMatch(1, 11, 0, 0, 10),
	}

	stats := ComputeRateStats(1, window)
	assert.Equal(t, 10, stats.GamesAnalyzed)
	assert.InDelta(t, 80.0, stats.Scored1PlusRate, 1e-9)
	assert.InDelta(t, 30.0, stats.Scored2PlusRate, 1e-9)
	assert.InDelta(t, 20.0, stats.Conceded1PlusRate, 1e-9)
	assert.InDelta(t, 0.0, stats.Conceded2PlusRate, 1e-9)
}

func TestComputeRateStatsEmptyWindow(t *testing.T) {
	stats := ComputeRateStats(1, nil)
	assert.Equal(t, 0, stats.GamesAnalyzed)
	assert.Zero(t, stats.Scored1PlusRate)
}

func TestTeamScoreProbability(t *testing.T) {
	// Elite attack (80) vs elite defense vulnerability (20) at 0.45/0.55.
	got := TeamScoreProbability(80, 20, 0.45, 0.55)
	assert.InDelta(t, 47.0, got, 1e-9)
}

func TestTeamScoreProbabilityFloorsAtZero(t *testing.T) {
	got := TeamScoreProbability(0, 0, 0.5, 0.5)
	assert.Equal(t, 0.0, got)
}

func TestBTTSProbability(t *testing.T) {
	assert.InDelta(t, 35.0, BTTSProbability(70, 50), 1e-9)
	assert.InDelta(t, 100.0, BTTSProbability(100, 100), 1e-9)
}

func TestConfidenceScoreFloor(t *testing.T) {
	assert.Equal(t, 5.0, ConfidenceScore(1, 2, 12))
}

func TestConfidenceScoreSampleTiers(t *testing.T) {
	tests := []struct {
		minGames int
		want     float64
	}{
		{12, 60.0},
		{10, 60.0},
		{9, 57.0},
		{7, 57.0},
		{6, 54.0},
		{5, 54.0},
		{4, 48.0},
		{0, 48.0},
	}
	for _, tt := range tests {
		got := ConfidenceScore(60, 60, tt.minGames)
		assert.InDelta(t, tt.want, got, 1e-9, "minGames=%d", tt.minGames)
	}
}

func TestConfidenceNonIncreasingWithSmallerSamples(t *testing.T) {
	prev := 0.0
	for _, games := range []int{3, 5, 7, 10, 15} {
		current := ConfidenceScore(72, 64, games)
		assert.GreaterOrEqual(t, current, prev, "confidence dropped at games=%d", games)
		prev = current
	}
}
