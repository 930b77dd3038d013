// Package analysis computes historical rate statistics and the canonical
// scoring probability and confidence formulas shared by every prediction
// variant.
package analysis

import (
	"github.com/yourusername/corner-edge/internal/models"
)

// ComputeRateStats derives scoring and conceding rates from a team's
// historical window in a single pass. Matches without goal data are skipped;
// the provider should already have filtered them out.
func ComputeRateStats(teamID int64, window []*models.Match) models.RateStats {
	stats := models.RateStats{TeamID: teamID}

	var scored1, scored2, conceded1, conceded2 int
	var totalScored, totalConceded int

	for _, match := range window {
		scored, ok := match.GoalsFor(teamID)
		if !ok {
			continue
		}
		conceded, _ := match.GoalsAgainst(teamID)

		if scored >= 1 {
			scored1++
		}
		if scored >= 2 {
			scored2++
		}
		if conceded >= 1 {
			conceded1++
		}
		if conceded >= 2 {
			conceded2++
		}
		totalScored += scored
		totalConceded += conceded
		stats.GamesAnalyzed++
	}

	if stats.GamesAnalyzed == 0 {
		return stats
	}

	games := float64(stats.GamesAnalyzed)
	stats.Scored1PlusRate = float64(scored1) / games * 100
	stats.Scored2PlusRate = float64(scored2) / games * 100
	stats.Conceded1PlusRate = float64(conceded1) / games * 100
	stats.Conceded2PlusRate = float64(conceded2) / games * 100
	stats.AvgGoalsScored = float64(totalScored) / games
	stats.AvgGoalsConceded = float64(totalConceded) / games

	return stats
}
