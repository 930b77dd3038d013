// Package corners derives per-team corner production profiles from recent
// match history and turns them into total-corner line predictions.
package corners

import (
	"math"

	"github.com/sirupsen/logrus"
)

const (
	// recencyWeight controls how much more a team's most recent match
	// counts versus its oldest match in the analysis window.
	recencyWeight = 0.6

	// trendSlopeThreshold is the minimum per-match regression slope
	// before a corner trend is labelled improving or declining.
	trendSlopeThreshold = 0.1

	// trendCorrelationFloor guards against labelling noise as a trend.
	trendCorrelationFloor = 0.3

	minTrendSamples = 3
)

// Trend labels for a team's corner output over its analysis window.
const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"
)

// TeamProfile summarises a team's corner behaviour over its window.
// CornersFor and CornersAgainst are supplied most-recent-first.
type TeamProfile struct {
	TeamID         int64
	GamesAnalyzed  int
	WeightedFor    float64
	WeightedTotal  float64
	AvgFor         float64
	AvgAgainst     float64
	AvgTotal       float64
	Consistency    float64
	Trend          string
	TrendSlope     float64
	RecentFormFor  float64
}

// Analyzer computes corner profiles from raw per-match corner counts.
type Analyzer struct {
	logger *logrus.Logger
}

func NewAnalyzer(logger *logrus.Logger) *Analyzer {
	return &Analyzer{logger: logger}
}

// Analyze builds a TeamProfile from per-match corner counts ordered
// most-recent-first. Returns ok=false when the window is empty.
func (a *Analyzer) Analyze(teamID int64, cornersFor, cornersAgainst []int) (TeamProfile, bool) {
	if len(cornersFor) == 0 {
		return TeamProfile{}, false
	}

	totals := make([]int, len(cornersFor))
	for i, cf := range cornersFor {
		against := 0
		if i < len(cornersAgainst) {
			against = cornersAgainst[i]
		}
		totals[i] = cf + against
	}

	profile := TeamProfile{
		TeamID:        teamID,
		GamesAnalyzed: len(cornersFor),
		WeightedFor:   weightedAverage(cornersFor),
		WeightedTotal: weightedAverage(totals),
		AvgFor:        mean(cornersFor),
		AvgAgainst:    mean(cornersAgainst),
		AvgTotal:      mean(totals),
		Consistency:   consistencyScore(totals),
		RecentFormFor: recentForm(cornersFor, 5),
	}
	profile.Trend, profile.TrendSlope = detectTrend(totals)

	a.logger.WithFields(logrus.Fields{
		"team_id":     teamID,
		"games":       profile.GamesAnalyzed,
		"avg_total":   profile.AvgTotal,
		"consistency": profile.Consistency,
		"trend":       profile.Trend,
	}).Debug("Corner profile computed")

	return profile, true
}

// weightedAverage favours recent matches. values[0] is the most recent
// match and receives the full recency bonus; the oldest match counts
// with weight 1.
func weightedAverage(values []int) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}
	var weighted, totalWeight float64
	for i, v := range values {
		w := 1.0 + (float64(n-1-i)/float64(n))*recencyWeight
		weighted += float64(v) * w
		totalWeight += w
	}
	return weighted / totalWeight
}

func mean(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	return float64(sum) / float64(len(values))
}

// consistencyScore maps the coefficient of variation of a team's corner
// totals onto 0..100, where 100 means the team produces the same total
// every match.
func consistencyScore(values []int) float64 {
	if len(values) < 2 {
		return 50.0
	}
	m := mean(values)
	if m == 0 {
		return 0
	}
	var variance float64
	for _, v := range values {
		d := float64(v) - m
		variance += d * d
	}
	variance /= float64(len(values))
	cv := math.Sqrt(variance) / m
	return math.Max(0, 100-cv*100)
}

// detectTrend fits a least-squares line over the window in chronological
// order. Weak correlations report stable regardless of slope.
func detectTrend(values []int) (string, float64) {
	n := len(values)
	if n < minTrendSamples {
		return TrendStable, 0
	}

	// Window arrives most-recent-first; regress oldest to newest.
	var sumX, sumY, sumXY, sumXX, sumYY float64
	for i := 0; i < n; i++ {
		x := float64(i)
		y := float64(values[n-1-i])
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
		sumYY += y * y
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return TrendStable, 0
	}
	slope := (fn*sumXY - sumX*sumY) / denom

	corrDenom := math.Sqrt(denom * (fn*sumYY - sumY*sumY))
	if corrDenom == 0 {
		return TrendStable, slope
	}
	corr := (fn*sumXY - sumX*sumY) / corrDenom

	if math.Abs(corr) < trendCorrelationFloor {
		return TrendStable, slope
	}
	switch {
	case slope > trendSlopeThreshold:
		return TrendImproving, slope
	case slope < -trendSlopeThreshold:
		return TrendDeclining, slope
	default:
		return TrendStable, slope
	}
}

func recentForm(values []int, window int) float64 {
	if len(values) == 0 {
		return 0
	}
	if len(values) > window {
		values = values[:window]
	}
	return mean(values)
}
