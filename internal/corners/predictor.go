package corners

import (
	"fmt"
	"math"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/corner-edge/internal/models"
)

const (
	// homeAdvantage lifts the home side's expected corner share; the away
	// side is suppressed by half of it.
	homeAdvantage = 0.10

	// lineStdDev approximates the spread of total corners around the
	// predicted mean when converting a point estimate into over-line
	// probabilities.
	lineStdDev = 2.5

	minMatchesRequired = 3
)

// Blend weights for the three estimation methods: weighted recent
// average, season average, and trend-adjusted average.
var methodWeights = [3]float64{0.4, 0.4, 0.2}

// Predictor turns two team corner profiles into a fixture prediction.
type Predictor struct {
	analyzer *Analyzer
	logger   *logrus.Logger
}

func NewPredictor(analyzer *Analyzer, logger *logrus.Logger) *Predictor {
	return &Predictor{analyzer: analyzer, logger: logger}
}

// Predict combines both teams' corner profiles into a total-corner
// forecast with per-line confidences. Corner slices are most-recent-first.
// Returns models.ErrInsufficientHistory when either side has fewer than
// three analysable matches.
func (p *Predictor) Predict(homeID, awayID int64, homeFor, homeAgainst, awayFor, awayAgainst []int) (*models.CornerPrediction, error) {
	home, okH := p.analyzer.Analyze(homeID, homeFor, homeAgainst)
	away, okA := p.analyzer.Analyze(awayID, awayFor, awayAgainst)
	if !okH || !okA || home.GamesAnalyzed < minMatchesRequired || away.GamesAnalyzed < minMatchesRequired {
		return nil, fmt.Errorf("corner prediction for %d vs %d: %w", homeID, awayID, models.ErrInsufficientHistory)
	}

	homeEst := blendEstimate(home) * (1 + homeAdvantage)
	awayEst := blendEstimate(away) * (1 - homeAdvantage/2)
	total := homeEst + awayEst

	avgConsistency := (home.Consistency + away.Consistency) / 2
	minGames := home.GamesAnalyzed
	if away.GamesAnalyzed < minGames {
		minGames = away.GamesAnalyzed
	}

	consistencyMult := 0.7 + (avgConsistency/100)*0.6
	dataMult := 0.8 + math.Min(1, float64(minGames)/10.0)*0.4

	pred := &models.CornerPrediction{
		PredictedTotalCorners: round1(total),
		PredictedHomeCorners:  round1(homeEst),
		PredictedAwayCorners:  round1(awayEst),
		Confidence5p5:         lineConfidence(total, 5.5, consistencyMult, dataMult),
		Confidence6p5:         lineConfidence(total, 6.5, consistencyMult, dataMult),
		Confidence7p5:         lineConfidence(total, 7.5, consistencyMult, dataMult),
		Confidence8p5:         lineConfidence(total, 8.5, consistencyMult, dataMult),
		StatisticalConfidence: statisticalConfidence(avgConsistency, minGames),
		AnalysisReport:        buildReport(home, away, total),
	}
	pred.PredictionQuality = classifyQuality(pred.StatisticalConfidence, avgConsistency)

	p.logger.WithFields(logrus.Fields{
		"home_team_id":    homeID,
		"away_team_id":    awayID,
		"predicted_total": pred.PredictedTotalCorners,
		"confidence_5_5":  pred.Confidence5p5,
		"quality":         pred.PredictionQuality,
	}).Debug("Corner prediction computed")

	return pred, nil
}

// blendEstimate combines the weighted recent average, the plain season
// average, and a trend-nudged average.
func blendEstimate(profile TeamProfile) float64 {
	trendAdj := profile.AvgTotal
	switch profile.Trend {
	case TrendImproving:
		trendAdj *= 1.1
	case TrendDeclining:
		trendAdj *= 0.9
	}
	return profile.WeightedTotal/2*methodWeights[0] +
		profile.AvgTotal/2*methodWeights[1] +
		trendAdj/2*methodWeights[2]
}

// lineConfidence is the probability that total corners exceed the given
// line, scaled by consistency and data-depth multipliers and clamped to
// a usable 5..95 range.
func lineConfidence(predicted, line, consistencyMult, dataMult float64) float64 {
	base := 1 - normalCDF(line, predicted, lineStdDev)
	conf := base * 100 * consistencyMult * dataMult
	return round1(clamp(conf, 5, 95))
}

func normalCDF(x, mean, std float64) float64 {
	return 0.5 * (1 + math.Erf((x-mean)/(std*math.Sqrt2)))
}

// statisticalConfidence is the geometric mean of the consistency,
// data-availability and model-reliability factors, on 0..100.
func statisticalConfidence(avgConsistency float64, minGames int) float64 {
	factors := []float64{
		math.Max(0.01, avgConsistency/100),
		math.Min(1, float64(minGames)/10.0),
		0.8,
	}
	product := 1.0
	for _, f := range factors {
		product *= f
	}
	score := math.Pow(product, 1/float64(len(factors))) * 100
	return round1(clamp(score, 5, 95))
}

func classifyQuality(statConfidence, avgConsistency float64) string {
	switch {
	case statConfidence >= 80 && avgConsistency >= 75:
		return models.QualityExcellent
	case statConfidence >= 65 && avgConsistency >= 60:
		return models.QualityGood
	case statConfidence >= 50 && avgConsistency >= 45:
		return models.QualityFair
	default:
		return models.QualityPoor
	}
}

func buildReport(home, away TeamProfile, total float64) string {
	return fmt.Sprintf(
		"home avg %.1f (%s, consistency %.0f), away avg %.1f (%s, consistency %.0f), projected total %.1f",
		home.AvgTotal, home.Trend, home.Consistency,
		away.AvgTotal, away.Trend, away.Consistency,
		total,
	)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
