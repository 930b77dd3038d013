package models

import (
	"time"
)

// Data quality labels derived from the size of the historical window
const (
	QualityExcellent = "Excellent"
	QualityGood      = "Good"
	QualityFair      = "Fair"
	QualityPoor      = "Poor"
)

// AssessDataQuality maps a game count to a quality label
func AssessDataQuality(games int) string {
	switch {
	case games >= 15:
		return QualityExcellent
	case games >= 10:
		return QualityGood
	case games >= 5:
		return QualityFair
	default:
		return QualityPoor
	}
}

// ConfidenceLabel converts a confidence score to a display label
func ConfidenceLabel(score float64) string {
	switch {
	case score >= 90:
		return "Very High"
	case score >= 75:
		return "High"
	case score >= 60:
		return "Medium"
	case score >= 40:
		return "Low"
	default:
		return "Very Low"
	}
}

// TeamCalculation records how one side's scoring probability was derived,
// kept on the prediction for later auditability.
type TeamCalculation struct {
	TeamID               int64         `json:"team_id"`
	AttackRate           float64       `json:"attack_rate"`
	DefenseVulnerability float64       `json:"defense_vulnerability"`
	AttackClass          StrengthClass `json:"attack_class"`
	DefenseClass         StrengthClass `json:"defense_class"`
	Weights              WeightPair    `json:"weights"`
	ConfidenceBoost      float64       `json:"confidence_boost"`
	Reasoning            string        `json:"reasoning"`
	SampleAdjusted       bool          `json:"sample_adjusted"`
}

// Prediction is the immutable output of the prediction generator for one
// fixture and cutoff date.
type Prediction struct {
	HomeTeamID           int64           `json:"home_team_id"`
	AwayTeamID           int64           `json:"away_team_id"`
	Season               int             `json:"season"`
	CutoffDate           time.Time       `json:"cutoff_date"`
	BTTSProbability      float64         `json:"btts_probability"`
	BTTS2PlusProbability float64         `json:"btts_2plus_probability"`
	HomeScoreProbability float64         `json:"home_score_probability"`
	AwayScoreProbability float64         `json:"away_score_probability"`
	ConfidenceScore      float64         `json:"confidence_score"`
	Confidence           string          `json:"confidence"`
	DataQuality          string          `json:"data_quality"`
	HomeCalculation      TeamCalculation `json:"home_calculation"`
	AwayCalculation      TeamCalculation `json:"away_calculation"`
	HomeStats            RateStats       `json:"home_stats"`
	AwayStats            RateStats       `json:"away_stats"`
	Methodology          string          `json:"methodology"`
}

// InsufficientData is the degrade-gracefully outcome returned when either
// team has too little history before the cutoff. It is a recognized result,
// not an error.
type InsufficientData struct {
	HomeTeamID      int64     `json:"home_team_id"`
	AwayTeamID      int64     `json:"away_team_id"`
	Season          int       `json:"season"`
	CutoffDate      time.Time `json:"cutoff_date"`
	Probability     float64   `json:"probability"`
	ConfidenceScore float64   `json:"confidence_score"`
	DataQuality     string    `json:"data_quality"`
	Reason          string    `json:"reason"`
}

// PredictionOutcome is the tagged result of a prediction request. Exactly
// one of Prediction or Insufficient is set; callers branch on the value
// rather than catching an error.
type PredictionOutcome struct {
	Prediction   *Prediction       `json:"prediction,omitempty"`
	Insufficient *InsufficientData `json:"insufficient,omitempty"`
}

// OK reports whether a full prediction was produced
func (o PredictionOutcome) OK() bool {
	return o.Prediction != nil
}
