package models

// StrengthClass buckets a rate into one of five strength levels
type StrengthClass string

// Strength classes from strongest to weakest
const (
	StrengthVeryStrong StrengthClass = "very_strong"
	StrengthStrong     StrengthClass = "strong"
	StrengthAverage    StrengthClass = "average"
	StrengthWeak       StrengthClass = "weak"
	StrengthVeryWeak   StrengthClass = "very_weak"
)

// MetricType selects which threshold table applies to a rate
type MetricType string

// Metric types
const (
	MetricAttacking MetricType = "attacking"
	MetricDefending MetricType = "defending"
)

// WeightPair blends attack and defense signal. The pair always sums to 1.0.
type WeightPair struct {
	Attack  float64 `json:"attack"`
	Defense float64 `json:"defense"`
}

// Sum returns the total of both weights
func (w WeightPair) Sum() float64 {
	return w.Attack + w.Defense
}

// RateStats holds a team's scoring and conceding rates over a historical
// window. Rates are percentages in [0,100].
type RateStats struct {
	TeamID            int64   `json:"team_id"`
	GamesAnalyzed     int     `json:"games_analyzed"`
	Scored1PlusRate   float64 `json:"scored_1plus_rate"`
	Scored2PlusRate   float64 `json:"scored_2plus_rate"`
	Conceded1PlusRate float64 `json:"conceded_1plus_rate"`
	Conceded2PlusRate float64 `json:"conceded_2plus_rate"`
	AvgGoalsScored    float64 `json:"avg_goals_scored"`
	AvgGoalsConceded  float64 `json:"avg_goals_conceded"`
}
