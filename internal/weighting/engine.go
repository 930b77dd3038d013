package weighting

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yourusername/corner-edge/internal/models"
)

// Matchup reasoning tags
const (
	MatchupEliteClash       = "elite_clash"
	MatchupBalanced         = "balanced_matchup"
	MatchupLowQuality       = "low_quality_matchup"
	MatchupAttackDominance  = "attack_dominance"
	MatchupDefenseDominance = "defense_dominance"
	MatchupMismatch         = "strength_mismatch"
	MatchupErrorFallback    = "error_fallback"
)

// Reasoning explains a weight decision
type Reasoning struct {
	MatchupType     string               `json:"matchup_type"`
	Description     string               `json:"description"`
	AttackClass     models.StrengthClass `json:"attack_class"`
	DefenseClass    models.StrengthClass `json:"defense_class"`
	AttackRate      float64              `json:"attack_rate"`
	DefenseRate     float64              `json:"defense_rate"`
	ConfidenceBoost float64              `json:"confidence_boost"`
}

// Engine computes matchup-specific attack/defense weights
type Engine struct {
	logger *logrus.Logger
}

// NewEngine creates a new weighting engine
func NewEngine(logger *logrus.Logger) *Engine {
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{logger: logger}
}

// neutral is the fallback for invalid input; the engine never propagates an
// error into prediction generation.
func neutral(attackRate, defenseRate float64) (models.WeightPair, Reasoning) {
	return models.WeightPair{Attack: 0.5, Defense: 0.5}, Reasoning{
		MatchupType:     MatchupErrorFallback,
		Description:     "Balanced weighting due to calculation error",
		AttackRate:      attackRate,
		DefenseRate:     defenseRate,
		ConfidenceBoost: 1.0,
	}
}

// ComputeWeights classifies both rates and looks up the matchup cell.
// Out-of-range rates degrade to the neutral pair with a fallback tag.
func (e *Engine) ComputeWeights(attackRate, defenseVulnerabilityRate float64) (models.WeightPair, Reasoning) {
	if attackRate < 0 || attackRate > 100 || defenseVulnerabilityRate < 0 || defenseVulnerabilityRate > 100 {
		e.logger.WithFields(logrus.Fields{
			"attack_rate":  attackRate,
			"defense_rate": defenseVulnerabilityRate,
		}).Error("Rate out of range, falling back to balanced weights")
		return neutral(attackRate, defenseVulnerabilityRate)
	}

	attackClass := Classify(attackRate, models.MetricAttacking, e.logger)
	defenseClass := Classify(defenseVulnerabilityRate, models.MetricDefending, e.logger)

	weights, ok := LookupWeights(attackClass, defenseClass)
	if !ok {
		e.logger.WithFields(logrus.Fields{
			"attack_class":  attackClass,
			"defense_class": defenseClass,
		}).Error("No matrix cell for matchup, falling back to balanced weights")
		return neutral(attackRate, defenseVulnerabilityRate)
	}

	reasoning := buildReasoning(attackClass, defenseClass, attackRate, defenseVulnerabilityRate, weights)

	e.logger.WithFields(logrus.Fields{
		"attack_weight":  weights.Attack,
		"defense_weight": weights.Defense,
		"attack_class":   attackClass,
		"defense_class":  defenseClass,
	}).Debug("Dynamic weights calculated")

	return weights, reasoning
}

// AdjustForSampleSize blends weights toward balanced when either team has a
// small historical window, then renormalizes so the pair sums to 1.0.
func (e *Engine) AdjustForSampleSize(weights models.WeightPair, gamesA, gamesB int) models.WeightPair {
	minGames := gamesA
	if gamesB < minGames {
		minGames = gamesB
	}

	var factor float64
	switch {
	case minGames < 5:
		factor = 0.4
	case minGames < 8:
		factor = 0.2
	default:
		return weights
	}

	const balanced = 0.5
	adjusted := models.WeightPair{
		Attack:  weights.Attack*(1-factor) + balanced*factor,
		Defense: weights.Defense*(1-factor) + balanced*factor,
	}

	total := adjusted.Sum()
	adjusted.Attack /= total
	adjusted.Defense /= total

	e.logger.WithFields(logrus.Fields{
		"min_games": minGames,
		"factor":    factor,
	}).Debug("Applied sample size adjustment")

	return adjusted
}

// ConfidenceBoost rewards extreme weight splits: a clearer favorite means a
// higher multiplier. The boost is metadata only and is never applied to the
// probability itself.
func (e *Engine) ConfidenceBoost(weights models.WeightPair) float64 {
	return confidenceBoost(weights)
}

// boostEpsilon keeps exact tier boundaries like a 60/40 split from landing
// on the wrong side of a float subtraction.
const boostEpsilon = 1e-9

func confidenceBoost(weights models.WeightPair) float64 {
	diff := weights.Attack - weights.Defense
	if diff < 0 {
		diff = -diff
	}
	switch {
	case diff >= 0.5-boostEpsilon:
		return 1.15
	case diff >= 0.3-boostEpsilon:
		return 1.10
	case diff >= 0.2-boostEpsilon:
		return 1.05
	default:
		return 1.0
	}
}

// display renders a strength class for reasoning text
func display(class models.StrengthClass) string {
	return strings.ReplaceAll(string(class), "_", " ")
}

func buildReasoning(attackClass, defenseClass models.StrengthClass, attackRate, defenseRate float64, weights models.WeightPair) Reasoning {
	var matchupType, description string

	switch {
	case attackClass == defenseClass:
		switch attackClass {
		case models.StrengthVeryStrong, models.StrengthStrong:
			matchupType = MatchupEliteClash
			description = fmt.Sprintf("Elite %s attack meets elite defense - tight contest", display(attackClass))
		case models.StrengthAverage:
			matchupType = MatchupBalanced
			description = "Average attack vs average defense - evenly matched"
		default:
			matchupType = MatchupLowQuality
			description = fmt.Sprintf("%s attack vs %s defense - unpredictable", display(attackClass), display(defenseClass))
		}
	case attackClass == models.StrengthVeryStrong:
		matchupType = MatchupAttackDominance
		description = fmt.Sprintf("Elite attack vs %s defense - attack heavily favored", display(defenseClass))
	case defenseClass == models.StrengthVeryStrong:
		matchupType = MatchupDefenseDominance
		description = fmt.Sprintf("%s attack vs elite defense - defense heavily favored", display(attackClass))
	default:
		matchupType = MatchupMismatch
		description = fmt.Sprintf("%s attack vs %s defense", display(attackClass), display(defenseClass))
	}

	return Reasoning{
		MatchupType:     matchupType,
		Description:     description,
		AttackClass:     attackClass,
		DefenseClass:    defenseClass,
		AttackRate:      attackRate,
		DefenseRate:     defenseRate,
		ConfidenceBoost: confidenceBoost(weights),
	}
}
