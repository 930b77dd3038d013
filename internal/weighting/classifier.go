// Package weighting implements strength classification and the dynamic
// attack/defense weight matrix used by goal predictions.
package weighting

import (
	"github.com/sirupsen/logrus"
	"github.com/yourusername/corner-edge/internal/models"
)

// Attacking thresholds: higher scoring rate means a stronger attack.
const (
	attackVeryStrongMin = 80
	attackStrongMin     = 65
	attackAverageMin    = 45
	attackWeakMin       = 30
)

// Defending thresholds: lower conceding rate means a stronger defense.
const (
	defenseVeryStrongMax = 20
	defenseStrongMax     = 35
	defenseAverageMax    = 55
	defenseWeakMax       = 70
)

// Classify buckets a 0-100 rate into a strength class. An unknown metric
// type is a caller error; it is logged and classified as average.
func Classify(rate float64, metric models.MetricType, logger *logrus.Logger) models.StrengthClass {
	switch metric {
	case models.MetricAttacking:
		switch {
		case rate >= attackVeryStrongMin:
			return models.StrengthVeryStrong
		case rate >= attackStrongMin:
			return models.StrengthStrong
		case rate >= attackAverageMin:
			return models.StrengthAverage
		case rate >= attackWeakMin:
			return models.StrengthWeak
		default:
			return models.StrengthVeryWeak
		}
	case models.MetricDefending:
		switch {
		case rate <= defenseVeryStrongMax:
			return models.StrengthVeryStrong
		case rate <= defenseStrongMax:
			return models.StrengthStrong
		case rate <= defenseAverageMax:
			return models.StrengthAverage
		case rate <= defenseWeakMax:
			return models.StrengthWeak
		default:
			return models.StrengthVeryWeak
		}
	default:
		if logger != nil {
			logger.WithField("metric_type", metric).Warn("Unknown metric type, defaulting to average")
		}
		return models.StrengthAverage
	}
}

// StrengthDescription returns a human-readable description of a class
func StrengthDescription(class models.StrengthClass, metric models.MetricType) string {
	attacking := map[models.StrengthClass]string{
		models.StrengthVeryStrong: "Elite Attack (80%+ scoring rate)",
		models.StrengthStrong:     "Strong Attack (65-79% scoring rate)",
		models.StrengthAverage:    "Average Attack (45-64% scoring rate)",
		models.StrengthWeak:       "Weak Attack (30-44% scoring rate)",
		models.StrengthVeryWeak:   "Very Weak Attack (<30% scoring rate)",
	}
	defending := map[models.StrengthClass]string{
		models.StrengthVeryStrong: "Elite Defense (<=20% conceding rate)",
		models.StrengthStrong:     "Strong Defense (21-35% conceding rate)",
		models.StrengthAverage:    "Average Defense (36-55% conceding rate)",
		models.StrengthWeak:       "Weak Defense (56-70% conceding rate)",
		models.StrengthVeryWeak:   "Very Weak Defense (70%+ conceding rate)",
	}
	if metric == models.MetricDefending {
		return defending[class]
	}
	return attacking[class]
}
