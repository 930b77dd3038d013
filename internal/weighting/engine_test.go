package weighting

import (
	"math"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/yourusername/corner-edge/internal/models"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func TestClassifyAttackingBoundaries(t *testing.T) {
	logger := testLogger()
	tests := []struct {
		rate float64
		want models.StrengthClass
	}{
		{80, models.StrengthVeryStrong},
		{79.9, models.StrengthStrong},
		{65, models.StrengthStrong},
		{64.9, models.StrengthAverage},
		{45, models.StrengthAverage},
		{44.9, models.StrengthWeak},
		{30, models.StrengthWeak},
		{29.9, models.StrengthVeryWeak},
		{0, models.StrengthVeryWeak},
		{100, models.StrengthVeryStrong},
	}
	for _, tt := range tests {
		got := Classify(tt.rate, models.MetricAttacking, logger)
		if got != tt.want {
			t.Errorf("Classify(%v, attacking) = %s, want %s", tt.rate, got, tt.want)
		}
	}
}

func TestClassifyDefendingBoundaries(t *testing.T) {
	logger := testLogger()
	tests := []struct {
		rate float64
		want models.StrengthClass
	}{
		{20, models.StrengthVeryStrong},
		{20.1, models.StrengthStrong},
		{35, models.StrengthStrong},
		{35.1, models.StrengthAverage},
		{55, models.StrengthAverage},
		{55.1, models.StrengthWeak},
		{70, models.StrengthWeak},
		{70.1, models.StrengthVeryWeak},
	}
	for _, tt := range tests {
		got := Classify(tt.rate, models.MetricDefending, logger)
		if got != tt.want {
			t.Errorf("Classify(%v, defending) = %s, want %s", tt.rate, got, tt.want)
		}
	}
}

func TestClassifyUnknownMetricDefaultsToAverage(t *testing.T) {
	got := Classify(90, models.MetricType("bogus"), testLogger())
	assert.Equal(t, models.StrengthAverage, got)
}

func TestMatrixCellsSumToOne(t *testing.T) {
	classes := []models.StrengthClass{
		models.StrengthVeryStrong, models.StrengthStrong, models.StrengthAverage,
		models.StrengthWeak, models.StrengthVeryWeak,
	}
	for _, attack := range classes {
		for _, defense := range classes {
			pair, ok := LookupWeights(attack, defense)
			if !ok {
				t.Fatalf("missing matrix cell %s/%s", attack, defense)
			}
			if math.Abs(pair.Sum()-1.0) > 1e-9 {
				t.Errorf("cell %s/%s sums to %v", attack, defense, pair.Sum())
			}
		}
	}
}

func TestComputeWeightsEliteVsElite(t *testing.T) {
	engine := NewEngine(testLogger())
	weights, reasoning := engine.ComputeWeights(85, 18)
	assert.Equal(t, 0.45, weights.Attack)
	assert.Equal(t, 0.55, weights.Defense)
	assert.Equal(t, models.StrengthVeryStrong, reasoning.AttackClass)
	assert.Equal(t, models.StrengthVeryStrong, reasoning.DefenseClass)
	assert.Equal(t, MatchupEliteClash, reasoning.MatchupType)
}

func TestComputeWeightsOutOfRangeFallsBack(t *testing.T) {
	engine := NewEngine(testLogger())
	weights, reasoning := engine.ComputeWeights(130, 18)
	assert.Equal(t, 0.5, weights.Attack)
	assert.Equal(t, 0.5, weights.Defense)
	assert.Equal(t, MatchupErrorFallback, reasoning.MatchupType)

	weights, reasoning = engine.ComputeWeights(50, -1)
	assert.Equal(t, 0.5, weights.Attack)
	assert.Equal(t, MatchupErrorFallback, reasoning.MatchupType)
}

func TestAdjustForSampleSize(t *testing.T) {
	engine := NewEngine(testLogger())
	base := models.WeightPair{Attack: 0.8, Defense: 0.2}

	tests := []struct {
		name       string
		gamesA     int
		gamesB     int
		wantAttack float64
	}{
		{"tiny sample blends 40%", 4, 12, 0.8*0.6 + 0.5*0.4},
		{"small sample blends 20%", 7, 12, 0.8*0.8 + 0.5*0.2},
		{"large sample unchanged", 12, 10, 0.8},
		{"min of both sides applies", 12, 3, 0.8*0.6 + 0.5*0.4},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			adjusted := engine.AdjustForSampleSize(base, tt.gamesA, tt.gamesB)
			assert.InDelta(t, tt.wantAttack, adjusted.Attack, 1e-9)
			assert.InDelta(t, 1.0, adjusted.Sum(), 1e-9)
		})
	}
}

func TestWeightConservationAcrossAllInputs(t *testing.T) {
	engine := NewEngine(testLogger())
	for attackRate := 0.0; attackRate <= 100; attackRate += 5 {
		for defenseRate := 0.0; defenseRate <= 100; defenseRate += 5 {
			weights, _ := engine.ComputeWeights(attackRate, defenseRate)
			if math.Abs(weights.Sum()-1.0) > 1e-9 {
				t.Fatalf("weights for (%v,%v) sum to %v", attackRate, defenseRate, weights.Sum())
			}
			for _, games := range []int{2, 6, 15} {
				adjusted := engine.AdjustForSampleSize(weights, games, games)
				if math.Abs(adjusted.Sum()-1.0) > 1e-9 {
					t.Fatalf("adjusted weights for (%v,%v,games=%d) sum to %v", attackRate, defenseRate, games, adjusted.Sum())
				}
			}
		}
	}
}

func TestConfidenceBoostTiers(t *testing.T) {
	engine := NewEngine(testLogger())
	tests := []struct {
		pair models.WeightPair
		want float64
	}{
		{models.WeightPair{Attack: 0.80, Defense: 0.20}, 1.15},
		{models.WeightPair{Attack: 0.75, Defense: 0.25}, 1.15},
		{models.WeightPair{Attack: 0.65, Defense: 0.35}, 1.10},
		{models.WeightPair{Attack: 0.60, Defense: 0.40}, 1.05},
		{models.WeightPair{Attack: 0.55, Defense: 0.45}, 1.0},
		{models.WeightPair{Attack: 0.15, Defense: 0.85}, 1.15},
		{models.WeightPair{Attack: 0.50, Defense: 0.50}, 1.0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, engine.ConfidenceBoost(tt.pair), "pair %+v", tt.pair)
	}
}
