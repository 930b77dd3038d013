package analysis

// TeamScoreProbability combines a team's attack rate with the opponent's
// conceding rate using the weight pair. Inputs and output are 0-100
// percentages; the result is floored at 0 and deliberately not capped.
// The formula is threshold-agnostic: pass 2+ rates for the 2+ goals line.
func TeamScoreProbability(attackRate, opponentConcedeRate, attackWeight, defenseWeight float64) float64 {
	probability := attackRate*attackWeight + opponentConcedeRate*defenseWeight
	if probability < 0 {
		return 0
	}
	return probability
}

// BTTSProbability combines both sides' scoring probabilities into the
// both-teams-to-score probability.
func BTTSProbability(homeProb, awayProb float64) float64 {
	return homeProb * awayProb / 100
}

// SampleFactor penalizes small historical windows when computing
// confidence. minGames is the smaller of both teams' window sizes.
func SampleFactor(minGames int) float64 {
	switch {
	case minGames >= 10:
		return 1.0
	case minGames >= 7:
		return 0.95
	case minGames >= 5:
		return 0.9
	default:
		return 0.8
	}
}

// ConfidenceScore is the canonical line-consistency confidence: the mean of
// both scoring probabilities, scaled by the sample factor and floored at 5.
// Every prediction variant (1+, 2+, corners) must use this single
// implementation.
func ConfidenceScore(homeProb, awayProb float64, minGames int) float64 {
	lineConsistency := (homeProb + awayProb) / 2
	confidence := lineConsistency * SampleFactor(minGames)
	if confidence < 5.0 {
		return 5.0
	}
	return confidence
}
