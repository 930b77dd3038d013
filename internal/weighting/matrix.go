package weighting

import "github.com/yourusername/corner-edge/internal/models"

// weightMatrix maps (attack class, defense class) to a weight pair. The
// cells are hand-tuned judgments about matchup quality and are looked up
// verbatim, never derived from a formula. Note the defense lean at the
// elite-vs-elite cell: quality defense is harder to overcome than raw
// scoring rates suggest.
var weightMatrix = map[models.StrengthClass]map[models.StrengthClass]models.WeightPair{
	models.StrengthVeryStrong: {
		models.StrengthVeryStrong: {Attack: 0.45, Defense: 0.55}, // Elite vs elite - defense slightly favored
		models.StrengthStrong:     {Attack: 0.50, Defense: 0.50}, // Elite attack vs strong defense - balanced
		models.StrengthAverage:    {Attack: 0.65, Defense: 0.35}, // Elite attack vs average defense - attack favored
		models.StrengthWeak:       {Attack: 0.75, Defense: 0.25}, // Elite attack vs weak defense - attack heavily favored
		models.StrengthVeryWeak:   {Attack: 0.80, Defense: 0.20}, // Elite attack vs terrible defense - attack dominates
	},
	models.StrengthStrong: {
		models.StrengthVeryStrong: {Attack: 0.35, Defense: 0.65}, // Strong attack vs elite defense - defense favored
		models.StrengthStrong:     {Attack: 0.50, Defense: 0.50}, // Strong vs strong - balanced
		models.StrengthAverage:    {Attack: 0.60, Defense: 0.40}, // Strong attack vs average defense - attack slightly favored
		models.StrengthWeak:       {Attack: 0.70, Defense: 0.30}, // Strong attack vs weak defense - attack favored
		models.StrengthVeryWeak:   {Attack: 0.75, Defense: 0.25}, // Strong attack vs terrible defense - attack heavily favored
	},
	models.StrengthAverage: {
		models.StrengthVeryStrong: {Attack: 0.25, Defense: 0.75}, // Average attack vs elite defense - defense heavily favored
		models.StrengthStrong:     {Attack: 0.40, Defense: 0.60}, // Average attack vs strong defense - defense favored
		models.StrengthAverage:    {Attack: 0.50, Defense: 0.50}, // Average vs average - balanced
		models.StrengthWeak:       {Attack: 0.60, Defense: 0.40}, // Average attack vs weak defense - attack slightly favored
		models.StrengthVeryWeak:   {Attack: 0.65, Defense: 0.35}, // Average attack vs terrible defense - attack favored
	},
	models.StrengthWeak: {
		models.StrengthVeryStrong: {Attack: 0.20, Defense: 0.80}, // Weak attack vs elite defense - defense dominates
		models.StrengthStrong:     {Attack: 0.30, Defense: 0.70}, // Weak attack vs strong defense - defense heavily favored
		models.StrengthAverage:    {Attack: 0.40, Defense: 0.60}, // Weak attack vs average defense - defense favored
		models.StrengthWeak:       {Attack: 0.50, Defense: 0.50}, // Weak vs weak - balanced
		models.StrengthVeryWeak:   {Attack: 0.55, Defense: 0.45}, // Weak attack vs terrible defense - attack slightly favored
	},
	models.StrengthVeryWeak: {
		models.StrengthVeryStrong: {Attack: 0.15, Defense: 0.85}, // Terrible attack vs elite defense - defense completely dominates
		models.StrengthStrong:     {Attack: 0.25, Defense: 0.75}, // Terrible attack vs strong defense - defense heavily favored
		models.StrengthAverage:    {Attack: 0.35, Defense: 0.65}, // Terrible attack vs average defense - defense favored
		models.StrengthWeak:       {Attack: 0.45, Defense: 0.55}, // Terrible attack vs weak defense - defense slightly favored
		models.StrengthVeryWeak:   {Attack: 0.50, Defense: 0.50}, // Terrible vs terrible - balanced (both unreliable)
	},
}

// LookupWeights returns the matrix cell for a matchup
func LookupWeights(attack, defense models.StrengthClass) (models.WeightPair, bool) {
	row, ok := weightMatrix[attack]
	if !ok {
		return models.WeightPair{}, false
	}
	pair, ok := row[defense]
	return pair, ok
}
