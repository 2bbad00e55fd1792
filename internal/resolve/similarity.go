package resolve

import "github.com/agext/levenshtein"

// Additive scoring bonuses for secondary-field agreement. The bonus is
// capped so name similarity always dominates the final score.
const (
	dateBonus     = 0.03
	positionBonus = 0.02
	bonusCap      = 0.05
)

var levParams = levenshtein.NewParams()

// Similarity returns the normalized Levenshtein similarity (0..1) of two
// name keys. Empty input on either side scores zero.
func Similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	return levenshtein.Similarity(a, b, levParams)
}

// Score computes the similarity, additive bonus, and capped final score
// for a target/candidate name-key pair.
func Score(targetKey, candidateKey string, dateEqual, positionEqual bool) (sim, bonus, final float64) {
	sim = Similarity(targetKey, candidateKey)

	if dateEqual {
		bonus += dateBonus
	}
	if positionEqual {
		bonus += positionBonus
	}
	if bonus > bonusCap {
		bonus = bonusCap
	}

	final = sim + bonus
	if final > 1 {
		final = 1
	}
	return sim, bonus, final
}
