// Package similarity scores how closely two exercise descriptions match
package similarity

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/hbollon/go-edlib"

	"exercise-resolver/pkg/textnorm"
)

// Reference weighting policy. The values are tunable in principle but are
// kept fixed so that resolution results stay reproducible across builds.
const (
	editWeight       = 0.40
	jaccardWeight    = 0.35
	containmentBonus = 0.15
	prefixBonus      = 0.10
	suffixBonus      = 0.05
	lengthBonus      = 0.05
	lengthBonusFloor = 0.7
)

// Score returns a blended similarity between two strings in [0,1].
// Both inputs are normalized first; an empty normalized side scores 0 and
// identical normalized strings score 1. The blend combines a Levenshtein
// edit-distance ratio with token-set Jaccard overlap, plus bonuses for
// containment, shared prefix/suffix and comparable length. Symmetric in its
// arguments.
func Score(a, b string) float64 {
	na := textnorm.Normalize(a)
	nb := textnorm.Normalize(b)

	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}

	score := editWeight*editRatio(na, nb) + jaccardWeight*tokenJaccard(na, nb)

	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		score += containmentBonus
	}
	if strings.HasPrefix(na, nb) || strings.HasPrefix(nb, na) {
		score += prefixBonus
	}
	if strings.HasSuffix(na, nb) || strings.HasSuffix(nb, na) {
		score += suffixBonus
	}
	if LengthRatio(na, nb) > lengthBonusFloor {
		score += lengthBonus
	}

	return clamp(score)
}

// TokenSimilarity compares two single normalized tokens using Jaro-Winkler,
// which heavily weights matching prefixes and tolerates trailing typos
// ("squats" vs "squat"). Returns a value in [0,1].
func TokenSimilarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	if a == b {
		return 1
	}
	return clamp(float64(edlib.JaroWinklerSimilarity(a, b)))
}

// LengthRatio returns min(len)/max(len) over the rune lengths of a and b,
// or 0 when either is empty.
func LengthRatio(a, b string) float64 {
	la := len([]rune(a))
	lb := len([]rune(b))
	if la == 0 || lb == 0 {
		return 0
	}
	if la > lb {
		la, lb = lb, la
	}
	return float64(la) / float64(lb)
}

// editRatio converts Levenshtein distance into a similarity in [0,1]
func editRatio(a, b string) float64 {
	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	if maxLen == 0 {
		return 1
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}

// tokenJaccard returns |A ∩ B| / |A ∪ B| over the word sets of a and b
func tokenJaccard(a, b string) float64 {
	tokensA := strings.Fields(a)
	tokensB := strings.Fields(b)
	if len(tokensA) == 0 || len(tokensB) == 0 {
		return 0
	}

	setA := make(map[string]struct{}, len(tokensA))
	for _, tok := range tokensA {
		setA[tok] = struct{}{}
	}
	setB := make(map[string]struct{}, len(tokensB))
	for _, tok := range tokensB {
		setB[tok] = struct{}{}
	}

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}

	union := len(setA) + len(setB) - intersection
	return float64(intersection) / float64(union)
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
