package substitution

import (
	"strings"
	"unicode/utf8"

	"github.com/agext/levenshtein"
)

// Fuzzy matching relocates a vocabulary term inside a sentence when exact
// string matching fails, typically because the transformed text embeds an
// inflected form of the dictionary lemma ("casas" for "casa", a conjugated
// verb for its infinitive). The threshold and the prefix/length gates below
// were tuned against stored cards; changing them changes which cards
// round-trip, so they are fixed.
const (
	fuzzyThreshold    = 0.72
	fuzzyPrefixBonus  = 0.05
	fuzzyMaxPrefix    = 4
	fuzzyMinPrefix    = 2
	fuzzyMinTokenLen  = 3
	fuzzyMinTargetLen = 4
)

// FuzzyFindToken scans the word tokens of a plain sentence for the one that
// best resembles any of the candidate strings. Exact (case-insensitive) token
// hits always win; otherwise a token is accepted when
// similarity + min(commonPrefix,4)*0.05 >= 0.72, with
// similarity = 1 - editDistance/max(len(token), len(candidate)).
// The token is returned as it appears in the sentence.
func FuzzyFindToken(sentence string, candidates []string) (string, bool) {
	tokens := wordTokens(sentence)
	if len(tokens) == 0 {
		return "", false
	}

	bestScore := 0.0
	bestToken := ""
	for _, token := range tokens {
		lowerToken := strings.ToLower(token)
		for _, candidate := range candidates {
			lowerCand := strings.ToLower(strings.TrimSpace(candidate))
			if lowerCand == "" {
				continue
			}
			if lowerToken == lowerCand {
				return token, true
			}

			tokenLen := utf8.RuneCountInString(lowerToken)
			candLen := utf8.RuneCountInString(lowerCand)
			if tokenLen < fuzzyMinTokenLen || candLen < fuzzyMinTargetLen {
				continue
			}
			prefix := commonPrefixLen(lowerToken, lowerCand)
			if prefix < fuzzyMinPrefix {
				continue
			}

			dist := levenshtein.Distance(lowerToken, lowerCand, nil)
			maxLen := tokenLen
			if candLen > maxLen {
				maxLen = candLen
			}
			similarity := 1 - float64(dist)/float64(maxLen)
			score := similarity + float64(min(prefix, fuzzyMaxPrefix))*fuzzyPrefixBonus
			if score >= fuzzyThreshold && score > bestScore {
				bestScore = score
				bestToken = token
			}
		}
	}
	return bestToken, bestToken != ""
}

func commonPrefixLen(a, b string) int {
	ar := []rune(a)
	br := []rune(b)
	n := 0
	for n < len(ar) && n < len(br) && ar[n] == br[n] {
		n++
	}
	return n
}
