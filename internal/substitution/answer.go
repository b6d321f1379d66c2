package substitution

import (
	"regexp"
	"strings"

	"github.com/samber/lo"
)

// Dictionary translations arrive as loosely formatted gloss strings:
// "big, large (tamaño)", "to run / to flow; to work". The answer shown on a
// substitution card must be one short English phrase, so the gloss is mined
// for the best candidate rather than used verbatim.

var (
	parentheticalRE = regexp.MustCompile(`\([^)]*\)|\[[^\]]*\]|（[^）]*）`)
	glossSplitRE    = regexp.MustCompile(`[/;,]`)
	sentencePunctRE = regexp.MustCompile(`[.!?…]`)

	// slashPairRE finds "casa/house"-style dual-option artifacts the
	// generator sometimes leaves in corrected sentences.
	slashPairRE = regexp.MustCompile(`([\p{L}\p{M}\p{N}']+)/([\p{L}\p{M}\p{N}']+)`)
)

const answerMaxWords = 4

// DeriveAnswer extracts a single short English phrase from a raw gloss.
// Parenthetical asides are dropped, the gloss is split into comma/semicolon/
// slash-separated candidates, and the first candidate that is free of
// sentence punctuation and at most four words long wins. Among qualifying
// candidates, one that literally appears in the corrected sentence is
// preferred. When nothing qualifies the first word-like token of the raw
// gloss is used, and as a last resort the gloss itself.
func DeriveAnswer(translation, correctedSentence string) string {
	gloss := strings.TrimSpace(translation)
	if gloss == "" {
		return ""
	}

	candidates := glossCandidates(gloss)
	if len(candidates) > 0 {
		for _, candidate := range candidates {
			if containsWord(correctedSentence, candidate) {
				return candidate
			}
		}
		return candidates[0]
	}

	if token := wordRE.FindString(gloss); token != "" {
		return token
	}
	return gloss
}

// glossCandidates lists the short, punctuation-free phrases a gloss offers as
// potential answers, in the order they appear.
func glossCandidates(translation string) []string {
	cleaned := parentheticalRE.ReplaceAllString(translation, " ")
	return lo.FilterMap(glossSplitRE.Split(cleaned, -1), func(part string, _ int) (string, bool) {
		part = strings.TrimSpace(part)
		if part == "" || sentencePunctRE.MatchString(part) {
			return "", false
		}
		if len(strings.Fields(part)) > answerMaxWords {
			return "", false
		}
		return part, true
	})
}

// CollapseSlashOptions rewrites "left/right" dual-option artifacts to a
// single token: the side matching preferred when one does, otherwise the
// right-hand option (the generator writes source/target order, so the right
// side is the one belonging to the sentence's language).
func CollapseSlashOptions(sentence, preferred string) string {
	if !strings.Contains(sentence, "/") {
		return sentence
	}
	return slashPairRE.ReplaceAllStringFunc(sentence, func(pair string) string {
		m := slashPairRE.FindStringSubmatch(pair)
		left, right := m[1], m[2]
		if preferred != "" {
			if strings.EqualFold(left, preferred) {
				return left
			}
			if strings.EqualFold(right, preferred) {
				return right
			}
		}
		return right
	})
}
