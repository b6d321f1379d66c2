package substitution

import (
	"regexp"
	"strings"
	"unicode"
)

// sentenceRE captures one sentence: anything up to a run of terminators,
// keeping closing quotes or brackets that trail the terminator with the
// sentence they end.
var sentenceRE = regexp.MustCompile(`[^.!?…]+[.!?…]+["'”’»)\]]*`)

// wordRE matches word-like runs, including apostrophes inside contractions.
var wordRE = regexp.MustCompile(`[\p{L}\p{M}\p{N}']+`)

// SplitSentences splits a paragraph on sentence-ending punctuation. Text with
// no terminator at all comes back as a single sentence; a trailing fragment
// after the last terminator is kept as its own sentence.
func SplitSentences(paragraph string) []string {
	matches := sentenceRE.FindAllStringIndex(paragraph, -1)
	if len(matches) == 0 {
		if trimmed := strings.TrimSpace(paragraph); trimmed != "" {
			return []string{trimmed}
		}
		return nil
	}

	var sentences []string
	end := 0
	for _, m := range matches {
		if s := strings.TrimSpace(paragraph[m[0]:m[1]]); s != "" {
			sentences = append(sentences, s)
		}
		end = m[1]
	}
	if tail := strings.TrimSpace(paragraph[end:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

// wordTokens returns the word-like runs of a sentence in order.
func wordTokens(sentence string) []string {
	return wordRE.FindAllString(sentence, -1)
}

// containsWord reports whether phrase occurs in sentence on word boundaries,
// case-insensitively.
func containsWord(sentence, phrase string) bool {
	_, _, ok := findWord(sentence, phrase)
	return ok
}

// findWord locates the first word-boundary occurrence of phrase in sentence,
// case-insensitively, returning its byte offsets.
func findWord(sentence, phrase string) (int, int, bool) {
	phrase = strings.TrimSpace(phrase)
	if phrase == "" {
		return 0, 0, false
	}
	lowerSentence := strings.ToLower(sentence)
	lowerPhrase := strings.ToLower(phrase)

	from := 0
	for {
		idx := strings.Index(lowerSentence[from:], lowerPhrase)
		if idx < 0 {
			return 0, 0, false
		}
		start := from + idx
		end := start + len(lowerPhrase)
		if boundaryBefore(lowerSentence, start) && boundaryAfter(lowerSentence, end) {
			return start, end, true
		}
		from = start + 1
	}
}

// replaceWordOnce substitutes the first word-boundary occurrence of phrase
// with replacement, reporting whether a substitution happened.
func replaceWordOnce(sentence, phrase, replacement string) (string, bool) {
	start, end, ok := findWord(sentence, phrase)
	if !ok {
		return sentence, false
	}
	return sentence[:start] + replacement + sentence[end:], true
}

func boundaryBefore(s string, i int) bool {
	if i == 0 {
		return true
	}
	r := lastRune(s[:i])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func boundaryAfter(s string, i int) bool {
	if i >= len(s) {
		return true
	}
	r := firstRune(s[i:])
	return !unicode.IsLetter(r) && !unicode.IsDigit(r)
}

func firstRune(s string) rune {
	for _, r := range s {
		return r
	}
	return 0
}

func lastRune(s string) rune {
	var last rune
	for _, r := range s {
		last = r
	}
	return last
}
