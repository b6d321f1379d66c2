// Package substitution builds fill-in-the-blank flashcards from a chapter's
// transformed (annotated target-language) and source (English) paragraphs.
// The upstream text is LLM-generated and frequently misaligned or malformed,
// so every step here degrades to something renderable instead of failing:
// Build is total over its input domain.
package substitution

import (
	"fmt"
	"strings"

	"github.com/lexigrad/lexigrad/internal/annotation"
	"github.com/lexigrad/lexigrad/internal/entity"
)

// Input carries one chapter's aligned text plus the term being exercised.
type Input struct {
	// SourceParagraphs is the English side, TransformedParagraphs the
	// annotated target-language side. Indexes correspond when the upstream
	// generator kept alignment, which it does not always do.
	SourceParagraphs      []string
	TransformedParagraphs []string
	Footnotes             []entity.Footnote

	TermKey       string
	TargetDisplay string
	Translation   string
}

// Card is the substitution exercise body.
type Card struct {
	FrontSentence     string
	CorrectedSentence string
	Answer            string
	Prompt            string
}

// genericPrompt is used when no target token could be identified at all.
const genericPrompt = "Replace the marked word with English."

// Build produces an aligned sentence pair exercising one vocabulary term. It
// locates the term's sentence in the transformed text (annotations first,
// fuzzy token matching second), aligns the English sentence on the source
// side, derives a short English answer from the gloss, and assembles the
// prompt. Heuristic failures fall through to raw sentences and the literal
// gloss; Build never errors.
func Build(in Input) Card {
	loc := locateSentence(in)

	token := loc.token
	if token == "" && loc.found {
		if first, ok := firstAnnotatedToken(loc.sentence); ok {
			token = first
		}
	}
	if token == "" {
		token = strings.TrimSpace(in.TargetDisplay)
	}

	corrected := alignCorrected(in, loc)
	answer := DeriveAnswer(in.Translation, corrected)
	if answer == "" {
		answer = strings.TrimSpace(in.Translation)
	}
	corrected = CollapseSlashOptions(corrected, answer)

	front := buildFront(loc, corrected, answer, token)
	if front == "" && len(in.TransformedParagraphs) > 0 {
		front = strings.TrimSpace(annotation.Strip(in.TransformedParagraphs[0]))
	}

	prompt := genericPrompt
	if token != "" {
		prompt = fmt.Sprintf("Replace %q with English.", token)
	}

	return Card{
		FrontSentence:     front,
		CorrectedSentence: corrected,
		Answer:            answer,
		Prompt:            prompt,
	}
}

// location records where the target term's sentence was found.
type location struct {
	paraIdx  int
	sentIdx  int
	sentence string // raw, still annotated
	token    string // as it appears in the sentence; empty if never matched
	found    bool   // a sentence was selected at all
}

// locateSentence walks candidate paragraphs (footnote-referenced first, then
// paragraph 0, then everything else) looking for the sentence containing the
// term: first by annotation match, then by fuzzy token search over the
// plain-stripped sentence, finally settling for the first sentence available.
func locateSentence(in Input) location {
	paras := in.TransformedParagraphs
	if len(paras) == 0 {
		return location{}
	}
	order := candidateParagraphs(in)

	for _, pi := range order {
		for si, sent := range SplitSentences(paras[pi]) {
			if tok, ok := annotatedMatch(sent, in.TermKey, in.TargetDisplay); ok {
				return location{paraIdx: pi, sentIdx: si, sentence: sent, token: tok, found: true}
			}
		}
	}

	candidates := []string{in.TermKey, in.TargetDisplay}
	for _, pi := range order {
		for si, sent := range SplitSentences(paras[pi]) {
			if tok, ok := FuzzyFindToken(annotation.Strip(sent), candidates); ok {
				return location{paraIdx: pi, sentIdx: si, sentence: sent, token: tok, found: true}
			}
		}
	}

	for _, pi := range order {
		if sentences := SplitSentences(paras[pi]); len(sentences) > 0 {
			return location{paraIdx: pi, sentIdx: 0, sentence: sentences[0], found: true}
		}
	}
	return location{}
}

// candidateParagraphs orders transformed-paragraph indexes by likelihood of
// containing the term: paragraphs whose footnotes reference it, paragraph 0,
// then the rest in order.
func candidateParagraphs(in Input) []int {
	n := len(in.TransformedParagraphs)
	seen := make(map[int]bool, n)
	order := make([]int, 0, n)
	add := func(i int) {
		if i >= 0 && i < n && !seen[i] {
			seen[i] = true
			order = append(order, i)
		}
	}
	for _, fn := range in.Footnotes {
		if fn.References(in.TermKey, in.TargetDisplay) {
			add(fn.ParagraphIndex)
		}
	}
	add(0)
	for i := 0; i < n; i++ {
		add(i)
	}
	return order
}

// annotatedMatch scans a sentence's annotations for the term, preferring an
// exact key match over a display/native match. The returned token is the form
// that appears in the sentence, with an inflected native form taking priority
// over the display text.
func annotatedMatch(sentence, termKey, targetDisplay string) (string, bool) {
	key := entity.NormalizeWordToken(termKey)
	var terms []entity.AnnotationSegment
	for _, seg := range annotation.Parse(sentence) {
		if seg.Kind == entity.SegmentTerm {
			terms = append(terms, seg)
		}
	}
	if key != "" {
		for _, t := range terms {
			if t.Key == key {
				return sentenceToken(t), true
			}
		}
	}
	if display := strings.TrimSpace(targetDisplay); display != "" {
		for _, t := range terms {
			if strings.EqualFold(t.Display, display) || strings.EqualFold(t.NativeDisplay, display) {
				return sentenceToken(t), true
			}
		}
	}
	return "", false
}

// firstAnnotatedToken returns the token of the first annotated term in the
// sentence, if any.
func firstAnnotatedToken(sentence string) (string, bool) {
	for _, seg := range annotation.Parse(sentence) {
		if seg.Kind == entity.SegmentTerm {
			return sentenceToken(seg), true
		}
	}
	return "", false
}

func sentenceToken(seg entity.AnnotationSegment) string {
	if seg.NativeDisplay != "" {
		return seg.NativeDisplay
	}
	return seg.Display
}

// alignCorrected picks the English reference sentence: the same paragraph and
// sentence index on the source side when that alignment holds, otherwise the
// first source sentence containing one of the gloss candidates, otherwise the
// first sentence of the aligned paragraph.
func alignCorrected(in Input, loc location) string {
	sources := in.SourceParagraphs
	if len(sources) == 0 {
		return ""
	}
	if loc.found && loc.paraIdx < len(sources) {
		if sentences := SplitSentences(sources[loc.paraIdx]); loc.sentIdx < len(sentences) {
			return sentences[loc.sentIdx]
		}
	}

	candidates := glossCandidates(in.Translation)
	for _, para := range sources {
		for _, sentence := range SplitSentences(para) {
			for _, candidate := range candidates {
				if containsWord(sentence, candidate) {
					return sentence
				}
			}
		}
	}

	if sentences := SplitSentences(sources[0]); len(sentences) > 0 {
		return sentences[0]
	}
	return strings.TrimSpace(sources[0])
}

// buildFront renders the target-language front sentence. The directly
// extracted transformed sentence is used when it carries the token; when it
// looks like an un-glossed fragment, the corrected sentence with the answer
// swapped for the token is preferred.
func buildFront(loc location, corrected, answer, token string) string {
	direct := strings.TrimSpace(annotation.Strip(loc.sentence))
	if token != "" && answer != "" && looksFragmentary(direct, token) {
		if recon, ok := replaceWordOnce(corrected, answer, token); ok {
			return recon
		}
	}
	return direct
}

// looksFragmentary reports whether a front-sentence candidate is too mangled
// to show: empty, missing the target token, or shorter than three words.
func looksFragmentary(sentence, token string) bool {
	if sentence == "" {
		return true
	}
	if !strings.Contains(strings.ToLower(sentence), strings.ToLower(token)) {
		return true
	}
	return len(wordTokens(sentence)) < 3
}
