// Package annotation parses the inline {{display|key|native?}} vocabulary
// markup embedded in transformed chapter text. The markup is produced by an
// LLM and is not guaranteed well-formed, so the parser is tolerant by
// construction: anything it cannot recognize stays literal text, and nothing
// in this package can fail.
package annotation

import (
	"regexp"
	"strings"

	"github.com/lexigrad/lexigrad/internal/entity"
)

// annotationRE accepts the canonical {{display|key}} / {{display|key|native}}
// forms plus the malformed variants the generator occasionally emits: a stray
// "}" before the key or native part ({{display|}key}) and a missing closing
// brace. Groups: display (no "|"), key (no "|" or "}"), optional native
// (no "}").
var annotationRE = regexp.MustCompile(`\{\{([^|]+)\|\}?([^|}]+)(?:\|\}?([^}]*))?\}\}?`)

// Parse splits annotated text into a sequence of literal-text and term
// segments. Malformed annotation-like runs fall through as literal text.
func Parse(text string) []entity.AnnotationSegment {
	if !strings.Contains(text, "{{") {
		if text == "" {
			return nil
		}
		return []entity.AnnotationSegment{{Kind: entity.SegmentText, Content: text}}
	}

	var segments []entity.AnnotationSegment
	pos := 0
	for _, m := range annotationRE.FindAllStringSubmatchIndex(text, -1) {
		display := strings.TrimSpace(text[m[2]:m[3]])
		key := CleanToken(text[m[4]:m[5]])
		native := ""
		if m[6] >= 0 {
			native = CleanToken(text[m[6]:m[7]])
		}

		if display == "" || key == "" {
			// Not a usable reference; keep the raw run as prose.
			continue
		}

		if m[0] > pos {
			segments = append(segments, entity.AnnotationSegment{Kind: entity.SegmentText, Content: text[pos:m[0]]})
		}
		segments = append(segments, entity.AnnotationSegment{
			Kind:          entity.SegmentTerm,
			Display:       display,
			Key:           entity.NormalizeWordToken(key),
			NativeDisplay: native,
		})
		pos = m[1]
	}
	if pos < len(text) {
		segments = append(segments, entity.AnnotationSegment{Kind: entity.SegmentText, Content: text[pos:]})
	}
	return segments
}

// Strip removes all annotation markup, leaving the reader-visible text.
func Strip(text string) string {
	segments := Parse(text)
	if len(segments) == 1 && segments[0].Kind == entity.SegmentText {
		return segments[0].Content
	}
	var b strings.Builder
	b.Grow(len(text))
	for _, seg := range segments {
		b.WriteString(seg.Text())
	}
	return b.String()
}

// Canonicalize rewrites tolerant annotation variants to the clean
// {{display|key}} / {{display|key|native}} form. Runs whose display or key
// collapses to nothing are replaced by whichever part survived.
func Canonicalize(text string) string {
	if !strings.Contains(text, "{{") {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	pos := 0
	for _, m := range annotationRE.FindAllStringSubmatchIndex(text, -1) {
		b.WriteString(text[pos:m[0]])
		pos = m[1]

		display := strings.TrimSpace(text[m[2]:m[3]])
		key := CleanToken(text[m[4]:m[5]])
		native := ""
		if m[6] >= 0 {
			native = CleanToken(text[m[6]:m[7]])
		}

		switch {
		case display == "" || key == "":
			if display != "" {
				b.WriteString(display)
			} else {
				b.WriteString(key)
			}
		case native != "":
			b.WriteString("{{" + display + "|" + key + "|" + native + "}}")
		default:
			b.WriteString("{{" + display + "|" + key + "}}")
		}
	}
	b.WriteString(text[pos:])
	return b.String()
}

// CleanToken strips stray brace and pipe characters from the edges of an
// extracted key or native token.
func CleanToken(value string) string {
	token := strings.TrimSpace(value)
	token = strings.TrimSpace(strings.Trim(token, "{}"))
	token = strings.TrimSpace(strings.TrimPrefix(token, "|"))
	token = strings.TrimSpace(strings.TrimSuffix(token, "|"))
	return token
}
