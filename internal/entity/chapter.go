package entity

import "strings"

// Chapter is the external input shape produced by the text-transformation
// service: the original source text, the partially transformed content with
// inline annotations, and per-term footnotes.
type Chapter struct {
	SourceText string     `json:"source_text"`
	Content    string     `json:"content"`
	Footnotes  []Footnote `json:"footnotes"`
}

// SourceParagraphs splits the source text on blank lines.
func (c Chapter) SourceParagraphs() []string {
	return splitParagraphs(c.SourceText)
}

// ContentParagraphs splits the transformed content on blank lines. Paragraphs
// may contain inline {{display|key|native?}} annotations.
func (c Chapter) ContentParagraphs() []string {
	return splitParagraphs(c.Content)
}

func splitParagraphs(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	parts := strings.Split(text, "\n\n")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// Footnote is the transformation service's per-term metadata attached to a
// chapter.
type Footnote struct {
	Term           string `json:"term"`
	NativeScript   string `json:"native_script,omitempty"`
	ParagraphIndex int    `json:"paragraph_index"`
	Translation    string `json:"translation,omitempty"`
	GrammarNote    string `json:"grammar_note,omitempty"`
	Pronunciation  string `json:"pronunciation,omitempty"`
}

// References reports whether the footnote is about the given term, matching
// either the lookup key or a display form case-insensitively.
func (f Footnote) References(termKey, display string) bool {
	term := NormalizeWordToken(f.Term)
	if term == "" {
		return false
	}
	if termKey != "" && term == NormalizeWordToken(termKey) {
		return true
	}
	return display != "" && term == NormalizeWordToken(display)
}

// DictionaryTerm is the external input shape for a vocabulary entry being
// promoted to a flashcard.
type DictionaryTerm struct {
	Term          string   `json:"term"`
	TermKey       string   `json:"term_key"`
	NativeScript  string   `json:"native_script,omitempty"`
	Translation   string   `json:"translation"`
	Pronunciation string   `json:"pronunciation,omitempty"`
	GrammarNote   string   `json:"grammar_note,omitempty"`
	Language      Language `json:"language"`
	ProjectID     string   `json:"project_id,omitempty"`
	FirstChapter  *int     `json:"first_chapter,omitempty"`
}

// Key returns the term's lookup key, deriving it from the display term when
// the upstream service left it blank.
func (t DictionaryTerm) Key() string {
	if k := NormalizeWordToken(t.TermKey); k != "" {
		return k
	}
	return NormalizeWordToken(t.Term)
}
