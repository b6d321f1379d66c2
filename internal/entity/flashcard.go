package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// CardSchema selects the prompt/answer direction of a flashcard.
type CardSchema string

const (
	// SchemaEnTarget prompts with English and expects the target-language term.
	SchemaEnTarget CardSchema = "en_target"
	// SchemaTargetEn prompts with the target script and expects English.
	SchemaTargetEn CardSchema = "target_en"
	// SchemaSubstitution prompts with a sentence containing the target word
	// and expects the English word it replaces.
	SchemaSubstitution CardSchema = "substitution"
)

// CardKey is the natural key used to dedup flashcards on creation. It is an
// explicit composite type rather than a joined string so that terms containing
// separator-like characters cannot collide.
type CardKey struct {
	TermKey  string
	Language Language
	Schema   CardSchema
}

// NormalizedCardKey lowercases and trims the term component.
func NormalizedCardKey(termKey string, language Language, schema CardSchema) CardKey {
	return CardKey{
		TermKey:  NormalizeWordToken(termKey),
		Language: language,
		Schema:   schema,
	}
}

// Substitution carries the fill-in-the-blank exercise body for substitution
// cards.
type Substitution struct {
	// FrontSentence is the target-language sentence with the word inline.
	FrontSentence string `json:"frontSentence"`
	// CorrectedSentence is the source-language reference sentence.
	CorrectedSentence string `json:"correctedSentence"`
	// Answer is the short English phrase the word substitutes for.
	Answer string `json:"answer"`
	// Prompt is the human-readable instruction naming the word to replace.
	Prompt string `json:"prompt"`
}

// Flashcard is one reviewable vocabulary card.
type Flashcard struct {
	ID       string     `json:"id"`
	TermKey  string     `json:"termKey"`
	Language Language   `json:"language"`
	Schema   CardSchema `json:"schema"`

	Term         string `json:"term"`
	RealScript   string `json:"realScript,omitempty"`
	Romanization string `json:"romanization,omitempty"`
	IPA          string `json:"ipa,omitempty"`
	Translation  string `json:"translation,omitempty"`
	GrammarNote  string `json:"grammarNote,omitempty"`

	// Provenance; empty/nil for manually created cards.
	ProjectID    string `json:"projectId,omitempty"`
	FirstChapter *int   `json:"firstChapter,omitempty"`

	// Present only when Schema is SchemaSubstitution.
	Substitution *Substitution `json:"substitution,omitempty"`

	CreatedAt Timestamp `json:"createdAt"`

	ReviewState
}

// Key returns the card's natural key.
func (c *Flashcard) Key() CardKey {
	return NormalizedCardKey(c.TermKey, c.Language, c.Schema)
}

// Normalize ensures defaults & constraints before persistence.
func (c *Flashcard) Normalize(now time.Time) {
	c.Term = strings.TrimSpace(c.Term)
	if c.TermKey == "" {
		c.TermKey = c.Term
	}
	c.TermKey = NormalizeWordToken(c.TermKey)
	if c.Language == "" {
		c.Language = LanguageEnglish
	}
	if c.Schema == "" {
		c.Schema = SchemaTargetEn
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = TimestampOf(now)
	}
}
