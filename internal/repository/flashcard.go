package repository

import (
	"context"
	"time"

	"github.com/lexigrad/lexigrad/internal/entity"
)

// UpsertMode says whether an upsert created a new card or merged into an
// existing one.
type UpsertMode string

const (
	UpsertCreated UpsertMode = "created"
	UpsertUpdated UpsertMode = "updated"
)

// UpsertResult reports the outcome of a natural-key upsert.
type UpsertResult struct {
	Mode       UpsertMode
	Card       entity.Flashcard
	Collection []entity.Flashcard
}

// FlashcardStore abstracts persistence for the flashcard collection to keep
// usecases storage agnostic. Load never fails on corrupt data; it falls back
// to an empty collection.
type FlashcardStore interface {
	Load(ctx context.Context) ([]entity.Flashcard, error)
	Save(ctx context.Context, cards []entity.Flashcard) error
	// Upsert merges by natural key (termKey, language, schema), preserving
	// the existing card's id, creation time, due instant and stats; a card
	// with no natural-key match is prepended as new.
	Upsert(ctx context.Context, card entity.Flashcard) (*UpsertResult, error)
	Remove(ctx context.Context, id string) ([]entity.Flashcard, error)
	// DueSet filters to due cards, ordered soonest first with
	// never-reviewed cards at the front.
	DueSet(ctx context.Context, now time.Time) ([]entity.Flashcard, error)
}

// ScriptProgressStore abstracts persistence for the alphabet trainer's
// per-character review states.
type ScriptProgressStore interface {
	Load(ctx context.Context) (entity.ScriptProgress, error)
	Save(ctx context.Context, progress entity.ScriptProgress) error
	Upsert(ctx context.Context, key entity.ScriptKey, state entity.ReviewState) (entity.ScriptProgress, error)
	// ResetTab discards every character belonging to a language+tab
	// namespace.
	ResetTab(ctx context.Context, language entity.Language, tabID string) (entity.ScriptProgress, error)
}
