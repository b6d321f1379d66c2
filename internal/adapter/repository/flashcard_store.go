package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/lexigrad/lexigrad/internal/entity"
	"github.com/lexigrad/lexigrad/internal/repository"
	"github.com/lexigrad/lexigrad/internal/srs"
)

// DefaultFlashcardsKey is the storage key the reader UI keeps its flashcard
// collection under.
const DefaultFlashcardsKey = "flashcards"

type flashcardStore struct {
	kv     repository.KV
	key    string
	logger logrus.FieldLogger
}

// NewFlashcardStore builds a FlashcardStore persisting the whole collection
// as one JSON blob under key.
func NewFlashcardStore(kv repository.KV, key string, logger logrus.FieldLogger) repository.FlashcardStore {
	if key == "" {
		key = DefaultFlashcardsKey
	}
	return &flashcardStore{kv: kv, key: key, logger: logger}
}

func (s *flashcardStore) Load(ctx context.Context) ([]entity.Flashcard, error) {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if errors.Is(err, repository.ErrKeyNotFound) {
			return []entity.Flashcard{}, nil
		}
		return nil, fmt.Errorf("load flashcards: %w", err)
	}

	var cards []entity.Flashcard
	if err := json.Unmarshal(raw, &cards); err != nil {
		// Corrupt blobs are recovered from, not surfaced. The card data
		// is re-creatable from the dictionary.
		s.logger.WithError(err).WithField("key", s.key).Warn("discarding corrupt flashcard blob")
		return []entity.Flashcard{}, nil
	}
	if cards == nil {
		cards = []entity.Flashcard{}
	}
	return cards, nil
}

func (s *flashcardStore) Save(ctx context.Context, cards []entity.Flashcard) error {
	raw, err := json.Marshal(cards)
	if err != nil {
		return fmt.Errorf("encode flashcards: %w", err)
	}
	if err := s.kv.Set(ctx, s.key, raw); err != nil {
		return fmt.Errorf("save flashcards: %w", err)
	}
	return nil
}

func (s *flashcardStore) Upsert(ctx context.Context, card entity.Flashcard) (*repository.UpsertResult, error) {
	cards, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	key := card.Key()
	idx := -1
	for i := range cards {
		if cards[i].Key() == key {
			idx = i
			break
		}
	}

	result := &repository.UpsertResult{}
	if idx >= 0 {
		merged := mergeFlashcard(cards[idx], card)
		cards[idx] = merged
		result.Mode = repository.UpsertUpdated
		result.Card = merged
	} else {
		cards = append([]entity.Flashcard{card}, cards...)
		result.Mode = repository.UpsertCreated
		result.Card = card
	}

	if err := s.Save(ctx, cards); err != nil {
		return nil, err
	}
	result.Collection = cards
	return result, nil
}

// mergeFlashcard folds a re-created card into its stored counterpart: the
// incoming display fields win where present, while identity, creation time,
// review schedule and stats stay with the stored card.
func mergeFlashcard(existing, incoming entity.Flashcard) entity.Flashcard {
	merged := incoming
	merged.ID = existing.ID
	merged.CreatedAt = existing.CreatedAt
	merged.Stats = existing.Stats
	if !existing.DueAt.IsZero() {
		merged.DueAt = existing.DueAt
	}

	if merged.Term == "" {
		merged.Term = existing.Term
	}
	if merged.RealScript == "" {
		merged.RealScript = existing.RealScript
	}
	if merged.Romanization == "" {
		merged.Romanization = existing.Romanization
	}
	if merged.IPA == "" {
		merged.IPA = existing.IPA
	}
	if merged.Translation == "" {
		merged.Translation = existing.Translation
	}
	if merged.GrammarNote == "" {
		merged.GrammarNote = existing.GrammarNote
	}
	if merged.ProjectID == "" {
		merged.ProjectID = existing.ProjectID
	}
	if merged.FirstChapter == nil {
		merged.FirstChapter = existing.FirstChapter
	}
	if merged.Substitution == nil {
		merged.Substitution = existing.Substitution
	}
	return merged
}

func (s *flashcardStore) Remove(ctx context.Context, id string) ([]entity.Flashcard, error) {
	cards, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	remaining := lo.Filter(cards, func(c entity.Flashcard, _ int) bool { return c.ID != id })
	if len(remaining) == len(cards) {
		return cards, nil
	}
	if err := s.Save(ctx, remaining); err != nil {
		return nil, err
	}
	return remaining, nil
}

func (s *flashcardStore) DueSet(ctx context.Context, now time.Time) ([]entity.Flashcard, error) {
	cards, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	due := lo.Filter(cards, func(c entity.Flashcard, _ int) bool { return srs.IsDue(c.DueAt, now) })
	// Zero DueAt sorts first: never-reviewed cards lead the queue.
	sort.SliceStable(due, func(i, j int) bool { return due[i].DueAt < due[j].DueAt })
	return due, nil
}
