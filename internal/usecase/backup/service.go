// Package backup moves the review data in and out of the engine as a
// versioned, checksummed JSON document, so users can carry their progress
// between devices and storage backends.
package backup

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/lexigrad/lexigrad/internal/entity"
	"github.com/lexigrad/lexigrad/internal/repository"
)

const formatVersion = 1

var (
	ErrUnsupportedVersion = errors.New("backup: unsupported format version")
	ErrChecksumMismatch   = errors.New("backup: checksum mismatch")
)

// Service exports and imports both review collections through their stores.
type Service struct {
	flashcards repository.FlashcardStore
	scripts    repository.ScriptProgressStore
	clock      func() time.Time
}

func NewService(flashcards repository.FlashcardStore, scripts repository.ScriptProgressStore) *Service {
	return &Service{flashcards: flashcards, scripts: scripts, clock: time.Now}
}

type payload struct {
	Flashcards     []entity.Flashcard    `json:"flashcards"`
	ScriptProgress entity.ScriptProgress `json:"scriptProgress"`
}

type envelope struct {
	Version    int              `json:"version"`
	ExportedAt entity.Timestamp `json:"exportedAt"`
	Checksum   string           `json:"checksum"`
	Payload    json.RawMessage  `json:"payload"`
}

// Export writes the current state of both collections to w.
func (s *Service) Export(ctx context.Context, w io.Writer) error {
	cards, err := s.flashcards.Load(ctx)
	if err != nil {
		return fmt.Errorf("backup: load flashcards: %w", err)
	}
	progress, err := s.scripts.Load(ctx)
	if err != nil {
		return fmt.Errorf("backup: load script progress: %w", err)
	}

	raw, err := json.Marshal(payload{Flashcards: cards, ScriptProgress: progress})
	if err != nil {
		return fmt.Errorf("backup: encode payload: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(envelope{
		Version:    formatVersion,
		ExportedAt: entity.TimestampOf(s.clock()),
		Checksum:   checksum(raw),
		Payload:    raw,
	})
}

// ImportOption adjusts how Import applies the document.
type ImportOption func(*importConfig)

type importConfig struct {
	merge bool
}

// WithMerge folds the document into the existing collections instead of
// replacing them. Flashcards merge by natural key; script characters keep
// whichever state was reviewed more recently.
func WithMerge() ImportOption {
	return func(cfg *importConfig) { cfg.merge = true }
}

// Import reads a document produced by Export and applies it. The checksum
// guards against truncated or corrupted transfers; a failed verification
// leaves the stores untouched.
func (s *Service) Import(ctx context.Context, r io.Reader, opts ...ImportOption) error {
	var cfg importConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return fmt.Errorf("backup: decode document: %w", err)
	}
	if env.Version != formatVersion {
		return fmt.Errorf("%w: %d", ErrUnsupportedVersion, env.Version)
	}
	if checksum(env.Payload) != env.Checksum {
		return ErrChecksumMismatch
	}

	var doc payload
	if err := json.Unmarshal(env.Payload, &doc); err != nil {
		return fmt.Errorf("backup: decode payload: %w", err)
	}

	if cfg.merge {
		return s.merge(ctx, doc)
	}
	return s.replace(ctx, doc)
}

func (s *Service) replace(ctx context.Context, doc payload) error {
	if err := s.flashcards.Save(ctx, doc.Flashcards); err != nil {
		return fmt.Errorf("backup: save flashcards: %w", err)
	}
	if doc.ScriptProgress == nil {
		doc.ScriptProgress = entity.ScriptProgress{}
	}
	if err := s.scripts.Save(ctx, doc.ScriptProgress); err != nil {
		return fmt.Errorf("backup: save script progress: %w", err)
	}
	return nil
}

func (s *Service) merge(ctx context.Context, doc payload) error {
	for _, card := range doc.Flashcards {
		if _, err := s.flashcards.Upsert(ctx, card); err != nil {
			return fmt.Errorf("backup: merge flashcard %s: %w", card.TermKey, err)
		}
	}

	existing, err := s.scripts.Load(ctx)
	if err != nil {
		return fmt.Errorf("backup: load script progress: %w", err)
	}
	for encoded, state := range doc.ScriptProgress {
		key, ok := entity.ParseScriptKey(encoded)
		if !ok {
			continue
		}
		if current, ok := existing[encoded]; ok &&
			state.Stats.LastReviewedAt.Before(current.Stats.LastReviewedAt) {
			continue
		}
		if _, err := s.scripts.Upsert(ctx, key, state); err != nil {
			return fmt.Errorf("backup: merge script state %s: %w", encoded, err)
		}
	}
	return nil
}

func checksum(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
