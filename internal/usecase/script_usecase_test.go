package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	adapter "github.com/lexigrad/lexigrad/internal/adapter/repository"
	"github.com/lexigrad/lexigrad/internal/entity"
	"github.com/lexigrad/lexigrad/internal/infrastructure/storage"
)

var hiragana = []string{"あ", "い", "う"}

func newScriptFixture() *scriptUsecase {
	store := adapter.NewScriptProgressStore(storage.NewMemoryKV(), "", quietLogger())
	return &scriptUsecase{store: store, clock: func() time.Time { return fixedNow }}
}

func TestScriptReviewFreshCharacter(t *testing.T) {
	uc := newScriptFixture()
	key := entity.ScriptKey{Language: entity.LanguageJapanese, TabID: "hiragana", Character: "あ"}

	state, err := uc.Review(context.Background(), key, entity.RatingGood)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if state.Stats.Repetitions != 1 || state.Stats.IntervalDays != 1 {
		t.Fatalf("unexpected stats: %+v", state.Stats)
	}
	if state.DueAt != entity.TimestampOf(fixedNow)+86400000 {
		t.Fatalf("unexpected dueAt: %d", state.DueAt)
	}
}

func TestScriptCharacterState(t *testing.T) {
	uc := newScriptFixture()
	ctx := context.Background()
	key := entity.ScriptKey{Language: entity.LanguageJapanese, TabID: "hiragana", Character: "あ"}

	if _, err := uc.CharacterState(ctx, key); !errors.Is(err, entity.ErrCharacterNotFound) {
		t.Fatalf("expected ErrCharacterNotFound, got %v", err)
	}

	if _, err := uc.Review(ctx, key, entity.RatingGood); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	state, err := uc.CharacterState(ctx, key)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if state.Stats.Repetitions != 1 {
		t.Fatalf("unexpected state: %+v", state)
	}
}

func TestScriptDueCharacters(t *testing.T) {
	uc := newScriptFixture()
	ctx := context.Background()
	key := entity.ScriptKey{Language: entity.LanguageJapanese, TabID: "hiragana", Character: "あ"}

	if _, err := uc.Review(ctx, key, entity.RatingEasy); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	due, err := uc.DueCharacters(ctx, entity.LanguageJapanese, "hiragana", hiragana)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	// あ was pushed out two days; the unseen characters remain due.
	if len(due) != 2 || due[0] != "い" || due[1] != "う" {
		t.Fatalf("unexpected due set: %v", due)
	}
}

func TestScriptNextDueAtZeroWithUnseenCharacter(t *testing.T) {
	uc := newScriptFixture()
	ctx := context.Background()
	key := entity.ScriptKey{Language: entity.LanguageJapanese, TabID: "hiragana", Character: "あ"}

	if _, err := uc.Review(ctx, key, entity.RatingEasy); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	next, err := uc.NextDueAt(ctx, entity.LanguageJapanese, "hiragana", hiragana)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if !next.IsZero() {
		t.Fatalf("unseen characters mean due now; got %d", next)
	}
}

func TestScriptSummary(t *testing.T) {
	uc := newScriptFixture()
	ctx := context.Background()

	// あ reviewed enough to master, い seen once, う untouched.
	aKey := entity.ScriptKey{Language: entity.LanguageJapanese, TabID: "hiragana", Character: "あ"}
	for range 5 {
		if _, err := uc.Review(ctx, aKey, entity.RatingGood); err != nil {
			t.Fatalf("unexpected err: %v", err)
		}
	}
	iKey := entity.ScriptKey{Language: entity.LanguageJapanese, TabID: "hiragana", Character: "い"}
	if _, err := uc.Review(ctx, iKey, entity.RatingGood); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	summary, err := uc.Summary(ctx, entity.LanguageJapanese, "hiragana", hiragana)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	want := ScriptSummary{Total: 3, Unseen: 1, Learning: 1, Mastered: 1}
	if *summary != want {
		t.Fatalf("got %+v, want %+v", *summary, want)
	}
}

func TestScriptResetTab(t *testing.T) {
	uc := newScriptFixture()
	ctx := context.Background()

	hira := entity.ScriptKey{Language: entity.LanguageJapanese, TabID: "hiragana", Character: "あ"}
	kata := entity.ScriptKey{Language: entity.LanguageJapanese, TabID: "katakana", Character: "ア"}
	if _, err := uc.Review(ctx, hira, entity.RatingGood); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if _, err := uc.Review(ctx, kata, entity.RatingGood); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	if err := uc.ResetTab(ctx, entity.LanguageJapanese, "hiragana"); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}

	due, err := uc.DueCharacters(ctx, entity.LanguageJapanese, "hiragana", []string{"あ"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(due) != 1 {
		t.Fatal("reset character should be due again")
	}

	kataDue, err := uc.DueCharacters(ctx, entity.LanguageJapanese, "katakana", []string{"ア"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(kataDue) != 0 {
		t.Fatal("reset must not touch other tabs")
	}
}
