package usecase

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/lexigrad/lexigrad/internal/entity"
	"github.com/lexigrad/lexigrad/internal/repository"
	"github.com/lexigrad/lexigrad/internal/srs"
)

// ScriptSummary groups a tab's characters by mastery for display.
type ScriptSummary struct {
	Total    int
	Unseen   int
	Learning int
	Mastered int
}

// ScriptUsecase drives the alphabet trainer: per-character reviews over a
// language+tab namespace of script characters.
type ScriptUsecase interface {
	Review(ctx context.Context, key entity.ScriptKey, rating entity.Rating) (*entity.ReviewState, error)
	// CharacterState returns the recorded state for one character, or
	// ErrCharacterNotFound when it has never been reviewed.
	CharacterState(ctx context.Context, key entity.ScriptKey) (*entity.ReviewState, error)
	// DueCharacters filters the tab's character set to those due now.
	// Characters with no recorded state are due by definition.
	DueCharacters(ctx context.Context, language entity.Language, tabID string, characters []string) ([]string, error)
	NextDueAt(ctx context.Context, language entity.Language, tabID string, characters []string) (entity.Timestamp, error)
	Summary(ctx context.Context, language entity.Language, tabID string, characters []string) (*ScriptSummary, error)
	ResetTab(ctx context.Context, language entity.Language, tabID string) error
}

// NewScriptUsecase wires the store with default behaviour.
func NewScriptUsecase(store repository.ScriptProgressStore) ScriptUsecase {
	return &scriptUsecase{store: store, clock: time.Now}
}

type scriptUsecase struct {
	store repository.ScriptProgressStore
	clock func() time.Time
}

func (u *scriptUsecase) Review(ctx context.Context, key entity.ScriptKey, rating entity.Rating) (*entity.ReviewState, error) {
	progress, err := u.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	// Absent characters start from the zero state.
	state := progress[key.Encode()]
	stats, dueAt := srs.Schedule(state.Stats, rating, u.clock())
	state.Stats = stats
	state.DueAt = dueAt

	if _, err := u.store.Upsert(ctx, key, state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (u *scriptUsecase) CharacterState(ctx context.Context, key entity.ScriptKey) (*entity.ReviewState, error) {
	progress, err := u.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	state, ok := progress[key.Encode()]
	if !ok {
		return nil, entity.ErrCharacterNotFound
	}
	return &state, nil
}

func (u *scriptUsecase) DueCharacters(ctx context.Context, language entity.Language, tabID string, characters []string) ([]string, error) {
	progress, err := u.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	now := u.clock()
	return lo.Filter(characters, func(char string, _ int) bool {
		state := progress[entity.ScriptKey{Language: language, TabID: tabID, Character: char}.Encode()]
		return srs.IsDue(state.DueAt, now)
	}), nil
}

func (u *scriptUsecase) NextDueAt(ctx context.Context, language entity.Language, tabID string, characters []string) (entity.Timestamp, error) {
	if len(characters) == 0 {
		return 0, nil
	}
	progress, err := u.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	states := lo.Map(characters, func(char string, _ int) entity.ReviewState {
		return progress[entity.ScriptKey{Language: language, TabID: tabID, Character: char}.Encode()]
	})
	return srs.NextDueAt(states), nil
}

func (u *scriptUsecase) Summary(ctx context.Context, language entity.Language, tabID string, characters []string) (*ScriptSummary, error) {
	progress, err := u.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	summary := &ScriptSummary{Total: len(characters)}
	for _, char := range characters {
		state := progress[entity.ScriptKey{Language: language, TabID: tabID, Character: char}.Encode()]
		switch srs.MasteryOf(state) {
		case entity.MasteryMastered:
			summary.Mastered++
		case entity.MasteryLearning:
			summary.Learning++
		default:
			summary.Unseen++
		}
	}
	return summary, nil
}

func (u *scriptUsecase) ResetTab(ctx context.Context, language entity.Language, tabID string) error {
	_, err := u.store.ResetTab(ctx, language, tabID)
	return err
}
