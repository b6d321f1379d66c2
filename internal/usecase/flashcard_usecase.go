package usecase

import (
	"context"
	"time"

	"github.com/samber/lo"

	"github.com/lexigrad/lexigrad/internal/annotation"
	"github.com/lexigrad/lexigrad/internal/entity"
	"github.com/lexigrad/lexigrad/internal/repository"
	"github.com/lexigrad/lexigrad/internal/srs"
	"github.com/lexigrad/lexigrad/internal/substitution"
	"github.com/lexigrad/lexigrad/pkg/filterexpr"
)

// FlashcardUsecase encapsulates the review and card-creation flows the reader
// UI drives.
type FlashcardUsecase interface {
	ListFlashcards(ctx context.Context) ([]entity.Flashcard, error)
	// SearchFlashcards narrows the collection with an AIP-160 style filter
	// over card attributes and orders it with an order_by clause. Empty
	// arguments mean "everything, newest first".
	SearchFlashcards(ctx context.Context, filter, orderBy string) ([]entity.Flashcard, error)
	ListDue(ctx context.Context) ([]entity.Flashcard, error)
	NextDueAt(ctx context.Context) (entity.Timestamp, error)
	Review(ctx context.Context, id string, rating entity.Rating) (*entity.Flashcard, error)
	// PromoteTerm turns a dictionary term into a flashcard, synthesizing the
	// substitution exercise from the chapter when the schema asks for one.
	// Re-promoting an existing term merges by natural key instead of
	// duplicating.
	PromoteTerm(ctx context.Context, chapter entity.Chapter, term entity.DictionaryTerm, schema entity.CardSchema) (*repository.UpsertResult, error)
	CreateCard(ctx context.Context, card entity.Flashcard) (*repository.UpsertResult, error)
	DeleteCard(ctx context.Context, id string) error
}

// NewFlashcardUsecase wires the store with default behaviour.
func NewFlashcardUsecase(store repository.FlashcardStore) FlashcardUsecase {
	return &flashcardUsecase{store: store, clock: time.Now}
}

type flashcardUsecase struct {
	store repository.FlashcardStore
	clock func() time.Time
}

func (u *flashcardUsecase) ListFlashcards(ctx context.Context) ([]entity.Flashcard, error) {
	return u.store.Load(ctx)
}

var cardFilterSchema = filterexpr.Schema{
	"term":        filterexpr.KindString,
	"term_key":    filterexpr.KindString,
	"language":    filterexpr.KindString,
	"schema":      filterexpr.KindString,
	"project_id":  filterexpr.KindString,
	"repetitions": filterexpr.KindNumber,
	"interval":    filterexpr.KindNumber,
	"ease":        filterexpr.KindNumber,
	"due_at":      filterexpr.KindTimestamp,
	"created_at":  filterexpr.KindTimestamp,
}

var cardOrderSchema = filterexpr.OrderSchema{
	Default:     "created_at",
	DefaultDesc: true,
	Keys: map[string]struct{}{
		"term":        {},
		"repetitions": {},
		"interval":    {},
		"ease":        {},
		"due_at":      {},
		"created_at":  {},
	},
}

func cardVars(c entity.Flashcard) map[string]any {
	return map[string]any{
		"term":        c.Term,
		"term_key":    c.TermKey,
		"language":    c.Language.Code(),
		"schema":      string(c.Schema),
		"project_id":  c.ProjectID,
		"repetitions": float64(c.Stats.Repetitions),
		"interval":    float64(c.Stats.IntervalDays),
		"ease":        c.Stats.Ease,
		"due_at":      float64(c.DueAt),
		"created_at":  float64(c.CreatedAt),
	}
}

func (u *flashcardUsecase) SearchFlashcards(ctx context.Context, filter, orderBy string) ([]entity.Flashcard, error) {
	pred, err := filterexpr.Compile(filter, cardFilterSchema)
	if err != nil {
		return nil, err
	}
	keys, err := filterexpr.ParseOrderBy(orderBy, cardOrderSchema)
	if err != nil {
		return nil, err
	}

	cards, err := u.store.Load(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]entity.Flashcard, 0, len(cards))
	for _, card := range cards {
		ok, err := pred.Match(cardVars(card))
		if err != nil {
			return nil, err
		}
		if ok {
			matched = append(matched, card)
		}
	}

	filterexpr.Sort(matched, keys, cardVars)
	return matched, nil
}

func (u *flashcardUsecase) ListDue(ctx context.Context) ([]entity.Flashcard, error) {
	return u.store.DueSet(ctx, u.clock())
}

func (u *flashcardUsecase) NextDueAt(ctx context.Context) (entity.Timestamp, error) {
	cards, err := u.store.Load(ctx)
	if err != nil {
		return 0, err
	}
	states := lo.Map(cards, func(c entity.Flashcard, _ int) entity.ReviewState { return c.ReviewState })
	return srs.NextDueAt(states), nil
}

func (u *flashcardUsecase) Review(ctx context.Context, id string, rating entity.Rating) (*entity.Flashcard, error) {
	cards, err := u.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range cards {
		if cards[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, entity.ErrFlashcardNotFound
	}

	stats, dueAt := srs.Schedule(cards[idx].Stats, rating, u.clock())
	cards[idx].Stats = stats
	cards[idx].DueAt = dueAt

	if err := u.store.Save(ctx, cards); err != nil {
		return nil, err
	}
	reviewed := cards[idx]
	return &reviewed, nil
}

func (u *flashcardUsecase) PromoteTerm(ctx context.Context, chapter entity.Chapter, term entity.DictionaryTerm, schema entity.CardSchema) (*repository.UpsertResult, error) {
	key := term.Key()
	if key == "" {
		return nil, entity.ErrInvalidCardTerm
	}

	card := entity.Flashcard{
		TermKey:      key,
		Language:     term.Language,
		Schema:       schema,
		Term:         term.Term,
		RealScript:   term.NativeScript,
		Romanization: term.Pronunciation,
		Translation:  term.Translation,
		GrammarNote:  term.GrammarNote,
		ProjectID:    term.ProjectID,
		FirstChapter: term.FirstChapter,
	}
	enrichFromFootnotes(&card, chapter.Footnotes)

	if schema == entity.SchemaSubstitution {
		sub := substitution.Build(substitution.Input{
			SourceParagraphs:      chapter.SourceParagraphs(),
			TransformedParagraphs: normalizeContent(chapter.ContentParagraphs()),
			Footnotes:             chapter.Footnotes,
			TermKey:               key,
			TargetDisplay:         card.Term,
			Translation:           card.Translation,
		})
		card.Substitution = &entity.Substitution{
			FrontSentence:     sub.FrontSentence,
			CorrectedSentence: sub.CorrectedSentence,
			Answer:            sub.Answer,
			Prompt:            sub.Prompt,
		}
	}

	card.Normalize(u.clock())
	return u.store.Upsert(ctx, card)
}

// enrichFromFootnotes backfills display fields the dictionary entry lacks
// from the chapter's footnote for the same term. The footnote carries the
// contextually correct forms the transformation produced.
func enrichFromFootnotes(card *entity.Flashcard, footnotes []entity.Footnote) {
	for _, fn := range footnotes {
		if !fn.References(card.TermKey, card.Term) {
			continue
		}
		if card.RealScript == "" {
			card.RealScript = fn.NativeScript
		}
		if card.Romanization == "" {
			card.Romanization = fn.Pronunciation
		}
		if card.Translation == "" {
			card.Translation = fn.Translation
		}
		if card.GrammarNote == "" {
			card.GrammarNote = fn.GrammarNote
		}
		return
	}
}

// normalizeContent repairs the two classes of generator damage before the
// paragraphs reach the builder: leaked serialized structure and malformed
// annotation markup.
func normalizeContent(paragraphs []string) []string {
	return lo.Map(paragraphs, func(p string, _ int) string {
		return annotation.Canonicalize(annotation.NormalizeEmbeddedParagraph(p))
	})
}

func (u *flashcardUsecase) CreateCard(ctx context.Context, card entity.Flashcard) (*repository.UpsertResult, error) {
	if entity.NormalizeWordToken(card.Term) == "" && entity.NormalizeWordToken(card.TermKey) == "" {
		return nil, entity.ErrInvalidCardTerm
	}
	card.Normalize(u.clock())
	return u.store.Upsert(ctx, card)
}

func (u *flashcardUsecase) DeleteCard(ctx context.Context, id string) error {
	_, err := u.store.Remove(ctx, id)
	return err
}
