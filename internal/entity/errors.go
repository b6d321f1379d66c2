package entity

import "errors"

// Domain errors for flashcards and script progress.
var (
	ErrFlashcardNotFound = errors.New("flashcard not found")
	ErrInvalidCardTerm   = errors.New("invalid card term")
	ErrCharacterNotFound = errors.New("script character not found")
)
