// Package srs implements the ease-based spaced-repetition scheduler shared by
// the vocabulary flashcards and the alphabet trainer. Every function is pure
// over its arguments; the caller supplies "now" so reviews stay deterministic.
package srs

import (
	"math"
	"time"

	"github.com/lexigrad/lexigrad/internal/entity"
)

const (
	// DefaultEase is the growth multiplier for an item that has never been
	// reviewed.
	DefaultEase = 2.5
	// MinEase is the floor the multiplier can never drop below.
	MinEase = 1.3

	// againDelay is how soon a failed item comes back.
	againDelay = 5 * time.Minute

	// day is the scheduling unit for non-failed reviews.
	day = 24 * time.Hour

	// masteredIntervalDays is the interval at which an item counts as
	// mastered for display grouping.
	masteredIntervalDays = 7
)

// Schedule maps (prior stats, rating) to the stats and due instant after one
// review. Unrecognized ratings are graded as "good" per entity.RatingFallback.
func Schedule(stats entity.ReviewStats, rating entity.Rating, now time.Time) (entity.ReviewStats, entity.Timestamp) {
	next := stats
	if next.Ease == 0 {
		next.Ease = DefaultEase
	}
	if next.IntervalDays < 0 {
		next.IntervalDays = 0
	}

	switch entity.ParseRating(string(rating)) {
	case entity.RatingAgain:
		// Failure: drop ease, reset the interval, keep the repetition
		// count, and bring the item back within minutes.
		next.Ease = math.Max(MinEase, next.Ease-0.2)
		next.IntervalDays = 0
		next.LastReviewedAt = entity.TimestampOf(now)
		return next, entity.TimestampOf(now.Add(againDelay))
	case entity.RatingHard:
		prior := next.IntervalDays
		next.Ease = math.Max(MinEase, next.Ease-0.15)
		if prior <= 0 {
			next.IntervalDays = 1
		} else {
			next.IntervalDays = roundDays(float64(prior) * 1.2)
		}
	case entity.RatingEasy:
		// Interval growth uses the pre-bump ease.
		prior := next.IntervalDays
		ease := next.Ease
		next.Ease += 0.15
		if prior <= 0 {
			next.IntervalDays = 2
		} else {
			next.IntervalDays = roundDays(float64(prior) * ease * 1.3)
		}
	default: // good
		if next.IntervalDays <= 0 {
			next.IntervalDays = 1
		} else {
			next.IntervalDays = roundDays(float64(next.IntervalDays) * next.Ease)
		}
	}

	next.Repetitions++
	next.LastReviewedAt = entity.TimestampOf(now)
	return next, entity.TimestampOf(now.Add(time.Duration(next.IntervalDays) * day))
}

// roundDays rounds half away from zero; intervals stay non-negative integers.
func roundDays(days float64) int {
	rounded := int(math.Round(days))
	if rounded < 0 {
		return 0
	}
	return rounded
}

// IsDue reports whether an item scheduled for dueAt should be shown at now.
// A zero dueAt means the item was never reviewed and is always due.
func IsDue(dueAt entity.Timestamp, now time.Time) bool {
	if dueAt.IsZero() {
		return true
	}
	return !dueAt.Time().After(now)
}

// NextDueAt returns the earliest due instant across the collection, or zero
// when the collection is empty or contains a never-reviewed item (which is
// due now, making "next due" meaningless).
func NextDueAt(states []entity.ReviewState) entity.Timestamp {
	if len(states) == 0 {
		return 0
	}
	var min entity.Timestamp
	for _, s := range states {
		if s.DueAt.IsZero() {
			return 0
		}
		if min.IsZero() || s.DueAt.Before(min) {
			min = s.DueAt
		}
	}
	return min
}

// MasteryOf classifies an item for display grouping. The classification is
// derived from stats and never feeds back into scheduling.
func MasteryOf(state entity.ReviewState) entity.Mastery {
	if state.DueAt.IsZero() {
		return entity.MasteryUnseen
	}
	if state.Stats.IntervalDays >= masteredIntervalDays {
		return entity.MasteryMastered
	}
	if state.Stats.Repetitions >= 1 {
		return entity.MasteryLearning
	}
	return entity.MasteryUnseen
}
