package entity

import (
	"bytes"
	"strconv"
	"strings"
	"time"
)

// Timestamp is an instant in Unix milliseconds. The zero value means "unset";
// for review state that reads as "never reviewed". Stored blobs written by the
// reader UI carry epoch-millisecond numbers (or null), so Timestamp marshals
// the same way.
type Timestamp int64

// TimestampOf converts a time.Time into a Timestamp. The zero time maps to
// the zero Timestamp.
func TimestampOf(t time.Time) Timestamp {
	if t.IsZero() {
		return 0
	}
	return Timestamp(t.UnixMilli())
}

// Time converts the Timestamp back into a time.Time. The zero Timestamp maps
// to the zero time.
func (ts Timestamp) Time() time.Time {
	if ts == 0 {
		return time.Time{}
	}
	return time.UnixMilli(int64(ts))
}

// IsZero reports whether the Timestamp is unset.
func (ts Timestamp) IsZero() bool { return ts == 0 }

// Before reports whether ts is strictly earlier than other.
func (ts Timestamp) Before(other Timestamp) bool { return ts < other }

// MarshalJSON encodes the Timestamp as a millisecond number, or null when unset.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts == 0 {
		return []byte("null"), nil
	}
	return strconv.AppendInt(nil, int64(ts), 10), nil
}

// UnmarshalJSON accepts a millisecond number or null. Blobs written by older
// clients carry floats or quoted numbers; anything unparseable leaves the
// value unset rather than failing, stored review state is best-effort data.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	s := string(bytes.TrimSpace(data))
	if s == "" || s == "null" {
		*ts = 0
		return nil
	}
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		*ts = Timestamp(n)
		return nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		*ts = Timestamp(f)
		return nil
	}
	*ts = 0
	return nil
}

// ReviewStats holds the scheduling counters for one reviewable item.
type ReviewStats struct {
	// Repetitions counts reviews that were not graded "again".
	Repetitions int `json:"repetitions"`
	// IntervalDays is the whole-day gap until the next review. Zero means
	// the item is due within the day.
	IntervalDays int `json:"interval"`
	// Ease is the SM-2 growth multiplier. Never below 1.3 once reviewed.
	Ease           float64   `json:"ease"`
	LastReviewedAt Timestamp `json:"lastReviewedAt"`
}

// ReviewState is the schedulable part shared by flashcards and script
// characters. A zero DueAt means the item has never been reviewed and is
// always due.
type ReviewState struct {
	DueAt Timestamp   `json:"dueAt"`
	Stats ReviewStats `json:"stats"`
}

// NeverReviewed reports whether the item has no review history yet.
func (s ReviewState) NeverReviewed() bool {
	return s.DueAt.IsZero() && s.Stats.LastReviewedAt.IsZero()
}

// Rating is the user's recall grade for a single review.
type Rating string

const (
	RatingAgain Rating = "again"
	RatingHard  Rating = "hard"
	RatingGood  Rating = "good"
	RatingEasy  Rating = "easy"
)

// RatingFallback is the grade substituted for unrecognized rating strings.
// The UI only ever sends the four known literals; anything else is mapped to
// a plain "good" rather than rejected, so a review action can never fail.
const RatingFallback = RatingGood

// ParseRating normalizes an arbitrary rating string to one of the four known
// grades, applying RatingFallback for anything unrecognized.
func ParseRating(s string) Rating {
	switch Rating(strings.ToLower(strings.TrimSpace(s))) {
	case RatingAgain:
		return RatingAgain
	case RatingHard:
		return RatingHard
	case RatingGood:
		return RatingGood
	case RatingEasy:
		return RatingEasy
	default:
		return RatingFallback
	}
}

// Mastery is a display-only grouping derived from review stats. It never
// feeds back into scheduling.
type Mastery string

const (
	MasteryUnseen   Mastery = "unseen"
	MasteryLearning Mastery = "learning"
	MasteryMastered Mastery = "mastered"
)
