package srs

import (
	"fmt"
	"math"
	"time"
)

// Grade is the recall quality of one review on the 0-3 scale.
type Grade int

const (
	Again Grade = iota // complete lapse, relearn from scratch
	Hard               // recalled with serious difficulty
	Good               // recalled correctly
	Easy               // recalled instantly
)

func (g Grade) String() string {
	switch g {
	case Again:
		return "again"
	case Hard:
		return "hard"
	case Good:
		return "good"
	case Easy:
		return "easy"
	default:
		return fmt.Sprintf("grade(%d)", int(g))
	}
}

// Valid reports whether g is one of the four defined grades.
func (g Grade) Valid() bool {
	return g >= Again && g <= Easy
}

const (
	// MinEasiness is the SM-2 floor; easiness never drops below it.
	MinEasiness = 1.3
	// DefaultEasiness is the easiness of a freshly created item.
	DefaultEasiness = 2.5
	// MaxIntervalDays caps review intervals at one year.
	MaxIntervalDays = 365
)

// State is the schedule of a single vocabulary item. Values are copied in and
// out of the Vocabulary model; this package never touches storage.
type State struct {
	EasinessFactor float64
	IntervalDays   int
	Repetitions    int
	NextReviewDate time.Time
}

// NewState returns the schedule of a freshly added item: due immediately.
func NewState(now time.Time) State {
	return State{
		EasinessFactor: DefaultEasiness,
		IntervalDays:   0,
		Repetitions:    0,
		NextReviewDate: now,
	}
}

// IsDue reports whether the item should be reviewed at the given time.
func (s State) IsDue(now time.Time) bool {
	return !s.NextReviewDate.After(now)
}

// Advance applies one review to the schedule and returns the next state.
//
// Grades map onto the classic 0-5 SM-2 quality scale as q = grade + 2, so
// Hard=3, Good=4, Easy=5. With the standard easiness update
// EF' = EF + (0.1 - (5-q)*(0.08 + (5-q)*0.02)) that yields deltas of
// -0.14 (Hard), 0 (Good) and +0.10 (Easy). Again bypasses the formula: it is a
// relearning step with a flat -0.20 easiness penalty, repetitions reset to 0
// and a one-day interval. The new interval is computed from the updated
// easiness, which keeps interval growth monotonic in the grade.
//
// Advance is pure: it never mutates its input and an unknown grade is a
// programming error, reported rather than clamped.
func Advance(state State, grade Grade, now time.Time) (State, error) {
	if !grade.Valid() {
		return State{}, fmt.Errorf("srs: invalid grade %d", int(grade))
	}

	next := state

	if grade == Again {
		next.Repetitions = 0
		next.IntervalDays = 1
		next.EasinessFactor = math.Max(MinEasiness, state.EasinessFactor-0.2)
		next.NextReviewDate = now.AddDate(0, 0, next.IntervalDays)
		return next, nil
	}

	q := float64(grade) + 2
	ef := state.EasinessFactor + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if ef < MinEasiness {
		ef = MinEasiness
	}
	next.EasinessFactor = ef
	next.Repetitions = state.Repetitions + 1

	switch next.Repetitions {
	case 1:
		next.IntervalDays = 1
	case 2:
		next.IntervalDays = 6
	default:
		next.IntervalDays = int(math.Round(float64(state.IntervalDays) * ef))
	}
	if next.IntervalDays > MaxIntervalDays {
		next.IntervalDays = MaxIntervalDays
	}
	next.NextReviewDate = now.AddDate(0, 0, next.IntervalDays)
	return next, nil
}

// MemoryStrength estimates how well an item is known, on a 0..1 scale.
// Zero for unseen items, approaching 1 for items with many successful reviews
// at long intervals.
func MemoryStrength(state State) float64 {
	if state.Repetitions == 0 {
		return 0
	}
	raw := float64(state.Repetitions) * state.EasinessFactor * math.Log(float64(state.IntervalDays)+1) / 100
	return math.Min(1, math.Max(0, raw))
}
