package grader

import (
	"strings"
	"unicode/utf8"

	"github.com/agext/levenshtein"
	"github.com/ptvinh/wordnest/internal/question"
	"github.com/ptvinh/wordnest/internal/srs"
)

// Thresholds tune the automatic quality derivation. Zero values fall back to
// the defaults below.
type Thresholds struct {
	FastAnswerMs     int // at most this fast and untouched -> Easy
	SlowAnswerMs     int // slower than this -> Hard
	MaxAnswerChanges int // more revisions than this -> Hard
}

const (
	defaultFastAnswerMs     = 5000
	defaultSlowAnswerMs     = 15000
	defaultMaxAnswerChanges = 2

	// typoToleranceMinRunes is the answer length from which a single
	// edit-distance slip is forgiven on production answers. Policy decision:
	// exact match stays mandatory for short words, where one edit usually
	// means a different word entirely.
	typoToleranceMinRunes = 6
)

// Submission is the learner's response to one question instance, with the
// telemetry the client collected while they answered.
type Submission struct {
	Answer            string
	TimeSpentMs       int
	AnswerChangeCount int
}

// Result is the grading outcome the scheduler consumes.
type Result struct {
	Correct bool
	Quality srs.Grade
}

type Grader struct {
	thresholds Thresholds
}

func New(t Thresholds) *Grader {
	if t.FastAnswerMs <= 0 {
		t.FastAnswerMs = defaultFastAnswerMs
	}
	if t.SlowAnswerMs <= 0 {
		t.SlowAnswerMs = defaultSlowAnswerMs
	}
	if t.MaxAnswerChanges <= 0 {
		t.MaxAnswerChanges = defaultMaxAnswerChanges
	}
	return &Grader{thresholds: t}
}

// Grade decides correctness against the canonical answer and derives the
// recall quality from the telemetry. It never touches schedule state.
func (g *Grader) Grade(typ question.Type, correctAnswer string, sub Submission) Result {
	correct := g.isCorrect(typ, correctAnswer, sub.Answer)
	return Result{Correct: correct, Quality: g.deriveQuality(correct, sub)}
}

func (g *Grader) isCorrect(typ question.Type, correctAnswer, answer string) bool {
	want := normalize(correctAnswer)
	got := normalize(answer)

	if typ.IsChoice() {
		return got == want
	}
	if got == want {
		return true
	}
	// Typo tolerance on long production answers only.
	if utf8.RuneCountInString(want) >= typoToleranceMinRunes {
		return levenshtein.Distance(got, want, nil) <= 1
	}
	return false
}

func (g *Grader) deriveQuality(correct bool, sub Submission) srs.Grade {
	if !correct {
		return srs.Again
	}
	if sub.TimeSpentMs < g.thresholds.FastAnswerMs && sub.AnswerChangeCount == 0 {
		return srs.Easy
	}
	if sub.TimeSpentMs > g.thresholds.SlowAnswerMs || sub.AnswerChangeCount > g.thresholds.MaxAnswerChanges {
		return srs.Hard
	}
	return srs.Good
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
