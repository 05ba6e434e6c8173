package grader

import (
	"testing"

	"github.com/ptvinh/wordnest/internal/question"
	"github.com/ptvinh/wordnest/internal/srs"
)

func TestGradeExactAndNormalizedMatch(t *testing.T) {
	g := New(Thresholds{})

	tests := []struct {
		name   string
		typ    question.Type
		want   string
		answer string
		ok     bool
	}{
		{"exact", question.Typing, "ephemeral", "ephemeral", true},
		{"case insensitive", question.Typing, "ephemeral", "EPHEMERAL", true},
		{"surrounding whitespace", question.Typing, "ephemeral", "  ephemeral \n", true},
		{"wrong word", question.Typing, "ephemeral", "ubiquitous", false},
		{"empty answer", question.Typing, "ephemeral", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := g.Grade(tt.typ, tt.want, Submission{Answer: tt.answer})
			if res.Correct != tt.ok {
				t.Errorf("Correct = %v, want %v", res.Correct, tt.ok)
			}
		})
	}
}

func TestGradeTypoTolerance(t *testing.T) {
	g := New(Thresholds{})

	tests := []struct {
		name   string
		typ    question.Type
		want   string
		answer string
		ok     bool
	}{
		{"one edit on a long word", question.Typing, "ephemeral", "ephemerel", true},
		{"dropped letter on a long word", question.Dictation, "ubiquitous", "ubiquitos", true},
		{"two edits rejected", question.Typing, "ephemeral", "ephemral's", false},
		{"short word needs exact match", question.Typing, "cat", "car", false},
		{"five runes still exact", question.FillBlank, "quiet", "quite", false},
		{"six runes get tolerance", question.FillBlank, "quietly", "quitely", false}, // transposition is two edits
		{"six runes one edit", question.FillBlank, "candid", "candad", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := g.Grade(tt.typ, tt.want, Submission{Answer: tt.answer})
			if res.Correct != tt.ok {
				t.Errorf("Correct = %v, want %v", res.Correct, tt.ok)
			}
		})
	}
}

func TestGradeChoiceTypesNeedExactMatch(t *testing.T) {
	g := New(Thresholds{})

	// Choice answers are clicked, not typed; a near miss is a different option.
	res := g.Grade(question.MultipleChoice, "ephemeral", Submission{Answer: "ephemerel"})
	if res.Correct {
		t.Error("typo tolerance must not apply to multiple choice")
	}
	res = g.Grade(question.DefinitionMCQ, "lasting a very short time", Submission{Answer: "Lasting a very short time "})
	if !res.Correct {
		t.Error("normalization should still apply to choice answers")
	}
}

func TestGradeQualityDerivation(t *testing.T) {
	g := New(Thresholds{FastAnswerMs: 5000, SlowAnswerMs: 15000, MaxAnswerChanges: 2})

	tests := []struct {
		name string
		sub  Submission
		want srs.Grade
	}{
		{"incorrect is again", Submission{Answer: "wrong"}, srs.Again},
		{"fast and untouched is easy", Submission{Answer: "ephemeral", TimeSpentMs: 1200}, srs.Easy},
		{"fast but revised is not easy", Submission{Answer: "ephemeral", TimeSpentMs: 1200, AnswerChangeCount: 1}, srs.Good},
		{"slow is hard", Submission{Answer: "ephemeral", TimeSpentMs: 20000}, srs.Hard},
		{"many revisions is hard", Submission{Answer: "ephemeral", TimeSpentMs: 8000, AnswerChangeCount: 3}, srs.Hard},
		{"middling is good", Submission{Answer: "ephemeral", TimeSpentMs: 8000, AnswerChangeCount: 1}, srs.Good},
		{"at the fast boundary is good", Submission{Answer: "ephemeral", TimeSpentMs: 5000}, srs.Good},
		{"at the slow boundary is good", Submission{Answer: "ephemeral", TimeSpentMs: 15000}, srs.Good},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := g.Grade(question.Typing, "ephemeral", tt.sub)
			if res.Quality != tt.want {
				t.Errorf("Quality = %v, want %v", res.Quality, tt.want)
			}
		})
	}
}

func TestNewAppliesDefaults(t *testing.T) {
	g := New(Thresholds{})
	if g.thresholds.FastAnswerMs != defaultFastAnswerMs ||
		g.thresholds.SlowAnswerMs != defaultSlowAnswerMs ||
		g.thresholds.MaxAnswerChanges != defaultMaxAnswerChanges {
		t.Errorf("thresholds = %+v, want defaults", g.thresholds)
	}
}
