package question

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/ptvinh/wordnest/internal/model"
)

func strptr(s string) *string { return &s }

func vocab(id uint, word, definition string, nextReview time.Time, reps int) model.Vocabulary {
	return model.Vocabulary{
		ID:             id,
		UserID:         1,
		Word:           word,
		Meanings:       []model.Meaning{{Definition: definition}},
		EasinessFactor: 2.5,
		Repetitions:    reps,
		NextReviewDate: nextReview,
	}
}

func TestGenerateFiltersAndOrdersByDueDate(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	items := []model.Vocabulary{
		vocab(1, "ephemeral", "lasting a very short time", now.AddDate(0, 0, -1), 2),
		vocab(2, "ubiquitous", "found everywhere", now.AddDate(0, 0, 2), 2),
		vocab(3, "laconic", "using few words", now.AddDate(0, 0, -5), 2),
		vocab(4, "candid", "honest and direct", now, 2),
	}

	g := NewGenerator(rand.New(rand.NewSource(1)))
	instances := g.Generate(items, 0, now)

	if len(instances) != 3 {
		t.Fatalf("got %d instances, want 3 (item 2 is not due)", len(instances))
	}
	wantOrder := []uint{3, 1, 4} // most overdue first
	for i, want := range wantOrder {
		if instances[i].VocabularyID != want {
			t.Errorf("instance %d is for vocabulary %d, want %d", i, instances[i].VocabularyID, want)
		}
	}
}

func TestGenerateRespectsMaxQuestions(t *testing.T) {
	now := time.Now()
	var items []model.Vocabulary
	for i := uint(1); i <= 30; i++ {
		items = append(items, vocab(i, "word", "definition", now.AddDate(0, 0, -int(i)), 1))
	}

	g := NewGenerator(rand.New(rand.NewSource(1)))
	instances := g.Generate(items, 10, now)
	if len(instances) != 10 {
		t.Errorf("got %d instances, want 10", len(instances))
	}
	// Most overdue item survives the cut.
	if instances[0].VocabularyID != 30 {
		t.Errorf("first instance is for vocabulary %d, want 30", instances[0].VocabularyID)
	}
}

func TestGenerateInstanceIDsUnique(t *testing.T) {
	now := time.Now()
	var items []model.Vocabulary
	for i := uint(1); i <= 20; i++ {
		items = append(items, vocab(i, "word", "definition", now, 0))
	}

	g := NewGenerator(rand.New(rand.NewSource(7)))
	seen := map[string]bool{}
	for _, inst := range g.Generate(items, 0, now) {
		if inst.InstanceID == "" {
			t.Fatal("empty instance id")
		}
		if seen[inst.InstanceID] {
			t.Fatalf("duplicate instance id %q", inst.InstanceID)
		}
		seen[inst.InstanceID] = true
	}
}

func TestChooseTypeNeverNeedsMissingContext(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(42)))
	item := vocab(1, "serendipity", "a fortunate accident", time.Now(), 5)
	// No example sentence, no audio.
	item.Meanings[0].ExampleSentence = nil
	item.AudioURL = nil

	for i := 0; i < 500; i++ {
		typ := g.chooseType(&item)
		if typ == FillBlank || typ == Dictation {
			t.Fatalf("chose %s for an item without sentence or audio", typ)
		}
	}
}

func TestChooseTypeContextVariants(t *testing.T) {
	t.Run("sentence only", func(t *testing.T) {
		g := NewGenerator(rand.New(rand.NewSource(3)))
		item := vocab(1, "serendipity", "a fortunate accident", time.Now(), 5)
		item.Meanings[0].ExampleSentence = strptr("Finding it was pure serendipity.")
		for i := 0; i < 500; i++ {
			if typ := g.chooseType(&item); typ == Dictation {
				t.Fatal("chose dictation for an item without audio")
			}
		}
	})
	t.Run("audio only", func(t *testing.T) {
		g := NewGenerator(rand.New(rand.NewSource(3)))
		item := vocab(1, "serendipity", "a fortunate accident", time.Now(), 5)
		item.AudioURL = strptr("https://cdn.example.com/serendipity.mp3")
		for i := 0; i < 500; i++ {
			if typ := g.chooseType(&item); typ == FillBlank {
				t.Fatal("chose fill-blank for an item without an example sentence")
			}
		}
	})
	t.Run("new item gets no recall cues", func(t *testing.T) {
		g := NewGenerator(rand.New(rand.NewSource(3)))
		item := vocab(1, "serendipity", "a fortunate accident", time.Now(), 0)
		item.Meanings[0].ExampleSentence = strptr("Finding it was pure serendipity.")
		item.AudioURL = strptr("https://cdn.example.com/serendipity.mp3")
		for i := 0; i < 500; i++ {
			if typ := g.chooseType(&item); typ == FillBlank || typ == Dictation {
				t.Fatalf("chose %s for a never-reviewed item", typ)
			}
		}
	})
}

func TestChooseTypeWeighting(t *testing.T) {
	const rounds = 2000

	count := func(reps int) int {
		g := NewGenerator(rand.New(rand.NewSource(11)))
		item := vocab(1, "serendipity", "a fortunate accident", time.Now(), reps)
		recognition := 0
		for i := 0; i < rounds; i++ {
			if g.chooseType(&item).IsChoice() {
				recognition++
			}
		}
		return recognition
	}

	// New items should land on recognition roughly 70% of the time, reviewed
	// items roughly 30%. Wide bands keep the test stable across seeds.
	if newItems := count(0); newItems < rounds*60/100 || newItems > rounds*80/100 {
		t.Errorf("new item recognition share = %d/%d, want ~70%%", newItems, rounds)
	}
	if seen := count(4); seen < rounds*20/100 || seen > rounds*40/100 {
		t.Errorf("reviewed item recognition share = %d/%d, want ~30%%", seen, rounds)
	}
}

func TestChooseTypeNeedsSynonymData(t *testing.T) {
	g := NewGenerator(rand.New(rand.NewSource(13)))
	item := vocab(1, "serendipity", "a fortunate accident", time.Now(), 0)

	for i := 0; i < 500; i++ {
		if typ := g.chooseType(&item); typ == SynonymMCQ {
			t.Fatal("chose synonym_mcq for an item without stored synonyms")
		}
	}
}

func TestSynonymQuestionUsesStoredSynonyms(t *testing.T) {
	now := time.Now()
	item := vocab(1, "arduous", "requiring great effort", now, 0)
	item.Meanings[0].Synonyms = model.StringArray{"strenuous", "grueling"}
	pool := []model.Vocabulary{
		item,
		vocab(2, "ephemeral", "lasting a very short time", now, 0),
		vocab(3, "ubiquitous", "found everywhere", now, 0),
		vocab(4, "laconic", "using few words", now, 0),
		vocab(5, "strenuous", "needing stamina", now, 0), // collides with a synonym
	}

	g := NewGenerator(rand.New(rand.NewSource(17)))
	for i := 0; i < 2000; i++ {
		inst := g.build(&item, pool)
		if inst.Type != SynonymMCQ {
			continue
		}
		if !strings.Contains(inst.Prompt, "arduous") {
			t.Fatalf("prompt %q not anchored on the word", inst.Prompt)
		}
		if inst.CorrectAnswer != "strenuous" && inst.CorrectAnswer != "grueling" {
			t.Fatalf("CorrectAnswer = %q, want one of the stored synonyms", inst.CorrectAnswer)
		}
		correctCount := 0
		for _, o := range inst.Options {
			switch o {
			case inst.CorrectAnswer:
				correctCount++
			case "arduous":
				t.Fatal("the headword appeared as a distractor")
			case "strenuous", "grueling":
				t.Fatalf("rival synonym %q appeared as a distractor", o)
			}
		}
		if correctCount != 1 {
			t.Fatalf("options %v carry the correct answer %d times, want once", inst.Options, correctCount)
		}
		return
	}
	t.Fatal("no synonym_mcq instance generated; seed no longer exercises the type")
}

func TestBuildOptions(t *testing.T) {
	now := time.Now()
	pool := []model.Vocabulary{
		vocab(1, "ephemeral", "lasting a very short time", now, 1),
		vocab(2, "ubiquitous", "found everywhere", now, 1),
		vocab(3, "laconic", "using few words", now, 1),
		vocab(4, "candid", "honest and direct", now, 1),
		vocab(5, "arduous", "requiring great effort", now, 1),
	}
	g := NewGenerator(rand.New(rand.NewSource(5)))

	opts := g.buildOptions("ephemeral", 1, pool, func(v model.Vocabulary) string { return v.Word })
	if len(opts) != optionCount {
		t.Fatalf("got %d options, want %d", len(opts), optionCount)
	}
	seen := map[string]bool{}
	foundCorrect := false
	for _, o := range opts {
		if seen[o] {
			t.Errorf("duplicate option %q", o)
		}
		seen[o] = true
		if o == "ephemeral" {
			foundCorrect = true
		}
	}
	if !foundCorrect {
		t.Error("options do not contain the correct answer")
	}
	if seen[FillerOption] {
		t.Error("filler used despite a sufficient distractor pool")
	}
}

func TestBuildOptionsPadsSmallPool(t *testing.T) {
	now := time.Now()
	pool := []model.Vocabulary{
		vocab(1, "ephemeral", "lasting a very short time", now, 1),
		vocab(2, "ubiquitous", "found everywhere", now, 1),
	}
	g := NewGenerator(rand.New(rand.NewSource(5)))

	opts := g.buildOptions("ephemeral", 1, pool, func(v model.Vocabulary) string { return v.Word })
	if len(opts) != optionCount {
		t.Fatalf("got %d options, want %d", len(opts), optionCount)
	}
	fillers := 0
	for _, o := range opts {
		if o == FillerOption {
			fillers++
		}
	}
	if fillers != 2 {
		t.Errorf("got %d filler options, want 2", fillers)
	}
}

func TestGenerateChoiceInstancesCarryOptions(t *testing.T) {
	now := time.Now()
	var items []model.Vocabulary
	words := []string{"ephemeral", "ubiquitous", "laconic", "candid", "arduous", "pragmatic"}
	for i, w := range words {
		items = append(items, vocab(uint(i+1), w, "definition of "+w, now, 0))
	}

	g := NewGenerator(rand.New(rand.NewSource(9)))
	sawChoice := false
	for _, inst := range g.Generate(items, 0, now) {
		if !inst.Type.IsChoice() {
			if len(inst.Options) != 0 {
				t.Errorf("%s instance carries options", inst.Type)
			}
			continue
		}
		sawChoice = true
		if len(inst.Options) != optionCount {
			t.Errorf("%s instance has %d options, want %d", inst.Type, len(inst.Options), optionCount)
		}
		found := false
		for _, o := range inst.Options {
			if o == inst.CorrectAnswer {
				found = true
			}
		}
		if !found {
			t.Errorf("%s options %v missing correct answer %q", inst.Type, inst.Options, inst.CorrectAnswer)
		}
	}
	if !sawChoice {
		t.Fatal("no choice instance generated; seed no longer exercises recognition types")
	}
}

func TestBlankOut(t *testing.T) {
	tests := []struct {
		name     string
		sentence string
		word     string
		want     string
	}{
		{"exact case", "The ephemeral mist faded.", "ephemeral", "The ___ mist faded."},
		{"capitalized in sentence", "Ephemeral joys pass quickly.", "ephemeral", "___ joys pass quickly."},
		{"multiple occurrences", "Candid people stay candid.", "candid", "___ people stay ___."},
		{"word absent", "Nothing to hide here.", "ephemeral", "Nothing to hide here."},
		// Runes whose lowercase form has a different byte length must not
		// shift the blank position.
		{"length-changing fold before the word", "İstanbul is big", "big", "İstanbul is ___"},
		{"length-changing fold mid-sentence", "the İz zag", "zag", "the İz ___"},
		{"folded match itself", "GROSS things", "groß", "GROSS things"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := blankOut(tt.sentence, tt.word); got != tt.want {
				t.Errorf("blankOut(%q, %q) = %q, want %q", tt.sentence, tt.word, got, tt.want)
			}
		})
	}
}

func TestFillBlankInstanceHidesWord(t *testing.T) {
	now := time.Now()
	item := vocab(1, "laconic", "using few words", now, 3)
	item.Meanings[0].ExampleSentence = strptr("His laconic reply ended the debate.")

	g := NewGenerator(rand.New(rand.NewSource(2)))
	for i := 0; i < 2000; i++ {
		inst := g.build(&item, []model.Vocabulary{item})
		if inst.Type != FillBlank {
			continue
		}
		if inst.ContextSentence == nil {
			t.Fatal("fill-blank instance missing context sentence")
		}
		if strings.Contains(strings.ToLower(*inst.ContextSentence), "laconic") {
			t.Fatalf("answer leaked into context sentence %q", *inst.ContextSentence)
		}
		if !strings.Contains(*inst.ContextSentence, BlankMarker) {
			t.Fatalf("context sentence %q missing blank marker", *inst.ContextSentence)
		}
		return
	}
	t.Fatal("no fill-blank instance generated; seed no longer exercises the type")
}
