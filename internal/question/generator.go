package question

import (
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/ptvinh/wordnest/internal/model"
)

// Type is the closed set of question formats. The generator and the grader
// both switch exhaustively over these, so adding a format is a compile-time
// extension of every switch, not a runtime string comparison.
type Type string

const (
	// Production formats: the learner has to produce the answer.
	Typing          Type = "typing"            // definition shown, type the word
	MeaningFromWord Type = "meaning_from_word" // word shown, type the definition
	FillBlank       Type = "fill_blank"        // sentence with a blank, type the word
	Dictation       Type = "dictation"         // audio played, type the word

	// Recognition formats: the learner picks from options.
	MultipleChoice Type = "multiple_choice" // definition shown, pick the word
	DefinitionMCQ  Type = "definition_mcq"  // word shown, pick the definition
	SynonymMCQ     Type = "synonym_mcq"     // word shown, pick a stored synonym
)

// IsChoice reports whether the type presents fixed options.
func (t Type) IsChoice() bool {
	switch t {
	case MultipleChoice, DefinitionMCQ, SynonymMCQ:
		return true
	case Typing, MeaningFromWord, FillBlank, Dictation:
		return false
	}
	return false
}

// BlankMarker replaces the target word in fill-blank context sentences.
const BlankMarker = "___"

// FillerOption pads multiple-choice options when the distractor pool runs dry.
const FillerOption = "none of these"

const optionCount = 4

// Instance is one generated question. CorrectAnswer is retained server-side
// only; the DTO layer decides what reaches the client.
type Instance struct {
	InstanceID      string
	VocabularyID    uint
	Type            Type
	Prompt          string
	ContextSentence *string
	Options         []string
	AudioURL        *string
	CorrectAnswer   string
}

// Generator builds question instances from due vocabulary items. The random
// source is injected so generation is deterministic under test.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

// Generate selects up to maxQuestions due items, most overdue first, and
// produces one question instance per selected item.
func (g *Generator) Generate(items []model.Vocabulary, maxQuestions int, now time.Time) []Instance {
	due := make([]model.Vocabulary, 0, len(items))
	for _, it := range items {
		if !it.NextReviewDate.After(now) {
			due = append(due, it)
		}
	}
	sort.SliceStable(due, func(i, j int) bool {
		return due[i].NextReviewDate.Before(due[j].NextReviewDate)
	})
	if maxQuestions > 0 && len(due) > maxQuestions {
		due = due[:maxQuestions]
	}

	instances := make([]Instance, 0, len(due))
	for _, item := range due {
		item := item
		instances = append(instances, g.build(&item, due))
	}
	return instances
}

func (g *Generator) build(item *model.Vocabulary, pool []model.Vocabulary) Instance {
	typ := g.chooseType(item)
	inst := Instance{
		InstanceID:   uuid.NewString(),
		VocabularyID: item.ID,
		Type:         typ,
	}

	switch typ {
	case Typing:
		inst.Prompt = fmt.Sprintf("Type the word that means: %s", item.FirstDefinition())
		inst.CorrectAnswer = item.Word
	case MeaningFromWord:
		inst.Prompt = fmt.Sprintf("What does '%s' mean?", item.Word)
		inst.CorrectAnswer = item.FirstDefinition()
	case FillBlank:
		sentence := *item.ExampleSentence()
		blanked := blankOut(sentence, item.Word)
		inst.Prompt = "Fill in the missing word:"
		inst.ContextSentence = &blanked
		inst.CorrectAnswer = item.Word
	case Dictation:
		inst.Prompt = "Listen and type the word you hear"
		inst.AudioURL = item.AudioURL
		inst.CorrectAnswer = item.Word
	case MultipleChoice:
		inst.Prompt = fmt.Sprintf("Which word means: %s", item.FirstDefinition())
		inst.CorrectAnswer = item.Word
		inst.Options = g.buildOptions(item.Word, item.ID, pool, wordOf)
	case DefinitionMCQ:
		inst.Prompt = fmt.Sprintf("Which is the meaning of '%s'?", item.Word)
		inst.CorrectAnswer = item.FirstDefinition()
		inst.Options = g.buildOptions(item.FirstDefinition(), item.ID, pool, definitionOf)
	case SynonymMCQ:
		synonyms := item.Synonyms()
		inst.Prompt = fmt.Sprintf("Which word is closest in meaning to '%s'?", item.Word)
		inst.CorrectAnswer = synonyms[g.rng.Intn(len(synonyms))]
		// The headword and its other synonyms would be defensible answers
		// too, so none of them may appear as a distractor.
		inst.Options = g.buildOptions(inst.CorrectAnswer, item.ID, pool, wordOf, append([]string{item.Word}, synonyms...)...)
	}
	return inst
}

// chooseType picks a format using weights conditioned on how often the item
// has been reviewed: new items lean on recognition, seen items on production.
// Data-dependent formats are excluded up front when the item lacks what they
// need (example sentence, audio, synonyms), never failed at ask time.
func (g *Generator) chooseType(item *model.Vocabulary) Type {
	recognition := []Type{MultipleChoice, DefinitionMCQ}
	if len(item.Synonyms()) > 0 {
		recognition = append(recognition, SynonymMCQ)
	}
	production := []Type{Typing, MeaningFromWord}

	hasSentence := item.ExampleSentence() != nil
	hasAudio := item.AudioURL != nil && *item.AudioURL != ""

	// Roughly one pick in five goes to a recall-cue variant when available.
	if item.Repetitions > 0 && g.rng.Float64() < 0.2 {
		switch {
		case hasSentence && hasAudio:
			if g.rng.Float64() < 0.5 {
				return FillBlank
			}
			return Dictation
		case hasSentence:
			return FillBlank
		case hasAudio:
			return Dictation
		}
	}

	favorRecognition := item.Repetitions == 0
	pickRecognition := g.rng.Float64() < 0.7
	if !favorRecognition {
		pickRecognition = !pickRecognition
	}
	if pickRecognition {
		return recognition[g.rng.Intn(len(recognition))]
	}
	return production[g.rng.Intn(len(production))]
}

func wordOf(v model.Vocabulary) string       { return v.Word }
func definitionOf(v model.Vocabulary) string { return v.FirstDefinition() }

// buildOptions assembles the shuffled option list: the correct answer plus
// three distractors sampled from other items in the pool, padded with a
// filler token when the pool is too small. Excluded strings never appear as
// distractors.
func (g *Generator) buildOptions(correct string, itemID uint, pool []model.Vocabulary, extract func(model.Vocabulary) string, exclude ...string) []string {
	candidates := make([]string, 0, len(pool))
	seen := map[string]bool{correct: true}
	for _, e := range exclude {
		seen[e] = true
	}
	for _, v := range pool {
		if v.ID == itemID {
			continue
		}
		c := extract(v)
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		candidates = append(candidates, c)
	}
	g.rng.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})

	options := []string{correct}
	for _, c := range candidates {
		if len(options) == optionCount {
			break
		}
		options = append(options, c)
	}
	for len(options) < optionCount {
		options = append(options, FillerOption)
	}
	g.rng.Shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})
	return options
}

func blankOut(sentence, word string) string {
	return replaceFold(sentence, word, BlankMarker)
}
