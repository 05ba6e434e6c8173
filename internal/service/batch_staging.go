package service

import (
	"fmt"
	"time"

	"github.com/ptvinh/wordnest/internal/apperr"
	"github.com/ptvinh/wordnest/internal/dto"
	"github.com/ptvinh/wordnest/internal/grader"
	"github.com/ptvinh/wordnest/internal/model"
	"github.com/ptvinh/wordnest/internal/question"
	"github.com/ptvinh/wordnest/internal/srs"
)

// stagedBatch is the fully computed outcome of one batch: graded question
// rows, the final schedule state per vocabulary and the summary numbers.
// Nothing in here has touched storage yet.
type stagedBatch struct {
	questions    []model.GeneratedQuestion
	states       map[uint]srs.State
	results      []dto.QuestionResultDTO
	correctCount int
	totalTimeMs  int
}

// stageBatch grades every submission in the order given and chains scheduler
// calls per item: each Advance starts from the item's state as staged so far,
// so a vocabulary referenced by two submissions has the second update applied
// on top of the first, never on the original state. Pure except for the
// grader's thresholds; any error means the whole batch must be discarded.
func stageBatch(
	questions []model.GeneratedQuestion,
	items []model.Vocabulary,
	subs []dto.SubmissionDTO,
	g *grader.Grader,
	now time.Time,
) (*stagedBatch, error) {
	byInstance := make(map[string]*model.GeneratedQuestion, len(questions))
	for i := range questions {
		byInstance[questions[i].InstanceID] = &questions[i]
	}
	states := make(map[uint]srs.State, len(items))
	for _, it := range items {
		states[it.ID] = srs.State{
			EasinessFactor: it.EasinessFactor,
			IntervalDays:   it.IntervalDays,
			Repetitions:    it.Repetitions,
			NextReviewDate: it.NextReviewDate,
		}
	}

	staged := &stagedBatch{states: make(map[uint]srs.State)}
	answered := make(map[string]bool, len(subs))

	for _, sub := range subs {
		q, ok := byInstance[sub.InstanceID]
		if !ok {
			return nil, fmt.Errorf("%w: unknown question instance %q", apperr.ErrValidation, sub.InstanceID)
		}
		if answered[sub.InstanceID] {
			return nil, fmt.Errorf("%w: question instance %q submitted twice", apperr.ErrValidation, sub.InstanceID)
		}
		if q.IsCorrect != nil {
			return nil, fmt.Errorf("%w: question instance %q already graded", apperr.ErrValidation, sub.InstanceID)
		}
		answered[sub.InstanceID] = true

		state, ok := staged.states[q.VocabularyID]
		if !ok {
			state, ok = states[q.VocabularyID]
			if !ok {
				return nil, fmt.Errorf("%w: vocabulary %d for instance %q", apperr.ErrNotFound, q.VocabularyID, sub.InstanceID)
			}
		}

		res := g.Grade(question.Type(q.Type), q.CorrectAnswer, grader.Submission{
			Answer:            sub.Answer,
			TimeSpentMs:       sub.TimeSpentMs,
			AnswerChangeCount: sub.AnswerChangeCount,
		})

		next, err := srs.Advance(state, res.Quality, now)
		if err != nil {
			// Grader only emits valid grades; reaching this is a bug.
			return nil, fmt.Errorf("scheduling instance %q: %w", sub.InstanceID, err)
		}
		staged.states[q.VocabularyID] = next

		answer := sub.Answer
		timeSpent := sub.TimeSpentMs
		changes := sub.AnswerChangeCount
		qualityVal := int(res.Quality)

		gq := *q
		gq.UserAnswer = &answer
		gq.IsCorrect = &res.Correct
		gq.Quality = &qualityVal
		gq.TimeSpentMs = &timeSpent
		gq.AnswerChangeCount = &changes
		staged.questions = append(staged.questions, gq)

		if res.Correct {
			staged.correctCount++
		}
		staged.totalTimeMs += sub.TimeSpentMs
		staged.results = append(staged.results, dto.QuestionResultDTO{
			InstanceID:     sub.InstanceID,
			VocabularyID:   q.VocabularyID,
			IsCorrect:      res.Correct,
			Quality:        res.Quality.String(),
			CorrectAnswer:  q.CorrectAnswer,
			NextReviewDate: next.NextReviewDate,
			IntervalDays:   next.IntervalDays,
		})
	}

	return staged, nil
}
