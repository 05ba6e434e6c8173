package service

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/ptvinh/wordnest/internal/apperr"
	"github.com/ptvinh/wordnest/internal/dto"
	"github.com/ptvinh/wordnest/internal/grader"
	"github.com/ptvinh/wordnest/internal/model"
	"github.com/ptvinh/wordnest/internal/question"
	"github.com/ptvinh/wordnest/internal/repository"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewService drives a review session end to end: creation, question
// delivery, batch grading and the atomic application of schedule updates.
type ReviewService interface {
	StartSession(req dto.SessionStartDTO) (*dto.SessionResponseDTO, error)
	SubmitBatch(sessionID uint, req dto.BatchSubmitDTO) (*dto.SessionSummaryDTO, error)
	AbandonSession(sessionID, userID uint) error
	GetSession(sessionID, userID uint) (*dto.SessionDetailDTO, error)
}

type reviewService struct {
	vocabRepo   repository.VocabularyRepository
	sessionRepo repository.ReviewSessionRepository
	generator   *question.Generator
	grader      *grader.Grader
	db          *gorm.DB // transactions for the batch-apply step
}

func NewReviewService(
	vocabRepo repository.VocabularyRepository,
	sessionRepo repository.ReviewSessionRepository,
	generator *question.Generator,
	g *grader.Grader,
	db *gorm.DB,
) ReviewService {
	return &reviewService{
		vocabRepo:   vocabRepo,
		sessionRepo: sessionRepo,
		generator:   generator,
		grader:      g,
		db:          db,
	}
}

const defaultMaxQuestions = 20

// StartSession pulls reviewable items, generates one question per item and
// persists the session shell together with the question snapshots. A user
// with nothing due gets an immediately-completed empty session, not an error.
func (s *reviewService) StartSession(req dto.SessionStartDTO) (*dto.SessionResponseDTO, error) {
	maxQuestions := req.MaxQuestions
	if maxQuestions <= 0 {
		maxQuestions = defaultMaxQuestions
	}
	now := time.Now()

	var items []model.Vocabulary
	var err error
	switch req.Mode {
	case "new":
		items, err = s.vocabRepo.FindUnseenByUser(req.UserID, maxQuestions)
	default: // "due"
		items, err = s.vocabRepo.FindDueByUser(req.UserID, now, maxQuestions)
	}
	if err != nil {
		log.Error().Err(err).Uint("userID", req.UserID).Msg("StartSession: failed to load reviewable items")
		return nil, fmt.Errorf("error loading reviewable items: %w", err)
	}

	instances := s.generator.Generate(items, maxQuestions, now)

	session := model.ReviewSession{
		UserID:         req.UserID,
		Status:         model.SessionActive,
		TotalQuestions: len(instances),
		StartedAt:      now,
		LastActivityAt: now,
	}
	if len(instances) == 0 {
		session.Status = model.SessionCompleted
		session.CompletedAt = &now
	}
	for _, inst := range instances {
		session.Questions = append(session.Questions, model.GeneratedQuestion{
			InstanceID:      inst.InstanceID,
			VocabularyID:    inst.VocabularyID,
			Type:            string(inst.Type),
			Prompt:          inst.Prompt,
			ContextSentence: inst.ContextSentence,
			Options:         inst.Options,
			AudioURL:        inst.AudioURL,
			CorrectAnswer:   inst.CorrectAnswer,
		})
	}

	if err := s.sessionRepo.Create(&session); err != nil {
		log.Error().Err(err).Uint("userID", req.UserID).Msg("StartSession: failed to persist session")
		return nil, fmt.Errorf("error creating review session: %w", err)
	}

	log.Info().Uint("sessionID", session.ID).Uint("userID", req.UserID).
		Int("questions", len(instances)).Str("mode", req.Mode).Msg("Review session started")

	return &dto.SessionResponseDTO{
		SessionID:      session.ID,
		Status:         session.Status,
		TotalQuestions: session.TotalQuestions,
		Questions:      questionDTOs(session.Questions),
		StartedAt:      session.StartedAt,
	}, nil
}

// SubmitBatch grades every submission, advances each touched item's schedule
// and completes the session, all inside one serializable transaction. Either
// every schedule advances and the session is completed, or nothing is applied
// and the session stays active.
func (s *reviewService) SubmitBatch(sessionID uint, req dto.BatchSubmitDTO) (*dto.SessionSummaryDTO, error) {
	session, err := s.loadOwnedSession(sessionID, req.UserID)
	if err != nil {
		return nil, err
	}
	if session.Status != model.SessionActive {
		return nil, fmt.Errorf("%w: session %d is %s, not active", apperr.ErrValidation, sessionID, session.Status)
	}

	now := time.Now()
	var summary *dto.SessionSummaryDTO

	err = s.db.Transaction(func(tx *gorm.DB) error {
		// Lock the affected vocabulary rows up front so two racing batches on
		// the same items are strictly ordered.
		itemIDs := affectedItemIDs(session.Questions, req.Submissions)
		var items []model.Vocabulary
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id IN ?", itemIDs).Find(&items).Error; err != nil {
			return fmt.Errorf("error locking vocabulary rows: %w", err)
		}

		staged, err := stageBatch(session.Questions, items, req.Submissions, s.grader, now)
		if err != nil {
			return err
		}

		for i := range staged.questions {
			q := staged.questions[i]
			if err := tx.Model(&model.GeneratedQuestion{}).Where("id = ?", q.ID).Updates(map[string]interface{}{
				"user_answer":         q.UserAnswer,
				"is_correct":          q.IsCorrect,
				"quality":             q.Quality,
				"time_spent_ms":       q.TimeSpentMs,
				"answer_change_count": q.AnswerChangeCount,
			}).Error; err != nil {
				return fmt.Errorf("error saving graded question: %w", err)
			}
		}

		for id, state := range staged.states {
			if err := tx.Model(&model.Vocabulary{}).Where("id = ?", id).Updates(map[string]interface{}{
				"easiness_factor":  state.EasinessFactor,
				"interval_days":    state.IntervalDays,
				"repetitions":      state.Repetitions,
				"next_review_date": state.NextReviewDate,
				"last_review_date": now,
			}).Error; err != nil {
				return fmt.Errorf("error saving schedule state: %w", err)
			}
		}

		if err := tx.Model(&model.ReviewSession{}).Where("id = ?", session.ID).Updates(map[string]interface{}{
			"status":           model.SessionCompleted,
			"correct_count":    staged.correctCount,
			"completed_at":     now,
			"last_activity_at": now,
		}).Error; err != nil {
			return fmt.Errorf("error completing session: %w", err)
		}

		accuracy := 0.0
		if len(staged.results) > 0 {
			accuracy = float64(staged.correctCount) / float64(len(staged.results))
		}
		summary = &dto.SessionSummaryDTO{
			SessionID:      session.ID,
			Status:         model.SessionCompleted,
			TotalQuestions: session.TotalQuestions,
			CorrectCount:   staged.correctCount,
			Accuracy:       accuracy,
			TotalTimeMs:    staged.totalTimeMs,
			CompletedAt:    &now,
			Results:        staged.results,
		}
		return nil
	}, &sql.TxOptions{Isolation: sql.LevelSerializable})

	if err != nil {
		if isSerializationFailure(err) {
			log.Warn().Err(err).Uint("sessionID", sessionID).Msg("SubmitBatch: transaction serialization conflict")
			return nil, fmt.Errorf("%w: batch raced with a concurrent submission, retry", apperr.ErrConflict)
		}
		log.Error().Err(err).Uint("sessionID", sessionID).Msg("SubmitBatch: batch rejected, session stays active")
		return nil, err
	}

	log.Info().Uint("sessionID", sessionID).Int("correct", summary.CorrectCount).
		Int("total", summary.TotalQuestions).Msg("Review session completed")
	return summary, nil
}

// AbandonSession marks an active session abandoned. No schedule state moves;
// due items stay due at their prior dates.
func (s *reviewService) AbandonSession(sessionID, userID uint) error {
	session, err := s.loadOwnedSession(sessionID, userID)
	if err != nil {
		return err
	}
	if session.Status != model.SessionActive {
		return fmt.Errorf("%w: session %d is %s, not active", apperr.ErrValidation, sessionID, session.Status)
	}
	session.Status = model.SessionAbandoned
	session.LastActivityAt = time.Now()
	if err := s.sessionRepo.Update(session); err != nil {
		log.Error().Err(err).Uint("sessionID", sessionID).Msg("AbandonSession: failed to update session")
		return fmt.Errorf("error abandoning session: %w", err)
	}
	log.Info().Uint("sessionID", sessionID).Msg("Review session abandoned")
	return nil
}

func (s *reviewService) GetSession(sessionID, userID uint) (*dto.SessionDetailDTO, error) {
	session, err := s.loadOwnedSession(sessionID, userID)
	if err != nil {
		return nil, err
	}
	return &dto.SessionDetailDTO{
		SessionID:      session.ID,
		UserID:         session.UserID,
		Status:         session.Status,
		TotalQuestions: session.TotalQuestions,
		CorrectCount:   session.CorrectCount,
		StartedAt:      session.StartedAt,
		CompletedAt:    session.CompletedAt,
		Questions:      questionDTOs(session.Questions),
	}, nil
}

func (s *reviewService) loadOwnedSession(sessionID, userID uint) (*model.ReviewSession, error) {
	session, err := s.sessionRepo.FindByIDWithQuestions(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: session %d", apperr.ErrNotFound, sessionID)
		}
		log.Error().Err(err).Uint("sessionID", sessionID).Msg("Failed to load session")
		return nil, fmt.Errorf("error loading session %d: %w", sessionID, err)
	}
	if session.UserID != userID {
		// Do not reveal the session exists to another user.
		return nil, fmt.Errorf("%w: session %d", apperr.ErrNotFound, sessionID)
	}
	return session, nil
}

func questionDTOs(questions []model.GeneratedQuestion) []dto.QuestionDTO {
	out := make([]dto.QuestionDTO, 0, len(questions))
	for _, q := range questions {
		out = append(out, dto.QuestionDTO{
			InstanceID:      q.InstanceID,
			VocabularyID:    q.VocabularyID,
			Type:            q.Type,
			Prompt:          q.Prompt,
			ContextSentence: q.ContextSentence,
			Options:         q.Options,
			AudioURL:        q.AudioURL,
		})
	}
	return out
}

func affectedItemIDs(questions []model.GeneratedQuestion, subs []dto.SubmissionDTO) []uint {
	byInstance := make(map[string]uint, len(questions))
	for _, q := range questions {
		byInstance[q.InstanceID] = q.VocabularyID
	}
	seen := make(map[uint]bool)
	var ids []uint
	for _, sub := range subs {
		if id, ok := byInstance[sub.InstanceID]; ok && !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	return ids
}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// 40001 serialization_failure, 40P01 deadlock_detected
		return pgErr.Code == "40001" || pgErr.Code == "40P01"
	}
	return false
}
