package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/jinzhu/copier"
	"github.com/ptvinh/wordnest/internal/apperr"
	"github.com/ptvinh/wordnest/internal/dto"
	"github.com/ptvinh/wordnest/internal/model"
	"github.com/ptvinh/wordnest/internal/repository"
	"github.com/ptvinh/wordnest/internal/srs"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type VocabularyService interface {
	CreateVocabulary(req dto.VocabularyCreateDTO) (*dto.VocabularyDTO, error)
	GetVocabulary(id, userID uint) (*dto.VocabularyDTO, error)
	ListVocabularies(userID uint) ([]dto.VocabularyDTO, error)
	ListDueVocabularies(userID uint, asOf time.Time) ([]dto.VocabularyDTO, error)
	UpdateVocabulary(id uint, req dto.VocabularyUpdateDTO) (*dto.VocabularyDTO, error)
	DeleteVocabulary(id, userID uint) error
	EnrichWithAIMeaning(id, userID uint) (*dto.VocabularyDTO, error)
}

type vocabularyService struct {
	vocabRepo repository.VocabularyRepository
	gemini    GeminiService
}

func NewVocabularyService(vocabRepo repository.VocabularyRepository, gemini GeminiService) VocabularyService {
	return &vocabularyService{vocabRepo: vocabRepo, gemini: gemini}
}

func (s *vocabularyService) CreateVocabulary(req dto.VocabularyCreateDTO) (*dto.VocabularyDTO, error) {
	if len(req.Meanings) == 0 {
		return nil, fmt.Errorf("%w: a vocabulary needs at least one meaning", apperr.ErrValidation)
	}

	now := time.Now()
	state := srs.NewState(now)
	vocab := model.Vocabulary{
		UserID:         req.UserID,
		Word:           req.Word,
		AudioURL:       req.AudioURL,
		EasinessFactor: state.EasinessFactor,
		IntervalDays:   state.IntervalDays,
		Repetitions:    state.Repetitions,
		NextReviewDate: state.NextReviewDate,
	}
	for _, m := range req.Meanings {
		source := m.Source
		if source == "" {
			source = model.MeaningSourceManual
		}
		vocab.Meanings = append(vocab.Meanings, model.Meaning{
			Definition:      m.Definition,
			ExampleSentence: m.ExampleSentence,
			Synonyms:        model.StringArray(m.Synonyms),
			Source:          source,
		})
	}

	if err := s.vocabRepo.Create(&vocab); err != nil {
		log.Error().Err(err).Str("word", req.Word).Msg("Failed to create vocabulary")
		return nil, fmt.Errorf("database error creating vocabulary: %w", err)
	}
	log.Info().Uint("vocabularyID", vocab.ID).Str("word", vocab.Word).Msg("Vocabulary created")
	return vocabularyDTO(&vocab), nil
}

func (s *vocabularyService) GetVocabulary(id, userID uint) (*dto.VocabularyDTO, error) {
	vocab, err := s.findOwned(id, userID)
	if err != nil {
		return nil, err
	}
	return vocabularyDTO(vocab), nil
}

func (s *vocabularyService) ListVocabularies(userID uint) ([]dto.VocabularyDTO, error) {
	vocabs, err := s.vocabRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to list vocabularies")
		return nil, fmt.Errorf("error fetching vocabularies: %w", err)
	}
	return vocabularyDTOs(vocabs), nil
}

func (s *vocabularyService) ListDueVocabularies(userID uint, asOf time.Time) ([]dto.VocabularyDTO, error) {
	vocabs, err := s.vocabRepo.FindDueByUser(userID, asOf, 0)
	if err != nil {
		log.Error().Err(err).Uint("userID", userID).Msg("Failed to list due vocabularies")
		return nil, fmt.Errorf("error fetching due vocabularies: %w", err)
	}
	return vocabularyDTOs(vocabs), nil
}

func (s *vocabularyService) UpdateVocabulary(id uint, req dto.VocabularyUpdateDTO) (*dto.VocabularyDTO, error) {
	vocab, err := s.findOwned(id, req.UserID)
	if err != nil {
		return nil, err
	}
	vocab.Word = req.Word
	vocab.AudioURL = req.AudioURL
	if err := s.vocabRepo.Update(vocab); err != nil {
		log.Error().Err(err).Uint("vocabularyID", id).Msg("Failed to update vocabulary")
		return nil, fmt.Errorf("database error updating vocabulary: %w", err)
	}
	return vocabularyDTO(vocab), nil
}

func (s *vocabularyService) DeleteVocabulary(id, userID uint) error {
	if err := s.vocabRepo.Delete(id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: vocabulary %d", apperr.ErrNotFound, id)
		}
		log.Error().Err(err).Uint("vocabularyID", id).Msg("Failed to delete vocabulary")
		return fmt.Errorf("database error deleting vocabulary: %w", err)
	}
	return nil
}

// EnrichWithAIMeaning asks Gemini for a definition and example sentence and
// appends them as a meaning tagged "ai".
func (s *vocabularyService) EnrichWithAIMeaning(id, userID uint) (*dto.VocabularyDTO, error) {
	vocab, err := s.findOwned(id, userID)
	if err != nil {
		return nil, err
	}

	definition, example, synonyms, err := s.gemini.GenerateMeaning(vocab.Word)
	if err != nil {
		log.Error().Err(err).Str("word", vocab.Word).Msg("Gemini meaning generation failed")
		return nil, fmt.Errorf("AI meaning generation failed: %w", err)
	}

	meaning := model.Meaning{
		Definition: definition,
		Synonyms:   model.StringArray(synonyms),
		Source:     model.MeaningSourceAI,
	}
	if example != "" {
		meaning.ExampleSentence = &example
	}
	vocab.Meanings = append(vocab.Meanings, meaning)
	if err := s.vocabRepo.Update(vocab); err != nil {
		log.Error().Err(err).Uint("vocabularyID", id).Msg("Failed to save AI meaning")
		return nil, fmt.Errorf("database error saving AI meaning: %w", err)
	}
	log.Info().Uint("vocabularyID", id).Str("word", vocab.Word).Msg("AI meaning appended")
	return vocabularyDTO(vocab), nil
}

func (s *vocabularyService) findOwned(id, userID uint) (*model.Vocabulary, error) {
	vocab, err := s.vocabRepo.FindByIDForUser(id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: vocabulary %d", apperr.ErrNotFound, id)
		}
		log.Error().Err(err).Uint("vocabularyID", id).Msg("Failed to load vocabulary")
		return nil, fmt.Errorf("error loading vocabulary %d: %w", id, err)
	}
	return vocab, nil
}

func vocabularyDTO(vocab *model.Vocabulary) *dto.VocabularyDTO {
	var out dto.VocabularyDTO
	if err := copier.Copy(&out, vocab); err != nil {
		log.Error().Err(err).Uint("vocabularyID", vocab.ID).Msg("Failed to copy vocabulary to DTO")
	}
	out.MemoryStrength = srs.MemoryStrength(srs.State{
		EasinessFactor: vocab.EasinessFactor,
		IntervalDays:   vocab.IntervalDays,
		Repetitions:    vocab.Repetitions,
		NextReviewDate: vocab.NextReviewDate,
	})
	return &out
}

func vocabularyDTOs(vocabs []model.Vocabulary) []dto.VocabularyDTO {
	out := make([]dto.VocabularyDTO, 0, len(vocabs))
	for i := range vocabs {
		out = append(out, *vocabularyDTO(&vocabs[i]))
	}
	return out
}
