package controller

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ptvinh/wordnest/internal/dto"
	"github.com/ptvinh/wordnest/internal/service"
	"github.com/rs/zerolog/log"
)

type VocabularyController struct {
	vocabService service.VocabularyService
}

func NewVocabularyController(vocabService service.VocabularyService) *VocabularyController {
	return &VocabularyController{vocabService: vocabService}
}

// CreateVocabulary godoc
// @Summary Add a vocabulary word
// @Description Creates a word with at least one meaning. The schedule starts at the defaults: due immediately, easiness 2.5.
// @Tags Vocabulary
// @Accept json
// @Produce json
// @Param vocabulary body dto.VocabularyCreateDTO true "Word with meanings"
// @Success 201 {object} dto.VocabularyDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Router /vocabularies [post]
func (c *VocabularyController) CreateVocabulary(ctx *gin.Context) {
	var req dto.VocabularyCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateVocabulary: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	vocab, err := c.vocabService.CreateVocabulary(req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, vocab)
}

// ListVocabularies godoc
// @Summary List a user's vocabulary
// @Tags Vocabulary
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {array} dto.VocabularyDTO
// @Router /vocabularies [get]
func (c *VocabularyController) ListVocabularies(ctx *gin.Context) {
	userID, ok := parseUserIDQuery(ctx)
	if !ok {
		return
	}
	vocabs, err := c.vocabService.ListVocabularies(userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, vocabs)
}

// ListDueVocabularies godoc
// @Summary List words currently due for review
// @Tags Vocabulary
// @Produce json
// @Param user_id query int true "User ID"
// @Success 200 {array} dto.VocabularyDTO
// @Router /vocabularies/due [get]
func (c *VocabularyController) ListDueVocabularies(ctx *gin.Context) {
	userID, ok := parseUserIDQuery(ctx)
	if !ok {
		return
	}
	vocabs, err := c.vocabService.ListDueVocabularies(userID, time.Now())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, vocabs)
}

// GetVocabulary godoc
// @Summary Get one vocabulary word
// @Tags Vocabulary
// @Produce json
// @Param vocabulary_id path int true "Vocabulary ID"
// @Param user_id query int true "User ID"
// @Success 200 {object} dto.VocabularyDTO
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /vocabularies/{vocabulary_id} [get]
func (c *VocabularyController) GetVocabulary(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "vocabulary_id")
	if !ok {
		return
	}
	userID, ok := parseUserIDQuery(ctx)
	if !ok {
		return
	}
	vocab, err := c.vocabService.GetVocabulary(id, userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, vocab)
}

// UpdateVocabulary godoc
// @Summary Update a word's surface or audio
// @Description Schedule fields are not writable through the API; only reviews move them.
// @Tags Vocabulary
// @Accept json
// @Produce json
// @Param vocabulary_id path int true "Vocabulary ID"
// @Param vocabulary body dto.VocabularyUpdateDTO true "Updated fields"
// @Success 200 {object} dto.VocabularyDTO
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /vocabularies/{vocabulary_id} [put]
func (c *VocabularyController) UpdateVocabulary(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "vocabulary_id")
	if !ok {
		return
	}
	var req dto.VocabularyUpdateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	vocab, err := c.vocabService.UpdateVocabulary(id, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, vocab)
}

// DeleteVocabulary godoc
// @Summary Delete a vocabulary word
// @Tags Vocabulary
// @Param vocabulary_id path int true "Vocabulary ID"
// @Param user_id query int true "User ID"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Router /vocabularies/{vocabulary_id} [delete]
func (c *VocabularyController) DeleteVocabulary(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "vocabulary_id")
	if !ok {
		return
	}
	userID, ok := parseUserIDQuery(ctx)
	if !ok {
		return
	}
	if err := c.vocabService.DeleteVocabulary(id, userID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// EnrichWithAIMeaning godoc
// @Summary Generate an AI meaning for a word
// @Description Asks the AI provider for a learner-friendly definition and example sentence, stored as a meaning with source "ai".
// @Tags Vocabulary
// @Produce json
// @Param vocabulary_id path int true "Vocabulary ID"
// @Param user_id query int true "User ID"
// @Success 200 {object} dto.VocabularyDTO
// @Failure 404 {object} dto.ErrorResponse "Not found"
// @Failure 500 {object} dto.ErrorResponse "AI provider error"
// @Router /vocabularies/{vocabulary_id}/ai-meaning [post]
func (c *VocabularyController) EnrichWithAIMeaning(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "vocabulary_id")
	if !ok {
		return
	}
	userID, ok := parseUserIDQuery(ctx)
	if !ok {
		return
	}
	vocab, err := c.vocabService.EnrichWithAIMeaning(id, userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, vocab)
}
