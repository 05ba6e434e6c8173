package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ptvinh/wordnest/internal/dto"
	"github.com/ptvinh/wordnest/internal/service"
	"github.com/rs/zerolog/log"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{reviewService: reviewService}
}

// StartSession godoc
// @Summary Start a review session
// @Description Pulls due (or unseen) vocabulary, generates questions and opens a session. With nothing to review the session completes immediately with an empty question list.
// @Tags Review Sessions
// @Accept json
// @Produce json
// @Param session_data body dto.SessionStartDTO true "User, mode and question limit"
// @Success 201 {object} dto.SessionResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /review-sessions [post]
func (c *ReviewController) StartSession(ctx *gin.Context) {
	var req dto.SessionStartDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("StartSession: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.reviewService.StartSession(req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// SubmitBatch godoc
// @Summary Submit all answers of a session
// @Description Grades every submission, advances each item's schedule and completes the session atomically. On any error nothing is applied and the session stays active.
// @Tags Review Sessions
// @Accept json
// @Produce json
// @Param session_id path int true "Review session ID"
// @Param batch body dto.BatchSubmitDTO true "Submissions with telemetry"
// @Success 200 {object} dto.SessionSummaryDTO
// @Failure 400 {object} dto.ErrorResponse "Malformed batch or inactive session"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Failure 409 {object} dto.ErrorResponse "Concurrent batch on the same items, retry"
// @Router /review-sessions/{session_id}/submissions [post]
func (c *ReviewController) SubmitBatch(ctx *gin.Context) {
	sessionID, ok := parseIDParam(ctx, "session_id")
	if !ok {
		return
	}
	var req dto.BatchSubmitDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitBatch: failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	summary, err := c.reviewService.SubmitBatch(sessionID, req)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, summary)
}

// AbandonSession godoc
// @Summary Abandon an active session
// @Description Marks the session abandoned. No schedule state changes; due items remain due.
// @Tags Review Sessions
// @Accept json
// @Produce json
// @Param session_id path int true "Review session ID"
// @Param body body dto.AbandonDTO true "Caller identity"
// @Success 204 "Abandoned"
// @Failure 400 {object} dto.ErrorResponse "Session is not active"
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /review-sessions/{session_id}/abandon [post]
func (c *ReviewController) AbandonSession(ctx *gin.Context) {
	sessionID, ok := parseIDParam(ctx, "session_id")
	if !ok {
		return
	}
	var req dto.AbandonDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if err := c.reviewService.AbandonSession(sessionID, req.UserID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetSession godoc
// @Summary Get a review session
// @Tags Review Sessions
// @Produce json
// @Param session_id path int true "Review session ID"
// @Param user_id query int true "Caller user ID"
// @Success 200 {object} dto.SessionDetailDTO
// @Failure 404 {object} dto.ErrorResponse "Session not found"
// @Router /review-sessions/{session_id} [get]
func (c *ReviewController) GetSession(ctx *gin.Context) {
	sessionID, ok := parseIDParam(ctx, "session_id")
	if !ok {
		return
	}
	userID, ok := parseUserIDQuery(ctx)
	if !ok {
		return
	}

	detail, err := c.reviewService.GetSession(sessionID, userID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, detail)
}
