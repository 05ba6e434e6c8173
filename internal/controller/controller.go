package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ptvinh/wordnest/internal/apperr"
	"github.com/ptvinh/wordnest/internal/dto"
)

// respondError maps the service error taxonomy onto HTTP status codes.
func respondError(ctx *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, apperr.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, apperr.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, apperr.ErrConflict):
		status = http.StatusConflict
	}
	ctx.JSON(status, dto.ErrorResponse{Message: err.Error()})
}

func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

// parseUserIDQuery reads the temporary user_id query parameter. An auth layer
// will replace this with a token-derived identity.
func parseUserIDQuery(ctx *gin.Context) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Query("user_id"), 10, 32)
	if err != nil || val == 0 {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "user_id query parameter is required"})
		return 0, false
	}
	return uint(val), true
}
