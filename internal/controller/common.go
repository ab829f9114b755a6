package controller

import (
	"errors"
	"hangul_edu_backend/internal/util"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// respondError maps domain errors to HTTP statuses; anything unmapped is a
// logged 500.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrUserNotFound),
		errors.Is(err, util.ErrCourseNotFound),
		errors.Is(err, util.ErrModuleNotFound),
		errors.Is(err, util.ErrQuestionSetNotFound),
		errors.Is(err, util.ErrQuestionNotFound),
		errors.Is(err, util.ErrVocabularyNotFound),
		errors.Is(err, util.ErrLiveSessionNotFound),
		errors.Is(err, util.ErrSessionNotFound),
		errors.Is(err, util.ErrParticipantNotFound):
		util.NotFound(c)
	case errors.Is(err, util.ErrPermissionDenied),
		errors.Is(err, util.ErrNotEnrolled):
		util.Forbidden(c)
	case errors.Is(err, util.ErrSessionNotYetOpen),
		errors.Is(err, util.ErrSessionClosed),
		errors.Is(err, util.ErrAlreadySubmitted):
		util.Conflict(c, err.Error())
	case errors.Is(err, util.ErrAnswerCountMismatch),
		errors.Is(err, util.ErrInvalidActivityType),
		errors.Is(err, util.ErrEmailRegistered):
		util.BadRequest(c, err.Error())
	case errors.Is(err, util.ErrInvalidCredentials):
		util.Error(c, http.StatusUnauthorized, err.Error())
	default:
		util.LogInternalError(c, err)
	}
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		util.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func parseQueryID(c *gin.Context, raw string) (uint, bool) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		util.BadRequest(c, "invalid id")
		return 0, false
	}
	return uint(id), true
}

func pagination(c *gin.Context) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}
