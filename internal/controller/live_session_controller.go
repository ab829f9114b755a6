package controller

import (
	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/service"
	"hangul_edu_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LiveSessionController struct {
	LiveService *service.LiveSessionService
}

func NewLiveSessionController(liveService *service.LiveSessionService) *LiveSessionController {
	return &LiveSessionController{LiveService: liveService}
}

// @Summary List live sessions for a course
// @Tags live-session
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/live-sessions [get]
func (ctl *LiveSessionController) ListByCourse(c *gin.Context) {
	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	sessions, err := ctl.LiveService.ListByCourse(courseID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, sessions)
}

// @Summary Schedule a live session (instructor)
// @Tags live-session
// @Security ApiKeyAuth
// @Success 201 {object} util.Response
// @Router /api/instructor/courses/{id}/live-sessions [post]
func (ctl *LiveSessionController) Schedule(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	courseID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.LiveSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	session, err := ctl.LiveService.Schedule(courseID, claims.UserID, claims.Role == model.Admin, req)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Created(c, session)
}

type liveStatusRequest struct {
	Status model.LiveSessionStatus `json:"status" binding:"required,oneof=scheduled live ended cancelled"`
}

// @Summary Update live session status (instructor)
// @Tags live-session
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/instructor/live-sessions/{id}/status [put]
func (ctl *LiveSessionController) UpdateStatus(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req liveStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	session, err := ctl.LiveService.UpdateStatus(id, claims.UserID, claims.Role == model.Admin, req.Status)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, session)
}

// @Summary Delete a live session (instructor)
// @Tags live-session
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/instructor/live-sessions/{id} [delete]
func (ctl *LiveSessionController) Delete(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctl.LiveService.Delete(id, claims.UserID, claims.Role == model.Admin); err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, gin.H{"deleted": id})
}
