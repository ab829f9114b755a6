package controller

import (
	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/service"
	"hangul_edu_backend/internal/util"
	"hangul_edu_backend/pkg/monitoring"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

type ProgressionController struct {
	ProgressionService *service.ProgressionService
}

func NewProgressionController(progressionService *service.ProgressionService) *ProgressionController {
	return &ProgressionController{ProgressionService: progressionService}
}

type recordActivityRequest struct {
	Type        string `json:"type" binding:"required"`
	Description string `json:"description" binding:"max=255"`
	XPEarned    int    `json:"xpEarned" binding:"gte=0"`
	Metadata    string `json:"metadata"`
}

// @Summary Record a progression activity event
// @Tags progression
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/activities [post]
func (ctl *ProgressionController) RecordActivity(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var req recordActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	activityType := model.ActivityType(req.Type)
	if !activityType.Valid() {
		util.BadRequest(c, util.ErrInvalidActivityType.Error())
		return
	}

	result, err := ctl.ProgressionService.RecordActivity(claims.UserID, activityType, req.XPEarned, req.Description, req.Metadata, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}
	monitoring.ActivityEvents.WithLabelValues(string(activityType)).Inc()

	util.Success(c, result)
}

// @Summary Own activity log
// @Tags progression
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/activities [get]
func (ctl *ProgressionController) ListActivities(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	page, limit := pagination(c)

	entries, total, err := ctl.ProgressionService.ListActivities(claims.UserID, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, util.PageResponse{List: entries, Total: total, Page: page, Limit: limit})
}

// @Summary Current streak projection
// @Tags progression
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/streak [get]
func (ctl *ProgressionController) GetStreak(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	view, err := ctl.ProgressionService.GetStreakView(claims.UserID, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, view)
}

type xpLeaderboardEntry struct {
	Rank   int    `json:"rank"`
	UserID uint   `json:"userId"`
	Name   string `json:"name"`
	XP     int    `json:"xp"`
	Level  int    `json:"level"`
}

// @Summary Platform-wide XP leaderboard
// @Tags progression
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/leaderboard/xp [get]
func (ctl *ProgressionController) XPLeaderboard(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 50 {
		limit = 10
	}

	users, err := ctl.ProgressionService.TopByXP(limit)
	if err != nil {
		respondError(c, err)
		return
	}

	entries := make([]xpLeaderboardEntry, len(users))
	for i, u := range users {
		entries[i] = xpLeaderboardEntry{
			Rank:   i + 1,
			UserID: u.ID,
			Name:   u.Name,
			XP:     u.XP,
			Level:  u.Level,
		}
	}

	util.Success(c, entries)
}
