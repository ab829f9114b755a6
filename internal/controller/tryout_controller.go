package controller

import (
	"fmt"
	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/service"
	"hangul_edu_backend/internal/util"
	"hangul_edu_backend/pkg/logger"
	"hangul_edu_backend/pkg/monitoring"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type TryoutController struct {
	TryoutService      *service.TryoutService
	SetService         *service.QuestionSetService
	ProgressionService *service.ProgressionService
}

func NewTryoutController(tryoutService *service.TryoutService, setService *service.QuestionSetService, progressionService *service.ProgressionService) *TryoutController {
	return &TryoutController{
		TryoutService:      tryoutService,
		SetService:         setService,
		ProgressionService: progressionService,
	}
}

type submitRequest struct {
	Answers        []uint `json:"answers" binding:"required"`
	ElapsedSeconds int    `json:"elapsedSeconds" binding:"gte=0"`
}

// tryoutQuestion is the participant-facing question shape: options without
// the correctness flag.
type tryoutQuestion struct {
	ID         uint            `json:"id"`
	Position   int             `json:"position"`
	Prompt     string          `json:"prompt"`
	Attachment string          `json:"attachment,omitempty"`
	Level      model.LevelTier `json:"level"`
	Options    []tryoutOption  `json:"options"`
}

type tryoutOption struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

// @Summary List tryout sessions
// @Tags tryout
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/tryouts [get]
func (ctl *TryoutController) ListSessions(c *gin.Context) {
	var courseID uint
	if raw := c.Query("courseId"); raw != "" {
		id, ok := parseQueryID(c, raw)
		if !ok {
			return
		}
		courseID = id
	}

	sessions, err := ctl.TryoutService.ListSessions(courseID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, sessions)
}

// @Summary Tryout session detail with sanitized questions
// @Tags tryout
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/tryouts/{id} [get]
func (ctl *TryoutController) GetSession(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	session, set, err := ctl.TryoutService.SessionWithQuestions(id)
	if err != nil {
		respondError(c, err)
		return
	}

	questions := make([]tryoutQuestion, len(set.Questions))
	for i, q := range set.Questions {
		options := make([]tryoutOption, len(q.Options))
		for j, opt := range q.Options {
			options[j] = tryoutOption{ID: opt.ID, Text: opt.Text}
		}
		questions[i] = tryoutQuestion{
			ID:         q.ID,
			Position:   q.Position,
			Prompt:     q.Prompt,
			Attachment: q.Attachment,
			Level:      q.Level,
			Options:    options,
		}
	}

	util.Success(c, gin.H{
		"session":   session,
		"open":      session.Open(time.Now()),
		"questions": questions,
	})
}

// @Summary Join a tryout session
// @Tags tryout
// @Security ApiKeyAuth
// @Success 201 {object} util.Response
// @Router /api/tryouts/{id}/join [post]
func (ctl *TryoutController) Join(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	participant, err := ctl.TryoutService.Join(claims.UserID, id, time.Now())
	if err != nil {
		respondError(c, err)
		return
	}

	util.Created(c, participant)
}

// @Summary Submit tryout answers
// @Tags tryout
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/tryouts/{id}/submit [post]
func (ctl *TryoutController) Submit(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	result, err := ctl.TryoutService.Submit(claims.UserID, id, req.Answers, req.ElapsedSeconds, time.Now())
	if err != nil {
		monitoring.TryoutSubmissions.WithLabelValues("rejected").Inc()
		respondError(c, err)
		return
	}
	monitoring.TryoutSubmissions.WithLabelValues("graded").Inc()

	// Submitting a tryout is a progression event; XP scales with the score.
	xp := result.Score * 10
	description := fmt.Sprintf("tryout %d: %d/%d", id, result.Score, result.Total)
	if _, err := ctl.ProgressionService.RecordActivity(claims.UserID, model.ActivityTryoutSubmitted, xp, description, "", time.Now()); err != nil {
		logger.Log.Warn("tryout activity not recorded", zap.Uint("user", claims.UserID), zap.Error(err))
	}

	util.Success(c, result)
}

// @Summary Session leaderboard
// @Tags tryout
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/tryouts/{id}/leaderboard [get]
func (ctl *TryoutController) Leaderboard(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	entries, err := ctl.TryoutService.Leaderboard(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, entries)
}

// @Summary Create a tryout session (instructor)
// @Tags tryout
// @Security ApiKeyAuth
// @Success 201 {object} util.Response
// @Router /api/instructor/tryouts [post]
func (ctl *TryoutController) CreateSession(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var req service.CreateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	session, err := ctl.TryoutService.CreateSession(claims.UserID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Created(c, session)
}

// @Summary Update a tryout session (instructor)
// @Tags tryout
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/instructor/tryouts/{id} [put]
func (ctl *TryoutController) UpdateSession(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.UpdateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	session, err := ctl.TryoutService.UpdateSession(id, claims.UserID, claims.Role == model.Admin, req)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, session)
}
