package controller

import (
	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/service"
	"hangul_edu_backend/internal/util"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

type QuestionSetController struct {
	SetService     *service.QuestionSetService
	StorageService *service.StorageService
}

func NewQuestionSetController(setService *service.QuestionSetService, storageService *service.StorageService) *QuestionSetController {
	return &QuestionSetController{
		SetService:     setService,
		StorageService: storageService,
	}
}

// @Summary List visible question sets
// @Tags question-set
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/question-sets [get]
func (ctl *QuestionSetController) ListSets(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	sets, err := ctl.SetService.ListVisible(claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, sets)
}

// @Summary Question set detail (author view)
// @Tags question-set
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/question-sets/{id} [get]
func (ctl *QuestionSetController) GetSet(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	set, err := ctl.SetService.GetSet(id, claims.UserID, claims.Role == model.Admin)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, set)
}

// @Summary Create a question set (instructor)
// @Tags question-set
// @Security ApiKeyAuth
// @Success 201 {object} util.Response
// @Router /api/instructor/question-sets [post]
func (ctl *QuestionSetController) CreateSet(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var req service.QuestionSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	set, err := ctl.SetService.CreateSet(claims.UserID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Created(c, set)
}

// @Summary Update a question set (instructor)
// @Tags question-set
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/instructor/question-sets/{id} [put]
func (ctl *QuestionSetController) UpdateSet(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.QuestionSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	set, err := ctl.SetService.UpdateSet(id, claims.UserID, claims.Role == model.Admin, req)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, set)
}

// @Summary Delete a question set (instructor)
// @Tags question-set
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/instructor/question-sets/{id} [delete]
func (ctl *QuestionSetController) DeleteSet(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctl.SetService.DeleteSet(id, claims.UserID, claims.Role == model.Admin); err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, gin.H{"deleted": id})
}

// @Summary Add a question to a set (instructor)
// @Tags question-set
// @Security ApiKeyAuth
// @Success 201 {object} util.Response
// @Router /api/instructor/question-sets/{id}/questions [post]
func (ctl *QuestionSetController) AddQuestion(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	question, err := ctl.SetService.AddQuestion(id, claims.UserID, claims.Role == model.Admin, req)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Created(c, question)
}

// @Summary Update a question (instructor)
// @Tags question-set
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/instructor/questions/{id} [put]
func (ctl *QuestionSetController) UpdateQuestion(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	question, err := ctl.SetService.UpdateQuestion(id, claims.UserID, claims.Role == model.Admin, req)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, question)
}

// @Summary Delete a question (instructor)
// @Tags question-set
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/instructor/questions/{id} [delete]
func (ctl *QuestionSetController) DeleteQuestion(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctl.SetService.DeleteQuestion(id, claims.UserID, claims.Role == model.Admin); err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, gin.H{"deleted": id})
}

// @Summary Upload a question attachment (instructor)
// @Tags question-set
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/instructor/questions/attachments [post]
func (ctl *QuestionSetController) UploadAttachment(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := false
	for _, e := range append(util.AllowedImageExtensions, util.AllowedAudioExtensions...) {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		util.BadRequest(c, "unsupported attachment type")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	defer src.Close()

	filename := "attachments/" + model.GenerateUUID() + ext
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = util.MimeOctetStream
	}

	url, err := ctl.StorageService.Upload(c.Request.Context(), filename, src, file.Size, contentType)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	util.Success(c, gin.H{"url": url})
}
