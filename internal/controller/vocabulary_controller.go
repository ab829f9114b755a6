package controller

import (
	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/service"
	"hangul_edu_backend/internal/util"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

type VocabularyController struct {
	VocabService   *service.VocabularyService
	StorageService *service.StorageService
}

func NewVocabularyController(vocabService *service.VocabularyService, storageService *service.StorageService) *VocabularyController {
	return &VocabularyController{
		VocabService:   vocabService,
		StorageService: storageService,
	}
}

// @Summary Browse vocabulary entries
// @Tags vocabulary
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/vocabulary [get]
func (ctl *VocabularyController) List(c *gin.Context) {
	page, limit := pagination(c)

	level := model.LevelTier(c.Query("level"))
	if level != "" && !level.Valid() {
		util.BadRequest(c, "invalid level")
		return
	}

	entries, total, err := ctl.VocabService.List(page, limit, level, c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, util.PageResponse{List: entries, Total: total, Page: page, Limit: limit})
}

// @Summary Vocabulary entry detail
// @Tags vocabulary
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/vocabulary/{id} [get]
func (ctl *VocabularyController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	entry, err := ctl.VocabService.Get(id)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, entry)
}

// @Summary Create a vocabulary entry (instructor)
// @Tags vocabulary
// @Security ApiKeyAuth
// @Success 201 {object} util.Response
// @Router /api/instructor/vocabulary [post]
func (ctl *VocabularyController) Create(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var req service.VocabularyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	entry, err := ctl.VocabService.Create(claims.UserID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Created(c, entry)
}

// @Summary Update a vocabulary entry (instructor)
// @Tags vocabulary
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/instructor/vocabulary/{id} [put]
func (ctl *VocabularyController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.VocabularyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	entry, err := ctl.VocabService.Update(id, req)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, entry)
}

// @Summary Delete a vocabulary entry (instructor)
// @Tags vocabulary
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/instructor/vocabulary/{id} [delete]
func (ctl *VocabularyController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctl.VocabService.Delete(id); err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, gin.H{"deleted": id})
}

// @Summary Upload pronunciation audio for an entry (instructor)
// @Tags vocabulary
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/instructor/vocabulary/{id}/audio [post]
func (ctl *VocabularyController) UploadAudio(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := ctl.VocabService.Get(id); err != nil {
		respondError(c, err)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := false
	for _, e := range util.AllowedAudioExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		util.BadRequest(c, "unsupported audio type")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	defer src.Close()

	filename := "vocabulary/" + model.GenerateUUID() + ext
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = util.MimeOctetStream
	}

	url, err := ctl.StorageService.Upload(c.Request.Context(), filename, src, file.Size, contentType)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	if _, err := ctl.VocabService.SetAudioURL(id, url); err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, gin.H{"url": url})
}
