package controller

import (
	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/service"
	"hangul_edu_backend/internal/util"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"
)

type UserController struct {
	UserService    *service.UserService
	StorageService *service.StorageService
}

func NewUserController(userService *service.UserService, storageService *service.StorageService) *UserController {
	return &UserController{
		UserService:    userService,
		StorageService: storageService,
	}
}

type updateProfileRequest struct {
	Name   string `json:"name" binding:"omitempty,min=2,max=100"`
	Avatar string `json:"avatar"`
}

// @Summary Update own profile
// @Tags user
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/user/profile [put]
func (ctl *UserController) UpdateProfile(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user, err := ctl.UserService.UpdateProfile(claims.UserID, req.Name, req.Avatar)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, user)
}

// @Summary Upload own avatar
// @Tags user
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/user/avatar/upload [post]
func (ctl *UserController) UploadAvatar(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		util.BadRequest(c, "file is required")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := false
	for _, e := range util.AllowedImageExtensions {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		util.BadRequest(c, "unsupported image type")
		return
	}

	src, err := file.Open()
	if err != nil {
		util.LogInternalError(c, err)
		return
	}
	defer src.Close()

	filename := "avatars/" + model.GenerateUUID() + ext
	contentType := file.Header.Get("Content-Type")
	if contentType == "" {
		contentType = util.MimeOctetStream
	}

	url, err := ctl.StorageService.Upload(c.Request.Context(), filename, src, file.Size, contentType)
	if err != nil {
		util.LogInternalError(c, err)
		return
	}

	user, err := ctl.UserService.UpdateProfile(claims.UserID, "", url)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, gin.H{"avatar": user.Avatar})
}

// @Summary List users (admin)
// @Tags admin
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/users [get]
func (ctl *UserController) ListUsers(c *gin.Context) {
	page, limit := pagination(c)

	users, total, err := ctl.UserService.GetUsers(page, limit, c.Query("role"), c.Query("search"))
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, util.PageResponse{List: users, Total: total, Page: page, Limit: limit})
}

type disableUserRequest struct {
	Disabled *bool `json:"disabled" binding:"required"`
}

// @Summary Disable or enable a user (admin)
// @Tags admin
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id}/disable [patch]
func (ctl *UserController) DisableUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req disableUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	if err := ctl.UserService.DisableUser(id, *req.Disabled); err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, gin.H{"disabled": *req.Disabled})
}

// @Summary Reset a user's password (admin)
// @Tags admin
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/admin/users/{id}/reset-password [post]
func (ctl *UserController) ResetPassword(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	tempPassword, err := ctl.UserService.ResetPassword(id)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, gin.H{"tempPassword": tempPassword})
}
