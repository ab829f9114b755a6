package controller

import (
	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/service"
	"hangul_edu_backend/internal/util"
	"hangul_edu_backend/pkg/logger"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AuthController struct {
	AuthService        *service.AuthService
	UserService        *service.UserService
	ProgressionService *service.ProgressionService
}

func NewAuthController(authService *service.AuthService, userService *service.UserService, progressionService *service.ProgressionService) *AuthController {
	return &AuthController{
		AuthService:        authService,
		UserService:        userService,
		ProgressionService: progressionService,
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Success 201 {object} util.Response
// @Router /api/register [post]
func (ctl *AuthController) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	user := &model.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     model.Student,
	}
	if err := ctl.AuthService.Register(user); err != nil {
		respondError(c, err)
		return
	}

	util.Created(c, gin.H{"id": user.ID, "email": user.Email})
}

// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/login [post]
func (ctl *AuthController) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	token, user, err := ctl.AuthService.Login(req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	// A login touches the streak even though it carries no XP by itself.
	if _, err := ctl.ProgressionService.RecordActivity(user.ID, model.ActivityLogin, 0, "login", "", time.Now()); err != nil {
		logger.Log.Warn("login activity not recorded", zap.Uint("user", user.ID), zap.Error(err))
	}

	util.Success(c, gin.H{
		"token": token,
		"user": gin.H{
			"id":    user.ID,
			"name":  user.Name,
			"email": user.Email,
			"role":  user.Role,
		},
	})
}

// @Summary Current user's profile
// @Tags auth
// @Produce json
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/profile [get]
func (ctl *AuthController) GetProfile(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	user, err := ctl.UserService.GetUserByID(claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, user)
}
