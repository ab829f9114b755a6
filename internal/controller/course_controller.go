package controller

import (
	"fmt"
	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/internal/service"
	"hangul_edu_backend/internal/util"
	"hangul_edu_backend/pkg/logger"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// XP granted for finishing a course module.
const moduleCompletionXP = 50

type CourseController struct {
	CourseService      *service.CourseService
	ProgressionService *service.ProgressionService
}

func NewCourseController(courseService *service.CourseService, progressionService *service.ProgressionService) *CourseController {
	return &CourseController{
		CourseService:      courseService,
		ProgressionService: progressionService,
	}
}

// @Summary List published courses
// @Tags course
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/courses [get]
func (ctl *CourseController) ListPublished(c *gin.Context) {
	page, limit := pagination(c)

	courses, total, err := ctl.CourseService.ListPublished(page, limit, model.LevelTier(c.Query("level")))
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, util.PageResponse{List: courses, Total: total, Page: page, Limit: limit})
}

// @Summary Course detail with modules
// @Tags course
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/courses/{id} [get]
func (ctl *CourseController) GetCourse(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	course, err := ctl.CourseService.GetCourse(id)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, course)
}

// @Summary Enroll into a course
// @Tags course
// @Security ApiKeyAuth
// @Success 201 {object} util.Response
// @Router /api/courses/{id}/enroll [post]
func (ctl *CourseController) Enroll(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	enrollment, err := ctl.CourseService.Enroll(id, claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Created(c, enrollment)
}

// @Summary Own enrollments
// @Tags course
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/my/courses [get]
func (ctl *CourseController) MyCourses(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	enrollments, err := ctl.CourseService.ListEnrollments(claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, enrollments)
}

// @Summary Modules of a course
// @Tags course
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/courses/{id}/modules [get]
func (ctl *CourseController) ListModules(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	modules, err := ctl.CourseService.ListModules(id)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, modules)
}

// @Summary Mark a course module as finished
// @Tags course
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/modules/{id}/complete [post]
func (ctl *CourseController) CompleteModule(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	mod, courseCompleted, err := ctl.CourseService.CompleteModule(id, claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	description := fmt.Sprintf("module %d: %s", mod.ID, mod.Title)
	if _, err := ctl.ProgressionService.RecordActivity(claims.UserID, model.ActivityModuleCompleted, moduleCompletionXP, description, "", time.Now()); err != nil {
		logger.Log.Warn("module activity not recorded", zap.Uint("user", claims.UserID), zap.Error(err))
	}

	util.Success(c, gin.H{
		"moduleId":        mod.ID,
		"courseId":        mod.CourseID,
		"courseCompleted": courseCompleted,
	})
}

// @Summary Create a course (instructor)
// @Tags course
// @Security ApiKeyAuth
// @Success 201 {object} util.Response
// @Router /api/instructor/courses [post]
func (ctl *CourseController) CreateCourse(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	var req service.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	course, err := ctl.CourseService.CreateCourse(claims.UserID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Created(c, course)
}

// @Summary Update a course (instructor)
// @Tags course
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/instructor/courses/{id} [put]
func (ctl *CourseController) UpdateCourse(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.CourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	course, err := ctl.CourseService.UpdateCourse(id, claims.UserID, claims.Role == model.Admin, req)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, course)
}

// @Summary Delete a course (instructor)
// @Tags course
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/instructor/courses/{id} [delete]
func (ctl *CourseController) DeleteCourse(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctl.CourseService.DeleteCourse(id, claims.UserID, claims.Role == model.Admin); err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, gin.H{"deleted": id})
}

// @Summary Own courses (instructor)
// @Tags course
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/instructor/courses [get]
func (ctl *CourseController) ListOwnCourses(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	courses, err := ctl.CourseService.ListByInstructor(claims.UserID)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, courses)
}

// @Summary Add a module (instructor)
// @Tags course
// @Security ApiKeyAuth
// @Success 201 {object} util.Response
// @Router /api/instructor/courses/{id}/modules [post]
func (ctl *CourseController) AddModule(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.ModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	mod, err := ctl.CourseService.AddModule(id, claims.UserID, claims.Role == model.Admin, req)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Created(c, mod)
}

// @Summary Update a module (instructor)
// @Tags course
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/instructor/modules/{id} [put]
func (ctl *CourseController) UpdateModule(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req service.ModuleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.BadRequest(c, err.Error())
		return
	}

	mod, err := ctl.CourseService.UpdateModule(id, claims.UserID, claims.Role == model.Admin, req)
	if err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, mod)
}

// @Summary Delete a module (instructor)
// @Tags course
// @Security ApiKeyAuth
// @Success 200 {object} util.Response
// @Router /api/instructor/modules/{id} [delete]
func (ctl *CourseController) DeleteModule(c *gin.Context) {
	claims := util.GetUserFromContext(c)
	if claims == nil {
		util.Unauthorized(c)
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := ctl.CourseService.DeleteModule(id, claims.UserID, claims.Role == model.Admin); err != nil {
		respondError(c, err)
		return
	}

	util.Success(c, gin.H{"deleted": id})
}
