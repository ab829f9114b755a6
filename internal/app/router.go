package app

import (
	"hangul_edu_backend/internal/config"
	"hangul_edu_backend/internal/middleware"
	"hangul_edu_backend/internal/model"
	"hangul_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerInstructorRoutes(authGroup, c)
	}

	a.registerAdminRoutes(router, c, repos, cfg)
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.Check)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/courses", c.course.ListPublished)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.PUT("/user/profile", c.user.UpdateProfile)
	rg.POST("/user/avatar/upload", c.user.UploadAvatar)

	// Courses and enrollment
	rg.GET("/courses/:id", c.course.GetCourse)
	rg.POST("/courses/:id/enroll", c.course.Enroll)
	rg.GET("/courses/:id/modules", c.course.ListModules)
	rg.GET("/courses/:id/live-sessions", c.liveSession.ListByCourse)
	rg.GET("/my/courses", c.course.MyCourses)
	rg.POST("/modules/:id/complete", c.course.CompleteModule)

	// Vocabulary
	rg.GET("/vocabulary", c.vocabulary.List)
	rg.GET("/vocabulary/:id", c.vocabulary.Get)

	// Question sets
	rg.GET("/question-sets", c.questionSet.ListSets)
	rg.GET("/question-sets/:id", c.questionSet.GetSet)

	// Tryouts
	rg.GET("/tryouts", c.tryout.ListSessions)
	rg.GET("/tryouts/:id", c.tryout.GetSession)
	rg.POST("/tryouts/:id/join", c.tryout.Join)
	rg.POST("/tryouts/:id/submit", c.tryout.Submit)
	rg.GET("/tryouts/:id/leaderboard", c.tryout.Leaderboard)

	// Progression
	rg.POST("/activities", c.progression.RecordActivity)
	rg.GET("/activities", c.progression.ListActivities)
	rg.GET("/streak", c.progression.GetStreak)
	rg.GET("/leaderboard/xp", c.progression.XPLeaderboard)
}

func (a *App) registerInstructorRoutes(rg *gin.RouterGroup, c *controllers) {
	instructor := rg.Group("/instructor")
	instructor.Use(middleware.RoleMiddleware(model.Instructor))
	{
		// Courses and modules
		instructor.GET("/courses", c.course.ListOwnCourses)
		instructor.POST("/courses", c.course.CreateCourse)
		instructor.PUT("/courses/:id", c.course.UpdateCourse)
		instructor.DELETE("/courses/:id", c.course.DeleteCourse)
		instructor.POST("/courses/:id/modules", c.course.AddModule)
		instructor.PUT("/modules/:id", c.course.UpdateModule)
		instructor.DELETE("/modules/:id", c.course.DeleteModule)

		// Live sessions
		instructor.POST("/courses/:id/live-sessions", c.liveSession.Schedule)
		instructor.PUT("/live-sessions/:id/status", c.liveSession.UpdateStatus)
		instructor.DELETE("/live-sessions/:id", c.liveSession.Delete)

		// Vocabulary
		instructor.POST("/vocabulary", c.vocabulary.Create)
		instructor.PUT("/vocabulary/:id", c.vocabulary.Update)
		instructor.DELETE("/vocabulary/:id", c.vocabulary.Delete)
		instructor.POST("/vocabulary/:id/audio", c.vocabulary.UploadAudio)

		// Question sets and questions
		instructor.POST("/question-sets", c.questionSet.CreateSet)
		instructor.PUT("/question-sets/:id", c.questionSet.UpdateSet)
		instructor.DELETE("/question-sets/:id", c.questionSet.DeleteSet)
		instructor.POST("/question-sets/:id/questions", c.questionSet.AddQuestion)
		instructor.PUT("/questions/:id", c.questionSet.UpdateQuestion)
		instructor.DELETE("/questions/:id", c.questionSet.DeleteQuestion)
		instructor.POST("/questions/attachments", c.questionSet.UploadAttachment)

		// Tryout sessions
		instructor.POST("/tryouts", c.tryout.CreateSession)
		instructor.PUT("/tryouts/:id", c.tryout.UpdateSession)
	}
}

func (a *App) registerAdminRoutes(router *gin.Engine, c *controllers, repos *repositories, cfg *config.Config) {
	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.ActivityMiddleware(repos.user), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.user.ListUsers)
		admin.POST("/users/:id/disable", c.user.DisableUser)
		admin.POST("/users/:id/reset-password", c.user.ResetPassword)
	}
}
