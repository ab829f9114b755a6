package app

import (
	"context"
	"hangul_edu_backend/internal/config"
	"hangul_edu_backend/internal/controller"
	"hangul_edu_backend/internal/repository"
	"hangul_edu_backend/internal/service"
	"hangul_edu_backend/pkg/configwatcher"
	"hangul_edu_backend/pkg/database"
	"hangul_edu_backend/pkg/logger"
	"hangul_edu_backend/pkg/monitoring"
	"hangul_edu_backend/pkg/security"
	"hangul_edu_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user        *repository.UserRepository
	course      *repository.CourseRepository
	enrollment  *repository.EnrollmentRepository
	questionSet *repository.QuestionSetRepository
	tryout      *repository.TryoutRepository
	activityLog *repository.ActivityLogRepository
	vocabulary  *repository.VocabularyRepository
	liveSession *repository.LiveSessionRepository
}

type services struct {
	auth        *service.AuthService
	user        *service.UserService
	storage     *service.StorageService
	course      *service.CourseService
	questionSet *service.QuestionSetService
	tryout      *service.TryoutService
	progression *service.ProgressionService
	vocabulary  *service.VocabularyService
	liveSession *service.LiveSessionService
}

type controllers struct {
	auth        *controller.AuthController
	user        *controller.UserController
	course      *controller.CourseController
	questionSet *controller.QuestionSetController
	tryout      *controller.TryoutController
	progression *controller.ProgressionController
	vocabulary  *controller.VocabularyController
	liveSession *controller.LiveSessionController
	health      *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:        repository.NewUserRepository(db),
		course:      repository.NewCourseRepository(db),
		enrollment:  repository.NewEnrollmentRepository(db),
		questionSet: repository.NewQuestionSetRepository(db),
		tryout:      repository.NewTryoutRepository(db),
		activityLog: repository.NewActivityLogRepository(db),
		vocabulary:  repository.NewVocabularyRepository(db),
		liveSession: repository.NewLiveSessionRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user)
	s.course = service.NewCourseService(repos.course, repos.enrollment)
	s.questionSet = service.NewQuestionSetService(repos.questionSet)
	s.tryout = service.NewTryoutService(
		repos.tryout,
		repos.questionSet,
		repos.enrollment,
		rdb,
		time.Duration(cfg.Leaderboard.CacheTTLSeconds)*time.Second,
	)
	s.progression = service.NewProgressionService(repos.user, repos.activityLog, db)
	s.vocabulary = service.NewVocabularyService(repos.vocabulary)
	s.liveSession = service.NewLiveSessionService(repos.liveSession, repos.course)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:        controller.NewAuthController(s.auth, s.user, s.progression),
		user:        controller.NewUserController(s.user, s.storage),
		course:      controller.NewCourseController(s.course, s.progression),
		questionSet: controller.NewQuestionSetController(s.questionSet, s.storage),
		tryout:      controller.NewTryoutController(s.tryout, s.questionSet, s.progression),
		progression: controller.NewProgressionController(s.progression),
		vocabulary:  controller.NewVocabularyController(s.vocabulary, s.storage),
		liveSession: controller.NewLiveSessionController(s.liveSession),
		health:      controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(&cfg.RateLimit))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) watchConfig() {
	go configwatcher.WatchConfig("configs/config.yaml", a.Config, func(cfg interface{}) {
		newCfg, ok := cfg.(*config.Config)
		if !ok {
			return
		}
		logger.Log.Info("Config reloaded")
		for _, callback := range a.configCallbacks {
			callback(newCfg)
		}
	})
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(cfg)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}

	if cfg.MigrateOnly {
		return &App{Config: cfg, DB: db}
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
	}

	app := &App{
		Config: cfg,
		DB:     db,
		Redis:  rdb,
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, db, rdb)
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("hangul-edu", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.watchConfig()

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
