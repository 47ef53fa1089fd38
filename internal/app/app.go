package app

import (
	"context"
	"culturefit_backend/internal/config"
	"culturefit_backend/internal/controller"
	"culturefit_backend/internal/repository"
	"culturefit_backend/internal/service"
	"culturefit_backend/pkg/database"
	"culturefit_backend/pkg/logger"
	"culturefit_backend/pkg/monitoring"
	"culturefit_backend/pkg/security"
	"culturefit_backend/pkg/tracing"
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
	Config *config.Config
	Router *gin.Engine
	DB     *gorm.DB
	Redis  *redis.Client
}

type repositories struct {
	user      *repository.UserRepository
	campaign  *repository.CampaignRepository
	question  *repository.QuestionRepository
	invite    *repository.InviteRepository
	candidate *repository.CandidateRepository
}

type services struct {
	auth       *service.AuthService
	user       *service.UserService
	mail       *service.MailService
	storage    *service.StorageService
	campaign   *service.CampaignService
	question   *service.QuestionService
	invite     *service.InviteService
	assessment *service.AssessmentService
	candidate  *service.CandidateService
	report     *service.ReportService
}

type controllers struct {
	auth       *controller.AuthController
	user       *controller.UserController
	campaign   *controller.CampaignController
	question   *controller.QuestionController
	invite     *controller.InviteController
	assessment *controller.AssessmentController
	candidate  *controller.CandidateController
	report     *controller.ReportController
	health     *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:      repository.NewUserRepository(db),
		campaign:  repository.NewCampaignRepository(db),
		question:  repository.NewQuestionRepository(db),
		invite:    repository.NewInviteRepository(db),
		candidate: repository.NewCandidateRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.mail = service.NewMailService(cfg)
	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.user = service.NewUserService(repos.user, s.mail)
	s.campaign = service.NewCampaignService(repos.campaign, repos.invite, repos.candidate)
	s.question = service.NewQuestionService(repos.question, rdb, cfg)
	s.invite = service.NewInviteService(repos.invite, repos.campaign, s.mail)
	s.assessment = service.NewAssessmentService(s.question, repos.invite)
	s.candidate = service.NewCandidateService(repos.candidate)
	s.report = service.NewReportService(repos.campaign, repos.candidate, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		user:       controller.NewUserController(s.user),
		campaign:   controller.NewCampaignController(s.campaign),
		question:   controller.NewQuestionController(s.question),
		invite:     controller.NewInviteController(s.invite),
		assessment: controller.NewAssessmentController(s.assessment),
		candidate:  controller.NewCandidateController(s.candidate),
		report:     controller.NewReportController(s.report),
		health:     controller.NewHealthController(db),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	router.Use(security.RateLimiter(maxRequests, window))

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	app := &App{
		Config: cfg,
		DB:     db,
	}

	if cfg.MigrateOnly {
		return app
	}

	rdb, err := database.InitRedis(&cfg.Redis)
	if err != nil {
		// The question cache degrades to direct reads without Redis.
		logger.Log.Warn("Failed to initialize redis, question cache disabled", zap.Error(err))
		rdb = nil
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	controllers := app.initControllers(services, db)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("culturefit-backend", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, repos, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	return app
}

// ReloadConfig applies the hot-reloadable sections of a freshly parsed
// config. Server, database, JWT and rate limit settings are read once
// at startup and need a restart.
func (a *App) ReloadConfig(newCfg *config.Config) {
	a.Config.Email = newCfg.Email
	logger.Log.Info("Configuration reloaded")
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
