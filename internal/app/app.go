package app

import (
	"bizcanvas_backend/internal/config"
	"bizcanvas_backend/internal/controller"
	"bizcanvas_backend/internal/llm"
	"bizcanvas_backend/internal/repository"
	"bizcanvas_backend/internal/service"
	"bizcanvas_backend/pkg/database"
	"bizcanvas_backend/pkg/logger"
	"bizcanvas_backend/pkg/monitoring"
	"bizcanvas_backend/pkg/security"
	"bizcanvas_backend/pkg/tracing"
	"context"
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
	services        *services
	configCallbacks []func(*config.Config)
}

type repositories struct {
	user       *repository.UserRepository
	reference  *repository.ReferenceRepository
	assessment *repository.AssessmentRepository
	answer     *repository.AnswerRepository
	insight    *repository.InsightRepository
}

type services struct {
	auth       *service.AuthService
	storage    *service.StorageService
	reference  *service.ReferenceService
	saver      *service.AnswerSaver
	answer     *service.AnswerService
	assessment *service.AssessmentService
	analytics  *service.AnalyticsService
	insight    *service.InsightService
	report     *service.ReportService
}

type controllers struct {
	auth       *controller.AuthController
	reference  *controller.ReferenceController
	assessment *controller.AssessmentController
	report     *controller.ReportController
	health     *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ReloadConfig applies a hot-reloaded configuration. Only fields that are
// safe to change at runtime take effect; server port and database settings
// need a restart.
func (a *App) ReloadConfig(newCfg *config.Config) {
	a.Config.AI = newCfg.AI
	a.Config.CORS = newCfg.CORS
	a.Config.RateLimit = newCfg.RateLimit
	a.Config.Autosave = newCfg.Autosave

	for _, callback := range a.configCallbacks {
		callback(a.Config)
	}

	logger.Log.Info("Configuration reloaded")
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:       repository.NewUserRepository(db),
		reference:  repository.NewReferenceRepository(db),
		assessment: repository.NewAssessmentRepository(db),
		answer:     repository.NewAnswerRepository(db),
		insight:    repository.NewInsightRepository(db),
	}
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.reference = service.NewReferenceService(repos.reference)

	debounce := time.Duration(cfg.Autosave.DebounceMillis) * time.Millisecond
	s.saver = service.NewAnswerSaver(debounce, repos.answer.Upsert)
	a.RegisterConfigCallback(func(c *config.Config) {
		s.saver.SetDebounce(time.Duration(c.Autosave.DebounceMillis) * time.Millisecond)
	})

	s.answer = service.NewAnswerService(repos.answer, repos.assessment, repos.reference, s.saver)
	s.assessment = service.NewAssessmentService(repos.assessment, repos.answer, s.saver)
	s.analytics = service.NewAnalyticsService(repos.answer, rdb)

	var provider llm.Provider
	if cfg.AI.APIKey != "" {
		p, err := llm.NewAnthropicProvider(llm.AnthropicConfig{
			APIKey: cfg.AI.APIKey,
			Model:  cfg.AI.Model,
		})
		if err != nil {
			logger.Log.Warn("AI provider initialization failed, insights disabled", zap.Error(err))
		} else {
			provider = p
		}
	} else {
		logger.Log.Warn("No AI API key configured, insights disabled")
	}

	s.insight = service.NewInsightService(repos.insight, repos.answer, repos.assessment, provider, rdb, cfg)
	s.report = service.NewReportService(repos.assessment, repos.answer, s.analytics, s.insight, s.storage)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:       controller.NewAuthController(s.auth),
		reference:  controller.NewReferenceController(s.reference),
		assessment: controller.NewAssessmentController(s.assessment, s.answer),
		report:     controller.NewReportController(s.report, s.analytics, s.insight, s.assessment),
		health:     controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window == 0 {
		window = time.Minute
	}
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests == 0 {
		maxRequests = 600
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

	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to run migrations", zap.Error(err))
		}
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
		logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		log.Fatalf("Failed to initialize redis: %v", err)
	}
	app.Redis = rdb

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		_, err := tracing.InitTracer("bizcanvas-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/exports", cfg.Storage.LocalPath)
	}

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

	// Commit any answers still sitting in the autosave buffer.
	if a.services != nil && a.services.saver != nil {
		if err := a.services.saver.FlushAll(); err != nil {
			logger.Log.Error("autosave flush on shutdown failed", zap.Error(err))
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
