package app

import (
	"context"
	"edulearn_backend/internal/config"
	"edulearn_backend/internal/controller"
	"edulearn_backend/internal/repository"
	"edulearn_backend/internal/service"
	"edulearn_backend/internal/util"
	"edulearn_backend/pkg/configwatcher"
	"edulearn_backend/pkg/database"
	"edulearn_backend/pkg/logger"
	"edulearn_backend/pkg/monitoring"
	"edulearn_backend/pkg/security"
	"edulearn_backend/pkg/tracing"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type App struct {
	Config   *config.Config
	Router   *gin.Engine
	DB       *gorm.DB
	Redis    *redis.Client
	services *services
	tracer   *sdktrace.TracerProvider
	limiter  *security.IPRateLimiter
	stop     chan struct{}
}

type repositories struct {
	user     *repository.UserRepository
	content  *repository.ContentRepository
	quiz     *repository.QuizRepository
	progress *repository.ProgressRepository
}

type services struct {
	auth      *service.AuthService
	storage   *service.StorageService
	content   *service.ContentService
	quiz      *service.QuizService
	dashboard *service.DashboardService
	progress  *service.ProgressService
	sessions  service.SessionStore
}

type controllers struct {
	auth      *controller.AuthController
	content   *controller.ContentController
	quiz      *controller.QuizController
	dashboard *controller.DashboardController
	health    *controller.HealthController
}

func (a *App) initRepositories(db *gorm.DB) *repositories {
	return &repositories{
		user:     repository.NewUserRepository(db),
		content:  repository.NewContentRepository(db),
		quiz:     repository.NewQuizRepository(db),
		progress: repository.NewProgressRepository(db),
	}
}

// sessionStore keeps quiz sessions in redis when it is configured, so any
// instance can serve the next request; otherwise in process memory.
func sessionStore(cfg *config.Config, rdb *redis.Client) service.SessionStore {
	if rdb != nil {
		return service.NewRedisSessionStore(rdb, cfg.Quiz.SessionTTL())
	}
	return service.NewMemorySessionStore(cfg.Quiz.SessionTTL())
}

func (a *App) initServices(repos *repositories, cfg *config.Config, rdb *redis.Client) *services {
	s := &services{}
	s.sessions = sessionStore(cfg, rdb)
	s.auth = service.NewAuthService(repos.user, cfg)
	s.storage = service.NewStorageService(cfg)
	s.content = service.NewContentService(repos.content, s.storage, cfg)
	s.quiz = service.NewQuizService(repos.quiz, repos.content, s.sessions)
	s.progress = service.NewProgressService(repos.progress, repos.content)
	s.dashboard = service.NewDashboardService(repos.content, repos.quiz, repos.progress, repos.user)
	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		auth:      controller.NewAuthController(s.auth),
		content:   controller.NewContentController(s.content),
		quiz:      controller.NewQuizController(s.quiz),
		dashboard: controller.NewDashboardController(s.dashboard, s.progress),
		health:    controller.NewHealthController(db, rdb),
	}
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	a.limiter = security.NewIPRateLimiter(cfg.RateLimit.MaxRequests, rateWindow(cfg))
	a.limiter.StartCleanup(a.stop)
	router.Use(a.limiter.Middleware())

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func rateWindow(cfg *config.Config) time.Duration {
	return time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
}

// watchConfig applies edits to the rate limit and log level while the
// server runs. Everything else needs a restart.
func (a *App) watchConfig() {
	go func() {
		err := configwatcher.WatchConfig(a.Config.Dir, a.stop, func(cfg *config.Config) {
			a.limiter.SetLimit(cfg.RateLimit.MaxRequests, rateWindow(cfg))
			logger.SetLevel(cfg.Server.Mode)
			logger.Log.Info("Configuration reloaded",
				zap.Int("rateLimit", cfg.RateLimit.MaxRequests),
				zap.String("mode", cfg.Server.Mode))
		})
		if err != nil {
			logger.Log.Warn("Config watcher stopped", zap.Error(err))
		}
	}()
}

// startBackgroundTasks purges expired in-memory quiz sessions. Redis
// expires its own keys.
func (a *App) startBackgroundTasks(s *services) {
	if a.Config.Dir != "" {
		a.watchConfig()
	}

	mem, ok := s.sessions.(*service.MemorySessionStore)
	if !ok {
		return
	}
	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if n := mem.Purge(); n > 0 {
					logger.Log.Debug("expired quiz sessions purged", zap.Int("count", n))
				}
			case <-a.stop:
				return
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)
	defer logger.Log.Sync()

	logger.Log.Info("Logger initialized successfully")

	db, err := database.InitDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := database.Migrate(db); err != nil {
			logger.Log.Fatal("Failed to migrate database", zap.Error(err))
		}
	}

	app := &App{
		Config: cfg,
		DB:     db,
		stop:   make(chan struct{}),
	}
	if cfg.MigrateOnly {
		return app
	}

	if cfg.Redis.Enabled {
		rdb, err := database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
		}
		app.Redis = rdb
	}

	repos := app.initRepositories(db)
	services := app.initServices(repos, cfg, app.Redis)
	app.services = services
	controllers := app.initControllers(services, db, app.Redis)

	if err := services.auth.EnsureAdmin(context.Background()); err != nil {
		logger.Log.Error("Failed to create admin account", zap.Error(err))
	}

	monitoring.Init()

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("edulearn-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracer = tp
	}

	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)
	app.registerRoutes(router, controllers, repos.user, cfg)

	if cfg.Storage.Type == util.StorageLocal {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	go func() {
		logger.Log.Info("Server running", zap.String("port", a.Config.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")
	close(a.stop)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracer != nil {
		if err := a.tracer.Shutdown(ctx); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}
	if a.Redis != nil {
		a.Redis.Close()
	}

	logger.Log.Info("Server exiting")
}
