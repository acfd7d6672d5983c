package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"course_admin_gateway/internal/config"
	"course_admin_gateway/internal/controller"
	"course_admin_gateway/internal/repository"
	"course_admin_gateway/internal/service"
	"course_admin_gateway/internal/upstream"
	"course_admin_gateway/pkg/database"
	"course_admin_gateway/pkg/logger"
	"course_admin_gateway/pkg/monitoring"
	"course_admin_gateway/pkg/security"
	"course_admin_gateway/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Audit trail retention, enforced by a daily sweeper.
const (
	auditRetention   = 90 * 24 * time.Hour
	auditPurgePeriod = 24 * time.Hour

	sessionSweepPeriod = 10 * time.Minute
	sessionMaxIdle     = time.Hour
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	DB              *gorm.DB
	Redis           *redis.Client
	Upstream        *upstream.Client
	services        *services
	rateLimiter     *security.IPRateLimiter
	configCallbacks []func(*config.Config)
}

type services struct {
	audit     *service.AuditService
	storage   *service.StorageService
	link      *service.LinkService
	catalog   *service.CatalogService
	selection *service.SelectionService
	content   *service.ContentService
	settings  *service.SettingsService
}

type controllers struct {
	catalog   *controller.CatalogController
	selection *controller.SelectionController
	content   *controller.ContentController
	link      *controller.LinkController
	settings  *controller.SettingsController
	audit     *controller.AuditController
	health    *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig runs the registered reload callbacks. Only fields the callbacks
// touch change at runtime; everything else needs a restart.
func (a *App) ApplyConfig(cfg *config.Config) {
	logger.Log.Info("Applying reloaded configuration")
	for _, callback := range a.configCallbacks {
		callback(cfg)
	}
}

func (a *App) initServices(cfg *config.Config, client *upstream.Client, db *gorm.DB, rdb *redis.Client) *services {
	s := &services{}

	s.audit = service.NewAuditService(repository.NewAuditRepository(db))
	s.storage = service.NewStorageService(cfg)
	s.link = service.NewLinkService(&cfg.Probe)
	s.catalog = service.NewCatalogService(client, rdb, s.link, s.audit, cfg)
	s.selection = service.NewSelectionService(s.catalog)
	s.content = service.NewContentService(client, s.link, s.storage, s.audit)
	s.settings = service.NewSettingsService(client, s.audit)

	return s
}

func (a *App) initControllers(s *services, db *gorm.DB, rdb *redis.Client) *controllers {
	return &controllers{
		catalog:   controller.NewCatalogController(s.catalog),
		selection: controller.NewSelectionController(s.selection),
		content:   controller.NewContentController(s.content, s.selection),
		link:      controller.NewLinkController(s.link),
		settings:  controller.NewSettingsController(s.settings),
		audit:     controller.NewAuditController(s.audit),
		health:    controller.NewHealthController(db, rdb),
	}
}

// rateLimitBudget normalizes the configured budget, applying the defaults.
func rateLimitBudget(cfg *config.Config) (int, time.Duration) {
	maxRequests := cfg.RateLimit.MaxRequests
	if maxRequests <= 0 {
		maxRequests = 10000
	}
	window := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	if window <= 0 {
		window = time.Minute
	}
	return maxRequests, window
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())

	a.rateLimiter = security.NewIPRateLimiter(rateLimitBudget(cfg))
	router.Use(a.rateLimiter.Middleware())

	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func (a *App) startBackgroundTasks(s *services) {
	s.selection.StartSweeper(sessionSweepPeriod, sessionMaxIdle)

	go func() {
		ticker := time.NewTicker(auditPurgePeriod)
		for range ticker.C {
			purged, err := s.audit.PurgeOlderThan(auditRetention)
			if err != nil {
				logger.Log.Error("audit purge error", zap.Error(err))
				continue
			}
			if purged > 0 {
				logger.Log.Info("purged audit records", zap.Int64("count", purged))
			}
		}
	}()
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.InitDB(&cfg.Database, cfg.ForceMigrate)
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
		// The catalog cache degrades to pass-through without Redis.
		logger.Log.Warn("Redis unavailable, catalog cache disabled", zap.Error(err))
		rdb = nil
	}
	app.Redis = rdb

	client := upstream.NewClient(&cfg.Upstream)
	app.Upstream = client

	services := app.initServices(cfg, client, db, rdb)
	app.services = services
	controllers := app.initControllers(services, db, rdb)

	monitoring.Init()

	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		if _, err := tracing.InitTracer("admin-gateway", cfg.Tracing.CollectorEndpoint); err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
	}

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	app.startBackgroundTasks(services)

	// Runtime-tunable settings get pushed into the live components; everything
	// else keeps its construction-time value until a restart.
	app.RegisterConfigCallback(func(newCfg *config.Config) {
		newCfg.ForceMigrate = app.Config.ForceMigrate
		newCfg.MigrateOnly = app.Config.MigrateOnly
		app.Config = newCfg

		client.SetQuizEmptySentinel(newCfg.Upstream.QuizEmptySentinel)
		services.link.ApplyProbeConfig(&newCfg.Probe)
		app.rateLimiter.SetBudget(rateLimitBudget(newCfg))
	})

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
