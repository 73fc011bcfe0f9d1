package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"go.uber.org/zap"

	"github.com/deepmindcheck/web/internal/api/handlers"
	"github.com/deepmindcheck/web/internal/backend"
	"github.com/deepmindcheck/web/internal/cache"
	"github.com/deepmindcheck/web/internal/catalog"
	"github.com/deepmindcheck/web/internal/metrics"
	"github.com/deepmindcheck/web/internal/middleware/ratelimit"
	"github.com/deepmindcheck/web/internal/middleware/security"
	"github.com/deepmindcheck/web/internal/middleware/session"
	"github.com/deepmindcheck/web/internal/workflow"
	"github.com/deepmindcheck/web/pkg/config"
	appLogger "github.com/deepmindcheck/web/pkg/logger"
	"github.com/deepmindcheck/web/pkg/retry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	err = appLogger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.OutputPath)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer appLogger.Sync()

	appLogger.Info("Starting DeepMindCheck web server")

	metrics.Init()

	store, err := cache.New(cfg.Cache)
	if err != nil {
		appLogger.Fatal("Failed to create cache store", zap.Error(err))
	}
	defer store.Close()

	client, err := backend.NewClient(backend.Options{
		BaseURL:       cfg.Backend.BaseURL,
		Timeout:       time.Duration(cfg.Backend.TimeoutSec) * time.Second,
		CSRFCookie:    cfg.Backend.CSRFCookie,
		CSRFHeader:    cfg.Backend.CSRFHeader,
		CSRFPrimePath: cfg.Backend.CSRFPrimePath,
	})
	if err != nil {
		appLogger.Fatal("Failed to create backend client", zap.Error(err))
	}

	// Fetch the anti-forgery cookie in the background. Submissions sent
	// before it lands simply omit the header, which the service accepts.
	go func() {
		primeCfg := retry.DefaultConfig()
		primeCfg.MaxAttempts = 5
		primeCfg.InitialDelay = time.Second
		primeCfg.Logger = appLogger.GetLogger()

		err := retry.Do(context.Background(), primeCfg, func() error {
			return client.PrimeCSRF(context.Background())
		})
		if err != nil {
			appLogger.Warn("CSRF priming failed, continuing without token", zap.Error(err))
		}
	}()

	catalogSvc := catalog.NewService(client, store,
		time.Duration(cfg.Cache.CatalogTTLSec)*time.Second,
		time.Duration(cfg.Cache.DashboardTTLSec)*time.Second,
	)

	sessions := workflow.NewManager(time.Duration(cfg.Session.TTLMinutes) * time.Minute)
	defer sessions.Stop()

	wf := workflow.New(client, workflow.Limits{
		Min: cfg.Limits.MinChars,
		Max: cfg.Limits.MaxChars,
	}, sessions)

	limiter := ratelimit.New(ratelimit.Config{
		MaxRequestsPerMinute: cfg.RateLimit.MaxRequestsPerMinute,
		SessionCookie:        cfg.Session.CookieName,
		Logger:               appLogger.GetLogger(),
	})
	defer limiter.Stop()

	app := fiber.New(fiber.Config{
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		BodyLimit:    cfg.Server.BodyLimit,
	})

	app.Use(recover.New())
	app.Use(fiberlogger.New())

	corsCfg := cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}
	if len(cfg.Server.AllowedOrigins) > 0 {
		corsCfg.AllowOrigins = strings.Join(cfg.Server.AllowedOrigins, ",")
	}
	app.Use(cors.New(corsCfg))

	app.Use(security.HeadersMiddleware(security.HeadersConfig{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		IsDevelopment:  cfg.Server.Development,
	}))
	app.Use(session.Middleware(session.Config{
		CookieName: cfg.Session.CookieName,
		Secure:     cfg.Session.CookieSecure,
	}))

	pagesHandler := handlers.NewPagesHandler(catalogSvc, wf)
	analysisHandler := handlers.NewAnalysisHandler(wf)
	metaHandler := handlers.NewMetaHandler(catalogSvc)
	counterHandler := handlers.NewCounterSocketHandler(wf,
		time.Duration(cfg.Limits.CounterDebounceMS)*time.Millisecond)

	app.Get("/", pagesHandler.HandleHome)
	app.Get("/analyze", pagesHandler.HandleAnalyze)
	app.Get("/about", pagesHandler.HandleAbout)
	app.Get("/contact", pagesHandler.HandleContact)
	app.Post("/contact", pagesHandler.HandleContactSubmit)
	app.Get("/dashboard", pagesHandler.HandleDashboard)

	api := app.Group("/api", limiter.Middleware())

	api.Post("/analyze", analysisHandler.HandleAnalyze)
	api.Post("/feedback", analysisHandler.HandleFeedback)
	api.Post("/counter", analysisHandler.HandleCounter)
	api.Post("/reset", analysisHandler.HandleReset)
	api.Get("/models", metaHandler.HandleModels)
	api.Get("/health", metaHandler.HandleHealth)

	app.Get("/metrics", metrics.MetricsHandler())

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/counter", websocket.New(counterHandler.HandleConnection))

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	appLogger.Info("Server starting", zap.String("address", addr))

	go func() {
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Server shutting down gracefully...")
	app.Shutdown()
	appLogger.Info("Server stopped")
}
