package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"catalog-aggregator/core/loader"
	"catalog-aggregator/core/logger"
	"catalog-aggregator/core/metrics"
	"catalog-aggregator/core/middleware/auth"
	"catalog-aggregator/core/middleware/rayid"
	"catalog-aggregator/core/validator"

	"catalog-aggregator/feature/aggregation"
	"catalog-aggregator/feature/catalog"
	"catalog-aggregator/feature/health"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "catalog-aggregator/docs/swagger"
)

// @title Catalog Aggregator API
// @version 1.0
// @description Reconciled product catalog aggregated from multiple providers.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the catalog aggregator server",
	Long:  `Starts the HTTP server, the aggregation scheduler and all enabled features.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// 1. Load Configuration
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			return err
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database
		db, err := connectDatabase(cfg.Database, logg)
		if err != nil {
			return err
		}

		// 4. Aggregation pipeline
		ctx, stop := context.WithCancel(context.Background())
		defer stop()

		p, err := buildPipeline(ctx, cfg, db, logg, false)
		if err != nil {
			return err
		}
		defer p.Close()

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
		})

		// 6. Register Features
		mgr := loader.NewManager()
		mgr.Register(health.NewFeature(db, logg))
		mgr.Register(catalog.NewFeature(db, validator.New(), logg))
		mgr.Register(aggregation.NewFeature(
			aggregation.NewHandler(p.scheduler, p.orchestrator, p.registry, cfg.Providers, logg),
		))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			start := time.Now()
			err := c.Next()
			fields := []zap.Field{
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
				zap.Int("status", c.Response().StatusCode()),
				zap.Duration("duration", time.Since(start)),
			}
			if err != nil {
				l.Error("Request error", append(fields, zap.Error(err))...)
			} else {
				l.Info("Request completed", fields...)
			}
			return err
		})

		// 3. Metrics
		app.Use(metrics.Middleware())
		app.Get("/metrics", metrics.Handler())

		// 4. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 5. Auth (public prefixes stay open for health checks and scrapers)
		if !cfg.Server.AuthEnabled() && cfg.Server.IsProduction() {
			logg.Warn("API key not set, the API is unprotected")
		}
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 6. Load Features
		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		// 7. Start Scheduler
		if noScheduler {
			logg.Info("Scheduler disabled, aggregation runs on demand only")
		} else {
			go p.scheduler.Run(ctx)
		}

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port), zap.String("environment", cfg.Server.Environment))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		stop()
		return app.ShutdownWithTimeout(10 * time.Second)
	},
}

var noScheduler bool

func init() {
	startCmd.Flags().BoolVar(&noScheduler, "no-scheduler", false, "Serve the API without periodic aggregation")
	RootCmd.AddCommand(startCmd)
}
