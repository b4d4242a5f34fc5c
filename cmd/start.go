package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"experience-manager/core/config"
	"experience-manager/core/loader"
	"experience-manager/core/logger"
	"experience-manager/core/metrics"
	"experience-manager/core/middleware/auth"
	"experience-manager/core/middleware/rayid"
	"experience-manager/core/sectionapi"

	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "experience-manager/docs/swagger"
)

// @title Experience Manager API
// @version 1.0
// @description Working copies, dry-run plans and saves of the experience sections.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the experience manager server",
	Long:  `Starts the HTTP server and initializes all enabled sections.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Build gateway, observers and sections
		svc, err := buildServices(context.Background(), cfg, logg)
		if err != nil {
			logg.Fatal("Failed to initialize services", zap.Error(err))
		}
		defer svc.Close()

		// Immutable: route params outlive the request as session keys and parent ids.
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			Immutable:             true,
			BodyLimit:             cfg.Server.BodyLimit(),
			JSONEncoder:           json.Marshal,
			JSONDecoder:           json.Unmarshal,
		})

		mgr := loader.NewManager(logg)
		for _, f := range svc.features {
			mgr.Register(f)
		}

		// RayID first so every log line carries it
		app.Use(rayid.New())
		app.Use(logger.Middleware(logg))

		// Public routes
		app.Get("/health", func(c *fiber.Ctx) error {
			return c.JSON(fiber.Map{"status": "ok"})
		})
		if cfg.Server.Docs {
			app.Get("/swagger/*", swagger.HandlerDefault)
		}
		if cfg.Server.Metrics {
			app.Get("/metrics", metrics.Handler(svc.registry))
		}

		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey, Skip: cfg.Server.PublicPaths()}))

		sectionapi.RegisterNotifications(app, svc.feed)
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		go func() {
			logg.Info("Starting server", zap.String("address", cfg.Server.Address()))
			if err := app.Listen(cfg.Server.Address()); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
