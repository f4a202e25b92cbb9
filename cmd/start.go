package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"swim-admin/core/config"
	"swim-admin/core/database"
	"swim-admin/core/loader"
	"swim-admin/core/logger"
	"swim-admin/core/middleware/auth"
	"swim-admin/core/middleware/rayid"
	"swim-admin/core/storage"

	"swim-admin/feature/event"
	eventmodels "swim-admin/feature/event/models"
	"swim-admin/feature/ingest"
	"swim-admin/feature/meet"
	meetmodels "swim-admin/feature/meet/models"
	"swim-admin/feature/results"
	"swim-admin/feature/roster"
	rostermodels "swim-admin/feature/roster/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "swim-admin/docs/swagger"
)

// @title Swim Admin API
// @version 1.0
// @description API for ingesting and administering swim meet results.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the swim admin server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
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

		// 3. Connect to Database
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}

		if err := db.AutoMigrate(
			&rostermodels.Club{},
			&rostermodels.Athlete{},
			&eventmodels.SwimEvent{},
			&meetmodels.Meet{},
			&meetmodels.Result{},
			&meetmodels.RelaySplit{},
		); err != nil {
			logg.Fatal("Failed to migrate schema", zap.Error(err))
		}

		// The committer upserts on the composite result key; if those
		// columns drifted away, fail loudly now rather than mid-commit.
		missing, err := database.MissingColumns(db, "results",
			[]string{"meet_id", "event_id", "round", "athlete_id", "relay_team"})
		if err != nil {
			logg.Warn("Failed to inspect results table", zap.Error(err))
		} else if len(missing) > 0 {
			logg.Fatal("Results table is missing key columns", zap.Strings("missing", missing))
		}

		// 4. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
			BodyLimit:             cfg.Server.BodyLimitMB * 1024 * 1024,
		})

		// 5. Initialize Storage (optional upload archive)
		var store storage.Client
		if cfg.Storage.Enabled {
			store, err = storage.NewClient(cfg.Storage)
			if err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
			ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			if err := storage.EnsureBucket(ctx, store, cfg.Storage.Bucket); err != nil {
				logg.Fatal("Failed to prepare archive bucket", zap.Error(err))
			}
			cancel()
		}

		// 6. Shared services
		eventService := event.NewService(db, logg)
		rosterService := roster.NewService(db, logg)
		snapshots := roster.NewSnapshotProvider(rosterService,
			time.Duration(cfg.Ingest.RosterCacheSeconds)*time.Second)

		// 7. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features
		mgr.Register(event.NewFeature(eventService))
		mgr.Register(roster.NewFeature(rosterService))
		mgr.Register(meet.NewFeature(db, logg))
		mgr.Register(results.NewFeature(db, eventService, logg))
		mgr.Register(ingest.NewFeature(db, eventService, snapshots, store, cfg.Storage.Bucket, cfg.Ingest, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 8. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
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
