package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"blendshape-presets/core/loader"
	"blendshape-presets/core/logger"
	"blendshape-presets/core/middleware/auth"
	"blendshape-presets/core/middleware/rayid"
	"blendshape-presets/core/storage"
	"blendshape-presets/feature/integrity"
	"blendshape-presets/feature/presets"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// @title Blend Shape Presets API
// @version 1.0
// @description API for storing blend shape presets and applying them to glTF models.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the preset server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := loadRuntime()
		if err != nil {
			return err
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		db := connectCatalog(cfg, logg)

		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
		created, err := storage.EnsureBucket(cmd.Context(), store, cfg.Storage.Bucket, cfg.Storage.Region)
		if err != nil {
			return err
		}
		if created {
			logg.Info("Created bucket", zap.String("bucket", cfg.Storage.Bucket))
		}

		app := fiber.New(fiber.Config{
			DisableStartupMessage: true,
			BodyLimit:             cfg.Server.BodyLimit(),
		})

		mgr := loader.NewManager(logg)
		mgr.Register(presets.NewFeature(store, cfg.Storage.Bucket, cfg.Presets, cfg.Scene.Options(), db, logg))
		mgr.Register(integrity.NewFeature(store, cfg.Storage.Bucket, cfg.Presets.Folders(), cfg.Presets.Prefix, db, logg))

		// RayID first so every later log line carries it
		app.Use(rayid.New())

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

		if cfg.Server.ApiKey == "" {
			logg.Warn("SERVER_API_KEY is empty, API is unprotected")
		}
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		if err := mgr.LoadAll(app); err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			errCh <- app.Listen(cfg.Server.Addr())
		}()

		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		select {
		case err := <-errCh:
			return fmt.Errorf("server failed: %w", err)
		case <-sig:
		}

		logg.Info("Shutting down server...")
		return app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout())
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
