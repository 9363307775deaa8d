package cmd

import (
	"fmt"

	"blendshape-presets/core/config"
	"blendshape-presets/core/database"
	"blendshape-presets/core/gltfscene"
	"blendshape-presets/core/logger"
	"blendshape-presets/core/reconcile"
	"blendshape-presets/core/storage"
	"blendshape-presets/feature/presets"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// buildLogger creates the command logger from the log section.
var buildLogger = logger.New

// loadRuntime loads the configuration and builds the logger.
func loadRuntime() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}
	logg, err := buildLogger(&cfg.Log)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logg, nil
}

// connectCatalog opens the optional catalog database. Failures are logged and yield nil.
func connectCatalog(cfg *config.Config, logg *zap.Logger) *gorm.DB {
	db, err := database.Connect(cfg.Database)
	if err != nil {
		logg.Warn("Optional database connection failed", zap.Error(err))
		return nil
	}
	logg.Info("Connected to catalog database", zap.String("driver", cfg.Database.Driver))
	return db
}

// newPresetService wires the preset library for CLI use.
func newPresetService(cfg *config.Config, logg *zap.Logger) (*presets.Service, error) {
	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}
	svc := presets.NewService(client, cfg.Storage.Bucket, cfg.Presets, cfg.Scene.Options(), connectCatalog(cfg, logg), logg)
	if c := svc.Catalog(); c != nil {
		if err := c.Migrate(); err != nil {
			return nil, err
		}
	}
	return svc, nil
}

// sceneFlags are the scene selection flags shared by export and import.
type sceneFlags struct {
	path            string
	root            string
	includeChildren bool
}

func (f *sceneFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.path, "scene", "", "glTF or GLB file to read")
	cmd.Flags().StringVar(&f.root, "root", "", "Root object name or slash path (default: the only scene root)")
	cmd.Flags().BoolVar(&f.includeChildren, "include-children", false, "Include every descendant of the root object")
	_ = cmd.MarkFlagRequired("scene")
}

// include returns the flag value when set, the configured default otherwise.
func (f *sceneFlags) include(cmd *cobra.Command, cfg *config.Config) bool {
	if cmd.Flags().Changed("include-children") {
		return f.includeChildren
	}
	return cfg.Scene.IncludeChildren
}

// open loads the scene file and selects the root object.
func (f *sceneFlags) open(opts gltfscene.Options) (*gltfscene.Scene, reconcile.Object, error) {
	sc, err := gltfscene.Open(f.path, opts)
	if err != nil {
		return nil, nil, err
	}
	root, err := sc.Select(f.root)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", f.path, err)
	}
	return sc, root, nil
}
