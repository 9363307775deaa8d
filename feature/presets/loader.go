package presets

import (
	"blendshape-presets/core/gltfscene"
	"blendshape-presets/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the presets feature.
func NewFeature(client storage.Client, bucket string, cfg Config, sceneOpts gltfscene.Options, db *gorm.DB, logger *zap.Logger) *Feature {
	svc := NewService(client, bucket, cfg, sceneOpts, db, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "presets"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load migrates the catalog, when present, and registers the routes.
func (f *Feature) Load(app fiber.Router) error {
	if c := f.service.Catalog(); c != nil {
		if err := c.Migrate(); err != nil {
			return err
		}
	}
	f.handler.RegisterRoutes(app)
	return nil
}
