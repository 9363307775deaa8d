package presets

import (
	"context"
	"fmt"
	"time"

	"blendshape-presets/core/gltfscene"
	"blendshape-presets/core/reconcile"
	"blendshape-presets/core/storage"
	"blendshape-presets/feature/presets/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SceneRequest selects the model and root object for capture and apply.
type SceneRequest struct {
	// Model is the key of the model relative to the model prefix.
	Model string
	// Root is a node name or slash path. Empty selects the only scene root.
	Root string
	// IncludeChildren extends the operation to every descendant of Root.
	IncludeChildren bool
}

// CaptureResult describes a stored capture.
type CaptureResult struct {
	Preset   *models.Preset `json:"preset"`
	Meshes   int            `json:"meshes"`
	Channels int            `json:"channels"`
}

// Service manages the preset library.
type Service struct {
	store     *Store
	catalog   *Catalog
	cache     *Cache
	engine    *reconcile.Engine
	sceneOpts gltfscene.Options
	logger    *zap.Logger
}

// NewService creates the preset service. db may be nil, in which case
// listings come straight from storage.
func NewService(client storage.Client, bucket string, cfg Config, sceneOpts gltfscene.Options, db *gorm.DB, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("feature", "presets"))

	var catalog *Catalog
	if db != nil {
		catalog = NewCatalog(db)
	}
	return &Service{
		store:     NewStore(client, bucket, cfg),
		catalog:   catalog,
		cache:     NewCache(cfg.CacheTTL()),
		engine:    reconcile.NewEngine(logger),
		sceneOpts: sceneOpts,
		logger:    logger,
	}
}

// Catalog returns the SQL catalog, or nil when running without a database.
func (s *Service) Catalog() *Catalog {
	return s.catalog
}

// Store returns the bucket store.
func (s *Service) Store() *Store {
	return s.store
}

// List returns every known preset.
func (s *Service) List(ctx context.Context) ([]models.Preset, error) {
	if s.catalog != nil {
		return s.catalog.List(ctx)
	}

	names, err := s.store.ListPresets(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]models.Preset, 0, len(names))
	for _, name := range names {
		out = append(out, models.Preset{Name: name, ObjectKey: s.store.PresetKey(name)})
	}
	return out, nil
}

// Get returns the bundle stored under name.
func (s *Service) Get(ctx context.Context, name string) (*reconcile.Bundle, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	return s.cache.GetOrLoad(ctx, name, func(ctx context.Context) (*reconcile.Bundle, error) {
		return s.store.GetPreset(ctx, name)
	})
}

// Put stores bundle under name, replacing any previous preset.
func (s *Service) Put(ctx context.Context, name string, bundle *reconcile.Bundle) (*models.Preset, error) {
	if err := ValidateName(name); err != nil {
		return nil, err
	}

	key, size, err := s.store.PutPreset(ctx, name, bundle)
	if err != nil {
		return nil, err
	}
	s.cache.Invalidate(name)

	p := &models.Preset{Name: name, ObjectKey: key, Size: int64(size)}
	p.Describe(bundle)
	if s.catalog != nil {
		if err := s.catalog.Save(ctx, p); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Preset stored",
		zap.String("preset", name),
		zap.String("root", bundle.RootObjectName),
		zap.Int("meshes", p.MeshCount),
		zap.Int("channels", p.ChannelCount),
		zap.Int("bytes", size),
	)
	return p, nil
}

// PutRaw decodes data and stores it under name.
func (s *Service) PutRaw(ctx context.Context, name string, data []byte) (*models.Preset, error) {
	bundle, err := reconcile.Decode(data)
	if err != nil {
		return nil, err
	}
	return s.Put(ctx, name, bundle)
}

// Delete removes the preset object and its catalog row.
func (s *Service) Delete(ctx context.Context, name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	if err := s.store.DeletePreset(ctx, name); err != nil {
		return err
	}
	s.cache.Invalidate(name)

	if s.catalog != nil {
		if _, err := s.catalog.Delete(ctx, name); err != nil {
			return err
		}
	}
	s.logger.Info("Preset deleted", zap.String("preset", name))
	return nil
}

// Capture collects the weights of a stored model and saves them as preset name.
func (s *Service) Capture(ctx context.Context, name string, req SceneRequest) (*CaptureResult, error) {
	start := time.Now()
	if err := ValidateName(name); err != nil {
		return nil, err
	}
	_, root, err := s.open(ctx, req)
	if err != nil {
		return nil, err
	}

	if _, err := s.engine.Validate(root, req.IncludeChildren); err != nil {
		return nil, err
	}
	bundle := s.engine.Collect(root, req.IncludeChildren)
	if len(bundle.Meshes) == 0 {
		return nil, reconcile.ErrEmptyBundle
	}

	p, err := s.Put(ctx, name, bundle)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Capture completed",
		zap.String("preset", name),
		zap.String("model", req.Model),
		zap.Duration("duration", time.Since(start)),
	)
	return &CaptureResult{Preset: p, Meshes: len(bundle.Meshes), Channels: bundle.TotalChannels()}, nil
}

// Apply writes preset name onto a stored model. Unless dryRun is set the model
// is uploaded back when at least one channel was written.
func (s *Service) Apply(ctx context.Context, name string, req SceneRequest, dryRun bool) (*reconcile.ImportResult, error) {
	bundle, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	sc, root, err := s.open(ctx, req)
	if err != nil {
		return nil, err
	}

	targets, err := s.engine.Validate(root, req.IncludeChildren)
	if err != nil {
		return nil, err
	}
	result, err := s.engine.Import(bundle, targets, reconcile.ImportOptions{DryRun: dryRun})
	if err != nil {
		return nil, err
	}

	if !dryRun && result.AppliedChannels > 0 {
		if err := s.store.SaveModel(ctx, req.Model, sc); err != nil {
			return nil, err
		}
		s.logger.Info("Model updated",
			zap.String("preset", name),
			zap.String("model", req.Model),
			zap.Int("applied_meshes", result.AppliedMeshes),
			zap.Int("total_meshes", result.TotalMeshes),
		)
	}
	return result, nil
}

func (s *Service) open(ctx context.Context, req SceneRequest) (*gltfscene.Scene, reconcile.Object, error) {
	if err := ValidateModel(req.Model); err != nil {
		return nil, nil, err
	}
	sc, err := s.store.LoadModel(ctx, req.Model, s.sceneOpts)
	if err != nil {
		return nil, nil, err
	}
	root, err := sc.Select(req.Root)
	if err != nil {
		return nil, nil, fmt.Errorf("model %s: %w", req.Model, err)
	}
	return sc, root, nil
}
