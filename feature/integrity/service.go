package integrity

import (
	"context"

	"blendshape-presets/core/storage"
	"blendshape-presets/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	bucket  string
	folders []string
	prefix  string
	db      *gorm.DB
	logger  *zap.Logger
}

// NewService creates a new integrity service. folders are the bucket folders
// that must exist; prefix is where presets live. db may be nil.
func NewService(client storage.Client, bucket string, folders []string, prefix string, db *gorm.DB, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		client:  client,
		bucket:  bucket,
		folders: folders,
		prefix:  prefix,
		db:      db,
		logger:  logger.With(zap.String("feature", "integrity")),
	}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.bucket, s.folders)
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.bucket, s.logger, missing)
}

// CheckCatalog compares the catalog table with the preset model.
func (s *Service) CheckCatalog() (*checks.SchemaReport, error) {
	return checks.CheckCatalogSchema(s.db)
}

// CheckPresets decodes stored presets and cross-checks them with the catalog.
func (s *Service) CheckPresets(ctx context.Context) (*checks.PresetReport, error) {
	return checks.CheckPresets(ctx, s.client, s.bucket, s.prefix, s.db)
}
