package presets

import (
	"context"
	"errors"
	"fmt"

	"blendshape-presets/feature/presets/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Catalog indexes stored presets in SQL for listing and metadata lookups.
type Catalog struct {
	db *gorm.DB
}

// NewCatalog wraps db.
func NewCatalog(db *gorm.DB) *Catalog {
	return &Catalog{db: db}
}

// Migrate creates or updates the catalog table.
func (c *Catalog) Migrate() error {
	if err := c.db.AutoMigrate(&models.Preset{}); err != nil {
		return fmt.Errorf("failed to migrate catalog: %w", err)
	}
	return nil
}

// Save inserts p or updates the row with the same name.
func (c *Catalog) Save(ctx context.Context, p *models.Preset) error {
	err := c.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"root_object_name", "mesh_count", "channel_count", "object_key", "size", "updated_at",
		}),
	}).Create(p).Error
	if err != nil {
		return fmt.Errorf("failed to save preset %s: %w", p.Name, err)
	}
	return nil
}

// Get returns the catalog row for name.
func (c *Catalog) Get(ctx context.Context, name string) (*models.Preset, error) {
	var p models.Preset
	err := c.db.WithContext(ctx).Where("name = ?", name).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load preset %s: %w", name, err)
	}
	return &p, nil
}

// List returns every row ordered by name.
func (c *Catalog) List(ctx context.Context) ([]models.Preset, error) {
	var out []models.Preset
	if err := c.db.WithContext(ctx).Order("name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("failed to list presets: %w", err)
	}
	return out, nil
}

// Delete removes the row for name and reports whether one existed.
func (c *Catalog) Delete(ctx context.Context, name string) (bool, error) {
	res := c.db.WithContext(ctx).Where("name = ?", name).Delete(&models.Preset{})
	if res.Error != nil {
		return false, fmt.Errorf("failed to delete preset %s: %w", name, res.Error)
	}
	return res.RowsAffected > 0, nil
}
