package checks

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"blendshape-presets/core/reconcile"
	"blendshape-presets/core/storage"
	"blendshape-presets/feature/presets/models"

	"gorm.io/gorm"
)

// PresetReport lists inconsistencies between stored presets and the catalog.
type PresetReport struct {
	Total int `json:"total"`
	// Corrupt presets cannot be decoded.
	Corrupt map[string]string `json:"corrupt"`
	// Uncataloged objects have no catalog row.
	Uncataloged []string `json:"uncataloged"`
	// MissingObjects are catalog rows whose object is gone.
	MissingObjects []string `json:"missing_objects"`
}

// OK reports whether no issue was found.
func (r *PresetReport) OK() bool {
	return len(r.Corrupt) == 0 && len(r.Uncataloged) == 0 && len(r.MissingObjects) == 0
}

// CheckPresets decodes every preset under prefix and, when db is set,
// cross-checks the object keys with the catalog.
func CheckPresets(ctx context.Context, client storage.Client, bucket, prefix string, db *gorm.DB) (*PresetReport, error) {
	keys, err := storage.ListKeys(ctx, client, bucket, prefix)
	if err != nil {
		return nil, err
	}

	report := &PresetReport{
		Corrupt:        map[string]string{},
		Uncataloged:    []string{},
		MissingObjects: []string{},
	}
	stored := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		if !strings.HasSuffix(key, ".json") {
			continue
		}
		report.Total++
		stored[key] = struct{}{}

		data, err := storage.ReadObject(ctx, client, bucket, key)
		if err != nil {
			return nil, err
		}
		if _, err := reconcile.Decode(data); err != nil {
			report.Corrupt[key] = err.Error()
		}
	}

	if db == nil {
		return report, nil
	}

	var rows []models.Preset
	if err := db.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	cataloged := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		cataloged[row.ObjectKey] = struct{}{}
		if _, ok := stored[row.ObjectKey]; !ok {
			report.MissingObjects = append(report.MissingObjects, row.Name)
		}
	}
	for key := range stored {
		if _, ok := cataloged[key]; !ok {
			report.Uncataloged = append(report.Uncataloged, key)
		}
	}
	sort.Strings(report.Uncataloged)
	sort.Strings(report.MissingObjects)
	return report, nil
}

