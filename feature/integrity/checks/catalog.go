package checks

import (
	"fmt"
	"reflect"
	"strings"

	"blendshape-presets/core/database"
	"blendshape-presets/feature/presets/models"

	"gorm.io/gorm"
)

// SchemaReport is the result of comparing the catalog table with its model.
type SchemaReport struct {
	Table          string   `json:"table"`
	Matched        bool     `json:"matched"`
	MissingColumns []string `json:"missing_columns"`
	TypeMismatches []string `json:"type_mismatches"`
}

// CheckCatalogSchema verifies the catalog table against the Preset model tags.
func CheckCatalogSchema(db *gorm.DB) (*SchemaReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	return checkSchema(db, models.Preset{})
}

func checkSchema(db *gorm.DB, model interface{ TableName() string }) (*SchemaReport, error) {
	report := &SchemaReport{
		Table:          model.TableName(),
		Matched:        true,
		MissingColumns: []string{},
		TypeMismatches: []string{},
	}

	actualCols, err := database.GetTableColumns(db, report.Table)
	if err != nil {
		return nil, err
	}
	if len(actualCols) == 0 {
		return nil, fmt.Errorf("table %s does not exist", report.Table)
	}

	actual := make(map[string]database.ColumnInfo, len(actualCols))
	for _, col := range actualCols {
		actual[col.Field] = col
	}

	t := reflect.TypeOf(model)
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("gorm")
		column := tagValue(tag, "column")
		if column == "" {
			continue
		}

		col, ok := actual[column]
		if !ok {
			report.MissingColumns = append(report.MissingColumns, column)
			report.Matched = false
			continue
		}

		// Only columns declaring an explicit type are compared.
		if expected := strings.ToLower(tagValue(tag, "type")); expected != "" && !strings.Contains(col.Type, expected) {
			report.TypeMismatches = append(report.TypeMismatches,
				fmt.Sprintf("%s: expected %s, got %s", column, expected, col.Type))
			report.Matched = false
		}
	}
	return report, nil
}

// tagValue extracts key:value from a gorm struct tag.
func tagValue(tag, key string) string {
	for _, part := range strings.Split(tag, ";") {
		if v, ok := strings.CutPrefix(part, key+":"); ok {
			return v
		}
	}
	return ""
}
