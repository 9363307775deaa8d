// Package database handles the preset catalog connection and schema inspection.
//
// Connect opens a GORM connection for the configured driver: MySQL for shared
// deployments or SQLite (a file, or ":memory:" in tests) for single-user setups.
// The catalog is optional; the presets feature falls back to listing storage
// when no database is reachable.
//
// GetTableColumns reads the live column set of a table and backs the catalog
// schema check of the integrity feature.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	columns, err := database.GetTableColumns(db, "blendshape_presets")
package database
