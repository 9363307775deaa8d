// Package config loads the application configuration.
//
// Values come from a .env file (if present) and environment variables,
// with defaults taken from the `default` struct tags of each section.
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, body limit, shutdown timeout
//   - Storage: S3/MinIO credentials and bucket
//   - Log: level and format
//   - Database: catalog driver (sqlite or mysql) and connection
//   - Scene: glTF weight scale and include_children default
//   - Presets: bucket prefixes and cache TTL
//
// Nested keys map to upper-case variables joined by underscores,
// so scene.weight_scale is read from SCENE_WEIGHT_SCALE.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
