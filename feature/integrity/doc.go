// Package integrity provides health checks for the preset library.
//
// # Checks Provided
//
//   - Structure: the presets and models folders exist in the bucket (fixable).
//   - Catalog: the blendshape_presets table matches the Preset model columns and types.
//   - Presets: every stored preset decodes, and storage and catalog agree.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/catalog : Runs catalog schema check.
//   - GET /integrity/presets : Runs preset consistency check.
package integrity
