// Package presets provides the blend shape preset library.
//
// Presets are bundles stored as JSON objects under a bucket prefix
// ("presets/<name>.json"). When a database is configured, a catalog table
// (blendshape_presets) keeps per-preset metadata for listing; otherwise the
// bucket is listed directly. Decoded presets are cached with a TTL and
// concurrent loads of the same preset are collapsed with singleflight.
//
// Capture and apply work on self-contained glTF/GLB models stored under the
// model prefix, through core/gltfscene and the reconcile engine.
//
// # HTTP Endpoints
//
//   - GET /presets : Lists presets.
//   - GET /presets/:name : Returns the bundle.
//   - PUT /presets/:name : Stores the request body (validated).
//   - DELETE /presets/:name : Removes the preset.
//   - POST /presets/:name/capture?model=&root=&include_children= : Captures from a model.
//   - POST /presets/:name/apply?model=&root=&include_children=&dry_run= : Applies to a model.
package presets
