// Package reconcile captures morph-target ("blend shape") weights from scene
// objects and re-applies saved weights onto matching objects.
//
// # Pipeline
//
// Export runs Collect then Encode. Import runs Decode, then Plan (match and
// channel resolution) and ApplyPlan (weight writes):
//
//  1. Collect walks a root object and, optionally, its descendants, and
//     snapshots every mesh that has at least one morph channel.
//
//  2. Match picks a live target for each saved snapshot. An exact object name
//     wins; the hierarchy path is the fallback. Duplicate names or paths
//     resolve to the first candidate.
//
//  3. Apply writes each saved weight at its saved index when the channel name
//     there still matches, otherwise at the first channel carrying the saved
//     name. Entries that cannot be placed are counted as skipped and never
//     abort the batch.
//
// # Host interfaces
//
// The scene graph is reached only through the Object and Mesh interfaces.
// core/scene provides an in-memory graph and core/gltfscene adapts glTF
// documents.
//
// # Usage
//
//	engine := reconcile.NewEngine(logger)
//	bundle := engine.Collect(root, true)
//	data, err := reconcile.Encode(bundle)
//
//	saved, err := reconcile.Decode(data)
//	targets, err := engine.Validate(root, true)
//	result, err := engine.Import(saved, targets, reconcile.ImportOptions{})
package reconcile
