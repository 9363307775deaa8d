// Package gltfscene adapts glTF 2.0 documents to the reconcile interfaces.
//
// Every node of the default scene becomes a scene.Node. Nodes that reference
// a mesh with morph targets expose them as channels:
//
//   - channel count: the largest number of targets on any primitive;
//   - channel names: mesh.extras.targetNames (empty when absent);
//   - weights: node.weights, falling back to mesh.weights, scaled by
//     Options.WeightScale (100 by default, matching saved presets).
//
// Writes always go to node.weights so instances sharing a mesh stay independent.
//
// # Usage
//
//	s, err := gltfscene.Open("avatar.glb", gltfscene.Options{})
//	root, err := s.Select("Body")
//	bundle := engine.Collect(root, true)
package gltfscene
