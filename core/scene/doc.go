// Package scene provides an in-memory scene graph that satisfies the
// reconcile.Object and reconcile.Mesh interfaces.
//
// Nodes form a tree; a node may carry a mesh with named morph channels.
// Paths are the slash-joined names from the root down to the node, so a mesh
// "Face" under "Body" has the path "Body/Face".
//
// The glTF adapter in core/gltfscene builds the same Node tree and binds
// document-backed meshes to it.
package scene
