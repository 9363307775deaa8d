package reconcile

// Object is a scene-graph node as seen by the reconciler.
// Implementations are supplied by the host (see core/scene and core/gltfscene).
type Object interface {
	// Name returns the object's own name.
	Name() string

	// Path returns the slash-joined names from the scene root down to and
	// including this object.
	Path() string

	// Mesh returns the morph-target mesh bound to this object, if any.
	Mesh() (Mesh, bool)

	// Descendants returns every object below this one in the host's native
	// enumeration order. The receiver itself must not be included.
	Descendants() []Object
}

// Mesh exposes the live morph channels of a mesh-bearing object.
// The reconciler only reads channel names and reads/writes weights; it never
// alters channel topology.
type Mesh interface {
	// ChannelCount returns the number of morph channels.
	ChannelCount() int

	// ChannelName returns the name of the channel at index.
	ChannelName(index int) (string, error)

	// Weight returns the current weight of the channel at index.
	Weight(index int) (float64, error)

	// SetWeight writes the weight of the channel at index.
	SetWeight(index int, weight float64) error
}

// Target is a live mesh-bearing object considered for matching.
type Target struct {
	Name string
	Path string
	Mesh Mesh
}

// TargetOf builds a Target from an object, reporting false when the object
// has no mesh or the mesh has no channels.
func TargetOf(obj Object) (Target, bool) {
	if obj == nil {
		return Target{}, false
	}
	mesh, ok := obj.Mesh()
	if !ok || mesh == nil || mesh.ChannelCount() == 0 {
		return Target{}, false
	}
	return Target{Name: obj.Name(), Path: obj.Path(), Mesh: mesh}, true
}
