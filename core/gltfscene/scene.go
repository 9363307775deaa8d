package gltfscene

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"blendshape-presets/core/reconcile"
	"blendshape-presets/core/scene"

	"github.com/qmuntal/gltf"
)

// DefaultWeightScale converts glTF weights (0..1) to the 0..100 range used in saved presets.
const DefaultWeightScale = 100.0

// ErrNoScene is returned for a document without any node.
var ErrNoScene = errors.New("document has no nodes")

// Options controls how document weights are exposed.
type Options struct {
	// WeightScale multiplies glTF weights on read and divides them on write.
	// Zero means DefaultWeightScale.
	WeightScale float64
}

// Scene is a glTF document viewed as a scene graph of reconcile objects.
type Scene struct {
	doc   *gltf.Document
	roots []*scene.Node
	nodes []*scene.Node
}

// Open reads a .gltf or .glb file.
func Open(path string, opts Options) (*Scene, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	return FromDocument(doc, opts)
}

// Decode reads a self-contained glTF or GLB document from r.
func Decode(r io.Reader, opts Options) (*Scene, error) {
	doc := new(gltf.Document)
	if err := gltf.NewDecoder(r).Decode(doc); err != nil {
		return nil, fmt.Errorf("failed to decode glTF: %w", err)
	}
	return FromDocument(doc, opts)
}

// FromDocument builds the node tree of the default scene of doc.
func FromDocument(doc *gltf.Document, opts Options) (*Scene, error) {
	if doc == nil || len(doc.Nodes) == 0 {
		return nil, ErrNoScene
	}
	scale := opts.WeightScale
	if scale == 0 {
		scale = DefaultWeightScale
	}

	s := &Scene{doc: doc, nodes: make([]*scene.Node, len(doc.Nodes))}
	for i, nd := range doc.Nodes {
		n := scene.NewNode(nd.Name)
		if nd.Mesh != nil && int(*nd.Mesh) < len(doc.Meshes) {
			if mh := doc.Meshes[*nd.Mesh]; mh != nil {
				n.SetMesh(newNodeMesh(nd, mh, scale))
			}
		}
		s.nodes[i] = n
	}

	attached := make([]bool, len(doc.Nodes))
	var link func(idx int)
	link = func(idx int) {
		for _, child := range doc.Nodes[idx].Children {
			c := int(child)
			if c >= len(doc.Nodes) || attached[c] {
				continue
			}
			attached[c] = true
			s.nodes[idx].AddChild(s.nodes[c])
			link(c)
		}
	}

	for _, idx := range rootIndices(doc) {
		if attached[idx] {
			continue
		}
		attached[idx] = true
		s.roots = append(s.roots, s.nodes[idx])
		link(idx)
	}
	return s, nil
}

// rootIndices returns the root nodes of the default scene, or every
// parentless node when the document declares no scene.
func rootIndices(doc *gltf.Document) []int {
	if len(doc.Scenes) > 0 {
		sc := 0
		if doc.Scene != nil && int(*doc.Scene) < len(doc.Scenes) {
			sc = int(*doc.Scene)
		}
		var out []int
		for _, idx := range doc.Scenes[sc].Nodes {
			if int(idx) < len(doc.Nodes) {
				out = append(out, int(idx))
			}
		}
		return out
	}

	hasParent := make([]bool, len(doc.Nodes))
	for _, nd := range doc.Nodes {
		for _, c := range nd.Children {
			if int(c) < len(hasParent) {
				hasParent[c] = true
			}
		}
	}
	var out []int
	for i, p := range hasParent {
		if !p {
			out = append(out, i)
		}
	}
	return out
}

// Document returns the underlying document, which reflects applied weights.
func (s *Scene) Document() *gltf.Document {
	return s.doc
}

// Roots returns the root nodes of the scene.
func (s *Scene) Roots() []*scene.Node {
	return s.roots
}

// Find returns the first node named query, or the node at path query when it contains "/".
func (s *Scene) Find(query string) *scene.Node {
	return scene.Find(s.roots, query)
}

// Select resolves the root object for an operation. An empty query selects
// the only root of the scene.
func (s *Scene) Select(query string) (reconcile.Object, error) {
	if query == "" {
		if len(s.roots) == 1 {
			return s.roots[0], nil
		}
		return nil, fmt.Errorf("%w: scene has %d root nodes, choose one", reconcile.ErrNoSelection, len(s.roots))
	}
	if n := s.Find(query); n != nil {
		return n, nil
	}
	return nil, fmt.Errorf("%w: node %q not found", reconcile.ErrNoSelection, query)
}

// Save writes the document to path, as GLB when the extension is .glb.
func (s *Scene) Save(path string) error {
	if IsBinaryPath(path) {
		return gltf.SaveBinary(s.doc, path)
	}
	return gltf.Save(s.doc, path)
}

// Encode writes the document to w.
func (s *Scene) Encode(w io.Writer, binary bool) error {
	enc := gltf.NewEncoder(w)
	enc.AsBinary = binary
	return enc.Encode(s.doc)
}

// IsBinaryPath reports whether path names a GLB file.
func IsBinaryPath(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".glb")
}
