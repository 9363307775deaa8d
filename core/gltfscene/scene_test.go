package gltfscene

import (
	"bytes"
	"math"
	"testing"

	"blendshape-presets/core/reconcile"
	"blendshape-presets/core/scene"

	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// avatarDoc builds Body -> (Face, Hair) where Face shares a two-target mesh.
func avatarDoc() *gltf.Document {
	return &gltf.Document{
		Asset: gltf.Asset{Version: "2.0", Generator: "blendshape-presets"},
		Scene: gltf.Index(0),
		Scenes: []*gltf.Scene{
			{Name: "Scene", Nodes: []uint32{0}},
		},
		Nodes: []*gltf.Node{
			{Name: "Body", Children: []uint32{1, 2}},
			{Name: "Face", Mesh: gltf.Index(0)},
			{Name: "Hair", Mesh: gltf.Index(1)},
		},
		Meshes: []*gltf.Mesh{
			{
				Name:       "FaceMesh",
				Primitives: []*gltf.Primitive{{Targets: []gltf.Attribute{{}, {}}}},
				Weights:    []float32{0.5, 0},
				Extras:     map[string]any{"targetNames": []string{"Smile", "Blink"}},
			},
			{
				Name:       "HairMesh",
				Primitives: []*gltf.Primitive{{}},
			},
		},
	}
}

func TestFromDocument_Tree(t *testing.T) {
	s, err := FromDocument(avatarDoc(), Options{})
	require.NoError(t, err)

	require.Len(t, s.Roots(), 1)
	body := s.Roots()[0]
	assert.Equal(t, "Body", body.Name())
	require.Len(t, body.Children(), 2)

	face := s.Find("Body/Face")
	require.NotNil(t, face)
	assert.Equal(t, "Body/Face", face.Path())

	m, ok := face.Mesh()
	require.True(t, ok)
	assert.Equal(t, 2, m.ChannelCount())

	name, err := m.ChannelName(1)
	require.NoError(t, err)
	assert.Equal(t, "Blink", name)

	w, err := m.Weight(0)
	require.NoError(t, err)
	assert.Equal(t, 50.0, w)

	_, err = m.Weight(2)
	assert.ErrorIs(t, err, scene.ErrChannelOutOfRange)
}

func TestFromDocument_Errors(t *testing.T) {
	_, err := FromDocument(nil, Options{})
	assert.ErrorIs(t, err, ErrNoScene)

	_, err = FromDocument(&gltf.Document{}, Options{})
	assert.ErrorIs(t, err, ErrNoScene)
}

func TestFromDocument_NoScenesUsesParentlessNodes(t *testing.T) {
	doc := avatarDoc()
	doc.Scenes = nil
	doc.Scene = nil
	doc.Nodes = append(doc.Nodes, &gltf.Node{Name: "Light"})

	s, err := FromDocument(doc, Options{})
	require.NoError(t, err)
	require.Len(t, s.Roots(), 2)
	assert.Equal(t, "Body", s.Roots()[0].Name())
	assert.Equal(t, "Light", s.Roots()[1].Name())
}

func TestFromDocument_CycleGuard(t *testing.T) {
	doc := &gltf.Document{
		Nodes: []*gltf.Node{
			{Name: "A", Children: []uint32{1}},
			{Name: "B", Children: []uint32{0, 1}},
		},
		Scenes: []*gltf.Scene{{Nodes: []uint32{0}}},
	}

	s, err := FromDocument(doc, Options{})
	require.NoError(t, err)
	require.Len(t, s.Roots(), 1)
	assert.Len(t, s.Roots()[0].Descendants(), 1)
}

func TestSetWeight_WritesNodeWeights(t *testing.T) {
	doc := avatarDoc()
	s, err := FromDocument(doc, Options{})
	require.NoError(t, err)

	m, _ := s.Find("Face").Mesh()
	require.NoError(t, m.SetWeight(1, 25))

	assert.Equal(t, []float32{0.5, 0.25}, doc.Nodes[1].Weights)
	assert.Equal(t, []float32{0.5, 0}, doc.Meshes[0].Weights, "shared mesh weights stay untouched")

	w, _ := m.Weight(1)
	assert.Equal(t, 25.0, w)
}

func TestOptions_WeightScale(t *testing.T) {
	s, err := FromDocument(avatarDoc(), Options{WeightScale: 1})
	require.NoError(t, err)

	m, _ := s.Find("Face").Mesh()
	w, _ := m.Weight(0)
	assert.Equal(t, 0.5, w)
}

func TestSelect(t *testing.T) {
	s, err := FromDocument(avatarDoc(), Options{})
	require.NoError(t, err)

	root, err := s.Select("")
	require.NoError(t, err)
	assert.Equal(t, "Body", root.Name())

	root, err = s.Select("Face")
	require.NoError(t, err)
	assert.Equal(t, "Body/Face", root.Path())

	_, err = s.Select("Tail")
	assert.ErrorIs(t, err, reconcile.ErrNoSelection)
}

func TestEncodeDecode_RoundTripWithReconcile(t *testing.T) {
	s, err := FromDocument(avatarDoc(), Options{})
	require.NoError(t, err)

	engine := reconcile.NewEngine(zap.NewNop())
	root, err := s.Select("")
	require.NoError(t, err)
	bundle := engine.Collect(root, true)
	require.Len(t, bundle.Meshes, 1)
	assert.Equal(t, 50.0, bundle.Meshes[0].Entries[0].Weight)

	m, _ := s.Find("Face").Mesh()
	require.NoError(t, m.SetWeight(0, 0))

	var buf bytes.Buffer
	require.NoError(t, s.Encode(&buf, false))

	loaded, err := Decode(&buf, Options{})
	require.NoError(t, err)
	root, err = loaded.Select("Body")
	require.NoError(t, err)

	targets, err := engine.Validate(root, true)
	require.NoError(t, err)
	result, err := engine.Import(bundle, targets, reconcile.ImportOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, result.AppliedMeshes)

	assert.Equal(t, float32(0.5), loaded.Document().Nodes[1].Weights[0])
}

func TestRoundTrip_WeightsAreBitExact(t *testing.T) {
	tests := []struct {
		name   string
		weight float32
	}{
		{"Small", 0.07},
		{"Tenths", 0.3},
		{"Third", float32(1.0 / 3.0)},
		{"Almost one", 0.999},
		{"Tiny", 1e-7},
		{"Above one", 1.37},
	}

	engine := reconcile.NewEngine(zap.NewNop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := avatarDoc()
			src.Nodes[1].Weights = []float32{tt.weight, 0}
			s, err := FromDocument(src, Options{})
			require.NoError(t, err)
			root, err := s.Select("")
			require.NoError(t, err)

			data, err := reconcile.Encode(engine.Collect(root, true))
			require.NoError(t, err)
			bundle, err := reconcile.Decode(data)
			require.NoError(t, err)

			dst := avatarDoc()
			loaded, err := FromDocument(dst, Options{})
			require.NoError(t, err)
			root, err = loaded.Select("")
			require.NoError(t, err)
			targets, err := engine.Validate(root, true)
			require.NoError(t, err)
			_, err = engine.Import(bundle, targets, reconcile.ImportOptions{})
			require.NoError(t, err)

			require.Len(t, dst.Nodes[1].Weights, 2)
			assert.Equal(t, math.Float32bits(tt.weight), math.Float32bits(dst.Nodes[1].Weights[0]))
			assert.Equal(t, float32(0.5), dst.Meshes[0].Weights[0], "shared mesh weights stay untouched")
		})
	}
}

func TestIsBinaryPath(t *testing.T) {
	assert.True(t, IsBinaryPath("avatar.glb"))
	assert.True(t, IsBinaryPath("AVATAR.GLB"))
	assert.False(t, IsBinaryPath("avatar.gltf"))
}
