package gltfscene

import (
	"encoding/json"
	"fmt"

	"blendshape-presets/core/scene"

	"github.com/qmuntal/gltf"
)

// nodeMesh exposes the morph targets of a glTF node's mesh.
// Weights are read from node.weights, falling back to mesh.weights, and are
// always written to node.weights so that shared meshes stay untouched.
type nodeMesh struct {
	node  *gltf.Node
	mesh  *gltf.Mesh
	names []string
	count int
	scale float64
}

func newNodeMesh(node *gltf.Node, mesh *gltf.Mesh, scale float64) *nodeMesh {
	count := 0
	for _, p := range mesh.Primitives {
		if p != nil && len(p.Targets) > count {
			count = len(p.Targets)
		}
	}
	if count == 0 {
		count = len(mesh.Weights)
	}
	return &nodeMesh{
		node:  node,
		mesh:  mesh,
		names: targetNames(mesh.Extras),
		count: count,
		scale: scale,
	}
}

// targetNames reads the conventional extras.targetNames list.
// Extras can arrive as a decoded map or as raw JSON depending on how the
// document was built, so it is normalized through a JSON round trip.
func targetNames(extras any) []string {
	if extras == nil {
		return nil
	}
	data, err := json.Marshal(extras)
	if err != nil {
		return nil
	}
	var ex struct {
		TargetNames []string `json:"targetNames"`
	}
	if err := json.Unmarshal(data, &ex); err != nil {
		return nil
	}
	return ex.TargetNames
}

func (m *nodeMesh) check(index int) error {
	if index < 0 || index >= m.count {
		return fmt.Errorf("%w: %d (count %d)", scene.ErrChannelOutOfRange, index, m.count)
	}
	return nil
}

func (m *nodeMesh) ChannelCount() int {
	return m.count
}

func (m *nodeMesh) ChannelName(index int) (string, error) {
	if err := m.check(index); err != nil {
		return "", err
	}
	if index < len(m.names) {
		return m.names[index], nil
	}
	return "", nil
}

// raw returns the stored glTF weight, widened from float32.
func (m *nodeMesh) raw(index int) float64 {
	if index < len(m.node.Weights) {
		return float64(m.node.Weights[index])
	}
	if index < len(m.mesh.Weights) {
		return float64(m.mesh.Weights[index])
	}
	return 0
}

func (m *nodeMesh) Weight(index int) (float64, error) {
	if err := m.check(index); err != nil {
		return 0, err
	}
	return m.raw(index) * m.scale, nil
}

func (m *nodeMesh) SetWeight(index int, weight float64) error {
	if err := m.check(index); err != nil {
		return err
	}
	if len(m.node.Weights) != m.count {
		weights := make([]float32, m.count)
		for i := range weights {
			weights[i] = float32(m.raw(i))
		}
		m.node.Weights = weights
	}
	m.node.Weights[index] = float32(weight / m.scale)
	return nil
}
