package scene

import (
	"errors"
	"fmt"
)

// ErrChannelOutOfRange is returned for a channel index outside the mesh.
var ErrChannelOutOfRange = errors.New("channel index out of range")

// MorphMesh is an in-memory mesh with named morph channels.
type MorphMesh struct {
	names   []string
	weights []float64
}

// NewMorphMesh creates a mesh whose channels carry the given names, all at weight 0.
func NewMorphMesh(names ...string) *MorphMesh {
	return &MorphMesh{
		names:   append([]string(nil), names...),
		weights: make([]float64, len(names)),
	}
}

func (m *MorphMesh) check(index int) error {
	if index < 0 || index >= len(m.names) {
		return fmt.Errorf("%w: %d (count %d)", ErrChannelOutOfRange, index, len(m.names))
	}
	return nil
}

// ChannelCount returns the number of channels.
func (m *MorphMesh) ChannelCount() int {
	return len(m.names)
}

// ChannelName returns the name of the channel at index.
func (m *MorphMesh) ChannelName(index int) (string, error) {
	if err := m.check(index); err != nil {
		return "", err
	}
	return m.names[index], nil
}

// Weight returns the weight of the channel at index.
func (m *MorphMesh) Weight(index int) (float64, error) {
	if err := m.check(index); err != nil {
		return 0, err
	}
	return m.weights[index], nil
}

// SetWeight sets the weight of the channel at index.
func (m *MorphMesh) SetWeight(index int, weight float64) error {
	if err := m.check(index); err != nil {
		return err
	}
	m.weights[index] = weight
	return nil
}

// Weights returns a copy of all channel weights in channel order.
func (m *MorphMesh) Weights() []float64 {
	return append([]float64(nil), m.weights...)
}

// WeightOf returns the weight of the first channel named name.
func (m *MorphMesh) WeightOf(name string) (float64, bool) {
	for i, n := range m.names {
		if n == name {
			return m.weights[i], true
		}
	}
	return 0, false
}
