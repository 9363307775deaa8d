package reconcile

import (
	"go.uber.org/zap"
)

// Engine runs the collect/match/apply pipeline and reports through an injected logger.
// It holds no state between calls.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates an Engine. A nil logger is replaced with a no-op logger.
func NewEngine(logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{logger: logger.With(zap.String("component", "reconcile"))}
}

// walk returns root followed by its descendants when requested.
// The root is never repeated even if the host enumerates it among its descendants.
func walk(root Object, includeDescendants bool) []Object {
	objects := []Object{root}
	if !includeDescendants {
		return objects
	}
	for _, obj := range root.Descendants() {
		if obj == nil || obj == root {
			continue
		}
		objects = append(objects, obj)
	}
	return objects
}

// CollectTargets returns the mesh-bearing objects under root that have at
// least one morph channel, in traversal order.
func (e *Engine) CollectTargets(root Object, includeDescendants bool) []Target {
	if root == nil {
		return nil
	}
	var targets []Target
	for _, obj := range walk(root, includeDescendants) {
		target, ok := TargetOf(obj)
		if !ok {
			continue
		}
		e.logger.Debug("Found mesh target",
			zap.String("object", target.Name),
			zap.Int("channels", target.Mesh.ChannelCount()),
		)
		targets = append(targets, target)
	}
	return targets
}

// Validate checks that root is usable for export or import and returns the
// candidate targets.
func (e *Engine) Validate(root Object, includeDescendants bool) ([]Target, error) {
	if root == nil {
		e.logger.Error("Validation failed", zap.Error(ErrNoSelection))
		return nil, ErrNoSelection
	}

	meshes, channels := 0, 0
	for _, obj := range walk(root, includeDescendants) {
		mesh, ok := obj.Mesh()
		if !ok || mesh == nil {
			continue
		}
		meshes++
		channels += mesh.ChannelCount()
	}

	if meshes == 0 {
		e.logger.Warn("No mesh found", zap.String("root", root.Name()))
		return nil, ErrNoTargets
	}
	if channels == 0 {
		e.logger.Warn("No blend shapes found", zap.String("root", root.Name()), zap.Int("meshes", meshes))
		return nil, ErrNoChannels
	}

	targets := e.CollectTargets(root, includeDescendants)
	e.logger.Info("Validation successful",
		zap.String("root", root.Name()),
		zap.Int("meshes", len(targets)),
		zap.Int("channels", channels),
	)
	return targets, nil
}

// Collect snapshots the current channel weights of root and, optionally, its descendants.
// Objects without a mesh or without channels are skipped. The returned bundle
// may contain no meshes; callers decide whether that is an error.
func (e *Engine) Collect(root Object, includeDescendants bool) *Bundle {
	if root == nil {
		return nil
	}

	bundle := &Bundle{
		RootObjectName: root.Name(),
		Meshes:         []*MeshWeightSet{},
	}
	for _, target := range e.CollectTargets(root, includeDescendants) {
		set := e.snapshot(target)
		if len(set.Entries) == 0 {
			continue
		}
		bundle.Meshes = append(bundle.Meshes, set)
	}

	e.logger.Info("Collected blend shape data",
		zap.String("root", bundle.RootObjectName),
		zap.Int("meshes", len(bundle.Meshes)),
		zap.Int("channels", bundle.TotalChannels()),
	)
	return bundle
}

func (e *Engine) snapshot(target Target) *MeshWeightSet {
	count := target.Mesh.ChannelCount()
	set := &MeshWeightSet{
		ObjectName: target.Name,
		ObjectPath: target.Path,
		Entries:    make([]*WeightEntry, 0, count),
	}

	for i := 0; i < count; i++ {
		name, err := target.Mesh.ChannelName(i)
		if err != nil {
			e.logger.Error("Failed to read channel name",
				zap.String("object", target.Name), zap.Int("index", i), zap.Error(err))
			continue
		}
		weight, err := target.Mesh.Weight(i)
		if err != nil {
			e.logger.Error("Failed to read channel weight",
				zap.String("object", target.Name), zap.Int("index", i), zap.Error(err))
			continue
		}

		if name == "" {
			e.logger.Warn("Blend shape has empty name", zap.String("object", target.Name), zap.Int("index", i))
		}
		if IsUnusualWeight(weight) {
			e.logger.Warn("Blend shape has unusual weight",
				zap.String("object", target.Name), zap.String("name", name), zap.Float64("weight", weight))
		}

		set.Entries = append(set.Entries, &WeightEntry{Name: name, Index: i, Weight: weight})
	}
	return set
}
