package reconcile

import (
	"go.uber.org/zap"
)

// resolveChannel maps a saved entry onto a live channel index.
// The saved index is used when it still holds a channel of the same name;
// otherwise the first channel carrying the name is used.
func (e *Engine) resolveChannel(target Target, entry *WeightEntry) ChannelResolution {
	if entry == nil {
		return ChannelResolution{SavedIndex: -1, ResolvedIndex: -1, Method: ResolutionInvalid, Error: "null entry"}
	}

	res := ChannelResolution{
		Name:          entry.Name,
		SavedIndex:    entry.Index,
		ResolvedIndex: -1,
		Weight:        entry.Weight,
	}
	if entry.Name == "" {
		res.Method = ResolutionInvalid
		res.Error = "empty name"
		return res
	}

	count := target.Mesh.ChannelCount()
	if entry.Index >= 0 && entry.Index < count {
		name, err := target.Mesh.ChannelName(entry.Index)
		if err != nil {
			res.Method = ResolutionError
			res.Error = err.Error()
			return res
		}
		if name == entry.Name {
			res.ResolvedIndex = entry.Index
			res.Method = ResolvedByIndex
			return res
		}
		e.logger.Debug("Index mismatch",
			zap.String("object", target.Name),
			zap.String("name", entry.Name),
			zap.Int("index", entry.Index),
			zap.String("found", name),
		)
	}

	for i := 0; i < count; i++ {
		name, err := target.Mesh.ChannelName(i)
		if err != nil {
			res.Method = ResolutionError
			res.Error = err.Error()
			return res
		}
		if name == entry.Name {
			res.ResolvedIndex = i
			res.Method = ResolvedByNameScan
			return res
		}
	}

	res.Method = ResolutionMissing
	return res
}

func (e *Engine) resolveChannels(target Target, set *MeshWeightSet) []ChannelResolution {
	channels := make([]ChannelResolution, 0, len(set.Entries))
	for _, entry := range set.Entries {
		channels = append(channels, e.resolveChannel(target, entry))
	}
	return channels
}

// writeChannels writes every resolved channel and returns applied/skipped counts.
// A failed write is recorded on its resolution and does not stop the loop.
func (e *Engine) writeChannels(target Target, channels []ChannelResolution) (applied, skipped int) {
	for i := range channels {
		ch := &channels[i]
		if !ch.Resolved() {
			if ch.Method == ResolutionMissing {
				e.logger.Warn("Blend shape not found in mesh",
					zap.String("name", ch.Name), zap.String("object", target.Name))
			}
			skipped++
			continue
		}
		if err := target.Mesh.SetWeight(ch.ResolvedIndex, ch.Weight); err != nil {
			e.logger.Error("Failed to apply blend shape",
				zap.String("name", ch.Name), zap.String("object", target.Name), zap.Error(err))
			ch.Method = ResolutionError
			ch.Error = err.Error()
			ch.ResolvedIndex = -1
			skipped++
			continue
		}
		applied++
	}
	return applied, skipped
}

// Apply writes the saved weights of set onto target, tolerating channel reordering.
// The target's channel topology is never changed.
func (e *Engine) Apply(target Target, set *MeshWeightSet) ApplyResult {
	if set == nil || target.Mesh == nil {
		return ApplyResult{}
	}

	channels := e.resolveChannels(target, set)
	applied, skipped := e.writeChannels(target, channels)

	e.logger.Debug("Applied blend shapes",
		zap.String("object", target.Name),
		zap.Int("applied", applied),
		zap.Int("skipped", skipped),
	)
	return ApplyResult{Applied: applied, Skipped: skipped, Channels: channels}
}
