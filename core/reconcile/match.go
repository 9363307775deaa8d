package reconcile

import "go.uber.org/zap"

// Match finds the live target a saved snapshot should be applied to.
//
// An exact object-name hit wins regardless of path; otherwise a non-empty
// saved path is looked up. When several candidates share a name or path the
// first one in candidate order is used. Unnamed candidates can only be
// matched by path.
func Match(set *MeshWeightSet, candidates []Target) (Target, MatchTier) {
	if set == nil || len(candidates) == 0 {
		return Target{}, MatchNone
	}

	byName := make(map[string]Target, len(candidates))
	byPath := make(map[string]Target, len(candidates))
	for _, c := range candidates {
		if c.Name != "" {
			if _, seen := byName[c.Name]; !seen {
				byName[c.Name] = c
			}
		}
		if c.Path != "" {
			if _, seen := byPath[c.Path]; !seen {
				byPath[c.Path] = c
			}
		}
	}

	if t, ok := byName[set.ObjectName]; ok {
		return t, MatchByName
	}
	if set.ObjectPath != "" {
		if t, ok := byPath[set.ObjectPath]; ok {
			return t, MatchByPath
		}
	}
	return Target{}, MatchNone
}

// Match is the logging wrapper around the package-level Match.
func (e *Engine) Match(set *MeshWeightSet, candidates []Target) (Target, MatchTier) {
	target, tier := Match(set, candidates)
	if set == nil {
		return target, tier
	}

	switch tier {
	case MatchByName:
		e.logger.Debug("Found exact name match", zap.String("object", set.ObjectName))
	case MatchByPath:
		e.logger.Debug("Found path match", zap.String("path", set.ObjectPath), zap.String("target", target.Name))
	default:
		e.logger.Warn("No matching target found",
			zap.String("object", set.ObjectName), zap.String("path", set.ObjectPath))
	}
	return target, tier
}
