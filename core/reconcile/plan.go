package reconcile

import (
	"time"

	"go.uber.org/zap"
)

// Plan matches every snapshot in bundle against candidates and resolves the
// saved channels of each match. It does NOT write any weight; use ApplyPlan.
func (e *Engine) Plan(bundle *Bundle, candidates []Target) (*Plan, error) {
	if bundle == nil || len(bundle.Meshes) == 0 {
		e.logger.Warn("Nothing to import", zap.Error(ErrEmptyBundle))
		return nil, ErrEmptyBundle
	}
	// Only candidates with a mesh can take weights.
	usable := make([]Target, 0, len(candidates))
	for _, c := range candidates {
		if c.Mesh != nil {
			usable = append(usable, c)
		}
	}
	if len(usable) == 0 {
		e.logger.Error("No targets to import into", zap.Error(ErrNoTargets))
		return nil, ErrNoTargets
	}

	plan := &Plan{
		RootObjectName: bundle.RootObjectName,
		Meshes:         make([]*MeshPlan, 0, len(bundle.Meshes)),
	}
	for _, set := range bundle.Meshes {
		if set == nil {
			e.logger.Warn("Null mesh data encountered, skipping")
			plan.Meshes = append(plan.Meshes, &MeshPlan{Tier: MatchNone, Reason: "null mesh data"})
			continue
		}

		mp := &MeshPlan{
			ObjectName: set.ObjectName,
			ObjectPath: set.ObjectPath,
			set:        set,
		}
		target, tier := e.Match(set, usable)
		mp.Tier = tier
		if tier == MatchNone {
			mp.Reason = "no matching target"
		} else {
			mp.target = target
			mp.TargetName = target.Name
			mp.TargetPath = target.Path
			mp.Channels = e.resolveChannels(target, set)
		}
		plan.Meshes = append(plan.Meshes, mp)
	}
	return plan, nil
}

// ApplyPlan executes a plan built by Plan and returns aggregate counts.
// With opts.DryRun the counts describe what would be written.
func (e *Engine) ApplyPlan(plan *Plan, opts ImportOptions) *ImportResult {
	result := &ImportResult{DryRun: opts.DryRun, Plan: plan}
	if plan == nil {
		return result
	}
	result.TotalMeshes = len(plan.Meshes)

	for _, mp := range plan.Meshes {
		if !mp.Matched() {
			result.SkippedMeshes++
			continue
		}
		result.AppliedMeshes++

		if opts.DryRun {
			for _, ch := range mp.Channels {
				if ch.Resolved() {
					result.AppliedChannels++
				} else {
					result.SkippedChannels++
				}
			}
			continue
		}

		applied, skipped := e.writeChannels(mp.target, mp.Channels)
		result.AppliedChannels += applied
		result.SkippedChannels += skipped
	}
	return result
}

// Import applies every snapshot in bundle to its best-matching candidate.
// A bundle without meshes yields ErrEmptyBundle and touches nothing.
func (e *Engine) Import(bundle *Bundle, candidates []Target, opts ImportOptions) (*ImportResult, error) {
	start := time.Now()

	plan, err := e.Plan(bundle, candidates)
	if err != nil {
		return &ImportResult{DryRun: opts.DryRun}, err
	}
	result := e.ApplyPlan(plan, opts)

	e.logger.Info("Import completed",
		zap.Duration("duration", time.Since(start)),
		zap.Bool("dry_run", opts.DryRun),
		zap.Int("total_meshes", result.TotalMeshes),
		zap.Int("applied_meshes", result.AppliedMeshes),
		zap.Int("skipped_meshes", result.SkippedMeshes),
		zap.Int("applied_channels", result.AppliedChannels),
		zap.Int("skipped_channels", result.SkippedChannels),
	)
	return result, nil
}
