package reconcile

import "errors"

var (
	// ErrNoSelection is returned when an operation is started without a root object.
	ErrNoSelection = errors.New("no object selected")

	// ErrNoTargets is returned when the root (and its descendants, if requested)
	// carries no mesh with morph channels.
	ErrNoTargets = errors.New("no mesh with blend shapes found")

	// ErrNoChannels is returned when every collected mesh has zero channels.
	ErrNoChannels = errors.New("no blend shapes found on any mesh")

	// ErrEmptyBundle is returned for a bundle with no mesh data.
	ErrEmptyBundle = errors.New("bundle contains no mesh data")

	// ErrEmptyInput is returned when there is nothing to decode.
	ErrEmptyInput = errors.New("input is empty")

	// ErrNotJSON is returned when the input does not look like a JSON object.
	ErrNotJSON = errors.New("input does not appear to be JSON")

	// ErrInvalidJSON wraps JSON syntax and type errors.
	ErrInvalidJSON = errors.New("invalid JSON format")
)

// Bundle is the root export unit: every mesh snapshot collected under one root object.
type Bundle struct {
	// RootObjectName is the name of the object the export started from.
	// It is informational only and never used for matching.
	RootObjectName string `json:"rootObjectName"`

	// Meshes holds one snapshot per mesh-bearing object, in traversal order.
	Meshes []*MeshWeightSet `json:"meshDataList"`
}

// TotalChannels returns the number of weight entries across all meshes.
func (b *Bundle) TotalChannels() int {
	if b == nil {
		return 0
	}
	total := 0
	for _, set := range b.Meshes {
		if set != nil {
			total += len(set.Entries)
		}
	}
	return total
}

// MeshWeightSet is the saved snapshot of a single mesh-bearing object.
type MeshWeightSet struct {
	// ObjectName is the object's own name. It is not unique.
	ObjectName string `json:"objectName"`

	// ObjectPath is the slash-separated ancestor chain from the scene root
	// down to and including the object.
	ObjectPath string `json:"objectPath"`

	// Entries holds one value per morph channel, in channel order at collection time.
	Entries []*WeightEntry `json:"blendShapes"`
}

// WeightEntry is the saved value of one morph channel.
type WeightEntry struct {
	// Name identifies the channel as defined by the mesh asset.
	Name string `json:"name"`

	// Index is the channel position at collection time. It may drift after mesh edits.
	Index int `json:"index"`

	// Weight is typically in [0, 100] but is not constrained.
	Weight float64 `json:"weight"`
}

// IsUnusualWeight reports whether w lies outside the conventional [0, 100] range.
func IsUnusualWeight(w float64) bool {
	return w < 0 || w > 100
}

// ResolutionMethod describes how a saved entry was mapped onto a live channel.
type ResolutionMethod string

const (
	// ResolvedByIndex means the saved index still holds a channel of the same name.
	ResolvedByIndex ResolutionMethod = "index"
	// ResolvedByNameScan means the channel was found by scanning names.
	ResolvedByNameScan ResolutionMethod = "name_scan"
	// ResolutionMissing means no live channel carries the saved name.
	ResolutionMissing ResolutionMethod = "missing"
	// ResolutionInvalid means the saved entry was null or unnamed.
	ResolutionInvalid ResolutionMethod = "invalid"
	// ResolutionError means reading or writing the channel failed.
	ResolutionError ResolutionMethod = "error"
)

// ChannelResolution records the outcome for a single saved entry.
type ChannelResolution struct {
	Name          string           `json:"name"`
	SavedIndex    int              `json:"saved_index"`
	ResolvedIndex int              `json:"resolved_index"`
	Weight        float64          `json:"weight"`
	Method        ResolutionMethod `json:"method"`
	Error         string           `json:"error,omitempty"`
}

// Resolved reports whether the entry maps onto a live channel.
func (r ChannelResolution) Resolved() bool {
	return r.ResolvedIndex >= 0
}

// ApplyResult is the outcome of applying one MeshWeightSet to one target.
type ApplyResult struct {
	Applied  int                 `json:"applied"`
	Skipped  int                 `json:"skipped"`
	Channels []ChannelResolution `json:"channels"`
}

// MatchTier identifies which lookup produced a match.
type MatchTier string

const (
	MatchByName MatchTier = "name"
	MatchByPath MatchTier = "path"
	MatchNone   MatchTier = "none"
)

// MeshPlan is the planned (or executed) import of one saved mesh snapshot.
type MeshPlan struct {
	// ObjectName and ObjectPath echo the saved snapshot.
	ObjectName string `json:"object_name"`
	ObjectPath string `json:"object_path"`

	// Tier is the lookup that matched, or MatchNone.
	Tier MatchTier `json:"tier"`

	// TargetName and TargetPath describe the matched live target.
	TargetName string `json:"target_name,omitempty"`
	TargetPath string `json:"target_path,omitempty"`

	// Channels holds per-entry resolutions against the matched target.
	Channels []ChannelResolution `json:"channels,omitempty"`

	// Reason explains why the mesh is skipped.
	Reason string `json:"reason,omitempty"`

	set    *MeshWeightSet
	target Target
}

// Matched reports whether a live target was found for the snapshot.
func (p *MeshPlan) Matched() bool {
	return p.Tier == MatchByName || p.Tier == MatchByPath
}

// Plan contains the per-mesh import plan for a bundle.
type Plan struct {
	RootObjectName string      `json:"root_object_name"`
	Meshes         []*MeshPlan `json:"meshes"`
}

// ImportOptions controls how a plan is executed.
type ImportOptions struct {
	// DryRun resolves everything but writes no weights.
	DryRun bool
}

// ImportResult holds the aggregate counts of an import.
type ImportResult struct {
	TotalMeshes     int   `json:"total_meshes"`
	AppliedMeshes   int   `json:"applied_meshes"`
	SkippedMeshes   int   `json:"skipped_meshes"`
	AppliedChannels int   `json:"applied_channels"`
	SkippedChannels int   `json:"skipped_channels"`
	DryRun          bool  `json:"dry_run"`
	Plan            *Plan `json:"plan,omitempty"`
}
