package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"blendshape-presets/core/clipboard"
	"blendshape-presets/core/config"
	"blendshape-presets/core/files"
	"blendshape-presets/core/prompt"
	"blendshape-presets/core/reconcile"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	importScene     sceneFlags
	importIn        string
	importClipboard bool
	importPreset    string
	importOutput    string
	importDryRun    bool
	importYes       bool

	// confirmer asks before a scene file is overwritten in place.
	confirmer prompt.Prompt = prompt.Stdio()
)

// importCmd restores saved weights onto a scene.
var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Apply saved blend shape weights to a scene object",
	Long: `Matches every saved mesh to a mesh under the root object (by name, then by
path) and writes the saved weights, resolving channels by index and falling
back to a name lookup.

Without --in, --clipboard or --preset the bundle is read from stdin.

Examples:
  # Preview what would be applied
  import --scene avatar.glb --root Body --include-children --in Body_blendshapes.json --dry-run

  # Write into a copy of the scene
  import --scene avatar.glb --preset smile --output avatar_smile.glb

  # Overwrite the scene without asking
  import --scene avatar.glb --clipboard --yes`,
	RunE: runImport,
}

func init() {
	importScene.register(importCmd)
	importCmd.Flags().StringVar(&importIn, "in", "", "Read the bundle from this file")
	importCmd.Flags().BoolVar(&importClipboard, "clipboard", false, "Read the bundle from the clipboard")
	importCmd.Flags().StringVar(&importPreset, "preset", "", "Read the bundle from the preset library")
	importCmd.Flags().StringVar(&importOutput, "output", "", "Write the updated scene here (default: overwrite --scene)")
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "Print the plan without writing anything")
	importCmd.Flags().BoolVar(&importYes, "yes", false, "Overwrite the scene without confirmation")
	importCmd.MarkFlagsMutuallyExclusive("in", "clipboard", "preset")

	RootCmd.AddCommand(importCmd)
}

func runImport(cmd *cobra.Command, args []string) error {
	start := time.Now()
	cfg, logg, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logg.Sync()

	bundle, source, err := readBundle(cmd.Context(), cmd, cfg, logg)
	if errors.Is(err, reconcile.ErrEmptyBundle) {
		logg.Warn("No mesh data to import", zap.String("source", source))
		return nil
	}
	if err != nil {
		return err
	}

	includeChildren := importScene.include(cmd, cfg)
	sc, root, err := importScene.open(cfg.Scene.Options())
	if err != nil {
		return err
	}

	engine := reconcile.NewEngine(logg)
	targets, err := engine.Validate(root, includeChildren)
	if err != nil {
		return err
	}
	result, err := engine.Import(bundle, targets, reconcile.ImportOptions{DryRun: importDryRun})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printImportSummary(out, result)
	if importDryRun {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result.Plan)
	}
	if result.AppliedChannels == 0 {
		logg.Warn("No blend shape applied, scene left unchanged", zap.String("scene", importScene.path))
		return nil
	}

	dest := importOutput
	if dest == "" {
		dest = importScene.path
	}
	if !importYes && samePath(dest, importScene.path) {
		if err := prompt.Require(confirmer, fmt.Sprintf("Overwrite %s?", dest)); err != nil {
			return err
		}
	}
	if err := sc.Save(dest); err != nil {
		return fmt.Errorf("failed to save scene %s: %w", dest, err)
	}

	logg.Info("Scene saved",
		zap.String("source", source),
		zap.String("scene", dest),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// readBundle loads the bundle from the source selected by the flags.
func readBundle(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logg *zap.Logger) (*reconcile.Bundle, string, error) {
	switch {
	case importIn != "":
		b, err := files.NewStore(afero.NewOsFs()).Read(importIn)
		return b, importIn, err

	case importClipboard:
		b, err := clipboard.New(nil).Paste()
		return b, "clipboard", err

	case importPreset != "":
		svc, err := newPresetService(cfg, logg)
		if err != nil {
			return nil, importPreset, err
		}
		b, err := svc.Get(ctx, importPreset)
		return b, importPreset, err

	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, "stdin", err
		}
		b, err := reconcile.Decode(data)
		return b, "stdin", err
	}
}

func printImportSummary(w io.Writer, r *reconcile.ImportResult) {
	prefix := ""
	if r.DryRun {
		prefix = "[dry-run] "
	}
	fmt.Fprintf(w, "%sApplied to %d out of %d meshes", prefix, r.AppliedMeshes, r.TotalMeshes)
	if r.SkippedMeshes > 0 {
		fmt.Fprintf(w, " (%d skipped)", r.SkippedMeshes)
	}
	fmt.Fprintf(w, ", %d blend shapes written, %d skipped\n", r.AppliedChannels, r.SkippedChannels)
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	return absA == absB
}
