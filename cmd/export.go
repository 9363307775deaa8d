package cmd

import (
	"context"
	"errors"
	"time"

	"blendshape-presets/core/clipboard"
	"blendshape-presets/core/config"
	"blendshape-presets/core/files"
	"blendshape-presets/core/reconcile"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	exportScene     sceneFlags
	exportOut       string
	exportClipboard bool
	exportPreset    string
)

// exportCmd collects the weights under a root object.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Save the blend shape weights of a scene object",
	Long: `Collects the morph target weights of the root object (and optionally its
descendants) and writes them as a JSON bundle.

Examples:
  # Print to stdout
  export --scene avatar.glb

  # Save next to the scene as Body_blendshapes.json
  export --scene avatar.glb --root Body --include-children --out .

  # Store in the preset library
  export --scene avatar.glb --root Body --include-children --preset smile`,
	RunE: runExport,
}

func init() {
	exportScene.register(exportCmd)
	exportCmd.Flags().StringVar(&exportOut, "out", "", "Write to this file (a directory gets <root>"+files.Suffix+")")
	exportCmd.Flags().BoolVar(&exportClipboard, "clipboard", false, "Copy to the clipboard")
	exportCmd.Flags().StringVar(&exportPreset, "preset", "", "Store in the preset library under this name")
	exportCmd.MarkFlagsMutuallyExclusive("out", "clipboard", "preset")

	RootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	start := time.Now()
	cfg, logg, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logg.Sync()

	includeChildren := exportScene.include(cmd, cfg)
	_, root, err := exportScene.open(cfg.Scene.Options())
	if err != nil {
		return err
	}

	engine := reconcile.NewEngine(logg)
	if _, err := engine.Validate(root, includeChildren); err != nil {
		return err
	}
	bundle := engine.Collect(root, includeChildren)

	dest, size, err := writeBundle(cmd.Context(), cmd, cfg, logg, bundle)
	if errors.Is(err, reconcile.ErrEmptyBundle) {
		logg.Warn("Nothing to export", zap.String("root", root.Name()))
		return nil
	}
	if err != nil {
		return err
	}

	logg.Info("Export completed",
		zap.String("root", bundle.RootObjectName),
		zap.String("destination", dest),
		zap.Int("meshes", len(bundle.Meshes)),
		zap.Int("channels", bundle.TotalChannels()),
		zap.Int("bytes", size),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

// writeBundle sends bundle to the destination selected by the flags and
// returns a description of it with the number of bytes written.
func writeBundle(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logg *zap.Logger, bundle *reconcile.Bundle) (string, int, error) {
	switch {
	case exportOut != "":
		store := files.NewStore(afero.NewOsFs())
		path := store.ResolvePath(exportOut, bundle.RootObjectName)
		n, err := store.Write(path, bundle)
		return path, n, err

	case exportClipboard:
		n, err := clipboard.New(nil).Copy(bundle)
		return "clipboard", n, err

	case exportPreset != "":
		svc, err := newPresetService(cfg, logg)
		if err != nil {
			return "", 0, err
		}
		p, err := svc.Put(ctx, exportPreset, bundle)
		if err != nil {
			return "", 0, err
		}
		return p.ObjectKey, int(p.Size), nil

	default:
		data, err := reconcile.Encode(bundle)
		if err != nil {
			return "", 0, err
		}
		n, err := cmd.OutOrStdout().Write(append(data, '\n'))
		return "stdout", n, err
	}
}
