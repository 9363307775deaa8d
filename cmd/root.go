package cmd

import (
	"os"

	"blendshape-presets/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "blendshape-presets",
	Short: "Blend shape preset manager",
	Long: `Saves the morph target weights of a glTF scene object to a JSON preset
and restores them onto the same or a structurally similar object.

Presets can live in files, on the clipboard, or in an S3 bucket served over HTTP.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := RootCmd.Execute(); err != nil {
		l := logger.Console()
		l.Error("command failed", zap.Error(err))
		_ = l.Sync()
		os.Exit(1)
	}
}
