package cmd

import (
	"fmt"
	"text/tabwriter"

	"blendshape-presets/core/prompt"
	"blendshape-presets/core/reconcile"

	"github.com/spf13/cobra"
)

var presetsYes bool

// presetsCmd is the parent command for preset library management.
var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "Manage the preset library in the storage bucket",
}

var presetsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored presets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := loadRuntime()
		if err != nil {
			return err
		}
		defer logg.Sync()

		svc, err := newPresetService(cfg, logg)
		if err != nil {
			return err
		}
		list, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "NAME\tROOT\tMESHES\tCHANNELS\tBYTES")
		for _, p := range list {
			fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n", p.Name, p.RootObjectName, p.MeshCount, p.ChannelCount, p.Size)
		}
		return w.Flush()
	},
}

var presetsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a stored preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := loadRuntime()
		if err != nil {
			return err
		}
		defer logg.Sync()

		svc, err := newPresetService(cfg, logg)
		if err != nil {
			return err
		}
		bundle, err := svc.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		data, err := reconcile.Encode(bundle)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

var presetsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a stored preset",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logg, err := loadRuntime()
		if err != nil {
			return err
		}
		defer logg.Sync()

		if !presetsYes {
			if err := prompt.Require(confirmer, fmt.Sprintf("Delete preset %s?", args[0])); err != nil {
				return err
			}
		}

		svc, err := newPresetService(cfg, logg)
		if err != nil {
			return err
		}
		if err := svc.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Deleted preset %s\n", args[0])
		return err
	},
}

func init() {
	presetsDeleteCmd.Flags().BoolVar(&presetsYes, "yes", false, "Delete without confirmation")
	presetsCmd.AddCommand(presetsListCmd, presetsShowCmd, presetsDeleteCmd)

	RootCmd.AddCommand(presetsCmd)
}
