package cmd

import (
	"blendshape-presets/core/storage"
	"blendshape-presets/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Perform integrity checks on the preset storage",
	Long: `Checks that the bucket has the presets and models folders, that every stored
preset decodes, and, when a catalog database is reachable, that the catalog
table and the stored objects agree.`,
	Args: cobra.NoArgs,
	RunE: runIntegrityChecks,
}

func init() {
	integrityCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create missing folders")
	RootCmd.AddCommand(integrityCmd)
}

func runIntegrityChecks(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, logg, err := loadRuntime()
	if err != nil {
		return err
	}
	defer logg.Sync()

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return err
	}
	db := connectCatalog(cfg, logg)
	svc := integrity.NewService(client, cfg.Storage.Bucket, cfg.Presets.Folders(), cfg.Presets.Prefix, db, logg)

	logg.Info("Checking folder structure...")
	missing, err := svc.CheckStructure(ctx)
	if err != nil {
		return err
	}
	switch {
	case len(missing) == 0:
		logg.Info("Structure is intact.")
	case fixFlag:
		logg.Warn("Missing folders detected", zap.Strings("missing", missing))
		if err := svc.FixStructure(ctx, missing); err != nil {
			return err
		}
		logg.Info("Structure fixed successfully.")
	default:
		logg.Warn("Missing folders detected", zap.Strings("missing", missing))
		logg.Info("Run with --fix to create missing folders.")
	}

	if db != nil {
		logg.Info("Checking catalog schema...")
		report, err := svc.CheckCatalog()
		if err != nil {
			logg.Error("Catalog schema check failed", zap.Error(err))
		} else if report.Matched {
			logg.Info("Catalog schema matches.", zap.String("table", report.Table))
		} else {
			logg.Warn("Catalog schema mismatches found",
				zap.String("table", report.Table),
				zap.Strings("missing_columns", report.MissingColumns),
				zap.Strings("type_mismatches", report.TypeMismatches),
			)
		}
	}

	logg.Info("Checking stored presets...")
	presetReport, err := svc.CheckPresets(ctx)
	if err != nil {
		return err
	}
	if presetReport.OK() {
		logg.Info("Presets are consistent.", zap.Int("total", presetReport.Total))
		return nil
	}
	for key, reason := range presetReport.Corrupt {
		logg.Warn("Corrupt preset", zap.String("key", key), zap.String("error", reason))
	}
	if len(presetReport.Uncataloged) > 0 {
		logg.Warn("Presets missing from catalog", zap.Strings("keys", presetReport.Uncataloged))
	}
	if len(presetReport.MissingObjects) > 0 {
		logg.Warn("Catalog rows without object", zap.Strings("presets", presetReport.MissingObjects))
	}
	return nil
}
